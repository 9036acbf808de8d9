package api

import (
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
)

// === Response DTOs ===

// UserResponse contains user profile information.
type UserResponse struct {
	ID        int64     `json:"id" doc:"User ID"`
	Email     string    `json:"email" doc:"Email address"`
	Name      string    `json:"name" doc:"Display name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// TagResponse contains a tag.
type TagResponse struct {
	ID   int64  `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// IngredientResponse contains an ingredient.
type IngredientResponse struct {
	ID   int64  `json:"id" doc:"Ingredient ID"`
	Name string `json:"name" doc:"Ingredient name"`
}

// RecipeResponse contains a recipe with its associations.
type RecipeResponse struct {
	ID          int64                `json:"id" doc:"Recipe ID"`
	Title       string               `json:"title" doc:"Recipe title"`
	TimeMinutes int                  `json:"time_minutes" doc:"Preparation time in minutes"`
	Price       float64              `json:"price" doc:"Estimated price"`
	Link        string               `json:"link" doc:"External link"`
	Tags        []TagResponse        `json:"tags" doc:"Attached tags"`
	Ingredients []IngredientResponse `json:"ingredients" doc:"Attached ingredients"`
	ImageURL    string               `json:"image_url,omitempty" doc:"URL of the recipe image"`
	Blurhash    string               `json:"blurhash,omitempty" doc:"BlurHash placeholder for the image"`
	CreatedAt   time.Time            `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt   time.Time            `json:"updated_at" doc:"Last update timestamp"`
}

// RecipeSummary is the list representation of a recipe, without the
// nested tag and ingredient detail of RecipeResponse.
type RecipeSummary struct {
	ID          int64     `json:"id" doc:"Recipe ID"`
	Title       string    `json:"title" doc:"Recipe title"`
	TimeMinutes int       `json:"time_minutes" doc:"Preparation time in minutes"`
	Price       float64   `json:"price" doc:"Estimated price"`
	Link        string    `json:"link" doc:"External link"`
	ImageURL    string    `json:"image_url,omitempty" doc:"URL of the recipe image"`
	Blurhash    string    `json:"blurhash,omitempty" doc:"BlurHash placeholder for the image"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// RecipeImageResponse is returned by the image upload endpoint.
type RecipeImageResponse struct {
	ID       int64  `json:"id" doc:"Recipe ID"`
	Image    string `json:"image" doc:"URL of the stored image"`
	Blurhash string `json:"blur_hash,omitempty" doc:"BlurHash placeholder for the image"`
}

// MessageResponse contains a simple status message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Mappers ===

func mapUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func mapTag(t *domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func mapTags(tags []domain.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i := range tags {
		out[i] = mapTag(&tags[i])
	}
	return out
}

func mapIngredient(i *domain.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name}
}

func mapIngredients(ingredients []domain.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, len(ingredients))
	for i := range ingredients {
		out[i] = mapIngredient(&ingredients[i])
	}
	return out
}

func mapRecipe(r *domain.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        mapTags(r.Tags),
		Ingredients: mapIngredients(r.Ingredients),
		Blurhash:    r.Blurhash,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.HasImage() {
		resp.ImageURL = "/images/" + r.ImagePath
	}
	return resp
}

func mapRecipeSummary(r *domain.Recipe) RecipeSummary {
	resp := RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Blurhash:    r.Blurhash,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.HasImage() {
		resp.ImageURL = "/images/" + r.ImagePath
	}
	return resp
}

func mapRecipeSummaries(recipes []*domain.Recipe) []RecipeSummary {
	out := make([]RecipeSummary, len(recipes))
	for i, r := range recipes {
		out[i] = mapRecipeSummary(r)
	}
	return out
}

func mapRecipeImage(r *domain.Recipe) RecipeImageResponse {
	resp := RecipeImageResponse{ID: r.ID, Blurhash: r.Blurhash}
	if r.HasImage() {
		resp.Image = "/images/" + r.ImagePath
	}
	return resp
}
