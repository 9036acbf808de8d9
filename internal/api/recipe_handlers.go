package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/store"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns the caller's recipes, newest first, optionally filtered by tag and ingredient IDs",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createRecipe",
		Method:        http.MethodPost,
		Path:          "/api/v1/recipes",
		Summary:       "Create recipe",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateRecipe",
		Method:      http.MethodPut,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Replace recipe",
		Description: "Replaces all fields; association lists omitted from the request are cleared",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchRecipe",
		Method:      http.MethodPatch,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Update recipe",
		Description: "Updates only the fields present in the request",
		Tags:        []string{"Recipes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePatchRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteRecipe",
		Method:        http.MethodDelete,
		Path:          "/api/v1/recipes/{id}",
		Summary:       "Delete recipe",
		Tags:          []string{"Recipes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteRecipe)
}

// === DTOs ===

// ListRecipesInput carries the optional association filters as
// comma-separated ID lists.
type ListRecipesInput struct {
	Authorization string `header:"Authorization"`
	Tags          string `query:"tags" doc:"Comma-separated tag IDs to filter by"`
	Ingredients   string `query:"ingredients" doc:"Comma-separated ingredient IDs to filter by"`
}

// RecipeListOutput wraps a recipe list for Huma. List items are
// summaries; nested tag/ingredient detail comes from the retrieve
// endpoint.
type RecipeListOutput struct {
	Body []RecipeSummary
}

// RecipeRequest is the request body for creating or replacing a recipe.
type RecipeRequest struct {
	Title       string  `json:"title,omitempty" validate:"required,max=255" doc:"Recipe title"`
	TimeMinutes int     `json:"time_minutes,omitempty" validate:"gte=0" doc:"Preparation time in minutes"`
	Price       float64 `json:"price,omitempty" validate:"gte=0" doc:"Estimated price"`
	Link        string  `json:"link,omitempty" validate:"max=255" doc:"External link"`
	Tags        []int64 `json:"tags,omitempty" doc:"Tag IDs to attach"`
	Ingredients []int64 `json:"ingredients,omitempty" doc:"Ingredient IDs to attach"`
}

// RecipePatchRequest is the request body for a partial recipe update.
type RecipePatchRequest struct {
	Title       *string  `json:"title,omitempty" doc:"Recipe title"`
	TimeMinutes *int     `json:"time_minutes,omitempty" doc:"Preparation time in minutes"`
	Price       *float64 `json:"price,omitempty" doc:"Estimated price"`
	Link        *string  `json:"link,omitempty" doc:"External link"`
	Tags        []int64  `json:"tags,omitempty" doc:"Tag IDs, replaces the current set when present"`
	Ingredients []int64  `json:"ingredients,omitempty" doc:"Ingredient IDs, replaces the current set when present"`
}

// CreateRecipeInput wraps the create request for Huma.
type CreateRecipeInput struct {
	Authorization string `header:"Authorization"`
	Body          RecipeRequest
}

// RecipeDetailInput addresses a single recipe.
type RecipeDetailInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Recipe ID"`
}

// UpdateRecipeInput wraps the full update request for Huma.
type UpdateRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Recipe ID"`
	Body          RecipeRequest
}

// PatchRecipeInput wraps the partial update request for Huma.
type PatchRecipeInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Recipe ID"`
	Body          RecipePatchRequest
}

// RecipeOutput wraps a single recipe for Huma.
type RecipeOutput struct {
	Body RecipeResponse
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, input *ListRecipesInput) (*RecipeListOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tagIDs, err := parseIDList(input.Tags)
	if err != nil {
		return nil, err
	}
	ingredientIDs, err := parseIDList(input.Ingredients)
	if err != nil {
		return nil, err
	}

	recipes, err := s.services.Recipes.List(ctx, user.ID, store.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeListOutput{Body: mapRecipeSummaries(recipes)}, nil
}

func (s *Server) handleCreateRecipe(ctx context.Context, input *CreateRecipeInput) (*RecipeOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipes.Create(ctx, user.ID, service.RecipeRequest{
		Title:       input.Body.Title,
		TimeMinutes: input.Body.TimeMinutes,
		Price:       input.Body.Price,
		Link:        input.Body.Link,
		Tags:        input.Body.Tags,
		Ingredients: input.Body.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(recipe)}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *RecipeDetailInput) (*RecipeOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipes.Get(ctx, user.ID, input.ID)
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(recipe)}, nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*RecipeOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipes.Update(ctx, user.ID, input.ID, service.RecipeRequest{
		Title:       input.Body.Title,
		TimeMinutes: input.Body.TimeMinutes,
		Price:       input.Body.Price,
		Link:        input.Body.Link,
		Tags:        input.Body.Tags,
		Ingredients: input.Body.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(recipe)}, nil
}

func (s *Server) handlePatchRecipe(ctx context.Context, input *PatchRecipeInput) (*RecipeOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	recipe, err := s.services.Recipes.Patch(ctx, user.ID, input.ID, service.RecipePatch{
		Title:       input.Body.Title,
		TimeMinutes: input.Body.TimeMinutes,
		Price:       input.Body.Price,
		Link:        input.Body.Link,
		Tags:        input.Body.Tags,
		Ingredients: input.Body.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: mapRecipe(recipe)}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *RecipeDetailInput) (*struct{}, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Recipes.Delete(ctx, user.ID, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
