package domain

import "time"

// Recipe is the central entity: a user-owned recipe with optional tags,
// ingredients, and an uploaded image.
type Recipe struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"-"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`

	// ImagePath is the stored file path relative to the media root, empty
	// when no image has been uploaded. Blurhash is a compact placeholder
	// computed at upload time.
	ImagePath string `json:"-"`
	Blurhash  string `json:"blurhash,omitempty"`

	Tags        []Tag        `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasImage reports whether an image has been uploaded for the recipe.
func (r *Recipe) HasImage() bool {
	return r.ImagePath != ""
}

// TagIDs returns the IDs of the recipe's tags.
func (r *Recipe) TagIDs() []int64 {
	ids := make([]int64, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// IngredientIDs returns the IDs of the recipe's ingredients.
func (r *Recipe) IngredientIDs() []int64 {
	ids := make([]int64, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}

// Touch updates the UpdatedAt timestamp.
func (r *Recipe) Touch() {
	r.UpdatedAt = time.Now()
}
