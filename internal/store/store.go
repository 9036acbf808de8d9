// Package store defines the persistence interface for the recipe service.
package store

import (
	"context"

	"github.com/platefulapp/plateful-server/internal/domain"
	apperrors "github.com/platefulapp/plateful-server/internal/errors"
)

// Sentinel errors returned by store implementations.
var (
	// ErrNotFound is returned when a row does not exist. Stores also
	// return it for rows owned by a different user, so callers cannot
	// distinguish "absent" from "not yours".
	ErrNotFound = apperrors.ErrNotFound

	// ErrAlreadyExists is returned on unique constraint violations.
	ErrAlreadyExists = apperrors.ErrAlreadyExists
)

// RecipeFilter narrows recipe listings. Empty slices mean no filtering on
// that dimension.
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// IsZero reports whether the filter matches everything.
func (f RecipeFilter) IsZero() bool {
	return len(f.TagIDs) == 0 && len(f.IngredientIDs) == 0
}

// Store is the persistence interface consumed by the service layer.
type Store interface {
	UserStore
	SessionStore
	TagStore
	IngredientStore
	RecipeStore

	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	CountUsers(ctx context.Context) (int64, error)
}

// SessionStore persists login sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteUserSessions(ctx context.Context, userID int64) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// TagStore persists user-owned tags.
type TagStore interface {
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, userID, tagID int64) (*domain.Tag, error)
	ListTags(ctx context.Context, userID int64, assignedOnly bool) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, t *domain.Tag) error
	DeleteTag(ctx context.Context, userID, tagID int64) error
	CountTagsOwned(ctx context.Context, userID int64, tagIDs []int64) (int64, error)
}

// IngredientStore persists user-owned ingredients.
type IngredientStore interface {
	CreateIngredient(ctx context.Context, i *domain.Ingredient) error
	GetIngredient(ctx context.Context, userID, ingredientID int64) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context, userID int64, assignedOnly bool) ([]*domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, i *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, userID, ingredientID int64) error
	CountIngredientsOwned(ctx context.Context, userID int64, ingredientIDs []int64) (int64, error)
}

// RecipeStore persists user-owned recipes and their associations.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, r *domain.Recipe) error
	GetRecipe(ctx context.Context, userID, recipeID int64) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, userID int64, filter RecipeFilter) ([]*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, r *domain.Recipe) error
	DeleteRecipe(ctx context.Context, userID, recipeID int64) error

	SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error
	SetRecipeIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error
	SetRecipeImage(ctx context.Context, userID, recipeID int64, imagePath, blurhash string) error
}
