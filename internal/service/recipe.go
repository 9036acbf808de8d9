package service

import (
	"context"
	"fmt"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	apperrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/media/images"
	"github.com/platefulapp/plateful-server/internal/metrics"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// RecipeService manages a user's recipes, their tag and ingredient
// associations, and recipe images.
type RecipeService struct {
	store     store.Store
	images    *images.Storage
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	store store.Store,
	images *images.Storage,
	validator *validation.Validator,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *RecipeService {
	return &RecipeService{
		store:     store,
		images:    images,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// RecipeRequest contains a recipe's full set of mutable fields. Used for
// create and full update, where absent association lists mean "none".
type RecipeRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	TimeMinutes int     `json:"time_minutes" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Link        string  `json:"link" validate:"max=255"`
	Tags        []int64 `json:"tags"`
	Ingredients []int64 `json:"ingredients"`
}

// RecipePatch contains a partial update. Nil fields keep their current
// values, including the association lists.
type RecipePatch struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,max=255"`
	TimeMinutes *int     `json:"time_minutes,omitempty" validate:"omitempty,gte=0"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Link        *string  `json:"link,omitempty" validate:"omitempty,max=255"`
	Tags        []int64  `json:"tags,omitempty"`
	Ingredients []int64  `json:"ingredients,omitempty"`
}

// Create adds a new recipe with its tag and ingredient associations.
// Every referenced tag and ingredient must belong to the user.
func (s *RecipeService) Create(ctx context.Context, userID int64, req RecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tagIDs := dedupeIDs(req.Tags)
	ingredientIDs := dedupeIDs(req.Ingredients)
	if err := s.checkAssociations(ctx, userID, tagIDs, ingredientIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &domain.Recipe{
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	if err := s.store.SetRecipeTags(ctx, recipe.ID, tagIDs); err != nil {
		return nil, fmt.Errorf("set recipe tags: %w", err)
	}
	if err := s.store.SetRecipeIngredients(ctx, recipe.ID, ingredientIDs); err != nil {
		return nil, fmt.Errorf("set recipe ingredients: %w", err)
	}

	s.logger.Info("recipe created", "user_id", userID, "recipe_id", recipe.ID)

	return s.Get(ctx, userID, recipe.ID)
}

// List returns the user's recipes, newest first, optionally filtered by
// tag and ingredient IDs. Multiple IDs within one dimension widen the
// match; filtering on both dimensions narrows it.
func (s *RecipeService) List(ctx context.Context, userID int64, filter store.RecipeFilter) ([]*domain.Recipe, error) {
	recipes, err := s.store.ListRecipes(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// Get returns one of the user's recipes with its associations loaded.
func (s *RecipeService) Get(ctx context.Context, userID, recipeID int64) (*domain.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// Update fully replaces a recipe's fields and associations. Association
// lists omitted from the request clear the corresponding links.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID int64, req RecipeRequest) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	tagIDs := dedupeIDs(req.Tags)
	ingredientIDs := dedupeIDs(req.Ingredients)
	if err := s.checkAssociations(ctx, userID, tagIDs, ingredientIDs); err != nil {
		return nil, err
	}

	recipe.Title = req.Title
	recipe.TimeMinutes = req.TimeMinutes
	recipe.Price = req.Price
	recipe.Link = req.Link
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if err := s.store.SetRecipeTags(ctx, recipe.ID, tagIDs); err != nil {
		return nil, fmt.Errorf("set recipe tags: %w", err)
	}
	if err := s.store.SetRecipeIngredients(ctx, recipe.ID, ingredientIDs); err != nil {
		return nil, fmt.Errorf("set recipe ingredients: %w", err)
	}

	return s.Get(ctx, userID, recipeID)
}

// Patch applies a partial update. Association lists are replaced only
// when present in the request.
func (s *RecipeService) Patch(ctx context.Context, userID, recipeID int64, req RecipePatch) (*domain.Recipe, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	var tagIDs, ingredientIDs []int64
	if req.Tags != nil {
		tagIDs = dedupeIDs(req.Tags)
	}
	if req.Ingredients != nil {
		ingredientIDs = dedupeIDs(req.Ingredients)
	}
	if err := s.checkAssociations(ctx, userID, tagIDs, ingredientIDs); err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}
	recipe.Touch()

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if req.Tags != nil {
		if err := s.store.SetRecipeTags(ctx, recipe.ID, tagIDs); err != nil {
			return nil, fmt.Errorf("set recipe tags: %w", err)
		}
	}
	if req.Ingredients != nil {
		if err := s.store.SetRecipeIngredients(ctx, recipe.ID, ingredientIDs); err != nil {
			return nil, fmt.Errorf("set recipe ingredients: %w", err)
		}
	}

	return s.Get(ctx, userID, recipeID)
}

// Delete removes a recipe, its associations, and its image file.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID int64) error {
	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(ctx, userID, recipeID); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("recipe not found")
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	if recipe.HasImage() {
		if err := s.images.Delete(recipe.ImagePath); err != nil {
			// Orphaned file, not worth failing the request over.
			s.logger.Warn("failed to delete recipe image", "path", recipe.ImagePath, "error", err)
		}
	}

	s.logger.Info("recipe deleted", "user_id", userID, "recipe_id", recipeID)

	return nil
}

// SaveImage stores an uploaded image for a recipe, replacing any
// previous one. The upload must decode as a supported image format;
// filename supplies the stored extension.
func (s *RecipeService) SaveImage(ctx context.Context, userID, recipeID int64, data []byte, filename string) (*domain.Recipe, error) {
	recipe, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	saved, err := s.images.Save(data, filename)
	if err != nil {
		if apperrors.Is(err, images.ErrInvalidImage) {
			return nil, apperrors.ValidationWithDetails("validation failed",
				map[string]string{"image": "must be a valid image file"})
		}
		return nil, fmt.Errorf("save image: %w", err)
	}

	if err := s.store.SetRecipeImage(ctx, userID, recipeID, saved.Path, saved.Blurhash); err != nil {
		// Roll back the orphaned file before surfacing the error.
		_ = s.images.Delete(saved.Path)
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("set recipe image: %w", err)
	}

	if recipe.HasImage() && recipe.ImagePath != saved.Path {
		if err := s.images.Delete(recipe.ImagePath); err != nil {
			s.logger.Warn("failed to delete replaced image", "path", recipe.ImagePath, "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveImageUpload()
	}
	s.logger.Info("recipe image uploaded", "user_id", userID, "recipe_id", recipeID, "path", saved.Path)

	return s.Get(ctx, userID, recipeID)
}

// checkAssociations verifies that every referenced tag and ingredient
// belongs to the user.
func (s *RecipeService) checkAssociations(ctx context.Context, userID int64, tagIDs, ingredientIDs []int64) error {
	if len(tagIDs) > 0 {
		owned, err := s.store.CountTagsOwned(ctx, userID, tagIDs)
		if err != nil {
			return fmt.Errorf("check tags: %w", err)
		}
		if owned != int64(len(tagIDs)) {
			return apperrors.ValidationWithDetails("validation failed",
				map[string]string{"tags": "contains unknown tag IDs"})
		}
	}
	if len(ingredientIDs) > 0 {
		owned, err := s.store.CountIngredientsOwned(ctx, userID, ingredientIDs)
		if err != nil {
			return fmt.Errorf("check ingredients: %w", err)
		}
		if owned != int64(len(ingredientIDs)) {
			return apperrors.ValidationWithDetails("validation failed",
				map[string]string{"ingredients": "contains unknown ingredient IDs"})
		}
	}
	return nil
}

// dedupeIDs removes duplicates while preserving order.
func dedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
