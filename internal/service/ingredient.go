package service

import (
	"context"
	"fmt"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	apperrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// IngredientService manages a user's ingredients.
type IngredientService struct {
	store     store.Store
	validator *validation.Validator
	logger    *logger.Logger
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(store store.Store, validator *validation.Validator, logger *logger.Logger) *IngredientService {
	return &IngredientService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// IngredientRequest contains an ingredient's mutable fields.
type IngredientRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Create adds a new ingredient owned by the user.
func (s *IngredientService) Create(ctx context.Context, userID int64, req IngredientRequest) (*domain.Ingredient, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	ingredient := &domain.Ingredient{
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateIngredient(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

// List returns the user's ingredients, newest name first. With
// assignedOnly set it returns only ingredients used by at least one of
// the user's recipes.
func (s *IngredientService) List(ctx context.Context, userID int64, assignedOnly bool) ([]*domain.Ingredient, error) {
	ingredients, err := s.store.ListIngredients(ctx, userID, assignedOnly)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// Update renames an ingredient. Returns a not found error for
// ingredients owned by someone else.
func (s *IngredientService) Update(ctx context.Context, userID, ingredientID int64, req IngredientRequest) (*domain.Ingredient, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	ingredient, err := s.store.GetIngredient(ctx, userID, ingredientID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("ingredient not found")
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}

	ingredient.Name = req.Name
	ingredient.Touch()
	if err := s.store.UpdateIngredient(ctx, ingredient); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("ingredient not found")
		}
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return ingredient, nil
}

// Delete removes an ingredient and detaches it from any recipes.
func (s *IngredientService) Delete(ctx context.Context, userID, ingredientID int64) error {
	if err := s.store.DeleteIngredient(ctx, userID, ingredientID); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("ingredient not found")
		}
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
