package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/service"
)

func (s *Server) registerIngredientRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listIngredients",
		Method:      http.MethodGet,
		Path:        "/api/v1/ingredients",
		Summary:     "List ingredients",
		Description: "Returns the caller's ingredients, ordered by name descending",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListIngredients)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createIngredient",
		Method:        http.MethodPost,
		Path:          "/api/v1/ingredients",
		Summary:       "Create ingredient",
		Tags:          []string{"Ingredients"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateIngredient",
		Method:      http.MethodPut,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Replace ingredient",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchIngredient",
		Method:      http.MethodPatch,
		Path:        "/api/v1/ingredients/{id}",
		Summary:     "Update ingredient",
		Tags:        []string{"Ingredients"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePatchIngredient)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteIngredient",
		Method:        http.MethodDelete,
		Path:          "/api/v1/ingredients/{id}",
		Summary:       "Delete ingredient",
		Tags:          []string{"Ingredients"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteIngredient)
}

// === DTOs ===

// ListIngredientsInput carries the optional assigned_only filter.
type ListIngredientsInput struct {
	Authorization string `header:"Authorization"`
	AssignedOnly  bool   `query:"assigned_only" doc:"Only return ingredients used by at least one recipe"`
}

// IngredientListOutput wraps an ingredient list for Huma.
type IngredientListOutput struct {
	Body []IngredientResponse
}

// IngredientRequest is the request body for creating or renaming an
// ingredient.
type IngredientRequest struct {
	Name string `json:"name,omitempty" validate:"required,max=255" doc:"Ingredient name"`
}

// CreateIngredientInput wraps the create request for Huma.
type CreateIngredientInput struct {
	Authorization string `header:"Authorization"`
	Body          IngredientRequest
}

// IngredientDetailInput addresses a single ingredient.
type IngredientDetailInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Ingredient ID"`
}

// UpdateIngredientInput wraps the rename request for Huma.
type UpdateIngredientInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Ingredient ID"`
	Body          IngredientRequest
}

// IngredientOutput wraps a single ingredient for Huma.
type IngredientOutput struct {
	Body IngredientResponse
}

// === Handlers ===

func (s *Server) handleListIngredients(ctx context.Context, input *ListIngredientsInput) (*IngredientListOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.services.Ingredients.List(ctx, user.ID, input.AssignedOnly)
	if err != nil {
		return nil, err
	}

	out := make([]IngredientResponse, len(ingredients))
	for i, ingredient := range ingredients {
		out[i] = mapIngredient(ingredient)
	}
	return &IngredientListOutput{Body: out}, nil
}

func (s *Server) handleCreateIngredient(ctx context.Context, input *CreateIngredientInput) (*IngredientOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	ingredient, err := s.services.Ingredients.Create(ctx, user.ID, service.IngredientRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &IngredientOutput{Body: mapIngredient(ingredient)}, nil
}

func (s *Server) handleUpdateIngredient(ctx context.Context, input *UpdateIngredientInput) (*IngredientOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	ingredient, err := s.services.Ingredients.Update(ctx, user.ID, input.ID, service.IngredientRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}

	return &IngredientOutput{Body: mapIngredient(ingredient)}, nil
}

// handlePatchIngredient reuses the full update: an ingredient's only
// mutable field is its name.
func (s *Server) handlePatchIngredient(ctx context.Context, input *UpdateIngredientInput) (*IngredientOutput, error) {
	return s.handleUpdateIngredient(ctx, input)
}

func (s *Server) handleDeleteIngredient(ctx context.Context, input *IngredientDetailInput) (*struct{}, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Ingredients.Delete(ctx, user.ID, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
