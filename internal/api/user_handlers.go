package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get own profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/me",
		Summary:     "Replace own profile",
		Description: "Replaces email and name; a new password is optional",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update own profile",
		Description: "Updates only the fields present in the request",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePatchProfile)
}

// === DTOs ===

// GetProfileInput carries the bearer token.
type GetProfileInput struct {
	Authorization string `header:"Authorization"`
}

// ProfileOutput wraps a user profile for Huma.
type ProfileOutput struct {
	Body UserResponse
}

// UpdateProfileRequest is the request body for a full profile update.
type UpdateProfileRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email" doc:"Email address"`
	Name     string `json:"name,omitempty" validate:"max=255" doc:"Display name"`
	Password string `json:"password,omitempty" validate:"omitempty,min=5,max=1024" doc:"New password, keeps the current one when omitted"`
}

// UpdateProfileInput wraps the full update request for Huma.
type UpdateProfileInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateProfileRequest
}

// PatchProfileRequest is the request body for a partial profile update.
type PatchProfileRequest struct {
	Email    *string `json:"email,omitempty" doc:"Email address"`
	Name     *string `json:"name,omitempty" doc:"Display name"`
	Password *string `json:"password,omitempty" doc:"New password"`
}

// PatchProfileInput wraps the partial update request for Huma.
type PatchProfileInput struct {
	Authorization string `header:"Authorization"`
	Body          PatchProfileRequest
}

// === Handlers ===

func (s *Server) handleGetProfile(ctx context.Context, input *GetProfileInput) (*ProfileOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapUser(user)}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	updated, err := s.services.Users.UpdateProfile(ctx, user.ID, service.UpdateProfileRequest{
		Email:    input.Body.Email,
		Name:     input.Body.Name,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapUser(updated)}, nil
}

func (s *Server) handlePatchProfile(ctx context.Context, input *PatchProfileInput) (*ProfileOutput, error) {
	user, _, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	updated, err := s.services.Users.PatchProfile(ctx, user.ID, service.PatchProfileRequest{
		Email:    input.Body.Email,
		Name:     input.Body.Name,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: mapUser(updated)}, nil
}
