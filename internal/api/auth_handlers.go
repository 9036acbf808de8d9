package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/platefulapp/plateful-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Register new user",
		Description:   "Creates a new user account",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "createToken",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/token",
		Summary:     "Obtain access token",
		Description: "Authenticates a user and returns a bearer token. A new token invalidates tokens from earlier logins.",
		Tags:        []string{"Users"},
	}, s.handleCreateToken)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/logout",
		Summary:     "Logout",
		Description: "Invalidates the current session and its token",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLogout)
}

// === DTOs ===

// CreateUserRequest is the request body for user registration.
type CreateUserRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email" doc:"Email address"`
	Password string `json:"password,omitempty" validate:"required,min=5,max=1024" doc:"Password (minimum 5 characters)"`
	Name     string `json:"name,omitempty" validate:"max=255" doc:"Display name"`
}

// CreateUserInput wraps the registration request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// CreateUserOutput wraps the created user for Huma.
type CreateUserOutput struct {
	Body UserResponse
}

// CreateTokenRequest is the request body for the token endpoint.
type CreateTokenRequest struct {
	Email    string `json:"email,omitempty" validate:"required" doc:"Email address"`
	Password string `json:"password,omitempty" validate:"required" doc:"Password"`
}

// CreateTokenInput wraps the token request with proxy headers for Huma.
type CreateTokenInput struct {
	Body          CreateTokenRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`

	remoteAddr string
}

// Resolve captures the connection's remote address for rate-limit keying
// when no proxy headers are present.
func (i *CreateTokenInput) Resolve(ctx huma.Context) []error {
	i.remoteAddr = ctx.RemoteAddr()
	return nil
}

// TokenResponse contains an issued bearer token.
type TokenResponse struct {
	Token     string `json:"token" doc:"PASETO access token"`
	TokenType string `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresIn int64  `json:"expires_in" doc:"Token lifetime in seconds"`
}

// TokenOutput wraps the token response for Huma.
type TokenOutput struct {
	Body TokenResponse
}

// LogoutInput carries the bearer token to invalidate.
type LogoutInput struct {
	Authorization string `header:"Authorization"`
}

// === Handlers ===

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	user, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Name:     input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &CreateUserOutput{Body: mapUser(user)}, nil
}

func (s *Server) handleCreateToken(ctx context.Context, input *CreateTokenInput) (*TokenOutput, error) {
	if s.loginLimiter != nil {
		key := extractIP(input.XForwardedFor, input.XRealIP, input.remoteAddr)
		if key == "" {
			key = "local"
		}
		if !s.loginLimiter.Allow(key) {
			return nil, huma.Error429TooManyRequests("too many login attempts, slow down")
		}
	}

	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &TokenOutput{Body: TokenResponse{
		Token:     resp.Token,
		TokenType: resp.TokenType,
		ExpiresIn: resp.ExpiresIn,
	}}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*MessageOutput, error) {
	_, claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Auth.Logout(ctx, claims.SessionID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "logged out"}}, nil
}
