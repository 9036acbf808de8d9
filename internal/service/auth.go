// Package service implements the application's business logic on top of
// the store layer. Services validate input, enforce ownership, and return
// domain errors that the API layer maps to HTTP responses.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	apperrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/id"
	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/metrics"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// AuthService handles user registration, login, and token verification.
type AuthService struct {
	store     store.Store
	tokens    *auth.TokenService
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokens *auth.TokenService,
	validator *validation.Validator,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *AuthService {
	return &AuthService{
		store:     store,
		tokens:    tokens,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=1024"`
	Name     string `json:"name" validate:"max=255"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse contains an issued access token.
type TokenResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	User      *domain.User `json:"-"`
	ExpiresAt time.Time    `json:"-"`
}

// Register creates a new user account. Emails are lower-cased before
// storage, so "A@B.com" and "a@b.com" are the same account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        domain.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Name:         req.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if apperrors.Is(err, store.ErrAlreadyExists) {
			return nil, apperrors.AlreadyExists("a user with this email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return user, nil
}

// Login verifies credentials and issues an access token. Any previous
// sessions for the user are invalidated, so each login revokes tokens
// issued before it.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	// Blank fields get the same generic rejection as wrong credentials.
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return nil, s.loginFailure()
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			// Don't leak whether the email exists.
			return nil, s.loginFailure()
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, s.loginFailure()
	}

	if !user.IsActive {
		return nil, s.loginFailure()
	}

	// One active session per user: logging in again invalidates tokens
	// from earlier logins.
	if err := s.store.DeleteUserSessions(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("clear previous sessions: %w", err)
	}

	sessionID, err := id.Generate("ses")
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	now := time.Now()
	session := &domain.Session{
		ID:        sessionID,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.TokenDuration()),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.tokens.GenerateToken(user, session.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "session_id", session.ID)

	return &TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TokenDuration().Seconds()),
		User:      user,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// loginFailure records the failure metric and returns the generic
// credentials error used for every rejection path.
func (s *AuthService) loginFailure() error {
	if s.metrics != nil {
		s.metrics.ObserveLoginFailure()
	}
	return apperrors.InvalidCredentials("unable to authenticate with provided credentials")
}

// VerifyAccessToken validates a bearer token and returns the user it
// belongs to. The session embedded in the token must still exist, so
// tokens die when their session is deleted by a later login or logout.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, nil, apperrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	session, err := s.store.GetSession(ctx, claims.SessionID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, nil, apperrors.Unauthorized("session no longer valid")
		}
		return nil, nil, fmt.Errorf("lookup session: %w", err)
	}
	if session.IsExpired(time.Now()) {
		return nil, nil, apperrors.TokenExpired("session expired")
	}

	user, err := s.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, nil, apperrors.Unauthorized("user no longer exists")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return nil, nil, apperrors.Unauthorized("account is disabled")
	}

	return user, claims, nil
}

// Logout deletes the session a token was issued under, invalidating it.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions removes sessions past their expiry. Intended to be
// run periodically from the main loop.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx)
}
