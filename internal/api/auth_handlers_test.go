package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"email":    "cook@example.com",
		"password": "testpass123",
		"name":     "Cook",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	user := decodeBody[UserResponse](t, resp.Body.Bytes())
	assert.NotZero(t, user.ID)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.Equal(t, "Cook", user.Name)
	// The password never appears in responses.
	assert.NotContains(t, resp.Body.String(), "testpass123")
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.createUserAndToken(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"email":    "COOK@example.com",
		"password": "otherpass",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "ALREADY_EXISTS")
}

func TestCreateUser_Validation(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "missing password",
			body:       map[string]any{"email": "cook@example.com"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email",
			body:       map[string]any{"email": "not-an-email", "password": "testpass123"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       map[string]any{"email": "cook@example.com", "password": "pw"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/users", tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
		})
	}
}

func TestCreateToken_Success(t *testing.T) {
	ts := setupTestServer(t)
	ts.createUserAndToken(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/users/token", map[string]any{
		"email":    "cook@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	token := decodeBody[TokenResponse](t, resp.Body.Bytes())
	assert.True(t, strings.HasPrefix(token.Token, "v4.local."))
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Positive(t, token.ExpiresIn)
}

func TestCreateToken_BadCredentials(t *testing.T) {
	ts := setupTestServer(t)
	ts.createUserAndToken(t, "cook@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"wrong password", map[string]any{"email": "cook@example.com", "password": "wrongpass"}},
		{"unknown email", map[string]any{"email": "nobody@example.com", "password": "testpass123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/users/token", tt.body)
			// Bad credentials are a request error on the token endpoint.
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
		})
	}
}

func TestRelogin_InvalidatesOldToken(t *testing.T) {
	ts := setupTestServer(t)
	firstAuth := ts.createUserAndToken(t, "cook@example.com")

	// Second login replaces the session.
	resp := ts.api.Post("/api/v1/users/token", map[string]any{
		"email":    "cook@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/users/me", firstAuth)
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
}

func TestLogout(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.createUserAndToken(t, "cook@example.com")

	resp := ts.api.Post("/api/v1/users/logout", authHeader)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/users/me", authHeader)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogout_NoToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/users/logout")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
