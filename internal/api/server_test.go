package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/media/images"
	"github.com/platefulapp/plateful-server/internal/metrics"
	"github.com/platefulapp/plateful-server/internal/ratelimit"
	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/store/sqlite"
	"github.com/platefulapp/plateful-server/internal/validation"
)

type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a server with all dependencies backed by a
// temporary database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	log := logger.New(logger.Config{Level: slog.LevelError, Format: "json"})

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	imageStorage, err := images.NewStorage(filepath.Join(dir, "media"))
	require.NoError(t, err)

	v := validation.New()
	m := metrics.New()

	services := &Services{
		Auth:        service.NewAuthService(st, tokens, v, m, log),
		Users:       service.NewUserService(st, v, log),
		Tags:        service.NewTagService(st, v, log),
		Ingredients: service.NewIngredientService(st, v, log),
		Recipes:     service.NewRecipeService(st, imageStorage, v, m, log),
	}

	// Generous limits so tests never trip the login limiter.
	limiter := ratelimit.New(1000, 1000)

	server := NewServer(st, services, imageStorage, m, limiter, 10<<20, log)

	return &testServer{
		Server: server,
		api:    humatest.Wrap(t, server.API()),
	}
}

// createUserAndToken registers a user and returns their bearer header.
func (ts *testServer) createUserAndToken(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/users", map[string]any{
		"email":    email,
		"password": "testpass123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.Code, "register failed: %s", resp.Body.String())

	resp = ts.api.Post("/api/v1/users/token", map[string]any{
		"email":    email,
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var token TokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &token))
	return "Authorization: Bearer " + token.Token
}

// decodeBody unmarshals a JSON response body.
func decodeBody[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}
