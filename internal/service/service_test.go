package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/auth"
	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/media/images"
	"github.com/platefulapp/plateful-server/internal/metrics"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/store/sqlite"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// testEnv wires the full service stack against a temporary database.
type testEnv struct {
	store       store.Store
	auth        *AuthService
	users       *UserService
	tags        *TagService
	ingredients *IngredientService
	recipes     *RecipeService
	images      *images.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	log := logger.New(logger.Config{Level: slog.LevelError, Format: "json"})

	s, err := sqlite.Open(filepath.Join(dir, "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	imageStore, err := images.NewStorage(filepath.Join(dir, "media"))
	require.NoError(t, err)

	v := validation.New()
	m := metrics.New()

	return &testEnv{
		store:       s,
		auth:        NewAuthService(s, tokens, v, m, log),
		users:       NewUserService(s, v, log),
		tags:        NewTagService(s, v, log),
		ingredients: NewIngredientService(s, v, log),
		recipes:     NewRecipeService(s, imageStore, v, m, log),
		images:      imageStore,
	}
}

// registerUser creates an account and returns the stored user.
func registerUser(t *testing.T, env *testEnv, email string) *domain.User {
	t.Helper()
	user, err := env.auth.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "testpass123",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return user
}
