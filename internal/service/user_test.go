package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/auth"
	apperrors "github.com/platefulapp/plateful-server/internal/errors"
)

func TestUserService_GetProfile(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")

	got, err := env.users.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Name, got.Name)
}

func TestUserService_UpdateProfile_Full(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")

	updated, err := env.users.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Email:    "newcook@example.com",
		Name:     "New Name",
		Password: "newpass123",
	})
	require.NoError(t, err)
	assert.Equal(t, "newcook@example.com", updated.Email)
	assert.Equal(t, "New Name", updated.Name)

	valid, err := auth.VerifyPassword(updated.PasswordHash, "newpass123")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestUserService_UpdateProfile_KeepsPassword(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")

	updated, err := env.users.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Email: "cook@example.com",
		Name:  "Renamed",
	})
	require.NoError(t, err)

	valid, err := auth.VerifyPassword(updated.PasswordHash, "testpass123")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "first@example.com")
	second := registerUser(t, env, "second@example.com")

	_, err := env.users.UpdateProfile(context.Background(), second.ID, UpdateProfileRequest{
		Email: "first@example.com",
		Name:  "Second",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyExists))
}

func TestUserService_PatchProfile(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")

	name := "Patched"
	updated, err := env.users.PatchProfile(context.Background(), user.ID, PatchProfileRequest{
		Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Patched", updated.Name)
	// Email untouched.
	assert.Equal(t, "cook@example.com", updated.Email)
}

func TestUserService_PatchProfile_Password(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")

	password := "patched-pass"
	updated, err := env.users.PatchProfile(context.Background(), user.ID, PatchProfileRequest{
		Password: &password,
	})
	require.NoError(t, err)

	valid, err := auth.VerifyPassword(updated.PasswordHash, "patched-pass")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestUserService_PatchProfile_ShortPassword(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")

	for _, password := range []string{"pw", ""} {
		p := password
		_, err := env.users.PatchProfile(context.Background(), user.ID, PatchProfileRequest{
			Password: &p,
		})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	}
}

func TestUserService_UpdateProfile_LowercasesEmail(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")

	updated, err := env.users.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Email: "New.Cook@EXAMPLE.com",
		Name:  "Cook",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.cook@example.com", updated.Email)
}
