package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/platefulapp/plateful-server/internal/errors"
)

func TestTagService_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")
	ctx := context.Background()

	for _, name := range []string{"Vegan", "Dessert"} {
		_, err := env.tags.Create(ctx, user.ID, TagRequest{Name: name})
		require.NoError(t, err)
	}

	tags, err := env.tags.List(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	// Ordered by name, descending.
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
}

func TestTagService_Create_Validation(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")

	_, err := env.tags.Create(context.Background(), user.ID, TagRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestTagService_List_ScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	owner := registerUser(t, env, "owner@example.com")
	other := registerUser(t, env, "other@example.com")
	ctx := context.Background()

	_, err := env.tags.Create(ctx, owner.ID, TagRequest{Name: "Vegan"})
	require.NoError(t, err)

	tags, err := env.tags.List(ctx, other.ID, false)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagService_Update(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, user.ID, TagRequest{Name: "Vegan"})
	require.NoError(t, err)

	updated, err := env.tags.Update(ctx, user.ID, tag.ID, TagRequest{Name: "Vegetarian"})
	require.NoError(t, err)
	assert.Equal(t, "Vegetarian", updated.Name)
}

func TestTagService_Update_OtherUsersTag(t *testing.T) {
	env := newTestEnv(t)
	owner := registerUser(t, env, "owner@example.com")
	other := registerUser(t, env, "other@example.com")
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, owner.ID, TagRequest{Name: "Vegan"})
	require.NoError(t, err)

	_, err = env.tags.Update(ctx, other.ID, tag.ID, TagRequest{Name: "Stolen"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestTagService_Delete(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")
	ctx := context.Background()

	tag, err := env.tags.Create(ctx, user.ID, TagRequest{Name: "Vegan"})
	require.NoError(t, err)

	require.NoError(t, env.tags.Delete(ctx, user.ID, tag.ID))

	err = env.tags.Delete(ctx, user.ID, tag.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestIngredientService_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")
	ctx := context.Background()

	for _, name := range []string{"Salt", "Turmeric"} {
		_, err := env.ingredients.Create(ctx, user.ID, IngredientRequest{Name: name})
		require.NoError(t, err)
	}

	ingredients, err := env.ingredients.List(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Turmeric", ingredients[0].Name)
	assert.Equal(t, "Salt", ingredients[1].Name)
}

func TestIngredientService_Update_OtherUsersIngredient(t *testing.T) {
	env := newTestEnv(t)
	owner := registerUser(t, env, "owner@example.com")
	other := registerUser(t, env, "other@example.com")
	ctx := context.Background()

	ingredient, err := env.ingredients.Create(ctx, owner.ID, IngredientRequest{Name: "Salt"})
	require.NoError(t, err)

	_, err = env.ingredients.Update(ctx, other.ID, ingredient.ID, IngredientRequest{Name: "Pepper"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestIngredientService_Delete(t *testing.T) {
	env := newTestEnv(t)
	user := registerUser(t, env, "cook@example.com")
	ctx := context.Background()

	ingredient, err := env.ingredients.Create(ctx, user.ID, IngredientRequest{Name: "Salt"})
	require.NoError(t, err)

	require.NoError(t, env.ingredients.Delete(ctx, user.ID, ingredient.ID))

	err = env.ingredients.Delete(ctx, user.ID, ingredient.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
