package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) createTag(t *testing.T, authHeader, name string) TagResponse {
	t.Helper()
	resp := ts.api.Post("/api/v1/tags", authHeader, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decodeBody[TagResponse](t, resp.Body.Bytes())
}

func (ts *testServer) createIngredient(t *testing.T, authHeader, name string) IngredientResponse {
	t.Helper()
	resp := ts.api.Post("/api/v1/ingredients", authHeader, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decodeBody[IngredientResponse](t, resp.Body.Bytes())
}

func TestTags_CreateAndList(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.createUserAndToken(t, "cook@example.com")

	ts.createTag(t, authHeader, "Vegan")
	ts.createTag(t, authHeader, "Dessert")

	resp := ts.api.Get("/api/v1/tags", authHeader)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	tags := decodeBody[[]TagResponse](t, resp.Body.Bytes())
	require.Len(t, tags, 2)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
}

func TestTags_ListScopedToUser(t *testing.T) {
	ts := setupTestServer(t)
	ownerAuth := ts.createUserAndToken(t, "owner@example.com")
	otherAuth := ts.createUserAndToken(t, "other@example.com")

	ts.createTag(t, ownerAuth, "Vegan")

	resp := ts.api.Get("/api/v1/tags", otherAuth)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeBody[[]TagResponse](t, resp.Body.Bytes()))
}

func TestTags_AssignedOnly(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.createUserAndToken(t, "cook@example.com")

	vegan := ts.createTag(t, authHeader, "Vegan")
	ts.createTag(t, authHeader, "Unused")

	resp := ts.api.Post("/api/v1/recipes", authHeader, map[string]any{
		"title":        "Dal",
		"time_minutes": 30,
		"price":        5.0,
		"tags":         []int64{vegan.ID},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/tags?assigned_only=true", authHeader)
	require.Equal(t, http.StatusOK, resp.Code)

	tags := decodeBody[[]TagResponse](t, resp.Body.Bytes())
	require.Len(t, tags, 1)
	assert.Equal(t, "Vegan", tags[0].Name)
}

func TestTags_Update(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.createUserAndToken(t, "cook@example.com")

	tag := ts.createTag(t, authHeader, "Vegan")

	resp := ts.api.Patch(fmt.Sprintf("/api/v1/tags/%d", tag.ID), authHeader, map[string]any{
		"name": "Vegetarian",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Vegetarian", decodeBody[TagResponse](t, resp.Body.Bytes()).Name)
}

func TestTags_UpdateOtherUsers(t *testing.T) {
	ts := setupTestServer(t)
	ownerAuth := ts.createUserAndToken(t, "owner@example.com")
	otherAuth := ts.createUserAndToken(t, "other@example.com")

	tag := ts.createTag(t, ownerAuth, "Vegan")

	resp := ts.api.Put(fmt.Sprintf("/api/v1/tags/%d", tag.ID), otherAuth, map[string]any{
		"name": "Stolen",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestTags_Delete(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.createUserAndToken(t, "cook@example.com")

	tag := ts.createTag(t, authHeader, "Vegan")

	resp := ts.api.Delete(fmt.Sprintf("/api/v1/tags/%d", tag.ID), authHeader)
	assert.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	resp = ts.api.Delete(fmt.Sprintf("/api/v1/tags/%d", tag.ID), authHeader)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestIngredients_CreateAndList(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.createUserAndToken(t, "cook@example.com")

	ts.createIngredient(t, authHeader, "Salt")
	ts.createIngredient(t, authHeader, "Turmeric")

	resp := ts.api.Get("/api/v1/ingredients", authHeader)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	ingredients := decodeBody[[]IngredientResponse](t, resp.Body.Bytes())
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Turmeric", ingredients[0].Name)
	assert.Equal(t, "Salt", ingredients[1].Name)
}

func TestIngredients_AssignedOnly(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.createUserAndToken(t, "cook@example.com")

	lentils := ts.createIngredient(t, authHeader, "Lentils")
	ts.createIngredient(t, authHeader, "Unused")

	resp := ts.api.Post("/api/v1/recipes", authHeader, map[string]any{
		"title":        "Dal",
		"time_minutes": 30,
		"price":        5.0,
		"ingredients":  []int64{lentils.ID},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/ingredients?assigned_only=true", authHeader)
	require.Equal(t, http.StatusOK, resp.Code)

	ingredients := decodeBody[[]IngredientResponse](t, resp.Body.Bytes())
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Lentils", ingredients[0].Name)
}

func TestIngredients_Delete(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.createUserAndToken(t, "cook@example.com")

	ingredient := ts.createIngredient(t, authHeader, "Salt")

	resp := ts.api.Delete(fmt.Sprintf("/api/v1/ingredients/%d", ingredient.ID), authHeader)
	assert.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())
}
