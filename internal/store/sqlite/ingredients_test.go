package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/platefulapp/plateful-server/internal/store"
)

func TestCreateAndGetIngredient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	ing := createTestIngredient(t, s, u.ID, "Cucumber")
	if ing.ID == 0 {
		t.Fatal("expected assigned ID")
	}

	got, err := s.GetIngredient(ctx, u.ID, ing.ID)
	if err != nil {
		t.Fatalf("GetIngredient: %v", err)
	}
	if got.Name != "Cucumber" {
		t.Errorf("Name: got %q", got.Name)
	}
}

func TestGetIngredient_OtherUserReportsNotFound(t *testing.T) {
	s := newTestStore(t)

	owner := createTestUser(t, s, "owner@example.com")
	intruder := createTestUser(t, s, "intruder@example.com")
	ing := createTestIngredient(t, s, owner.ID, "Secret spice")

	_, err := s.GetIngredient(context.Background(), intruder.ID, ing.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListIngredients_OrderedNameDesc(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	createTestIngredient(t, s, u.ID, "Apple")
	createTestIngredient(t, s, u.ID, "Zucchini")

	ingredients, err := s.ListIngredients(ctx, u.ID, false)
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(ingredients) != 2 {
		t.Fatalf("expected 2, got %d", len(ingredients))
	}
	if ingredients[0].Name != "Zucchini" || ingredients[1].Name != "Apple" {
		t.Errorf("order: got %q, %q", ingredients[0].Name, ingredients[1].Name)
	}
}

func TestListIngredients_AssignedOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	used := createTestIngredient(t, s, u.ID, "Salt")
	createTestIngredient(t, s, u.ID, "Dust")

	r := createTestRecipe(t, s, u.ID, "Soup")
	if err := s.SetRecipeIngredients(ctx, r.ID, []int64{used.ID}); err != nil {
		t.Fatalf("SetRecipeIngredients: %v", err)
	}

	ingredients, err := s.ListIngredients(ctx, u.ID, true)
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(ingredients) != 1 || ingredients[0].ID != used.ID {
		t.Fatalf("expected only the assigned ingredient, got %d", len(ingredients))
	}
}

func TestUpdateAndDeleteIngredient(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	ing := createTestIngredient(t, s, u.ID, "Suger")

	ing.Name = "Sugar"
	ing.Touch()
	if err := s.UpdateIngredient(ctx, ing); err != nil {
		t.Fatalf("UpdateIngredient: %v", err)
	}

	got, err := s.GetIngredient(ctx, u.ID, ing.ID)
	if err != nil {
		t.Fatalf("GetIngredient: %v", err)
	}
	if got.Name != "Sugar" {
		t.Errorf("Name: got %q", got.Name)
	}

	if err := s.DeleteIngredient(ctx, u.ID, ing.ID); err != nil {
		t.Fatalf("DeleteIngredient: %v", err)
	}
	if _, err := s.GetIngredient(ctx, u.ID, ing.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountIngredientsOwned(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	other := createTestUser(t, s, "other@example.com")
	mine := createTestIngredient(t, s, u.ID, "Mine")
	theirs := createTestIngredient(t, s, other.ID, "Theirs")

	n, err := s.CountIngredientsOwned(ctx, u.ID, []int64{mine.ID, theirs.ID})
	if err != nil {
		t.Fatalf("CountIngredientsOwned: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 owned, got %d", n)
	}
}
