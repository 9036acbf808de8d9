package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "Cook@Example.com")
	if u.ID == 0 {
		t.Fatal("expected assigned ID")
	}

	got, err := s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if got.Email != "Cook@Example.com" {
		t.Errorf("Email: got %q", got.Email)
	}
	if !got.IsActive {
		t.Error("expected active user")
	}
	if got.CreatedAt.Unix() != u.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, u.CreatedAt)
	}
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")

	got, err := s.GetUserByEmail(ctx, "COOK@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID: got %d, want %d", got.ID, u.ID)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "cook@example.com")

	dup := createTestUserValue("COOK@example.com")
	err := s.CreateUser(ctx, dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetUserByID(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	u.Name = "New Name"
	u.Email = "newcook@example.com"
	u.PasswordHash = "$argon2id$other"
	u.Touch()

	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "newcook@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("Name: got %q", got.Name)
	}
	if got.PasswordHash != "$argon2id$other" {
		t.Errorf("PasswordHash: got %q", got.PasswordHash)
	}
}

func TestUpdateUser_EmailCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestUser(t, s, "first@example.com")
	second := createTestUser(t, s, "second@example.com")

	second.Email = "FIRST@example.com"
	err := s.UpdateUser(ctx, second)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	ghost := createTestUserValue("ghost@example.com")
	ghost.ID = 12345
	if err := s.UpdateUser(context.Background(), ghost); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 users, got %d", n)
	}

	createTestUser(t, s, "a@example.com")
	createTestUser(t, s, "b@example.com")

	n, err = s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 users, got %d", n)
	}
}

// createTestUserValue builds a user without inserting it.
func createTestUserValue(email string) *domain.User {
	now := time.Now()
	return &domain.User{
		Email:        email,
		PasswordHash: "$argon2id$stub",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
