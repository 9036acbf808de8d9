package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	"github.com/platefulapp/plateful-server/internal/store"
)

func makeTestSession(id string, userID int64, ttl time.Duration) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestCreateAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	sess := makeTestSession("ses-abc", u.ID, time.Hour)

	if err := s.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := s.GetSession(ctx, "ses-abc")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.UserID != u.ID {
		t.Errorf("UserID: got %d, want %d", got.UserID, u.ID)
	}
	if got.ExpiresAt.Unix() != sess.ExpiresAt.Unix() {
		t.Errorf("ExpiresAt: got %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
}

func TestCreateSession_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	if err := s.CreateSession(ctx, makeTestSession("ses-dup", u.ID, time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	err := s.CreateSession(ctx, makeTestSession("ses-dup", u.ID, time.Hour))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	if err := s.CreateSession(ctx, makeTestSession("ses-del", u.ID, time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := s.DeleteSession(ctx, "ses-del"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(ctx, "ses-del"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteSession(ctx, "ses-del"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteUserSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@example.com")
	bob := createTestUser(t, s, "bob@example.com")

	for _, id := range []string{"ses-a1", "ses-a2"} {
		if err := s.CreateSession(ctx, makeTestSession(id, alice.ID, time.Hour)); err != nil {
			t.Fatalf("CreateSession %s: %v", id, err)
		}
	}
	if err := s.CreateSession(ctx, makeTestSession("ses-b1", bob.ID, time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := s.DeleteUserSessions(ctx, alice.ID); err != nil {
		t.Fatalf("DeleteUserSessions: %v", err)
	}

	if _, err := s.GetSession(ctx, "ses-a1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ses-a1 should be gone, got %v", err)
	}
	if _, err := s.GetSession(ctx, "ses-b1"); err != nil {
		t.Errorf("bob's session should survive, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := createTestUser(t, s, "cook@example.com")
	if err := s.CreateSession(ctx, makeTestSession("ses-old", u.ID, -time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := s.CreateSession(ctx, makeTestSession("ses-new", u.ID, time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	n, err := s.DeleteExpiredSessions(ctx)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
	if _, err := s.GetSession(ctx, "ses-new"); err != nil {
		t.Errorf("fresh session should survive, got %v", err)
	}
}
