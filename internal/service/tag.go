package service

import (
	"context"
	"fmt"
	"time"

	"github.com/platefulapp/plateful-server/internal/domain"
	apperrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/store"
	"github.com/platefulapp/plateful-server/internal/validation"
)

// TagService manages a user's recipe tags.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *logger.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *logger.Logger) *TagService {
	return &TagService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// TagRequest contains a tag's mutable fields.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Create adds a new tag owned by the user.
func (s *TagService) Create(ctx context.Context, userID int64, req TagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	tag := &domain.Tag{
		UserID:    userID,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

// List returns the user's tags, newest name first. With assignedOnly set
// it returns only tags attached to at least one of the user's recipes.
func (s *TagService) List(ctx context.Context, userID int64, assignedOnly bool) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx, userID, assignedOnly)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Update renames a tag. Returns a not found error for tags owned by
// someone else.
func (s *TagService) Update(ctx context.Context, userID, tagID int64, req TagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tag, err := s.store.GetTag(ctx, userID, tagID)
	if err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	tag.Name = req.Name
	tag.Touch()
	if err := s.store.UpdateTag(ctx, tag); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

// Delete removes a tag and detaches it from any recipes.
func (s *TagService) Delete(ctx context.Context, userID, tagID int64) error {
	if err := s.store.DeleteTag(ctx, userID, tagID); err != nil {
		if apperrors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("tag not found")
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
