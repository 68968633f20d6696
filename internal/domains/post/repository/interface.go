package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post/model"
)

// RepositoryInterface defines Post data access operations
type RepositoryInterface interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)

	// GetByID returns ErrPostNotFound if not exists
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// List returns a page ordered by created_at DESC, plus total count
	List(ctx context.Context, filter model.PostFilter) ([]model.Post, int64, error)

	// Update writes every mutable field; updated_at is set by the database
	Update(ctx context.Context, post *model.Post) (*model.Post, error)

	// Delete returns ErrPostNotFound if not exists
	Delete(ctx context.Context, id uuid.UUID) error
}
