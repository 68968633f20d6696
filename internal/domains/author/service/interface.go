package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author/model"
)

// ServiceInterface defines business logic operations for Author domain
type ServiceInterface interface {
	// Create validates name (non-blank, unique) and phone number, then inserts
	// Errors: *validator.Error
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)

	// GetByID errors: ErrAuthorNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// List returns a page of authors
	// Default limit 20, max 100; search is a case-insensitive partial match
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, *model.PaginationMeta, error)

	// Update assigns only the non-nil fields, validating each one
	// Errors: ErrAuthorNotFound, *validator.Error
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error)

	// Delete errors: ErrAuthorNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
