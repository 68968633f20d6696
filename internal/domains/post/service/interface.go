package service

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/post/model"
)

// ServiceInterface defines business logic operations for Post domain
type ServiceInterface interface {
	// Create validates title, content, category and summary, then inserts
	Create(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// List returns a page of posts, optionally restricted to categories
	List(ctx context.Context, filter model.PostFilter) ([]model.Post, *model.PaginationMeta, error)

	// Update validates and assigns only the non-nil fields
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePostRequest) (*model.Post, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
