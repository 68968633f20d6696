package repository

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author/model"
)

// RepositoryInterface defines Author data access operations
type RepositoryInterface interface {
	// Create inserts a new author
	// A duplicate name surfaces as the name-uniqueness validation error
	Create(ctx context.Context, author *model.Author) (*model.Author, error)

	// GetByID returns ErrAuthorNotFound if not exists
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// List retrieves a page of authors ordered by created_at DESC, plus total count
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)

	// Update writes name and phone_number; updated_at is set by the database
	Update(ctx context.Context, author *model.Author) (*model.Author, error)

	// Delete returns ErrAuthorNotFound if not exists
	Delete(ctx context.Context, id uuid.UUID) error

	// GetForUpdate reads and row-locks an author, bypassing the cache.
	// Use it on the repository handed to WithTx/WithNameLock.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// ExistsByName checks if a name is taken (exact match)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// ExistsByNameExcept checks if a name is taken by an author other than id
	ExistsByNameExcept(ctx context.Context, name string, id uuid.UUID) (bool, error)

	// WithTx runs fn in a transaction with a repository bound to it.
	// Cache invalidations made through that repository happen after commit.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo RepositoryInterface) error) error

	// WithNameLock runs fn in a transaction holding an advisory lock on name.
	// The repository passed to fn is bound to that transaction, so a name
	// check followed by a write is atomic against other writers of the same name.
	WithNameLock(ctx context.Context, name string, fn func(ctx context.Context, repo RepositoryInterface) error) error
}
