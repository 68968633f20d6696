package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/author/model"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/database"
)

const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute

	nameUniqueConstraint = "authors_name_key"

	authorColumns = `id, name, phone_number, created_at, updated_at`
)

// postgresRepository implements RepositoryInterface
// Uses pgxpool for PostgreSQL and Redis for caching
type postgresRepository struct {
	pool  *pgxpool.Pool
	db    database.Querier // pool, or the transaction inside WithTx
	cache cache.Cache

	// set only on a tx-bound repo: ids whose cache entry is dropped after commit
	touched *[]uuid.UUID
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		db:    pool,
		cache: cache,
	}
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	if err := row.Scan(&a.ID, &a.Name, &a.PhoneNumber, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts new author, id and created_at come from the database
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, phone_number)
        VALUES ($1, $2)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.db.QueryRow(ctx, query, a.Name, a.PhoneNumber))
	if err != nil {
		if database.IsUniqueViolation(err, nameUniqueConstraint) {
			return nil, model.NameTakenError()
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return created, nil
}

// GetByID retrieves author by UUID with caching
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached model.Author
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author cache read failed")
	} else if hit {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author cache write failed")
	}

	return a, nil
}

// GetForUpdate reads the row with FOR UPDATE, skipping the cache.
// Only meaningful on the repo passed to a WithTx/WithNameLock callback.
func (r *postgresRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1 FOR UPDATE`

	a, err := scanAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to lock author row: %w", err)
	}
	return a, nil
}

// List retrieves paginated list with optional name search
func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	where := ""
	args := []interface{}{}

	if filter.Search != "" {
		where = " WHERE name ILIKE $1"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM authors%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		authorColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := []model.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, total, nil
}

// Update writes the mutable fields and invalidates the cached copy
func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET name = $1, phone_number = $2
        WHERE id = $3
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.db.QueryRow(ctx, query, a.Name, a.PhoneNumber, a.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		if database.IsUniqueViolation(err, nameUniqueConstraint) {
			return nil, model.NameTakenError()
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidate(ctx, a.ID)
	return updated, nil
}

// Delete removes author by ID
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.ExistsByNameExcept(ctx, name, uuid.Nil)
}

func (r *postgresRepository) ExistsByNameExcept(ctx context.Context, name string, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM authors WHERE name = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check author name: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo RepositoryInterface) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error { return nil }, fn)
}

func (r *postgresRepository) WithNameLock(ctx context.Context, name string, fn func(ctx context.Context, repo RepositoryInterface) error) error {
	lock := func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, name); err != nil {
			return fmt.Errorf("failed to lock author name: %w", err)
		}
		return nil
	}
	return r.inTx(ctx, lock, fn)
}

// inTx runs fn against a tx-bound repo; cache entries it touched are
// dropped only once the transaction has committed
func (r *postgresRepository) inTx(ctx context.Context, before func(pgx.Tx) error, fn func(ctx context.Context, repo RepositoryInterface) error) error {
	var touched []uuid.UUID

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := before(tx); err != nil {
			return err
		}
		return fn(ctx, &postgresRepository{pool: r.pool, db: tx, cache: r.cache, touched: &touched})
	})
	if err != nil {
		return err
	}

	r.flush(ctx, touched)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.touched != nil {
		*r.touched = append(*r.touched, id)
		return
	}
	r.flush(ctx, []uuid.UUID{id})
}

func (r *postgresRepository) flush(ctx context.Context, ids []uuid.UUID) {
	for _, id := range ids {
		if err := r.cache.Delete(ctx, authorCacheKeyPrefix+id.String()); err != nil {
			log.Warn().Err(err).Str("author_id", id.String()).Msg("author cache invalidation failed")
		}
	}
}
