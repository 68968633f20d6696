package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/post/model"
	"blog-backend/pkg/cache"
)

const (
	postCacheKeyPrefix = "post:"
	cacheTTL           = 15 * time.Minute

	postColumns = `id, title, content, category, summary, created_at, updated_at`
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Category, &p.Summary, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	query := `
        INSERT INTO posts (title, content, category, summary)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + postColumns

	created, err := scanPost(r.pool.QueryRow(ctx, query, p.Title, p.Content, p.Category, p.Summary))
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}

// GetByID reads through the cache
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	cacheKey := postCacheKeyPrefix + id.String()

	var cached model.Post
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("post cache read failed")
	} else if hit {
		return &cached, nil
	}

	p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, p, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("post cache write failed")
	}

	return p, nil
}

// List filters by category with = ANY($1); an empty filter matches everything
func (r *postgresRepository) List(ctx context.Context, filter model.PostFilter) ([]model.Post, int64, error) {
	where := ""
	args := []interface{}{}

	if len(filter.Categories) > 0 {
		where = " WHERE category = ANY($1)"
		args = append(args, pq.Array(filter.Categories))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM posts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	query := `
        UPDATE posts
        SET title = $1, content = $2, category = $3, summary = $4
        WHERE id = $5
        RETURNING ` + postColumns

	updated, err := scanPost(r.pool.QueryRow(ctx, query, p.Title, p.Content, p.Category, p.Summary, p.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	r.invalidate(ctx, p.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, postCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("post_id", id.String()).Msg("post cache invalidation failed")
	}
}
