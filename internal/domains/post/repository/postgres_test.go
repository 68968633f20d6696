package repository_test

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/repository"
	"blog-backend/internal/infrastructure/database"
)

// mapCache keeps JSON copies so a hit behaves like Redis
type mapCache struct {
	items map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{items: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = b
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *mapCache) Ping(context.Context) error { return nil }

func setupRepo(t *testing.T) (repository.RepositoryInterface, *mapCache) {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = (&database.PostgresDB{Pool: pool}).Migrate(ctx)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE posts`)
	require.NoError(t, err)

	c := newMapCache()
	return repository.NewPostgresRepository(pool, c), c
}

func newPost(category string) *model.Post {
	return &model.Post{
		Title:    "Top 10 Secrets",
		Content:  strings.Repeat("x", model.MinContentLength),
		Category: category,
	}
}

func TestPostgres_CreateGetCached(t *testing.T) {
	repo, c := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPost(model.CategoryFiction))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Nil(t, created.Summary)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Contains(t, c.items, "post:"+created.ID.String())

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestPostgres_UpdateInvalidatesCache(t *testing.T) {
	repo, c := setupRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, newPost(model.CategoryFiction))
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)

	summary := "short"
	p.Summary = &summary
	p.Category = model.CategoryNonFiction
	updated, err := repo.Update(ctx, p)
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.NotContains(t, c.items, "post:"+p.ID.String())

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryNonFiction, got.Category)
	require.NotNil(t, got.Summary)
	assert.Equal(t, "short", *got.Summary)
}

func TestPostgres_ListByCategory(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	for _, cat := range []string{model.CategoryFiction, model.CategoryFiction, model.CategoryNonFiction} {
		_, err := repo.Create(ctx, newPost(cat))
		require.NoError(t, err)
	}

	posts, total, err := repo.List(ctx, model.PostFilter{Categories: []string{model.CategoryFiction}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, posts, 2)

	_, total, err = repo.List(ctx, model.PostFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestPostgres_Delete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, newPost(model.CategoryFiction))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), model.ErrPostNotFound)
}
