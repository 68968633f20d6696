package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/repository"
	"blog-backend/internal/domains/author/service"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/shared/validator"
	"blog-backend/pkg/cache"
)

type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error)        { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error                       { return nil }
func (noopCache) Ping(context.Context) error                                    { return nil }

type deleteLog struct {
	noopCache
	mu   sync.Mutex
	keys []string
}

func (d *deleteLog) Delete(_ context.Context, keys ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys = append(d.keys, keys...)
	return nil
}

func (d *deleteLog) deleted() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.keys...)
}

// setupRepo needs TEST_DATABASE_URL pointing at a disposable database
func setupRepo(t *testing.T) (repository.RepositoryInterface, *pgxpool.Pool) {
	t.Helper()
	return setupRepoWithCache(t, noopCache{})
}

func setupRepoWithCache(t *testing.T, c cache.Cache) (repository.RepositoryInterface, *pgxpool.Pool) {
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

	_, err = pool.Exec(ctx, `TRUNCATE authors`)
	require.NoError(t, err)

	return repository.NewPostgresRepository(pool, c), pool
}

func TestPostgres_CreateAndGet(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	phone := "5551234567"
	created, err := repo.Create(ctx, &model.Author{Name: "Ada Lovelace", PhoneNumber: &phone})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.UpdatedAt)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	require.NotNil(t, got.PhoneNumber)
	assert.Equal(t, phone, *got.PhoneNumber)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestPostgres_UniqueConstraintMapsToValidationError(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Author{Name: "Grace Hopper"})
	require.NoError(t, err)

	// bypasses the validator, the constraint still rejects it
	_, err = repo.Create(ctx, &model.Author{Name: "Grace Hopper"})
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrValidation)

	vErr, ok := validator.AsError(err)
	require.True(t, ok)
	assert.Equal(t, model.FieldName, vErr.Field)
	assert.Equal(t, "Author name must be unique.", vErr.Reason)
}

func TestPostgres_UpdateSetsUpdatedAt(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, &model.Author{Name: "Alan Turing"})
	require.NoError(t, err)

	phone := "5550000000"
	a.PhoneNumber = &phone
	updated, err := repo.Update(ctx, a)
	require.NoError(t, err)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, phone, *updated.PhoneNumber)

	exists, err := repo.ExistsByNameExcept(ctx, "Alan Turing", a.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByName(ctx, "Alan Turing")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgres_ListSearchAndDelete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Mary Shelley", "Mary Oliver", "Toni Morrison"} {
		_, err := repo.Create(ctx, &model.Author{Name: name})
		require.NoError(t, err)
	}

	authors, total, err := repo.List(ctx, model.AuthorFilter{Search: "mary", Limit: 1, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, authors, 1)

	require.NoError(t, repo.Delete(ctx, authors[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, authors[0].ID), model.ErrAuthorNotFound)
}

func TestPostgres_ConcurrentCreateSameName(t *testing.T) {
	repo, pool := setupRepo(t)
	svc := service.NewAuthorService(repo)
	ctx := context.Background()

	const writers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		okN    int
		takenN int
	)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, &model.CreateAuthorRequest{Name: "Octavia Butler"})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				okN++
			} else if vErr, ok := validator.AsError(err); ok && vErr.Field == model.FieldName {
				takenN++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, okN)
	assert.Equal(t, writers-1, takenN)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors WHERE name = $1`, "Octavia Butler").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPostgres_TxEvictsCacheOnlyAfterCommit(t *testing.T) {
	log := &deleteLog{}
	repo, _ := setupRepoWithCache(t, log)
	ctx := context.Background()

	a, err := repo.Create(ctx, &model.Author{Name: "Iain Banks"})
	require.NoError(t, err)
	key := "author:" + a.ID.String()

	err = repo.WithNameLock(ctx, "Iain M. Banks", func(ctx context.Context, tx repository.RepositoryInterface) error {
		current, err := tx.GetForUpdate(ctx, a.ID)
		require.NoError(t, err)

		current.Name = "Iain M. Banks"
		_, err = tx.Update(ctx, current)
		require.NoError(t, err)

		assert.NotContains(t, log.deleted(), key)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{key}, log.deleted())
}

func TestPostgres_TxRollbackKeepsCache(t *testing.T) {
	log := &deleteLog{}
	repo, _ := setupRepoWithCache(t, log)
	ctx := context.Background()

	a, err := repo.Create(ctx, &model.Author{Name: "Jo Walton"})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = repo.WithTx(ctx, func(ctx context.Context, tx repository.RepositoryInterface) error {
		phone := "5551112222"
		a.PhoneNumber = &phone
		if _, err := tx.Update(ctx, a); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, log.deleted())

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PhoneNumber)
}
