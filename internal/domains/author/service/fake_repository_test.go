package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/repository"
)

// fakeRepository is an in-memory RepositoryInterface for service tests
type fakeRepository struct {
	mu      sync.Mutex
	authors map[uuid.UUID]model.Author
	lookErr error
	locks   []string
	txs     int
	creates int

	// cached simulates a read-through cache that may lag behind authors
	cached map[uuid.UUID]model.Author
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{authors: map[uuid.UUID]model.Author{}, cached: map[uuid.UUID]model.Author{}}
}

func (f *fakeRepository) seed(name string) model.Author {
	a := model.Author{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	f.authors[a.ID] = a
	return a
}

func (f *fakeRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	created := *a
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.authors[created.ID] = created
	f.creates++
	return &created, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if a, ok := f.cached[id]; ok {
		return &a, nil
	}
	return f.GetForUpdate(ctx, id)
}

func (f *fakeRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &a, nil
}

func (f *fakeRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	out := []model.Author{}
	for _, a := range f.authors {
		if filter.Search == "" || strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Search)) {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	if _, ok := f.authors[a.ID]; !ok {
		return nil, model.ErrAuthorNotFound
	}
	updated := *a
	now := time.Now()
	updated.UpdatedAt = &now
	f.authors[a.ID] = updated
	return &updated, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	delete(f.authors, id)
	return nil
}

func (f *fakeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return f.ExistsByNameExcept(ctx, name, uuid.Nil)
}

func (f *fakeRepository) ExistsByNameExcept(ctx context.Context, name string, id uuid.UUID) (bool, error) {
	if f.lookErr != nil {
		return false, f.lookErr
	}
	for _, a := range f.authors {
		if a.Name == name && a.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo repository.RepositoryInterface) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs++
	return fn(ctx, f)
}

func (f *fakeRepository) WithNameLock(ctx context.Context, name string, fn func(ctx context.Context, repo repository.RepositoryInterface) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks = append(f.locks, name)
	f.txs++
	return fn(ctx, f)
}
