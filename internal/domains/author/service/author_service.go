package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/domains/author/repository"
	"blog-backend/internal/shared/utils"
	"blog-backend/internal/shared/validator"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// authorService implements ServiceInterface
type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo: repo,
	}
}

// Create runs the field validators in assignment order (name, phone_number)
// while holding the name lock, so the uniqueness check and the insert are atomic
func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	newAuthor := req.ToEntity()

	var created *model.Author
	err := s.repo.WithNameLock(ctx, newAuthor.Name, func(ctx context.Context, repo repository.RepositoryInterface) error {
		if err := model.ValidateName(ctx, newAuthor.Name, repo); err != nil {
			return err
		}
		if err := model.ValidatePhoneNumber(req.PhoneNumber); err != nil {
			return err
		}

		var err error
		created, err = repo.Create(ctx, newAuthor)
		return err
	})
	if err != nil {
		return nil, wrap("failed to create author", err)
	}

	log.Info().Str("author_id", created.ID.String()).Str("name", created.Name).Msg("author created")
	return created, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}

	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, *model.PaginationMeta, error) {
	filter.Limit, filter.Offset = utils.ClampPage(filter.Limit, filter.Offset, defaultLimit, maxLimit)
	filter.Search = utils.EscapeLike(strings.TrimSpace(filter.Search))

	authors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	return authors, &model.PaginationMeta{Limit: filter.Limit, Offset: filter.Offset, Total: total}, nil
}

// Update assigns only the provided fields; a name is checked for uniqueness
// against every author except the one being updated. The current row is
// re-read with a row lock inside the transaction, never from the cache.
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}

	var result *model.Author
	apply := func(ctx context.Context, repo repository.RepositoryInterface) error {
		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			checker := model.NameCheckerFunc(func(ctx context.Context, name string) (bool, error) {
				return repo.ExistsByNameExcept(ctx, name, id)
			})
			if err := model.ValidateName(ctx, *req.Name, checker); err != nil {
				return err
			}
		}
		if err := model.ValidatePhoneNumber(req.PhoneNumber); err != nil {
			return err
		}

		updated := *current
		req.ApplyToEntity(&updated)
		result, err = repo.Update(ctx, &updated)
		return err
	}

	var err error
	if req.Name == nil {
		err = s.repo.WithTx(ctx, apply)
	} else {
		err = s.repo.WithNameLock(ctx, *req.Name, apply)
	}
	if err != nil {
		return nil, wrap("failed to update author", err)
	}

	return result, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrAuthorNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("author_id", id.String()).Msg("author deleted")
	return nil
}

// validation failures and not-found pass through untouched for the handler
func wrap(msg string, err error) error {
	if _, ok := validator.AsError(err); ok {
		return err
	}
	if errors.Is(err, model.ErrAuthorNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
