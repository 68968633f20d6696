package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/domains/post/repository"
	"blog-backend/internal/shared/utils"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type postService struct {
	repo repository.RepositoryInterface
}

func NewPostService(repo repository.RepositoryInterface) ServiceInterface {
	return &postService{
		repo: repo,
	}
}

func (s *postService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error) {
	if err := firstError(
		model.ValidateTitle(req.Title),
		model.ValidateContent(req.Content),
		model.ValidateCategory(req.Category),
		model.ValidateSummary(req.Summary),
	); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	log.Info().Str("post_id", created.ID.String()).Str("category", created.Category).Msg("post created")
	return created, nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if id == uuid.Nil {
		return nil, model.ErrPostNotFound
	}

	return s.repo.GetByID(ctx, id)
}

func (s *postService) List(ctx context.Context, filter model.PostFilter) ([]model.Post, *model.PaginationMeta, error) {
	filter.Limit, filter.Offset = utils.ClampPage(filter.Limit, filter.Offset, defaultLimit, maxLimit)

	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	return posts, &model.PaginationMeta{Limit: filter.Limit, Offset: filter.Offset, Total: total}, nil
}

// Update runs only the validators of assigned fields
func (s *postService) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePostRequest) (*model.Post, error) {
	var checks []error
	if req.Title != nil {
		checks = append(checks, model.ValidateTitle(*req.Title))
	}
	if req.Content != nil {
		checks = append(checks, model.ValidateContent(*req.Content))
	}
	if req.Category != nil {
		checks = append(checks, model.ValidateCategory(*req.Category))
	}
	checks = append(checks, model.ValidateSummary(req.Summary))

	if err := firstError(checks...); err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	req.ApplyToEntity(&updated)

	result, err := s.repo.Update(ctx, &updated)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return result, nil
}

func (s *postService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrPostNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("post_id", id.String()).Msg("post deleted")
	return nil
}

// firstError returns the first validation failure in field order
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
