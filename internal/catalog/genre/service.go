package genre

import (
	"context"
	"log/slog"

	"kritika/pkg/pagination"
	"kritika/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, params pagination.Params, search string) ([]Genre, int, error) {
	return service.repo.List(context, params, search)
}

// CreateInput holds the fields for a new genre. Slug is optional and
// derived from Name when absent.
type CreateInput struct {
	Name string
	Slug string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
	genre := &Genre{
		Name: input.Name,
		Slug: input.Slug,
	}
	if genre.Slug == "" {
		genre.Slug = slug.From(input.Name)
	}

	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))

	return genre, nil
}

func (service *Service) Delete(context context.Context, genreSlug string) error {
	if err := service.repo.DeleteBySlug(context, genreSlug); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.String("slug", genreSlug))

	return nil
}
