package category

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

func (service *Service) List(context context.Context, params pagination.Params, search string) ([]Category, int, error) {
	return service.repo.List(context, params, search)
}

// CreateInput holds the fields for a new category. Slug is optional and
// derived from Name when absent.
type CreateInput struct {
	Name string
	Slug string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	category := &Category{
		Name: input.Name,
		Slug: input.Slug,
	}
	if category.Slug == "" {
		category.Slug = slug.From(input.Name)
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))

	return category, nil
}

func (service *Service) Delete(context context.Context, categorySlug string) error {
	if err := service.repo.DeleteBySlug(context, categorySlug); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("slug", categorySlug))

	return nil
}
