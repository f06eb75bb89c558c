package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kritika/internal/catalog/category"
	"kritika/internal/catalog/genre"
	"kritika/internal/platform/apperr"
	"kritika/pkg/pagination"
	"kritika/pkg/slice"
)

// CategoryResolver resolves a category slug to its entity. Satisfied by the
// category package's Postgres repository.
type CategoryResolver interface {
	GetBySlug(context context.Context, slug string) (*category.Category, error)
}

// GenreResolver resolves genre slugs to entities. Satisfied by the genre
// package's Postgres repository.
type GenreResolver interface {
	GetBySlugs(context context.Context, slugs []string) ([]genre.Genre, error)
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	genres     GenreResolver
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryResolver, genres GenreResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

func (service *Service) List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error) {
	return service.repo.List(context, params, filter)
}

func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.GetByID(context, id)
}

// CreateInput holds the fields for a new title. Category and genres are
// referenced by slug, matching the public identifiers of those resources.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	categoryRef, err := service.resolveCategory(context, input.CategorySlug)
	if err != nil {
		return nil, err
	}

	genreRefs, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    categoryRef,
		Genres:      genreRefs,
	}

	genreIDs := slice.Map(genreRefs, func(g GenreRef) int64 { return g.ID })
	if err := service.repo.Create(context, title, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int64("title_id", title.ID),
		slog.String("name", title.Name),
	)

	return title, nil
}

// UpdateInput holds a partial title edit. Nil fields are left untouched;
// a non-nil GenreSlugs replaces the genre set wholesale.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	title, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		if err := validateYear(*input.Year); err != nil {
			return nil, err
		}
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = *input.Description
	}
	if input.CategorySlug != nil {
		categoryRef, err := service.resolveCategory(context, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.Category = categoryRef
	}

	var genreIDs []int64
	replaceGenres := input.GenreSlugs != nil
	if replaceGenres {
		genreRefs, err := service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = genreRefs
		genreIDs = slice.Map(genreRefs, func(g GenreRef) int64 { return g.ID })
	}

	if err := service.repo.Update(context, title, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", title.ID))

	return title, nil
}

func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted", slog.Int64("title_id", id))

	return nil
}

// resolveCategory maps a category slug to a reference, surfacing an unknown
// slug as a field-level validation error rather than a bare 404.
func (service *Service) resolveCategory(context context.Context, slug string) (*CategoryRef, error) {
	found, err := service.categories.GetBySlug(context, slug)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.ValidationError(
				"Unknown category: "+slug,
				apperr.FieldError{Field: FieldCategory, Message: "category does not exist"},
			)
		}
		return nil, fmt.Errorf("title_service_category_lookup_failed: %w", err)
	}

	return &CategoryRef{ID: found.ID, Name: found.Name, Slug: found.Slug}, nil
}

// resolveGenres maps genre slugs to references. The list must be non-empty
// and every requested slug must exist; the error message names the missing
// ones.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]GenreRef, error) {
	slugs = dedupe(slugs)

	if len(slugs) == 0 {
		return nil, apperr.ValidationError(
			"At least one genre is required",
			apperr.FieldError{Field: FieldGenre, Message: "must be a non-empty list of genre slugs"},
		)
	}

	found, err := service.genres.GetBySlugs(context, slugs)
	if err != nil {
		return nil, fmt.Errorf("title_service_genre_lookup_failed: %w", err)
	}

	if len(found) != len(slugs) {
		known := make(map[string]bool, len(found))
		for _, g := range found {
			known[g.Slug] = true
		}
		var missing []string
		for _, s := range slugs {
			if !known[s] {
				missing = append(missing, s)
			}
		}
		return nil, apperr.ValidationError(
			"Unknown genre: "+strings.Join(missing, ", "),
			apperr.FieldError{Field: FieldGenre, Message: "genre does not exist"},
		)
	}

	return slice.Map(found, func(g genre.Genre) GenreRef {
		return GenreRef{ID: g.ID, Name: g.Name, Slug: g.Slug}
	}), nil
}

// dedupe removes repeated slugs while preserving order.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	return slice.Filter(values, func(v string) bool {
		if seen[v] {
			return false
		}
		seen[v] = true
		return true
	})
}

func validateYear(year int) error {
	if year < YearMin || year > time.Now().Year() {
		return apperr.ValidationError(
			"Year must not be in the future",
			apperr.FieldError{Field: FieldYear, Message: "invalid year"},
		)
	}
	return nil
}
