package genre

import (
	"context"

	"kritika/pkg/pagination"
)

type Repository interface {
	List(context context.Context, params pagination.Params, search string) ([]Genre, int, error)
	GetBySlugs(context context.Context, slugs []string) ([]Genre, error)
	Create(context context.Context, genre *Genre) error
	DeleteBySlug(context context.Context, slug string) error
}
