package category

import (
	"context"

	"kritika/pkg/pagination"
)

type Repository interface {
	List(context context.Context, params pagination.Params, search string) ([]Category, int, error)
	GetBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, category *Category) error
	DeleteBySlug(context context.Context, slug string) error
}
