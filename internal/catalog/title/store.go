package title

import (
	"context"

	"kritika/pkg/pagination"
)

type Repository interface {
	List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error)
	GetByID(context context.Context, id int64) (*Title, error)
	// Create inserts the title and its genre join rows in one transaction.
	Create(context context.Context, title *Title, genreIDs []int64) error
	// Update rewrites the title row. When replaceGenres is true the genre set
	// is replaced wholesale with genreIDs, also transactionally.
	Update(context context.Context, title *Title, genreIDs []int64, replaceGenres bool) error
	Delete(context context.Context, id int64) error
}
