package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/database/schema"
	"kritika/internal/platform/dberr"
	"kritika/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]Genre, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = fmt.Sprintf(`WHERE %s ILIKE $1`, schema.CatalogGenre.Name)
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.CatalogGenre.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s %s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Table, where,
		schema.CatalogGenre.Name, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	genres := make([]Genre, 0)
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

// GetBySlugs resolves a set of slugs to genres. Missing slugs simply do not
// appear in the result; the caller decides whether that is an error.
func (repository *PostgresRepository) GetBySlugs(context context.Context, slugs []string) ([]Genre, error) {
	if len(slugs) == 0 {
		return []Genre{}, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	genres := make([]Genre, 0, len(slugs))
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, dberr.Wrap(err, "")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.ID)

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID)
	if err != nil {
		return dberr.Wrap(err, "Genre slug already exists")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}
