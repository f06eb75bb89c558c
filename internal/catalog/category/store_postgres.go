package category

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

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]Category, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = fmt.Sprintf(`WHERE %s ILIKE $1`, schema.CatalogCategory.Name)
		args = append(args, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.CatalogCategory.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s %s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.Table, where,
		schema.CatalogCategory.Name, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	c := &Category{}
	if err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.ID)

	err := repository.db.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		return dberr.Wrap(err, "Category slug already exists")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}
