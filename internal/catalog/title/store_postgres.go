package title

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/dberr"
	"kritika/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// titleSelect is the shared projection for title reads. The score sum and
// count feed [MeanScore], which yields nil for unreviewed titles.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description,
	       (SELECT COALESCE(SUM(r.score), 0) FROM review.review r WHERE r.title_id = t.id) AS score_sum,
	       (SELECT COUNT(*) FROM review.review r WHERE r.title_id = t.id) AS score_count,
	       c.id, c.name, c.slug
	FROM catalog.title t
	LEFT JOIN catalog.category c ON t.category_id = c.id`

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, filter Filter) ([]*Title, int, error) {
	where, args := buildFilter(filter)

	countQuery := `
		SELECT COUNT(*)
		FROM catalog.title t
		LEFT JOIN catalog.category c ON t.category_id = c.id` + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	listQuery := fmt.Sprintf(`%s%s ORDER BY t.name ASC, t.id ASC LIMIT $%d OFFSET $%d`,
		titleSelect, where, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.db.Query(context, listQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, err
		}
		titles = append(titles, title)
	}
	rows.Close()

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Title, error) {
	query := titleSelect + ` WHERE t.id = $1`

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, apperr.NotFound("Title")
	}

	title, err := scanTitle(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := repository.attachGenres(context, []*Title{title}); err != nil {
		return nil, err
	}

	return title, nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title, genreIDs []int64) error {
	return repository.inTx(context, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO catalog.title (name, year, description, category_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`

		err := tx.QueryRow(context, insert,
			title.Name, title.Year, title.Description, categoryID(title),
		).Scan(&title.ID)
		if err != nil {
			return dberr.Wrap(err, "")
		}

		return insertGenreRows(context, tx, title.ID, genreIDs)
	})
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, genreIDs []int64, replaceGenres bool) error {
	return repository.inTx(context, func(tx pgx.Tx) error {
		const update = `
			UPDATE catalog.title
			SET name = $2, year = $3, description = $4, category_id = $5
			WHERE id = $1`

		tag, err := tx.Exec(context, update,
			title.ID, title.Name, title.Year, title.Description, categoryID(title),
		)
		if err != nil {
			return dberr.Wrap(err, "")
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Title")
		}

		if !replaceGenres {
			return nil
		}

		// Replace, not merge: the incoming set is the whole truth.
		if _, err := tx.Exec(context, `DELETE FROM catalog.genre_title WHERE title_id = $1`, title.ID); err != nil {
			return dberr.Wrap(err, "")
		}

		return insertGenreRows(context, tx, title.ID, genreIDs)
	})
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	tag, err := repository.db.Exec(context, `DELETE FROM catalog.title WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}

// # Helpers

func (repository *PostgresRepository) inTx(context context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	defer func() { _ = tx.Rollback(context) }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

func buildFilter(filter Filter) (string, []any) {
	where := ""
	args := []any{}

	and := func(clause string) {
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		and(fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if len(filter.GenreSlugs) > 0 {
		args = append(args, filter.GenreSlugs)
		and(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM catalog.genre_title gt
			JOIN catalog.genre g ON gt.genre_id = g.id
			WHERE gt.title_id = t.id AND g.slug = ANY($%d))`, len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		and(fmt.Sprintf("t.year = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		and(fmt.Sprintf("t.name ILIKE $%d", len(args)))
	}

	return where, args
}

func scanTitle(rows pgx.Rows) (*Title, error) {
	title := &Title{Genres: make([]GenreRef, 0)}

	var scoreSum, scoreCount int64
	var categoryID *int64
	var categoryName, categorySlug *string

	err := rows.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description,
		&scoreSum, &scoreCount,
		&categoryID, &categoryName, &categorySlug,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	title.Rating = MeanScore(scoreSum, scoreCount)

	if categoryID != nil {
		title.Category = &CategoryRef{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}

	return title, nil
}

// attachGenres loads the genre sets for a page of titles in a single query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int64, len(titles))
	byID := make(map[int64]*Title, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
		byID[t.ID] = t
	}

	const query = `
		SELECT gt.title_id, g.id, g.name, g.slug
		FROM catalog.genre_title gt
		JOIN catalog.genre g ON gt.genre_id = g.id
		WHERE gt.title_id = ANY($1)
		ORDER BY g.name ASC`

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var ref GenreRef
		if err := rows.Scan(&titleID, &ref.ID, &ref.Name, &ref.Slug); err != nil {
			return dberr.Wrap(err, "")
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, ref)
		}
	}

	return nil
}

func insertGenreRows(context context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	for _, genreID := range genreIDs {
		const insert = `INSERT INTO catalog.genre_title (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(context, insert, titleID, genreID); err != nil {
			return dberr.Wrap(err, "")
		}
	}
	return nil
}

func categoryID(title *Title) *int64 {
	if title.Category == nil {
		return nil
	}
	return &title.Category.ID
}
