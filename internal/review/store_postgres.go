// Copyright (c) 2026 Kritika. All rights reserved.

package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"kritika/internal/platform/apperr"
	"kritika/internal/platform/dberr"
	"kritika/pkg/pagination"
)

// PostgresRepository implements Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// TitleExists reports whether a title row exists.
func (repository *PostgresRepository) TitleExists(context context.Context, titleID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "")
	}

	return exists, nil
}

// # Reviews

// reviewSelect joins the author's account so responses can carry the
// username without a second lookup.
const reviewSelect = `
	SELECT r.id, r.title_id, r.author_id, a.username, r.text, r.score, r.pub_date
	FROM review.review r
	JOIN users.account a ON r.author_id = a.id`

// ListReviews returns a page of a title's reviews, newest first.
func (repository *PostgresRepository) ListReviews(context context.Context, titleID int64, params pagination.Params) ([]*Review, int, error) {
	var total int
	if err := repository.pool.QueryRow(context,
		`SELECT COUNT(*) FROM review.review WHERE title_id = $1`, titleID,
	).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := reviewSelect + `
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC, r.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, titleID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review := &Review{}
		if err := rows.Scan(
			&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
			&review.Text, &review.Score, &review.PubDate,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

// GetReview returns one review scoped to its title.
func (repository *PostgresRepository) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	query := reviewSelect + ` WHERE r.title_id = $1 AND r.id = $2`

	review := &Review{}
	err := repository.pool.QueryRow(context, query, titleID, reviewID).Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return review, nil
}

// CreateReview inserts a review, relying on the (title_id, author_id) unique
// index for the one-review rule.
func (repository *PostgresRepository) CreateReview(context context.Context, review *Review) error {
	const query = `
		INSERT INTO review.review (title_id, author_id, text, score, pub_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := repository.pool.QueryRow(context, query,
		review.TitleID, review.AuthorID, review.Text, review.Score, review.PubDate,
	).Scan(&review.ID)
	if err != nil {
		return dberr.Wrap(err, "You have already reviewed this title")
	}

	return nil
}

// UpdateReview rewrites the text and score of an existing review.
func (repository *PostgresRepository) UpdateReview(context context.Context, review *Review) error {
	const query = `UPDATE review.review SET text = $2, score = $3 WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, review.ID, review.Text, review.Score); err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

// DeleteReview removes a review; its comments cascade.
func (repository *PostgresRepository) DeleteReview(context context.Context, titleID, reviewID int64) error {
	const query = `DELETE FROM review.review WHERE title_id = $1 AND id = $2`

	tag, err := repository.pool.Exec(context, query, titleID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

// # Comments

const commentSelect = `
	SELECT c.id, c.review_id, c.author_id, a.username, c.text, c.pub_date
	FROM review.comment c
	JOIN users.account a ON c.author_id = a.id`

// ListComments returns a page of a review's comments, newest first.
func (repository *PostgresRepository) ListComments(context context.Context, reviewID int64, params pagination.Params) ([]*Comment, int, error) {
	var total int
	if err := repository.pool.QueryRow(context,
		`SELECT COUNT(*) FROM review.comment WHERE review_id = $1`, reviewID,
	).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}

	query := commentSelect + `
		WHERE c.review_id = $1
		ORDER BY c.pub_date DESC, c.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, reviewID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
			&comment.Text, &comment.PubDate,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

// GetComment returns one comment scoped to its review.
func (repository *PostgresRepository) GetComment(context context.Context, reviewID, commentID int64) (*Comment, error) {
	query := commentSelect + ` WHERE c.review_id = $1 AND c.id = $2`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, reviewID, commentID).Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return comment, nil
}

// CreateComment inserts a comment.
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO review.comment (review_id, author_id, text, pub_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := repository.pool.QueryRow(context, query,
		comment.ReviewID, comment.AuthorID, comment.Text, comment.PubDate,
	).Scan(&comment.ID)
	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

// UpdateComment rewrites the text of an existing comment.
func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	const query = `UPDATE review.comment SET text = $2 WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, comment.ID, comment.Text); err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

// DeleteComment removes a comment row.
func (repository *PostgresRepository) DeleteComment(context context.Context, reviewID, commentID int64) error {
	const query = `DELETE FROM review.comment WHERE review_id = $1 AND id = $2`

	tag, err := repository.pool.Exec(context, query, reviewID, commentID)
	if err != nil {
		return dberr.Wrap(err, "")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
