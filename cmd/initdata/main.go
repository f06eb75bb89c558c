// Copyright (c) 2026 Kritika. All rights reserved.

// Command initdata bulk-loads seed data from CSV files into the database.
//
// It expects one CSV file per table in the data directory, loaded in
// dependency order: users, category, genre, titles, genre_title, review,
// comments. Rows are upserted by id, so the command is safe to re-run.
//
// CSV user ids are integers from the legacy dataset; accounts are keyed by
// UUID here, so the loader assigns a fresh UUID per user and resolves
// author references through an in-memory mapping.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kritika/internal/platform/database/schema"
	pgstore "kritika/internal/platform/postgres"
	"kritika/pkg/uuidv7"
)

func main() {
	dataDir := flag.String("data", "./data/seed", "directory containing the seed CSV files")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "kritika-initdata"))

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, databaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	loader := &loader{dataDir: *dataDir, pool: pool, log: log, userIDs: make(map[int64]string)}

	// Load order follows foreign key dependencies.
	steps := []struct {
		file string
		fn   func(context.Context, pgx.Tx, []string, []string) error
	}{
		{"users", loader.loadUser},
		{"category", loader.loadCategory},
		{"genre", loader.loadGenre},
		{"titles", loader.loadTitle},
		{"genre_title", loader.loadGenreTitle},
		{"review", loader.loadReview},
		{"comments", loader.loadComment},
	}

	tx, err := pool.Begin(ctx)
	must(log, err, "begin transaction")
	defer tx.Rollback(ctx)

	for _, step := range steps {
		count, err := loader.loadFile(ctx, tx, step.file, step.fn)
		must(log, err, "load "+step.file)
		log.Info("seed_file_loaded", slog.String("file", step.file), slog.Int("rows", count))
	}

	// Explicit ids bypass the sequences, so realign them.
	must(log, loader.resetSequences(ctx, tx), "reset sequences")

	must(log, tx.Commit(ctx), "commit transaction")
	log.Info("seed_complete")
}

type loader struct {
	dataDir string
	pool    *pgxpool.Pool
	log     *slog.Logger

	// userIDs maps legacy integer user ids to the generated account UUIDs.
	userIDs map[int64]string
}

// loadFile streams one CSV file row by row through fn. The first record is
// treated as the header and passed along so loaders can address columns by
// name rather than position.
func (loader *loader) loadFile(ctx context.Context, tx pgx.Tx, name string, fn func(context.Context, pgx.Tx, []string, []string) error) (int, error) {
	path := filepath.Join(loader.dataDir, name+".csv")

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header of %s: %w", path, err)
	}

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read %s row %d: %w", path, count+2, err)
		}
		if err := fn(ctx, tx, header, row); err != nil {
			return count, fmt.Errorf("%s row %d: %w", path, count+2, err)
		}
		count++
	}

	return count, nil
}

// field returns the value of the named column, or "" when absent.
func field(header, row []string, name string) string {
	for i, h := range header {
		if h == name && i < len(row) {
			return row[i]
		}
	}
	return ""
}

func intField(header, row []string, name string) (int64, error) {
	raw := field(header, row, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not an integer", name, raw)
	}
	return value, nil
}

// pubDate parses the legacy timestamp format, falling back to now when the
// column is missing.
func pubDate(header, row []string) time.Time {
	raw := field(header, row, "pub_date")
	if raw == "" {
		return time.Now().UTC()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Now().UTC()
}

func (loader *loader) loadUser(ctx context.Context, tx pgx.Tx, header, row []string) error {
	legacyID, err := intField(header, row, "id")
	if err != nil {
		return err
	}

	id := uuidv7.New()
	loader.userIDs[legacyID] = id

	table := schema.UsersAccount
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (%s) DO UPDATE SET
		     %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
		     %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		table.Table, table.ID, table.Username, table.Email, table.FirstName, table.LastName, table.Bio, table.Role,
		table.Username,
		table.Email, table.Email, table.FirstName, table.FirstName, table.LastName, table.LastName,
		table.Bio, table.Bio, table.Role, table.Role,
	)

	role := field(header, row, "role")
	if role == "" {
		role = "user"
	}

	_, err = tx.Exec(ctx, query,
		id,
		field(header, row, "username"),
		field(header, row, "email"),
		field(header, row, "first_name"),
		field(header, row, "last_name"),
		field(header, row, "bio"),
		role,
	)
	if err != nil {
		return err
	}

	// Re-running against an existing account keeps the original UUID, so
	// resolve the authoritative id back out for author references.
	var storedID string
	selectQuery := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", table.ID, table.Table, table.Username)
	if err := tx.QueryRow(ctx, selectQuery, field(header, row, "username")).Scan(&storedID); err != nil {
		return err
	}
	loader.userIDs[legacyID] = storedID

	return nil
}

func (loader *loader) loadCategory(ctx context.Context, tx pgx.Tx, header, row []string) error {
	return loader.loadNamedSlug(ctx, tx, schema.CatalogCategory.Table, header, row)
}

func (loader *loader) loadGenre(ctx context.Context, tx pgx.Tx, header, row []string) error {
	return loader.loadNamedSlug(ctx, tx, schema.CatalogGenre.Table, header, row)
}

func (loader *loader) loadNamedSlug(ctx context.Context, tx pgx.Tx, table string, header, row []string) error {
	id, err := intField(header, row, "id")
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (id, name, slug) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, slug = EXCLUDED.slug`,
		table,
	)
	_, err = tx.Exec(ctx, query, id, field(header, row, "name"), field(header, row, "slug"))
	return err
}

func (loader *loader) loadTitle(ctx context.Context, tx pgx.Tx, header, row []string) error {
	id, err := intField(header, row, "id")
	if err != nil {
		return err
	}
	year, err := intField(header, row, "year")
	if err != nil {
		return err
	}
	categoryID, err := intField(header, row, "category")
	if err != nil {
		return err
	}

	table := schema.CatalogTitle
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (%s) DO UPDATE SET
		     %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		table.Table, table.ID, table.Name, table.Year, table.Description, table.CategoryID,
		table.ID,
		table.Name, table.Name, table.Year, table.Year,
		table.Description, table.Description, table.CategoryID, table.CategoryID,
	)
	_, err = tx.Exec(ctx, query, id, field(header, row, "name"), year, field(header, row, "description"), categoryID)
	return err
}

func (loader *loader) loadGenreTitle(ctx context.Context, tx pgx.Tx, header, row []string) error {
	titleID, err := intField(header, row, "title_id")
	if err != nil {
		return err
	}
	genreID, err := intField(header, row, "genre_id")
	if err != nil {
		return err
	}

	table := schema.GenreTitle
	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		table.Table, table.TitleID, table.GenreID,
	)
	_, err = tx.Exec(ctx, query, titleID, genreID)
	return err
}

func (loader *loader) loadReview(ctx context.Context, tx pgx.Tx, header, row []string) error {
	id, err := intField(header, row, "id")
	if err != nil {
		return err
	}
	titleID, err := intField(header, row, "title_id")
	if err != nil {
		return err
	}
	authorID, err := loader.author(header, row)
	if err != nil {
		return err
	}
	score, err := intField(header, row, "score")
	if err != nil {
		return err
	}

	table := schema.Review
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		table.Table, table.ID, table.TitleID, table.AuthorID, table.Text, table.Score, table.PubDate,
		table.ID,
		table.Text, table.Text, table.Score, table.Score,
	)
	_, err = tx.Exec(ctx, query, id, titleID, authorID, field(header, row, "text"), score, pubDate(header, row))
	return err
}

func (loader *loader) loadComment(ctx context.Context, tx pgx.Tx, header, row []string) error {
	id, err := intField(header, row, "id")
	if err != nil {
		return err
	}
	reviewID, err := intField(header, row, "review_id")
	if err != nil {
		return err
	}
	authorID, err := loader.author(header, row)
	if err != nil {
		return err
	}

	table := schema.Comment
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s`,
		table.Table, table.ID, table.ReviewID, table.AuthorID, table.Text, table.PubDate,
		table.ID,
		table.Text, table.Text,
	)
	_, err = tx.Exec(ctx, query, id, reviewID, authorID, field(header, row, "text"), pubDate(header, row))
	return err
}

// author resolves the legacy integer author id to an account UUID.
func (loader *loader) author(header, row []string) (string, error) {
	legacyID, err := intField(header, row, "author")
	if err != nil {
		return "", err
	}
	id, found := loader.userIDs[legacyID]
	if !found {
		return "", fmt.Errorf("author %d is not present in users.csv", legacyID)
	}
	return id, nil
}

// resetSequences realigns the serial sequences after explicit id inserts.
func (loader *loader) resetSequences(ctx context.Context, tx pgx.Tx) error {
	for _, table := range []string{
		schema.CatalogCategory.Table,
		schema.CatalogGenre.Table,
		schema.CatalogTitle.Table,
		schema.Review.Table,
		schema.Comment.Table,
	} {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s",
			table, table,
		)
		if _, err := tx.Exec(ctx, query); err != nil {
			return fmt.Errorf("reset sequence for %s: %w", table, err)
		}
	}
	return nil
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("initdata failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
