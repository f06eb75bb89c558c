package title_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kritika/internal/catalog/category"
	"kritika/internal/catalog/genre"
	"kritika/internal/catalog/title"
	"kritika/internal/platform/apperr"
	"kritika/pkg/pagination"
	"kritika/pkg/pointer"
)

// # Test Fakes

type fakeTitleRepo struct {
	byID     map[int64]*title.Title
	genreIDs map[int64][]int64
	nextID   int64
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{
		byID:     make(map[int64]*title.Title),
		genreIDs: make(map[int64][]int64),
	}
}

func (r *fakeTitleRepo) List(_ context.Context, _ pagination.Params, _ title.Filter) ([]*title.Title, int, error) {
	titles := make([]*title.Title, 0, len(r.byID))
	for _, t := range r.byID {
		titles = append(titles, t)
	}
	return titles, len(titles), nil
}

func (r *fakeTitleRepo) GetByID(_ context.Context, id int64) (*title.Title, error) {
	if t, ok := r.byID[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, apperr.NotFound("Title")
}

func (r *fakeTitleRepo) Create(_ context.Context, t *title.Title, genreIDs []int64) error {
	r.nextID++
	t.ID = r.nextID
	r.byID[t.ID] = t
	r.genreIDs[t.ID] = genreIDs
	return nil
}

func (r *fakeTitleRepo) Update(_ context.Context, t *title.Title, genreIDs []int64, replaceGenres bool) error {
	if _, ok := r.byID[t.ID]; !ok {
		return apperr.NotFound("Title")
	}
	r.byID[t.ID] = t
	if replaceGenres {
		r.genreIDs[t.ID] = genreIDs
	}
	return nil
}

func (r *fakeTitleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(r.byID, id)
	return nil
}

type fakeCategoryResolver struct {
	bySlug map[string]*category.Category
}

func (r *fakeCategoryResolver) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := r.bySlug[slug]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Category")
}

type fakeGenreResolver struct {
	bySlug map[string]genre.Genre
}

func (r *fakeGenreResolver) GetBySlugs(_ context.Context, slugs []string) ([]genre.Genre, error) {
	found := make([]genre.Genre, 0, len(slugs))
	for _, s := range slugs {
		if g, ok := r.bySlug[s]; ok {
			found = append(found, g)
		}
	}
	return found, nil
}

func newService(repo *fakeTitleRepo) *title.Service {
	categories := &fakeCategoryResolver{bySlug: map[string]*category.Category{
		"movies": {ID: 1, Name: "Movies", Slug: "movies"},
	}}
	genres := &fakeGenreResolver{bySlug: map[string]genre.Genre{
		"drama":  {ID: 10, Name: "Drama", Slug: "drama"},
		"sci-fi": {ID: 11, Name: "Sci-Fi", Slug: "sci-fi"},
	}}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return title.NewService(repo, categories, genres, logger)
}

// # Creation

/*
TestCreate verifies that a valid title resolves its category and genres.
*/
func TestCreate(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Arrival",
		Year:         2016,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "sci-fi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "movies", created.Category.Slug)
	assert.Len(t, created.Genres, 2)
	assert.Equal(t, []int64{10, 11}, repo.genreIDs[created.ID])
}

/*
TestCreate_UnknownGenre verifies that a nonexistent genre slug fails the
whole request and nothing is persisted.
*/
func TestCreate_UnknownGenre(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newService(repo)

	_, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Arrival",
		Year:         2016,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "nonexistent"},
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "nonexistent")
	assert.Empty(t, repo.byID)
}

/*
TestCreate_EmptyGenres verifies that a title cannot be created without at
least one genre, whether the list is nil or empty.
*/
func TestCreate_EmptyGenres(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newService(repo)

	for _, genreSlugs := range [][]string{nil, {}} {
		_, err := service.Create(context.Background(), title.CreateInput{
			Name:         "Arrival",
			Year:         2016,
			CategorySlug: "movies",
			GenreSlugs:   genreSlugs,
		})

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, 400, appErr.HTTPStatus)
	}

	assert.Empty(t, repo.byID)
}

/*
TestCreate_UnknownCategory verifies the category counterpart.
*/
func TestCreate_UnknownCategory(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newService(repo)

	_, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Arrival",
		Year:         2016,
		CategorySlug: "podcasts",
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Empty(t, repo.byID)
}

/*
TestCreate_FutureYear verifies the publication year upper bound.
*/
func TestCreate_FutureYear(t *testing.T) {
	service := newService(newFakeTitleRepo())

	_, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Arrival",
		Year:         time.Now().Year() + 1,
		CategorySlug: "movies",
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

// # Update

/*
TestUpdate_GenresReplaceNotMerge verifies that a genre list in a partial
edit replaces the existing set wholesale.
*/
func TestUpdate_GenresReplaceNotMerge(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Arrival",
		Year:         2016,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "sci-fi"},
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, title.UpdateInput{
		GenreSlugs: &[]string{"drama"},
	})

	require.NoError(t, err)
	assert.Len(t, updated.Genres, 1)
	assert.Equal(t, []int64{10}, repo.genreIDs[created.ID])
}

/*
TestUpdate_OmittedGenresUntouched verifies that a partial edit without a
genre field leaves the genre set alone.
*/
func TestUpdate_OmittedGenresUntouched(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Arrival",
		Year:         2016,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "sci-fi"},
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, title.UpdateInput{
		Name: pointer.To("Arrival (Director's Cut)"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Arrival (Director's Cut)", updated.Name)
	assert.Equal(t, []int64{10, 11}, repo.genreIDs[created.ID])
}

/*
TestUpdate_EmptyGenresRejected verifies that an explicit empty genre list
cannot strip a title of all its genres.
*/
func TestUpdate_EmptyGenresRejected(t *testing.T) {
	repo := newFakeTitleRepo()
	service := newService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Arrival",
		Year:         2016,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama"},
	})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, title.UpdateInput{
		GenreSlugs: pointer.To([]string{}),
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Equal(t, []int64{10}, repo.genreIDs[created.ID])
}

// # Rating Aggregate

/*
TestMeanScore verifies the rating derivation: the arithmetic mean of all
review scores, and nil while a title has no reviews.
*/
func TestMeanScore(t *testing.T) {
	// 1. Scores 3, 5, 10 average to 6.0
	rating := title.MeanScore(3+5+10, 3)
	require.NotNil(t, rating)
	assert.InDelta(t, 6.0, *rating, 1e-9)

	// 2. A non-integer mean is not rounded
	rating = title.MeanScore(3+4, 2)
	require.NotNil(t, rating)
	assert.InDelta(t, 3.5, *rating, 1e-9)

	// 3. Zero reviews yield no rating at all
	assert.Nil(t, title.MeanScore(0, 0))
}

/*
TestTitle_RatingJSON verifies the response contract: an unreviewed title
renders "rating":null, a reviewed one renders the numeric mean.
*/
func TestTitle_RatingJSON(t *testing.T) {
	unrated := title.Title{Name: "Arrival", Rating: title.MeanScore(0, 0)}
	raw, err := json.Marshal(unrated)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rating":null`)

	rated := title.Title{Name: "Arrival", Rating: title.MeanScore(18, 3)}
	raw, err = json.Marshal(rated)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rating":6`)
}
