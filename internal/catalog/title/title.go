// Package title manages the reviewable works of the catalog.
//
// A title belongs to one category, carries any number of genres, and exposes
// a rating computed from its reviews. The rating is never stored; it is
// derived at query time so it can not drift from the underlying scores.
package title

// Title represents a reviewable work.
type Title struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Description string `json:"description,omitempty"`

	// Rating is the arithmetic mean of all review scores, or null when the
	// title has no reviews yet.
	Rating *float64 `json:"rating"`

	Category *CategoryRef `json:"category"`
	Genres   []GenreRef   `json:"genre"`
}

// MeanScore derives the rating from a review score aggregate. A nil result
// stands for "no reviews yet" and serializes as JSON null.
func MeanScore(sum, count int64) *float64 {
	if count == 0 {
		return nil
	}
	mean := float64(sum) / float64(count)
	return &mean
}

// CategoryRef is the embedded category view in title responses.
type CategoryRef struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GenreRef is the embedded genre view in title responses.
type GenreRef struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter narrows title listings. GenreSlugs matches titles carrying any of
// the listed genres.
type Filter struct {
	CategorySlug string
	GenreSlugs   []string
	Year         int
	Search       string
}

// Field identifiers for validation.
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldCategory    = "category"

	NameMaxLength = 256
	// YearMin is the lower bound for plausible publication years.
	YearMin = -10000
)
