// Package genre manages the fine-grained labels attached to titles
// (e.g. "Drama", "Sci-Fi"). A title may carry any number of genres.
package genre

// Genre represents a content label.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Field identifiers for validation.
const (
	FieldName = "name"
	FieldSlug = "slug"

	NameMaxLength = 256
	SlugMaxLength = 50
)
