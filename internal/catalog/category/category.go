// Package category manages the coarse content classes a title belongs to
// (e.g. "Books", "Movies"). Each title references exactly one category.
package category

// Category represents a top-level content class.
type Category struct {
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
