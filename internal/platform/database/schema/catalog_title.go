package schema

// CatalogTitleTable represents the 'catalog.title' table
type CatalogTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
}

// CatalogTitle is the schema definition for catalog.title
var CatalogTitle = CatalogTitleTable{
	Table:       "catalog.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "category_id",
}
