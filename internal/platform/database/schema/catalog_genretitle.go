package schema

// GenreTitleTable represents the 'catalog.genre_title' table
type GenreTitleTable struct {
	Table   string
	TitleID string
	GenreID string
}

// GenreTitle is the schema definition for catalog.genre_title
var GenreTitle = GenreTitleTable{
	Table:   "catalog.genre_title",
	TitleID: "title_id",
	GenreID: "genre_id",
}
