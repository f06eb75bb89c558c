package schema

// ReviewTable represents the 'review.review' table
type ReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string
}

// Review is the schema definition for review.review
var Review = ReviewTable{
	Table:    "review.review",
	ID:       "id",
	TitleID:  "title_id",
	AuthorID: "author_id",
	Text:     "text",
	Score:    "score",
	PubDate:  "pub_date",
}
