package schema

// CommentTable represents the 'review.comment' table
type CommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  string
}

// Comment is the schema definition for review.comment
var Comment = CommentTable{
	Table:    "review.comment",
	ID:       "id",
	ReviewID: "review_id",
	AuthorID: "author_id",
	Text:     "text",
	PubDate:  "pub_date",
}
