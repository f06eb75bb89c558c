// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package review implements user reviews on titles and threaded comments on
reviews.

# Invariants

  - An author holds at most one review per title, enforced by a unique index
    rather than an application-level existence check.
  - Scores are integers from 1 to 10; the title rating is their mean.
  - Authors edit their own content; moderators and admins edit anyone's.
*/
package review

import "time"

// # Domain Entities

// Review is a scored, authored opinion on a title.
type Review struct {
	ID      int64  `json:"id"`
	TitleID int64  `json:"-"`
	Text    string `json:"text"`
	Score   int    `json:"score"`

	// AuthorID is the internal account reference; responses carry the
	// username instead.
	AuthorID string `json:"-"`
	Author   string `json:"author"`

	PubDate time.Time `json:"pub_date"`
}

// Comment is an unscored reply attached to a review.
type Comment struct {
	ID       int64  `json:"id"`
	ReviewID int64  `json:"-"`
	Text     string `json:"text"`

	AuthorID string `json:"-"`
	Author   string `json:"author"`

	PubDate time.Time `json:"pub_date"`
}

// # Constraints

const (
	ScoreMin = 1
	ScoreMax = 10

	FieldText  = "text"
	FieldScore = "score"
)
