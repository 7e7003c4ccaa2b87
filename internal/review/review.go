// Copyright (c) 2026 BookWorm Labs. All rights reserved.

/*
Package review implements public book reviews with a moderation pipeline.

Each reader writes at most one review per book. Reviews enter the queue as
pending and only approved ones are visible publicly or counted toward the
book's rating aggregate. The aggregate is recomputed after every mutation,
serialized per book so concurrent writes cannot interleave stale averages.
*/
package review

import "time"

// # Moderation States

// Status is the moderation state of a review.
type Status string

const (
	// StatusPending marks a review awaiting moderation.
	StatusPending Status = "pending"

	// StatusApproved marks a review visible to everyone.
	StatusApproved Status = "approved"

	// StatusRejected marks a review hidden by a moderator.
	StatusRejected Status = "rejected"
)

// IsModerated reports whether s is a terminal moderation decision.
func (s Status) IsModerated() bool {
	return s == StatusApproved || s == StatusRejected
}

// # Core Entities

// Review is one reader's public opinion of a book.
type Review struct {
	ID     string `json:"id"`
	BookID string `json:"book_id"`
	UserID string `json:"user_id"`

	Rating  int    `json:"rating"` // 1-5
	Comment string `json:"comment"`

	Status      Status     `json:"status"`
	ModeratedBy *string    `json:"moderated_by,omitempty"`
	ModeratedAt *time.Time `json:"moderated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Reviewer display fields, populated on reads.
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// # Field Identifiers

const (
	FieldBookID  = "book_id"
	FieldRating  = "rating"
	FieldComment = "comment"
	FieldStatus  = "status"
)
