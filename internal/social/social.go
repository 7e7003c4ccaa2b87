// Copyright (c) 2026 BookWorm Labs. All rights reserved.

/*
Package social implements the reader graph and activity stream.

Readers follow each other; shelf, review, and follow events are recorded as
activities and surfaced as a feed of everyone the viewer follows.
*/
package social

import "time"

// # Activity Stream

// ActivityType identifies the event class behind a feed item.
type ActivityType string

const (
	ActivityAddedBook       ActivityType = "added_book"
	ActivityReviewedBook    ActivityType = "reviewed_book"
	ActivityUpdatedProgress ActivityType = "updated_progress"
	ActivityFollowedUser    ActivityType = "followed_user"
)

// IsValid reports whether t is a recognised [ActivityType].
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityAddedBook, ActivityReviewedBook, ActivityUpdatedProgress, ActivityFollowedUser:
		return true
	}
	return false
}

// Activity is one event on the stream.
type Activity struct {
	ID     string       `json:"id"`
	UserID string       `json:"user_id"`
	Type   ActivityType `json:"type"`

	BookID       *string `json:"book_id,omitempty"`
	TargetUserID *string `json:"target_user_id,omitempty"`

	// Details carries small type-specific extras (e.g. a progress percentage).
	Details map[string]any `json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Display fields, populated on feed reads.
	Username       string `json:"username,omitempty"`
	DisplayName    string `json:"display_name,omitempty"`
	BookTitle      string `json:"book_title,omitempty"`
	BookCover      string `json:"book_cover,omitempty"`
	TargetUsername string `json:"target_username,omitempty"`
}

// # Profiles

// Profile is the public view of a reader.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`

	FollowerCount  int  `json:"follower_count"`
	FollowingCount int  `json:"following_count"`
	IsFollowing    bool `json:"is_following"`
}

// UserSummary is the compact card used in search results and follow lists.
type UserSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// Feed sizing.
const (
	feedDefaultLimit = 20
	feedMaxLimit     = 50
)
