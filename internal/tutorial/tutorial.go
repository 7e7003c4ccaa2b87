// Copyright (c) 2026 BookWorm Labs. All rights reserved.

// Package tutorial implements the help-content library: short articles and
// videos explaining platform features. Only published tutorials are public;
// drafts stay visible to admins alone.
package tutorial

import "time"

// Status is the publication state of a tutorial.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// IsValid reports whether s is a recognised [Status].
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Tutorial is one help article.
type Tutorial struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	VideoURL    string `json:"video_url,omitempty"`

	// Category is free-form editorial labelling ("getting-started", etc).
	Category string `json:"category"`

	Status   Status `json:"status"`
	AuthorID string `json:"author_id"`
	Views    int    `json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter narrows tutorial listings.
type Filter struct {
	Category string
	Status   Status
}

const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldVideoURL = "video_url"
	FieldCategory = "category"
	FieldStatus   = "status"
)
