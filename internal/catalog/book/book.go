// Copyright (c) 2026 BookWorm Labs. All rights reserved.

/*
Package book defines the core catalogue entities for BookWorm.

It manages the lifecycle of books including metadata, genre classification,
and community reading metrics.

Core Responsibility:

  - Catalogue: Title, author, identifiers (ISBN, Open Library ID), cover art.
  - Discovery: Genre associations, title and author search.
  - Metrics: Derived rating aggregate and shelved counts for ranking.

This package acts as the source of truth for all content-related data models.
*/
package book

import (
	"time"

	"github.com/bookwormhq/bookworm-api/internal/catalog/genre"
	"github.com/bookwormhq/bookworm-api/pkg/slice"
)

// # Core Entities

// Ratings is the derived review aggregate stored on each book.
//
// These values are recomputed by the review moderation pipeline and are never
// set directly by user actions.
type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Book is the central aggregate of the BookWorm catalogue.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"`
	OLID        string `json:"olid,omitempty"` // Open Library identifier
	CoverImage  string `json:"cover_image,omitempty"`
	Description string `json:"description,omitempty"`
	PublishYear *int   `json:"publish_year,omitempty"`

	Genres []genre.Genre `json:"genres,omitempty"`

	// GenreIDs carries genre associations on create/update input only.
	GenreIDs []string `json:"genre_ids,omitempty"`

	// # Derived Metrics
	Ratings      Ratings `json:"ratings"`
	TotalShelved int     `json:"total_shelved"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GenreNames returns the names of the book's genres in stored order.
func (b *Book) GenreNames() []string {
	return slice.Map(b.Genres, func(g genre.Genre) string { return g.Name })
}

// PrimaryGenre returns the book's first genre name, or "" when unclassified.
func (b *Book) PrimaryGenre() string {
	if len(b.Genres) == 0 {
		return ""
	}
	return b.Genres[0].Name
}

// # Search & Filtering

// Filter holds the parameters for a filtered book list query.
type Filter struct {
	Query    string   `json:"q,omitempty"`      // Matches title or author, case-insensitive
	GenreIDs []string `json:"genres,omitempty"` // Restrict to books carrying any of these genres
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldISBN        = "isbn"
	FieldCoverImage  = "cover_image"
	FieldDescription = "description"
	FieldPublishYear = "publish_year"
	FieldGenreIDs    = "genre_ids"
)
