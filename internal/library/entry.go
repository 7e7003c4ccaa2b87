// Copyright (c) 2026 BookWorm Labs. All rights reserved.

/*
Package library implements each reader's personal shelf collection.

A library entry ties one reader to one book with a shelf placement, reading
progress, and an optional personal rating. Entries are unique per (user, book)
and drive the statistics and recommendation engines downstream.

# Lifecycle Rules

  - dateAdded is immutable after creation.
  - dateFinished is written exactly once, the first time an entry reaches the
    read shelf (explicitly or via 100% progress), and is never cleared.
  - Setting an entry to its current shelf is a no-op, not an error.
*/
package library

import (
	"time"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
)

// # Domain Enums

// Shelf is the placement of a book within a reader's library.
type Shelf string

const (
	// ShelfWantToRead marks a book the reader intends to start.
	ShelfWantToRead Shelf = "want_to_read"

	// ShelfCurrentlyReading marks a book in progress.
	ShelfCurrentlyReading Shelf = "currently_reading"

	// ShelfRead marks a finished book.
	ShelfRead Shelf = "read"
)

// IsValid reports whether s is a recognised [Shelf] value.
func (s Shelf) IsValid() bool {
	switch s {
	case ShelfWantToRead, ShelfCurrentlyReading, ShelfRead:
		return true
	}
	return false
}

// # Core Entities

// Entry is a single book placement in a reader's library.
type Entry struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	BookID string `json:"book_id"`
	Shelf  Shelf  `json:"shelf"`

	// # Progress
	PagesRead  int `json:"pages_read"`
	TotalPages int `json:"total_pages"`
	Percentage int `json:"percentage"` // Derived: round(pagesRead/totalPages*100)

	// PersonalRating is the reader's private 1-5 score, independent of reviews.
	PersonalRating *int `json:"personal_rating,omitempty"`

	DateAdded    time.Time  `json:"date_added"`
	DateFinished *time.Time `json:"date_finished,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Book is populated on reads for downstream aggregation and display.
	Book *book.Book `json:"book,omitempty"`
}

// GenreNames returns the entry's book genres, or nil when not populated.
func (e *Entry) GenreNames() []string {
	if e.Book == nil {
		return nil
	}
	return e.Book.GenreNames()
}

// # Field Identifiers

const (
	FieldBookID         = "book_id"
	FieldShelf          = "shelf"
	FieldPagesRead      = "pages_read"
	FieldTotalPages     = "total_pages"
	FieldPersonalRating = "personal_rating"
)
