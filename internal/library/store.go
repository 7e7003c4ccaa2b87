// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package library

import (
	"context"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
)

// Repository defines the data access contract for library entries.
type Repository interface {
	// ListByUser returns the user's entries newest-added first, with the book
	// and its genres populated. An empty shelf means all shelves.
	ListByUser(context context.Context, userID string, shelf Shelf) ([]*Entry, error)

	// FindByUserAndBook returns the unique entry for (user, book).
	FindByUserAndBook(context context.Context, userID, bookID string) (*Entry, error)

	// Create persists a new entry.
	Create(context context.Context, entry *Entry) error

	// Update persists shelf, progress, rating, and completion changes.
	Update(context context.Context, entry *Entry) error

	// Delete removes the entry for (user, book).
	Delete(context context.Context, userID, bookID string) error
}

// BookCatalog is the slice of the catalogue the library depends on. The
// catalogue's [book.Repository] satisfies it.
type BookCatalog interface {
	// FindByID resolves a catalogue book or returns apperr.NotFound.
	FindByID(context context.Context, id string) (*book.Book, error)

	// AdjustShelvedCount shifts the book's popularity counter by delta.
	AdjustShelvedCount(context context.Context, bookID string, delta int) error
}

// ActivityRecorder publishes library events onto the social activity stream.
type ActivityRecorder interface {
	RecordBookActivity(context context.Context, userID, activityType, bookID string) error
}

// Activity type identifiers emitted by the library.
const (
	activityAddedBook       = "added_book"
	activityUpdatedProgress = "updated_progress"
)
