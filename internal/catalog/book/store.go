// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package book

import "context"

// Repository defines the data access contract for the book catalogue.
type Repository interface {
	// List returns a filtered, paginated slice of books plus the total count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	// FindByID returns the book with its genres populated.
	FindByID(context context.Context, id string) (*Book, error)

	// Create persists a new book and its genre junctions atomically.
	Create(context context.Context, book *Book) error

	// Update persists metadata changes; when GenreIDs is non-nil the genre
	// junctions are replaced.
	Update(context context.Context, book *Book) error

	// Delete removes a book and its junctions.
	Delete(context context.Context, id string) error

	// UpdateRatingAggregate writes the derived review aggregate onto the book.
	UpdateRatingAggregate(context context.Context, bookID string, average float64, count int) error

	// AdjustShelvedCount applies a +1/-1 delta to the book's totalshelved,
	// clamped at zero.
	AdjustShelvedCount(context context.Context, bookID string, delta int) error
}
