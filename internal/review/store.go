// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package review

import (
	"context"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
)

// Repository defines the data access contract for reviews.
type Repository interface {
	// ListByBook returns a book's reviews newest first, optionally filtered
	// by status. An empty status means all states.
	ListByBook(context context.Context, bookID string, status Status, limit, offset int) ([]*Review, int, error)

	// ListByStatus returns the moderation queue across all books.
	ListByStatus(context context.Context, status Status, limit, offset int) ([]*Review, int, error)

	// ListByUser returns everything one reader has written, newest first.
	ListByUser(context context.Context, userID string) ([]*Review, error)

	// FindByID resolves one review.
	FindByID(context context.Context, id string) (*Review, error)

	// Create persists a new review. A second review for the same
	// (book, user) pair surfaces as apperr.Conflict.
	Create(context context.Context, review *Review) error

	// Update persists rating, comment, status, and moderation fields.
	Update(context context.Context, review *Review) error

	// Delete removes a review.
	Delete(context context.Context, id string) error

	// ApprovedStats returns the mean rating and count of approved reviews
	// for a book. Zero values when none exist.
	ApprovedStats(context context.Context, bookID string) (average float64, count int, err error)
}

// BookCatalog is the catalogue slice the review pipeline depends on. The
// catalogue's [book.Repository] satisfies it.
type BookCatalog interface {
	FindByID(context context.Context, id string) (*book.Book, error)
	UpdateRatingAggregate(context context.Context, bookID string, average float64, count int) error
}

// ActivityRecorder publishes review events onto the social activity stream.
type ActivityRecorder interface {
	RecordBookActivity(context context.Context, userID, activityType, bookID string) error
}

const activityReviewedBook = "reviewed_book"
