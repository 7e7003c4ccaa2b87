// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package recommend

import (
	"context"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/library"
)

// CandidateRepository fetches recommendation candidates from the catalogue.
// Both queries exclude every book already in the user's library.
type CandidateRepository interface {
	// Personalized returns books matching any of the genres, rated at or
	// above minRating, best rated and most shelved first.
	Personalized(context context.Context, userID string, genreIDs []string, minRating float64, limit int) ([]*book.Book, error)

	// Popular returns the cold-start list, same ordering, no genre or
	// rating constraint.
	Popular(context context.Context, userID string, limit int) ([]*book.Book, error)
}

// LibraryReader is the read-only library slice the engine consumes.
type LibraryReader interface {
	ListByUser(context context.Context, userID string, shelf library.Shelf) ([]*library.Entry, error)
}
