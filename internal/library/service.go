// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package library

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/pointer"
	"github.com/bookwormhq/bookworm-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates shelf placement, progress tracking, and the derived
// side effects (shelved counters, activity stream events).
type Service struct {
	repo       Repository
	books      BookCatalog
	activities ActivityRecorder
	logger     *slog.Logger
}

// NewService constructs a new library [Service].
func NewService(repo Repository, books BookCatalog, activities ActivityRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		books:      books,
		activities: activities,
		logger:     logger,
	}
}

// ListEntries returns the user's library, optionally filtered by shelf.
func (service *Service) ListEntries(context context.Context, userID string, shelf Shelf) ([]*Entry, error) {
	if shelf != "" && !shelf.IsValid() {
		return nil, validate.RequiredError(FieldShelf, "Unknown shelf")
	}
	return service.repo.ListByUser(context, userID, shelf)
}

// GetEntry returns the user's entry for a single book.
func (service *Service) GetEntry(context context.Context, userID, bookID string) (*Entry, error) {
	return service.repo.FindByUserAndBook(context, userID, bookID)
}

// AddOrMove places a book on a shelf.
//
// When no entry exists one is created, the book's shelved counter is
// incremented, and an added_book activity is recorded. When an entry already
// exists it is moved to the target shelf; moving to the shelf it is already
// on returns the entry unchanged.
func (service *Service) AddOrMove(context context.Context, userID, bookID string, shelf Shelf, totalPages int) (*Entry, error) {
	validator := &validate.Validator{}
	validator.Required(FieldBookID, bookID)
	validator.Custom(FieldShelf, !shelf.IsValid(), "Unknown shelf")
	validator.Custom(FieldTotalPages, totalPages < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.books.FindByID(context, bookID); err != nil {
		return nil, err
	}

	existing, err := service.repo.FindByUserAndBook(context, userID, bookID)
	switch {
	case err == nil:
		return service.moveShelf(context, existing, shelf, totalPages)
	case apperr.IsNotFound(err):
		return service.addEntry(context, userID, bookID, shelf, totalPages)
	default:
		return nil, err
	}
}

func (service *Service) addEntry(context context.Context, userID, bookID string, shelf Shelf, totalPages int) (*Entry, error) {
	now := time.Now().UTC()
	entry := &Entry{
		ID:         uuid.New(),
		UserID:     userID,
		BookID:     bookID,
		Shelf:      shelf,
		TotalPages: totalPages,
		DateAdded:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if shelf == ShelfRead {
		entry.DateFinished = &now
	}

	if err := service.repo.Create(context, entry); err != nil {
		return nil, err
	}

	if err := service.books.AdjustShelvedCount(context, bookID, 1); err != nil {
		service.logger.Warn("library_shelved_count_increment_failed",
			slog.String("book_id", bookID),
			slog.Any("error", err),
		)
	}
	service.recordActivity(context, userID, activityAddedBook, bookID)

	return entry, nil
}

func (service *Service) moveShelf(context context.Context, entry *Entry, shelf Shelf, totalPages int) (*Entry, error) {
	if totalPages > 0 {
		entry.TotalPages = totalPages
	}

	if entry.Shelf == shelf {
		if totalPages == 0 {
			return entry, nil
		}
		return entry, service.repo.Update(context, entry)
	}

	entry.Shelf = shelf
	if shelf == ShelfRead {
		service.finalize(entry)
	}

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateProgress records a page position and recomputes the percentage.
// Reaching 100% moves the entry to the read shelf automatically.
func (service *Service) UpdateProgress(context context.Context, userID, bookID string, pagesRead, totalPages int) (*Entry, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldPagesRead, pagesRead < 0, "Must not be negative")
	validator.Custom(FieldTotalPages, totalPages < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry, err := service.repo.FindByUserAndBook(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	if totalPages > 0 {
		entry.TotalPages = totalPages
	}
	if entry.TotalPages <= 0 {
		return nil, validate.RequiredError(FieldTotalPages, "Total pages must be set before tracking progress")
	}
	if pagesRead > entry.TotalPages {
		pagesRead = entry.TotalPages
	}

	entry.PagesRead = pagesRead
	entry.Percentage = int(math.Round(float64(pagesRead) / float64(entry.TotalPages) * 100))

	if entry.Percentage >= 100 {
		entry.Shelf = ShelfRead
		service.finalize(entry)
	} else if entry.Shelf == ShelfWantToRead && pagesRead > 0 {
		entry.Shelf = ShelfCurrentlyReading
	}

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}
	service.recordActivity(context, userID, activityUpdatedProgress, bookID)

	return entry, nil
}

// SetPersonalRating stores the reader's private 1-5 score for a book.
func (service *Service) SetPersonalRating(context context.Context, userID, bookID string, rating int) (*Entry, error) {
	validator := &validate.Validator{}
	validator.Range(FieldPersonalRating, rating, 1, 5)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry, err := service.repo.FindByUserAndBook(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	entry.PersonalRating = pointer.To(rating)
	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Remove deletes the entry and releases its hold on the shelved counter.
func (service *Service) Remove(context context.Context, userID, bookID string) error {
	if _, err := service.repo.FindByUserAndBook(context, userID, bookID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, userID, bookID); err != nil {
		return err
	}

	if err := service.books.AdjustShelvedCount(context, bookID, -1); err != nil {
		service.logger.Warn("library_shelved_count_decrement_failed",
			slog.String("book_id", bookID),
			slog.Any("error", err),
		)
	}
	return nil
}

// finalize stamps completion state. DateFinished is written once and kept.
func (service *Service) finalize(entry *Entry) {
	if entry.DateFinished == nil {
		now := time.Now().UTC()
		entry.DateFinished = &now
	}
}

// recordActivity publishes onto the social stream. Failures are logged and
// swallowed so a feed outage never blocks shelf writes.
func (service *Service) recordActivity(context context.Context, userID, activityType, bookID string) {
	if service.activities == nil {
		return
	}
	if err := service.activities.RecordBookActivity(context, userID, activityType, bookID); err != nil {
		service.logger.Warn("library_activity_record_failed",
			slog.String("type", activityType),
			slog.String("book_id", bookID),
			slog.Any("error", err),
		)
	}
}
