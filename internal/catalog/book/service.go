// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the book catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new catalogue [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListBooks retrieves a paginated, filtered collection of books.
func (service *Service) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// GetBook fetches a single book with its genres populated.
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	return service.repo.FindByID(context, id)
}

// CreateBook validates and persists a new catalogue entry.
//
// Derived metrics (rating aggregate, shelved count) always start at zero;
// inbound values for them are discarded.
func (service *Service) CreateBook(context context.Context, book *Book) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 500)
	validator.Required(FieldAuthor, book.Author).MaxLen(FieldAuthor, book.Author, 300)

	if book.CoverImage != "" {
		validator.URL(FieldCoverImage, book.CoverImage)
	}
	if book.PublishYear != nil {
		validator.Range(FieldPublishYear, *book.PublishYear, 0, time.Now().Year()+1)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if book.ID == "" {
		book.ID = uuid.New()
	}

	// Derived fields are owned by the aggregation pipelines.
	book.Ratings = Ratings{}
	book.TotalShelved = 0

	if err := service.repo.Create(context, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
	)
	return nil
}

// UpdateBook applies a partial metadata update. Empty fields keep their
// stored values; a non-nil GenreIDs replaces the genre set.
func (service *Service) UpdateBook(context context.Context, book *Book) error {
	validator := &validate.Validator{}
	if book.Title != "" {
		validator.MaxLen(FieldTitle, book.Title, 500)
	}
	if book.Author != "" {
		validator.MaxLen(FieldAuthor, book.Author, 300)
	}
	if book.CoverImage != "" {
		validator.URL(FieldCoverImage, book.CoverImage)
	}
	if book.PublishYear != nil {
		validator.Range(FieldPublishYear, *book.PublishYear, 0, time.Now().Year()+1)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.Update(context, book)
}

// DeleteBook removes a book from the catalogue entirely.
func (service *Service) DeleteBook(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}
	service.logger.Info("book_deleted", slog.String("book_id", id))
	return nil
}
