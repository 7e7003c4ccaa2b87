// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/keymutex"
	"github.com/bookwormhq/bookworm-api/pkg/pointer"
	"github.com/bookwormhq/bookworm-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates review writing, moderation, and the book rating
// aggregate derived from approved reviews.
type Service struct {
	repo       Repository
	books      BookCatalog
	activities ActivityRecorder
	logger     *slog.Logger

	// ratingLocks serializes aggregate recomputation per book.
	ratingLocks *keymutex.KeyMutex
}

// NewService constructs a new review [Service].
func NewService(repo Repository, books BookCatalog, activities ActivityRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		books:       books,
		activities:  activities,
		logger:      logger,
		ratingLocks: keymutex.New(),
	}
}

// ListBookReviews returns a book's approved reviews, newest first.
func (service *Service) ListBookReviews(context context.Context, bookID string, limit, offset int) ([]*Review, int, error) {
	return service.repo.ListByBook(context, bookID, StatusApproved, limit, offset)
}

// ListQueue returns the moderation queue, optionally narrowed to one status.
func (service *Service) ListQueue(context context.Context, status Status, limit, offset int) ([]*Review, int, error) {
	if status != "" && status != StatusPending && !status.IsModerated() {
		return nil, 0, validate.RequiredError(FieldStatus, "Unknown status")
	}
	return service.repo.ListByStatus(context, status, limit, offset)
}

// ListUserReviews returns everything one reader has written.
func (service *Service) ListUserReviews(context context.Context, userID string) ([]*Review, error) {
	return service.repo.ListByUser(context, userID)
}

// CreateReview submits a new review into the moderation queue.
//
// One review per (book, user); a duplicate submission returns Conflict.
func (service *Service) CreateReview(context context.Context, userID, bookID string, rating int, comment string) (*Review, error) {
	validator := &validate.Validator{}
	validator.Required(FieldBookID, bookID)
	validator.Range(FieldRating, rating, 1, 5)
	validator.MaxLen(FieldComment, comment, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.books.FindByID(context, bookID); err != nil {
		return nil, err
	}

	review := &Review{
		ID:      uuid.New(),
		BookID:  bookID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
		Status:  StatusPending,
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.recordActivity(context, userID, bookID)
	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.String("book_id", bookID),
	)
	return review, nil
}

// UpdateReview lets the author revise rating or comment. A revised review
// returns to the moderation queue, so the aggregate is recomputed.
func (service *Service) UpdateReview(context context.Context, userID, reviewID string, rating int, comment string) (*Review, error) {
	validator := &validate.Validator{}
	validator.Range(FieldRating, rating, 1, 5)
	validator.MaxLen(FieldComment, comment, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	review, err := service.repo.FindByID(context, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperr.Forbidden("Only the author can edit a review")
	}

	review.Rating = rating
	review.Comment = comment
	review.Status = StatusPending
	review.ModeratedBy = nil
	review.ModeratedAt = nil

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.recomputeRating(context, review.BookID)
	return review, nil
}

// Moderate applies an approve or reject decision.
func (service *Service) Moderate(context context.Context, moderatorID, reviewID string, status Status) (*Review, error) {
	if !status.IsModerated() {
		return nil, validate.RequiredError(FieldStatus, "Decision must be approved or rejected")
	}

	review, err := service.repo.FindByID(context, reviewID)
	if err != nil {
		return nil, err
	}

	review.Status = status
	review.ModeratedBy = pointer.To(moderatorID)
	review.ModeratedAt = pointer.To(time.Now())

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.recomputeRating(context, review.BookID)
	service.logger.Info("review_moderated",
		slog.String("review_id", review.ID),
		slog.String("status", string(status)),
		slog.String("moderator_id", moderatorID),
	)
	return review, nil
}

// DeleteReview removes a review. Authors can delete their own; admins any.
func (service *Service) DeleteReview(context context.Context, userID string, isAdmin bool, reviewID string) error {
	review, err := service.repo.FindByID(context, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID && !isAdmin {
		return apperr.Forbidden("Only the author or an admin can delete a review")
	}

	if err := service.repo.Delete(context, reviewID); err != nil {
		return err
	}

	service.recomputeRating(context, review.BookID)
	return nil
}

// recomputeRating refreshes the book's aggregate from approved reviews.
// Serialized per book so overlapping mutations settle on the final state.
// An aggregate failure is logged, never surfaced: the review write itself
// already succeeded.
func (service *Service) recomputeRating(context context.Context, bookID string) {
	service.ratingLocks.Do(bookID, func() {
		average, count, err := service.repo.ApprovedStats(context, bookID)
		if err == nil {
			err = service.books.UpdateRatingAggregate(context, bookID, average, count)
		}
		if err != nil {
			service.logger.Error("review_rating_recompute_failed",
				slog.String("book_id", bookID),
				slog.Any("error", err),
			)
		}
	})
}

func (service *Service) recordActivity(context context.Context, userID, bookID string) {
	if service.activities == nil {
		return
	}
	if err := service.activities.RecordBookActivity(context, userID, activityReviewedBook, bookID); err != nil {
		service.logger.Warn("review_activity_record_failed",
			slog.String("book_id", bookID),
			slog.Any("error", err),
		)
	}
}
