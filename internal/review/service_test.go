// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package review

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
)

// # Test Doubles

type fakeRepo struct {
	reviews map[string]*Review
}

func newFakeRepo() *fakeRepo { return &fakeRepo{reviews: map[string]*Review{}} }

func (f *fakeRepo) ListByBook(_ context.Context, bookID string, status Status, _, _ int) ([]*Review, int, error) {
	var out []*Review
	for _, r := range f.reviews {
		if r.BookID == bookID && (status == "" || r.Status == status) {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByStatus(_ context.Context, status Status, _, _ int) ([]*Review, int, error) {
	var out []*Review
	for _, r := range f.reviews {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]*Review, error) {
	var out []*Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepo) Create(_ context.Context, review *Review) error {
	for _, existing := range f.reviews {
		if existing.BookID == review.BookID && existing.UserID == review.UserID {
			return apperr.Conflict("Review already exists")
		}
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeRepo) Update(_ context.Context, review *Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return apperr.NotFound("Review")
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepo) ApprovedStats(_ context.Context, bookID string) (float64, int, error) {
	sum, count := 0, 0
	for _, r := range f.reviews {
		if r.BookID == bookID && r.Status == StatusApproved {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeBooks struct {
	average float64
	count   int
}

func (f *fakeBooks) FindByID(_ context.Context, id string) (*book.Book, error) {
	if id == "missing" {
		return nil, apperr.NotFound("Book")
	}
	return &book.Book{ID: id}, nil
}

func (f *fakeBooks) UpdateRatingAggregate(_ context.Context, _ string, average float64, count int) error {
	f.average = average
	f.count = count
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeBooks) {
	repo := newFakeRepo()
	books := &fakeBooks{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, books, nil, logger), repo, books
}

// # Authoring

func TestCreateReviewEntersPendingQueue(t *testing.T) {
	service, _, books := newTestService()

	review, err := service.CreateReview(context.Background(), "user-1", "book-1", 5, "Loved it")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, review.Status)
	assert.Nil(t, review.ModeratedBy)
	assert.Zero(t, books.count, "pending reviews never touch the aggregate")
}

func TestCreateReviewEnforcesOnePerBook(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CreateReview(context.Background(), "user-1", "book-1", 5, "")
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), "user-1", "book-1", 3, "")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestCreateReviewValidatesRating(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CreateReview(context.Background(), "user-1", "book-1", 0, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestUpdateReviewIsAuthorOnly(t *testing.T) {
	service, _, _ := newTestService()

	review, err := service.CreateReview(context.Background(), "user-1", "book-1", 5, "")
	require.NoError(t, err)

	_, err = service.UpdateReview(context.Background(), "user-2", review.ID, 1, "Hijacked")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

// # Aggregate Lifecycle

func TestRatingAggregateFollowsModeration(t *testing.T) {
	service, _, books := newTestService()

	first, err := service.CreateReview(context.Background(), "user-1", "book-1", 5, "")
	require.NoError(t, err)
	second, err := service.CreateReview(context.Background(), "user-2", "book-1", 4, "")
	require.NoError(t, err)
	third, err := service.CreateReview(context.Background(), "user-3", "book-1", 4, "")
	require.NoError(t, err)

	_, err = service.Moderate(context.Background(), "mod-1", first.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 5.0, books.average)
	assert.Equal(t, 1, books.count)

	_, err = service.Moderate(context.Background(), "mod-1", second.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 4.5, books.average)
	assert.Equal(t, 2, books.count)

	// The stored aggregate is the exact mean, never rounded.
	_, err = service.Moderate(context.Background(), "mod-1", third.ID, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 13.0/3.0, books.average)
	assert.Equal(t, 3, books.count)

	_, err = service.Moderate(context.Background(), "mod-1", first.ID, StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, 4.0, books.average)
	assert.Equal(t, 2, books.count)
}

func TestRatingAggregateResetsWhenLastApprovedGoes(t *testing.T) {
	service, _, books := newTestService()

	review, err := service.CreateReview(context.Background(), "user-1", "book-1", 5, "")
	require.NoError(t, err)

	_, err = service.Moderate(context.Background(), "mod-1", review.ID, StatusApproved)
	require.NoError(t, err)

	require.NoError(t, service.DeleteReview(context.Background(), "user-1", false, review.ID))
	assert.Zero(t, books.average)
	assert.Zero(t, books.count)
}

func TestUpdateReturnsReviewToQueue(t *testing.T) {
	service, repo, books := newTestService()

	review, err := service.CreateReview(context.Background(), "user-1", "book-1", 5, "")
	require.NoError(t, err)
	_, err = service.Moderate(context.Background(), "mod-1", review.ID, StatusApproved)
	require.NoError(t, err)

	revised, err := service.UpdateReview(context.Background(), "user-1", review.ID, 3, "On reflection")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, revised.Status)
	assert.Nil(t, revised.ModeratedBy)
	assert.Equal(t, StatusPending, repo.reviews[review.ID].Status)
	assert.Zero(t, books.count, "a revised review leaves the aggregate")
}

func TestModerateRejectsUnknownDecision(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Moderate(context.Background(), "mod-1", "any", StatusPending)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDeleteReviewAdminOverride(t *testing.T) {
	service, repo, _ := newTestService()

	review, err := service.CreateReview(context.Background(), "user-1", "book-1", 2, "")
	require.NoError(t, err)

	err = service.DeleteReview(context.Background(), "user-2", false, review.ID)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteReview(context.Background(), "user-2", true, review.ID))
	assert.Empty(t, repo.reviews)
}
