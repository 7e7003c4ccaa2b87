// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package library

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
)

// # Test Doubles

type fakeRepo struct {
	entries map[string]*Entry
	updates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: map[string]*Entry{}}
}

func entryKey(userID, bookID string) string { return userID + "|" + bookID }

func (f *fakeRepo) ListByUser(_ context.Context, userID string, shelf Shelf) ([]*Entry, error) {
	var out []*Entry
	for _, e := range f.entries {
		if e.UserID == userID && (shelf == "" || e.Shelf == shelf) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByUserAndBook(_ context.Context, userID, bookID string) (*Entry, error) {
	e, ok := f.entries[entryKey(userID, bookID)]
	if !ok {
		return nil, apperr.NotFound("Library entry")
	}
	return e, nil
}

func (f *fakeRepo) Create(_ context.Context, entry *Entry) error {
	f.entries[entryKey(entry.UserID, entry.BookID)] = entry
	return nil
}

func (f *fakeRepo) Update(_ context.Context, entry *Entry) error {
	f.updates++
	f.entries[entryKey(entry.UserID, entry.BookID)] = entry
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, userID, bookID string) error {
	delete(f.entries, entryKey(userID, bookID))
	return nil
}

type fakeCatalog struct {
	books  map[string]*book.Book
	deltas map[string]int
}

func newFakeCatalog(bookIDs ...string) *fakeCatalog {
	f := &fakeCatalog{books: map[string]*book.Book{}, deltas: map[string]int{}}
	for _, id := range bookIDs {
		f.books[id] = &book.Book{ID: id}
	}
	return f
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return b, nil
}

func (f *fakeCatalog) AdjustShelvedCount(_ context.Context, bookID string, delta int) error {
	f.deltas[bookID] += delta
	return nil
}

type fakeRecorder struct {
	events []string
}

func (f *fakeRecorder) RecordBookActivity(_ context.Context, _, activityType, _ string) error {
	f.events = append(f.events, activityType)
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeCatalog, *fakeRecorder) {
	repo := newFakeRepo()
	catalog := newFakeCatalog("book-1", "book-2")
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, catalog, recorder, logger), repo, catalog, recorder
}

// # Shelf Placement

func TestAddOrMoveCreatesEntry(t *testing.T) {
	service, repo, catalog, recorder := newTestService()

	entry, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfWantToRead, 0)
	require.NoError(t, err)

	assert.Equal(t, ShelfWantToRead, entry.Shelf)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.DateAdded.IsZero())
	assert.Nil(t, entry.DateFinished)
	assert.Len(t, repo.entries, 1)
	assert.Equal(t, 1, catalog.deltas["book-1"])
	assert.Equal(t, []string{"added_book"}, recorder.events)
}

func TestAddOrMoveSameShelfIsIdempotent(t *testing.T) {
	service, repo, catalog, _ := newTestService()

	first, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfCurrentlyReading, 0)
	require.NoError(t, err)

	second, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfCurrentlyReading, 0)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Zero(t, repo.updates)
	assert.Equal(t, 1, catalog.deltas["book-1"], "counter must only move on create")
}

func TestAddOrMoveRejectsUnknownShelf(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", Shelf("finished"), 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestAddOrMoveRejectsUnknownBook(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "missing", ShelfRead, 0)
	assert.True(t, apperr.IsNotFound(err))
}

func TestAddOrMoveToReadStampsCompletion(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfCurrentlyReading, 300)
	require.NoError(t, err)

	entry, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfRead, 0)
	require.NoError(t, err)
	require.NotNil(t, entry.DateFinished)

	finishedAt := *entry.DateFinished

	// A later round trip through another shelf keeps the original completion.
	_, err = service.AddOrMove(context.Background(), "user-1", "book-1", ShelfCurrentlyReading, 0)
	require.NoError(t, err)
	entry, err = service.AddOrMove(context.Background(), "user-1", "book-1", ShelfRead, 0)
	require.NoError(t, err)

	require.NotNil(t, entry.DateFinished)
	assert.True(t, entry.DateFinished.Equal(finishedAt))
}

// # Progress Tracking

func TestUpdateProgressComputesPercentage(t *testing.T) {
	service, _, _, recorder := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfCurrentlyReading, 300)
	require.NoError(t, err)

	entry, err := service.UpdateProgress(context.Background(), "user-1", "book-1", 100, 0)
	require.NoError(t, err)

	assert.Equal(t, 33, entry.Percentage)
	assert.Equal(t, ShelfCurrentlyReading, entry.Shelf)
	assert.Contains(t, recorder.events, "updated_progress")
}

func TestUpdateProgressFinishesAtFullRead(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfCurrentlyReading, 250)
	require.NoError(t, err)

	entry, err := service.UpdateProgress(context.Background(), "user-1", "book-1", 250, 0)
	require.NoError(t, err)

	assert.Equal(t, 100, entry.Percentage)
	assert.Equal(t, ShelfRead, entry.Shelf)
	require.NotNil(t, entry.DateFinished)
	assert.WithinDuration(t, time.Now(), *entry.DateFinished, time.Minute)
}

func TestUpdateProgressStartsWantToReadBook(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfWantToRead, 200)
	require.NoError(t, err)

	entry, err := service.UpdateProgress(context.Background(), "user-1", "book-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, ShelfCurrentlyReading, entry.Shelf)
}

func TestUpdateProgressClampsToTotalPages(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfCurrentlyReading, 200)
	require.NoError(t, err)

	entry, err := service.UpdateProgress(context.Background(), "user-1", "book-1", 900, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, entry.PagesRead)
	assert.Equal(t, 100, entry.Percentage)
}

func TestUpdateProgressRequiresTotalPages(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfCurrentlyReading, 0)
	require.NoError(t, err)

	_, err = service.UpdateProgress(context.Background(), "user-1", "book-1", 10, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Ratings and Removal

func TestSetPersonalRatingValidatesRange(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfRead, 0)
	require.NoError(t, err)

	_, err = service.SetPersonalRating(context.Background(), "user-1", "book-1", 6)
	require.Error(t, err)

	entry, err := service.SetPersonalRating(context.Background(), "user-1", "book-1", 5)
	require.NoError(t, err)
	require.NotNil(t, entry.PersonalRating)
	assert.Equal(t, 5, *entry.PersonalRating)
}

func TestRemoveReleasesShelvedCount(t *testing.T) {
	service, repo, catalog, _ := newTestService()

	_, err := service.AddOrMove(context.Background(), "user-1", "book-1", ShelfRead, 0)
	require.NoError(t, err)

	require.NoError(t, service.Remove(context.Background(), "user-1", "book-1"))
	assert.Empty(t, repo.entries)
	assert.Equal(t, 0, catalog.deltas["book-1"])

	err = service.Remove(context.Background(), "user-1", "book-1")
	assert.True(t, apperr.IsNotFound(err))
}
