// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package recommend

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/catalog/genre"
	"github.com/bookwormhq/bookworm-api/internal/library"
)

// # Test Doubles

type fakeCandidates struct {
	personalized []*book.Book
	popular      []*book.Book

	gotGenreIDs  []string
	gotMinRating float64
	popularCalls int
}

func (f *fakeCandidates) Personalized(_ context.Context, _ string, genreIDs []string, minRating float64, _ int) ([]*book.Book, error) {
	f.gotGenreIDs = genreIDs
	f.gotMinRating = minRating
	return f.personalized, nil
}

func (f *fakeCandidates) Popular(_ context.Context, _ string, _ int) ([]*book.Book, error) {
	f.popularCalls++
	return f.popular, nil
}

type fakeLibrary struct {
	entries []*library.Entry
}

func (f *fakeLibrary) ListByUser(_ context.Context, _ string, _ library.Shelf) ([]*library.Entry, error) {
	return f.entries, nil
}

func newTestService(libraries *fakeLibrary, candidates *fakeCandidates) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(candidates, libraries, logger)
}

// # Fixture Builders

func genreOf(id, name string) genre.Genre { return genre.Genre{ID: id, Name: name} }

func finished(rating int, genres ...genre.Genre) *library.Entry {
	e := &library.Entry{
		Shelf: library.ShelfRead,
		Book:  &book.Book{Genres: genres},
	}
	if rating > 0 {
		e.PersonalRating = &rating
	}
	return e
}

func candidate(id string, genres ...genre.Genre) *book.Book {
	return &book.Book{ID: id, Genres: genres}
}

// # Pure Helpers

func TestTallyGenresOrdersByCountThenName(t *testing.T) {
	fantasy := genreOf("g1", "Fantasy")
	scifi := genreOf("g2", "Science Fiction")
	crime := genreOf("g3", "Crime")

	tally := tallyGenres([]*library.Entry{
		finished(0, fantasy), finished(0, fantasy), finished(0, fantasy),
		finished(0, scifi),
		finished(0, crime),
	})

	require.Len(t, tally, 3)
	assert.Equal(t, "Fantasy", tally[0].Name)
	assert.Equal(t, 3, tally[0].Count)
	assert.Equal(t, "Crime", tally[1].Name, "ties break alphabetically")
	assert.Equal(t, []string{"g1", "g3"}, topGenreIDs(tally, 2))
}

func TestAverageGivenRating(t *testing.T) {
	t.Run("mean of positive ratings", func(t *testing.T) {
		average := averageGivenRating([]*library.Entry{finished(5), finished(4), finished(0)})
		assert.InDelta(t, 4.5, average, 0.001)
	})

	t.Run("default when nothing rated", func(t *testing.T) {
		average := averageGivenRating([]*library.Entry{finished(0), finished(0)})
		assert.InDelta(t, 4.0, average, 0.001)
	})
}

func TestBuildReason(t *testing.T) {
	fantasy := genreOf("g1", "Fantasy")
	tally := tallyGenres([]*library.Entry{
		finished(0, fantasy), finished(0, fantasy), finished(0, fantasy),
	})

	t.Run("plural for repeated genre", func(t *testing.T) {
		reason := buildReason(candidate("b1", fantasy), tally)
		assert.Equal(t, "You've read 3 Fantasy books", reason)
	})

	t.Run("singular for a single read", func(t *testing.T) {
		single := tallyGenres([]*library.Entry{finished(0, fantasy)})
		reason := buildReason(candidate("b1", fantasy), single)
		assert.Equal(t, "You've read 1 Fantasy book", reason)
	})

	t.Run("cold-start phrasing without overlap", func(t *testing.T) {
		reason := buildReason(candidate("b1", genreOf("g9", "Horror")), tally)
		assert.Equal(t, coldStartReason, reason)
	})

	t.Run("secondary genres never personalize", func(t *testing.T) {
		reason := buildReason(candidate("b1", genreOf("g9", "Horror"), fantasy), tally)
		assert.Equal(t, coldStartReason, reason)
	})

	t.Run("cold-start phrasing without genres", func(t *testing.T) {
		reason := buildReason(candidate("b1"), tally)
		assert.Equal(t, coldStartReason, reason)
	})
}

// # Service Flow

func TestRecommendationsColdStartBelowThreshold(t *testing.T) {
	fantasy := genreOf("g1", "Fantasy")
	libraries := &fakeLibrary{entries: []*library.Entry{
		finished(5, fantasy), finished(4, fantasy),
		{Shelf: library.ShelfWantToRead, Book: &book.Book{}},
	}}
	candidates := &fakeCandidates{popular: []*book.Book{candidate("b1"), candidate("b2")}}

	result, err := newTestService(libraries, candidates).Recommendations(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, candidates.popularCalls)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, coldStartReason, result.Recommendations[0].Reason)
	assert.Equal(t, ShelfSummary{TotalRead: 2, WantToRead: 1}, result.Stats)
}

func TestRecommendationsPersonalizedAtThreshold(t *testing.T) {
	fantasy := genreOf("g1", "Fantasy")
	scifi := genreOf("g2", "Science Fiction")

	libraries := &fakeLibrary{entries: []*library.Entry{
		finished(5, fantasy), finished(4, fantasy), finished(3, fantasy),
		finished(0, scifi),
	}}
	candidates := &fakeCandidates{personalized: []*book.Book{
		candidate("b1", fantasy),
		candidate("b2", scifi),
	}}

	result, err := newTestService(libraries, candidates).Recommendations(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, candidates.popularCalls)
	assert.Equal(t, []string{"g1", "g2"}, candidates.gotGenreIDs)
	// Mean of the positive ratings (5,4,3) minus the slack.
	assert.InDelta(t, 3.5, candidates.gotMinRating, 0.001)

	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "You've read 3 Fantasy books", result.Recommendations[0].Reason)
	assert.Equal(t, "You've read 1 Science Fiction book", result.Recommendations[1].Reason)
}

func TestRecommendationsFallsBackWhenPersonalizedEmpty(t *testing.T) {
	fantasy := genreOf("g1", "Fantasy")
	libraries := &fakeLibrary{entries: []*library.Entry{
		finished(0, fantasy), finished(0, fantasy), finished(0, fantasy),
	}}
	candidates := &fakeCandidates{popular: []*book.Book{candidate("b9")}}

	result, err := newTestService(libraries, candidates).Recommendations(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1, candidates.popularCalls)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, coldStartReason, result.Recommendations[0].Reason)
	// Unrated readers still get the default rating floor applied upstream.
	assert.InDelta(t, 3.5, candidates.gotMinRating, 0.001)
}
