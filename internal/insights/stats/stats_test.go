// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/catalog/genre"
	"github.com/bookwormhq/bookworm-api/internal/library"
)

// # Fixture Builders

func readEntry(finished time.Time, pages int, genres ...string) *library.Entry {
	return &library.Entry{
		Shelf:        library.ShelfRead,
		PagesRead:    pages,
		TotalPages:   pages,
		Percentage:   100,
		DateFinished: &finished,
		UpdatedAt:    finished,
		Book:         bookWithGenres(genres...),
	}
}

func shelvedEntry(shelf library.Shelf, pagesRead int) *library.Entry {
	return &library.Entry{
		Shelf:     shelf,
		PagesRead: pagesRead,
		Book:      bookWithGenres(),
	}
}

func bookWithGenres(names ...string) *book.Book {
	b := &book.Book{}
	for _, name := range names {
		b.Genres = append(b.Genres, genre.Genre{Name: name})
	}
	return b
}

func ratedEntry(rating int) *library.Entry {
	e := shelvedEntry(library.ShelfRead, 0)
	e.PersonalRating = &rating
	return e
}

// # Basic Block

func TestComputeBasicShelfCountsSumToTotal(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	entries := []*library.Entry{
		shelvedEntry(library.ShelfWantToRead, 0),
		shelvedEntry(library.ShelfWantToRead, 0),
		shelvedEntry(library.ShelfCurrentlyReading, 120),
		readEntry(now.AddDate(0, -1, 0), 300),
		readEntry(now.AddDate(-1, 0, 0), 250),
	}

	basic := computeBasic(entries, now)

	assert.Equal(t, 5, basic.TotalBooks)
	assert.Equal(t, basic.TotalBooks, basic.ByShelf.WantToRead+basic.ByShelf.CurrentlyReading+basic.ByShelf.Read)
	assert.Equal(t, 670, basic.TotalPagesRead)
	assert.Equal(t, 1, basic.CompletedThisYear)
	assert.Equal(t, 0, basic.CompletedThisMonth)
}

func TestComputeBasicCompletionsThisMonth(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	entries := []*library.Entry{
		readEntry(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 100),
		readEntry(time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), 100),
	}

	basic := computeBasic(entries, now)
	assert.Equal(t, 2, basic.CompletedThisYear)
	assert.Equal(t, 1, basic.CompletedThisMonth)
}

func TestComputeBasicAverageRating(t *testing.T) {
	now := time.Now()

	t.Run("zero when nothing rated", func(t *testing.T) {
		basic := computeBasic([]*library.Entry{shelvedEntry(library.ShelfRead, 0)}, now)
		assert.Zero(t, basic.AverageRating)
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		basic := computeBasic([]*library.Entry{ratedEntry(5), ratedEntry(4), ratedEntry(4)}, now)
		assert.Equal(t, 4.3, basic.AverageRating)
	})
}

// # Enhanced Block

func TestMonthlyProgressRollingWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	entries := []*library.Entry{
		readEntry(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), 100), // oldest in-window month
		readEntry(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 100), // fell out of the window
		readEntry(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 100),
		readEntry(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), 100),
	}

	buckets := monthlyProgress(entries, now)
	require.Len(t, buckets, 12)

	assert.Equal(t, MonthBucket{Month: "Apr", Year: 2025, Count: 1}, buckets[0])
	assert.Equal(t, MonthBucket{Month: "Mar", Year: 2026, Count: 2}, buckets[11])

	total := 0
	for _, bucket := range buckets {
		total += bucket.Count
	}
	assert.Equal(t, 3, total)
}

func TestEnhancedIgnoresBooksMovedOffReadShelf(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// Finished in March, then moved back to the reading shelf. The stamp
	// survives the move but the entry is no longer a completion.
	rereading := readEntry(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 200)
	rereading.Shelf = library.ShelfCurrentlyReading

	entries := []*library.Entry{
		rereading,
		readEntry(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 150),
	}

	enhanced := computeEnhanced(entries, now)

	assert.Equal(t, 1, enhanced.BooksThisYear)
	buckets := enhanced.MonthlyProgress
	require.Len(t, buckets, 12)
	assert.Equal(t, MonthBucket{Month: "Mar", Year: 2026, Count: 0}, buckets[11])
	assert.Equal(t, MonthBucket{Month: "Feb", Year: 2026, Count: 1}, buckets[10])
}

func TestGenreBreakdownTopSlicesWithPercentages(t *testing.T) {
	entries := []*library.Entry{
		readEntry(time.Now(), 1, "Fantasy", "Adventure"),
		readEntry(time.Now(), 1, "Fantasy"),
		readEntry(time.Now(), 1, "Fantasy"),
		readEntry(time.Now(), 1, "Science Fiction"),
		// Unfinished books never count toward the chart.
		shelvedEntry(library.ShelfCurrentlyReading, 50),
	}

	shares := genreBreakdown(entries)
	require.Len(t, shares, 3)

	assert.Equal(t, GenreShare{Genre: "Fantasy", Count: 3, Percentage: 60}, shares[0])
	assert.Equal(t, 20, shares[1].Percentage)
	assert.Equal(t, 20, shares[2].Percentage)
}

func TestGenreBreakdownCapsChartSize(t *testing.T) {
	entries := []*library.Entry{
		readEntry(time.Now(), 1, "A", "B", "C", "D", "E", "F", "G", "H"),
	}
	shares := genreBreakdown(entries)
	assert.Len(t, shares, 6)
}

func TestReadingStreak(t *testing.T) {
	now := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)

	touched := func(daysAgo int) *library.Entry {
		return &library.Entry{UpdatedAt: now.AddDate(0, 0, -daysAgo)}
	}

	t.Run("consecutive days ending today", func(t *testing.T) {
		streak := readingStreak([]*library.Entry{touched(0), touched(1), touched(3)}, now)
		assert.Equal(t, 2, streak)
	})

	t.Run("broken when today is idle", func(t *testing.T) {
		streak := readingStreak([]*library.Entry{touched(1), touched(2)}, now)
		assert.Zero(t, streak)
	})

	t.Run("empty library", func(t *testing.T) {
		assert.Zero(t, readingStreak(nil, now))
	})
}
