// Copyright (c) 2026 BookWorm Labs. All rights reserved.

// Package stats derives reading statistics from a user's library.
//
// All aggregation is pure computation over the in-memory entry set; the
// single source of truth stays the library store.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/bookwormhq/bookworm-api/internal/library"
	"github.com/bookwormhq/bookworm-api/internal/platform/constants"
)

// ShelfCounts breaks the library size down per shelf.
type ShelfCounts struct {
	WantToRead       int `json:"want_to_read"`
	CurrentlyReading int `json:"currently_reading"`
	Read             int `json:"read"`
}

// Basic is the lightweight stat block shown on the profile.
type Basic struct {
	TotalBooks         int         `json:"total_books"`
	ByShelf            ShelfCounts `json:"by_shelf"`
	TotalPagesRead     int         `json:"total_pages_read"`
	CompletedThisYear  int         `json:"completed_this_year"`
	CompletedThisMonth int         `json:"completed_this_month"`
	AverageRating      float64     `json:"average_rating"`
}

// MonthBucket is one month of completion history.
type MonthBucket struct {
	Month string `json:"month"` // Short month name, "Jan" through "Dec"
	Year  int    `json:"year"`
	Count int    `json:"count"`
}

// GenreShare is one slice of the finished-books genre chart.
type GenreShare struct {
	Genre      string `json:"genre"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Enhanced is the full dashboard stat block.
type Enhanced struct {
	MonthlyProgress []MonthBucket `json:"monthly_progress"`
	GenreBreakdown  []GenreShare  `json:"genre_breakdown"`
	ReadingStreak   int           `json:"reading_streak"`
	BooksThisYear   int           `json:"books_this_year"`
	TotalPagesRead  int           `json:"total_pages_read"`
}

func computeBasic(entries []*library.Entry, now time.Time) *Basic {
	basic := &Basic{TotalBooks: len(entries)}

	var ratingSum, ratingCount int
	for _, entry := range entries {
		switch entry.Shelf {
		case library.ShelfWantToRead:
			basic.ByShelf.WantToRead++
		case library.ShelfCurrentlyReading:
			basic.ByShelf.CurrentlyReading++
		case library.ShelfRead:
			basic.ByShelf.Read++
		}

		basic.TotalPagesRead += entry.PagesRead

		if entry.DateFinished != nil {
			if entry.DateFinished.Year() == now.Year() {
				basic.CompletedThisYear++
				if entry.DateFinished.Month() == now.Month() {
					basic.CompletedThisMonth++
				}
			}
		}

		if entry.PersonalRating != nil {
			ratingSum += *entry.PersonalRating
			ratingCount++
		}
	}

	if ratingCount > 0 {
		basic.AverageRating = math.Round(float64(ratingSum)/float64(ratingCount)*10) / 10
	}
	return basic
}

func computeEnhanced(entries []*library.Entry, now time.Time) *Enhanced {
	enhanced := &Enhanced{
		MonthlyProgress: monthlyProgress(entries, now),
		GenreBreakdown:  genreBreakdown(entries),
		ReadingStreak:   readingStreak(entries, now),
	}

	for _, entry := range entries {
		enhanced.TotalPagesRead += entry.PagesRead
		if entry.Shelf == library.ShelfRead &&
			entry.DateFinished != nil && entry.DateFinished.Year() == now.Year() {
			enhanced.BooksThisYear++
		}
	}
	return enhanced
}

// monthlyProgress buckets read-shelf completions into a rolling window,
// oldest first. Months without completions are present with a zero count.
// Entries that left the read shelf keep their dateFinished but no longer
// count as completions.
func monthlyProgress(entries []*library.Entry, now time.Time) []MonthBucket {
	counts := map[string]int{}
	for _, entry := range entries {
		if entry.Shelf == library.ShelfRead && entry.DateFinished != nil {
			counts[entry.DateFinished.Format("2006-01")]++
		}
	}

	buckets := make([]MonthBucket, 0, constants.MonthlyHistoryMonths)
	for i := constants.MonthlyHistoryMonths - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		buckets = append(buckets, MonthBucket{
			Month: month.Format("Jan"),
			Year:  month.Year(),
			Count: counts[month.Format("2006-01")],
		})
	}
	return buckets
}

// genreBreakdown tallies genres across finished books and returns the top
// slices with integer percentages of the tally total.
func genreBreakdown(entries []*library.Entry) []GenreShare {
	counts := map[string]int{}
	total := 0
	for _, entry := range entries {
		if entry.Shelf != library.ShelfRead {
			continue
		}
		for _, name := range entry.GenreNames() {
			counts[name]++
			total++
		}
	}

	shares := make([]GenreShare, 0, len(counts))
	for name, count := range counts {
		shares = append(shares, GenreShare{
			Genre:      name,
			Count:      count,
			Percentage: int(math.Round(float64(count) / float64(total) * 100)),
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Genre < shares[j].Genre
	})

	if len(shares) > constants.GenreBreakdownLimit {
		shares = shares[:constants.GenreBreakdownLimit]
	}
	return shares
}

// readingStreak counts consecutive days of library activity ending today.
// A day without any entry update breaks the run.
func readingStreak(entries []*library.Entry, now time.Time) int {
	activeDays := map[string]bool{}
	for _, entry := range entries {
		activeDays[entry.UpdatedAt.In(now.Location()).Format("2006-01-02")] = true
	}

	streak := 0
	for day := now; activeDays[day.Format("2006-01-02")]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
