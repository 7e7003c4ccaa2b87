// Copyright (c) 2026 BookWorm Labs. All rights reserved.

// Package recommend suggests catalogue books based on reading history.
//
// Readers with enough finished books get genre-matched candidates filtered
// by a rating floor derived from their own scores. Everyone else gets the
// cold-start list: well-rated, widely shelved books they do not own yet.
package recommend

import (
	"fmt"
	"sort"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/library"
	"github.com/bookwormhq/bookworm-api/internal/platform/constants"
)

// Recommendation pairs a candidate book with a human-readable reason.
type Recommendation struct {
	Book   *book.Book `json:"book"`
	Reason string     `json:"reason"`
}

// ShelfSummary is the compact library snapshot shipped with the result.
type ShelfSummary struct {
	TotalRead        int `json:"total_read"`
	CurrentlyReading int `json:"currently_reading"`
	WantToRead       int `json:"want_to_read"`
}

// Result is the full recommendation payload.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	Stats           ShelfSummary     `json:"stats"`
}

const coldStartReason = "Popular on BookWorm"

// genreCount is a tally bucket for one genre across finished books.
type genreCount struct {
	ID    string
	Name  string
	Count int
}

// tallyGenres counts genre occurrences across finished entries, most read
// first. Ties break alphabetically so the ordering is stable.
func tallyGenres(readEntries []*library.Entry) []genreCount {
	counts := map[string]*genreCount{}
	for _, entry := range readEntries {
		if entry.Book == nil {
			continue
		}
		for _, g := range entry.Book.Genres {
			if bucket, ok := counts[g.ID]; ok {
				bucket.Count++
			} else {
				counts[g.ID] = &genreCount{ID: g.ID, Name: g.Name, Count: 1}
			}
		}
	}

	tally := make([]genreCount, 0, len(counts))
	for _, bucket := range counts {
		tally = append(tally, *bucket)
	}
	sort.Slice(tally, func(i, j int) bool {
		if tally[i].Count != tally[j].Count {
			return tally[i].Count > tally[j].Count
		}
		return tally[i].Name < tally[j].Name
	})
	return tally
}

// topGenreIDs returns up to n leading genre identifiers from the tally.
func topGenreIDs(tally []genreCount, n int) []string {
	if len(tally) > n {
		tally = tally[:n]
	}
	ids := make([]string, len(tally))
	for i, bucket := range tally {
		ids[i] = bucket.ID
	}
	return ids
}

// averageGivenRating is the mean of the reader's positive personal ratings
// across finished books. Without any it assumes a mildly generous default
// so new raters are not locked out of good candidates.
func averageGivenRating(readEntries []*library.Entry) float64 {
	sum, count := 0, 0
	for _, entry := range readEntries {
		if entry.PersonalRating != nil && *entry.PersonalRating > 0 {
			sum += *entry.PersonalRating
			count++
		}
	}
	if count == 0 {
		return constants.DefaultGivenRating
	}
	return float64(sum) / float64(count)
}

// buildReason explains one candidate by its primary genre. Secondary genres
// do not personalize; a candidate whose primary genre the reader has not
// finished falls back to the cold-start phrasing.
func buildReason(candidate *book.Book, tally []genreCount) string {
	if len(candidate.Genres) == 0 {
		return coldStartReason
	}
	primary := candidate.Genres[0]
	for _, bucket := range tally {
		if bucket.ID != primary.ID {
			continue
		}
		if bucket.Count == 1 {
			return fmt.Sprintf("You've read 1 %s book", bucket.Name)
		}
		return fmt.Sprintf("You've read %d %s books", bucket.Count, bucket.Name)
	}
	return coldStartReason
}
