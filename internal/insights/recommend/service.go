// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package recommend

import (
	"context"
	"log/slog"

	"github.com/bookwormhq/bookworm-api/internal/library"
	"github.com/bookwormhq/bookworm-api/internal/platform/constants"
)

// Service assembles the recommendation payload for one user.
type Service struct {
	candidates CandidateRepository
	libraries  LibraryReader
	logger     *slog.Logger
}

// NewService constructs a new recommendation [Service].
func NewService(candidates CandidateRepository, libraries LibraryReader, logger *slog.Logger) *Service {
	return &Service{
		candidates: candidates,
		libraries:  libraries,
		logger:     logger,
	}
}

// Recommendations returns up to the configured limit of suggested books plus
// a shelf summary.
//
// Personalization engages once the reader has finished enough books;
// otherwise, and whenever the personalized query comes back empty, the
// cold-start list is served.
func (service *Service) Recommendations(context context.Context, userID string) (*Result, error) {
	entries, err := service.libraries.ListByUser(context, userID, "")
	if err != nil {
		return nil, err
	}

	result := &Result{Recommendations: []Recommendation{}}

	var readEntries []*library.Entry
	for _, entry := range entries {
		switch entry.Shelf {
		case library.ShelfRead:
			result.Stats.TotalRead++
			readEntries = append(readEntries, entry)
		case library.ShelfCurrentlyReading:
			result.Stats.CurrentlyReading++
		case library.ShelfWantToRead:
			result.Stats.WantToRead++
		}
	}

	if len(readEntries) >= constants.PersonalizationThreshold {
		tally := tallyGenres(readEntries)
		minRating := averageGivenRating(readEntries) - constants.RatingSlack

		candidates, err := service.candidates.Personalized(context, userID,
			topGenreIDs(tally, constants.TopGenreCount), minRating, constants.RecommendationLimit)
		if err != nil {
			return nil, err
		}

		if len(candidates) > 0 {
			for _, candidate := range candidates {
				result.Recommendations = append(result.Recommendations, Recommendation{
					Book:   candidate,
					Reason: buildReason(candidate, tally),
				})
			}
			return result, nil
		}

		service.logger.Debug("recommend_personalized_empty", slog.String("user_id", userID))
	}

	popular, err := service.candidates.Popular(context, userID, constants.RecommendationLimit)
	if err != nil {
		return nil, err
	}
	for _, candidate := range popular {
		result.Recommendations = append(result.Recommendations, Recommendation{
			Book:   candidate,
			Reason: coldStartReason,
		})
	}
	return result, nil
}
