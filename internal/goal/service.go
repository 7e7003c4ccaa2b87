// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package goal

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/bookwormhq/bookworm-api/internal/library"
	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/uuid"
)

// Service manages yearly reading goals and their derived progress.
type Service struct {
	repo      Repository
	libraries LibraryReader
	logger    *slog.Logger
}

// NewService constructs a new goal [Service].
func NewService(repo Repository, libraries LibraryReader, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		libraries: libraries,
		logger:    logger,
	}
}

// CurrentGoal returns this year's goal with progress filled in.
func (service *Service) CurrentGoal(context context.Context, userID string) (*Goal, error) {
	return service.goalForYear(context, userID, time.Now().Year())
}

// GoalForYear returns the goal for an arbitrary year with progress filled in.
func (service *Service) GoalForYear(context context.Context, userID string, year int) (*Goal, error) {
	return service.goalForYear(context, userID, year)
}

func (service *Service) goalForYear(context context.Context, userID string, year int) (*Goal, error) {
	goal, err := service.repo.FindByUserAndYear(context, userID, year)
	if err != nil {
		return nil, err
	}

	finished, err := service.finishedInYear(context, userID, year)
	if err != nil {
		return nil, err
	}

	goal.CurrentBooks = finished
	if goal.TargetBooks > 0 {
		goal.Percentage = int(math.Round(float64(finished) / float64(goal.TargetBooks) * 100))
	}
	return goal, nil
}

// SetGoal creates or replaces the target for the given year.
func (service *Service) SetGoal(context context.Context, userID string, year, targetBooks int) (*Goal, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	validator := &validate.Validator{}
	validator.Min(FieldTargetBooks, targetBooks, 1)
	validator.Range("year", year, 2000, time.Now().Year()+1)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	goal := &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Year:        year,
		TargetBooks: targetBooks,
	}
	if err := service.repo.Upsert(context, goal); err != nil {
		return nil, err
	}

	service.logger.Info("reading_goal_set",
		slog.String("user_id", userID),
		slog.Int("year", year),
		slog.Int("target", targetBooks),
	)
	return service.goalForYear(context, userID, year)
}

// finishedInYear counts read-shelf entries whose completion falls in year.
func (service *Service) finishedInYear(context context.Context, userID string, year int) (int, error) {
	entries, err := service.libraries.ListByUser(context, userID, library.ShelfRead)
	if err != nil {
		return 0, err
	}

	finished := 0
	for _, entry := range entries {
		if entry.DateFinished != nil && entry.DateFinished.Year() == year {
			finished++
		}
	}
	return finished, nil
}
