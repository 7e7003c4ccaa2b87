// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package goal

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormhq/bookworm-api/internal/library"
	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
)

type fakeRepo struct {
	goals map[int]*Goal // keyed by year, single test user
}

func (f *fakeRepo) FindByUserAndYear(_ context.Context, _ string, year int) (*Goal, error) {
	g, ok := f.goals[year]
	if !ok {
		return nil, apperr.NotFound("Reading goal")
	}
	clone := *g
	return &clone, nil
}

func (f *fakeRepo) Upsert(_ context.Context, goal *Goal) error {
	clone := *goal
	f.goals[goal.Year] = &clone
	return nil
}

type fakeLibrary struct {
	entries []*library.Entry
}

func (f *fakeLibrary) ListByUser(_ context.Context, _ string, shelf library.Shelf) ([]*library.Entry, error) {
	var out []*library.Entry
	for _, e := range f.entries {
		if shelf == "" || e.Shelf == shelf {
			out = append(out, e)
		}
	}
	return out, nil
}

func finishedIn(year int) *library.Entry {
	finished := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	return &library.Entry{Shelf: library.ShelfRead, DateFinished: &finished}
}

func newTestService(entries ...*library.Entry) *Service {
	repo := &fakeRepo{goals: map[int]*Goal{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, &fakeLibrary{entries: entries}, logger)
}

func TestSetGoalComputesProgress(t *testing.T) {
	year := time.Now().Year()
	service := newTestService(finishedIn(year), finishedIn(year), finishedIn(year-1))

	goal, err := service.SetGoal(context.Background(), "user-1", year, 8)
	require.NoError(t, err)

	assert.Equal(t, 8, goal.TargetBooks)
	assert.Equal(t, 2, goal.CurrentBooks, "only this year's completions count")
	assert.Equal(t, 25, goal.Percentage)
}

func TestSetGoalReplacesExistingYear(t *testing.T) {
	year := time.Now().Year()
	service := newTestService()

	_, err := service.SetGoal(context.Background(), "user-1", year, 10)
	require.NoError(t, err)

	goal, err := service.SetGoal(context.Background(), "user-1", year, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, goal.TargetBooks)
}

func TestSetGoalRejectsZeroTarget(t *testing.T) {
	service := newTestService()

	_, err := service.SetGoal(context.Background(), "user-1", 0, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCurrentGoalMissing(t *testing.T) {
	service := newTestService()

	_, err := service.CurrentGoal(context.Background(), "user-1")
	assert.True(t, apperr.IsNotFound(err))
}

func TestGoalPercentageCanExceedTarget(t *testing.T) {
	year := time.Now().Year()
	service := newTestService(finishedIn(year), finishedIn(year), finishedIn(year))

	goal, err := service.SetGoal(context.Background(), "user-1", year, 2)
	require.NoError(t, err)
	assert.Equal(t, 150, goal.Percentage)
}
