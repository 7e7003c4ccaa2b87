// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package tutorial

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
)

type fakeRepo struct {
	tutorials map[string]*Tutorial
}

func newFakeRepo() *fakeRepo { return &fakeRepo{tutorials: map[string]*Tutorial{}} }

func (f *fakeRepo) List(_ context.Context, filter Filter, _, _ int) ([]*Tutorial, int, error) {
	var out []*Tutorial
	for _, t := range f.tutorials {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*Tutorial, error) {
	t, ok := f.tutorials[id]
	if !ok {
		return nil, apperr.NotFound("Tutorial")
	}
	clone := *t
	return &clone, nil
}

func (f *fakeRepo) Create(_ context.Context, tutorial *Tutorial) error {
	clone := *tutorial
	f.tutorials[tutorial.ID] = &clone
	return nil
}

func (f *fakeRepo) Update(_ context.Context, tutorial *Tutorial) error {
	if _, ok := f.tutorials[tutorial.ID]; !ok {
		return apperr.NotFound("Tutorial")
	}
	clone := *tutorial
	f.tutorials[tutorial.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tutorials[id]; !ok {
		return apperr.NotFound("Tutorial")
	}
	delete(f.tutorials, id)
	return nil
}

func (f *fakeRepo) IncrementViews(_ context.Context, id string) error {
	f.tutorials[id].Views++
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func publish(t *testing.T, service *Service, title string) *Tutorial {
	t.Helper()
	created := &Tutorial{
		Title:    title,
		Content:  "Body",
		Category: "getting-started",
		Status:   StatusPublished,
		AuthorID: "admin-1",
	}
	require.NoError(t, service.Create(context.Background(), created))
	return created
}

func TestCreateDefaultsToDraft(t *testing.T) {
	service, _ := newTestService()

	created := &Tutorial{Title: "Shelving 101", Content: "Body", Category: "library"}
	require.NoError(t, service.Create(context.Background(), created))
	assert.Equal(t, StatusDraft, created.Status)
	assert.NotEmpty(t, created.ID)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	service, _ := newTestService()

	err := service.Create(context.Background(), &Tutorial{Title: "No body"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestGetPublishedCountsViews(t *testing.T) {
	service, repo := newTestService()
	created := publish(t, service, "Reading goals")

	first, err := service.GetPublished(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Views)

	second, err := service.GetPublished(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Views)
	assert.Equal(t, 2, repo.tutorials[created.ID].Views)
}

func TestDraftsHiddenFromPublic(t *testing.T) {
	service, _ := newTestService()

	draft := &Tutorial{Title: "WIP", Content: "Body", Category: "library"}
	require.NoError(t, service.Create(context.Background(), draft))

	_, err := service.GetPublished(context.Background(), draft.ID, false)
	assert.True(t, apperr.IsNotFound(err))

	seen, err := service.GetPublished(context.Background(), draft.ID, true)
	require.NoError(t, err)
	assert.Zero(t, seen.Views, "admin draft reads never count")
}

func TestListPublishedFiltersDrafts(t *testing.T) {
	service, _ := newTestService()

	publish(t, service, "Public one")
	require.NoError(t, service.Create(context.Background(),
		&Tutorial{Title: "Hidden", Content: "Body", Category: "library"}))

	tutorials, total, err := service.ListPublished(context.Background(), "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tutorials, 1)
	assert.Equal(t, "Public one", tutorials[0].Title)
}
