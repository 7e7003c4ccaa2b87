// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package social

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
)

// # Test Doubles

type edge struct{ follower, followee string }

type fakeGraph struct {
	edges map[edge]bool
}

func newFakeGraph() *fakeGraph { return &fakeGraph{edges: map[edge]bool{}} }

func (f *fakeGraph) Follow(_ context.Context, followerID, followeeID string) error {
	f.edges[edge{followerID, followeeID}] = true
	return nil
}

func (f *fakeGraph) Unfollow(_ context.Context, followerID, followeeID string) error {
	delete(f.edges, edge{followerID, followeeID})
	return nil
}

func (f *fakeGraph) Followers(_ context.Context, userID string) ([]*UserSummary, error) {
	var out []*UserSummary
	for e := range f.edges {
		if e.followee == userID {
			out = append(out, &UserSummary{ID: e.follower})
		}
	}
	return out, nil
}

func (f *fakeGraph) Following(_ context.Context, userID string) ([]*UserSummary, error) {
	var out []*UserSummary
	for e := range f.edges {
		if e.follower == userID {
			out = append(out, &UserSummary{ID: e.followee})
		}
	}
	return out, nil
}

func (f *fakeGraph) Counts(_ context.Context, userID string) (int, int, error) {
	followers, following := 0, 0
	for e := range f.edges {
		if e.followee == userID {
			followers++
		}
		if e.follower == userID {
			following++
		}
	}
	return followers, following, nil
}

func (f *fakeGraph) IsFollowing(_ context.Context, followerID, followeeID string) (bool, error) {
	return f.edges[edge{followerID, followeeID}], nil
}

type fakeStream struct {
	activities []*Activity
	feedLimit  int
}

func (f *fakeStream) Create(_ context.Context, activity *Activity) error {
	f.activities = append(f.activities, activity)
	return nil
}

func (f *fakeStream) Feed(_ context.Context, _ string, limit int) ([]*Activity, error) {
	f.feedLimit = limit
	return f.activities, nil
}

type fakeProfiles struct {
	known map[string]bool
}

func (f *fakeProfiles) FindByID(_ context.Context, id string) (*Profile, error) {
	if !f.known[id] {
		return nil, apperr.NotFound("User")
	}
	return &Profile{ID: id}, nil
}

func (f *fakeProfiles) Search(_ context.Context, _ string, _, _ int) ([]*UserSummary, int, error) {
	return []*UserSummary{}, 0, nil
}

func newTestService(users ...string) (*Service, *fakeGraph, *fakeStream) {
	graph := newFakeGraph()
	stream := &fakeStream{}
	profiles := &fakeProfiles{known: map[string]bool{}}
	for _, id := range users {
		profiles.known[id] = true
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(graph, stream, profiles, logger), graph, stream
}

// # Reader Graph

func TestFollowCreatesEdgeAndActivity(t *testing.T) {
	service, graph, stream := newTestService("user-1", "user-2")

	require.NoError(t, service.Follow(context.Background(), "user-1", "user-2"))

	assert.True(t, graph.edges[edge{"user-1", "user-2"}])
	require.Len(t, stream.activities, 1)
	assert.Equal(t, ActivityFollowedUser, stream.activities[0].Type)
	require.NotNil(t, stream.activities[0].TargetUserID)
	assert.Equal(t, "user-2", *stream.activities[0].TargetUserID)
}

func TestFollowRejectsSelf(t *testing.T) {
	service, graph, _ := newTestService("user-1")

	err := service.Follow(context.Background(), "user-1", "user-1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, graph.edges)
}

func TestFollowUnknownUser(t *testing.T) {
	service, _, _ := newTestService("user-1")

	err := service.Follow(context.Background(), "user-1", "ghost")
	assert.True(t, apperr.IsNotFound(err))
}

func TestUnfollowMissingEdgeIsNoOp(t *testing.T) {
	service, _, _ := newTestService("user-1", "user-2")
	assert.NoError(t, service.Unfollow(context.Background(), "user-1", "user-2"))
}

// # Profiles

func TestGetProfileIncludesViewerEdge(t *testing.T) {
	service, _, _ := newTestService("user-1", "user-2", "user-3")

	require.NoError(t, service.Follow(context.Background(), "user-1", "user-2"))
	require.NoError(t, service.Follow(context.Background(), "user-3", "user-2"))

	profile, err := service.GetProfile(context.Background(), "user-1", "user-2")
	require.NoError(t, err)

	assert.Equal(t, 2, profile.FollowerCount)
	assert.Zero(t, profile.FollowingCount)
	assert.True(t, profile.IsFollowing)

	stranger, err := service.GetProfile(context.Background(), "", "user-2")
	require.NoError(t, err)
	assert.False(t, stranger.IsFollowing)
}

// # Activity Stream

func TestFeedLimitDefaultsAndCaps(t *testing.T) {
	service, _, stream := newTestService()

	_, err := service.Feed(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 20, stream.feedLimit)

	_, err = service.Feed(context.Background(), "user-1", 500)
	require.NoError(t, err)
	assert.Equal(t, 50, stream.feedLimit)
}

func TestRecordBookActivityValidatesType(t *testing.T) {
	service, _, stream := newTestService()

	err := service.RecordBookActivity(context.Background(), "user-1", "ate_book", "book-1")
	require.Error(t, err)
	assert.Empty(t, stream.activities)

	require.NoError(t, service.RecordBookActivity(context.Background(), "user-1", "added_book", "book-1"))
	require.Len(t, stream.activities, 1)
	assert.NotEmpty(t, stream.activities[0].ID)
	require.NotNil(t, stream.activities[0].BookID)
	assert.Equal(t, "book-1", *stream.activities[0].BookID)
}
