// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package social

import "context"

// FollowRepository manages the reader graph.
type FollowRepository interface {
	// Follow creates the edge. Re-following is a silent no-op.
	Follow(context context.Context, followerID, followeeID string) error

	// Unfollow removes the edge if present.
	Unfollow(context context.Context, followerID, followeeID string) error

	// Followers lists accounts following the user.
	Followers(context context.Context, userID string) ([]*UserSummary, error)

	// Following lists accounts the user follows.
	Following(context context.Context, userID string) ([]*UserSummary, error)

	// Counts returns follower and following totals.
	Counts(context context.Context, userID string) (followers, following int, err error)

	// IsFollowing reports whether the edge exists.
	IsFollowing(context context.Context, followerID, followeeID string) (bool, error)
}

// ActivityRepository persists and reads the activity stream.
type ActivityRepository interface {
	// Create appends one activity.
	Create(context context.Context, activity *Activity) error

	// Feed returns activities of everyone the viewer follows, newest first.
	Feed(context context.Context, viewerID string, limit int) ([]*Activity, error)
}

// ProfileRepository reads public account data.
type ProfileRepository interface {
	// FindByID resolves a profile shell without graph counts.
	FindByID(context context.Context, id string) (*Profile, error)

	// Search matches username or display name, paginated.
	Search(context context.Context, query string, limit, offset int) ([]*UserSummary, int, error)
}
