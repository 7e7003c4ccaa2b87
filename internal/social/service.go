// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package social

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookwormhq/bookworm-api/internal/platform/validate"
	"github.com/bookwormhq/bookworm-api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the reader graph, profiles, and the activity stream.
type Service struct {
	follows    FollowRepository
	activities ActivityRepository
	profiles   ProfileRepository
	logger     *slog.Logger
}

// NewService constructs a new social [Service].
func NewService(follows FollowRepository, activities ActivityRepository, profiles ProfileRepository, logger *slog.Logger) *Service {
	return &Service{
		follows:    follows,
		activities: activities,
		profiles:   profiles,
		logger:     logger,
	}
}

// # Reader Graph

// Follow creates a follow edge and records the event. Following someone you
// already follow is accepted silently; following yourself is rejected.
func (service *Service) Follow(context context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return validate.RequiredError("user_id", "You cannot follow yourself")
	}

	if _, err := service.profiles.FindByID(context, followeeID); err != nil {
		return err
	}

	if err := service.follows.Follow(context, followerID, followeeID); err != nil {
		return err
	}

	service.record(context, &Activity{
		UserID:       followerID,
		Type:         ActivityFollowedUser,
		TargetUserID: &followeeID,
	})
	return nil
}

// Unfollow removes the edge. Removing a non-existent edge is a no-op.
func (service *Service) Unfollow(context context.Context, followerID, followeeID string) error {
	return service.follows.Unfollow(context, followerID, followeeID)
}

// Followers lists accounts following the user.
func (service *Service) Followers(context context.Context, userID string) ([]*UserSummary, error) {
	return service.follows.Followers(context, userID)
}

// Following lists accounts the user follows.
func (service *Service) Following(context context.Context, userID string) ([]*UserSummary, error) {
	return service.follows.Following(context, userID)
}

// # Profiles

// GetProfile returns the public profile with graph counts. When viewerID is
// set, IsFollowing reflects the viewer's edge toward the profile.
func (service *Service) GetProfile(context context.Context, viewerID, userID string) (*Profile, error) {
	profile, err := service.profiles.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	followers, following, err := service.follows.Counts(context, userID)
	if err != nil {
		return nil, err
	}
	profile.FollowerCount = followers
	profile.FollowingCount = following

	if viewerID != "" && viewerID != userID {
		isFollowing, err := service.follows.IsFollowing(context, viewerID, userID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = isFollowing
	}
	return profile, nil
}

// SearchUsers matches readers by username or display name.
func (service *Service) SearchUsers(context context.Context, query string, limit, offset int) ([]*UserSummary, int, error) {
	validator := &validate.Validator{}
	validator.Required("q", query).MaxLen("q", query, 100)
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}
	return service.profiles.Search(context, query, limit, offset)
}

// # Activity Stream

// Feed returns recent activities of everyone the viewer follows.
func (service *Service) Feed(context context.Context, viewerID string, limit int) ([]*Activity, error) {
	if limit <= 0 {
		limit = feedDefaultLimit
	}
	if limit > feedMaxLimit {
		limit = feedMaxLimit
	}
	return service.activities.Feed(context, viewerID, limit)
}

// RecordBookActivity appends a book-centric event to the stream. It backs
// the recorder contracts of the library and review packages.
func (service *Service) RecordBookActivity(context context.Context, userID, activityType, bookID string) error {
	kind := ActivityType(activityType)
	if !kind.IsValid() {
		return validate.RequiredError("type", "Unknown activity type")
	}

	service.record(context, &Activity{
		UserID: userID,
		Type:   kind,
		BookID: &bookID,
	})
	return nil
}

// record persists an activity. The stream is best-effort: a failure is
// logged and the triggering operation proceeds.
func (service *Service) record(context context.Context, activity *Activity) {
	activity.ID = uuid.New()
	activity.CreatedAt = time.Now()

	if err := service.activities.Create(context, activity); err != nil {
		service.logger.Warn("social_activity_store_failed",
			slog.String("type", string(activity.Type)),
			slog.Any("error", err),
		)
	}
}
