// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/platform/dberr"
)

// PostgresRepository implements all three social contracts on one pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Reader Graph

func (repository *PostgresRepository) Follow(context context.Context, followerID, followeeID string) error {
	const query = `
		INSERT INTO users.follow (followerid, followeeid, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (followerid, followeeid) DO NOTHING`

	if _, err := repository.db.Exec(context, query, followerID, followeeID); err != nil {
		return dberr.Wrap(err, "follow_user")
	}
	return nil
}

func (repository *PostgresRepository) Unfollow(context context.Context, followerID, followeeID string) error {
	const query = "DELETE FROM users.follow WHERE followerid = $1 AND followeeid = $2"

	if _, err := repository.db.Exec(context, query, followerID, followeeID); err != nil {
		return dberr.Wrap(err, "unfollow_user")
	}
	return nil
}

func (repository *PostgresRepository) Followers(context context.Context, userID string) ([]*UserSummary, error) {
	const query = `
		SELECT u.id, u.username, u.displayname, u.avatarurl
		FROM users.follow f
		JOIN users.account u ON u.id = f.followerid
		WHERE f.followeeid = $1 AND u.deletedat IS NULL
		ORDER BY f.createdat DESC`

	return repository.collectSummaries(context, query, "list_followers", userID)
}

func (repository *PostgresRepository) Following(context context.Context, userID string) ([]*UserSummary, error) {
	const query = `
		SELECT u.id, u.username, u.displayname, u.avatarurl
		FROM users.follow f
		JOIN users.account u ON u.id = f.followeeid
		WHERE f.followerid = $1 AND u.deletedat IS NULL
		ORDER BY f.createdat DESC`

	return repository.collectSummaries(context, query, "list_following", userID)
}

func (repository *PostgresRepository) Counts(context context.Context, userID string) (int, int, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM users.follow WHERE followeeid = $1),
			(SELECT COUNT(*) FROM users.follow WHERE followerid = $1)`

	var followers, following int
	if err := repository.db.QueryRow(context, query, userID).Scan(&followers, &following); err != nil {
		return 0, 0, dberr.Wrap(err, "follow_counts")
	}
	return followers, following, nil
}

func (repository *PostgresRepository) IsFollowing(context context.Context, followerID, followeeID string) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM users.follow WHERE followerid = $1 AND followeeid = $2)"

	var exists bool
	if err := repository.db.QueryRow(context, query, followerID, followeeID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "is_following")
	}
	return exists, nil
}

func (repository *PostgresRepository) collectSummaries(context context.Context, query, action string, args ...any) ([]*UserSummary, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	summaries := []*UserSummary{}
	for rows.Next() {
		s := &UserSummary{}
		if err := rows.Scan(&s.ID, &s.Username, &s.DisplayName, &s.AvatarURL); err != nil {
			return nil, dberr.Wrap(err, "scan_user_summary")
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action+"_rows")
	}
	return summaries, nil
}

// # Activity Stream

func (repository *PostgresRepository) Create(context context.Context, activity *Activity) error {
	const query = `
		INSERT INTO social.activity (id, userid, type, bookid, targetuserid, details, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var details []byte
	if activity.Details != nil {
		encoded, err := json.Marshal(activity.Details)
		if err != nil {
			return fmt.Errorf("activity_details_encode_failed: %w", err)
		}
		details = encoded
	}

	_, err := repository.db.Exec(context, query,
		activity.ID, activity.UserID, activity.Type,
		activity.BookID, activity.TargetUserID, details, activity.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_activity")
	}
	return nil
}

func (repository *PostgresRepository) Feed(context context.Context, viewerID string, limit int) ([]*Activity, error) {
	const query = `
		SELECT
			a.id, a.userid, a.type, a.bookid, a.targetuserid, a.details, a.createdat,
			u.username, u.displayname,
			COALESCE(b.title, ''), COALESCE(b.coverimage, ''),
			COALESCE(tu.username, '')
		FROM social.activity a
		JOIN users.account u ON u.id = a.userid
		LEFT JOIN catalog.book b ON b.id = a.bookid
		LEFT JOIN users.account tu ON tu.id = a.targetuserid
		WHERE a.userid IN (SELECT followeeid FROM users.follow WHERE followerid = $1)
		ORDER BY a.createdat DESC, a.id DESC
		LIMIT $2`

	rows, err := repository.db.Query(context, query, viewerID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "activity_feed")
	}
	defer rows.Close()

	activities := []*Activity{}
	for rows.Next() {
		a := &Activity{}
		var details []byte

		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Type, &a.BookID, &a.TargetUserID, &details, &a.CreatedAt,
			&a.Username, &a.DisplayName, &a.BookTitle, &a.BookCover, &a.TargetUsername,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_activity")
		}

		if len(details) > 0 {
			if err := json.Unmarshal(details, &a.Details); err != nil {
				return nil, dberr.Wrap(fmt.Errorf("activity_details_decode_failed: %w", err), "scan_activity")
			}
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "activity_feed_rows")
	}
	return activities, nil
}

// # Profiles

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Profile, error) {
	const query = `
		SELECT id, username, displayname, avatarurl, bio, createdat
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	p := &Profile{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&p.ID, &p.Username, &p.DisplayName, &p.AvatarURL, &p.Bio, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "get_profile")
	}
	return p, nil
}

func (repository *PostgresRepository) Search(context context.Context, query string, limit, offset int) ([]*UserSummary, int, error) {
	const searchSQL = `
		SELECT u.id, u.username, u.displayname, u.avatarurl, COUNT(*) OVER() AS total_count
		FROM users.account u
		WHERE u.deletedat IS NULL
		  AND (u.username ILIKE $1 OR u.displayname ILIKE $1)
		ORDER BY u.username
		LIMIT $2 OFFSET $3`

	rows, err := repository.db.Query(context, searchSQL, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_users")
	}
	defer rows.Close()

	summaries := []*UserSummary{}
	totalCount := 0
	for rows.Next() {
		s := &UserSummary{}
		if err := rows.Scan(&s.ID, &s.Username, &s.DisplayName, &s.AvatarURL, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user_summary")
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "search_users_rows")
	}
	return summaries, totalCount, nil
}
