// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package review

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// reviewColumnsSQL joins reviewer display fields so listings render without
// an extra lookup.
const reviewColumnsSQL = `
	r.id, r.bookid, r.userid, r.rating, r.comment, r.status,
	r.moderatedby, r.moderatedat, r.createdat, r.updatedat,
	u.username, u.displayname`

const reviewFromSQL = `
	FROM social.review r
	JOIN users.account u ON u.id = r.userid`

const reviewSelectSQL = "SELECT" + reviewColumnsSQL + reviewFromSQL

func scanReview(rows pgx.Rows, extras ...any) (*Review, error) {
	r := &Review{}
	dest := []any{
		&r.ID, &r.BookID, &r.UserID, &r.Rating, &r.Comment, &r.Status,
		&r.ModeratedBy, &r.ModeratedAt, &r.CreatedAt, &r.UpdatedAt,
		&r.Username, &r.DisplayName,
	}
	dest = append(dest, extras...)

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return r, nil
}

func (repository *PostgresRepository) ListByBook(context context.Context, bookID string, status Status, limit, offset int) ([]*Review, int, error) {
	return repository.list(context, " WHERE r.bookid = $1", []any{bookID}, status, limit, offset, "list_book_reviews")
}

func (repository *PostgresRepository) ListByStatus(context context.Context, status Status, limit, offset int) ([]*Review, int, error) {
	return repository.list(context, " WHERE TRUE", nil, status, limit, offset, "list_review_queue")
}

// list shares the paginated select between the per-book view and the queue.
func (repository *PostgresRepository) list(context context.Context, where string, args []any, status Status, limit, offset int, action string) ([]*Review, int, error) {
	query := "SELECT" + reviewColumnsSQL + ", COUNT(*) OVER() AS total_count" + reviewFromSQL + where

	if status != "" {
		query += fmt.Sprintf(" AND r.status = $%d", len(args)+1)
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY r.createdat DESC, r.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	reviews := []*Review{}
	totalCount := 0
	for rows.Next() {
		r, err := scanReview(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, action+"_rows")
	}
	return reviews, totalCount, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Review, error) {
	query := reviewSelectSQL + " WHERE r.userid = $1 ORDER BY r.createdat DESC, r.id DESC"

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_user_reviews")
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_user_reviews_rows")
	}
	return reviews, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Review, error) {
	query := reviewSelectSQL + " WHERE r.id = $1"

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, dberr.Wrap(err, "get_review_rows")
		}
		return nil, apperr.NotFound("Review")
	}

	r, err := scanReview(rows)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_review")
	}
	return r, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	const query = `
		INSERT INTO social.review (
			id, bookid, userid, rating, comment, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		review.ID, review.BookID, review.UserID, review.Rating,
		review.Comment, review.Status, review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		// The (bookid, userid) unique index maps to Conflict here.
		return dberr.Wrap(err, "create_review")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	const query = `
		UPDATE social.review
		SET rating = $2, comment = $3, status = $4,
		    moderatedby = $5, moderatedat = $6, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query,
		review.ID, review.Rating, review.Comment, review.Status,
		review.ModeratedBy, review.ModeratedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, "DELETE FROM social.review WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) ApprovedStats(context context.Context, bookID string) (float64, int, error) {
	const query = `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM social.review
		WHERE bookid = $1 AND status = 'approved'`

	var average float64
	var count int
	if err := repository.db.QueryRow(context, query, bookID).Scan(&average, &count); err != nil {
		return 0, 0, dberr.Wrap(err, "review_stats")
	}
	return average, count, nil
}
