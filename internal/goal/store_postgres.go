// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package goal

import (
	"context"
	"errors"

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

func (repository *PostgresRepository) FindByUserAndYear(context context.Context, userID string, year int) (*Goal, error) {
	const query = `
		SELECT id, userid, year, targetbooks, createdat, updatedat
		FROM library.readinggoal
		WHERE userid = $1 AND year = $2`

	g := &Goal{}
	err := repository.db.QueryRow(context, query, userID, year).Scan(
		&g.ID, &g.UserID, &g.Year, &g.TargetBooks, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reading goal")
		}
		return nil, dberr.Wrap(err, "get_reading_goal")
	}
	return g, nil
}

func (repository *PostgresRepository) Upsert(context context.Context, goal *Goal) error {
	// The (userid, year) unique index drives the conflict target.
	const query = `
		INSERT INTO library.readinggoal (id, userid, year, targetbooks, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (userid, year)
		DO UPDATE SET targetbooks = EXCLUDED.targetbooks, updatedat = NOW()`

	_, err := repository.db.Exec(context, query, goal.ID, goal.UserID, goal.Year, goal.TargetBooks)
	if err != nil {
		return dberr.Wrap(err, "upsert_reading_goal")
	}
	return nil
}
