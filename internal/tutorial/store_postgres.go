// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package tutorial

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

const tutorialColumnsSQL = `
	id, title, description, content, videourl, category, status,
	authorid, views, createdat, updatedat`

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Tutorial, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString("SELECT" + tutorialColumnsSQL + `,
		COUNT(*) OVER() AS total_count
		FROM content.tutorial
		WHERE TRUE`)

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}
	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argID))
		args = append(args, filter.Category)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY createdat DESC, id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tutorials")
	}
	defer rows.Close()

	tutorials := []*Tutorial{}
	totalCount := 0
	for rows.Next() {
		t := &Tutorial{}
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Content, &t.VideoURL, &t.Category,
			&t.Status, &t.AuthorID, &t.Views, &t.CreatedAt, &t.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tutorial")
		}
		tutorials = append(tutorials, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_tutorials_rows")
	}
	return tutorials, totalCount, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Tutorial, error) {
	query := "SELECT" + tutorialColumnsSQL + " FROM content.tutorial WHERE id = $1"

	t := &Tutorial{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Content, &t.VideoURL, &t.Category,
		&t.Status, &t.AuthorID, &t.Views, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Tutorial")
		}
		return nil, dberr.Wrap(err, "get_tutorial")
	}
	return t, nil
}

func (repository *PostgresRepository) Create(context context.Context, tutorial *Tutorial) error {
	const query = `
		INSERT INTO content.tutorial (
			id, title, description, content, videourl, category, status,
			authorid, views, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	tutorial.CreatedAt = now
	tutorial.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		tutorial.ID, tutorial.Title, tutorial.Description, tutorial.Content,
		tutorial.VideoURL, tutorial.Category, tutorial.Status,
		tutorial.AuthorID, tutorial.Views, tutorial.CreatedAt, tutorial.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_tutorial")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, tutorial *Tutorial) error {
	const query = `
		UPDATE content.tutorial
		SET title = $2, description = $3, content = $4, videourl = $5,
		    category = $6, status = $7, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query,
		tutorial.ID, tutorial.Title, tutorial.Description, tutorial.Content,
		tutorial.VideoURL, tutorial.Category, tutorial.Status,
	)
	if err != nil {
		return dberr.Wrap(err, "update_tutorial")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Tutorial")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, "DELETE FROM content.tutorial WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_tutorial")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Tutorial")
	}
	return nil
}

func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	_, err := repository.db.Exec(context, "UPDATE content.tutorial SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "increment_tutorial_views")
	}
	return nil
}
