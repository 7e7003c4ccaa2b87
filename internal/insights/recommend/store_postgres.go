// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package recommend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/catalog/genre"
	"github.com/bookwormhq/bookworm-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// candidateSelectSQL ranks catalogue books for recommendation. Library
// membership is excluded up front so owned books never surface.
const candidateSelectSQL = `
	SELECT
		b.id, b.title, b.author, b.isbn, b.olid, b.coverimage, b.description,
		b.publishyear, b.ratingsaverage, b.ratingscount, b.totalshelved,
		b.createdby, b.createdat, b.updatedat,
		COALESCE((
			SELECT json_agg(json_build_object('id', g.id, 'name', g.name, 'slug', g.slug) ORDER BY bg.position)
			FROM catalog.genre g
			JOIN catalog.bookgenre bg ON g.id = bg.genreid
			WHERE bg.bookid = b.id
		), '[]') AS genres
	FROM catalog.book b
	WHERE b.id NOT IN (SELECT e.bookid FROM library.entry e WHERE e.userid = $1)`

const candidateOrderSQL = " ORDER BY b.ratingsaverage DESC, b.totalshelved DESC, b.id"

func (repository *PostgresRepository) Personalized(context context.Context, userID string, genreIDs []string, minRating float64, limit int) ([]*book.Book, error) {
	query := candidateSelectSQL + `
		AND b.ratingsaverage >= $2
		AND EXISTS (
			SELECT 1 FROM catalog.bookgenre bg
			WHERE bg.bookid = b.id AND bg.genreid = ANY($3))` +
		candidateOrderSQL + " LIMIT $4"

	rows, err := repository.db.Query(context, query, userID, minRating, genreIDs, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "personalized_candidates")
	}
	defer rows.Close()

	return collectCandidates(rows)
}

func (repository *PostgresRepository) Popular(context context.Context, userID string, limit int) ([]*book.Book, error) {
	query := candidateSelectSQL + candidateOrderSQL + " LIMIT $2"

	rows, err := repository.db.Query(context, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "popular_candidates")
	}
	defer rows.Close()

	return collectCandidates(rows)
}

func collectCandidates(rows pgx.Rows) ([]*book.Book, error) {
	candidates := []*book.Book{}
	for rows.Next() {
		b := &book.Book{}
		var genresJSON []byte

		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.ISBN, &b.OLID, &b.CoverImage, &b.Description,
			&b.PublishYear, &b.Ratings.Average, &b.Ratings.Count, &b.TotalShelved,
			&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt, &genresJSON,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_candidate")
		}

		if err := json.Unmarshal(genresJSON, &b.Genres); err != nil {
			return nil, dberr.Wrap(fmt.Errorf("candidate_genres_decode_failed: %w", err), "scan_candidate")
		}
		if b.Genres == nil {
			b.Genres = []genre.Genre{}
		}

		candidates = append(candidates, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "candidates_rows")
	}
	return candidates, nil
}
