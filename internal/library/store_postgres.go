// Copyright (c) 2026 BookWorm Labs. All rights reserved.

package library

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookwormhq/bookworm-api/internal/catalog/book"
	"github.com/bookwormhq/bookworm-api/internal/catalog/genre"
	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// entrySelectSQL fetches entries joined with their book and its genres so a
// full shelf view is one round-trip.
const entrySelectSQL = `
	SELECT
		e.id, e.userid, e.bookid, e.shelf, e.pagesread, e.totalpages, e.percentage,
		e.personalrating, e.dateadded, e.datefinished, e.createdat, e.updatedat,
		b.id, b.title, b.author, b.isbn, b.olid, b.coverimage, b.description,
		b.publishyear, b.ratingsaverage, b.ratingscount, b.totalshelved,
		b.createdby, b.createdat, b.updatedat,
		COALESCE((
			SELECT json_agg(json_build_object('id', g.id, 'name', g.name, 'slug', g.slug) ORDER BY bg.position)
			FROM catalog.genre g
			JOIN catalog.bookgenre bg ON g.id = bg.genreid
			WHERE bg.bookid = b.id
		), '[]') AS genres
	FROM library.entry e
	JOIN catalog.book b ON b.id = e.bookid`

// scanEntry hydrates one row produced by [entrySelectSQL].
func scanEntry(rows pgx.Rows) (*Entry, error) {
	e := &Entry{Book: &book.Book{}}
	var genresJSON []byte

	if err := rows.Scan(
		&e.ID, &e.UserID, &e.BookID, &e.Shelf, &e.PagesRead, &e.TotalPages, &e.Percentage,
		&e.PersonalRating, &e.DateAdded, &e.DateFinished, &e.CreatedAt, &e.UpdatedAt,
		&e.Book.ID, &e.Book.Title, &e.Book.Author, &e.Book.ISBN, &e.Book.OLID,
		&e.Book.CoverImage, &e.Book.Description, &e.Book.PublishYear,
		&e.Book.Ratings.Average, &e.Book.Ratings.Count, &e.Book.TotalShelved,
		&e.Book.CreatedBy, &e.Book.CreatedAt, &e.Book.UpdatedAt,
		&genresJSON,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(genresJSON, &e.Book.Genres); err != nil {
		return nil, fmt.Errorf("entry_genres_decode_failed: %w", err)
	}
	if e.Book.Genres == nil {
		e.Book.Genres = []genre.Genre{}
	}

	return e, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, shelf Shelf) ([]*Entry, error) {
	query := entrySelectSQL + " WHERE e.userid = $1"
	args := []any{userID}

	if shelf != "" {
		query += " AND e.shelf = $2"
		args = append(args, shelf)
	}
	query += " ORDER BY e.dateadded DESC, e.id DESC"

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_library_entries")
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_library_entry")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_library_entries_rows")
	}

	return entries, nil
}

func (repository *PostgresRepository) FindByUserAndBook(context context.Context, userID, bookID string) (*Entry, error) {
	query := entrySelectSQL + " WHERE e.userid = $1 AND e.bookid = $2"

	rows, err := repository.db.Query(context, query, userID, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_library_entry")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, dberr.Wrap(err, "get_library_entry_rows")
		}
		return nil, apperr.NotFound("Library entry")
	}

	e, err := scanEntry(rows)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_library_entry")
	}
	return e, nil
}

func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	const query = `
		INSERT INTO library.entry (
			id, userid, bookid, shelf, pagesread, totalpages, percentage,
			personalrating, dateadded, datefinished, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := repository.db.Exec(context, query,
		entry.ID, entry.UserID, entry.BookID, entry.Shelf,
		entry.PagesRead, entry.TotalPages, entry.Percentage,
		entry.PersonalRating, entry.DateAdded, entry.DateFinished,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_library_entry")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, entry *Entry) error {
	const query = `
		UPDATE library.entry
		SET shelf = $2, pagesread = $3, totalpages = $4, percentage = $5,
		    personalrating = $6, datefinished = $7, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query,
		entry.ID, entry.Shelf, entry.PagesRead, entry.TotalPages,
		entry.Percentage, entry.PersonalRating, entry.DateFinished,
	)
	if err != nil {
		return dberr.Wrap(err, "update_library_entry")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Library entry")
	}
	entry.UpdatedAt = time.Now()
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, userID, bookID string) error {
	tag, err := repository.db.Exec(context,
		"DELETE FROM library.entry WHERE userid = $1 AND bookid = $2", userID, bookID)
	if err != nil {
		return dberr.Wrap(err, "delete_library_entry")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Library entry")
	}
	return nil
}
