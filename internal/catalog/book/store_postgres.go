/*
Package book provides the PostgreSQL implementation for the catalogue's data access.

It leans on Postgres features to keep discovery fast:
  - JSON Aggregation: Genres are fetched alongside books in a single round-trip.
  - Window Functions: COUNT(*) OVER() delivers total counts without a second query.
  - Transactions: Book rows and genre junctions are written atomically.
*/
package book

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookwormhq/bookworm-api/internal/platform/apperr"
	"github.com/bookwormhq/bookworm-api/internal/catalog/genre"
	"github.com/bookwormhq/bookworm-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// genreAggSQL embeds the book's genres as a JSON array in the select list.
const genreAggSQL = `
	COALESCE((
		SELECT json_agg(json_build_object('id', g.id, 'name', g.name, 'slug', g.slug) ORDER BY bg.position)
		FROM catalog.genre g
		JOIN catalog.bookgenre bg ON g.id = bg.genreid
		WHERE bg.bookid = b.id
	), '[]')`

const bookSelectSQL = `
	SELECT
		b.id, b.title, b.author, b.isbn, b.olid, b.coverimage, b.description,
		b.publishyear, b.ratingsaverage, b.ratingscount, b.totalshelved,
		b.createdby, b.createdat, b.updatedat,` + genreAggSQL + ` AS genres
	FROM catalog.book b`

// scanBook hydrates one row produced by [bookSelectSQL] (plus optional extras).
func scanBook(rows pgx.Rows, extras ...any) (*Book, error) {
	b := &Book{}
	var genresJSON []byte

	dest := []any{
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.OLID, &b.CoverImage, &b.Description,
		&b.PublishYear, &b.Ratings.Average, &b.Ratings.Count, &b.TotalShelved,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extras...)
	dest = append(dest, &genresJSON)

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(genresJSON, &b.Genres); err != nil {
		return nil, fmt.Errorf("book_genres_decode_failed: %w", err)
	}
	if b.Genres == nil {
		b.Genres = []genre.Genre{}
	}

	return b, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT
			b.id, b.title, b.author, b.isbn, b.olid, b.coverimage, b.description,
			b.publishyear, b.ratingsaverage, b.ratingscount, b.totalshelved,
			b.createdby, b.createdat, b.updatedat,
			COUNT(*) OVER() AS total_count,` + genreAggSQL + ` AS genres
		FROM catalog.book b
		WHERE TRUE
	`)

	// Title/author search
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (b.title ILIKE $%d OR b.author ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Genre filter via junction membership
	if len(filter.GenreIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM catalog.bookgenre bg
			WHERE bg.bookid = b.id AND bg.genreid = ANY($%d))`, argID))
		args = append(args, filter.GenreIDs)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY b.createdat DESC, b.id DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	var totalCount int

	for rows.Next() {
		b, err := scanBook(rows, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_books_rows")
	}

	return books, totalCount, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := bookSelectSQL + " WHERE b.id = $1"

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, dberr.Wrap(err, "get_book_rows")
		}
		return nil, apperr.NotFound("Book")
	}

	b, err := scanBook(rows)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_book")
	}

	return b, nil
}

func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_book_begin")
	}
	defer tx.Rollback(context)

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	const insertBook = `
		INSERT INTO catalog.book (
			id, title, author, isbn, olid, coverimage, description, publishyear,
			ratingsaverage, ratingscount, totalshelved, createdby, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = tx.Exec(context, insertBook,
		book.ID, book.Title, book.Author, book.ISBN, book.OLID, book.CoverImage,
		book.Description, book.PublishYear,
		book.Ratings.Average, book.Ratings.Count, book.TotalShelved,
		book.CreatedBy, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_book")
	}

	if err := replaceGenres(context, tx, book.ID, book.GenreIDs); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "create_book_commit")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, book *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_book_begin")
	}
	defer tx.Rollback(context)

	const updateBook = `
		UPDATE catalog.book
		SET title = COALESCE(NULLIF($2, ''), title),
		    author = COALESCE(NULLIF($3, ''), author),
		    isbn = COALESCE(NULLIF($4, ''), isbn),
		    olid = COALESCE(NULLIF($5, ''), olid),
		    coverimage = COALESCE(NULLIF($6, ''), coverimage),
		    description = COALESCE(NULLIF($7, ''), description),
		    publishyear = COALESCE($8, publishyear),
		    updatedat = NOW()
		WHERE id = $1`

	tag, err := tx.Exec(context, updateBook,
		book.ID, book.Title, book.Author, book.ISBN, book.OLID,
		book.CoverImage, book.Description, book.PublishYear,
	)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	if book.GenreIDs != nil {
		if _, err := tx.Exec(context, "DELETE FROM catalog.bookgenre WHERE bookid = $1", book.ID); err != nil {
			return dberr.Wrap(err, "update_book_clear_genres")
		}
		if err := replaceGenres(context, tx, book.ID, book.GenreIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "update_book_commit")
	}
	return nil
}

// replaceGenres inserts junction rows preserving input order via position.
func replaceGenres(context context.Context, tx pgx.Tx, bookID string, genreIDs []string) error {
	const insertJunction = "INSERT INTO catalog.bookgenre (bookid, genreid, position) VALUES ($1, $2, $3)"
	for i, genreID := range genreIDs {
		if _, err := tx.Exec(context, insertJunction, bookID, genreID, i); err != nil {
			return dberr.Wrap(err, "attach_book_genre")
		}
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, "DELETE FROM catalog.book WHERE id = $1", id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

func (repository *PostgresRepository) UpdateRatingAggregate(context context.Context, bookID string, average float64, count int) error {
	const query = `
		UPDATE catalog.book
		SET ratingsaverage = $2, ratingscount = $3, updatedat = NOW()
		WHERE id = $1`

	_, err := repository.db.Exec(context, query, bookID, average, count)
	if err != nil {
		return dberr.Wrap(err, "update_book_rating")
	}
	return nil
}

func (repository *PostgresRepository) AdjustShelvedCount(context context.Context, bookID string, delta int) error {
	const query = `
		UPDATE catalog.book
		SET totalshelved = GREATEST(totalshelved + $2, 0), updatedat = NOW()
		WHERE id = $1`

	_, err := repository.db.Exec(context, query, bookID, delta)
	if err != nil {
		return dberr.Wrap(err, "adjust_book_shelved")
	}
	return nil
}
