package genre

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookwormhq/bookworm-api/internal/platform/database/schema"
	"github.com/bookwormhq/bookworm-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Description, schema.CatalogGenre.CreatedBy, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedBy, &g.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, rows.Err()
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Description, schema.CatalogGenre.CreatedBy, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedBy, &g.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_id")
	}

	return g, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Description, schema.CatalogGenre.CreatedBy, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedBy, &g.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_slug")
	}

	return g, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Description, schema.CatalogGenre.CreatedBy, schema.CatalogGenre.CreatedAt)

	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		genre.ID, genre.Name, genre.Slug, genre.Description, genre.CreatedBy, genre.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_genre")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = COALESCE(NULLIF($2, ''), %s), %s = COALESCE(NULLIF($3, ''), %s), %s = $4 WHERE %s = $1`,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.Name, schema.CatalogGenre.Name,
		schema.CatalogGenre.Slug, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Description,
		schema.CatalogGenre.ID)

	_, err := repository.db.Exec(context, query, genre.ID, genre.Name, genre.Slug, genre.Description)
	if err != nil {
		return dberr.Wrap(err, "update_genre")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogGenre.Table, schema.CatalogGenre.ID)

	_, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	return nil
}
