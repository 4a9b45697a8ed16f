// Package categories provides the PostgreSQL-backed repository for content
// categories.
package categories

import (
	"context"
	"fmt"

	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/models"
)

// PostgresRepository implements category storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all categories ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Category, error) {
	query :=
		`SELECT id, name, slug, description FROM categories
		 ORDER BY name ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.Name, &item.Slug, &item.Description); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// SlugExists reports whether a category slug is already taken.
func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it with the generated ID filled in.
func (r *PostgresRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	query :=
		`INSERT INTO categories (name, slug, description)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		category.Name, category.Slug, category.Description).Scan(&category.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return category, nil
}
