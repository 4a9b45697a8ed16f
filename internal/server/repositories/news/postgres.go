// Package news provides the PostgreSQL-backed repository for news articles.
package news

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/models"
)

// PostgresRepository implements news storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns a page of articles, newest first, together with the total
// count matching the filter.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.News, int64, error) {
	countQuery := `SELECT COUNT(*) FROM news n`
	listQuery := `
		SELECT n.id, n.title, n.summary, n.content, n.image_url, n.image_caption,
		       n.author_id, n.category_id, n.created_at, n.updated_at,
		       u.name, c.name
		FROM news n
		LEFT JOIN users u ON u.id = n.author_id
		LEFT JOIN categories c ON c.id = n.category_id
		`

	var countArgs, listArgs []any
	if filter.CategoryID != nil {
		countQuery += ` WHERE n.category_id = $1`
		listQuery += ` WHERE n.category_id = $1`
		countArgs = append(countArgs, *filter.CategoryID)
		listArgs = append(listArgs, *filter.CategoryID)
	}
	listQuery += fmt.Sprintf(` ORDER BY n.created_at DESC LIMIT $%d OFFSET $%d`, len(listArgs)+1, len(listArgs)+2)
	listArgs = append(listArgs, filter.Limit, filter.Offset)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.News
	for rows.Next() {
		var item models.News
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Summary, &item.Content, &item.ImageURL, &item.ImageCaption,
			&item.AuthorID, &item.CategoryID, &item.CreatedAt, &item.UpdatedAt,
			&item.AuthorName, &item.CategoryName,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// GetByID fetches one article with its joined author and category names.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.News, error) {
	query := `
		SELECT n.id, n.title, n.summary, n.content, n.image_url, n.image_caption,
		       n.author_id, n.category_id, n.created_at, n.updated_at,
		       u.name, c.name
		FROM news n
		LEFT JOIN users u ON u.id = n.author_id
		LEFT JOIN categories c ON c.id = n.category_id
		WHERE n.id = $1
		`

	item := &models.News{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Summary, &item.Content, &item.ImageURL, &item.ImageCaption,
		&item.AuthorID, &item.CategoryID, &item.CreatedAt, &item.UpdatedAt,
		&item.AuthorName, &item.CategoryName,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Create inserts a new article and returns it with generated fields filled in.
func (r *PostgresRepository) Create(ctx context.Context, item *models.News) (*models.News, error) {
	query :=
		`INSERT INTO news (title, summary, content, image_url, image_caption, author_id, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Title, item.Summary, item.Content, item.ImageURL, item.ImageCaption,
		item.AuthorID, item.CategoryID).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Update rewrites an article's editable fields and stamps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, item *models.News) error {
	query :=
		`UPDATE news
		 SET title = $1, summary = $2, content = $3, image_url = $4,
		     image_caption = $5, category_id = $6, updated_at = NOW()
		 WHERE id = $7
		 `

	res, err := r.db.ExecContext(ctx, query,
		item.Title, item.Summary, item.Content, item.ImageURL,
		item.ImageCaption, item.CategoryID, item.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes an article by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
