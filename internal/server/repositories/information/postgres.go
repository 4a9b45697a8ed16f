// Package information provides the PostgreSQL-backed repository for
// slug-addressed informational articles.
package information

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/models"
)

// PostgresRepository implements article storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectTopic = `
	SELECT i.id, i.title, i.slug, i.description, i.content, i.image_url,
	       i.parent_id, i.author_id, i.category_id, i.created_at, i.updated_at,
	       p.title, u.name, c.name
	FROM information_topics i
	LEFT JOIN information_topics p ON p.id = i.parent_id
	LEFT JOIN users u ON u.id = i.author_id
	LEFT JOIN categories c ON c.id = i.category_id
	`

func scanTopic(row interface{ Scan(...any) error }, item *models.InformationTopic) error {
	return row.Scan(
		&item.ID, &item.Title, &item.Slug, &item.Description, &item.Content, &item.ImageURL,
		&item.ParentID, &item.AuthorID, &item.CategoryID, &item.CreatedAt, &item.UpdatedAt,
		&item.ParentTitle, &item.AuthorName, &item.CategoryName,
	)
}

// List returns a page of articles matching the filter, alphabetically by
// title, together with the total count.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.InformationTopic, int64, error) {
	countQuery := `SELECT COUNT(*) FROM information_topics i`
	listQuery := selectTopic

	var where string
	var args []any
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = fmt.Sprintf(` WHERE i.category_id = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clause := fmt.Sprintf(`(i.title ILIKE $%d OR i.content ILIKE $%d)`, len(args), len(args))
		if where == "" {
			where = ` WHERE ` + clause
		} else {
			where += ` AND ` + clause
		}
	}
	countQuery += where
	listQuery += where

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	listQuery += fmt.Sprintf(` ORDER BY i.title ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.InformationTopic
	for rows.Next() {
		var item models.InformationTopic
		if err := scanTopic(rows, &item); err != nil {
			return nil, 0, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// GetBySlug fetches one article by its URL slug.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.InformationTopic, error) {
	item := &models.InformationTopic{}
	err := scanTopic(r.db.QueryRowContext(ctx, selectTopic+` WHERE i.slug = $1`, slug), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// SlugExists reports whether a slug is taken by any topic other than
// excludeID. Pass 0 to check against all rows.
func (r *PostgresRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM information_topics WHERE slug = $1 AND id <> $2)`,
		slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Create inserts a new article and returns it with generated fields filled in.
func (r *PostgresRepository) Create(ctx context.Context, topic *models.InformationTopic) (*models.InformationTopic, error) {
	query :=
		`INSERT INTO information_topics (title, slug, description, content, image_url, parent_id, author_id, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		topic.Title, topic.Slug, topic.Description, topic.Content, topic.ImageURL,
		topic.ParentID, topic.AuthorID, topic.CategoryID).Scan(&topic.ID, &topic.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return topic, nil
}

// Update rewrites an article's editable fields, slug included, and stamps
// updated_at. Callers check slug uniqueness first via SlugExists.
func (r *PostgresRepository) Update(ctx context.Context, topic *models.InformationTopic) error {
	query :=
		`UPDATE information_topics
		 SET title = $1, slug = $2, description = $3, content = $4, image_url = $5,
		     parent_id = $6, category_id = $7, updated_at = NOW()
		 WHERE id = $8
		 `

	res, err := r.db.ExecContext(ctx, query,
		topic.Title, topic.Slug, topic.Description, topic.Content, topic.ImageURL,
		topic.ParentID, topic.CategoryID, topic.ID)
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

// Delete removes an article by ID. Children keep their rows with parent_id
// set to NULL via ON DELETE SET NULL.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM information_topics WHERE id = $1`, id)
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
