// Package gallery provides the PostgreSQL-backed repository for gallery
// images.
package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/models"
)

// PostgresRepository implements image storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectImage = `
	SELECT g.id, g.title, g.description, g.url, g.source, g.user_id, g.category_id,
	       g.created_at, u.name, c.name
	FROM gallery_images g
	LEFT JOIN users u ON u.id = g.user_id
	LEFT JOIN categories c ON c.id = g.category_id
	`

func scanImage(row interface{ Scan(...any) error }, item *models.GalleryImage) error {
	return row.Scan(
		&item.ID, &item.Title, &item.Description, &item.URL, &item.Source,
		&item.UserID, &item.CategoryID, &item.CreatedAt, &item.UserName, &item.CategoryName,
	)
}

// List returns a page of images, newest first, together with the total count
// matching the filter.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.GalleryImage, int64, error) {
	countQuery := `SELECT COUNT(*) FROM gallery_images g`
	listQuery := selectImage

	var countArgs, listArgs []any
	if filter.CategoryID != nil {
		countQuery += ` WHERE g.category_id = $1`
		listQuery += ` WHERE g.category_id = $1`
		countArgs = append(countArgs, *filter.CategoryID)
		listArgs = append(listArgs, *filter.CategoryID)
	}
	listQuery += fmt.Sprintf(` ORDER BY g.created_at DESC LIMIT $%d OFFSET $%d`, len(listArgs)+1, len(listArgs)+2)
	listArgs = append(listArgs, filter.Limit, filter.Offset)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	items, err := r.queryImages(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID fetches one image with joined uploader and category names.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.GalleryImage, error) {
	item := &models.GalleryImage{}
	err := scanImage(r.db.QueryRowContext(ctx, selectImage+` WHERE g.id = $1`, id), item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// Featured picks a random sample of images for the landing page.
func (r *PostgresRepository) Featured(ctx context.Context, limit int) ([]*models.GalleryImage, error) {
	return r.queryImages(ctx, selectImage+` ORDER BY RANDOM() LIMIT $1`, limit)
}

// Related returns other images in the same category, excluding the image
// itself. Without a category it falls back to a random sample.
func (r *PostgresRepository) Related(ctx context.Context, id int64, categoryID *int64, limit int) ([]*models.GalleryImage, error) {
	if categoryID == nil {
		return r.queryImages(ctx, selectImage+` WHERE g.id != $1 ORDER BY RANDOM() LIMIT $2`, id, limit)
	}
	return r.queryImages(ctx,
		selectImage+` WHERE g.id != $1 AND g.category_id = $2 ORDER BY g.created_at DESC LIMIT $3`,
		id, *categoryID, limit)
}

// Create inserts a new image row and returns it with generated fields filled in.
func (r *PostgresRepository) Create(ctx context.Context, image *models.GalleryImage) (*models.GalleryImage, error) {
	query :=
		`INSERT INTO gallery_images (title, description, url, source, user_id, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		image.Title, image.Description, image.URL, image.Source,
		image.UserID, image.CategoryID).Scan(&image.ID, &image.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return image, nil
}

// Update rewrites an image's editable fields.
func (r *PostgresRepository) Update(ctx context.Context, image *models.GalleryImage) error {
	query :=
		`UPDATE gallery_images
		 SET title = $1, description = $2, url = $3, source = $4, category_id = $5
		 WHERE id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		image.Title, image.Description, image.URL, image.Source, image.CategoryID, image.ID)
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

// Delete removes an image by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_images WHERE id = $1`, id)
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

func (r *PostgresRepository) queryImages(ctx context.Context, query string, args ...any) ([]*models.GalleryImage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.GalleryImage
	for rows.Next() {
		var item models.GalleryImage
		if err := scanImage(rows, &item); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
