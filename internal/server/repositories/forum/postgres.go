// Package forum provides the PostgreSQL-backed repository for discussion
// topics and their replies.
package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/models"
)

// PostgresRepository implements forum storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns a page of topics ordered by most recent activity, together
// with the total count matching the filter.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.ForumTopic, int64, error) {
	countQuery := `SELECT COUNT(*) FROM forum_topics t`
	listQuery := `
		SELECT t.id, t.title, t.content, t.category_id, t.author_id,
		       t.view_count, t.reply_count, t.created_at, t.updated_at, t.last_activity,
		       u.name, c.name
		FROM forum_topics t
		LEFT JOIN users u ON u.id = t.author_id
		LEFT JOIN categories c ON c.id = t.category_id
		`

	var countArgs, listArgs []any
	if filter.CategoryID != nil {
		countQuery += ` WHERE t.category_id = $1`
		listQuery += ` WHERE t.category_id = $1`
		countArgs = append(countArgs, *filter.CategoryID)
		listArgs = append(listArgs, *filter.CategoryID)
	}
	listQuery += fmt.Sprintf(` ORDER BY t.last_activity DESC LIMIT $%d OFFSET $%d`, len(listArgs)+1, len(listArgs)+2)
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

	var result []*models.ForumTopic
	for rows.Next() {
		var item models.ForumTopic
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Content, &item.CategoryID, &item.AuthorID,
			&item.ViewCount, &item.ReplyCount, &item.CreatedAt, &item.UpdatedAt, &item.LastActivity,
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

// GetByID fetches one topic with joined author and category names.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.ForumTopic, error) {
	query := `
		SELECT t.id, t.title, t.content, t.category_id, t.author_id,
		       t.view_count, t.reply_count, t.created_at, t.updated_at, t.last_activity,
		       u.name, c.name
		FROM forum_topics t
		LEFT JOIN users u ON u.id = t.author_id
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1
		`

	item := &models.ForumTopic{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.Content, &item.CategoryID, &item.AuthorID,
		&item.ViewCount, &item.ReplyCount, &item.CreatedAt, &item.UpdatedAt, &item.LastActivity,
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

// GetAuthorID returns the author of a topic for ownership checks.
func (r *PostgresRepository) GetAuthorID(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRowContext(ctx, `SELECT author_id FROM forum_topics WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return authorID, nil
}

// IncrementViewCount bumps the topic's view counter.
func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE forum_topics SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Create inserts a new topic and returns it with generated fields filled in.
func (r *PostgresRepository) Create(ctx context.Context, topic *models.ForumTopic) (*models.ForumTopic, error) {
	query :=
		`INSERT INTO forum_topics (title, content, category_id, author_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, last_activity
		 `

	err := r.db.QueryRowContext(ctx, query,
		topic.Title, topic.Content, topic.CategoryID, topic.AuthorID).
		Scan(&topic.ID, &topic.CreatedAt, &topic.LastActivity)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return topic, nil
}

// Update rewrites a topic's title and content and stamps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, topic *models.ForumTopic) error {
	query :=
		`UPDATE forum_topics
		 SET title = $1, content = $2, category_id = $3, updated_at = NOW()
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, topic.Title, topic.Content, topic.CategoryID, topic.ID)
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

// Delete removes a topic. Replies go with it via ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM forum_topics WHERE id = $1`, id)
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

// ListReplies returns all replies to a topic, oldest first.
func (r *PostgresRepository) ListReplies(ctx context.Context, topicID int64) ([]*models.ForumReply, error) {
	query := `
		SELECT p.id, p.topic_id, p.content, p.author_id, p.created_at, u.name
		FROM forum_replies p
		LEFT JOIN users u ON u.id = p.author_id
		WHERE p.topic_id = $1
		ORDER BY p.created_at ASC
		`

	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ForumReply
	for rows.Next() {
		var item models.ForumReply
		if err := rows.Scan(&item.ID, &item.TopicID, &item.Content, &item.AuthorID, &item.CreatedAt, &item.AuthorName); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GetReplyAuthor returns the reply's author and parent topic for ownership
// checks and counter maintenance.
func (r *PostgresRepository) GetReplyAuthor(ctx context.Context, replyID int64) (int64, int64, error) {
	var authorID, topicID int64
	err := r.db.QueryRowContext(ctx, `SELECT author_id, topic_id FROM forum_replies WHERE id = $1`, replyID).
		Scan(&authorID, &topicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, common.ErrorNotFound
		}
		return 0, 0, fmt.Errorf("db error: %w", err)
	}
	return authorID, topicID, nil
}

// CreateReply inserts a reply. The caller is responsible for bumping the
// topic's reply counter in the same transaction.
func (r *PostgresRepository) CreateReply(ctx context.Context, reply *models.ForumReply) (*models.ForumReply, error) {
	query :=
		`INSERT INTO forum_replies (topic_id, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		reply.TopicID, reply.Content, reply.AuthorID).Scan(&reply.ID, &reply.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reply, nil
}

// DeleteReply removes a reply by ID.
func (r *PostgresRepository) DeleteReply(ctx context.Context, replyID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM forum_replies WHERE id = $1`, replyID)
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

// IncrementReplyCount bumps the reply counter and refreshes last_activity.
func (r *PostgresRepository) IncrementReplyCount(ctx context.Context, topicID int64) error {
	query :=
		`UPDATE forum_topics
		 SET reply_count = reply_count + 1, last_activity = NOW()
		 WHERE id = $1
		 `
	_, err := r.db.ExecContext(ctx, query, topicID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DecrementReplyCount lowers the reply counter, never below zero.
func (r *PostgresRepository) DecrementReplyCount(ctx context.Context, topicID int64) error {
	query :=
		`UPDATE forum_topics
		 SET reply_count = GREATEST(reply_count - 1, 0)
		 WHERE id = $1
		 `
	_, err := r.db.ExecContext(ctx, query, topicID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
