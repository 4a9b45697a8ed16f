package forum

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

// ListFilter narrows and pages a topic listing. A nil CategoryID means all
// categories.
type ListFilter struct {
	CategoryID *int64
	Limit      int
	Offset     int
}

// Repository is the record-store contract for forum topics and replies.
// The reply counters on topics are maintained with the Increment/Decrement
// methods so that reply writes can run inside one transaction.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*models.ForumTopic, int64, error)
	GetByID(ctx context.Context, id int64) (*models.ForumTopic, error)
	GetAuthorID(ctx context.Context, id int64) (int64, error)
	IncrementViewCount(ctx context.Context, id int64) error
	Create(ctx context.Context, topic *models.ForumTopic) (*models.ForumTopic, error)
	Update(ctx context.Context, topic *models.ForumTopic) error
	Delete(ctx context.Context, id int64) error

	ListReplies(ctx context.Context, topicID int64) ([]*models.ForumReply, error)
	GetReplyAuthor(ctx context.Context, replyID int64) (int64, int64, error)
	CreateReply(ctx context.Context, reply *models.ForumReply) (*models.ForumReply, error)
	DeleteReply(ctx context.Context, replyID int64) error
	IncrementReplyCount(ctx context.Context, topicID int64) error
	DecrementReplyCount(ctx context.Context, topicID int64) error
}
