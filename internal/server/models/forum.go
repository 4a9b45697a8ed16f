package models

import "time"

// ForumTopic is a user-created discussion thread. ViewCount is bumped on
// every read of the topic page; ReplyCount and LastActivity track replies.
type ForumTopic struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	CategoryID   int64      `json:"category_id"`
	AuthorID     int64      `json:"author_id"`
	ViewCount    int64      `json:"view_count"`
	ReplyCount   int64      `json:"reply_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	LastActivity time.Time  `json:"last_activity"`
	AuthorName   *string    `json:"author_name"`
	CategoryName *string    `json:"category_name"`
}

// ForumReply is a single reply inside a topic.
type ForumReply struct {
	ID         int64     `json:"id"`
	TopicID    int64     `json:"topic_id"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorName *string   `json:"author_name"`
}
