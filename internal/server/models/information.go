package models

import "time"

// InformationTopic is a long-form informational article addressed by slug.
// Topics may form a shallow hierarchy through ParentID.
type InformationTopic struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  *string    `json:"description"`
	Content      string     `json:"content"`
	ImageURL     *string    `json:"image_url"`
	ParentID     *int64     `json:"parent_id"`
	AuthorID     int64      `json:"author_id"`
	CategoryID   *int64     `json:"category_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	ParentTitle  *string    `json:"parent_title"`
	AuthorName   *string    `json:"author_name"`
	CategoryName *string    `json:"category_name"`
}
