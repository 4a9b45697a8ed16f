package models

import "time"

// News is a published news article. AuthorName and CategoryName are joined
// from the users and categories tables for read views.
type News struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Summary      string     `json:"summary"`
	Content      string     `json:"content"`
	ImageURL     *string    `json:"image_url"`
	ImageCaption *string    `json:"image_caption"`
	AuthorID     int64      `json:"author_id"`
	CategoryID   *int64     `json:"category_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	AuthorName   *string    `json:"author_name"`
	CategoryName *string    `json:"category_name"`
}
