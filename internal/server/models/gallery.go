package models

import "time"

// GalleryImage is an uploaded or linked image. URL points either at an
// external source or at the object-storage key produced during upload.
type GalleryImage struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	URL          string    `json:"url"`
	Source       *string   `json:"source"`
	UserID       int64     `json:"user_id"`
	CategoryID   *int64    `json:"category_id"`
	CreatedAt    time.Time `json:"created_at"`
	UserName     *string   `json:"user_name"`
	CategoryName *string   `json:"category_name"`
}
