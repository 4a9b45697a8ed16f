package models

// Category groups news, forum topics, gallery images and information topics.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// Stats is the aggregate row shown on the admin dashboard.
type Stats struct {
	UserCount              int64 `json:"userCount"`
	NewsCount              int64 `json:"newsCount"`
	ForumTopicsCount       int64 `json:"forumTopicsCount"`
	ImagesCount            int64 `json:"imagesCount"`
	QuizzesCount           int64 `json:"quizzesCount"`
	InformationTopicsCount int64 `json:"informationTopicsCount"`
}
