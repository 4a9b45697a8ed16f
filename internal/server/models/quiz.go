package models

import (
	"encoding/json"
	"time"
)

// Quiz is a self-assessment test. Questions holds the full question set as
// an opaque JSON document; the server never interprets it.
type Quiz struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Questions   json.RawMessage `json:"questions"`
	CreatedAt   time.Time       `json:"created_at"`
}

// QuizResult records a user's submitted answers and computed score.
type QuizResult struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	QuizID    int64           `json:"quiz_id"`
	Answers   json.RawMessage `json:"answers"`
	Score     int             `json:"score"`
	CreatedAt time.Time       `json:"created_at"`
}
