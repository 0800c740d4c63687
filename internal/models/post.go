package models

import (
	"time"

	"github.com/google/uuid"
)

// PostDB represents a post row in the database
type PostDB struct {
	PostID    uuid.UUID `json:"id" db:"post_id"`            // Primary key
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // Owner of the post
	Title     string    `json:"title" db:"title"`           // Post title
	Content   string    `json:"content" db:"content"`       // Post body
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
