package model

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"blog_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"` // joined from users on reads
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
