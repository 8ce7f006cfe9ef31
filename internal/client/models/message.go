package models

import "time"

// Message is one chat message. ID is the deduplication key for incremental
// fetches; CreatedAt drives display order and the poll cursor.
type Message struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
