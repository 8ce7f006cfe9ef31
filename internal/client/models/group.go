package models

import "time"

// Member is a group member as shown in the chat roster.
type Member struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
}

// Group is the formed bridge group. Immutable once observed: a changed group
// arrives as a new value, never as an in-place mutation.
type Group struct {
	ID        string    `json:"id"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}
