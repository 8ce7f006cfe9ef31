package models

import "time"

// Membership statuses.
const (
	MemberActive = "active"
	MemberLeft   = "left"
)

type Group struct {
	ID        string
	CreatedAt time.Time
}

type GroupMember struct {
	GroupID   string
	UserID    string
	FirstName string
	Status    string
	JoinedAt  time.Time
}

type Message struct {
	ID         string
	GroupID    string
	SenderID   string
	SenderName string
	Text       string
	CreatedAt  time.Time
}
