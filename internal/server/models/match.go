package models

import "time"

// Match request statuses. Expired is reserved for server-side housekeeping;
// requests never expire client-side.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
	RequestExpired  = "expired"
)

type MatchRequest struct {
	ID        string
	FromID    string
	ToID      string
	Status    string
	CreatedAt time.Time
}

// Candidate is one scored match produced for the candidate listing.
type Candidate struct {
	User  *User
	Score int
}
