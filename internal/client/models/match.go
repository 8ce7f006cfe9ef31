package models

// RequestStatus enumerates match request states as reported by the backend.
// The client treats accepted as terminal; expired is only ever written by the
// server, a timed-out local wait does not set it.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
	RequestExpired  RequestStatus = "expired"
)

// CandidateMatch is one externally ranked candidate. The list order is
// authoritative (descending compatibility, server-side tie break); the client
// must not re-sort.
type CandidateMatch struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Bio                string   `json:"bio"`
	Interests          []string `json:"interests"`
	CompatibilityScore int      `json:"compatibility_score"`
}

// MatchRequest is the record created by sending a connection request.
type MatchRequest struct {
	ID     string        `json:"id"`
	FromID string        `json:"from_id"`
	ToID   string        `json:"to_id"`
	Status RequestStatus `json:"status"`
}
