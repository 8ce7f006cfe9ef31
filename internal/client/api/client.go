// Package api defines the contract toward the Bridge backend and its HTTP
// implementation. Everything behind this interface is an external
// collaborator; the client core depends only on these calls.
package api

import (
	"context"
	"time"

	"github.com/bridgehq/bridge/internal/client/models"
)

// AuthResult is returned by verify and login: the bearer credential plus the
// authenticated user record.
type AuthResult struct {
	Token string      `json:"access_token"`
	User  models.User `json:"user"`
}

// Client is the full backend surface the client core consumes.
//
// Signup yields no credential; the account stays locked until Verify
// confirms the emailed code. GetMyGroup returns (nil, nil) when the user is
// not grouped yet; that is a normal answer, not an error. GetMessages may
// return messages in any order; consumers sort defensively.
type Client interface {
	Signup(ctx context.Context, profile models.Profile) error
	Verify(ctx context.Context, email, code string) (*AuthResult, error)
	ResendCode(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetProfile(ctx context.Context) (*models.Profile, error)
	FetchCandidates(ctx context.Context) ([]models.CandidateMatch, error)
	SendMatchRequest(ctx context.Context, candidateID string) (*models.MatchRequest, error)
	GetMyGroup(ctx context.Context) (*models.Group, error)
	GetMessages(ctx context.Context, groupID string, since time.Time) ([]models.Message, error)
	SendMessage(ctx context.Context, groupID, text string) (*models.Message, error)
	LeaveGroup(ctx context.Context, groupID string) error
	Close() error
}
