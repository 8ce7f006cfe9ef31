// Package session holds the client's bearer credential and current user,
// with an explicit lifecycle: Init loads any persisted session, Establish
// records a fresh login, Attach stamps outbound requests, Clear wipes state.
// Nothing else in the client reads credential storage directly.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Persistence is the subset of the local store the session needs. Nil-able:
// a session without a store is memory-only.
type Persistence interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

const (
	keyToken = "token"
	keyUser  = "user"
)

type Session struct {
	mu    sync.Mutex
	token string
	user  models.User
	store Persistence
}

func New(store Persistence) *Session {
	return &Session{store: store}
}

// Init restores a previously persisted session, if any. A missing session is
// not an error.
func (s *Session) Init(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	token, err := s.store.Get(ctx, keyToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}

	rawUser, err := s.store.Get(ctx, keyUser)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return fmt.Errorf("decode saved user: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Establish stores a fresh credential and user, persisting them when a store
// is configured.
func (s *Session) Establish(ctx context.Context, token string, user models.User) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, keyToken, token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := s.store.Set(ctx, keyUser, string(rawUser)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Attach adds the bearer credential to req. No-op when not authenticated.
func (s *Session) Attach(req *http.Request) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return
	}
	req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
}

// Authenticated reports whether a credential is held.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// User returns the current user record.
func (s *Session) User() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Expired inspects the token's exp claim without verifying the signature.
// Purely advisory: the server remains authoritative, this only lets the
// client skip a doomed request after a long-dormant restart.
func (s *Session) Expired() bool {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		return true
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

// Clear drops the in-memory credential and wipes the persisted copy.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = models.User{}
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Clear(ctx)
}
