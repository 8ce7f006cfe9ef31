// Package services contains server-side business logic: account management,
// candidate matching, and group/chat operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/server/auth"
	"github.com/bridgehq/bridge/internal/server/config"
	"github.com/bridgehq/bridge/internal/server/models"
	"github.com/bridgehq/bridge/internal/server/repositories/repomanager"
)

// UserService handles registration, login and profile retrieval.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Signup creates the account unverified and issues its verification code.
// No token is minted until Verify succeeds. A duplicate email yields
// ErrEmailTaken.
func (s *UserService) Signup(ctx context.Context, user *models.User, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}
	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return nil, common.ErrInternal
	}
	user.ID = uuid.NewString()
	user.PasswordHash = hash
	user.Verified = false
	user.VerificationCode = code

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Verify checks the emailed code, marks the account verified and mints the
// first access token.
func (s *UserService) Verify(ctx context.Context, email, code string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrNotFound
		}
		return nil, "", common.ErrInternal
	}
	if user.Verified {
		return nil, "", common.ErrAlreadyVerified
	}
	if user.VerificationCode == "" || user.VerificationCode != code {
		return nil, "", common.ErrInvalidCode
	}

	if err := repo.SetVerified(ctx, email); err != nil {
		return nil, "", common.ErrInternal
	}
	user.Verified = true
	user.VerificationCode = ""

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrInternal
	}
	return user, token, nil
}

// ResendCode rotates the verification code for an unverified account and
// returns it for delivery.
func (s *UserService) ResendCode(ctx context.Context, email string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", common.ErrInternal
	}
	if user.Verified {
		return "", common.ErrAlreadyVerified
	}

	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return "", common.ErrInternal
	}
	if err := repo.SetVerificationCode(ctx, email, code); err != nil {
		return "", common.ErrInternal
	}
	return code, nil
}

// Login verifies credentials and mints an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidLogin
		}
		return nil, "", common.ErrInternal
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrInvalidLogin
	}
	if !user.Verified {
		return nil, "", common.ErrNotVerified
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrInternal
	}
	return user, token, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}
