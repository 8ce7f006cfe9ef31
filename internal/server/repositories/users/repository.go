package users

import (
	"context"

	"github.com/bridgehq/bridge/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// SetVerified marks the account verified and clears its code.
	SetVerified(ctx context.Context, email string) error
	SetVerificationCode(ctx context.Context, email, code string) error
	// ListUngrouped returns users with no active group membership,
	// excluding the given user.
	ListUngrouped(ctx context.Context, excludeID string) ([]*models.User, error)
}
