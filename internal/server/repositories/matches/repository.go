package matches

import (
	"context"

	"github.com/bridgehq/bridge/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, req *models.MatchRequest) (*models.MatchRequest, error)
	GetByID(ctx context.Context, id string) (*models.MatchRequest, error)
	// HasPendingFrom reports whether the user has any outstanding request.
	HasPendingFrom(ctx context.Context, fromID string) (bool, error)
	ListPendingTo(ctx context.Context, toID string) ([]*models.MatchRequest, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
