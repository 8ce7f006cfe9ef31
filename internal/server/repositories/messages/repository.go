package messages

import (
	"context"
	"time"

	"github.com/bridgehq/bridge/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	// ListByGroup returns messages strictly newer than since, oldest first.
	// A zero since returns the full history.
	ListByGroup(ctx context.Context, groupID string, since time.Time) ([]*models.Message, error)
}
