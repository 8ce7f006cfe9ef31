package groups

import (
	"context"

	"github.com/bridgehq/bridge/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, group *models.Group) (*models.Group, error)
	AddMember(ctx context.Context, groupID, userID string) error
	// ActiveGroupByUser returns the group the user is an active member of,
	// or common.ErrNotFound.
	ActiveGroupByUser(ctx context.Context, userID string) (*models.Group, error)
	ActiveMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error)
	ActiveMemberCount(ctx context.Context, groupID string) (int, error)
	IsActiveMember(ctx context.Context, groupID, userID string) (bool, error)
	MarkLeft(ctx context.Context, groupID, userID string) error
}
