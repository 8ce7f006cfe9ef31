package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/server/models"
	"github.com/bridgehq/bridge/internal/server/repositories/repomanager"
)

// GroupService exposes the group roster and its chat.
type GroupService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGroupService(db *sql.DB, m repomanager.RepositoryManager) *GroupService {
	return &GroupService{db: db, repomanager: m}
}

// MyGroup returns the user's active group and roster, or ErrNotFound when
// the user is not grouped.
func (s *GroupService) MyGroup(ctx context.Context, userID string) (*models.Group, []*models.GroupMember, error) {
	repo := s.repomanager.Groups(s.db)

	group, err := repo.ActiveGroupByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrNotFound
		}
		return nil, nil, fmt.Errorf("error loading group: %w", err)
	}

	members, err := repo.ActiveMembers(ctx, group.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading members: %w", err)
	}
	return group, members, nil
}

// Messages returns group messages newer than since, oldest first. Callers
// outside the group get ErrNotGroupMember.
func (s *GroupService) Messages(ctx context.Context, userID, groupID string, since time.Time) ([]*models.Message, error) {
	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Messages(s.db)
	msgs, err := repo.ListByGroup(ctx, groupID, since)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return msgs, nil
}

// PostMessage stores a message and returns the persisted record with its
// server-assigned ID and timestamp. Blank text yields ErrEmptyMessage.
func (s *GroupService) PostMessage(ctx context.Context, userID, groupID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrEmptyMessage
	}

	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return nil, err
	}

	sender, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading sender: %w", err)
	}

	msg := &models.Message{
		ID:         uuid.NewString(),
		GroupID:    groupID,
		SenderID:   userID,
		SenderName: sender.FirstName,
		Text:       text,
	}
	created, err := s.repomanager.Messages(s.db).Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("error creating message: %w", err)
	}
	return created, nil
}

// Leave marks the user's membership inactive. The group itself and its
// message history stay intact for the remaining members.
func (s *GroupService) Leave(ctx context.Context, userID, groupID string) error {
	repo := s.repomanager.Groups(s.db)
	if err := repo.MarkLeft(ctx, groupID, userID); err != nil {
		if errors.Is(err, common.ErrNotGroupMember) {
			return common.ErrNotGroupMember
		}
		return fmt.Errorf("error leaving group: %w", err)
	}
	return nil
}

func (s *GroupService) requireMembership(ctx context.Context, userID, groupID string) error {
	ok, err := s.repomanager.Groups(s.db).IsActiveMember(ctx, groupID, userID)
	if err != nil {
		return fmt.Errorf("error checking membership: %w", err)
	}
	if !ok {
		return common.ErrNotGroupMember
	}
	return nil
}
