package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/dbx"
	"github.com/bridgehq/bridge/internal/server/models"
	"github.com/bridgehq/bridge/internal/server/repositories/groups"
	"github.com/bridgehq/bridge/internal/server/repositories/matches"
	"github.com/bridgehq/bridge/internal/server/repositories/messages"
	"github.com/bridgehq/bridge/internal/server/repositories/users"
)

// In-memory repository fakes. The fake manager hands out the same instances
// for every handle, so transactional and plain paths see one shared state.

type memUsers struct {
	byID      map[string]*models.User
	ungrouped []*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == user.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	user.CreatedAt = time.Now()
	m.byID[user.ID] = user
	return user, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) SetVerified(ctx context.Context, email string) error {
	for _, u := range m.byID {
		if u.Email == email {
			u.Verified = true
			u.VerificationCode = ""
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *memUsers) SetVerificationCode(ctx context.Context, email, code string) error {
	for _, u := range m.byID {
		if u.Email == email {
			u.VerificationCode = code
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *memUsers) ListUngrouped(ctx context.Context, excludeID string) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.ungrouped {
		if u.ID != excludeID {
			out = append(out, u)
		}
	}
	return out, nil
}

type memMatches struct {
	byID map[string]*models.MatchRequest
}

func newMemMatches() *memMatches {
	return &memMatches{byID: map[string]*models.MatchRequest{}}
}

func (m *memMatches) Create(ctx context.Context, req *models.MatchRequest) (*models.MatchRequest, error) {
	req.CreatedAt = time.Now()
	m.byID[req.ID] = req
	return req, nil
}

func (m *memMatches) GetByID(ctx context.Context, id string) (*models.MatchRequest, error) {
	req, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return req, nil
}

func (m *memMatches) HasPendingFrom(ctx context.Context, fromID string) (bool, error) {
	for _, r := range m.byID {
		if r.FromID == fromID && r.Status == models.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *memMatches) ListPendingTo(ctx context.Context, toID string) ([]*models.MatchRequest, error) {
	var out []*models.MatchRequest
	for _, r := range m.byID {
		if r.ToID == toID && r.Status == models.RequestPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memMatches) UpdateStatus(ctx context.Context, id string, status string) error {
	req, ok := m.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	req.Status = status
	return nil
}

type memGroups struct {
	byID    map[string]*models.Group
	members map[string][]*models.GroupMember
}

func newMemGroups() *memGroups {
	return &memGroups{
		byID:    map[string]*models.Group{},
		members: map[string][]*models.GroupMember{},
	}
}

func (m *memGroups) Create(ctx context.Context, group *models.Group) (*models.Group, error) {
	group.CreatedAt = time.Now()
	m.byID[group.ID] = group
	return group, nil
}

func (m *memGroups) AddMember(ctx context.Context, groupID, userID string) error {
	m.members[groupID] = append(m.members[groupID], &models.GroupMember{
		GroupID: groupID, UserID: userID, Status: models.MemberActive, JoinedAt: time.Now(),
	})
	return nil
}

func (m *memGroups) ActiveGroupByUser(ctx context.Context, userID string) (*models.Group, error) {
	for gid, members := range m.members {
		for _, mem := range members {
			if mem.UserID == userID && mem.Status == models.MemberActive {
				return m.byID[gid], nil
			}
		}
	}
	return nil, common.ErrNotFound
}

func (m *memGroups) ActiveMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error) {
	var out []*models.GroupMember
	for _, mem := range m.members[groupID] {
		if mem.Status == models.MemberActive {
			out = append(out, mem)
		}
	}
	return out, nil
}

func (m *memGroups) ActiveMemberCount(ctx context.Context, groupID string) (int, error) {
	members, err := m.ActiveMembers(ctx, groupID)
	return len(members), err
}

func (m *memGroups) IsActiveMember(ctx context.Context, groupID, userID string) (bool, error) {
	for _, mem := range m.members[groupID] {
		if mem.UserID == userID && mem.Status == models.MemberActive {
			return true, nil
		}
	}
	return false, nil
}

func (m *memGroups) MarkLeft(ctx context.Context, groupID, userID string) error {
	for _, mem := range m.members[groupID] {
		if mem.UserID == userID && mem.Status == models.MemberActive {
			mem.Status = models.MemberLeft
			return nil
		}
	}
	return common.ErrNotGroupMember
}

type memMessages struct {
	all []*models.Message
}

func (m *memMessages) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.CreatedAt = time.Now()
	m.all = append(m.all, msg)
	return msg, nil
}

func (m *memMessages) ListByGroup(ctx context.Context, groupID string, since time.Time) ([]*models.Message, error) {
	var out []*models.Message
	for _, msg := range m.all {
		if msg.GroupID == groupID && msg.CreatedAt.After(since) {
			out = append(out, msg)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	users    *memUsers
	matches  *memMatches
	groups   *memGroups
	messages *memMessages
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    newMemUsers(),
		matches:  newMemMatches(),
		groups:   newMemGroups(),
		messages: &memMessages{},
	}
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) users.Repository          { return f.users }
func (f *fakeRepoManager) Matches(db dbx.DBTX) matches.Repository      { return f.matches }
func (f *fakeRepoManager) Groups(db dbx.DBTX) groups.Repository        { return f.groups }
func (f *fakeRepoManager) Messages(db dbx.DBTX) messages.Repository    { return f.messages }
