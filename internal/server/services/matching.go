package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/dbx"
	"github.com/bridgehq/bridge/internal/server/models"
	"github.com/bridgehq/bridge/internal/server/repositories/repomanager"
)

// Score split between interest overlap and goal overlap.
const (
	interestWeight = 70
	goalWeight     = 30
)

// MatchService produces ranked candidate lists and manages match requests,
// including the group formation that happens on acceptance.
type MatchService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMatchService(db *sql.DB, m repomanager.RepositoryManager) *MatchService {
	return &MatchService{db: db, repomanager: m}
}

// Candidates returns the top scored ungrouped users compatible with the
// requesting user's preferences, best first.
func (s *MatchService) Candidates(ctx context.Context, userID string) ([]models.Candidate, error) {
	usersRepo := s.repomanager.Users(s.db)

	me, err := usersRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	pool, err := usersRepo.ListUngrouped(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading candidate pool: %w", err)
	}

	var scored []models.Candidate
	for _, other := range pool {
		if !withinAgePreference(me, other) {
			continue
		}
		scored = append(scored, models.Candidate{
			User:  other,
			Score: compatibilityScore(me, other),
		})
	}

	// Stable ordering: score desc, then signup time, so the list the client
	// displays is reproducible between fetches.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].User.CreatedAt.Before(scored[j].User.CreatedAt)
	})

	if len(scored) > common.CandidateLimit {
		scored = scored[:common.CandidateLimit]
	}
	return scored, nil
}

// SendRequest records a pending match request from fromID to toUserID.
func (s *MatchService) SendRequest(ctx context.Context, fromID, toUserID string) (*models.MatchRequest, error) {
	if fromID == toUserID {
		return nil, common.ErrSelfRequest
	}

	usersRepo := s.repomanager.Users(s.db)
	groupsRepo := s.repomanager.Groups(s.db)
	matchesRepo := s.repomanager.Matches(s.db)

	if _, err := usersRepo.GetByID(ctx, toUserID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("error loading candidate: %w", err)
	}

	if _, err := groupsRepo.ActiveGroupByUser(ctx, fromID); err == nil {
		return nil, common.ErrAlreadyGrouped
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking group membership: %w", err)
	}

	pending, err := matchesRepo.HasPendingFrom(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("error checking pending requests: %w", err)
	}
	if pending {
		return nil, common.ErrRequestPending
	}

	req := &models.MatchRequest{
		ID:     uuid.NewString(),
		FromID: fromID,
		ToID:   toUserID,
		Status: models.RequestPending,
	}
	created, err := matchesRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("error creating match request: %w", err)
	}
	return created, nil
}

// Incoming lists pending requests addressed to the user, oldest first.
func (s *MatchService) Incoming(ctx context.Context, userID string) ([]*models.MatchRequest, error) {
	repo := s.repomanager.Matches(s.db)
	reqs, err := repo.ListPendingTo(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing requests: %w", err)
	}
	return reqs, nil
}

// Accept accepts a pending request addressed to userID. If the sender already
// sits in an active group the accepting user joins it; otherwise a new group
// is created with both users. Returns the resulting group.
func (s *MatchService) Accept(ctx context.Context, userID, requestID string) (*models.Group, error) {
	var group *models.Group

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		matchesRepo := s.repomanager.Matches(tx)
		groupsRepo := s.repomanager.Groups(tx)

		req, err := s.pendingRequestFor(ctx, matchesRepo, userID, requestID)
		if err != nil {
			return err
		}

		if _, err := groupsRepo.ActiveGroupByUser(ctx, userID); err == nil {
			return common.ErrAlreadyGrouped
		} else if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("error checking group membership: %w", err)
		}

		senderGroup, err := groupsRepo.ActiveGroupByUser(ctx, req.FromID)
		switch {
		case err == nil:
			n, err := groupsRepo.ActiveMemberCount(ctx, senderGroup.ID)
			if err != nil {
				return fmt.Errorf("error counting members: %w", err)
			}
			if n >= common.GroupSize {
				return common.ErrGroupFull
			}
			if err := groupsRepo.AddMember(ctx, senderGroup.ID, userID); err != nil {
				return fmt.Errorf("error adding member: %w", err)
			}
			group = senderGroup

		case errors.Is(err, common.ErrNotFound):
			group = &models.Group{ID: uuid.NewString()}
			if _, err := groupsRepo.Create(ctx, group); err != nil {
				return fmt.Errorf("error creating group: %w", err)
			}
			if err := groupsRepo.AddMember(ctx, group.ID, req.FromID); err != nil {
				return fmt.Errorf("error adding member: %w", err)
			}
			if err := groupsRepo.AddMember(ctx, group.ID, userID); err != nil {
				return fmt.Errorf("error adding member: %w", err)
			}

		default:
			return fmt.Errorf("error checking sender group: %w", err)
		}

		return matchesRepo.UpdateStatus(ctx, req.ID, models.RequestAccepted)
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// Reject marks a pending request addressed to userID as rejected.
func (s *MatchService) Reject(ctx context.Context, userID, requestID string) error {
	matchesRepo := s.repomanager.Matches(s.db)

	req, err := s.pendingRequestFor(ctx, matchesRepo, userID, requestID)
	if err != nil {
		return err
	}
	return matchesRepo.UpdateStatus(ctx, req.ID, models.RequestRejected)
}

func (s *MatchService) pendingRequestFor(ctx context.Context, repo matchesRepository, userID, requestID string) (*models.MatchRequest, error) {
	req, err := repo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error loading request: %w", err)
	}
	// Only the addressee may act on a request; hide its existence otherwise.
	if req.ToID != userID {
		return nil, common.ErrRequestNotFound
	}
	if req.Status != models.RequestPending {
		return nil, common.ErrRequestNotPending
	}
	return req, nil
}

type matchesRepository interface {
	GetByID(ctx context.Context, id string) (*models.MatchRequest, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

// withinAgePreference applies the requesting user's age bounds to a
// candidate. Unset bounds (zero) do not filter.
func withinAgePreference(me, other *models.User) bool {
	if me.AgePrefMin > 0 && other.Age < me.AgePrefMin {
		return false
	}
	if me.AgePrefMax > 0 && other.Age > me.AgePrefMax {
		return false
	}
	return true
}

// compatibilityScore combines rank-weighted interest overlap with goal
// overlap into a 0-100 score. A shared interest near the top of the user's
// ranked list counts more than one near the bottom.
func compatibilityScore(me, other *models.User) int {
	score := 0

	if len(me.Interests) > 0 {
		otherSet := make(map[string]struct{}, len(other.Interests))
		for _, it := range other.Interests {
			otherSet[strings.ToLower(it)] = struct{}{}
		}
		total, matched := 0, 0
		for i, it := range me.Interests {
			weight := len(me.Interests) - i
			total += weight
			if _, ok := otherSet[strings.ToLower(it)]; ok {
				matched += weight
			}
		}
		score += interestWeight * matched / total
	}

	if len(me.Goals) > 0 {
		otherGoals := make(map[string]struct{}, len(other.Goals))
		for _, g := range other.Goals {
			otherGoals[strings.ToLower(g)] = struct{}{}
		}
		shared := 0
		for _, g := range me.Goals {
			if _, ok := otherGoals[strings.ToLower(g)]; ok {
				shared++
			}
		}
		score += goalWeight * shared / len(me.Goals)
	}

	return score
}
