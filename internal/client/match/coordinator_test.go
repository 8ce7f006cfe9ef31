package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/logging"
)

type fakeAPI struct {
	mu sync.Mutex

	candidates    []models.CandidateMatch
	candidatesErr error

	request    *models.MatchRequest
	requestErr error

	groupCalls int
	groupFn    func(call int) (*models.Group, error)
}

func (f *fakeAPI) FetchCandidates(ctx context.Context) ([]models.CandidateMatch, error) {
	return f.candidates, f.candidatesErr
}

func (f *fakeAPI) SendMatchRequest(ctx context.Context, candidateID string) (*models.MatchRequest, error) {
	return f.request, f.requestErr
}

func (f *fakeAPI) GetMyGroup(ctx context.Context) (*models.Group, error) {
	f.mu.Lock()
	f.groupCalls++
	call := f.groupCalls
	f.mu.Unlock()
	if f.groupFn == nil {
		return nil, nil
	}
	return f.groupFn(call)
}

func newTestCoordinator(api *fakeAPI, bound time.Duration) *Coordinator {
	return NewCoordinator(api, logging.NewNop(), time.Millisecond, bound)
}

func TestFetchCandidates_PreservesServerOrder(t *testing.T) {
	api := &fakeAPI{candidates: []models.CandidateMatch{
		{ID: "u2", Name: "Ben", CompatibilityScore: 91},
		{ID: "u1", Name: "Ana", CompatibilityScore: 87},
	}}
	c := newTestCoordinator(api, time.Second)

	require.NoError(t, c.FetchCandidates(context.Background()))
	require.Equal(t, StateCandidatesShown, c.State())

	got := c.Candidates()
	require.Equal(t, "u2", got[0].ID)
	require.Equal(t, "u1", got[1].ID)
}

func TestFetchCandidates_ErrorIsRecoverable(t *testing.T) {
	api := &fakeAPI{candidatesErr: errors.New("backend down")}
	c := newTestCoordinator(api, time.Second)

	// A failed first fetch does not pretend a list was ever shown.
	err := c.FetchCandidates(context.Background())
	require.Error(t, err)
	require.Equal(t, StateIdle, c.State())
	require.Empty(t, c.Candidates())

	// A retry after recovery repopulates the list.
	api.candidatesErr = nil
	api.candidates = []models.CandidateMatch{{ID: "u1"}}
	require.NoError(t, c.FetchCandidates(context.Background()))
	require.Equal(t, StateCandidatesShown, c.State())
	require.Len(t, c.Candidates(), 1)

	// A refresh failure empties the list but keeps the state.
	api.candidatesErr = errors.New("backend down again")
	require.Error(t, c.FetchCandidates(context.Background()))
	require.Equal(t, StateCandidatesShown, c.State())
	require.Empty(t, c.Candidates())
}

func TestSendRequest_OnlyFromCandidatesShown(t *testing.T) {
	c := newTestCoordinator(&fakeAPI{}, time.Second)

	err := c.SendRequest(context.Background(), "u1")
	require.ErrorContains(t, err, "cannot send request in state idle")
	require.Equal(t, StateIdle, c.State())
}

func TestSendRequest_FailureRevertsKeepingList(t *testing.T) {
	api := &fakeAPI{
		candidates: []models.CandidateMatch{{ID: "u1"}},
		requestErr: errors.New("boom"),
	}
	c := newTestCoordinator(api, time.Second)
	require.NoError(t, c.FetchCandidates(context.Background()))

	err := c.SendRequest(context.Background(), "u1")
	require.Error(t, err)
	require.Equal(t, StateCandidatesShown, c.State())
	require.Len(t, c.Candidates(), 1)
}

func TestSendRequest_GroupFoundOnLaterPoll(t *testing.T) {
	group := &models.Group{ID: "g1", Members: []models.Member{
		{UserID: "a", FirstName: "Ana"},
		{UserID: "b", FirstName: "Ben"},
		{UserID: "c", FirstName: "Cy"},
		{UserID: "d", FirstName: "Di"},
	}}
	api := &fakeAPI{
		candidates: []models.CandidateMatch{{ID: "u1"}},
		request:    &models.MatchRequest{ID: "r1", Status: models.RequestPending},
		groupFn: func(call int) (*models.Group, error) {
			if call < 3 {
				return nil, nil
			}
			return group, nil
		},
	}
	c := newTestCoordinator(api, time.Minute)
	require.NoError(t, c.FetchCandidates(context.Background()))
	require.NoError(t, c.SendRequest(context.Background(), "u1"))
	require.Equal(t, StateAwaiting, c.State())

	state := c.AwaitOutcome(context.Background())
	require.Equal(t, StateGrouped, state)
	require.Equal(t, "g1", c.Group().ID())
	require.Len(t, c.Group().Members(), 4)
	require.False(t, c.TimedOut())
	require.GreaterOrEqual(t, api.groupCalls, 3)
}

func TestSendRequest_PollSurvivesTransientErrors(t *testing.T) {
	api := &fakeAPI{
		candidates: []models.CandidateMatch{{ID: "u1"}},
		request:    &models.MatchRequest{ID: "r1"},
		groupFn: func(call int) (*models.Group, error) {
			if call == 1 {
				return nil, errors.New("network blip")
			}
			return &models.Group{ID: "g1"}, nil
		},
	}
	c := newTestCoordinator(api, time.Minute)
	require.NoError(t, c.FetchCandidates(context.Background()))
	require.NoError(t, c.SendRequest(context.Background(), "u1"))

	require.Equal(t, StateGrouped, c.AwaitOutcome(context.Background()))
}

func TestSoftTimeout_StaysAwaiting(t *testing.T) {
	api := &fakeAPI{
		candidates: []models.CandidateMatch{{ID: "u1"}},
		request:    &models.MatchRequest{ID: "r1", Status: models.RequestPending},
	}
	c := newTestCoordinator(api, 5*time.Millisecond)
	require.NoError(t, c.FetchCandidates(context.Background()))
	require.NoError(t, c.SendRequest(context.Background(), "u1"))

	state := c.AwaitOutcome(context.Background())
	require.Equal(t, StateAwaiting, state)
	require.True(t, c.TimedOut())
	require.Nil(t, c.Group())
}

func TestBackToCandidates_StopsWaitAndClearsTimeout(t *testing.T) {
	api := &fakeAPI{
		candidates: []models.CandidateMatch{{ID: "u1"}},
		request:    &models.MatchRequest{ID: "r1"},
	}
	c := newTestCoordinator(api, time.Minute)
	require.NoError(t, c.FetchCandidates(context.Background()))
	require.NoError(t, c.SendRequest(context.Background(), "u1"))

	c.BackToCandidates()
	require.Equal(t, StateCandidatesShown, c.State())
	require.False(t, c.TimedOut())
	require.Len(t, c.Candidates(), 1)

	// Back-out outside awaiting is a no-op.
	c.BackToCandidates()
	require.Equal(t, StateCandidatesShown, c.State())
}

func TestStalePollResultIsDiscarded(t *testing.T) {
	grouped := make(chan struct{})
	api := &fakeAPI{
		candidates: []models.CandidateMatch{{ID: "u1"}},
		request:    &models.MatchRequest{ID: "r1"},
		groupFn: func(call int) (*models.Group, error) {
			<-grouped
			return &models.Group{ID: "g-stale"}, nil
		},
	}
	c := newTestCoordinator(api, time.Minute)
	require.NoError(t, c.FetchCandidates(context.Background()))
	require.NoError(t, c.SendRequest(context.Background(), "u1"))

	// The user backs out while a check is blocked in flight; its result must
	// not flip the coordinator to grouped.
	c.BackToCandidates()
	close(grouped)

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, StateCandidatesShown, c.State())
	require.Nil(t, c.Group())
}

func TestCheckExistingGroup(t *testing.T) {
	c := newTestCoordinator(&fakeAPI{}, time.Second)

	found, err := c.CheckExistingGroup(context.Background())
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, StateIdle, c.State())

	api := &fakeAPI{groupFn: func(call int) (*models.Group, error) {
		return &models.Group{ID: "g1"}, nil
	}}
	c = newTestCoordinator(api, time.Second)

	found, err = c.CheckExistingGroup(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, StateGrouped, c.State())
	require.Equal(t, "g1", c.Group().ID())
}

func TestGroupState_CopiesAreIsolated(t *testing.T) {
	g := NewGroupState(models.Group{ID: "g1", Members: []models.Member{{UserID: "a", FirstName: "Ana"}}})

	members := g.Members()
	members[0].FirstName = "Mallory"
	require.Equal(t, "Ana", g.Members()[0].FirstName)
}
