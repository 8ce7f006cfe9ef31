// Package match orchestrates the matching protocol: candidate retrieval,
// the connection-request lifecycle, and the group-formation poll loop.
package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/client/poll"
	"github.com/bridgehq/bridge/internal/logging"
)

// State is the coordinator's position in the matching flow.
type State string

const (
	StateIdle            State = "idle"
	StateCandidatesShown State = "candidatesShown"
	StateAwaiting        State = "awaiting"
	StateGrouped         State = "grouped"
)

// API is the backend subset the coordinator needs.
type API interface {
	FetchCandidates(ctx context.Context) ([]models.CandidateMatch, error)
	SendMatchRequest(ctx context.Context, candidateID string) (*models.MatchRequest, error)
	GetMyGroup(ctx context.Context) (*models.Group, error)
}

// Coordinator drives idle → candidatesShown → awaiting → grouped, with
// awaiting → candidatesShown as the explicit back-out. At most one poll loop
// is active per coordinator; starting a new wait stops the previous loop
// first, and a completed poll discards its result if the coordinator has
// since moved to a different request or been torn down.
type Coordinator struct {
	api API
	log logging.Logger

	pollInterval time.Duration
	pollBound    time.Duration

	mu         sync.Mutex
	state      State
	candidates []models.CandidateMatch
	request    *models.MatchRequest
	group      *GroupState
	task       *poll.Task
	timedOut   bool
}

func NewCoordinator(api API, log logging.Logger, pollInterval, pollBound time.Duration) *Coordinator {
	return &Coordinator{
		api:          api,
		log:          log,
		pollInterval: pollInterval,
		pollBound:    pollBound,
		state:        StateIdle,
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Candidates returns the last fetched list, preserving server order.
func (c *Coordinator) Candidates() []models.CandidateMatch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CandidateMatch(nil), c.candidates...)
}

// Group returns the formed group state, or nil before grouping.
func (c *Coordinator) Group() *GroupState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.group
}

// TimedOut reports whether the last wait hit its bound without a group. It
// resets when a new request is sent or the user backs out.
func (c *Coordinator) TimedOut() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timedOut
}

// CheckExistingGroup asks the backend whether the user already belongs to a
// group; called once at startup, before the candidate flow. A found group
// moves straight to grouped.
func (c *Coordinator) CheckExistingGroup(ctx context.Context) (bool, error) {
	g, err := c.api.GetMyGroup(ctx)
	if err != nil {
		return false, fmt.Errorf("check existing group: %w", err)
	}
	if g == nil {
		return false, nil
	}

	c.mu.Lock()
	c.group = NewGroupState(*g)
	c.state = StateGrouped
	c.mu.Unlock()
	return true, nil
}

// FetchCandidates loads the ranked candidate list. On failure the error is
// recoverable: the list empties, the state stays where it was and the user
// can retry.
func (c *Coordinator) FetchCandidates(ctx context.Context) error {
	list, err := c.api.FetchCandidates(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.candidates = nil
		return fmt.Errorf("fetch candidates: %w", err)
	}
	c.candidates = list
	c.state = StateCandidatesShown
	return nil
}

// SendRequest sends a connection request to the chosen candidate and, on
// success, enters awaiting and starts the group-formation poll. On failure
// the state reverts to candidatesShown with the candidate list intact.
func (c *Coordinator) SendRequest(ctx context.Context, candidateID string) error {
	c.mu.Lock()
	if c.state != StateCandidatesShown {
		c.mu.Unlock()
		return fmt.Errorf("cannot send request in state %s", c.state)
	}
	// A previous wait may still be winding down.
	c.stopTaskLocked()
	c.mu.Unlock()

	req, err := c.api.SendMatchRequest(ctx, candidateID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateCandidatesShown
		return fmt.Errorf("send match request: %w", err)
	}

	c.request = req
	c.state = StateAwaiting
	c.timedOut = false
	c.startPollLocked(ctx, req.ID)
	return nil
}

// BackToCandidates is the explicit back-out from awaiting. Stops the poll;
// the pending request is left untouched server-side.
func (c *Coordinator) BackToCandidates() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaiting {
		return
	}
	c.stopTaskLocked()
	c.request = nil
	c.timedOut = false
	c.state = StateCandidatesShown
}

// AwaitOutcome blocks until the active wait finishes (group formed or soft
// timeout) or ctx is cancelled, then reports the resulting state. Without an
// active wait it returns immediately.
func (c *Coordinator) AwaitOutcome(ctx context.Context) State {
	c.mu.Lock()
	task := c.task
	c.mu.Unlock()

	if task != nil {
		select {
		case <-task.Done():
		case <-ctx.Done():
		}
	}
	return c.State()
}

// Teardown stops any active poll. Idempotent.
func (c *Coordinator) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTaskLocked()
}

func (c *Coordinator) stopTaskLocked() {
	if c.task != nil {
		c.task.Stop()
		c.task = nil
	}
}

// startPollLocked begins the recurring group check for the given request.
// The request id is captured so a completion that arrives after the
// coordinator moved on is discarded instead of applied.
func (c *Coordinator) startPollLocked(ctx context.Context, requestID string) {
	started := time.Now()
	attempt := 0

	c.task = poll.Start(ctx, c.pollInterval, func(ctx context.Context) bool {
		attempt++

		g, err := c.api.GetMyGroup(ctx)
		if err != nil {
			// Transient failure: keep polling until the bound elapses.
			c.log.Warn(ctx, "group poll failed", "attempt", attempt, "error", err)
			g = nil
		}

		c.mu.Lock()
		defer c.mu.Unlock()

		// Stale completion: the user backed out, picked someone else, or the
		// coordinator was torn down while this check was in flight.
		if c.state != StateAwaiting || c.request == nil || c.request.ID != requestID {
			return false
		}

		if g != nil {
			c.group = NewGroupState(*g)
			c.state = StateGrouped
			c.task = nil
			c.log.Info(ctx, "group formed", "group_id", g.ID, "attempts", attempt)
			return false
		}

		if c.pollBound > 0 && time.Since(started) >= c.pollBound {
			// Soft timeout: stay in awaiting, surface the back-out affordance.
			// The request is not marked expired; only the backend may do that.
			c.timedOut = true
			c.task = nil
			return false
		}
		return true
	})
}
