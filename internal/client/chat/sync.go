// Package chat keeps a formed group's conversation in sync: one full history
// load, then incremental polls driven by a created-at cursor, with id-based
// deduplication on merge.
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bridgehq/bridge/internal/client/models"
	"github.com/bridgehq/bridge/internal/client/poll"
	"github.com/bridgehq/bridge/internal/common"
	"github.com/bridgehq/bridge/internal/logging"
)

// API is the backend subset chat sync needs.
type API interface {
	GetMessages(ctx context.Context, groupID string, since time.Time) ([]models.Message, error)
	SendMessage(ctx context.Context, groupID, text string) (*models.Message, error)
	LeaveGroup(ctx context.Context, groupID string) error
}

// Sync owns the displayed message list for one group. The cursor only
// advances after a fetch's results are merged, never speculatively, so a
// failed poll retries the same window and the id filter absorbs the overlap.
type Sync struct {
	api      API
	log      logging.Logger
	interval time.Duration
	groupID  string

	mu       sync.Mutex
	messages []models.Message
	seen     map[string]struct{}
	cursor   time.Time
	task     *poll.Task
	closed   bool

	// notify, when set, receives each batch of newly merged messages.
	notify func(added []models.Message)
}

func NewSync(a API, log logging.Logger, groupID string, interval time.Duration) *Sync {
	return &Sync{
		api:      a,
		log:      log,
		interval: interval,
		groupID:  groupID,
		seen:     make(map[string]struct{}),
	}
}

// OnNewMessages registers a callback invoked (on the poll goroutine) with
// newly merged messages. Set before Start.
func (s *Sync) OnNewMessages(fn func(added []models.Message)) {
	s.notify = fn
}

// Open performs the one-time full history fetch, sorts it by creation time
// (the transport makes no ordering promise) and initializes the cursor to
// the newest message, or leaves it at the zero sentinel when the group has
// no messages yet.
func (s *Sync) Open(ctx context.Context) error {
	history, err := s.api.GetMessages(ctx, s.groupID, time.Time{})
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeLocked(ctx, history)
	return nil
}

// Start begins the incremental poll loop. Call after Open.
func (s *Sync) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.task != nil {
		return
	}

	groupID := s.groupID
	s.task = poll.Start(ctx, s.interval, func(ctx context.Context) bool {
		s.mu.Lock()
		since := s.cursor
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return false
		}

		batch, err := s.api.GetMessages(ctx, groupID, since)
		if err != nil {
			s.log.Warn(ctx, "message poll failed", "group_id", groupID, "error", err)
			return true
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		// The user may have left the group while the fetch was in flight.
		if s.closed || s.groupID != groupID {
			return false
		}
		s.mergeLocked(ctx, batch)
		return true
	})
}

// Messages returns a copy of the displayed list, in non-decreasing creation
// time order.
func (s *Sync) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// Cursor returns the current watermark.
func (s *Sync) Cursor() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Send posts text to the group. Blank text is rejected locally without a
// network call. On success the server-confirmed record is appended
// immediately rather than waiting for the next poll.
func (s *Sync) Send(ctx context.Context, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyMessage
	}

	msg, err := s.api.SendMessage(ctx, s.groupID, text)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.mu.Lock()
	s.mergeLocked(ctx, []models.Message{*msg})
	s.mu.Unlock()
	return msg, nil
}

// Leave issues the leave call and tears the sync down. The confirmation gate
// is the caller's responsibility; by the time Leave runs the decision is
// made.
func (s *Sync) Leave(ctx context.Context) error {
	if err := s.api.LeaveGroup(ctx, s.groupID); err != nil {
		return fmt.Errorf("leave group: %w", err)
	}
	s.Stop()
	return nil
}

// Stop cancels the poll loop and marks the sync closed. Idempotent.
func (s *Sync) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.task != nil {
		s.task.Stop()
		s.task = nil
	}
}

// mergeLocked appends messages whose id has not been displayed yet, dropping
// malformed items (missing id or zero timestamp) so one bad record never
// blocks the rest. The cursor advances to the max created-at among newly
// merged messages; it never goes backwards.
func (s *Sync) mergeLocked(ctx context.Context, batch []models.Message) {
	var added []models.Message
	for _, m := range batch {
		if m.ID == "" || m.CreatedAt.IsZero() {
			s.log.Error(ctx, "dropping malformed message", "group_id", s.groupID, "id", m.ID)
			continue
		}
		if _, dup := s.seen[m.ID]; dup {
			continue
		}
		s.seen[m.ID] = struct{}{}
		added = append(added, m)
	}
	if len(added) == 0 {
		return
	}

	sort.SliceStable(added, func(i, j int) bool {
		return added[i].CreatedAt.Before(added[j].CreatedAt)
	})
	s.messages = append(s.messages, added...)

	if last := added[len(added)-1].CreatedAt; last.After(s.cursor) {
		s.cursor = last
	}

	if s.notify != nil {
		s.notify(added)
	}
}
