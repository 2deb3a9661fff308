package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ryanap7/diwan-print-agent/pkg/apperror"
)

// Handoff lifecycle states. A handoff starts pending; the frontend
// confirms it once the external app takes focus, otherwise the fallback
// timer marks it failed.
const (
	HandoffPending   = "pending"
	HandoffConfirmed = "confirmed"
	HandoffFailed    = "failed"
)

// retention window for finished handoffs, so status polls shortly after
// the outcome still resolve.
const handoffRetention = time.Hour

// HandoffInfo is the queryable state of one app handoff.
type HandoffInfo struct {
	ID          string `json:"id"`
	Method      string `json:"method"`
	Status      string `json:"status"`
	FallbackURL string `json:"fallbackUrl,omitempty"`
}

type handoffEntry struct {
	info    HandoffInfo
	timer   *time.Timer
	started time.Time
}

// HandoffTracker tracks in-flight intent handoffs. Launching an intent URL
// gives no success signal, so each handoff races a confirmation from the
// frontend against a timer; losing the race surfaces the app's install
// page as fallback.
type HandoffTracker struct {
	mu      sync.Mutex
	delay   time.Duration
	logger  *slog.Logger
	entries map[string]*handoffEntry
}

// NewHandoffTracker creates a tracker whose handoffs fail after delay
// without confirmation.
func NewHandoffTracker(delay time.Duration, logger *slog.Logger) *HandoffTracker {
	return &HandoffTracker{
		delay:   delay,
		logger:  logger,
		entries: make(map[string]*handoffEntry),
	}
}

// Begin registers a new pending handoff and returns its ID.
func (t *HandoffTracker) Begin(method, fallbackURL string) string {
	id := uuid.New().String()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.prune()

	entry := &handoffEntry{
		info: HandoffInfo{
			ID:          id,
			Method:      method,
			Status:      HandoffPending,
			FallbackURL: fallbackURL,
		},
		started: time.Now(),
	}
	entry.timer = time.AfterFunc(t.delay, func() { t.expire(id) })
	t.entries[id] = entry
	return id
}

// Confirm marks a pending handoff as taken over by the external app and
// cancels its fallback timer. Confirming an expired handoff fails.
func (t *HandoffTracker) Confirm(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[id]
	if !ok {
		return apperror.NewNotFoundError("Handoff")
	}
	switch entry.info.Status {
	case HandoffConfirmed:
		return nil
	case HandoffFailed:
		return apperror.NewAppHandoffFailedError("printing app did not respond in time")
	}

	entry.timer.Stop()
	entry.info.Status = HandoffConfirmed
	return nil
}

// Status returns the current state of a handoff.
func (t *HandoffTracker) Status(id string) (HandoffInfo, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[id]
	if !ok {
		return HandoffInfo{}, apperror.NewNotFoundError("Handoff")
	}
	return entry.info, nil
}

func (t *HandoffTracker) expire(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[id]
	if !ok || entry.info.Status != HandoffPending {
		return
	}
	entry.info.Status = HandoffFailed
	t.logger.Warn("app handoff timed out", "handoff_id", id, "method", entry.info.Method)
}

// prune drops finished entries past the retention window. Caller holds t.mu.
func (t *HandoffTracker) prune() {
	cutoff := time.Now().Add(-handoffRetention)
	for id, entry := range t.entries {
		if entry.info.Status != HandoffPending && entry.started.Before(cutoff) {
			delete(t.entries, id)
		}
	}
}
