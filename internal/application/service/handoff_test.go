package service

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ryanap7/diwan-print-agent/pkg/apperror"
)

func newTestTracker(delay time.Duration) *HandoffTracker {
	return NewHandoffTracker(delay, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandoffConfirmBeforeTimeout(t *testing.T) {
	tr := newTestTracker(time.Minute)

	id := tr.Begin(MethodRawBT, "https://play.example/rawbt")
	if err := tr.Confirm(id); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	info, err := tr.Status(id)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if info.Status != HandoffConfirmed {
		t.Errorf("status = %q, want confirmed", info.Status)
	}
}

func TestHandoffConfirmIsIdempotent(t *testing.T) {
	tr := newTestTracker(time.Minute)
	id := tr.Begin(MethodThermer, "")

	if err := tr.Confirm(id); err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	if err := tr.Confirm(id); err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
}

func TestHandoffTimesOutWithoutConfirmation(t *testing.T) {
	tr := newTestTracker(10 * time.Millisecond)
	id := tr.Begin(MethodRawBT, "https://play.example/rawbt")

	deadline := time.After(2 * time.Second)
	for {
		info, err := tr.Status(id)
		if err != nil {
			t.Fatalf("Status: %v", err)
		}
		if info.Status == HandoffFailed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("handoff never timed out")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := tr.Confirm(id); !errors.Is(err, apperror.ErrAppHandoffFailed) {
		t.Fatalf("Confirm after timeout = %v, want handoff-failed error", err)
	}
}

func TestHandoffUnknownID(t *testing.T) {
	tr := newTestTracker(time.Minute)

	if err := tr.Confirm("nope"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Confirm unknown = %v, want not-found", err)
	}
	if _, err := tr.Status("nope"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Status unknown = %v, want not-found", err)
	}
}

func TestHandoffStatusCarriesFallbackURL(t *testing.T) {
	tr := newTestTracker(time.Minute)
	id := tr.Begin(MethodRawBT, "https://play.example/rawbt")

	info, err := tr.Status(id)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if info.FallbackURL != "https://play.example/rawbt" {
		t.Errorf("fallback url = %q", info.FallbackURL)
	}
	if info.Method != MethodRawBT || info.ID != id {
		t.Errorf("info = %+v", info)
	}
}
