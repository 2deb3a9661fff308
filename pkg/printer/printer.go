// Package printer delivers raw ESC/POS byte streams to thermal printers.
// The only production transport is Bluetooth LE; a null transport stands in
// when the host has no radio or during development.
package printer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ryanap7/diwan-print-agent/pkg/apperror"
)

// Transport moves opaque command bytes to a printer. Implementations must
// serialize Send calls; thermal printers corrupt output on interleaved
// writes.
type Transport interface {
	// Connect scans for and attaches to a printer. Calling Connect on an
	// already connected transport is a no-op.
	Connect(ctx context.Context) error
	// Send writes data to the connected printer. Returns a NotConnected
	// error when no device is attached.
	Send(ctx context.Context, data []byte) error
	// Disconnect detaches from the printer. Safe to call when already
	// disconnected.
	Disconnect() error
	IsConnected() bool
	Status() Status
}

// Status describes the current transport state for the status endpoint.
type Status struct {
	Connected  bool   `json:"connected"`
	DeviceName string `json:"deviceName,omitempty"`
	Transport  string `json:"transport"`
}

// nullTransport accepts connections and discards all data. Used when
// PRINTER_TRANSPORT=none so the dispatch paths that do not need a radio
// (RawBT, Thermer, share) keep working on headless hosts.
type nullTransport struct {
	mu        sync.Mutex
	connected bool
	logger    *slog.Logger
}

// NewNullTransport returns a transport that swallows output.
func NewNullTransport(logger *slog.Logger) Transport {
	return &nullTransport{logger: logger}
}

func (n *nullTransport) Connect(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.connected = true
	n.logger.Info("null transport connected")
	return nil
}

func (n *nullTransport) Send(ctx context.Context, data []byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.connected {
		return apperror.NewNotConnectedError("printer is not connected")
	}
	n.logger.Debug("null transport discarded payload", "bytes", len(data))
	return nil
}

func (n *nullTransport) Disconnect() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.connected = false
	return nil
}

func (n *nullTransport) IsConnected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.connected
}

func (n *nullTransport) Status() Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Status{Connected: n.connected, DeviceName: "null", Transport: "none"}
}
