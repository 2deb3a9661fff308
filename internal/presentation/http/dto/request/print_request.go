package request

import "github.com/ryanap7/diwan-print-agent/internal/domain/entity"

// ClientInfo carries the caller's self-reported platform capabilities.
// Absent fields fall back to User-Agent sniffing.
type ClientInfo struct {
	IsAndroid    *bool `json:"isAndroid,omitempty"`
	IsMobile     *bool `json:"isMobile,omitempty"`
	HasBluetooth *bool `json:"hasBluetooth,omitempty"`
	HasShare     *bool `json:"hasShare,omitempty"`
}

// PrintReceiptRequest is the body of POST /print.
type PrintReceiptRequest struct {
	Receipt entity.ReceiptData `json:"receipt" binding:"required"`
	// Method forces a dispatch method. Empty selects one automatically;
	// "auto" also allows degrading to a handoff or share when a
	// Bluetooth print fails.
	Method string     `json:"method,omitempty"`
	Client ClientInfo `json:"client,omitempty"`
}

// PrintTextRequest is the body of POST /print/text.
type PrintTextRequest struct {
	Text   string     `json:"text" binding:"required"`
	Method string     `json:"method,omitempty"`
	Client ClientInfo `json:"client,omitempty"`
}

// UpdatePreferencesRequest is the body of PUT /preferences.
type UpdatePreferencesRequest struct {
	PreferThermer   bool   `json:"preferThermer"`
	PreferredMethod string `json:"preferredMethod"`
}
