// Package platform detects what the calling client can do. The agent
// serves a browser frontend, so the client's platform (not the agent
// host's) decides which print path is viable.
package platform

import "strings"

// Capabilities describes the calling client.
type Capabilities struct {
	IsAndroid    bool `json:"isAndroid"`
	IsMobile     bool `json:"isMobile"`
	HasBluetooth bool `json:"hasBluetooth"`
	HasShare     bool `json:"hasShare"`
}

var mobileMarkers = []string{
	"android", "iphone", "ipad", "ipod", "mobile", "opera mini",
}

// FromUserAgent derives capabilities from a User-Agent header. Bluetooth
// and share support cannot be sniffed from the UA, so they default to the
// platform's norm: desktop browsers expose Web Bluetooth, mobile browsers
// expose the share sheet. Clients report the real values via request
// fields, which override these guesses.
func FromUserAgent(ua string) Capabilities {
	lower := strings.ToLower(ua)

	caps := Capabilities{
		IsAndroid: strings.Contains(lower, "android"),
	}
	for _, marker := range mobileMarkers {
		if strings.Contains(lower, marker) {
			caps.IsMobile = true
			break
		}
	}
	caps.HasBluetooth = !caps.IsMobile
	caps.HasShare = caps.IsMobile
	return caps
}

// Merge applies client-reported values on top of UA-derived guesses.
// Booleans sent as pointers so absent fields keep the guess.
func (c Capabilities) Merge(isAndroid, isMobile, hasBluetooth, hasShare *bool) Capabilities {
	if isAndroid != nil {
		c.IsAndroid = *isAndroid
	}
	if isMobile != nil {
		c.IsMobile = *isMobile
	}
	if hasBluetooth != nil {
		c.HasBluetooth = *hasBluetooth
	}
	if hasShare != nil {
		c.HasShare = *hasShare
	}
	return c
}
