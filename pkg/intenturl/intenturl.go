// Package intenturl builds the Android deep links used to hand receipt
// text to external printing apps. The URL shapes are fixed contracts with
// RawBT and Thermer; do not "fix" the double-slash variants.
package intenturl

import "net/url"

// Package names and store listings for the supported printing apps.
const (
	RawBTPackage   = "ru.a402d.rawbtprinter"
	ThermerPackage = "mate.bluetoothprint"

	RawBTPlayStoreURL   = "https://play.google.com/store/apps/details?id=" + RawBTPackage
	ThermerPlayStoreURL = "https://play.google.com/store/apps/details?id=" + ThermerPackage
)

// RawBT returns the plain scheme URL, "rawbt:<payload>". Oldest and most
// widely handled RawBT form; tried first.
func RawBT(text string) string {
	return "rawbt:" + url.QueryEscape(text)
}

// RawBTSlashes returns the "rawbt://<payload>" variant some RawBT builds
// register instead of the plain scheme.
func RawBTSlashes(text string) string {
	return "rawbt://" + url.QueryEscape(text)
}

// RawBTIntent returns the explicit Android intent URL targeting the RawBT
// package. Used as the final fallback when the scheme URLs bounce.
func RawBTIntent(text string) string {
	return "intent://print#Intent;scheme=rawbt;package=" + RawBTPackage +
		";S.text=" + url.QueryEscape(text) + ";end"
}

// Thermer returns the explicit intent URL for the Thermer print action,
// with auto-cut enabled.
func Thermer(text string) string {
	return "intent://#Intent;action=mate.bluetoothprint.PRINT;package=" + ThermerPackage +
		";S.text=" + url.QueryEscape(text) + ";S.cut=true;end"
}

// RawBTCandidates returns every RawBT URL form in the order they should be
// attempted.
func RawBTCandidates(text string) []string {
	return []string{RawBT(text), RawBTSlashes(text), RawBTIntent(text)}
}
