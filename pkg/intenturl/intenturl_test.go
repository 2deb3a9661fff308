package intenturl

import (
	"net/url"
	"strings"
	"testing"
)

const receipt = "DIWAN MOTOR\nTotal: Rp 175.000 & terima kasih"

func TestRawBTForms(t *testing.T) {
	encoded := url.QueryEscape(receipt)

	if got := RawBT(receipt); got != "rawbt:"+encoded {
		t.Errorf("RawBT = %q", got)
	}
	if got := RawBTSlashes(receipt); got != "rawbt://"+encoded {
		t.Errorf("RawBTSlashes = %q", got)
	}

	intent := RawBTIntent(receipt)
	for _, part := range []string{
		"intent://print#Intent;",
		"scheme=rawbt;",
		"package=ru.a402d.rawbtprinter;",
		"S.text=" + encoded + ";",
	} {
		if !strings.Contains(intent, part) {
			t.Errorf("RawBTIntent missing %q: %q", part, intent)
		}
	}
	if !strings.HasSuffix(intent, ";end") {
		t.Errorf("RawBTIntent must end with ;end: %q", intent)
	}
}

func TestThermer(t *testing.T) {
	got := Thermer(receipt)
	for _, part := range []string{
		"intent://#Intent;",
		"action=mate.bluetoothprint.PRINT;",
		"package=mate.bluetoothprint;",
		"S.text=" + url.QueryEscape(receipt) + ";",
		"S.cut=true;",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("Thermer missing %q: %q", part, got)
		}
	}
	if !strings.HasSuffix(got, ";end") {
		t.Errorf("Thermer must end with ;end: %q", got)
	}
}

func TestPayloadsAreEscaped(t *testing.T) {
	// Newlines, spaces and intent metacharacters must never appear raw.
	for name, u := range map[string]string{
		"rawbt":   RawBT(receipt),
		"slashes": RawBTSlashes(receipt),
		"intent":  RawBTIntent(receipt),
		"thermer": Thermer(receipt),
	} {
		if strings.ContainsAny(u, "\n ") {
			t.Errorf("%s: unescaped whitespace in %q", name, u)
		}
		if strings.Contains(u, "&") {
			t.Errorf("%s: unescaped ampersand in %q", name, u)
		}
	}
}

func TestRawBTCandidatesOrder(t *testing.T) {
	got := RawBTCandidates(receipt)
	if len(got) != 3 {
		t.Fatalf("candidates = %d, want 3", len(got))
	}
	if !strings.HasPrefix(got[0], "rawbt:") || strings.HasPrefix(got[0], "rawbt://") {
		t.Errorf("first candidate should be plain scheme: %q", got[0])
	}
	if !strings.HasPrefix(got[1], "rawbt://") {
		t.Errorf("second candidate should be slash scheme: %q", got[1])
	}
	if !strings.HasPrefix(got[2], "intent://") {
		t.Errorf("third candidate should be explicit intent: %q", got[2])
	}
}
