package escpos

import (
	"bytes"
	"testing"
)

func TestFragments(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"init", Init(), []byte{0x1B, 0x40}},
		{"align left", Align(AlignLeft), []byte{0x1B, 0x61, 0x00}},
		{"align center", Align(AlignCenter), []byte{0x1B, 0x61, 0x01}},
		{"align right", Align(AlignRight), []byte{0x1B, 0x61, 0x02}},
		{"bold on", Bold(true), []byte{0x1B, 0x45, 0x01}},
		{"bold off", Bold(false), []byte{0x1B, 0x45, 0x00}},
		{"underline on", Underline(true), []byte{0x1B, 0x2D, 0x01}},
		{"underline off", Underline(false), []byte{0x1B, 0x2D, 0x00}},
		{"size normal", TextSize(SizeNormal), []byte{0x1D, 0x21, 0x00}},
		{"size double", TextSize(SizeDouble), []byte{0x1D, 0x21, 0x11}},
		{"size triple", TextSize(SizeTriple), []byte{0x1D, 0x21, 0x22}},
		{"full cut", Cut(CutFull), []byte{0x1D, 0x56, 0x00}},
		{"partial cut", Cut(CutPartial), []byte{0x1D, 0x56, 0x01}},
		{"drawer", OpenDrawer(), []byte{0x1B, 0x70, 0x00, 0x19, 0xFA}},
		{"beep", Beep(2), []byte{0x1B, 0x42, 0x02, 0x03}},
		{"beep clamped low", Beep(0), []byte{0x1B, 0x42, 0x01, 0x03}},
		{"beep clamped high", Beep(42), []byte{0x1B, 0x42, 0x09, 0x03}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !bytes.Equal(tt.got, tt.want) {
				t.Errorf("got %x, want %x", tt.got, tt.want)
			}
		})
	}
}

func TestFragmentsAreStateless(t *testing.T) {
	// Two identical calls must return identical, independent slices.
	a := Bold(true)
	b := Bold(true)
	if !bytes.Equal(a, b) {
		t.Fatalf("Bold(true) not deterministic: %x vs %x", a, b)
	}
	a[2] = 0x7F
	if b[2] == 0x7F {
		t.Error("fragments share backing storage")
	}
}

func TestQRCode(t *testing.T) {
	payload := "https://diwanmotor.id/tx/123"
	cmd := QRCode(payload, 4, QRCorrectionH)

	// Model 2 selection prefix
	wantPrefix := []byte{0x1D, 0x28, 0x6B, 0x04, 0x00, 0x31, 0x41, 0x32, 0x00}
	if !bytes.HasPrefix(cmd, wantPrefix) {
		t.Fatalf("missing model selection prefix, got %x", cmd[:9])
	}
	// Size byte follows the 0x31 0x43 function header
	sizeIdx := bytes.Index(cmd, []byte{0x31, 0x43})
	if sizeIdx < 0 || cmd[sizeIdx+2] != 4 {
		t.Errorf("size byte = %d, want 4", cmd[sizeIdx+2])
	}
	ecIdx := bytes.Index(cmd, []byte{0x31, 0x45})
	if ecIdx < 0 || cmd[ecIdx+2] != byte(QRCorrectionH) {
		t.Errorf("correction byte = %x, want %x", cmd[ecIdx+2], byte(QRCorrectionH))
	}
	if !bytes.Contains(cmd, []byte(payload)) {
		t.Error("stored data missing from command")
	}
	// Print function trailer
	if !bytes.HasSuffix(cmd, []byte{0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x51, 0x30}) {
		t.Error("missing print trailer")
	}
}

func TestQRCodeClampsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		ec       QRCorrection
		wantSize byte
		wantEC   byte
	}{
		{"size too small", 0, QRCorrectionL, DefaultQRSize, byte(QRCorrectionL)},
		{"size too large", 99, QRCorrectionQ, DefaultQRSize, byte(QRCorrectionQ)},
		{"unknown correction", 3, QRCorrection(0xEE), 3, byte(DefaultQRCorrection)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := QRCode("x", tt.size, tt.ec)
			sizeIdx := bytes.Index(cmd, []byte{0x31, 0x43})
			if cmd[sizeIdx+2] != tt.wantSize {
				t.Errorf("size byte = %d, want %d", cmd[sizeIdx+2], tt.wantSize)
			}
			ecIdx := bytes.Index(cmd, []byte{0x31, 0x45})
			if cmd[ecIdx+2] != tt.wantEC {
				t.Errorf("correction byte = %x, want %x", cmd[ecIdx+2], tt.wantEC)
			}
		})
	}
}

func TestQRCodeLongPayloadLength(t *testing.T) {
	payload := bytes.Repeat([]byte("a"), 300)
	cmd := QRCode(string(payload), 6, QRCorrectionM)

	storeIdx := bytes.Index(cmd, []byte{0x31, 0x50, 0x30})
	if storeIdx < 5 {
		t.Fatal("store function header not found")
	}
	pL := cmd[storeIdx-2]
	pH := cmd[storeIdx-1]
	if got, want := int(pL)+int(pH)*256, 303; got != want {
		t.Errorf("store length = %d, want %d", got, want)
	}
}

func TestDocumentKeyValue(t *testing.T) {
	d := NewDocument(32)
	d.KeyValue("Subtotal", "Rp 175.000")
	line := string(d.Bytes()[2:]) // skip ESC @
	if len(line) != 33 {          // 32 chars + LF
		t.Fatalf("line length = %d, want 33", len(line))
	}
	if line[:8] != "Subtotal" {
		t.Errorf("key not left-aligned: %q", line)
	}
	if line[22:32] != "Rp 175.000" {
		t.Errorf("value not right-aligned: %q", line[22:32])
	}
}

func TestDocumentWithBoldBalancesToggles(t *testing.T) {
	d := NewDocument(32)
	d.WithBold(func(d *Document) {
		d.Text("TOTAL")
	})
	out := d.Bytes()

	on := bytes.Count(out, Bold(true))
	off := bytes.Count(out, Bold(false))
	if on != 1 || off != 1 {
		t.Errorf("bold on/off = %d/%d, want 1/1", on, off)
	}
	if bytes.Index(out, Bold(true)) > bytes.Index(out, []byte("TOTAL")) {
		t.Error("bold enabled after text")
	}
	if bytes.Index(out, Bold(false)) < bytes.Index(out, []byte("TOTAL")) {
		t.Error("bold disabled before text")
	}
}

func TestDocumentWithHelpersRestoreState(t *testing.T) {
	d := NewDocument(32)
	d.WithAlign(AlignCenter, func(d *Document) { d.Text("DIWAN MOTOR") })
	d.WithSize(SizeDouble, func(d *Document) { d.Text("BIG") })
	out := d.Bytes()

	if !bytes.Contains(out, Align(AlignCenter)) || !bytes.Contains(out, Align(AlignLeft)) {
		t.Error("WithAlign did not emit both alignment commands")
	}
	if !bytes.Contains(out, TextSize(SizeDouble)) || !bytes.Contains(out, TextSize(SizeNormal)) {
		t.Error("WithSize did not restore normal size")
	}
}

func TestDocumentSeparatorWidth(t *testing.T) {
	d := NewDocument(32)
	d.Separator('=')
	want := bytes.Repeat([]byte{'='}, 32)
	if !bytes.Contains(d.Bytes(), want) {
		t.Error("separator not full width")
	}
}
