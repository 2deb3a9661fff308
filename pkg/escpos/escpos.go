// Package escpos encodes ESC/POS control sequences for thermal receipt
// printers. Every function returns a self-contained byte fragment; fragments
// concatenate in caller order and nothing is reset implicitly. A caller that
// emits Bold(true) without a matching Bold(false) leaves the printer bold —
// use Document's scoped helpers when balanced emission matters.
package escpos

// Control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	FS  = 0x1C
	LF  = 0x0A
)

// Alignment selects horizontal text alignment (ESC a n).
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Size selects character magnification (GS ! n).
type Size byte

const (
	SizeNormal       Size = 0x00
	SizeDoubleHeight Size = 0x01
	SizeDoubleWidth  Size = 0x10
	SizeDouble       Size = 0x11 // double width + double height
	SizeTriple       Size = 0x22
)

// CutMode selects the paper cut variant (GS V m).
type CutMode byte

const (
	CutFull    CutMode = 0x00
	CutPartial CutMode = 0x01
)

// QRCorrection is the QR error correction level byte for GS ( k function 169.
type QRCorrection byte

const (
	QRCorrectionL QRCorrection = 0x30
	QRCorrectionM QRCorrection = 0x31
	QRCorrectionQ QRCorrection = 0x32
	QRCorrectionH QRCorrection = 0x33
)

// Defaults applied when QRCode receives out-of-range arguments.
const (
	DefaultQRSize       = 6
	DefaultQRCorrection = QRCorrectionM
)

// Init returns ESC @ (initialize printer).
func Init() []byte {
	return []byte{ESC, '@'}
}

// Align returns ESC a n.
func Align(a Alignment) []byte {
	return []byte{ESC, 'a', byte(a)}
}

// Bold returns ESC E n.
func Bold(on bool) []byte {
	if on {
		return []byte{ESC, 'E', 0x01}
	}
	return []byte{ESC, 'E', 0x00}
}

// Underline returns ESC - n.
func Underline(on bool) []byte {
	if on {
		return []byte{ESC, '-', 0x01}
	}
	return []byte{ESC, '-', 0x00}
}

// TextSize returns GS ! n.
func TextSize(s Size) []byte {
	return []byte{GS, '!', byte(s)}
}

// Cut returns GS V m.
func Cut(m CutMode) []byte {
	return []byte{GS, 'V', byte(m)}
}

// OpenDrawer returns ESC p 0 (kick cash drawer pin 2).
func OpenDrawer() []byte {
	return []byte{ESC, 'p', 0x00, 0x19, 0xFA}
}

// Beep returns ESC B n t. Times is clamped to 1..9.
func Beep(times int) []byte {
	if times < 1 {
		times = 1
	}
	if times > 9 {
		times = 9
	}
	return []byte{ESC, 'B', byte(times), 0x03}
}

// QRCode returns the GS ( k sequence that selects QR model 2, sets module
// size and error correction, stores the data and prints it. Size outside
// 1..8 falls back to DefaultQRSize; an unknown correction level falls back
// to DefaultQRCorrection.
func QRCode(text string, size int, ec QRCorrection) []byte {
	if size < 1 || size > 8 {
		size = DefaultQRSize
	}
	switch ec {
	case QRCorrectionL, QRCorrectionM, QRCorrectionQ, QRCorrectionH:
	default:
		ec = DefaultQRCorrection
	}

	data := []byte(text)
	storeLen := len(data) + 3
	pL := byte(storeLen % 256)
	pH := byte(storeLen / 256)

	cmd := make([]byte, 0, len(data)+34)
	// Select model 2
	cmd = append(cmd, GS, '(', 'k', 0x04, 0x00, 0x31, 0x41, 0x32, 0x00)
	// Module size
	cmd = append(cmd, GS, '(', 'k', 0x03, 0x00, 0x31, 0x43, byte(size))
	// Error correction
	cmd = append(cmd, GS, '(', 'k', 0x03, 0x00, 0x31, 0x45, byte(ec))
	// Store data
	cmd = append(cmd, GS, '(', 'k', pL, pH, 0x31, 0x50, 0x30)
	cmd = append(cmd, data...)
	// Print
	cmd = append(cmd, GS, '(', 'k', 0x03, 0x00, 0x31, 0x51, 0x30)
	return cmd
}
