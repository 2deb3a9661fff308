package escpos

import (
	"bytes"
	"fmt"
	"strings"
)

// Document builds an ESC/POS byte stream for thermal printers. It only
// concatenates fragments from this package; the scoped With* helpers
// guarantee that every formatting toggle is paired with its reset.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (32 for 58mm, 48 for 80mm)
}

// NewDocument creates a new ESC/POS document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width returns the configured character width.
func (d *Document) Width() int {
	return d.width
}

// Init appends the initialize-printer command.
func (d *Document) Init() *Document {
	d.buf.Write(Init())
	return d
}

// Raw appends a pre-encoded fragment as-is.
func (d *Document) Raw(fragment []byte) *Document {
	d.buf.Write(fragment)
	return d
}

// LineFeed appends a single line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines appends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment.
func (d *Document) SetAlign(a Alignment) *Document {
	d.buf.Write(Align(a))
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	d.buf.Write(Bold(on))
	return d
}

// SetUnderline enables or disables underlined text.
func (d *Document) SetUnderline(on bool) *Document {
	d.buf.Write(Underline(on))
	return d
}

// SetSize sets the character magnification.
func (d *Document) SetSize(s Size) *Document {
	d.buf.Write(TextSize(s))
	return d
}

// WithBold runs fn with bold enabled and always restores normal weight.
func (d *Document) WithBold(fn func(*Document)) *Document {
	d.SetBold(true)
	fn(d)
	d.SetBold(false)
	return d
}

// WithAlign runs fn under the given alignment and restores left alignment.
func (d *Document) WithAlign(a Alignment, fn func(*Document)) *Document {
	d.SetAlign(a)
	fn(d)
	d.SetAlign(AlignLeft)
	return d
}

// WithSize runs fn under the given magnification and restores normal size.
func (d *Document) WithSize(s Size, fn func(*Document)) *Document {
	d.SetSize(s)
	fn(d)
	d.SetSize(SizeNormal)
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte(LF)
	return d
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on one line.
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// QRCode appends a printed QR code. See QRCode for clamping rules.
func (d *Document) QRCode(text string, size int, ec QRCorrection) *Document {
	d.buf.Write(QRCode(text, size, ec))
	return d
}

// OpenDrawer appends the cash drawer kick command.
func (d *Document) OpenDrawer() *Document {
	d.buf.Write(OpenDrawer())
	return d
}

// Beep appends the beep command.
func (d *Document) Beep(times int) *Document {
	d.buf.Write(Beep(times))
	return d
}

// Cut appends the full paper cut command.
func (d *Document) Cut() *Document {
	d.buf.Write(Cut(CutFull))
	return d
}

// PartialCut appends the partial paper cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write(Cut(CutPartial))
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}
