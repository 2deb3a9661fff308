// Package receipt renders ReceiptData into fixed-width text for 58mm
// thermal paper, either as plain text for intent/share handoffs or as an
// ESC/POS stream for direct Bluetooth printing. Layout is deliberately
// literal: centering is done with explicit space padding so output matches
// what the physical printer renders.
package receipt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	// Embedded tzdata so Asia/Jakarta resolves in scratch containers.
	_ "time/tzdata"

	"github.com/ryanap7/diwan-print-agent/internal/domain/entity"
	"github.com/ryanap7/diwan-print-agent/pkg/escpos"
)

// Config holds the column scheme and store identity. The widths are
// configuration constants; 32/12/20 matches the 58mm paper layout.
type Config struct {
	Width       int // total characters per line
	LabelWidth  int // label column before the colon
	PriceColumn int // qty-x-price field width on item lines
	StoreName   string
	StoreLines  []string // address/phone lines under the name
	FooterLines []string
	Timezone    string
}

// DefaultConfig returns the production layout for Diwan Motor.
func DefaultConfig() Config {
	return Config{
		Width:       32,
		LabelWidth:  12,
		PriceColumn: 20,
		StoreName:   "DIWAN MOTOR",
		StoreLines:  []string{"Jl. Raya Serpong KM 7 No. 17", "Telp 0812-9000-1234"},
		FooterLines: []string{"Terima Kasih", "Atas Kunjungan Anda"},
		Timezone:    "Asia/Jakarta",
	}
}

// Formatter renders receipts deterministically for a fixed column scheme.
type Formatter struct {
	cfg Config
	loc *time.Location
	now func() time.Time
}

// NewFormatter creates a formatter. Zero config fields fall back to the
// defaults; an unknown timezone falls back to UTC.
func NewFormatter(cfg Config) *Formatter {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.LabelWidth <= 0 {
		cfg.LabelWidth = def.LabelWidth
	}
	if cfg.PriceColumn <= 0 || cfg.PriceColumn >= cfg.Width {
		cfg.PriceColumn = def.PriceColumn
	}
	if cfg.StoreName == "" {
		cfg.StoreName = def.StoreName
	}
	if cfg.Timezone == "" {
		cfg.Timezone = def.Timezone
	}
	if len(cfg.FooterLines) == 0 {
		cfg.FooterLines = def.FooterLines
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &Formatter{cfg: cfg, loc: loc, now: time.Now}
}

// PlainText renders the receipt as fixed-width text suitable for RawBT,
// Thermer and share handoffs. The result is always passed through
// CleanText before returning.
func (f *Formatter) PlainText(r entity.ReceiptData) string {
	r.Normalize()

	var b strings.Builder
	writeLine := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	writeLine(f.center(f.cfg.StoreName))
	for _, line := range f.cfg.StoreLines {
		writeLine(f.center(line))
	}
	writeLine(f.separator('='))

	writeLine(f.labelLine("Tanggal", r.Date))
	writeLine(f.labelLine("Waktu", r.Time))
	writeLine(f.labelLine("Kasir", r.CashierName))
	writeLine(f.labelLine("Pelanggan", r.CustomerName))
	if r.PaymentMethod != "" {
		writeLine(f.labelLine("Pembayaran", r.PaymentMethod))
	}
	writeLine(f.separator('-'))

	for _, item := range r.Items {
		if item.Quantity <= 0 {
			continue
		}
		writeLine(item.Name)
		writeLine(f.itemLine(item))
	}
	writeLine(f.separator('-'))

	writeLine(f.keyValue("Subtotal", FormatCurrency(r.Subtotal)))
	if r.Discount > 0 {
		writeLine(f.keyValue("Diskon", "-"+FormatCurrency(r.Discount)))
	}
	if r.Tax > 0 {
		writeLine(f.keyValue("Pajak", FormatCurrency(r.Tax)))
	}
	writeLine(f.keyValue("TOTAL", FormatCurrency(r.Total)))
	writeLine(f.keyValue("Bayar", FormatCurrency(r.AmountPaid)))
	if r.IsCash() {
		writeLine(f.keyValue("Kembali", FormatCurrency(r.Change)))
	}
	writeLine(f.separator('='))

	for _, line := range f.cfg.FooterLines {
		writeLine(f.center(line))
	}
	writeLine(f.center(f.timestamp()))

	return CleanText(b.String())
}

// Commands renders the receipt as an ESC/POS stream for direct printing.
// Wire layout mirrors PlainText; the header and TOTAL line additionally
// carry emphasis, emitted through scoped helpers so every toggle is paired.
func (f *Formatter) Commands(r entity.ReceiptData) []byte {
	r.Normalize()

	doc := escpos.NewDocument(f.cfg.Width)

	doc.WithAlign(escpos.AlignCenter, func(d *escpos.Document) {
		d.WithBold(func(d *escpos.Document) {
			d.WithSize(escpos.SizeDouble, func(d *escpos.Document) {
				d.Text(f.cfg.StoreName)
			})
		})
		for _, line := range f.cfg.StoreLines {
			d.Text(line)
		}
	})
	doc.Separator('=')

	doc.Text(f.labelLine("Tanggal", r.Date))
	doc.Text(f.labelLine("Waktu", r.Time))
	doc.Text(f.labelLine("Kasir", r.CashierName))
	doc.Text(f.labelLine("Pelanggan", r.CustomerName))
	if r.PaymentMethod != "" {
		doc.Text(f.labelLine("Pembayaran", r.PaymentMethod))
	}
	doc.Separator('-')

	for _, item := range r.Items {
		if item.Quantity <= 0 {
			continue
		}
		doc.Text(item.Name)
		doc.Text(f.itemLine(item))
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal", FormatCurrency(r.Subtotal))
	if r.Discount > 0 {
		doc.KeyValue("Diskon", "-"+FormatCurrency(r.Discount))
	}
	if r.Tax > 0 {
		doc.KeyValue("Pajak", FormatCurrency(r.Tax))
	}
	doc.WithBold(func(d *escpos.Document) {
		d.KeyValue("TOTAL", FormatCurrency(r.Total))
	})
	doc.KeyValue("Bayar", FormatCurrency(r.AmountPaid))
	if r.IsCash() {
		doc.KeyValue("Kembali", FormatCurrency(r.Change))
	}
	doc.Separator('=')

	doc.WithAlign(escpos.AlignCenter, func(d *escpos.Document) {
		for _, line := range f.cfg.FooterLines {
			d.Text(line)
		}
		d.Text(f.timestamp())
	})

	doc.FeedLines(3).PartialCut()
	return doc.Bytes()
}

func (f *Formatter) timestamp() string {
	return f.now().In(f.loc).Format("02/01/2006 15:04") + " WIB"
}

func (f *Formatter) separator(char byte) string {
	return strings.Repeat(string(char), f.cfg.Width)
}

// center pads with literal spaces on the left only, matching the printer's
// rendering of the original receipts. Lines wider than the paper pass
// through untouched.
func (f *Formatter) center(s string) string {
	if len(s) >= f.cfg.Width {
		return s
	}
	return strings.Repeat(" ", (f.cfg.Width-len(s))/2) + s
}

func (f *Formatter) labelLine(label, value string) string {
	if len(label) > f.cfg.LabelWidth {
		label = label[:f.cfg.LabelWidth]
	}
	return label + strings.Repeat(" ", f.cfg.LabelWidth-len(label)) + ": " + value
}

func (f *Formatter) keyValue(key, value string) string {
	spaces := f.cfg.Width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	return key + strings.Repeat(" ", spaces) + value
}

// itemLine renders the second line of an item block: "{qty}x {unit price}"
// left-justified in the price column, line subtotal right-justified in the
// remaining width.
func (f *Formatter) itemLine(item entity.LineItem) string {
	left := fmt.Sprintf("%dx %s", item.Quantity, FormatCurrency(item.UnitPrice))
	if len(left) < f.cfg.PriceColumn {
		left += strings.Repeat(" ", f.cfg.PriceColumn-len(left))
	}
	right := FormatCurrency(item.Subtotal)
	pad := f.cfg.Width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

// FormatCurrency renders an amount as integer rupiah with Indonesian
// thousands grouping, e.g. 1234567 -> "Rp 1.234.567". Negative, NaN and
// infinite inputs render as "Rp 0".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return "Rp 0"
	}
	n := int64(math.Round(v))
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	b.WriteString("Rp ")
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// CleanText strips artifacts left behind by historical URL-encoding bugs:
// literal "//print?text=" fragments and leading "//" runs on any line.
// Cleaning already-clean text returns it unchanged.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "//print?text=", "")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		for strings.HasPrefix(line, "//") {
			line = line[2:]
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
