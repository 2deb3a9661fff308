package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ryanap7/diwan-print-agent/internal/domain/entity"
	"github.com/ryanap7/diwan-print-agent/internal/platform"
	"github.com/ryanap7/diwan-print-agent/internal/prefs"
	"github.com/ryanap7/diwan-print-agent/pkg/apperror"
	"github.com/ryanap7/diwan-print-agent/pkg/bitmap"
	"github.com/ryanap7/diwan-print-agent/pkg/escpos"
	"github.com/ryanap7/diwan-print-agent/pkg/intenturl"
	"github.com/ryanap7/diwan-print-agent/pkg/printer"
	"github.com/ryanap7/diwan-print-agent/pkg/receipt"
)

// Dispatch methods. These strings are a wire contract with the frontend's
// print settings screen and must not be renamed.
const (
	MethodWebBluetooth = "web-bluetooth"
	MethodRawBT        = "rawbt"
	MethodThermer      = "thermer"
	MethodShare        = "share"

	// MethodAuto opts into degradation: the service picks a channel and,
	// when a Bluetooth print is not possible, falls back to a handoff or
	// share instead of failing. Without it a resolved channel is binding.
	MethodAuto = "auto"
)

// PrintResult tells the frontend what happened and, for app handoffs,
// which URL to launch next.
type PrintResult struct {
	Success     bool     `json:"success"`
	Method      string   `json:"method"`
	Message     string   `json:"message,omitempty"`
	Text        string   `json:"text,omitempty"`
	IntentURL   string   `json:"intentUrl,omitempty"`
	IntentURLs  []string `json:"intentUrls,omitempty"`
	FallbackURL string   `json:"fallbackUrl,omitempty"`
	HandoffID   string   `json:"handoffId,omitempty"`
}

// PrintService routes print requests to the best available channel:
// direct Bluetooth, a RawBT or Thermer intent handoff, or plain text for
// the share sheet.
type PrintService struct {
	transport printer.Transport
	formatter *receipt.Formatter
	prefs     *prefs.Store
	handoffs  *HandoffTracker
	logger    *slog.Logger

	maxImageWidth int
	threshold     int
}

// NewPrintService creates a new print dispatch service.
func NewPrintService(
	transport printer.Transport,
	formatter *receipt.Formatter,
	prefStore *prefs.Store,
	handoffs *HandoffTracker,
	logger *slog.Logger,
	maxImageWidth, threshold int,
) *PrintService {
	return &PrintService{
		transport:     transport,
		formatter:     formatter,
		prefs:         prefStore,
		handoffs:      handoffs,
		logger:        logger,
		maxImageWidth: maxImageWidth,
		threshold:     threshold,
	}
}

// SmartPrint formats a receipt and dispatches it. An empty force lets the
// service pick a method from the client capabilities and the stored
// preferences, and the picked method is binding. Forcing a specific
// method pins it; forcing MethodAuto additionally allows degrading a
// failed Bluetooth print into a handoff or share.
func (s *PrintService) SmartPrint(ctx context.Context, r entity.ReceiptData, caps platform.Capabilities, force string) (*PrintResult, error) {
	text := s.formatter.PlainText(r)
	commands := func() []byte { return s.formatter.Commands(r) }
	return s.dispatch(ctx, text, commands, caps, force)
}

// PrintText dispatches pre-formatted text, bypassing the receipt layout.
// Used by the frontend for reprints of stored receipt text.
func (s *PrintService) PrintText(ctx context.Context, text string, caps platform.Capabilities, force string) (*PrintResult, error) {
	text = receipt.CleanText(text)
	if strings.TrimSpace(text) == "" {
		return nil, apperror.NewBadRequestError("text is required")
	}
	commands := func() []byte {
		doc := escpos.NewDocument(0)
		for _, line := range strings.Split(text, "\n") {
			doc.Text(line)
		}
		doc.FeedLines(3).PartialCut()
		return doc.Bytes()
	}
	return s.dispatch(ctx, text, commands, caps, force)
}

// dispatch implements the strategy. commands is lazy so intent and share
// paths never render ESC/POS bytes.
//
// Resolution is binding: once a method is picked (forced, pinned by
// preference, or chosen from capabilities) its errors propagate to the
// caller. Only an explicit MethodAuto request may degrade a failed
// Bluetooth print into a handoff or share.
func (s *PrintService) dispatch(ctx context.Context, text string, commands func() []byte, caps platform.Capabilities, force string) (*PrintResult, error) {
	p := s.prefs.Get()

	degradable := force == MethodAuto
	method := force
	if method == "" || method == MethodAuto {
		method = p.PreferredMethod
		// A pinned preference is as binding as an explicit force.
		degradable = degradable && method == ""
		if method == "" {
			method = s.choose(caps, p.PreferThermer)
		}
	}

	switch method {
	case MethodWebBluetooth:
		result, err := s.printBluetooth(ctx, commands)
		if err == nil || !degradable {
			return result, err
		}
		s.logger.Warn("bluetooth print unavailable, falling back", "error", err)
		if caps.IsMobile {
			return s.handoffRawBT(text), nil
		}
		return s.share(text), nil
	case MethodRawBT:
		// Not platform-gated, unlike Thermer: the rawbt scheme URLs fail
		// soft wherever no app claims them and the result always carries
		// the install fallback, whereas Thermer's explicit intent:// URL
		// only resolves on Android.
		return s.handoffRawBT(text), nil
	case MethodThermer:
		if !caps.IsAndroid {
			return nil, apperror.NewPlatformUnsupportedError("Thermer is only available on Android")
		}
		return s.handoffThermer(text), nil
	case MethodShare:
		return s.share(text), nil
	default:
		return nil, apperror.NewBadRequestError("unknown print method: " + method)
	}
}

// choose picks the dispatch method from the client capabilities.
func (s *PrintService) choose(caps platform.Capabilities, preferThermer bool) string {
	switch {
	case caps.IsAndroid && preferThermer:
		return MethodThermer
	case caps.IsMobile:
		return MethodRawBT
	case caps.HasBluetooth:
		return MethodWebBluetooth
	default:
		return MethodShare
	}
}

func (s *PrintService) printBluetooth(ctx context.Context, commands func() []byte) (*PrintResult, error) {
	if !s.transport.IsConnected() {
		return nil, apperror.NewNotConnectedError("printer is not connected")
	}
	if err := s.transport.Send(ctx, commands()); err != nil {
		return nil, err
	}
	return &PrintResult{
		Success: true,
		Method:  MethodWebBluetooth,
		Message: "Receipt sent to printer",
	}, nil
}

func (s *PrintService) handoffRawBT(text string) *PrintResult {
	urls := intenturl.RawBTCandidates(text)
	id := s.handoffs.Begin(MethodRawBT, intenturl.RawBTPlayStoreURL)
	return &PrintResult{
		Success:     true,
		Method:      MethodRawBT,
		Message:     "Launch RawBT to print",
		IntentURL:   urls[0],
		IntentURLs:  urls,
		FallbackURL: intenturl.RawBTPlayStoreURL,
		HandoffID:   id,
	}
}

func (s *PrintService) handoffThermer(text string) *PrintResult {
	id := s.handoffs.Begin(MethodThermer, intenturl.ThermerPlayStoreURL)
	return &PrintResult{
		Success:     true,
		Method:      MethodThermer,
		Message:     "Launch Thermer to print",
		IntentURL:   intenturl.Thermer(text),
		FallbackURL: intenturl.ThermerPlayStoreURL,
		HandoffID:   id,
	}
}

func (s *PrintService) share(text string) *PrintResult {
	return &PrintResult{
		Success: true,
		Method:  MethodShare,
		Message: "Share the receipt text with a printing app",
		Text:    text,
	}
}

// PrintImage rasterizes an uploaded image and prints it over Bluetooth.
// Images cannot ride the intent handoffs, so a connected printer is
// required.
func (s *PrintService) PrintImage(ctx context.Context, r io.Reader) (*PrintResult, error) {
	img, err := bitmap.Decode(r)
	if err != nil {
		return nil, err
	}
	mono := bitmap.Convert(img, s.maxImageWidth, s.threshold)

	if !s.transport.IsConnected() {
		return nil, apperror.NewNotConnectedError("printer is not connected")
	}

	doc := escpos.NewDocument(0)
	doc.SetAlign(escpos.AlignCenter)
	doc.Raw(bitmap.Raster(mono, 0))
	doc.SetAlign(escpos.AlignLeft)
	doc.FeedLines(3).PartialCut()

	if err := s.transport.Send(ctx, doc.Bytes()); err != nil {
		return nil, err
	}
	return &PrintResult{
		Success: true,
		Method:  MethodWebBluetooth,
		Message: "Image sent to printer",
	}, nil
}

// TestPrint sends a diagnostic page exercising the printer's features:
// styled text, a QR code, the cash drawer kick and the buzzer.
func (s *PrintService) TestPrint(ctx context.Context) (*PrintResult, error) {
	if !s.transport.IsConnected() {
		return nil, apperror.NewNotConnectedError("printer is not connected")
	}

	doc := escpos.NewDocument(0)
	doc.WithAlign(escpos.AlignCenter, func(d *escpos.Document) {
		d.WithBold(func(d *escpos.Document) {
			d.WithSize(escpos.SizeDouble, func(d *escpos.Document) {
				d.Text("TEST HALAMAN")
			})
		})
		d.Text("Printer siap digunakan")
	})
	doc.Separator('-')
	doc.Text("Normal")
	doc.WithBold(func(d *escpos.Document) { d.Text("Tebal") })
	doc.SetUnderline(true)
	doc.Text("Garis bawah")
	doc.SetUnderline(false)
	doc.WithAlign(escpos.AlignCenter, func(d *escpos.Document) {
		d.QRCode("https://diwanmotor.id", escpos.DefaultQRSize, escpos.DefaultQRCorrection)
	})
	doc.Beep(2)
	doc.OpenDrawer()
	doc.FeedLines(3).PartialCut()

	if err := s.transport.Send(ctx, doc.Bytes()); err != nil {
		return nil, err
	}
	return &PrintResult{
		Success: true,
		Method:  MethodWebBluetooth,
		Message: "Test page sent to printer",
	}, nil
}

// Connect attaches to a Bluetooth printer.
func (s *PrintService) Connect(ctx context.Context) error {
	return s.transport.Connect(ctx)
}

// Disconnect detaches from the printer.
func (s *PrintService) Disconnect() error {
	return s.transport.Disconnect()
}

// Status reports the transport state.
func (s *PrintService) Status() printer.Status {
	return s.transport.Status()
}

// ConfirmHandoff marks an app handoff as taken over by the external app.
func (s *PrintService) ConfirmHandoff(id string) error {
	return s.handoffs.Confirm(id)
}

// HandoffStatus returns the state of an app handoff.
func (s *PrintService) HandoffStatus(id string) (HandoffInfo, error) {
	return s.handoffs.Status(id)
}
