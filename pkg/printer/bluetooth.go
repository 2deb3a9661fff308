package printer

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/ryanap7/diwan-print-agent/pkg/apperror"
)

// BLE write parameters. Most cheap thermal printer modules negotiate the
// minimum ATT MTU, so payloads go out in 20 byte chunks with a short pause
// between writes to avoid overrunning the module's buffer.
const (
	chunkSize       = 20
	chunkDelay      = 10 * time.Millisecond
	defaultScanTime = 10 * time.Second
)

// Device name prefixes of the printer models seen in the field. Scan
// results that match none of these are ignored.
var namePrefixes = []string{
	"MTP", "RPP", "POS", "Thermal", "EPSON", "Star", "Citizen", "TSP", "DPP",
}

// Candidate print services, probed in order. The first two are the
// standard 16-bit assignments thermal printers abuse for serial-over-GATT;
// the latter two are vendor services (common Chinese modules and
// ISSC/Microchip chips respectively).
var candidateServices = []bluetooth.UUID{
	mustUUID("000018f0-0000-1000-8000-00805f9b34fb"),
	mustUUID("00001801-0000-1000-8000-00805f9b34fb"),
	mustUUID("e7810a71-73ae-499d-8c15-faa9aef0c3f2"),
	mustUUID("49535343-fe7d-4ae5-8fa9-9fafd205e455"),
}

// Writable characteristics known to belong to the vendor services above.
// Only these are accepted as the write target.
var knownWriteChars = []bluetooth.UUID{
	mustUUID("00002af1-0000-1000-8000-00805f9b34fb"),
	mustUUID("bef8d6c9-9c21-4c9e-b632-bd58c1009f9f"),
	mustUUID("49535343-8841-43f4-a8d4-ecbe34729bb3"),
}

func mustUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic("printer: bad uuid " + s)
	}
	return u
}

// BluetoothPrinter is a Transport backed by a BLE GATT connection. It
// manages a single printer at a time; Connect replaces any previous device.
type BluetoothPrinter struct {
	adapter  *bluetooth.Adapter
	logger   *slog.Logger
	scanTime time.Duration

	mu        sync.Mutex
	device    bluetooth.Device
	writer    bluetooth.DeviceCharacteristic
	name      string
	connected bool
	enabled   bool
}

// NewBluetoothPrinter creates a transport on the default adapter. The
// adapter is enabled lazily on first Connect.
func NewBluetoothPrinter(logger *slog.Logger) *BluetoothPrinter {
	return &BluetoothPrinter{
		adapter:  bluetooth.DefaultAdapter,
		logger:   logger,
		scanTime: defaultScanTime,
	}
}

// Connect scans for a printer whose advertised name matches the allow
// list, connects and resolves a writable characteristic. Already connected
// transports return nil immediately.
func (p *BluetoothPrinter) Connect(ctx context.Context) error {
	p.mu.Lock()
	if p.connected {
		p.mu.Unlock()
		return nil
	}
	if err := p.enable(); err != nil {
		p.mu.Unlock()
		return apperror.NewPlatformUnsupportedError("bluetooth adapter unavailable: " + err.Error())
	}
	p.mu.Unlock()

	result, err := p.scan(ctx)
	if err != nil {
		return err
	}

	p.logger.Info("connecting to printer", "device", result.LocalName())
	device, err := p.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return apperror.NewNotConnectedError("failed to connect: " + err.Error())
	}

	writer, err := p.resolveWriter(device)
	if err != nil {
		device.Disconnect()
		return err
	}

	p.mu.Lock()
	p.device = device
	p.writer = writer
	p.name = result.LocalName()
	p.connected = true
	p.mu.Unlock()

	p.logger.Info("printer connected", "device", result.LocalName())
	return nil
}

// enable turns the adapter on once and installs the disconnect handler
// that resets our state when the link drops. Caller holds p.mu.
func (p *BluetoothPrinter) enable() error {
	if p.enabled {
		return nil
	}
	if err := p.adapter.Enable(); err != nil {
		return err
	}
	p.adapter.SetConnectHandler(func(d bluetooth.Device, connected bool) {
		if connected {
			return
		}
		p.mu.Lock()
		wasConnected := p.connected
		p.connected = false
		p.name = ""
		p.mu.Unlock()
		if wasConnected {
			p.logger.Warn("printer link dropped")
		}
	})
	p.enabled = true
	return nil
}

// scan blocks until an allow-listed device advertises, the context is
// cancelled, or the scan window elapses.
func (p *BluetoothPrinter) scan(ctx context.Context) (bluetooth.ScanResult, error) {
	found := make(chan bluetooth.ScanResult, 1)
	scanErr := make(chan error, 1)

	go func() {
		err := p.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !matchesAllowList(result.LocalName()) {
				return
			}
			p.logger.Debug("found printer candidate", "device", result.LocalName())
			select {
			case found <- result:
			default:
			}
			adapter.StopScan()
		})
		if err != nil {
			scanErr <- err
		}
	}()

	timer := time.NewTimer(p.scanTime)
	defer timer.Stop()

	select {
	case result := <-found:
		return result, nil
	case err := <-scanErr:
		return bluetooth.ScanResult{}, apperror.NewNotConnectedError("scan failed: " + err.Error())
	case <-ctx.Done():
		p.adapter.StopScan()
		return bluetooth.ScanResult{}, apperror.NewNotConnectedError("scan cancelled: " + ctx.Err().Error())
	case <-timer.C:
		p.adapter.StopScan()
		return bluetooth.ScanResult{}, apperror.NewNotConnectedError("no printer found")
	}
}

func matchesAllowList(name string) bool {
	for _, prefix := range namePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// resolveWriter probes the candidate services in order and returns the
// first characteristic on the known-writable list. The tinygo bluetooth
// API does not expose characteristic properties portably, so writability
// is established by UUID allow-list instead of by inspecting the
// characteristic; anything off the list is rejected.
func (p *BluetoothPrinter) resolveWriter(device bluetooth.Device) (bluetooth.DeviceCharacteristic, error) {
	var zero bluetooth.DeviceCharacteristic

	services, err := device.DiscoverServices(nil)
	if err != nil {
		return zero, apperror.NewNoCompatibleServiceError("service discovery failed: " + err.Error())
	}

	for _, candidate := range candidateServices {
		for _, svc := range services {
			if svc.UUID() != candidate {
				continue
			}
			chars, err := svc.DiscoverCharacteristics(nil)
			if err != nil {
				continue
			}
			uuids := make([]bluetooth.UUID, len(chars))
			for i, ch := range chars {
				uuids[i] = ch.UUID()
			}
			if i := writeCharIndex(uuids); i >= 0 {
				return chars[i], nil
			}
		}
	}

	return zero, apperror.NewNoCompatibleServiceError("no compatible print service on device")
}

// writeCharIndex returns the index of the first characteristic known to
// accept ESC/POS writes, or -1 when none of the UUIDs is on the list.
func writeCharIndex(uuids []bluetooth.UUID) int {
	for _, known := range knownWriteChars {
		for i, u := range uuids {
			if u == known {
				return i
			}
		}
	}
	return -1
}

// Send writes data to the printer in fixed-size chunks, pausing between
// writes. Holding the lock for the whole payload keeps concurrent print
// jobs from interleaving.
func (p *BluetoothPrinter) Send(ctx context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		return apperror.NewNotConnectedError("printer is not connected")
	}

	for offset := 0; offset < len(data); offset += chunkSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		end := offset + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if _, err := p.writer.WriteWithoutResponse(data[offset:end]); err != nil {
			p.connected = false
			return apperror.NewNotConnectedError("write failed: " + err.Error())
		}
		if end < len(data) {
			time.Sleep(chunkDelay)
		}
	}

	p.logger.Debug("payload sent", "bytes", len(data), "device", p.name)
	return nil
}

// Disconnect drops the GATT link. Idempotent.
func (p *BluetoothPrinter) Disconnect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		return nil
	}
	p.connected = false
	p.name = ""
	if err := p.device.Disconnect(); err != nil {
		p.logger.Warn("disconnect failed", "error", err)
		return err
	}
	return nil
}

func (p *BluetoothPrinter) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *BluetoothPrinter) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{Connected: p.connected, DeviceName: p.name, Transport: "bluetooth"}
}
