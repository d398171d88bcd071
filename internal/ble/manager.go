package ble

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/runwear/run-watch/watch-app/internal/events"
	"github.com/runwear/run-watch/watch-app/internal/go_func_utils"
)

// ConnectionChange reports one connect or disconnect seen by the adapter.
type ConnectionChange struct {
	Address   string
	Connected bool
}

// Manager is the adapter-facing surface the sensor feed consumes.
type Manager interface {
	Enable() error
	StartScan(serviceUUIDFilter []string)
	StopScan() error
	Connect(d Device) error
	DeviceByAddress(addr string) Device
	ListenToScan(ch chan<- []Device) func()
	ListenToConnections(fn func(ConnectionChange)) func()
	Shutdown()
}

// BLEManager tracks scanned and connected peripherals on one adapter and
// emits the live scan list once per second while scanning.
type BLEManager struct {
	adapter *bluetooth.Adapter
	logger  *log.Logger

	mu       sync.Mutex
	devices  map[string]*deviceImpl
	scanning bool
	scanStop context.CancelFunc

	scanEvent *events.ChannelEvent[[]Device]
	connEvent *events.CallbackEvent[ConnectionChange]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Manager = (*BLEManager)(nil)

func NewBLEManager(adapter *bluetooth.Adapter, logger *log.Logger) *BLEManager {
	if adapter == nil {
		panic("BLEManager: adapter cannot be nil")
	}
	if logger == nil {
		panic("BLEManager: logger cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &BLEManager{
		adapter:   adapter,
		logger:    logger,
		devices:   make(map[string]*deviceImpl),
		scanEvent: events.NewChannelEvent[[]Device](true),
		connEvent: events.NewCallbackEvent[ConnectionChange](false),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Enable powers the adapter and installs the connect/disconnect handler.
func (m *BLEManager) Enable() error {
	m.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		d := m.device(device.Address)
		if connected {
			m.logger.Printf("ble: connected %s", device.Address.String())
			d.setConnected(&device)
		} else {
			m.logger.Printf("ble: disconnected %s", device.Address.String())
			d.setConnected(nil)
		}
		m.connEvent.Notify(ConnectionChange{Address: device.Address.String(), Connected: connected})
	})
	return m.adapter.Enable()
}

func (m *BLEManager) device(address bluetooth.Address) *deviceImpl {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := address.String()
	d, ok := m.devices[key]
	if !ok {
		d = newDevice(m.logger, address)
		m.devices[key] = d
	}
	return d
}

func (m *BLEManager) DeviceByAddress(addr string) Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.devices[addr]; ok {
		return d
	}
	return nil
}

// StartScan scans for advertisements carrying any of the filter service
// UUIDs (nil accepts everything) and publishes the recently-seen list.
func (m *BLEManager) StartScan(serviceUUIDFilter []string) {
	filter := make(map[string]struct{}, len(serviceUUIDFilter))
	for _, u := range serviceUUIDFilter {
		filter[u] = struct{}{}
	}

	m.mu.Lock()
	if m.scanning && m.scanStop != nil {
		m.scanStop()
	}
	m.scanning = true
	var scanCtx context.Context
	scanCtx, m.scanStop = context.WithCancel(m.ctx)
	m.mu.Unlock()

	m.logger.Printf("ble: scan started, filter %v", serviceUUIDFilter)

	m.wg.Add(1)
	go_func_utils.SafeGoNamed(m.logger, "ble scan", func() {
		defer m.wg.Done()
		err := m.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			select {
			case <-scanCtx.Done():
				return
			default:
			}
			if len(filter) > 0 && !matchesFilter(result, filter) {
				return
			}
			d := m.device(result.Address)
			res := result
			d.noteScan(&res, time.Now())
		})
		if err != nil {
			m.logger.Printf("ble: scan error: %v", err)
		}
	})

	m.wg.Add(1)
	go_func_utils.SafeGoNamed(m.logger, "ble scan emitter", func() {
		defer m.wg.Done()
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-scanCtx.Done():
				return
			case <-ticker.C:
				m.scanEvent.Notify(m.recentDevices(10 * time.Second))
			}
		}
	})
}

func matchesFilter(result bluetooth.ScanResult, filter map[string]struct{}) bool {
	for _, u := range result.ServiceUUIDs() {
		if _, ok := filter[u.String()]; ok {
			return true
		}
	}
	return false
}

func (m *BLEManager) recentDevices(window time.Duration) []Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-window)
	out := make([]Device, 0, len(m.devices))
	for _, d := range m.devices {
		if d.seenSince(cutoff) {
			out = append(out, d)
		}
	}
	return out
}

func (m *BLEManager) StopScan() error {
	m.mu.Lock()
	m.scanning = false
	if m.scanStop != nil {
		m.scanStop()
		m.scanStop = nil
	}
	m.mu.Unlock()
	return m.adapter.StopScan()
}

// Connect initiates a connection; completion is reported through the
// adapter's connect handler, so callers use Device.WaitForConnection.
func (m *BLEManager) Connect(d Device) error {
	m.mu.Lock()
	impl, ok := m.devices[d.AddressString()]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown device %s", d.AddressString())
	}
	if _, err := m.adapter.Connect(impl.address, bluetooth.ConnectionParams{}); err != nil {
		return fmt.Errorf("connect to %s failed: %w", d.AddressString(), err)
	}
	return nil
}

// ListenToScan registers ch for the periodic recently-seen device list.
func (m *BLEManager) ListenToScan(ch chan<- []Device) func() {
	return m.scanEvent.Listen(ch)
}

// ListenToConnections registers fn for connect/disconnect changes. The
// callback runs on the adapter's handler goroutine.
func (m *BLEManager) ListenToConnections(fn func(ConnectionChange)) func() {
	return m.connEvent.Listen(fn)
}

func (m *BLEManager) Shutdown() {
	m.logger.Println("ble: shutting down")
	if err := m.StopScan(); err != nil {
		m.logger.Printf("ble: error stopping scan: %v", err)
	}
	m.cancel()
	m.wg.Wait()
}
