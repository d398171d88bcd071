package ble

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// Device is the slice of a BLE peripheral the sensor feed needs: identity,
// connection state, and notification subscriptions. Run-watch only ever
// listens to sensors, so there is no write surface.
type Device interface {
	AddressString() string
	LocalName() string
	Connected() bool
	HasService(uuid string) bool
	WaitForConnection(timeout time.Duration) error
	EnableNotifications(serviceUUID, charUUID string, fn func(buf []byte)) error
}

type deviceImpl struct {
	logger  *log.Logger
	address bluetooth.Address

	mu        sync.Mutex
	scan      *bluetooth.ScanResult
	lastSeen  time.Time
	conn      *bluetooth.Device
	localName string
	services  []string

	// GATT discovery cache. Discovering a service twice interrupts any
	// notification already running on it, so everything is discovered
	// once and cached.
	gattMu          sync.Mutex
	serviceByUUID   map[string]*bluetooth.DeviceService
	charByUUID      map[string]*bluetooth.DeviceCharacteristic
	charsDiscovered map[string]bool
	allDiscovered   bool
}

func newDevice(logger *log.Logger, address bluetooth.Address) *deviceImpl {
	if logger == nil {
		panic("ble.Device: logger cannot be nil")
	}
	return &deviceImpl{
		logger:          logger,
		address:         address,
		localName:       "Unknown",
		serviceByUUID:   make(map[string]*bluetooth.DeviceService),
		charByUUID:      make(map[string]*bluetooth.DeviceCharacteristic),
		charsDiscovered: make(map[string]bool),
	}
}

func (d *deviceImpl) AddressString() string { return d.address.String() }

func (d *deviceImpl) LocalName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scan != nil {
		if name := d.scan.LocalName(); name != "" {
			return name
		}
	}
	return d.localName
}

func (d *deviceImpl) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn != nil
}

func (d *deviceImpl) HasService(uuid string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.services {
		if u == uuid {
			return true
		}
	}
	return false
}

func (d *deviceImpl) WaitForConnection(timeout time.Duration) error {
	deadline := time.After(timeout)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if d.Connected() {
				return nil
			}
		case <-deadline:
			return fmt.Errorf("timeout after %v waiting for connection to %s", timeout, d.AddressString())
		}
	}
}

func (d *deviceImpl) EnableNotifications(serviceUUID, charUUID string, fn func(buf []byte)) error {
	d.gattMu.Lock()
	defer d.gattMu.Unlock()

	char, err := d.characteristic(serviceUUID, charUUID)
	if err != nil {
		return err
	}
	if err := char.EnableNotifications(fn); err != nil {
		return fmt.Errorf("failed to enable notifications on %s: %w", charUUID, err)
	}
	d.logger.Printf("ble: notifications enabled on %s %s", d.AddressString(), charUUID)
	return nil
}

func (d *deviceImpl) characteristic(serviceUUIDStr, charUUIDStr string) (*bluetooth.DeviceCharacteristic, error) {
	serviceUUID, err := bluetooth.ParseUUID(serviceUUIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid service UUID %q: %w", serviceUUIDStr, err)
	}
	_, err = bluetooth.ParseUUID(charUUIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid characteristic UUID %q: %w", charUUIDStr, err)
	}

	comboKey := serviceUUIDStr + "_" + charUUIDStr
	if char, ok := d.charByUUID[comboKey]; ok {
		return char, nil
	}

	svc, err := d.service(serviceUUID)
	if err != nil {
		return nil, err
	}

	if !d.charsDiscovered[serviceUUIDStr] {
		chars, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			return nil, fmt.Errorf("could not discover characteristics of %s: %w", serviceUUIDStr, err)
		}
		for i := range chars {
			c := &chars[i]
			d.charByUUID[serviceUUIDStr+"_"+c.UUID().String()] = c
		}
		d.charsDiscovered[serviceUUIDStr] = true
	}

	char, ok := d.charByUUID[comboKey]
	if !ok {
		return nil, fmt.Errorf("characteristic %s not found in service %s", charUUIDStr, serviceUUIDStr)
	}
	return char, nil
}

func (d *deviceImpl) service(uuid bluetooth.UUID) (*bluetooth.DeviceService, error) {
	conn := d.connected()
	if conn == nil {
		return nil, errors.New("no connected device")
	}

	key := uuid.String()
	if svc, ok := d.serviceByUUID[key]; ok {
		return svc, nil
	}

	if !d.allDiscovered {
		services, err := conn.DiscoverServices(nil)
		if err != nil {
			return nil, fmt.Errorf("error discovering services: %w", err)
		}
		for i := range services {
			s := &services[i]
			d.serviceByUUID[s.UUID().String()] = s
		}
		d.allDiscovered = true
	}

	svc, ok := d.serviceByUUID[key]
	if !ok {
		return nil, fmt.Errorf("service %s not found on device %s", key, d.AddressString())
	}
	return svc, nil
}

func (d *deviceImpl) connected() *bluetooth.Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn
}

func (d *deviceImpl) setConnected(conn *bluetooth.Device) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.conn = conn
}

func (d *deviceImpl) noteScan(result *bluetooth.ScanResult, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scan = result
	d.lastSeen = at
	d.services = d.services[:0]
	for _, u := range result.ServiceUUIDs() {
		d.services = append(d.services, u.String())
	}
}

func (d *deviceImpl) seenSince(cutoff time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastSeen.After(cutoff)
}
