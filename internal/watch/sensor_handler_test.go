package watch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runwear/run-watch/watch-app/internal/ble"
)

type fakeDevice struct {
	mu       sync.Mutex
	addr     string
	services []string
	notifyFn map[string]func([]byte)
}

func newFakeDevice(addr string, services ...string) *fakeDevice {
	return &fakeDevice{addr: addr, services: services, notifyFn: make(map[string]func([]byte))}
}

func (d *fakeDevice) AddressString() string { return d.addr }
func (d *fakeDevice) LocalName() string     { return "fake " + d.addr }
func (d *fakeDevice) Connected() bool       { return true }

func (d *fakeDevice) HasService(uuid string) bool {
	for _, s := range d.services {
		if s == uuid {
			return true
		}
	}
	return false
}

func (d *fakeDevice) WaitForConnection(time.Duration) error { return nil }

func (d *fakeDevice) EnableNotifications(serviceUUID, charUUID string, fn func([]byte)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifyFn[charUUID] = fn
	return nil
}

func (d *fakeDevice) notify(charUUID string, buf []byte) bool {
	d.mu.Lock()
	fn := d.notifyFn[charUUID]
	d.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(buf)
	return true
}

type fakeManager struct {
	mu      sync.Mutex
	scanCh  chan<- []ble.Device
	connFns []func(ble.ConnectionChange)
}

func (m *fakeManager) Enable() error                     { return nil }
func (m *fakeManager) StartScan([]string)                {}
func (m *fakeManager) StopScan() error                   { return nil }
func (m *fakeManager) Connect(ble.Device) error          { return nil }
func (m *fakeManager) DeviceByAddress(string) ble.Device { return nil }
func (m *fakeManager) Shutdown()                         {}

func (m *fakeManager) ListenToScan(ch chan<- []ble.Device) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCh = ch
	return func() {}
}

func (m *fakeManager) ListenToConnections(fn func(ble.ConnectionChange)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connFns = append(m.connFns, fn)
	return func() {}
}

func (m *fakeManager) emitScan(devices []ble.Device) {
	m.mu.Lock()
	ch := m.scanCh
	m.mu.Unlock()
	ch <- devices
}

func (m *fakeManager) emitDisconnect(addr string) {
	m.mu.Lock()
	fns := append([]func(ble.ConnectionChange){}, m.connFns...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn(ble.ConnectionChange{Address: addr, Connected: false})
	}
}

func TestSensorHandler_AdoptsAndFeedsReadings(t *testing.T) {
	c, model, _, _ := newTestController(t)
	c.Start()
	defer c.Stop()

	manager := &fakeManager{}
	h := NewSensorHandler(testLogger(), manager, c)
	require.NoError(t, h.Start())
	defer h.Stop()

	strap := newFakeDevice("AA:01", HeartRateServiceUUID)
	pod := newFakeDevice("AA:02", RunningSpeedCadenceServiceUUID)
	manager.emitScan([]ble.Device{strap, pod})

	require.Eventually(t, func() bool {
		return strap.notify(HeartRateMeasurementUUID, []byte{0x00, 0x96})
	}, time.Second, 5*time.Millisecond, "heart rate subscription never arrived")
	require.Eventually(t, func() bool {
		return pod.notify(RSCMeasurementUUID, []byte{0x00, 0x00, 0x03, 0x56})
	}, time.Second, 5*time.Millisecond, "RSC subscription never arrived")

	require.Eventually(t, func() bool {
		r := model.Snapshot().Readings
		return r.HeartRate.Known && r.Speed.Known
	}, time.Second, 5*time.Millisecond)

	r := model.Snapshot().Readings
	assert.Equal(t, int32(150), r.HeartRate.Value)
	assert.Equal(t, int32(300), r.Speed.Value)
	assert.Equal(t, int32(86), r.Cadence.Value)
}

func TestSensorHandler_ReadoptsAfterDisconnect(t *testing.T) {
	c, _, _, _ := newTestController(t)
	c.Start()
	defer c.Stop()

	manager := &fakeManager{}
	h := NewSensorHandler(testLogger(), manager, c)
	require.NoError(t, h.Start())
	defer h.Stop()

	strap := newFakeDevice("AA:01", HeartRateServiceUUID)
	manager.emitScan([]ble.Device{strap})
	require.Eventually(t, func() bool {
		return strap.notify(HeartRateMeasurementUUID, []byte{0x00, 0x80})
	}, time.Second, 5*time.Millisecond)

	manager.emitDisconnect("AA:01")

	// A different strap offering the same service gets picked up.
	backup := newFakeDevice("BB:02", HeartRateServiceUUID)
	manager.emitScan([]ble.Device{backup})
	require.Eventually(t, func() bool {
		return backup.notify(HeartRateMeasurementUUID, []byte{0x00, 0x81})
	}, time.Second, 5*time.Millisecond, "backup strap never subscribed")
}

func TestParseHeartRateMeasurement(t *testing.T) {
	// Flag bit 0 clear: 8-bit value.
	bpm, err := parseHeartRateMeasurement([]byte{0x00, 0x96})
	require.NoError(t, err)
	assert.Equal(t, 150, bpm)

	// Flag bit 0 set: little-endian 16-bit value.
	bpm, err = parseHeartRateMeasurement([]byte{0x01, 0x2C, 0x01})
	require.NoError(t, err)
	assert.Equal(t, 300, bpm)

	_, err = parseHeartRateMeasurement([]byte{0x00})
	assert.Error(t, err)
	_, err = parseHeartRateMeasurement([]byte{0x01, 0x96})
	assert.Error(t, err, "16-bit flag with only one value byte")
}

func TestParseRSCMeasurement_Minimal(t *testing.T) {
	// Speed 768/256 = 3.00 m/s, cadence 86.
	sample, err := parseRSCMeasurement([]byte{0x00, 0x00, 0x03, 0x56})
	require.NoError(t, err)

	assert.Equal(t, 300, sample.SpeedCenti)
	assert.Equal(t, 86, sample.CadenceSPM)
	assert.False(t, sample.HasStride)
	assert.False(t, sample.HasDistance)
}

func TestParseRSCMeasurement_SpeedRounds(t *testing.T) {
	// 700/256 = 2.734 m/s rounds to 273 centi-m/s.
	sample, err := parseRSCMeasurement([]byte{0x00, 0xBC, 0x02, 0x56})
	require.NoError(t, err)
	assert.Equal(t, 273, sample.SpeedCenti)
}

func TestParseRSCMeasurement_OptionalFields(t *testing.T) {
	// Stride and distance both present: stride 110 cm, distance
	// 12340 dm = 1234 m.
	buf := []byte{
		0x03,       // flags: stride + distance
		0x00, 0x03, // speed 3.00 m/s
		0x56,       // cadence
		0x6E, 0x00, // stride
		0x34, 0x30, 0x00, 0x00, // distance (little endian)
	}
	sample, err := parseRSCMeasurement(buf)
	require.NoError(t, err)

	assert.True(t, sample.HasStride)
	assert.Equal(t, 110, sample.StrideCM)
	assert.True(t, sample.HasDistance)
	assert.Equal(t, 1234, sample.DistanceMeters)
}

func TestParseRSCMeasurement_Truncated(t *testing.T) {
	_, err := parseRSCMeasurement([]byte{0x00, 0x00})
	assert.Error(t, err)

	// Flags promise a distance field that is not there.
	_, err = parseRSCMeasurement([]byte{0x02, 0x00, 0x03, 0x56, 0x34})
	assert.Error(t, err)

	// Flags promise a stride field that is not there.
	_, err = parseRSCMeasurement([]byte{0x01, 0x00, 0x03, 0x56, 0x6E})
	assert.Error(t, err)
}

func TestParseCyclingPowerMeasurement(t *testing.T) {
	watts, err := parseCyclingPowerMeasurement([]byte{0x00, 0x00, 0xDC, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 220, watts)

	// Instantaneous power is signed.
	watts, err = parseCyclingPowerMeasurement([]byte{0x00, 0x00, 0xFF, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, -1, watts)

	_, err = parseCyclingPowerMeasurement([]byte{0x00, 0x00, 0xDC})
	assert.Error(t, err)
}
