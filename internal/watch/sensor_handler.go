package watch

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/runwear/run-watch/watch-app/internal/ble"
	"github.com/runwear/run-watch/watch-app/internal/go_func_utils"
)

// SensorHandler turns BLE fitness sensors into inbound messages: it
// scans for the standard heart-rate, running-speed-and-cadence and
// cycling-power services, connects to the first device seen per service,
// and feeds parsed notifications to the controller.
type SensorHandler struct {
	logger     *log.Logger
	manager    ble.Manager
	controller *UIController

	mu       sync.Mutex
	feedAddr map[string]string // service UUID -> address of the device feeding it

	done     chan struct{}
	stopOnce sync.Once
	unlisten []func()
}

var sensorServices = []string{
	HeartRateServiceUUID,
	RunningSpeedCadenceServiceUUID,
	CyclingPowerServiceUUID,
}

func NewSensorHandler(logger *log.Logger, manager ble.Manager, controller *UIController) *SensorHandler {
	if logger == nil {
		panic("SensorHandler: logger cannot be nil")
	}
	if manager == nil {
		panic("SensorHandler: manager cannot be nil")
	}
	if controller == nil {
		panic("SensorHandler: controller cannot be nil")
	}
	return &SensorHandler{
		logger:     logger,
		manager:    manager,
		controller: controller,
		feedAddr:   make(map[string]string),
		done:       make(chan struct{}),
	}
}

// Start powers the adapter and begins scanning. Connections happen in the
// background as matching sensors are seen.
func (h *SensorHandler) Start() error {
	if err := h.manager.Enable(); err != nil {
		return fmt.Errorf("could not enable BLE adapter: %w", err)
	}
	h.manager.StartScan(sensorServices)

	scanCh := make(chan []ble.Device, 4)
	h.unlisten = append(h.unlisten, h.manager.ListenToScan(scanCh))
	h.unlisten = append(h.unlisten, h.manager.ListenToConnections(h.onConnectionChange))

	go_func_utils.SafeGoNamed(h.logger, "sensor scan listener", func() {
		for {
			select {
			case <-h.done:
				return
			case devices := <-scanCh:
				h.adoptDevices(devices)
			}
		}
	})
	return nil
}

func (h *SensorHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		for _, stop := range h.unlisten {
			stop()
		}
	})
}

// onConnectionChange releases any feed whose device dropped, so the next
// scan pass can re-adopt it (or another sensor offering the same service).
func (h *SensorHandler) onConnectionChange(ch ble.ConnectionChange) {
	if ch.Connected {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for svc, addr := range h.feedAddr {
		if addr == ch.Address {
			h.logger.Printf("SensorHandler: lost %s feed from %s", svc, addr)
			delete(h.feedAddr, svc)
		}
	}
}

func (h *SensorHandler) adoptDevices(devices []ble.Device) {
	for _, svc := range sensorServices {
		h.mu.Lock()
		_, already := h.feedAddr[svc]
		h.mu.Unlock()
		if already {
			continue
		}
		for _, d := range devices {
			if !d.HasService(svc) {
				continue
			}
			if err := h.subscribe(d, svc); err != nil {
				h.logger.Printf("SensorHandler: %s on %s: %v", svc, d.AddressString(), err)
				continue
			}
			h.mu.Lock()
			h.feedAddr[svc] = d.AddressString()
			h.mu.Unlock()
			break
		}
	}
}

func (h *SensorHandler) subscribe(d ble.Device, serviceUUID string) error {
	if !d.Connected() {
		if err := h.manager.Connect(d); err != nil {
			return err
		}
		if err := d.WaitForConnection(10 * time.Second); err != nil {
			return err
		}
	}
	h.logger.Printf("SensorHandler: subscribing to %s on %s (%s)", serviceUUID, d.LocalName(), d.AddressString())

	switch serviceUUID {
	case HeartRateServiceUUID:
		return d.EnableNotifications(HeartRateServiceUUID, HeartRateMeasurementUUID, h.onHeartRate)
	case RunningSpeedCadenceServiceUUID:
		return d.EnableNotifications(RunningSpeedCadenceServiceUUID, RSCMeasurementUUID, h.onRSC)
	case CyclingPowerServiceUUID:
		return d.EnableNotifications(CyclingPowerServiceUUID, CyclingPowerMeasurementUUID, h.onPower)
	default:
		return fmt.Errorf("no subscription handler for service %s", serviceUUID)
	}
}

func (h *SensorHandler) onHeartRate(buf []byte) {
	bpm, err := parseHeartRateMeasurement(buf)
	if err != nil {
		h.logger.Printf("SensorHandler: bad heart rate packet: %v", err)
		return
	}
	h.controller.HandleMessage(Message{TagHeartRate: int32(bpm)})
}

func (h *SensorHandler) onRSC(buf []byte) {
	sample, err := parseRSCMeasurement(buf)
	if err != nil {
		h.logger.Printf("SensorHandler: bad RSC packet: %v", err)
		return
	}
	msg := Message{
		TagSpeed:   int32(sample.SpeedCenti),
		TagCadence: int32(sample.CadenceSPM),
	}
	if sample.HasDistance {
		msg[TagDistance] = int32(sample.DistanceMeters)
	}
	h.controller.HandleMessage(msg)
}

func (h *SensorHandler) onPower(buf []byte) {
	watts, err := parseCyclingPowerMeasurement(buf)
	if err != nil {
		h.logger.Printf("SensorHandler: bad power packet: %v", err)
		return
	}
	h.controller.HandleMessage(Message{TagPower: int32(watts)})
}

// parseHeartRateMeasurement decodes the Heart Rate Measurement
// characteristic (0x2A37). Flag bit 0 selects an 8- or 16-bit value.
func parseHeartRateMeasurement(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, fmt.Errorf("heart rate data too short: %d bytes", len(buf))
	}
	flags := buf[0]
	if flags&0x01 != 0 {
		if len(buf) < 3 {
			return 0, fmt.Errorf("heart rate UINT16 data too short: %d bytes", len(buf))
		}
		return int(uint16(buf[1]) | uint16(buf[2])<<8), nil
	}
	return int(buf[1]), nil
}

// RSCSample is a decoded RSC Measurement (0x2A53) notification.
type RSCSample struct {
	SpeedCenti     int // centi-m/s
	CadenceSPM     int
	HasStride      bool
	StrideCM       int
	HasDistance    bool
	DistanceMeters int
}

const (
	rscFlagStridePresent   = 1 << 0
	rscFlagDistancePresent = 1 << 1
)

// parseRSCMeasurement decodes the RSC Measurement characteristic:
// flags u8, speed u16 in 1/256 m/s, cadence u8, then optional stride
// length (u16, cm) and total distance (u32, decimeters).
func parseRSCMeasurement(buf []byte) (RSCSample, error) {
	if len(buf) < 4 {
		return RSCSample{}, fmt.Errorf("RSC data too short: %d bytes", len(buf))
	}
	flags := buf[0]
	speed256 := uint16(buf[1]) | uint16(buf[2])<<8

	sample := RSCSample{
		// 1/256 m/s -> centi-m/s, rounded
		SpeedCenti: (int(speed256)*100 + 128) / 256,
		CadenceSPM: int(buf[3]),
	}

	offset := 4
	if flags&rscFlagStridePresent != 0 {
		if len(buf) < offset+2 {
			return RSCSample{}, fmt.Errorf("RSC stride field truncated: %d bytes", len(buf))
		}
		sample.HasStride = true
		sample.StrideCM = int(uint16(buf[offset]) | uint16(buf[offset+1])<<8)
		offset += 2
	}
	if flags&rscFlagDistancePresent != 0 {
		if len(buf) < offset+4 {
			return RSCSample{}, fmt.Errorf("RSC distance field truncated: %d bytes", len(buf))
		}
		deci := uint32(buf[offset]) | uint32(buf[offset+1])<<8 | uint32(buf[offset+2])<<16 | uint32(buf[offset+3])<<24
		sample.HasDistance = true
		sample.DistanceMeters = int(deci / 10)
	}
	return sample, nil
}

// parseCyclingPowerMeasurement decodes the Cycling Power Measurement
// characteristic (0x2A63): flags u16, then instantaneous power sint16.
func parseCyclingPowerMeasurement(buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, fmt.Errorf("cycling power data too short: %d bytes", len(buf))
	}
	power := int16(uint16(buf[2]) | uint16(buf[3])<<8)
	return int(power), nil
}
