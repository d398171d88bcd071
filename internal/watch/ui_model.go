package watch

import (
	"log"
	"sync"

	"github.com/runwear/run-watch/watch-app/internal/events"
)

// Snapshot is an immutable copy of the display state, taken under the
// model lock and handed to the pure layout/format/zone functions.
type Snapshot struct {
	Units    UnitSystem
	Hero     HeroMetric
	Focus    FocusMode
	Target   ZoneTarget
	Readings Readings
}

// ViewMode derives the active view: an active target band always means
// Workout, regardless of focus.
func (s Snapshot) ViewMode() ViewMode {
	if s.Target.Active() {
		return ViewWorkout
	}
	return ViewFreeRun
}

// Frame is one fully-decided render pass: state snapshot, geometry, and
// the zone result when a workout is active.
type Frame struct {
	State Snapshot
	Plan  GeometryPlan

	Band    ZoneBand
	Live    float64
	HasLive bool
	Class   ZoneClass
}

// UIModel owns the display state. Mutations come only from the
// controller's event loop; views read snapshots and listen for frames.
type UIModel struct {
	mu     sync.RWMutex
	snap   Snapshot
	bounds Size

	frameEvent  *events.ChannelEvent[Frame]
	statusEvent *events.ChannelEvent[string]

	logger *log.Logger
}

func NewUIModel(logger *log.Logger) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	return &UIModel{
		snap: Snapshot{
			Units: UnitsMetric,
			Hero:  HeroHeartRate,
			Focus: FocusGrid,
		},
		frameEvent:  events.NewChannelEvent[Frame](true),
		statusEvent: events.NewChannelEvent[string](false),
		logger:      logger,
	}
}

func (m *UIModel) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

func (m *UIModel) Bounds() Size {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bounds
}

func (m *UIModel) SetBounds(b Size) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bounds = b
}

func (m *UIModel) SetUnits(u UnitSystem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Units = u
}

func (m *UIModel) SetHero(h HeroMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Hero = h
}

func (m *UIModel) SetFocus(f FocusMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap.Focus = f
}

// ApplyMessage folds an inbound message into the state. Readings are
// sticky; target fields update the band piecewise; a units field follows
// the same persist-on-change path as the user gesture.
// It reports which preference-relevant parts changed.
func (m *UIModel) ApplyMessage(msg Message) (unitsChanged bool) {
	m.mu.Lock()

	if v, ok := msg.Get(TagUnits); ok {
		u := UnitsMetric
		if v == 1 {
			u = UnitsImperial
		}
		if u != m.snap.Units {
			m.snap.Units = u
			unitsChanged = true
		}
	}

	if v, ok := msg.Get(TagHeartRate); ok {
		m.snap.Readings.HeartRate = Reading{Value: v, Known: true}
	}
	if v, ok := msg.Get(TagSpeed); ok {
		m.snap.Readings.Speed = Reading{Value: v, Known: true}
	}
	if v, ok := msg.Get(TagCadence); ok {
		m.snap.Readings.Cadence = Reading{Value: v, Known: true}
	}
	if v, ok := msg.Get(TagDistance); ok {
		m.snap.Readings.Distance = Reading{Value: v, Known: true}
	}
	if v, ok := msg.Get(TagPower); ok {
		m.snap.Readings.Power = Reading{Value: v, Known: true}
	}

	if v, ok := msg.Get(TagTargetKind); ok {
		switch v {
		case 1:
			m.snap.Target.Kind = ZonePower
		case 2:
			m.snap.Target.Kind = ZonePace
		default:
			m.snap.Target.Kind = ZoneNone
		}
	}
	if v, ok := msg.Get(TagTargetLo); ok {
		m.snap.Target.Lo = v
	}
	if v, ok := msg.Get(TagTargetHi); ok {
		m.snap.Target.Hi = v
	}

	status, hasStatus := msg.Get(TagStatus)
	m.mu.Unlock()

	if hasStatus {
		// Reserved tag: surfaced to listeners (log pane), ignored by the core.
		m.statusEvent.Notify(statusText(status))
	}
	return unitsChanged
}

func statusText(code int32) string {
	switch code {
	case 1:
		return "session started"
	case 2:
		return "segment change"
	case 3:
		return "session finished"
	default:
		return "status update"
	}
}

// PublishFrame hands a finished frame to every view.
func (m *UIModel) PublishFrame(f Frame) {
	m.frameEvent.Notify(f)
}

// PublishStatus pushes a line to the status/log listeners.
func (m *UIModel) PublishStatus(s string) {
	m.statusEvent.Notify(s)
}

// ListenToFrames registers ch for render frames. The latest frame is
// replayed to late listeners. Returns the deregistration function.
func (m *UIModel) ListenToFrames(ch chan<- Frame) func() {
	return m.frameEvent.Listen(ch)
}

// ListenToStatus registers ch for status lines.
func (m *UIModel) ListenToStatus(ch chan<- string) func() {
	return m.statusEvent.Listen(ch)
}

// LoadPreferences restores the persisted preferences, falling back to
// defaults for missing or out-of-range values.
func (m *UIModel) LoadPreferences(store PrefStore) {
	if store == nil {
		panic("UIModel: store cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := store.ReadInt(PrefKeyUnits); ok && v >= 0 && v <= int(UnitsImperial) {
		m.snap.Units = UnitSystem(v)
	}
	if v, ok := store.ReadInt(PrefKeyHero); ok && v >= 0 && v < int(heroMetricCount) {
		m.snap.Hero = HeroMetric(v)
	}
	if v, ok := store.ReadInt(PrefKeyFocus); ok && v >= 0 && v <= int(FocusHeroOnly) {
		m.snap.Focus = FocusMode(v)
	}
	m.logger.Printf("UIModel: loaded prefs units=%v hero=%v focus=%v", m.snap.Units, m.snap.Hero, m.snap.Focus)
}
