package watch

// MetricID identifies one displayable metric. Pace is a presentation of
// the speed reading; everything else maps 1:1 onto a reading.
type MetricID int

const (
	MetricHeartRate MetricID = iota
	MetricPace
	MetricCadence
	MetricDistance
	MetricPower
	metricIDCount
)

// gridOrder is the fixed cell order of the free-run grid.
var gridOrder = [...]MetricID{MetricHeartRate, MetricPace, MetricCadence, MetricDistance, MetricPower}

// placeholderOrder seeds the grid before any reading has arrived.
var placeholderOrder = [...]MetricID{MetricPace, MetricDistance, MetricCadence}

func (m MetricID) String() string {
	switch m {
	case MetricHeartRate:
		return "heart-rate"
	case MetricPace:
		return "pace"
	case MetricCadence:
		return "cadence"
	case MetricDistance:
		return "distance"
	case MetricPower:
		return "power"
	default:
		return "unknown"
	}
}

// UnitSystem selects metric or imperial formatting. It never changes how
// readings are stored, only how they render.
type UnitSystem int

const (
	UnitsMetric UnitSystem = iota
	UnitsImperial
)

func (u UnitSystem) Toggled() UnitSystem {
	if u == UnitsMetric {
		return UnitsImperial
	}
	return UnitsMetric
}

func (u UnitSystem) String() string {
	if u == UnitsImperial {
		return "imperial"
	}
	return "metric"
}

// HeroMetric selects which metric gets the large treatment.
type HeroMetric int

const (
	HeroHeartRate HeroMetric = iota
	HeroPace
	HeroPower
	heroMetricCount
)

func (h HeroMetric) Next() HeroMetric { return (h + 1) % heroMetricCount }
func (h HeroMetric) Prev() HeroMetric { return (h + 2) % heroMetricCount }

func (h HeroMetric) MetricID() MetricID {
	switch h {
	case HeroPace:
		return MetricPace
	case HeroPower:
		return MetricPower
	default:
		return MetricHeartRate
	}
}

func (h HeroMetric) String() string {
	switch h {
	case HeroPace:
		return "pace"
	case HeroPower:
		return "power"
	default:
		return "heart-rate"
	}
}

// FocusMode is the free-run density setting.
type FocusMode int

const (
	FocusGrid FocusMode = iota
	FocusHeroOnly
)

func (f FocusMode) Toggled() FocusMode {
	if f == FocusGrid {
		return FocusHeroOnly
	}
	return FocusGrid
}

func (f FocusMode) String() string {
	if f == FocusHeroOnly {
		return "hero-only"
	}
	return "grid"
}

// ViewMode is derived state: Workout whenever a target zone is active.
type ViewMode int

const (
	ViewFreeRun ViewMode = iota
	ViewWorkout
)

func (v ViewMode) String() string {
	if v == ViewWorkout {
		return "workout"
	}
	return "free-run"
}

// ZoneKind says which reading a target band constrains.
type ZoneKind int

const (
	ZoneNone ZoneKind = iota
	ZonePower
	ZonePace
)

func (z ZoneKind) String() string {
	switch z {
	case ZonePower:
		return "power"
	case ZonePace:
		return "pace"
	default:
		return "none"
	}
}

// Gesture is one of the four logical user inputs.
type Gesture int

const (
	GestureNextHero Gesture = iota
	GesturePrevHero
	GestureToggleUnits
	GestureToggleFocus
)

func (g Gesture) String() string {
	switch g {
	case GestureNextHero:
		return "next-hero"
	case GesturePrevHero:
		return "prev-hero"
	case GestureToggleUnits:
		return "toggle-units"
	case GestureToggleFocus:
		return "toggle-focus"
	default:
		return "unknown"
	}
}

// FieldTag keys one optional field of an inbound message.
type FieldTag int

const (
	TagHeartRate  FieldTag = 1 // beats/min
	TagSpeed      FieldTag = 2 // centi-units/second
	TagCadence    FieldTag = 3 // steps/min
	TagDistance   FieldTag = 4 // meters
	TagStatus     FieldTag = 5 // free-form status code, ignored by the core
	TagUnits      FieldTag = 6 // 0=metric 1=imperial
	TagPower      FieldTag = 7 // watts
	TagTargetKind FieldTag = 8 // ZoneKind ordinal
	TagTargetLo   FieldTag = 9
	TagTargetHi   FieldTag = 10
)

// Preference store keys. Kept apart from the message tag space.
const (
	PrefKeyUnits = 100
	PrefKeyHero  = 101
	PrefKeyFocus = 102
)

// Standard BLE fitness service/characteristic UUIDs used by the sensor feed.
const (
	HeartRateServiceUUID          = "0000180d-0000-1000-8000-00805f9b34fb"
	HeartRateMeasurementUUID      = "00002a37-0000-1000-8000-00805f9b34fb"
	RunningSpeedCadenceServiceUUID = "00001814-0000-1000-8000-00805f9b34fb"
	RSCMeasurementUUID            = "00002a53-0000-1000-8000-00805f9b34fb"
	CyclingPowerServiceUUID       = "00001818-0000-1000-8000-00805f9b34fb"
	CyclingPowerMeasurementUUID   = "00002a63-0000-1000-8000-00805f9b34fb"
)

// MetricLabel is the short grid-cell label for a metric.
func MetricLabel(m MetricID, units UnitSystem) string {
	switch m {
	case MetricHeartRate:
		return "HR"
	case MetricPace:
		if units == UnitsImperial {
			return "PACE / MI"
		}
		return "PACE / KM"
	case MetricCadence:
		return "CAD"
	case MetricDistance:
		return "DIST"
	case MetricPower:
		return "PWR"
	default:
		return ""
	}
}

// HeroLabel is the full-width label above the hero value.
func HeroLabel(h HeroMetric, units UnitSystem) string {
	switch h {
	case HeroPace:
		if units == UnitsImperial {
			return "PACE / MI"
		}
		return "PACE / KM"
	case HeroPower:
		return "POWER"
	default:
		return "HEART RATE"
	}
}
