package watch

import (
	"fmt"
	"strconv"
)

// Placeholder is rendered wherever a reading has not arrived yet.
const Placeholder = "-"

const (
	millimetersPerKm   = 1_000_000
	millimetersPerMile = 1_609_344
)

// FormatDistance renders meters as "<whole>.<hundredths> km|mi".
// Metric truncates to two decimals; imperial rounds half-up, both in
// integer arithmetic.
func FormatDistance(meters int, units UnitSystem) string {
	if meters < 0 {
		meters = 0
	}
	if units == UnitsImperial {
		milesX100 := (int64(meters)*100000 + 804672) / 1609344
		return fmt.Sprintf("%d.%02d mi", milesX100/100, milesX100%100)
	}
	return fmt.Sprintf("%d.%02d km", meters/1000, (meters%1000)/10)
}

// paceParts converts a centi-units/second speed into whole minutes and
// round-half-up seconds per distance unit. ok is false for speeds at or
// below the "effectively stopped" threshold.
func paceParts(speedCenti int, units UnitSystem) (m, s int, ok bool) {
	if speedCenti <= 1 {
		return 0, 0, false
	}
	unitMM := int64(millimetersPerKm)
	if units == UnitsImperial {
		unitMM = millimetersPerMile
	}
	// seconds per unit = unitMM/1000 / (speedCenti/100), kept rational:
	num := unitMM * 100
	den := int64(speedCenti) * 1000

	m64 := num / (den * 60)
	rem := num - m64*den*60
	s64 := (rem*2 + den) / (2 * den) // round half up
	if s64 == 60 {
		s64 = 0
		m64++
	}
	return int(m64), int(s64), true
}

// FormatPace renders a speed as a unit-suffixed pace, e.g. `5'33"/km`.
func FormatPace(speedCenti int, units UnitSystem) string {
	m, s, ok := paceParts(speedCenti, units)
	if !ok {
		return Placeholder
	}
	suffix := "km"
	if units == UnitsImperial {
		suffix = "mi"
	}
	return fmt.Sprintf("%d'%02d\"/%s", m, s, suffix)
}

// FormatPaceValue renders a speed as "m:ss" with no suffix, for places
// where the unit is already shown in a label.
func FormatPaceValue(speedCenti int, units UnitSystem) string {
	m, s, ok := paceParts(speedCenti, units)
	if !ok {
		return Placeholder
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatCadence renders steps/min with its unit, matching the grid style.
func FormatCadence(spm int) string {
	return fmt.Sprintf("%d spm", spm)
}

// GridValueText renders the value string of one grid cell.
func GridValueText(m MetricID, r Readings, units UnitSystem) string {
	if !r.Has(m) {
		return Placeholder
	}
	switch m {
	case MetricHeartRate:
		return strconv.Itoa(int(r.HeartRate.Value))
	case MetricPace:
		return FormatPaceValue(int(r.Speed.Value), units)
	case MetricCadence:
		return FormatCadence(int(r.Cadence.Value))
	case MetricDistance:
		return FormatDistance(int(r.Distance.Value), units)
	case MetricPower:
		return strconv.Itoa(int(r.Power.Value))
	default:
		return Placeholder
	}
}

// HeroValueText renders the big hero string: bare numbers for heart rate
// and power, value-only pace with the unit in the hero label.
func HeroValueText(h HeroMetric, r Readings, units UnitSystem) string {
	switch h {
	case HeroPace:
		if !r.Speed.Known {
			return Placeholder
		}
		return FormatPaceValue(int(r.Speed.Value), units)
	case HeroPower:
		if !r.Power.Known {
			return Placeholder
		}
		return strconv.Itoa(int(r.Power.Value))
	default:
		if !r.HeartRate.Known {
			return Placeholder
		}
		return strconv.Itoa(int(r.HeartRate.Value))
	}
}

// TargetRangeText renders the workout target line.
func TargetRangeText(t ZoneTarget, units UnitSystem) string {
	n := t.Normalized()
	switch n.Kind {
	case ZonePower:
		return fmt.Sprintf("%d-%d W", n.Lo, n.Hi)
	case ZonePace:
		// Higher speed is the faster pace, so the hi bound renders first.
		suffix := "km"
		if units == UnitsImperial {
			suffix = "mi"
		}
		return fmt.Sprintf("%s-%s /%s", FormatPaceValue(int(n.Hi), units), FormatPaceValue(int(n.Lo), units), suffix)
	default:
		return ""
	}
}

// WorkoutReadoutText renders the live value of the target's own metric.
func WorkoutReadoutText(t ZoneTarget, r Readings, units UnitSystem) string {
	switch t.Kind {
	case ZonePower:
		if !r.Power.Known {
			return Placeholder
		}
		return strconv.Itoa(int(r.Power.Value))
	case ZonePace:
		if !r.Speed.Known {
			return Placeholder
		}
		return FormatPaceValue(int(r.Speed.Value), units)
	default:
		return Placeholder
	}
}
