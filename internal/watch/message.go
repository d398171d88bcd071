package watch

// Message is one inbound update from the transport: a sparse set of
// integer fields keyed by tag. Every field is optional.
type Message map[FieldTag]int32

func (m Message) Get(tag FieldTag) (int32, bool) {
	v, ok := m[tag]
	return v, ok
}

// Reading is the sticky last-known value of one sensor channel. Known
// never reverts to false once a value has arrived.
type Reading struct {
	Value int32
	Known bool
}

// Readings holds the five sensor channels.
type Readings struct {
	HeartRate Reading
	Speed     Reading // centi-units/second
	Cadence   Reading // steps/min
	Distance  Reading // meters
	Power     Reading // watts
}

// Has reports whether the reading behind a display metric has arrived.
func (r Readings) Has(m MetricID) bool {
	switch m {
	case MetricHeartRate:
		return r.HeartRate.Known
	case MetricPace:
		return r.Speed.Known
	case MetricCadence:
		return r.Cadence.Known
	case MetricDistance:
		return r.Distance.Known
	case MetricPower:
		return r.Power.Known
	default:
		return false
	}
}
