package watch

// ZoneTarget is the active workout band as delivered by the transport.
// Lo/Hi arrive in the kind's own unit (watts, or centi-speed for pace)
// and are not guaranteed ordered.
type ZoneTarget struct {
	Kind ZoneKind
	Lo   int32
	Hi   int32
}

// Active reports whether a band is set; an active band forces Workout view.
func (t ZoneTarget) Active() bool { return t.Kind != ZoneNone }

// Normalized returns the target with Lo <= Hi.
func (t ZoneTarget) Normalized() ZoneTarget {
	if t.Hi < t.Lo {
		t.Lo, t.Hi = t.Hi, t.Lo
	}
	return t
}

// LiveValue picks the reading the band constrains.
func (t ZoneTarget) LiveValue(r Readings) (float64, bool) {
	switch t.Kind {
	case ZonePower:
		if r.Power.Known {
			return float64(r.Power.Value), true
		}
	case ZonePace:
		if r.Speed.Known {
			return float64(r.Speed.Value), true
		}
	}
	return 0, false
}

// ZoneClass is the three-way position of a live value against the band.
type ZoneClass int

const (
	ZoneOut ZoneClass = iota
	ZoneNear
	ZoneIn
)

func (z ZoneClass) String() string {
	switch z {
	case ZoneIn:
		return "in"
	case ZoneNear:
		return "near"
	default:
		return "out"
	}
}

// ZoneBand is the normalized band plus its gauge display domain.
// The domain spans half to one-and-a-half times the band center, so the
// needle has room on both sides even for a very narrow band.
type ZoneBand struct {
	Lo, Hi    float64
	Center    float64
	DomainMin float64
	DomainMax float64
}

func NewZoneBand(t ZoneTarget) ZoneBand {
	n := t.Normalized()
	lo := float64(n.Lo)
	hi := float64(n.Hi)
	center := (lo + hi) / 2
	dMin := center * 0.5
	dMax := center * 1.5
	if dMax <= dMin {
		dMax = dMin + 1
	}
	return ZoneBand{Lo: lo, Hi: hi, Center: center, DomainMin: dMin, DomainMax: dMax}
}

// Classify places v against the band. The near window is a tenth of the
// band center on either side, deliberately center-relative so it stays
// meaningful for narrow bands.
func (b ZoneBand) Classify(v float64) ZoneClass {
	if v >= b.Lo && v <= b.Hi {
		return ZoneIn
	}
	dist := b.Lo - v
	if v > b.Hi {
		dist = v - b.Hi
	}
	if dist <= 0.10*b.Center {
		return ZoneNear
	}
	return ZoneOut
}

// Fraction maps v onto the gauge domain, clamped to [0,1].
func (b ZoneBand) Fraction(v float64) float64 {
	return clamp01((v - b.DomainMin) / (b.DomainMax - b.DomainMin))
}

// BandFractions returns the band edges mapped onto the gauge domain.
func (b ZoneBand) BandFractions() (t0, t1 float64) {
	return b.Fraction(b.Lo), b.Fraction(b.Hi)
}

// StatusText is the compliance word shown under the gauge.
func (b ZoneBand) StatusText(v float64) string {
	switch b.Classify(v) {
	case ZoneIn:
		return "In Target"
	case ZoneNear:
		return "Close to Target"
	}
	if v < b.Lo {
		return "Below Target"
	}
	return "Above Target"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
