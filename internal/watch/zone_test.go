package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneTarget_Normalized(t *testing.T) {
	n := ZoneTarget{Kind: ZonePower, Lo: 220, Hi: 180}.Normalized()
	assert.Equal(t, int32(180), n.Lo)
	assert.Equal(t, int32(220), n.Hi)

	same := ZoneTarget{Kind: ZonePower, Lo: 180, Hi: 220}.Normalized()
	assert.Equal(t, int32(180), same.Lo)
	assert.Equal(t, int32(220), same.Hi)
}

func TestZoneTarget_Active(t *testing.T) {
	assert.False(t, ZoneTarget{}.Active())
	assert.True(t, ZoneTarget{Kind: ZonePower, Lo: 100, Hi: 200}.Active())
	assert.True(t, ZoneTarget{Kind: ZonePace}.Active())
}

func TestZoneTarget_LiveValue(t *testing.T) {
	var r Readings
	r.Power = Reading{Value: 190, Known: true}
	r.Speed = Reading{Value: 280, Known: true}

	v, ok := ZoneTarget{Kind: ZonePower}.LiveValue(r)
	assert.True(t, ok)
	assert.Equal(t, 190.0, v)

	v, ok = ZoneTarget{Kind: ZonePace}.LiveValue(r)
	assert.True(t, ok)
	assert.Equal(t, 280.0, v)

	_, ok = ZoneTarget{}.LiveValue(r)
	assert.False(t, ok)

	_, ok = ZoneTarget{Kind: ZonePower}.LiveValue(Readings{})
	assert.False(t, ok)
}

func TestZoneBand_Classify(t *testing.T) {
	// Band 100..200, center 150, near window 15 on either side.
	b := NewZoneBand(ZoneTarget{Kind: ZonePower, Lo: 100, Hi: 200})

	assert.Equal(t, ZoneIn, b.Classify(100))
	assert.Equal(t, ZoneIn, b.Classify(150))
	assert.Equal(t, ZoneIn, b.Classify(200))

	assert.Equal(t, ZoneNear, b.Classify(99))
	assert.Equal(t, ZoneNear, b.Classify(85))
	assert.Equal(t, ZoneOut, b.Classify(84))

	assert.Equal(t, ZoneNear, b.Classify(215))
	assert.Equal(t, ZoneOut, b.Classify(216))
}

func TestZoneBand_SwappedBoundsClassifyIdentically(t *testing.T) {
	a := NewZoneBand(ZoneTarget{Kind: ZonePower, Lo: 100, Hi: 200})
	b := NewZoneBand(ZoneTarget{Kind: ZonePower, Lo: 200, Hi: 100})
	assert.Equal(t, a, b)
}

func TestZoneBand_Domain(t *testing.T) {
	b := NewZoneBand(ZoneTarget{Kind: ZonePower, Lo: 100, Hi: 200})
	assert.Equal(t, 75.0, b.DomainMin)
	assert.Equal(t, 225.0, b.DomainMax)

	// A zero-width band at zero would collapse the domain; the max is
	// forced one unit above the min so fractions stay defined.
	z := NewZoneBand(ZoneTarget{Kind: ZonePower})
	assert.Greater(t, z.DomainMax, z.DomainMin)
	assert.Equal(t, 0.0, z.Fraction(0))
}

func TestZoneBand_FractionClamps(t *testing.T) {
	b := NewZoneBand(ZoneTarget{Kind: ZonePower, Lo: 100, Hi: 200})
	assert.Equal(t, 0.0, b.Fraction(0))
	assert.Equal(t, 0.0, b.Fraction(75))
	assert.Equal(t, 0.5, b.Fraction(150))
	assert.Equal(t, 1.0, b.Fraction(225))
	assert.Equal(t, 1.0, b.Fraction(10000))
}

func TestZoneBand_BandFractions(t *testing.T) {
	b := NewZoneBand(ZoneTarget{Kind: ZonePower, Lo: 100, Hi: 200})
	t0, t1 := b.BandFractions()
	assert.InDelta(t, 1.0/6.0, t0, 1e-9)
	assert.InDelta(t, 5.0/6.0, t1, 1e-9)
}

func TestZoneBand_StatusText(t *testing.T) {
	b := NewZoneBand(ZoneTarget{Kind: ZonePower, Lo: 100, Hi: 200})
	assert.Equal(t, "In Target", b.StatusText(150))
	assert.Equal(t, "Close to Target", b.StatusText(99))
	assert.Equal(t, "Close to Target", b.StatusText(210))
	assert.Equal(t, "Below Target", b.StatusText(50))
	assert.Equal(t, "Above Target", b.StatusText(300))
}
