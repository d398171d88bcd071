package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistance_Metric(t *testing.T) {
	assert.Equal(t, "0.00 km", FormatDistance(0, UnitsMetric))
	assert.Equal(t, "0.99 km", FormatDistance(999, UnitsMetric))
	assert.Equal(t, "1.23 km", FormatDistance(1234, UnitsMetric))
	// Truncation, not rounding: 1239 m is still 1.23 km.
	assert.Equal(t, "1.23 km", FormatDistance(1239, UnitsMetric))
	assert.Equal(t, "12.03 km", FormatDistance(12034, UnitsMetric))
	assert.Equal(t, "0.00 km", FormatDistance(-5, UnitsMetric))
}

func TestFormatDistance_Imperial(t *testing.T) {
	assert.Equal(t, "0.00 mi", FormatDistance(0, UnitsImperial))
	// One statute mile is 1609.344 m; 1609 m rounds to exactly 1.00 mi.
	assert.Equal(t, "1.00 mi", FormatDistance(1609, UnitsImperial))
	assert.Equal(t, "0.62 mi", FormatDistance(1000, UnitsImperial))
	assert.Equal(t, "3.11 mi", FormatDistance(5000, UnitsImperial))
}

func TestFormatPace_Metric(t *testing.T) {
	// 3.00 m/s is 333.3 s/km.
	assert.Equal(t, `5'33"/km`, FormatPace(300, UnitsMetric))
	assert.Equal(t, "5:33", FormatPaceValue(300, UnitsMetric))

	// 2.50 m/s is exactly 400 s/km.
	assert.Equal(t, `6'40"/km`, FormatPace(250, UnitsMetric))
}

func TestFormatPace_Imperial(t *testing.T) {
	assert.Equal(t, `8'56"/mi`, FormatPace(300, UnitsImperial))
	assert.Equal(t, "8:56", FormatPaceValue(300, UnitsImperial))
}

func TestFormatPace_SecondsRollOver(t *testing.T) {
	// 5.56 m/s is 179.86 s/km; the seconds round up to 60 and must
	// carry into the minutes.
	assert.Equal(t, `3'00"/km`, FormatPace(556, UnitsMetric))
}

func TestFormatPace_StoppedIsPlaceholder(t *testing.T) {
	assert.Equal(t, Placeholder, FormatPace(0, UnitsMetric))
	assert.Equal(t, Placeholder, FormatPace(1, UnitsMetric))
	assert.Equal(t, Placeholder, FormatPaceValue(-10, UnitsImperial))
	// 2 centi-m/s is above the stopped threshold, however absurd the pace.
	assert.NotEqual(t, Placeholder, FormatPace(2, UnitsMetric))
}

func TestGridValueText(t *testing.T) {
	var r Readings
	for _, m := range []MetricID{MetricHeartRate, MetricPace, MetricCadence, MetricDistance, MetricPower} {
		assert.Equal(t, Placeholder, GridValueText(m, r, UnitsMetric), "metric %v without a reading", m)
	}

	r.HeartRate = Reading{Value: 152, Known: true}
	r.Speed = Reading{Value: 300, Known: true}
	r.Cadence = Reading{Value: 172, Known: true}
	r.Distance = Reading{Value: 1234, Known: true}
	r.Power = Reading{Value: 210, Known: true}

	assert.Equal(t, "152", GridValueText(MetricHeartRate, r, UnitsMetric))
	assert.Equal(t, "5:33", GridValueText(MetricPace, r, UnitsMetric))
	assert.Equal(t, "172 spm", GridValueText(MetricCadence, r, UnitsMetric))
	assert.Equal(t, "1.23 km", GridValueText(MetricDistance, r, UnitsMetric))
	assert.Equal(t, "210", GridValueText(MetricPower, r, UnitsMetric))
}

func TestHeroValueText(t *testing.T) {
	var r Readings
	assert.Equal(t, Placeholder, HeroValueText(HeroHeartRate, r, UnitsMetric))
	assert.Equal(t, Placeholder, HeroValueText(HeroPace, r, UnitsMetric))
	assert.Equal(t, Placeholder, HeroValueText(HeroPower, r, UnitsMetric))

	r.HeartRate = Reading{Value: 148, Known: true}
	r.Speed = Reading{Value: 250, Known: true}
	r.Power = Reading{Value: 195, Known: true}

	assert.Equal(t, "148", HeroValueText(HeroHeartRate, r, UnitsMetric))
	assert.Equal(t, "6:40", HeroValueText(HeroPace, r, UnitsMetric))
	assert.Equal(t, "195", HeroValueText(HeroPower, r, UnitsMetric))
}

func TestTargetRangeText(t *testing.T) {
	assert.Equal(t, "180-220 W", TargetRangeText(ZoneTarget{Kind: ZonePower, Lo: 180, Hi: 220}, UnitsMetric))
	// Swapped bounds normalize before rendering.
	assert.Equal(t, "180-220 W", TargetRangeText(ZoneTarget{Kind: ZonePower, Lo: 220, Hi: 180}, UnitsMetric))

	// For pace the higher speed is the faster pace, so it renders first.
	assert.Equal(t, "5:33-6:25 /km", TargetRangeText(ZoneTarget{Kind: ZonePace, Lo: 260, Hi: 300}, UnitsMetric))

	assert.Equal(t, "", TargetRangeText(ZoneTarget{}, UnitsMetric))
}

func TestWorkoutReadoutText(t *testing.T) {
	var r Readings
	power := ZoneTarget{Kind: ZonePower, Lo: 180, Hi: 220}
	pace := ZoneTarget{Kind: ZonePace, Lo: 260, Hi: 300}

	assert.Equal(t, Placeholder, WorkoutReadoutText(power, r, UnitsMetric))
	assert.Equal(t, Placeholder, WorkoutReadoutText(pace, r, UnitsMetric))

	r.Power = Reading{Value: 205, Known: true}
	r.Speed = Reading{Value: 280, Known: true}

	assert.Equal(t, "205", WorkoutReadoutText(power, r, UnitsMetric))
	assert.Equal(t, "5:57", WorkoutReadoutText(pace, r, UnitsMetric))
	assert.Equal(t, Placeholder, WorkoutReadoutText(ZoneTarget{}, r, UnitsMetric))
}
