package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allReadings() Readings {
	return Readings{
		HeartRate: Reading{Value: 150, Known: true},
		Speed:     Reading{Value: 300, Known: true},
		Cadence:   Reading{Value: 172, Known: true},
		Distance:  Reading{Value: 1234, Known: true},
		Power:     Reading{Value: 200, Known: true},
	}
}

func TestComputeLayout_Idempotent(t *testing.T) {
	bounds := Size{W: 180, H: 180}
	snaps := []Snapshot{
		{Hero: HeroHeartRate, Readings: allReadings()},
		{Hero: HeroPace, Focus: FocusHeroOnly},
		{Target: ZoneTarget{Kind: ZonePower, Lo: 180, Hi: 220}},
	}
	for _, st := range snaps {
		first := ComputeLayout(bounds, st)
		second := ComputeLayout(bounds, st)
		assert.Equal(t, first, second)
	}
}

func TestComputeLayout_HeroNeverInGrid(t *testing.T) {
	bounds := Size{W: 180, H: 180}
	for _, hero := range []HeroMetric{HeroHeartRate, HeroPace, HeroPower} {
		st := Snapshot{Hero: hero, Readings: allReadings()}
		plan := ComputeLayout(bounds, st)

		require.Equal(t, ViewFreeRun, plan.Mode)
		assert.Len(t, plan.Cells, 4, "hero %v leaves four grid metrics", hero)
		for _, cell := range plan.Cells {
			assert.NotEqual(t, hero.MetricID(), cell.Metric)
			assert.False(t, cell.Placeholder)
		}
	}
}

func TestComputeLayout_PlaceholderSeeding(t *testing.T) {
	plan := ComputeLayout(Size{W: 180, H: 180}, Snapshot{Hero: HeroHeartRate})

	require.Len(t, plan.Cells, 2)
	assert.Equal(t, MetricPace, plan.Cells[0].Metric)
	assert.Equal(t, MetricDistance, plan.Cells[1].Metric)
	assert.True(t, plan.Cells[0].Placeholder)
	assert.True(t, plan.Cells[1].Placeholder)
}

func TestComputeLayout_PlaceholderSkipsHero(t *testing.T) {
	plan := ComputeLayout(Size{W: 180, H: 180}, Snapshot{Hero: HeroPace})

	require.Len(t, plan.Cells, 2)
	assert.Equal(t, MetricDistance, plan.Cells[0].Metric)
	assert.Equal(t, MetricCadence, plan.Cells[1].Metric)
}

func TestComputeLayout_OneRealReadingEndsSeeding(t *testing.T) {
	st := Snapshot{Hero: HeroHeartRate}
	st.Readings.Cadence = Reading{Value: 168, Known: true}
	plan := ComputeLayout(Size{W: 180, H: 180}, st)

	require.Len(t, plan.Cells, 1)
	assert.Equal(t, MetricCadence, plan.Cells[0].Metric)
	assert.False(t, plan.Cells[0].Placeholder)
}

func TestComputeLayout_HeroReadingAloneStillSeeds(t *testing.T) {
	// A reading for the hero metric itself does not count as grid data.
	st := Snapshot{Hero: HeroHeartRate}
	st.Readings.HeartRate = Reading{Value: 150, Known: true}
	plan := ComputeLayout(Size{W: 180, H: 180}, st)

	require.Len(t, plan.Cells, 2)
	assert.True(t, plan.Cells[0].Placeholder)
}

func TestComputeLayout_HeroOnlyHidesGrid(t *testing.T) {
	st := Snapshot{Hero: HeroHeartRate, Focus: FocusHeroOnly, Readings: allReadings()}
	plan := ComputeLayout(Size{W: 180, H: 180}, st)

	assert.Empty(t, plan.Cells)
	assert.True(t, plan.HeroLabel.Visible)
	assert.True(t, plan.HeroValue.Visible)
	// The hero region swallows the grid's space.
	assert.Greater(t, plan.HeroValue.Rect.H, 100)
}

func TestComputeLayout_WorkoutGeometry(t *testing.T) {
	st := Snapshot{Target: ZoneTarget{Kind: ZonePower, Lo: 180, Hi: 220}}
	plan := ComputeLayout(Size{W: 180, H: 180}, st)

	require.Equal(t, ViewWorkout, plan.Mode)
	require.True(t, plan.Gauge.Visible)

	// 60% of the height goes to the gauge; the pivot sits at 70% of that.
	assert.Equal(t, 108, plan.Gauge.Rect.H)
	assert.Equal(t, 90, plan.Gauge.CX)
	assert.Equal(t, 75, plan.Gauge.CY)
	assert.Equal(t, 47, plan.Gauge.Radius)
	assert.Equal(t, 10, plan.Gauge.BarWidth, "bar width floors at 10")

	assert.True(t, plan.Readout.Visible)
	assert.True(t, plan.Progress.Visible)
	assert.True(t, plan.StatusLine.Visible)
	assert.True(t, plan.TargetLine.Visible)
	assert.True(t, plan.HeartLine.Visible)

	// The three text lines stack below the progress bar without overlap.
	assert.Greater(t, plan.Progress.Rect.Y, plan.Readout.Rect.Y)
	assert.Greater(t, plan.StatusLine.Rect.Y, plan.Progress.Rect.Y)
	assert.Greater(t, plan.TargetLine.Rect.Y, plan.StatusLine.Rect.Y)
	assert.Greater(t, plan.HeartLine.Rect.Y, plan.TargetLine.Rect.Y)
}

func TestComputeLayout_WorkoutIgnoresFocus(t *testing.T) {
	target := ZoneTarget{Kind: ZonePace, Lo: 260, Hi: 300}
	grid := ComputeLayout(Size{W: 180, H: 180}, Snapshot{Target: target, Focus: FocusGrid})
	hero := ComputeLayout(Size{W: 180, H: 180}, Snapshot{Target: target, Focus: FocusHeroOnly})
	assert.Equal(t, grid, hero)
}

func TestComputeLayout_TinyBoundsDoNotPanic(t *testing.T) {
	for _, bounds := range []Size{{}, {W: 1, H: 1}, {W: 64, H: 64}} {
		assert.NotPanics(t, func() {
			ComputeLayout(bounds, Snapshot{Readings: allReadings()})
			ComputeLayout(bounds, Snapshot{Target: ZoneTarget{Kind: ZonePower, Lo: 1, Hi: 2}})
		})
	}
}

func TestFontTiers_MonotonicInHeight(t *testing.T) {
	tierFns := map[string]func(int) int{
		"heroLabel": func(h int) int { return int(heroLabelTier(h)) },
		"gridLabel": func(h int) int { return int(gridLabelTier(h)) },
		"gridValue": func(h int) int { return int(gridValueTier(h)) },
		"readout":   func(h int) int { return int(readoutTier(h)) },
	}
	for name, fn := range tierFns {
		prev := fn(1)
		for h := 2; h <= 120; h++ {
			cur := fn(h)
			assert.GreaterOrEqual(t, cur, prev, "%s tier shrank at height %d", name, h)
			prev = cur
		}
	}
}
