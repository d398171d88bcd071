package watch

import (
	"image/color"

	"github.com/runwear/run-watch/watch-app/internal/display"
)

// RenderFrame paints one frame onto any canvas. All the decisions were
// made upstream (geometry plan, zone math); this only merges them with
// the formatted strings.
func RenderFrame(c display.Canvas, f Frame) {
	c.Clear(display.ColorBackground)

	if f.Plan.Mode == ViewWorkout {
		renderWorkout(c, f)
		return
	}
	renderFreeRun(c, f)
}

func renderFreeRun(c display.Canvas, f Frame) {
	st := f.State

	drawTextPlan(c, f.Plan.HeroLabel, HeroLabel(st.Hero, st.Units), display.ColorDim)
	drawTextPlan(c, f.Plan.HeroValue, HeroValueText(st.Hero, st.Readings, st.Units), display.ColorText)

	for _, cell := range f.Plan.Cells {
		valueCol := display.ColorText
		if cell.Placeholder {
			valueCol = display.ColorDim
		}
		drawTextPlan(c, cell.Label, MetricLabel(cell.Metric, st.Units), display.ColorDim)
		drawTextPlan(c, cell.Value, GridValueText(cell.Metric, st.Readings, st.Units), valueCol)
	}
}

func renderWorkout(c display.Canvas, f Frame) {
	st := f.State

	drawGauge(c, f)
	drawTextPlan(c, f.Plan.Readout, WorkoutReadoutText(st.Target, st.Readings, st.Units), display.ColorText)
	drawProgress(c, f)

	status := Placeholder
	statusCol := display.ColorDim
	if f.HasLive {
		status = f.Band.StatusText(f.Live)
		statusCol = classColor(f.Class, c.ColorCapable())
	}
	drawTextPlan(c, f.Plan.StatusLine, status, statusCol)
	drawTextPlan(c, f.Plan.TargetLine, TargetRangeText(st.Target, st.Units), display.ColorBand)

	hr := Placeholder
	if st.Readings.HeartRate.Known {
		hr = GridValueText(MetricHeartRate, st.Readings, st.Units)
	}
	drawTextPlan(c, f.Plan.HeartLine, "HR "+hr, display.ColorText)
}

func drawTextPlan(c display.Canvas, p TextPlan, s string, col color.RGBA) {
	if !p.Visible || s == "" {
		return
	}
	c.DrawText(p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H, s, p.Tier, p.Align, col)
}
