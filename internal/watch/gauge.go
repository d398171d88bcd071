package watch

import (
	"image/color"
	"math"

	"github.com/runwear/run-watch/watch-app/internal/display"
)

// The gauge sweeps 150° across the top of its circle (screen-convention
// degrees, so 195→345 passes through straight-up at 270). Chosen over a
// side-mounted arc so the needle never reads sideways on a round face.
const (
	gaugeStartDeg = 195.0
	gaugeEndDeg   = 345.0
	gaugeSweepDeg = gaugeEndDeg - gaugeStartDeg
)

func gaugeAngle(t float64) float64 {
	return gaugeStartDeg + t*gaugeSweepDeg
}

// classColor maps a zone classification to its reinforcement color, or
// to the neutral color on monochrome canvases.
func classColor(cl ZoneClass, colorCapable bool) color.RGBA {
	if !colorCapable {
		return display.ColorNeutral
	}
	switch cl {
	case ZoneIn:
		return display.ColorInZone
	case ZoneNear:
		return display.ColorNearZone
	default:
		return display.ColorOutZone
	}
}

// drawGauge paints the radial target indicator. Draw order matters for
// contrast: background arc, band arc, ticks, needle shadow, needle, hub.
func drawGauge(c display.Canvas, f Frame) {
	g := f.Plan.Gauge
	if !g.Visible || g.Radius <= 0 {
		return
	}

	c.StrokeArc(g.CX, g.CY, g.Radius, gaugeStartDeg, gaugeEndDeg, g.BarWidth, display.ColorDim)

	t0, t1 := f.Band.BandFractions()
	c.StrokeArc(g.CX, g.CY, g.Radius, gaugeAngle(t0), gaugeAngle(t1), g.BarWidth, display.ColorBand)

	// Band midpoint tick, plus quiet ticks at the domain ends and center.
	drawRadialTick(c, g, (t0+t1)/2, g.BarWidth+6, display.ColorText)
	for _, t := range [...]float64{0, 0.5, 1} {
		drawRadialTick(c, g, t, g.BarWidth+2, display.ColorDim)
	}

	if f.HasLive {
		drawNeedle(c, g, f.Band.Fraction(f.Live), classColor(f.Class, c.ColorCapable()))
	}

	hub := g.BarWidth / 3
	if hub < 3 {
		hub = 3
	}
	c.FillCircle(g.CX, g.CY, hub, display.ColorText)
}

func drawRadialTick(c display.Canvas, g GaugePlan, t float64, length int, col color.RGBA) {
	a := gaugeAngle(t) * math.Pi / 180
	inner := g.Radius - length/2
	outer := g.Radius + length/2
	x0 := g.CX + int(math.Round(float64(inner)*math.Cos(a)))
	y0 := g.CY + int(math.Round(float64(inner)*math.Sin(a)))
	x1 := g.CX + int(math.Round(float64(outer)*math.Cos(a)))
	y1 := g.CY + int(math.Round(float64(outer)*math.Sin(a)))
	c.StrokeLine(x0, y0, x1, y1, 2, col)
}

func drawNeedle(c display.Canvas, g GaugePlan, t float64, col color.RGBA) {
	reach := g.Radius - g.BarWidth - 2
	if reach < 1 {
		reach = 1
	}
	a := gaugeAngle(t) * math.Pi / 180
	x := g.CX + int(math.Round(float64(reach)*math.Cos(a)))
	y := g.CY + int(math.Round(float64(reach)*math.Sin(a)))

	// Shadow first so the colored stroke stays readable over the arcs.
	c.StrokeLine(g.CX, g.CY, x, y, 5, display.ColorShadow)
	c.StrokeLine(g.CX, g.CY, x, y, 3, col)
}

// drawProgress paints the thin linear bar under the readout: dim track,
// classification-colored fill proportional to the needle fraction.
func drawProgress(c display.Canvas, f Frame) {
	p := f.Plan.Progress
	if !p.Visible {
		return
	}
	r := p.Rect
	c.FillRect(r.X, r.Y, r.W, r.H, display.ColorDim)
	if !f.HasLive {
		return
	}
	fill := int(math.Round(float64(r.W) * f.Band.Fraction(f.Live)))
	if fill <= 0 {
		return
	}
	c.FillRect(r.X, r.Y, fill, r.H, classColor(f.Class, c.ColorCapable()))
}
