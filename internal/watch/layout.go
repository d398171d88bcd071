package watch

import (
	"github.com/runwear/run-watch/watch-app/internal/display"
)

type Size struct {
	W, H int
}

type Rect struct {
	X, Y, W, H int
}

// TextPlan is the placement of one text region.
type TextPlan struct {
	Rect    Rect
	Tier    display.FontTier
	Align   display.Align
	Visible bool
}

// CellPlan is one grid cell: a label row over a value row.
type CellPlan struct {
	Metric      MetricID
	Label       TextPlan
	Value       TextPlan
	Placeholder bool // seeded before any reading arrived
}

// GaugePlan is the radial gauge geometry.
type GaugePlan struct {
	Rect     Rect
	CX, CY   int
	Radius   int
	BarWidth int
	Visible  bool
}

// RegionPlan is a plain rectangle with visibility, for non-text regions.
type RegionPlan struct {
	Rect    Rect
	Visible bool
}

// GeometryPlan is everything one render pass needs to know about where
// things go. It carries no strings: formatting stays separate.
type GeometryPlan struct {
	Mode ViewMode

	// Free-run elements.
	HeroLabel TextPlan
	HeroValue TextPlan
	Cells     []CellPlan

	// Workout elements.
	Gauge      GaugePlan
	Readout    TextPlan
	Progress   RegionPlan
	StatusLine TextPlan
	TargetLine TextPlan
	HeartLine  TextPlan
}

// Fixed layout constants, shared by both views.
const (
	padTop = 4
	padBot = 4
	padLR  = 6

	heroLabelH    = 18
	heroValueFlr  = 24
	heroHeightPct = 42
	heroHeightFlr = 52

	gridGap       = 1
	gridHeightFlr = 24
	cellHeightFlr = 26
	cellLabelH    = 16

	gaugeHeightPct = 60
	progressH      = 6
	workoutLineH   = 16
	workoutGap     = 2
	readoutFlr     = 24
)

// ComputeLayout is a pure function from bounds + state to a geometry
// plan. It must stay idempotent: it runs on every reading arrival and
// every bounds change.
func ComputeLayout(bounds Size, st Snapshot) GeometryPlan {
	if st.ViewMode() == ViewWorkout {
		return computeWorkoutLayout(bounds)
	}
	return computeFreeRunLayout(bounds, st)
}

func computeFreeRunLayout(bounds Size, st Snapshot) GeometryPlan {
	w, h := bounds.W, bounds.H
	heroOnly := st.Focus == FocusHeroOnly

	padMid := 4
	sidePad := padLR
	if heroOnly {
		padMid = 6
		sidePad = 4
		if w >= 180 {
			sidePad = 6
		}
	}

	heroH := h * heroHeightPct / 100
	if heroOnly {
		heroH = h - padTop - padBot
	}
	if heroH < heroHeightFlr {
		heroH = heroHeightFlr
	}

	hero := Rect{X: sidePad, Y: padTop, W: w - 2*sidePad, H: heroH}

	valueH := heroH - heroLabelH - 4
	if valueH < heroValueFlr {
		valueH = heroValueFlr
	}

	plan := GeometryPlan{
		Mode: ViewFreeRun,
		HeroLabel: TextPlan{
			Rect:    Rect{X: hero.X, Y: hero.Y, W: hero.W, H: heroLabelH},
			Tier:    heroLabelTier(heroLabelH),
			Align:   display.AlignCenter,
			Visible: true,
		},
		HeroValue: TextPlan{
			Rect:    Rect{X: hero.X, Y: hero.Y + heroLabelH + 2, W: hero.W, H: valueH},
			Tier:    heroValueTier(valueH, heroOnly),
			Align:   display.AlignCenter,
			Visible: true,
		},
	}

	if heroOnly {
		return plan
	}

	active := activeGridMetrics(st)

	gridTop := hero.Y + hero.H + gridGap
	gridH := h - gridTop - padBot
	if gridH < gridHeightFlr {
		gridH = gridHeightFlr
	}

	cols := 2
	rows := (len(active.metrics) + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}

	cellW := (w - 2*sidePad - (cols-1)*padMid) / cols
	cellH := (gridH - (rows-1)*padMid) / rows
	if cellH < cellHeightFlr {
		cellH = cellHeightFlr
	}
	cellValueH := cellH - cellLabelH - 2

	for i, m := range active.metrics {
		r := i / cols
		c := i % cols
		x := sidePad + c*(cellW+padMid)
		y := gridTop + r*(cellH+padMid)

		plan.Cells = append(plan.Cells, CellPlan{
			Metric:      m,
			Placeholder: active.placeholder,
			Label: TextPlan{
				Rect:    Rect{X: x, Y: y, W: cellW, H: cellLabelH},
				Tier:    gridLabelTier(cellLabelH),
				Align:   display.AlignCenter,
				Visible: true,
			},
			Value: TextPlan{
				Rect:    Rect{X: x, Y: y + cellLabelH + 2, W: cellW, H: cellValueH},
				Tier:    gridValueTier(cellValueH),
				Align:   display.AlignCenter,
				Visible: true,
			},
		})
	}

	return plan
}

type gridSelection struct {
	metrics     []MetricID
	placeholder bool
}

// activeGridMetrics lists every non-hero metric whose reading has
// arrived, in fixed grid order. Before any data, it seeds up to two
// placeholder cells so the screen is never empty.
func activeGridMetrics(st Snapshot) gridSelection {
	heroID := st.Hero.MetricID()

	var sel gridSelection
	for _, m := range gridOrder {
		if m == heroID {
			continue
		}
		if st.Readings.Has(m) {
			sel.metrics = append(sel.metrics, m)
		}
	}
	if len(sel.metrics) > 0 {
		return sel
	}

	sel.placeholder = true
	for _, m := range placeholderOrder {
		if len(sel.metrics) == 2 {
			break
		}
		if m == heroID {
			continue
		}
		sel.metrics = append(sel.metrics, m)
	}
	return sel
}

func computeWorkoutLayout(bounds Size) GeometryPlan {
	w, h := bounds.W, bounds.H

	gaugeH := h * gaugeHeightPct / 100
	radius := min(w, gaugeH) * 44 / 100
	barW := radius * 14 / 100
	if barW < 10 {
		barW = 10
	}

	readoutH := h - gaugeH - progressH - 3*workoutLineH - 4*workoutGap
	if readoutH < readoutFlr {
		readoutH = readoutFlr
	}

	y := gaugeH + workoutGap
	readout := Rect{X: padLR, Y: y, W: w - 2*padLR, H: readoutH}
	y += readoutH + workoutGap
	progress := Rect{X: padLR, Y: y, W: w - 2*padLR, H: progressH}
	y += progressH + workoutGap

	lineRect := func() Rect {
		r := Rect{X: padLR, Y: y, W: w - 2*padLR, H: workoutLineH}
		y += workoutLineH
		return r
	}

	line := func(r Rect) TextPlan {
		return TextPlan{Rect: r, Tier: display.FontLabelLarge, Align: display.AlignCenter, Visible: true}
	}

	return GeometryPlan{
		Mode: ViewWorkout,
		Gauge: GaugePlan{
			Rect:     Rect{X: 0, Y: 0, W: w, H: gaugeH},
			CX:       w / 2,
			CY:       gaugeH * 70 / 100,
			Radius:   radius,
			BarWidth: barW,
			Visible:  true,
		},
		Readout: TextPlan{
			Rect:    readout,
			Tier:    readoutTier(readoutH),
			Align:   display.AlignCenter,
			Visible: true,
		},
		Progress:   RegionPlan{Rect: progress, Visible: true},
		StatusLine: line(lineRect()),
		TargetLine: line(lineRect()),
		HeartLine:  line(lineRect()),
	}
}

// Font tiers step monotonically with available height. Thresholds are
// presentation tuning; the contract is monotonic + deterministic.

func heroLabelTier(h int) display.FontTier {
	switch {
	case h >= 22:
		return display.FontLabelTitle
	case h >= 18:
		return display.FontLabelLarge
	default:
		return display.FontLabelSmall
	}
}

func heroValueTier(h int, heroOnly bool) display.FontTier {
	if heroOnly {
		if h >= 38 {
			return display.FontNumericLarge
		}
		return display.FontNumericMedium
	}
	if h >= 56 {
		return display.FontNumericLarge
	}
	return display.FontNumericMedium
}

func gridLabelTier(h int) display.FontTier {
	if h >= 18 {
		return display.FontLabelLarge
	}
	return display.FontLabelSmall
}

func gridValueTier(h int) display.FontTier {
	switch {
	case h >= 34:
		return display.FontValueXL
	case h >= 26:
		return display.FontValueLarge
	case h >= 20:
		return display.FontValueMedium
	default:
		return display.FontValueSmall
	}
}

func readoutTier(h int) display.FontTier {
	if h >= 38 {
		return display.FontNumericLarge
	}
	return display.FontNumericMedium
}
