package display

import (
	"image/color"
)

// RecordCanvas records draw calls instead of painting them. It lets the
// layout and gauge code be exercised headless, with tests asserting on
// the recorded operation stream.
type RecordCanvas struct {
	w, h  int
	color bool
	Ops   []Op
}

type OpKind int

const (
	OpClear OpKind = iota
	OpFillRect
	OpStrokeLine
	OpStrokeArc
	OpFillCircle
	OpDrawText
)

type Op struct {
	Kind           OpKind
	X, Y, W, H     int
	X1, Y1         int
	R, Width       int
	FromDeg, ToDeg float64
	Text           string
	Tier           FontTier
	Align          Align
	Color          color.RGBA
}

func NewRecordCanvas(w, h int, colorCapable bool) *RecordCanvas {
	return &RecordCanvas{w: w, h: h, color: colorCapable}
}

func (r *RecordCanvas) Size() (int, int)   { return r.w, r.h }
func (r *RecordCanvas) ColorCapable() bool { return r.color }

func (r *RecordCanvas) Clear(c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c})
}

func (r *RecordCanvas) FillRect(x, y, w, h int, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *RecordCanvas) StrokeLine(x0, y0, x1, y1, width int, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeLine, X: x0, Y: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

func (r *RecordCanvas) StrokeArc(cx, cy, rad int, fromDeg, toDeg float64, width int, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeArc, X: cx, Y: cy, R: rad, FromDeg: fromDeg, ToDeg: toDeg, Width: width, Color: c})
}

func (r *RecordCanvas) FillCircle(cx, cy, rad int, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X: cx, Y: cy, R: rad, Color: c})
}

func (r *RecordCanvas) DrawText(x, y, w, h int, s string, tier FontTier, align Align, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawText, X: x, Y: y, W: w, H: h, Text: s, Tier: tier, Align: align, Color: c})
}

// OfKind returns the recorded operations of one kind, in draw order.
func (r *RecordCanvas) OfKind(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns every drawn string, in draw order.
func (r *RecordCanvas) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpDrawText {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether s was drawn.
func (r *RecordCanvas) HasText(s string) bool {
	for _, op := range r.Ops {
		if op.Kind == OpDrawText && op.Text == s {
			return true
		}
	}
	return false
}
