package display

import (
	"image/color"
)

// FontTier is an abstract font size step. Canvas implementations map
// tiers onto whatever typefaces the platform actually has; the layout
// engine only promises that a higher tier never renders smaller.
type FontTier int

const (
	FontLabelSmall FontTier = iota
	FontLabelLarge
	FontLabelTitle
	FontValueSmall
	FontValueMedium
	FontValueLarge
	FontValueXL
	FontNumericMedium
	FontNumericLarge
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas is the draw-primitive surface the rendering code targets.
// Coordinates are pixels, origin top-left, y down. Arc angles are
// degrees in screen convention (0 = +x, 90 = +y/down) so an arc from
// 195 to 345 bulges toward the top of the screen.
type Canvas interface {
	Size() (w, h int)
	ColorCapable() bool
	Clear(c color.RGBA)
	FillRect(x, y, w, h int, c color.RGBA)
	StrokeLine(x0, y0, x1, y1, width int, c color.RGBA)
	StrokeArc(cx, cy, r int, fromDeg, toDeg float64, width int, c color.RGBA)
	FillCircle(cx, cy, r int, c color.RGBA)
	DrawText(x, y, w, h int, s string, tier FontTier, align Align, c color.RGBA)
}

// Shared palette. Monochrome canvases report ColorCapable() == false and
// callers are expected to fall back to ColorNeutral for classification
// coloring; the palette itself stays valid either way.
var (
	ColorBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	ColorText       = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorDim        = color.RGBA{R: 0x46, G: 0x46, B: 0x50, A: 0xFF}
	ColorBand       = color.RGBA{R: 0xB4, G: 0xB4, B: 0xC8, A: 0xFF}
	ColorNeutral    = color.RGBA{R: 0xDC, G: 0xDC, B: 0xDC, A: 0xFF}
	ColorShadow     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	ColorInZone     = color.RGBA{R: 0x21, G: 0xC0, B: 0x6B, A: 0xFF}
	ColorNearZone   = color.RGBA{R: 0xF5, G: 0xA6, B: 0x23, A: 0xFF}
	ColorOutZone    = color.RGBA{R: 0xE0, G: 0x40, B: 0x40, A: 0xFF}
)
