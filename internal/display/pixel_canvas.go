package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// PixelCanvas renders onto any drivers.Displayer, so the same frame code
// drives a real watch panel or an in-memory framebuffer. Text goes
// through tinyfont with a per-tier typeface table.
type PixelCanvas struct {
	d     drivers.Displayer
	w, h  int
	color bool
}

type tierFace struct {
	font   tinyfont.Fonter
	ascent int16 // baseline offset from the top of the text box
}

var tierFaces = map[FontTier]tierFace{
	FontLabelSmall:    {font: &freesans.Regular9pt7b, ascent: 13},
	FontLabelLarge:    {font: &freesans.Regular9pt7b, ascent: 13},
	FontLabelTitle:    {font: &freesans.Regular12pt7b, ascent: 18},
	FontValueSmall:    {font: &freesans.Bold9pt7b, ascent: 13},
	FontValueMedium:   {font: &freesans.Bold9pt7b, ascent: 13},
	FontValueLarge:    {font: &freesans.Bold12pt7b, ascent: 18},
	FontValueXL:       {font: &freesans.Bold12pt7b, ascent: 18},
	FontNumericMedium: {font: &freesans.Bold18pt7b, ascent: 26},
	FontNumericLarge:  {font: &freesans.Bold24pt7b, ascent: 35},
}

func NewPixelCanvas(d drivers.Displayer, colorCapable bool) *PixelCanvas {
	if d == nil {
		panic("PixelCanvas: displayer cannot be nil")
	}
	w, h := d.Size()
	return &PixelCanvas{d: d, w: int(w), h: int(h), color: colorCapable}
}

func (p *PixelCanvas) Size() (int, int)   { return p.w, p.h }
func (p *PixelCanvas) ColorCapable() bool { return p.color }

func (p *PixelCanvas) set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	p.d.SetPixel(int16(x), int16(y), c)
}

func (p *PixelCanvas) Clear(c color.RGBA) {
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			p.d.SetPixel(int16(x), int16(y), c)
		}
	}
}

func (p *PixelCanvas) FillRect(x, y, w, h int, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			p.set(xx, yy, c)
		}
	}
}

func (p *PixelCanvas) StrokeLine(x0, y0, x1, y1, width int, c color.RGBA) {
	rasterLine(x0, y0, x1, y1, width, func(x, y int) { p.set(x, y, c) })
}

func (p *PixelCanvas) StrokeArc(cx, cy, r int, fromDeg, toDeg float64, width int, c color.RGBA) {
	rasterArc(cx, cy, r, fromDeg, toDeg, width, func(x, y int) { p.set(x, y, c) })
}

func (p *PixelCanvas) FillCircle(cx, cy, r int, c color.RGBA) {
	rasterFillCircle(cx, cy, r, func(x, y int) { p.set(x, y, c) })
}

func (p *PixelCanvas) DrawText(x, y, w, h int, s string, tier FontTier, align Align, c color.RGBA) {
	if s == "" {
		return
	}
	face, ok := tierFaces[tier]
	if !ok {
		face = tierFaces[FontLabelSmall]
	}
	textW, _ := tinyfont.LineWidth(face.font, s)
	var tx int
	switch align {
	case AlignLeft:
		tx = x
	case AlignRight:
		tx = x + w - int(textW)
	default:
		tx = x + (w-int(textW))/2
	}
	baseline := y + (h+int(face.ascent))/2
	tinyfont.WriteLine(p.d, face.font, int16(tx), int16(baseline), s, c)
}

// Flush pushes the frame to the panel.
func (p *PixelCanvas) Flush() error {
	return p.d.Display()
}
