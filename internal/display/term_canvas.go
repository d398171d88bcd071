package display

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// TermCanvas rasterizes frames into an off-screen pixel buffer and blits
// it onto a tcell screen region, two vertical pixels per terminal cell
// (upper-half-block glyphs: foreground paints the top pixel, background
// the bottom). Text is overlaid as real terminal characters since cells
// are far more legible than rasterized glyphs at this scale.
type TermCanvas struct {
	w, h  int
	color bool
	px    []color.RGBA
	texts []termText
}

type termText struct {
	x, y, w, h int
	s          string
	tier       FontTier
	align      Align
	c          color.RGBA
}

func NewTermCanvas(w, h int, colorCapable bool) *TermCanvas {
	if w <= 0 || h <= 0 {
		panic("TermCanvas: width and height must be > 0")
	}
	if h%2 != 0 {
		h++ // full cells only
	}
	return &TermCanvas{
		w:     w,
		h:     h,
		color: colorCapable,
		px:    make([]color.RGBA, w*h),
	}
}

func (t *TermCanvas) Size() (int, int)   { return t.w, t.h }
func (t *TermCanvas) ColorCapable() bool { return t.color }

// CellSize returns the terminal columns and rows needed to show the canvas.
func (t *TermCanvas) CellSize() (cols, rows int) { return t.w, t.h / 2 }

func (t *TermCanvas) set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return
	}
	t.px[y*t.w+x] = c
}

func (t *TermCanvas) Clear(c color.RGBA) {
	for i := range t.px {
		t.px[i] = c
	}
	t.texts = t.texts[:0]
}

func (t *TermCanvas) FillRect(x, y, w, h int, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			t.set(xx, yy, c)
		}
	}
}

func (t *TermCanvas) StrokeLine(x0, y0, x1, y1, width int, c color.RGBA) {
	rasterLine(x0, y0, x1, y1, width, func(x, y int) { t.set(x, y, c) })
}

func (t *TermCanvas) StrokeArc(cx, cy, r int, fromDeg, toDeg float64, width int, c color.RGBA) {
	rasterArc(cx, cy, r, fromDeg, toDeg, width, func(x, y int) { t.set(x, y, c) })
}

func (t *TermCanvas) FillCircle(cx, cy, r int, c color.RGBA) {
	rasterFillCircle(cx, cy, r, func(x, y int) { t.set(x, y, c) })
}

func (t *TermCanvas) DrawText(x, y, w, h int, s string, tier FontTier, align Align, c color.RGBA) {
	if s == "" {
		return
	}
	t.texts = append(t.texts, termText{x: x, y: y, w: w, h: h, s: s, tier: tier, align: align, c: c})
}

// Flush paints the buffer onto screen with its top-left at cell (ox, oy).
func (t *TermCanvas) Flush(screen tcell.Screen, ox, oy int) {
	for row := 0; row < t.h/2; row++ {
		for col := 0; col < t.w; col++ {
			top := t.px[(row*2)*t.w+col]
			bot := t.px[(row*2+1)*t.w+col]
			style := tcell.StyleDefault.
				Foreground(toTcellColor(top, t.color)).
				Background(toTcellColor(bot, t.color))
			screen.SetContent(ox+col, oy+row, '▀', nil, style)
		}
	}

	for _, txt := range t.texts {
		t.flushText(screen, ox, oy, txt)
	}
}

func (t *TermCanvas) flushText(screen tcell.Screen, ox, oy int, txt termText) {
	runes := []rune(txt.s)
	if len(runes) > txt.w {
		runes = runes[:txt.w]
	}
	var x int
	switch txt.align {
	case AlignLeft:
		x = txt.x
	case AlignRight:
		x = txt.x + txt.w - len(runes)
	default:
		x = txt.x + (txt.w-len(runes))/2
	}
	row := (txt.y + txt.h/2) / 2
	if row < 0 || row >= t.h/2 {
		return
	}

	style := tcell.StyleDefault.
		Foreground(toTcellColor(txt.c, t.color)).
		Background(toTcellColor(ColorBackground, t.color))
	if txt.tier >= FontValueLarge {
		style = style.Bold(true)
	}
	for i, r := range runes {
		col := x + i
		if col < 0 || col >= t.w {
			continue
		}
		screen.SetContent(ox+col, oy+row, r, nil, style)
	}
}

func toTcellColor(c color.RGBA, colorCapable bool) tcell.Color {
	if !colorCapable {
		// collapse to black/white on luminance
		if int(c.R)+int(c.G)+int(c.B) >= 3*0x40 {
			return tcell.ColorWhite
		}
		return tcell.ColorBlack
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
