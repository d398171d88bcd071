package display

import (
	"math"
)

// Rasterization helpers shared by the pixel-addressed canvases. Every
// helper plots through a setPixel callback so each canvas keeps its own
// buffer format.

func rasterDot(x, y, width int, set func(x, y int)) {
	if width <= 1 {
		set(x, y)
		return
	}
	r := width / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				set(x+dx, y+dy)
			}
		}
	}
}

func rasterLine(x0, y0, x1, y1, width int, set func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		rasterDot(x0, y0, width, set)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// rasterArc samples the arc at roughly one-pixel steps along its length.
func rasterArc(cx, cy, r int, fromDeg, toDeg float64, width int, set func(x, y int)) {
	if r <= 0 {
		return
	}
	if toDeg < fromDeg {
		fromDeg, toDeg = toDeg, fromDeg
	}
	step := 1.0 / float64(r) // radians per ~1px of arc length
	from := fromDeg * math.Pi / 180
	to := toDeg * math.Pi / 180
	for a := from; a <= to+step/2; a += step {
		x := cx + int(math.Round(float64(r)*math.Cos(a)))
		y := cy + int(math.Round(float64(r)*math.Sin(a)))
		rasterDot(x, y, width, set)
	}
}

func rasterFillCircle(cx, cy, r int, set func(x, y int)) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				set(cx+dx, cy+dy)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
