package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/markchart/internal/geom"
)

// fillCircle paints a solid disc of radius r centred on (cx, cy).
func fillCircle(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	b := img.Bounds()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			px := cx + dx
			py := cy + dy
			if image.Pt(px, py).In(b) {
				img.SetRGBA(px, py, col)
			}
		}
	}
}

// brushRadius converts a line width into the disc radius stamped along a
// path. Widths below 2 draw single pixels.
func brushRadius(width float64) int {
	if width < 2 {
		return 0
	}
	return int(math.Round(width / 2))
}

// drawLine walks a Bresenham line from (x0, y0) to (x1, y1) and stamps a
// round brush at every step, which yields round caps and joins.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, r int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		fillCircle(img, x0, y0, r, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPolyline strokes pts with a round pen of the given width.
func drawPolyline(img *image.RGBA, pts []geom.Point, col color.RGBA, width float64) {
	r := brushRadius(width)
	switch len(pts) {
	case 0:
		return
	case 1:
		p := pts[0].Image()
		fillCircle(img, p.X, p.Y, r, col)
		return
	}
	prev := pts[0].Image()
	for _, p := range pts[1:] {
		cur := p.Image()
		drawLine(img, prev.X, prev.Y, cur.X, cur.Y, col, r)
		prev = cur
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Checkerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// Outline draws a one pixel rectangle border.
func Outline(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, 0)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, 0)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, 0)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, 0)
}

// Fill paints rect with col, replacing what was there.
func Fill(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Src)
}
