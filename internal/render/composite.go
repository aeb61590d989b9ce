package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/markchart/internal/geom"
)

// Placeholder returns a flat w×h image used when the diagram is missing.
func Placeholder(w, h int, col color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Fill(img, img.Bounds(), col)
	return img
}

// Composite flattens overlay on top of diagram. The result has the
// overlay's size; a diagram of a different size is scaled to fit it.
func Composite(diagram image.Image, overlay *image.RGBA) *image.RGBA {
	b := overlay.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	Fill(out, out.Bounds(), color.White)
	if diagram != nil {
		db := diagram.Bounds()
		if db.Dx() == b.Dx() && db.Dy() == b.Dy() {
			draw.Draw(out, out.Bounds(), diagram, db.Min, draw.Over)
		} else {
			xdraw.CatmullRom.Scale(out, out.Bounds(), diagram, db, draw.Over, nil)
		}
	}
	draw.Draw(out, out.Bounds(), overlay, b.Min, draw.Over)
	return out
}

// Blit draws src into the area of dst under transform t, clipped to area.
// The transform is relative to area's top-left corner.
func Blit(dst *image.RGBA, area image.Rectangle, src image.Image, t geom.Transform) {
	area = area.Intersect(dst.Bounds())
	if area.Empty() || src == nil {
		return
	}
	sb := src.Bounds()
	tl := geom.ToScreen(geom.Point{}, t).Image()
	br := geom.ToScreen(geom.Pt(float64(sb.Dx()), float64(sb.Dy())), t).Image()
	dr := image.Rectangle{Min: tl, Max: br}.Add(area.Min)
	sub := dst.SubImage(area).(*image.RGBA)
	if dr.Dx() == sb.Dx() && dr.Dy() == sb.Dy() {
		draw.Draw(sub, dr, src, sb.Min, draw.Over)
		return
	}
	xdraw.NearestNeighbor.Scale(sub, dr, src, sb, draw.Over, nil)
}
