package render

import (
	"image"
	"image/color"
	"image/draw"
)

// GlowOptions configures the halo drawn behind a selected mark.
type GlowOptions struct {
	Radius int
	Color  color.RGBA
	// Gain multiplies the blurred coverage so thin strokes still produce a
	// visible halo. Values below 1 are treated as 1.
	Gain float64
}

// DefaultGlowOptions returns a gold halo with a 10 pixel spread.
func DefaultGlowOptions() GlowOptions {
	return GlowOptions{
		Radius: 10,
		Color:  color.RGBA{255, 215, 0, 255},
		Gain:   3,
	}
}

// ApplyGlow composites layer onto dst with a blurred halo of opts.Color
// behind every non-transparent pixel of layer. Both images share the same
// coordinate space; only their intersection is touched.
func ApplyGlow(dst, layer *image.RGBA, opts GlowOptions) {
	if dst == nil || layer == nil {
		return
	}
	b := layer.Bounds().Intersect(dst.Bounds())
	if b.Empty() {
		return
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}
	gain := opts.Gain
	if gain < 1 {
		gain = 1
	}

	mask := image.NewAlpha(b.Sub(b.Min))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := layer.RGBAAt(x, y).A
			if a == 0 {
				continue
			}
			mask.Pix[(y-b.Min.Y)*mask.Stride+(x-b.Min.X)] = a
		}
	}

	blurred := blurAlpha(mask, radius)
	if gain != 1 {
		for i, v := range blurred.Pix {
			boosted := float64(v) * gain
			if boosted > 255 {
				boosted = 255
			}
			blurred.Pix[i] = uint8(boosted)
		}
	}

	if opts.Color.A > 0 {
		draw.DrawMask(dst, b, image.NewUniform(opts.Color), image.Point{}, blurred, image.Point{}, draw.Over)
	}
	draw.Draw(dst, b, layer, b.Min, draw.Over)
}

// blurAlpha is a separable box blur built on running prefix sums. The
// result is used as a draw mask, so it must carry coverage in alpha.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		out := image.NewAlpha(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewAlpha(bounds)
	dst := image.NewAlpha(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := x - radius
			if x0 < 0 {
				x0 = 0
			}
			x1 := x + radius
			if x1 >= w {
				x1 = w - 1
			}
			tmp.Pix[tmpStart+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := y - radius
			if y0 < 0 {
				y0 = 0
			}
			y1 := y + radius
			if y1 >= h {
				y1 = h - 1
			}
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}

	return dst
}
