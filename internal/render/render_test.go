package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/markchart/internal/geom"
	"github.com/example/markchart/internal/shape"
	"github.com/example/markchart/internal/theme"
)

func scene() Scene {
	return Scene{
		Shapes: []shape.Shape{
			shape.Stroke{Points: []geom.Point{{X: 10, Y: 50}, {X: 90, Y: 50}}, Pen: shape.PenRed, Width: 3},
			shape.Symbol{At: geom.Pt(50, 20), Glyph: shape.GlyphX},
		},
		Selected: shape.None,
	}
}

func TestDrawStrokeAndSymbol(t *testing.T) {
	r := New(DefaultStyle())
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	r.Draw(dst, scene())

	th := theme.Default()
	assert.Equal(t, th.PenRed, dst.RGBAAt(50, 50), "stroke centre")
	assert.Equal(t, uint8(0), dst.RGBAAt(50, 80).A, "background stays clear")

	inked := 0
	for y := 5; y < 35; y++ {
		for x := 35; x < 65; x++ {
			if dst.RGBAAt(x, y).A != 0 {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 10, "glyph should put ink around its anchor")
}

func TestDrawIsIdempotent(t *testing.T) {
	r := New(DefaultStyle())
	a := image.NewRGBA(image.Rect(0, 0, 100, 100))
	b := image.NewRGBA(image.Rect(0, 0, 100, 100))
	sc := scene()
	sc.Selected = 0
	r.Draw(a, sc)
	r.Draw(a, sc)
	r.Draw(b, sc)
	require.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestDrawSelectedHasHalo(t *testing.T) {
	r := New(DefaultStyle())
	plain := image.NewRGBA(image.Rect(0, 0, 100, 100))
	sel := image.NewRGBA(image.Rect(0, 0, 100, 100))
	sc := scene()
	r.Draw(plain, sc)
	sc.Selected = 0
	r.Draw(sel, sc)

	assert.Equal(t, uint8(0), plain.RGBAAt(50, 56).A)
	halo := sel.RGBAAt(50, 56)
	assert.NotZero(t, halo.A, "halo below the selected stroke")
	assert.Greater(t, halo.G, halo.B, "halo should be gold tinted")
	for _, far := range []image.Point{{95, 95}, {5, 95}} {
		assert.Equal(t, color.RGBA{}, sel.RGBAAt(far.X, far.Y), "halo must stay near the mark at %v", far)
	}
}

func TestDrawBuffer(t *testing.T) {
	r := New(DefaultStyle())
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	r.Draw(dst, Scene{
		Selected:  shape.None,
		Buffer:    []geom.Point{{X: 5, Y: 5}, {X: 30, Y: 5}},
		BufferPen: shape.PenBlack,
	})
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, dst.RGBAAt(20, 5))
}

func TestComposite(t *testing.T) {
	diagram := Placeholder(50, 50, color.RGBA{238, 238, 238, 255})
	overlay := image.NewRGBA(image.Rect(0, 0, 100, 100))
	overlay.SetRGBA(10, 10, color.RGBA{255, 0, 0, 255})
	out := Composite(diagram, overlay)
	require.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(10, 10))
	bg := out.RGBAAt(70, 70)
	assert.InDelta(t, 238, int(bg.R), 1)
	assert.InDelta(t, 238, int(bg.B), 1)
}

func TestBlit(t *testing.T) {
	src := Placeholder(10, 10, color.RGBA{0, 0, 255, 255})
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	area := image.Rect(20, 20, 80, 80)
	Blit(dst, area, src, geom.Transform{Scale: 2, PanX: 5, PanY: 5})
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, dst.RGBAAt(30, 30))
	assert.Equal(t, uint8(0), dst.RGBAAt(22, 22).A)
	assert.Equal(t, uint8(0), dst.RGBAAt(46, 46).A)

	// content scaled past the area is clipped
	Blit(dst, area, src, geom.Transform{Scale: 10})
	assert.Equal(t, uint8(0), dst.RGBAAt(85, 85).A)
}
