// Package render rasterizes annotation scenes and composes them with the
// underlying diagram.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/markchart/internal/geom"
	"github.com/example/markchart/internal/shape"
	"github.com/example/markchart/internal/theme"
)

// Style controls how shapes are painted.
type Style struct {
	Theme             *theme.Theme
	SelectedWidth     float64
	GlyphSize         float64
	SelectedGlyphSize float64
	Glow              GlowOptions
}

// DefaultStyle uses the default theme, a 5px selected stroke and 24px
// stamps that grow to 28px when selected.
func DefaultStyle() Style {
	return StyleFor(theme.Default())
}

// StyleFor returns the default style painted with th.
func StyleFor(th *theme.Theme) Style {
	if th == nil {
		th = theme.Default()
	}
	glow := DefaultGlowOptions()
	glow.Color = th.Halo
	return Style{
		Theme:             th,
		SelectedWidth:     5,
		GlyphSize:         24,
		SelectedGlyphSize: 28,
		Glow:              glow,
	}
}

// PenColor maps a palette entry to its theme color.
func (s Style) PenColor(p shape.Pen) color.RGBA {
	if p == shape.PenRed {
		return s.Theme.PenRed
	}
	return s.Theme.PenBlack
}

// GlyphColor maps a stamp glyph to its theme color.
func (s Style) GlyphColor(g shape.Glyph) color.RGBA {
	if g == shape.GlyphM {
		return s.Theme.GlyphM
	}
	return s.Theme.GlyphX
}

// Scene is everything one frame depends on.
type Scene struct {
	Shapes   []shape.Shape
	Selected int
	// Buffer is the stroke being drawn, painted last in BufferPen.
	Buffer      []geom.Point
	BufferPen   shape.Pen
	BufferWidth float64
}

// Renderer paints scenes. It keeps no per-frame state.
type Renderer struct {
	style Style
}

// New returns a Renderer using style.
func New(style Style) *Renderer {
	if style.Theme == nil {
		style = DefaultStyle()
	}
	return &Renderer{style: style}
}

// Style returns the style in use.
func (r *Renderer) Style() Style { return r.style }

// Draw clears dst and paints sc onto it: committed shapes bottom to top,
// the selected one emphasised, then the in-progress stroke.
func (r *Renderer) Draw(dst *image.RGBA, sc Scene) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	for i, sh := range sc.Shapes {
		if i == sc.Selected {
			r.drawSelected(dst, sh)
			continue
		}
		r.drawShape(dst, sh, false)
	}
	if len(sc.Buffer) > 0 {
		w := sc.BufferWidth
		if w <= 0 {
			w = shape.DefaultWidth
		}
		drawPolyline(dst, sc.Buffer, r.style.PenColor(sc.BufferPen), w)
	}
}

func (r *Renderer) drawSelected(dst *image.RGBA, sh shape.Shape) {
	layer := image.NewRGBA(dst.Bounds())
	r.drawShape(layer, sh, true)
	ApplyGlow(dst, layer, r.style.Glow)
}

func (r *Renderer) drawShape(dst *image.RGBA, sh shape.Shape, selected bool) {
	switch s := sh.(type) {
	case shape.Stroke:
		w := s.Width
		if w <= 0 {
			w = shape.DefaultWidth
		}
		if selected && r.style.SelectedWidth > w {
			w = r.style.SelectedWidth
		}
		drawPolyline(dst, s.Points, r.style.PenColor(s.Pen), w)
	case shape.Symbol:
		size := r.style.GlyphSize
		if selected {
			size = r.style.SelectedGlyphSize
		}
		drawGlyph(dst, s.At, string(s.Glyph), glyphFace(size), r.style.GlyphColor(s.Glyph))
	}
}

// drawGlyph centres text on at.
func drawGlyph(dst *image.RGBA, at geom.Point, text string, face font.Face, col color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	w := d.MeasureString(text)
	m := face.Metrics()
	capH := m.CapHeight
	if capH <= 0 {
		capH = m.Ascent * 7 / 10
	}
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(at.X+0.5)) - w/2,
		Y: fixed.I(int(at.Y+0.5)) + capH/2,
	}
	d.DrawString(text)
}
