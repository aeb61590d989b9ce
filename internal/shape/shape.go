// Package shape holds the annotation model: the closed set of shape kinds,
// the ordered store that owns them, and the hit tester that finds them.
package shape

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/example/markchart/internal/geom"
)

// tracer traces with key 'markchart.shape'
func tracer() tracing.Trace {
	return tracing.Select("markchart.shape")
}

// Kind discriminates the shape variants.
type Kind int

const (
	KindStroke Kind = iota
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindSymbol:
		return "symbol"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pen is one entry of the fixed stroke palette.
type Pen int

const (
	PenBlack Pen = iota
	PenRed
)

func (p Pen) String() string {
	switch p {
	case PenBlack:
		return "black"
	case PenRed:
		return "red"
	}
	return fmt.Sprintf("Pen(%d)", int(p))
}

// Glyph identifies a stamp symbol.
type Glyph string

const (
	GlyphM Glyph = "M"
	GlyphX Glyph = "X"
)

// Glyphs lists the stamp glyphs in toolbar order.
var Glyphs = []Glyph{GlyphM, GlyphX}

// ParseGlyph accepts a glyph name in any case.
func ParseGlyph(s string) (Glyph, error) {
	g := Glyph(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Glyphs {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown glyph %q", s)
}

// DefaultWidth is the committed stroke width in content pixels.
const DefaultWidth = 3

// Shape is implemented by Stroke and Symbol only.
type Shape interface {
	Kind() Kind
	// Translate returns a copy moved by d.
	Translate(d geom.Point) Shape
	clone() Shape
	sealed()
}

// Stroke is a freehand polyline in content space.
type Stroke struct {
	Points []geom.Point
	Pen    Pen
	Width  float64
}

func (Stroke) Kind() Kind { return KindStroke }

func (Stroke) sealed() {}

func (s Stroke) clone() Shape {
	pts := make([]geom.Point, len(s.Points))
	copy(pts, s.Points)
	s.Points = pts
	return s
}

func (s Stroke) Translate(d geom.Point) Shape {
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = p.Add(d)
	}
	s.Points = pts
	return s
}

// Symbol is a stamped glyph anchored at a content-space point.
type Symbol struct {
	At    geom.Point
	Glyph Glyph
}

func (Symbol) Kind() Kind { return KindSymbol }

func (Symbol) sealed() {}

func (s Symbol) clone() Shape { return s }

func (s Symbol) Translate(d geom.Point) Shape {
	s.At = s.At.Add(d)
	return s
}

// Describe returns a one-line summary used by the CLI listings.
func Describe(s Shape) string {
	switch v := s.(type) {
	case Stroke:
		if len(v.Points) == 0 {
			return fmt.Sprintf("stroke %s empty", v.Pen)
		}
		return fmt.Sprintf("stroke %s %d points from %v", v.Pen, len(v.Points), v.Points[0])
	case Symbol:
		return fmt.Sprintf("symbol %s at %v", v.Glyph, v.At)
	}
	return "unknown"
}
