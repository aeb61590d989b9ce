// Package geom maps points between the viewport container (screen space)
// and the annotated diagram (content space).
package geom

import (
	"fmt"
	"image"
	"math"
)

// Point is a position in either screen or content space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales p by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Div divides p by k.
func (p Point) Div(k float64) Point { return Point{p.X / k, p.Y / k} }

// Image rounds p to the nearest pixel.
func (p Point) Image() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// Transform is the translate+uniform-scale mapping content -> screen:
// screen = content*Scale + Pan. There is no rotation.
type Transform struct {
	Scale float64
	PanX  float64
	PanY  float64
	// Smooth reports whether the host may animate towards this transform.
	// It is off while the user drags the view.
	Smooth bool
}

// Identity is the transform used before any container has been measured.
var Identity = Transform{Scale: 1, Smooth: true}

// Pan returns the translation as a point.
func (t Transform) Pan() Point { return Point{t.PanX, t.PanY} }

// CSS renders t as a CSS style transform with a top-left origin.
func (t Transform) CSS() string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g)", t.PanX, t.PanY, t.Scale)
}

// ToContent converts a point relative to the container's top-left corner
// into content space. A non-positive scale is treated as 1.
func ToContent(p Point, t Transform) Point {
	s := t.Scale
	if s <= 0 {
		s = 1
	}
	return Point{(p.X - t.PanX) / s, (p.Y - t.PanY) / s}
}

// ToScreen converts a content-space point to container coordinates.
func ToScreen(p Point, t Transform) Point {
	s := t.Scale
	if s <= 0 {
		s = 1
	}
	return Point{p.X*s + t.PanX, p.Y*s + t.PanY}
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// SizeOf returns the dimensions of r.
func SizeOf(r image.Rectangle) Size { return Size{float64(r.Dx()), float64(r.Dy())} }
