package shape

import "github.com/example/markchart/internal/geom"

// Tolerance holds the hit radii in content units.
type Tolerance struct {
	Symbol float64
	Stroke float64
}

// DefaultTolerance matches a symbol within 20 units of its anchor and a
// stroke within 10 units of any of its vertices.
var DefaultTolerance = Tolerance{Symbol: 20, Stroke: 10}

// FindAt returns the index of the topmost shape near p, or None.
// Strokes are tested against their vertices only, so a click on a long
// segment between two distant points can miss.
func FindAt(shapes []Shape, p geom.Point, tol Tolerance) int {
	for i := len(shapes) - 1; i >= 0; i-- {
		switch s := shapes[i].(type) {
		case Symbol:
			if geom.Dist(p, s.At) < tol.Symbol {
				return i
			}
		case Stroke:
			for _, v := range s.Points {
				if geom.Dist(p, v) < tol.Stroke {
					return i
				}
			}
		}
	}
	return None
}
