package shape

import "github.com/example/markchart/internal/geom"

// None is the selection index meaning nothing is selected.
const None = -1

// Store is the ordered collection of committed shapes. Insertion order is
// z-order: later shapes draw on top and are hit first. The store owns its
// shapes; every accessor hands out copies.
type Store struct {
	shapes   []Shape
	selected int
}

// NewStore returns an empty store with no selection.
func NewStore() *Store {
	return &Store{selected: None}
}

// Len returns the number of shapes.
func (s *Store) Len() int { return len(s.shapes) }

// Append adds sh on top. Strokes with fewer than two points are refused.
// The selection is left untouched.
func (s *Store) Append(sh Shape) bool {
	if st, ok := sh.(Stroke); ok && len(st.Points) < 2 {
		tracer().Debugf("refusing stroke with %d points", len(st.Points))
		return false
	}
	s.shapes = append(s.shapes, sh.clone())
	tracer().Debugf("append %s, %d shapes", sh.Kind(), len(s.shapes))
	return true
}

// RemoveAt deletes the shape at i and clears the selection.
func (s *Store) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.shapes) {
		return false
	}
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	s.selected = None
	return true
}

// PopLast removes the most recent shape. It is the only undo there is.
func (s *Store) PopLast() (Shape, bool) {
	if len(s.shapes) == 0 {
		return nil, false
	}
	last := s.shapes[len(s.shapes)-1]
	s.shapes = s.shapes[:len(s.shapes)-1]
	s.selected = None
	return last, true
}

// Clear empties the store.
func (s *Store) Clear() {
	s.shapes = nil
	s.selected = None
}

// Get returns a copy of the shape at i.
func (s *Store) Get(i int) (Shape, bool) {
	if i < 0 || i >= len(s.shapes) {
		return nil, false
	}
	return s.shapes[i].clone(), true
}

// All returns copies of every shape in insertion order.
func (s *Store) All() []Shape {
	out := make([]Shape, len(s.shapes))
	for i, sh := range s.shapes {
		out[i] = sh.clone()
	}
	return out
}

// Each calls fn with a copy of every shape bottom to top until fn returns
// false.
func (s *Store) Each(fn func(i int, sh Shape) bool) {
	for i, sh := range s.shapes {
		if !fn(i, sh.clone()) {
			return
		}
	}
}

// Translate moves the shape at i by d in content space. The selection
// is preserved.
func (s *Store) Translate(i int, d geom.Point) bool {
	if i < 0 || i >= len(s.shapes) {
		return false
	}
	s.shapes[i] = s.shapes[i].Translate(d)
	return true
}

// Select sets the selection. Out of range indices select nothing.
func (s *Store) Select(i int) {
	if i < 0 || i >= len(s.shapes) {
		i = None
	}
	s.selected = i
}

// Selected returns the selected index or None.
func (s *Store) Selected() int { return s.selected }

// CountGlyph returns how many symbols carry g.
func (s *Store) CountGlyph(g Glyph) int {
	n := 0
	s.Each(func(_ int, sh Shape) bool {
		if sym, ok := sh.(Symbol); ok && sym.Glyph == g {
			n++
		}
		return true
	})
	return n
}

// FindAt runs the hit tester over the store.
func (s *Store) FindAt(p geom.Point, tol Tolerance) int {
	return FindAt(s.shapes, p, tol)
}
