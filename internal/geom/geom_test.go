package geom

import (
	"image"
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRoundTrip(t *testing.T) {
	transforms := []Transform{
		{Scale: 1},
		{Scale: 2, PanX: 10, PanY: -5},
		{Scale: 0.1, PanX: -300, PanY: 42.5},
		{Scale: 4.75, PanX: 0.25, PanY: 900},
	}
	points := []Point{{0, 0}, {1, 1}, {-12.5, 33}, {640, 480}}
	for _, tr := range transforms {
		for _, p := range points {
			got := ToScreen(ToContent(p, tr), tr)
			if !near(got.X, p.X) || !near(got.Y, p.Y) {
				t.Errorf("round trip %v with %+v = %v", p, tr, got)
			}
		}
	}
}

func TestToContent(t *testing.T) {
	tr := Transform{Scale: 2, PanX: 100, PanY: 50}
	got := ToContent(Pt(300, 250), tr)
	if got != Pt(100, 100) {
		t.Fatalf("ToContent = %v, want (100,100)", got)
	}
}

func TestZeroScaleIsIdentity(t *testing.T) {
	got := ToContent(Pt(5, 6), Transform{})
	if got != Pt(5, 6) {
		t.Fatalf("ToContent with zero scale = %v", got)
	}
}

func TestCSS(t *testing.T) {
	tr := Transform{Scale: 1.5, PanX: 10, PanY: -4}
	if got, want := tr.CSS(), "translate(10px, -4px) scale(1.5)"; got != want {
		t.Fatalf("CSS() = %q, want %q", got, want)
	}
}

func TestPointHelpers(t *testing.T) {
	if d := Dist(Pt(0, 0), Pt(3, 4)); !near(d, 5) {
		t.Errorf("Dist = %v", d)
	}
	if p := Pt(1.4, 2.6).Image(); p != image.Pt(1, 3) {
		t.Errorf("Image = %v", p)
	}
	if !(Size{W: 0, H: 5}).Empty() {
		t.Errorf("zero width should be empty")
	}
}
