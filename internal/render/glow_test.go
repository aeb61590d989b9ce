package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyGlowSpreadsHalo(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	layer := image.NewRGBA(dst.Bounds())
	layer.SetRGBA(10, 10, color.RGBA{R: 255, A: 255})

	opts := GlowOptions{Radius: 3, Color: color.RGBA{255, 215, 0, 255}, Gain: 3}
	ApplyGlow(dst, layer, opts)

	if got := dst.RGBAAt(10, 10); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("layer pixel should be on top, got %+v", got)
	}
	if dst.RGBAAt(12, 10).A == 0 {
		t.Fatal("expected halo alpha next to the mark")
	}
	if dst.RGBAAt(0, 0).A != 0 {
		t.Fatal("halo leaked beyond its radius")
	}
}

func TestApplyGlowKeepsBackdropTransparent(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 150))
	layer := image.NewRGBA(dst.Bounds())
	layer.SetRGBA(20, 20, color.RGBA{A: 255})
	ApplyGlow(dst, layer, DefaultGlowOptions())
	for _, p := range []image.Point{{199, 149}, {100, 75}, {20, 60}} {
		if got := dst.RGBAAt(p.X, p.Y); got != (color.RGBA{}) {
			t.Errorf("pixel %v = %+v, want transparent", p, got)
		}
	}
}

func TestApplyGlowZeroRadiusCopiesLayer(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	layer := image.NewRGBA(dst.Bounds())
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	layer.SetRGBA(1, 1, fill)
	ApplyGlow(dst, layer, GlowOptions{Radius: 0, Color: color.RGBA{}})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := color.RGBA{}
			if x == 1 && y == 1 {
				want = fill
			}
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %+v want %+v", x, y, got, want)
			}
		}
	}
}

func TestBlurAlphaPreservesFlatField(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 6, 6))
	for i := range src.Pix {
		src.Pix[i] = 90
	}
	out := blurAlpha(src, 2)
	for i, v := range out.Pix {
		if v != 90 {
			t.Fatalf("pix %d = %d, want 90", i, v)
		}
	}
}
