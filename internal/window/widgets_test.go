package window

import (
	"image"
	"testing"

	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/theme"
)

func TestToolButtonCache(t *testing.T) {
	th := theme.Default()
	r := image.Rect(0, titleHeight, 80, titleHeight+buttonHeight)
	cb := cachedToolButton(editor.ToolPenRed, th, r)
	if again := cachedToolButton(editor.ToolPenRed, th, r); again != cb {
		t.Fatal("tool button rebuilt for an unchanged frame")
	}

	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	cb.Draw(dst, StatePressed)
	if cb.cache[StatePressed] == nil {
		t.Fatal("pressed render not kept")
	}
	if cb.cache[StateDefault] != nil {
		t.Error("default state rendered without being drawn")
	}
	if got := dst.RGBAAt(r.Min.X+1, r.Min.Y+1); got != th.ButtonBackgroundPress {
		t.Errorf("pressed button = %v, want %v", got, th.ButtonBackgroundPress)
	}

	kept := cb.cache[StatePressed]
	cb.Draw(image.NewRGBA(dst.Bounds()), StatePressed)
	if cb.cache[StatePressed] != kept {
		t.Error("cached render replaced on redraw")
	}

	moved := r.Add(image.Pt(0, buttonHeight))
	cachedToolButton(editor.ToolPenRed, th, moved)
	if cb.Rect() != moved || cb.cache[StatePressed] != nil {
		t.Error("moving the button must drop its renders")
	}

	other := *th
	if cachedToolButton(editor.ToolPenRed, &other, moved) == cb {
		t.Error("theme change must rebuild the buttons")
	}
}
