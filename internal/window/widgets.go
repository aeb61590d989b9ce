package window

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/render"
	"github.com/example/markchart/internal/theme"
)

// KeyShortcut is a key combination bound to a named action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// ToolButton selects an editor tool.
type ToolButton struct {
	label string
	tool  editor.Tool
	th    *theme.Theme
	rect  image.Rectangle
	// onSelect is called when the button is activated.
	onSelect func(editor.Tool)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	render.Fill(dst, tb.rect, buttonColor(tb.th, state))
	if tb.tool == editor.ToolPenBlack || tb.tool == editor.ToolPenRed {
		pen, _ := tb.tool.Pen()
		swatch := image.Rect(tb.rect.Max.X-10, tb.rect.Min.Y+6, tb.rect.Max.X-4, tb.rect.Max.Y-6)
		render.Fill(dst, swatch, render.StyleFor(tb.th).PenColor(pen))
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(tb.th.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.tool)
	}
}

// Shortcut is a clickable label in the bottom bar.
type Shortcut struct {
	label  string
	action string
	th     *theme.Theme
	rect   image.Rectangle
	// trigger runs the named action.
	trigger func(string)
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	render.Fill(dst, s.rect, buttonColor(s.th, state))
	render.Outline(dst, s.rect, s.th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(s.th.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

func (s *Shortcut) Activate() {
	if s.trigger != nil {
		s.trigger(s.action)
	}
}

func buttonColor(th *theme.Theme, state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover
	case StatePressed:
		return th.ButtonBackgroundPress
	}
	return th.ButtonBackground
}

var toolLabels = map[editor.Tool]string{
	editor.ToolPan:      "P:Pan",
	editor.ToolSelect:   "S:Select",
	editor.ToolPenBlack: "B:Black",
	editor.ToolPenRed:   "R:Red",
	editor.ToolStampM:   "M:Stamp",
	editor.ToolStampX:   "X:Stamp",
}

var toolKeys = map[rune]editor.Tool{
	'p': editor.ToolPan,
	's': editor.ToolSelect,
	'b': editor.ToolPenBlack,
	'r': editor.ToolPenRed,
	'm': editor.ToolStampM,
	'x': editor.ToolStampX,
}
