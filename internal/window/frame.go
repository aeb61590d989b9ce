package window

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/geom"
	"github.com/example/markchart/internal/render"
	"github.com/example/markchart/internal/theme"
)

const (
	titleHeight  = 24
	bottomHeight = 24
	buttonHeight = 24
	minToolbar   = 48
	checkerSize  = 8
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// toolbarWidth is wide enough for the program title and every tool label.
func toolbarWidth() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString("MarkChart").Ceil() + 8
	for _, lbl := range toolLabels {
		if lw := d.MeasureString(lbl).Ceil() + 24; lw > w {
			w = lw
		}
	}
	return max(w, minToolbar)
}

// layout places the window regions for a given window size.
type layout struct {
	width, height int
	toolbar       int
}

// canvas is the container the editor's viewport maps into.
func (l layout) canvas() image.Rectangle {
	return image.Rect(l.toolbar, titleHeight, l.width, l.height-bottomHeight).Canon().
		Intersect(image.Rect(0, 0, l.width, l.height))
}

func (l layout) toolRect(i int) image.Rectangle {
	y := titleHeight + i*buttonHeight
	return image.Rect(0, y, l.toolbar, y+buttonHeight)
}

// toolAt returns the index into editor.Tools of the button under p.
func (l layout) toolAt(p image.Point) int {
	for i := range editor.Tools {
		if p.In(l.toolRect(i)) {
			return i
		}
	}
	return -1
}

// shortcuts lays out the bottom bar.
func (l layout) shortcuts(th *theme.Theme, scale float64) []Shortcut {
	list := []Shortcut{
		{label: fmt.Sprintf("+/-:zoom (%.0f%%)", scale*100), action: "zoomin"},
		{label: "0:fit", action: "reset"},
		{label: "Del:delete", action: "delete"},
		{label: "^Z:undo", action: "undo"},
		{label: "A:clear", action: "clear"},
		{label: "^C:copy", action: "copy"},
		{label: "^E:export", action: "export"},
		{label: "Q:quit", action: "quit"},
	}
	x := l.toolbar + 4
	y := l.height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range list {
		sc := &list[i]
		sc.th = th
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		x = sc.rect.Max.X + 8
	}
	return list
}

func shortcutAt(list []Shortcut, p image.Point) int {
	for i := range list {
		if p.In(list[i].rect) {
			return i
		}
	}
	return -1
}

// paintState is an immutable copy of everything a frame needs. It is
// handed from the event loop to the paint goroutine.
type paintState struct {
	layout
	th            *theme.Theme
	diagram       image.Image
	surface       *image.RGBA
	transform     geom.Transform
	tool          editor.Tool
	state         editor.State
	shapes        int
	status        string
	hoverTool     int
	hoverShortcut int
	message       string
	messageUntil  time.Time
}

var backdropCache *image.RGBA

// toolButtons keeps the rendered tool buttons between frames. It belongs
// to the paint goroutine and is dropped when the theme changes.
var toolButtons struct {
	th      *theme.Theme
	buttons map[editor.Tool]*CacheButton
}

func cachedToolButton(t editor.Tool, th *theme.Theme, r image.Rectangle) *CacheButton {
	if toolButtons.th != th || toolButtons.buttons == nil {
		toolButtons.th = th
		toolButtons.buttons = make(map[editor.Tool]*CacheButton, len(editor.Tools))
	}
	cb, ok := toolButtons.buttons[t]
	if !ok {
		cb = &CacheButton{Button: &ToolButton{label: toolLabels[t], tool: t, th: th, rect: r}}
		toolButtons.buttons[t] = cb
	}
	cb.SetRect(r)
	return cb
}

// drawBackdrop fills rect of dst with a cached checkerboard pattern.
func drawBackdrop(dst *image.RGBA, rect image.Rectangle, th *theme.Theme) {
	if backdropCache == nil || backdropCache.Bounds() != rect {
		backdropCache = image.NewRGBA(rect)
		render.Checkerboard(backdropCache, rect, checkerSize, th.CheckerLight, th.CheckerDark)
	}
	draw.Draw(dst, rect, backdropCache, rect.Min, draw.Src)
}

// paintFrame renders st into dst. It reports false when ctx was cancelled
// before the frame was complete.
func paintFrame(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := st.th
	render.Fill(dst, dst.Bounds(), th.Background)
	canvas := st.canvas()
	drawBackdrop(dst, canvas, th)
	if ctx.Err() != nil {
		return false
	}

	render.Blit(dst, canvas, st.diagram, st.transform)
	if st.surface != nil {
		render.Blit(dst, canvas, st.surface, st.transform)
	}
	if ctx.Err() != nil {
		return false
	}

	drawTitle(dst, st)
	drawToolbar(dst, st)
	drawShortcuts(dst, st)
	if ctx.Err() != nil {
		return false
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, st.width, st.height, st.message, th)
	}
	return ctx.Err() == nil
}

func drawTitle(dst *image.RGBA, st paintState) {
	render.Fill(dst, image.Rect(0, 0, st.width, titleHeight), st.th.ToolbarBackground)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(st.th.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	d.DrawString("MarkChart")
	d.Dot = fixed.P(st.toolbar+4, 16)
	d.DrawString(fmt.Sprintf("%s  %s  marks:%d  %s", st.tool, st.state, st.shapes, st.status))
}

func drawToolbar(dst *image.RGBA, st paintState) {
	render.Fill(dst, image.Rect(0, titleHeight, st.toolbar, st.height-bottomHeight), st.th.ToolbarBackground)
	for i, t := range editor.Tools {
		tb := cachedToolButton(t, st.th, st.toolRect(i))
		state := StateDefault
		if t == st.tool {
			state = StatePressed
		} else if i == st.hoverTool {
			state = StateHover
		}
		tb.Draw(dst, state)
	}
}

func drawShortcuts(dst *image.RGBA, st paintState) {
	rect := image.Rect(0, st.height-bottomHeight, st.width, st.height)
	render.Fill(dst, rect, st.th.StatusBackground)
	for i, sc := range st.shortcuts(st.th, st.transform.Scale) {
		state := StateDefault
		if i == st.hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
	}
}

func drawMessage(dst *image.RGBA, width, height int, msg string, th *theme.Theme) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (width - wmsg) / 2
	py := (height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, image.NewUniform(th.MessageBackground), image.Point{}, draw.Over)
	render.Outline(dst, rect, th.ButtonBorder)
	render.Outline(dst, rect.Inset(1), th.ButtonBorder)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

// drawFrame uploads one frame to the window.
func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !paintFrame(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	if src == nil {
		return nil
	}
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
