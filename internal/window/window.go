// Package window hosts an editor in a desktop window using shiny.
package window

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/markchart/internal/clipboard"
	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/export"
	"github.com/example/markchart/internal/notify"
	"github.com/example/markchart/internal/render"
	"github.com/example/markchart/internal/theme"
)

const frameDropThreshold = 10

const messageDuration = 2 * time.Second

// Window owns the on-screen session: the editor, the diagram under it and
// the chart being filled in. All fields are used from the event loop
// goroutine only.
type Window struct {
	ed       *editor.Editor
	diagram  image.Image
	th       *theme.Theme
	chart    *export.Chart
	output   string
	zoomStep float64
	notifier *notify.Notifier
	copyFn   func(image.Image) error

	message      string
	messageUntil time.Time
	confirmClear bool
	pressed      bool

	updateCh chan struct{}
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithTheme sets the colors used for the window chrome.
func WithTheme(th *theme.Theme) Option { return func(w *Window) { w.th = th } }

// WithChart sets the chart exported alongside the diagram.
func WithChart(c *export.Chart) Option { return func(w *Window) { w.chart = c } }

// WithOutput sets the PDF path used by the export action.
func WithOutput(path string) Option { return func(w *Window) { w.output = path } }

// WithZoomStep sets the zoom change per key press or wheel notch.
func WithZoomStep(step float64) Option {
	return func(w *Window) {
		if step > 0 {
			w.zoomStep = step
		}
	}
}

// WithNotifier routes rejections, exports and copies to desktop notifications.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.notifier = n } }

// New creates a Window for ed over diagram.
func New(ed *editor.Editor, diagram image.Image, opts ...Option) *Window {
	w := &Window{
		ed:       ed,
		diagram:  diagram,
		th:       theme.Default(),
		chart:    &export.Chart{},
		output:   export.DefaultFilename,
		zoomStep: 0.25,
		copyFn:   clipboard.WriteImage,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Invalidate requests a repaint. It is safe to call from any goroutine and
// is meant as the editor's redraw hook.
func (w *Window) Invalidate() {
	select {
	case w.updateCh <- struct{}{}:
	default:
	}
}

// Reject shows a refused edit to the user. It is meant as the editor's
// reject handler.
func (w *Window) Reject(err error) {
	w.showMessage(err.Error())
	w.notifier.Reject(err)
}

func (w *Window) showMessage(msg string) {
	w.message = msg
	w.messageUntil = time.Now().Add(messageDuration)
	log.Print(msg)
	w.Invalidate()
}

// composite flattens the diagram and the marks without selection emphasis.
func (w *Window) composite() *image.RGBA {
	snap := w.ed.Snapshot()
	if snap.Image == nil {
		return nil
	}
	return render.Composite(w.diagram, snap.Image)
}

func (w *Window) copyChart() {
	img := w.composite()
	if img == nil {
		return
	}
	if err := w.copyFn(img); err != nil {
		log.Printf("copy: %v", err)
		w.showMessage("copy failed")
		return
	}
	w.showMessage("chart copied to clipboard")
	w.notifier.Copy("chart")
}

func (w *Window) exportChart() {
	img := w.composite()
	if img == nil {
		return
	}
	doc := export.NewDocument(img, *w.chart)
	if err := doc.Save(w.output); err != nil {
		log.Printf("export: %v", err)
		w.showMessage("export failed")
		return
	}
	w.showMessage(fmt.Sprintf("exported %s", filepath.Base(w.output)))
	w.notifier.Export(w.output, img)
}

// clear asks for a second press before removing every mark.
func (w *Window) clear() {
	if !w.confirmClear {
		w.confirmClear = true
		w.showMessage("press A again to clear all")
		return
	}
	w.confirmClear = false
	w.ed.ClearAll()
	w.showMessage("cleared")
}

// actions maps action names to their handlers. quit is handled by the loop.
func (w *Window) actions() map[string]func() {
	return map[string]func(){
		"zoomin":  func() { w.ed.ZoomBy(w.zoomStep) },
		"zoomout": func() { w.ed.ZoomBy(-w.zoomStep) },
		"reset":   w.ed.ResetView,
		"delete":  func() { w.ed.DeleteSelected() },
		"undo":    func() { w.ed.Undo() },
		"clear":   w.clear,
		"copy":    w.copyChart,
		"export":  w.exportChart,
		"cancel":  func() { w.feed(editor.Cancel()) },
	}
}

// keyboardAction binds key combinations to action names.
var keyboardAction = map[KeyShortcut]string{}

func register(name string, keys KeyboardShortcuts) {
	for _, sc := range keys.KeyboardShortcuts() {
		keyboardAction[sc] = name
	}
}

func init() {
	register("zoomin", shortcutList{{Rune: '+'}, {Rune: '='}})
	register("zoomout", shortcutList{{Rune: '-'}})
	register("reset", shortcutList{{Rune: '0'}})
	register("delete", shortcutList{{Rune: -1, Code: key.CodeDeleteForward}, {Rune: -1, Code: key.CodeDeleteBackspace}})
	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}})
	register("clear", shortcutList{{Rune: 'a'}})
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}})
	register("export", shortcutList{{Rune: 'e', Modifiers: key.ModControl}})
	register("cancel", shortcutList{{Rune: -1, Code: key.CodeEscape}})
	register("quit", shortcutList{{Rune: 'q'}})
}

// keyAction resolves a key press to an action name, or to a tool switch.
func keyAction(e key.Event) (string, editor.Tool, bool) {
	r := unicode.ToLower(e.Rune)
	code := e.Code
	if r > 0 {
		code = key.CodeUnknown
	}
	mods := e.Modifiers &^ key.ModShift
	if action, ok := keyboardAction[KeyShortcut{Rune: r, Code: code, Modifiers: mods}]; ok {
		return action, 0, true
	}
	if mods == 0 {
		if t, ok := toolKeys[r]; ok {
			return "", t, true
		}
	}
	return "", 0, false
}

// handleKey runs the action for one key press. It reports true when the
// window should close.
func (w *Window) handleKey(e key.Event) bool {
	action, tool, ok := keyAction(e)
	if !ok {
		return false
	}
	if action != "clear" {
		w.confirmClear = false
	}
	switch action {
	case "":
		w.ed.SetTool(tool)
	case "quit":
		return true
	default:
		if fn, ok := w.actions()[action]; ok {
			fn()
		}
	}
	w.Invalidate()
	return false
}

// handleMouse routes one mouse event to the chrome or to the editor. It
// reports whether a repaint is needed and whether the window should close.
func (w *Window) handleMouse(l layout, e mouse.Event, hoverTool, hoverShortcut *int) (repaint, quit bool) {
	p := image.Point{int(e.X), int(e.Y)}
	canvas := l.canvas()

	switch e.Button {
	case mouse.ButtonWheelUp:
		w.ed.ZoomBy(w.zoomStep)
		return true, false
	case mouse.ButtonWheelDown:
		w.ed.ZoomBy(-w.zoomStep)
		return true, false
	}

	if !w.pressed && !p.In(canvas) {
		prevTool, prevShortcut := *hoverTool, *hoverShortcut
		*hoverTool = l.toolAt(p)
		shortcuts := l.shortcuts(w.th, w.ed.Transform().Scale)
		*hoverShortcut = shortcutAt(shortcuts, p)
		if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			if *hoverTool >= 0 {
				tb := &ToolButton{tool: editor.Tools[*hoverTool], onSelect: w.ed.SetTool}
				tb.Activate()
				return true, false
			}
			if *hoverShortcut >= 0 {
				sc := shortcuts[*hoverShortcut]
				if sc.action == "quit" {
					return false, true
				}
				sc.trigger = func(name string) {
					if fn, ok := w.actions()[name]; ok {
						fn()
					}
				}
				sc.Activate()
				return true, false
			}
		}
		return prevTool != *hoverTool || prevShortcut != *hoverShortcut, false
	}

	ev, ok := editor.FromMouse(e, canvas.Min)
	if !ok {
		return false, false
	}
	w.feed(ev)
	return true, false
}

// handleTouch routes a touch on the canvas to the editor. Touches on the
// chrome are ignored.
func (w *Window) handleTouch(l layout, e touch.Event) bool {
	canvas := l.canvas()
	if !w.pressed && !image.Pt(int(e.X), int(e.Y)).In(canvas) {
		return false
	}
	ev, ok := editor.FromTouch(e, canvas.Min)
	if !ok {
		return false
	}
	w.feed(ev)
	return true
}

func (w *Window) feed(ev editor.PointerEvent) {
	switch ev.Phase {
	case editor.PhaseDown:
		if w.message != "" && time.Now().Before(w.messageUntil) {
			w.messageUntil = time.Time{}
		}
		w.pressed = true
	case editor.PhaseUp, editor.PhaseCancel:
		w.pressed = false
	}
	w.ed.Handle(ev)
}

func (w *Window) paintState(l layout, hoverTool, hoverShortcut int) paintState {
	return paintState{
		layout:        l,
		th:            w.th,
		diagram:       w.diagram,
		surface:       cloneRGBA(w.ed.Surface()),
		transform:     w.ed.Transform(),
		tool:          w.ed.Tool(),
		state:         w.ed.State(),
		shapes:        w.ed.Len(),
		status:        w.chart.Status(),
		hoverTool:     hoverTool,
		hoverShortcut: hoverShortcut,
		message:       w.message,
		messageUntil:  w.messageUntil,
	}
}

// Run executes the UI loop using shiny's driver.
func (w *Window) Run() { driver.Main(w.Main) }

// Main runs the event loop on s until the window closes.
func (w *Window) Main(s screen.Screen) {
	l := layout{toolbar: toolbarWidth()}
	b := w.diagram.Bounds()
	l.width = min(b.Dx(), 1200) + l.toolbar
	l.height = min(b.Dy(), 800) + titleHeight + bottomHeight

	win, err := s.NewWindow(&screen.NewWindowOptions{Width: l.width, Height: l.height, Title: "MarkChart"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer win.Release()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-w.updateCh:
				win.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, win, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	hoverTool, hoverShortcut := -1, -1
	resize := func() {
		c := l.canvas()
		w.ed.ResizeToContainer(float64(c.Dx()), float64(c.Dy()))
	}
	resize()

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			l.width = e.WidthPx
			l.height = e.HeightPx
			resize()
			win.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := w.paintState(l, hoverTool, hoverShortcut)
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			repaint, quit := w.handleMouse(l, e, &hoverTool, &hoverShortcut)
			if quit {
				stopPaint()
				return
			}
			if repaint {
				win.Send(paint.Event{})
			}
		case touch.Event:
			if w.handleTouch(l, e) {
				win.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if w.handleKey(e) {
				stopPaint()
				return
			}
		case error:
			log.Print(e)
		}
	}
}
