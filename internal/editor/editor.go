// Package editor turns pointer gestures into changes of the annotation
// store or of the view, depending on the active tool.
package editor

import (
	"image"

	"github.com/npillmayer/schuko/tracing"

	"github.com/example/markchart/internal/geom"
	"github.com/example/markchart/internal/render"
	"github.com/example/markchart/internal/shape"
	"github.com/example/markchart/internal/viewport"
)

// tracer traces with key 'markchart.editor'
func tracer() tracing.Trace {
	return tracing.Select("markchart.editor")
}

// Editor is one editing session over one diagram. It is driven from a
// single goroutine and is not safe for concurrent use.
type Editor struct {
	store    *shape.Store
	view     *viewport.Viewport
	renderer *render.Renderer
	surface  *image.RGBA

	tool     Tool
	state    State
	pressed  bool
	anchor   geom.Point // screen position of the last down or drag step
	panStart geom.Point
	buffer   []geom.Point

	caps    shape.Caps
	tol     shape.Tolerance
	width   float64
	autoPan bool

	onRedraw func()
	onReject func(error)
}

// Option configures an Editor.
type Option func(*Editor)

// WithCaps sets the per-glyph stamp limits.
func WithCaps(c shape.Caps) Option { return func(e *Editor) { e.caps = c } }

// WithTolerance sets the hit test radii.
func WithTolerance(t shape.Tolerance) Option { return func(e *Editor) { e.tol = t } }

// WithStrokeWidth sets the width of committed strokes.
func WithStrokeWidth(w float64) Option {
	return func(e *Editor) {
		if w > 0 {
			e.width = w
		}
	}
}

// WithAutoPan controls whether zooming and resetting re-arm the pan tool.
func WithAutoPan(on bool) Option { return func(e *Editor) { e.autoPan = on } }

// WithRenderer replaces the default renderer.
func WithRenderer(r *render.Renderer) Option { return func(e *Editor) { e.renderer = r } }

// WithViewport replaces the default viewport.
func WithViewport(v *viewport.Viewport) Option { return func(e *Editor) { e.view = v } }

// WithContentSize sets the natural size of the diagram in pixels.
func WithContentSize(w, h int) Option {
	return func(e *Editor) {
		e.surface = image.NewRGBA(image.Rect(0, 0, w, h))
	}
}

// WithTool sets the initial tool.
func WithTool(t Tool) Option { return func(e *Editor) { e.tool = t } }

// WithRedraw registers a hook run after every change that needs a repaint.
func WithRedraw(fn func()) Option { return func(e *Editor) { e.onRedraw = fn } }

// WithRejectHandler registers the receiver of refused operations, such as
// a stamp beyond its cap.
func WithRejectHandler(fn func(error)) Option { return func(e *Editor) { e.onReject = fn } }

// New creates an Editor with an empty store.
func New(opts ...Option) *Editor {
	e := &Editor{
		store:   shape.NewStore(),
		tool:    ToolPan,
		caps:    shape.DefaultCaps(),
		tol:     shape.DefaultTolerance,
		width:   shape.DefaultWidth,
		autoPan: true,
	}
	for _, o := range opts {
		o(e)
	}
	if e.view == nil {
		e.view = viewport.New()
	}
	if e.renderer == nil {
		e.renderer = render.New(render.DefaultStyle())
	}
	if e.surface != nil {
		b := e.surface.Bounds()
		e.view.SetContentSize(float64(b.Dx()), float64(b.Dy()))
	}
	e.redraw()
	return e
}

func (e *Editor) Tool() Tool { return e.tool }

func (e *Editor) State() State { return e.state }

func (e *Editor) Len() int { return e.store.Len() }

func (e *Editor) Selected() int { return e.store.Selected() }

// Shapes returns copies of the committed shapes, bottom to top.
func (e *Editor) Shapes() []shape.Shape { return e.store.All() }

// Buffer returns a copy of the stroke being drawn.
func (e *Editor) Buffer() []geom.Point {
	out := make([]geom.Point, len(e.buffer))
	copy(out, e.buffer)
	return out
}

// Transform returns the live content -> screen transform.
func (e *Editor) Transform() geom.Transform { return e.view.Transform() }

// Viewport exposes the view for read access by hosts.
func (e *Editor) Viewport() *viewport.Viewport { return e.view }

// Surface returns the annotation layer at the diagram's natural size. It
// is rewritten in place on every change.
func (e *Editor) Surface() *image.RGBA { return e.surface }

// Caps returns the stamp limits in force.
func (e *Editor) Caps() shape.Caps { return e.caps }

// Handle feeds one pointer event through the state machine. Malformed
// sequences, such as a move or up without a down, are ignored.
func (e *Editor) Handle(ev PointerEvent) {
	switch ev.Phase {
	case PhaseDown:
		if e.pressed {
			e.release()
		}
		e.press(ev.Pos)
	case PhaseMove:
		e.drag(ev.Pos)
	case PhaseUp, PhaseCancel:
		e.release()
	}
}

func (e *Editor) content(p geom.Point) geom.Point {
	return geom.ToContent(p, e.view.Transform())
}

func (e *Editor) press(p geom.Point) {
	e.pressed = true
	e.anchor = p
	switch e.tool {
	case ToolPan:
		e.state = StatePanning
		e.panStart = e.view.Pan()
		e.view.SetSmooth(false)
		e.view.Apply()
	case ToolSelect:
		idx := e.store.FindAt(e.content(p), e.tol)
		e.store.Select(idx)
		e.state = StateIdle
		tracer().Debugf("select %d", idx)
		e.redraw()
	case ToolStampM, ToolStampX:
		g, _ := e.tool.Glyph()
		if err := e.caps.Check(g, e.store.CountGlyph(g)); err != nil {
			tracer().Infof("stamp refused: %v", err)
			e.reject(err)
			return
		}
		e.store.Append(shape.Symbol{At: e.content(p), Glyph: g})
		e.redraw()
	case ToolPenBlack, ToolPenRed:
		e.buffer = append(e.buffer[:0], e.content(p))
		e.state = StateDrawing
		e.redraw()
	}
}

func (e *Editor) drag(p geom.Point) {
	if !e.pressed {
		return
	}
	if e.state == StateIdle && e.tool == ToolSelect && e.store.Selected() != shape.None {
		e.state = StateDragging
	}
	switch e.state {
	case StatePanning:
		e.view.PanTo(e.panStart.Add(p.Sub(e.anchor)))
		e.view.Apply()
		e.notify()
	case StateDragging:
		d := p.Sub(e.anchor).Div(e.view.Scale())
		e.anchor = p
		e.store.Translate(e.store.Selected(), d)
		e.redraw()
	case StateDrawing:
		e.buffer = append(e.buffer, e.content(p))
		e.redraw()
	}
}

func (e *Editor) release() {
	if !e.pressed {
		return
	}
	e.pressed = false
	prev := e.state
	e.state = StateIdle
	switch prev {
	case StatePanning:
		e.view.ClampPan()
		e.view.SetSmooth(true)
		e.view.Apply()
		e.notify()
	case StateDrawing:
		pen, _ := e.tool.Pen()
		if len(e.buffer) >= 2 {
			e.store.Append(shape.Stroke{Points: e.buffer, Pen: pen, Width: e.width})
		} else {
			tracer().Debugf("dropping stroke with %d point(s)", len(e.buffer))
		}
		e.buffer = nil
		e.redraw()
	}
}

// SetTool switches tools. Any selection and unfinished stroke are dropped.
func (e *Editor) SetTool(t Tool) {
	e.tool = t
	e.state = StateIdle
	e.pressed = false
	e.buffer = nil
	e.store.Select(shape.None)
	if !e.view.Transform().Smooth {
		e.view.SetSmooth(true)
		e.view.Apply()
	}
	tracer().Debugf("tool %s", t)
	e.redraw()
}

// ZoomBy changes the scale by delta within the zoom bounds and, with
// auto-pan on, switches to the pan tool.
func (e *Editor) ZoomBy(delta float64) {
	e.view.ZoomBy(delta)
	e.view.Apply()
	if e.autoPan {
		e.SetTool(ToolPan)
		return
	}
	e.notify()
}

// ResetView fits the diagram to the container and, with auto-pan on,
// switches to the pan tool.
func (e *Editor) ResetView() {
	e.view.Fit()
	e.view.Apply()
	if e.autoPan {
		e.SetTool(ToolPan)
		return
	}
	e.notify()
}

// ResizeToContainer records the container size and refits. Calling it
// again with the same size yields the same transform.
func (e *Editor) ResizeToContainer(w, h float64) {
	e.view.SetContainerSize(w, h)
	e.view.Fit()
	e.view.Apply()
	e.notify()
}

// SetContentSize replaces the annotation surface with one of w×h pixels.
// Existing shapes are kept in content coordinates.
func (e *Editor) SetContentSize(w, h int) {
	e.surface = image.NewRGBA(image.Rect(0, 0, w, h))
	e.view.SetContentSize(float64(w), float64(h))
	e.view.Fit()
	e.view.Apply()
	e.redraw()
}

// DeleteSelected removes the selected shape.
func (e *Editor) DeleteSelected() bool {
	i := e.store.Selected()
	if !e.store.RemoveAt(i) {
		return false
	}
	e.redraw()
	return true
}

// Undo removes the most recently added shape.
func (e *Editor) Undo() bool {
	if _, ok := e.store.PopLast(); !ok {
		return false
	}
	e.redraw()
	return true
}

// ClearAll removes every shape. Asking the user first is up to the host.
func (e *Editor) ClearAll() {
	e.store.Clear()
	e.redraw()
}

// Snapshot is a read-only view of the session for export.
type Snapshot struct {
	Shapes []shape.Shape
	Image  *image.RGBA
}

// Snapshot renders the shapes without selection emphasis or the stroke in
// progress. The editor is left untouched.
func (e *Editor) Snapshot() Snapshot {
	snap := Snapshot{Shapes: e.store.All()}
	if e.surface != nil {
		snap.Image = image.NewRGBA(e.surface.Bounds())
		e.renderer.Draw(snap.Image, render.Scene{Shapes: snap.Shapes, Selected: shape.None})
	}
	return snap
}

func (e *Editor) redraw() {
	if e.surface != nil {
		pen, _ := e.tool.Pen()
		e.renderer.Draw(e.surface, render.Scene{
			Shapes:      e.store.All(),
			Selected:    e.store.Selected(),
			Buffer:      e.buffer,
			BufferPen:   pen,
			BufferWidth: e.width,
		})
	}
	e.notify()
}

func (e *Editor) notify() {
	if e.onRedraw != nil {
		e.onRedraw()
	}
}

func (e *Editor) reject(err error) {
	if e.onReject != nil {
		e.onReject(err)
	}
}
