package editor

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"

	"github.com/example/markchart/internal/geom"
	"github.com/example/markchart/internal/render"
	"github.com/example/markchart/internal/shape"
)

// --- Test Suite Preparation ------------------------------------------------

type EditorTestEnviron struct {
	suite.Suite
	ed       *Editor
	redraws  int
	rejected []error
}

func TestEditor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "markchart.editor")
	defer teardown()
	suite.Run(t, new(EditorTestEnviron))
}

// run before each test: a 400x300 diagram in an 800x600 container, which
// fits at scale 2 with no pan.
func (env *EditorTestEnviron) SetupTest() {
	env.redraws = 0
	env.rejected = nil
	env.ed = New(
		WithContentSize(400, 300),
		WithRedraw(func() { env.redraws++ }),
		WithRejectHandler(func(err error) { env.rejected = append(env.rejected, err) }),
	)
	env.ed.ResizeToContainer(800, 600)
	env.Require().InDelta(2.0, env.ed.Transform().Scale, 1e-9)
}

func (env *EditorTestEnviron) gesture(evs ...PointerEvent) {
	for _, ev := range evs {
		env.ed.Handle(ev)
	}
}

func (env *EditorTestEnviron) stamp(t Tool, x, y float64) {
	env.ed.SetTool(t)
	env.gesture(Down(x, y), Up())
}

// --- Tests -----------------------------------------------------------------

func (env *EditorTestEnviron) TestStampPlacedInContentSpace() {
	env.stamp(ToolStampX, 200, 100)
	env.Require().Equal(1, env.ed.Len())
	sym := env.ed.Shapes()[0].(shape.Symbol)
	env.Equal(geom.Pt(100, 50), sym.At)
	env.Equal(shape.GlyphX, sym.Glyph)
	env.Equal(StateIdle, env.ed.State())
}

func (env *EditorTestEnviron) TestGlyphCap() {
	for i := 0; i < 3; i++ {
		env.stamp(ToolStampM, float64(100+50*i), 100)
	}
	env.Equal(2, env.ed.Len())
	env.Require().Len(env.rejected, 1)
	env.True(errors.Is(env.rejected[0], shape.ErrGlyphLimit))
	env.Equal(StateIdle, env.ed.State())

	// X stamps are not capped by default
	for i := 0; i < 5; i++ {
		env.stamp(ToolStampX, 10, float64(10*i))
	}
	env.Equal(7, env.ed.Len())
}

func (env *EditorTestEnviron) TestConfiguredCap() {
	ed := New(WithContentSize(100, 100), WithCaps(shape.Caps{shape.GlyphM: 3, shape.GlyphX: 1}))
	for i := 0; i < 4; i++ {
		ed.SetTool(ToolStampM)
		ed.Handle(Down(1, 1))
		ed.Handle(Up())
		ed.SetTool(ToolStampX)
		ed.Handle(Down(2, 2))
		ed.Handle(Up())
	}
	env.Equal(4, ed.Len())
}

func (env *EditorTestEnviron) TestSingleTapStrokeDropped() {
	env.ed.SetTool(ToolPenRed)
	env.gesture(Down(50, 50))
	env.Equal(StateDrawing, env.ed.State())
	env.gesture(Up())
	env.Equal(0, env.ed.Len())
	env.Empty(env.ed.Buffer())
	env.Equal(StateIdle, env.ed.State())
}

func (env *EditorTestEnviron) TestStrokeCommitted() {
	env.ed.SetTool(ToolPenRed)
	env.gesture(Down(20, 20), Move(40, 20), Move(40, 60))
	want := []geom.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 30}}
	env.Equal(want, env.ed.Buffer())
	env.gesture(Up())
	env.Require().Equal(1, env.ed.Len())
	st := env.ed.Shapes()[0].(shape.Stroke)
	env.Equal(want, st.Points)
	env.Equal(shape.PenRed, st.Pen)
	env.Equal(float64(shape.DefaultWidth), st.Width)
	env.Empty(env.ed.Buffer())
	env.NotZero(env.ed.Surface().RGBAAt(15, 10).A, "stroke should be on the surface")
}

func (env *EditorTestEnviron) TestCancelEndsStroke() {
	env.ed.SetTool(ToolPenBlack)
	env.gesture(Down(20, 20), Move(30, 30), Cancel())
	env.Equal(StateIdle, env.ed.State())
	env.Equal(1, env.ed.Len())
}

func (env *EditorTestEnviron) TestSelectThenDragIncrementally() {
	env.stamp(ToolStampX, 200, 200) // content (100,100)
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(204, 200))
	env.Equal(0, env.ed.Selected())
	env.Equal(StateIdle, env.ed.State(), "a click alone does not drag")

	env.gesture(Move(224, 200))
	env.Equal(StateDragging, env.ed.State())
	env.Equal(geom.Pt(110, 100), env.ed.Shapes()[0].(shape.Symbol).At)

	env.gesture(Move(244, 220))
	env.Equal(geom.Pt(120, 110), env.ed.Shapes()[0].(shape.Symbol).At)

	env.gesture(Up())
	env.Equal(StateIdle, env.ed.State())
	env.Equal(0, env.ed.Selected(), "moving keeps the selection")
}

func (env *EditorTestEnviron) TestDragStroke() {
	env.ed.SetTool(ToolPenBlack)
	env.gesture(Down(0, 0), Move(100, 0), Up())
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(100, 0), Move(100, 20), Up())
	st := env.ed.Shapes()[0].(shape.Stroke)
	env.Equal([]geom.Point{{X: 0, Y: 10}, {X: 50, Y: 10}}, st.Points)
}

func (env *EditorTestEnviron) TestZeroDeltaDoesNothing() {
	env.stamp(ToolStampX, 200, 200)
	before := env.ed.Shapes()
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(200, 200), Up())
	env.Equal(before, env.ed.Shapes())
	env.Equal(1, env.ed.Len())
}

func (env *EditorTestEnviron) TestSelectMiss() {
	env.stamp(ToolStampX, 200, 200)
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(600, 500), Move(620, 520), Up())
	env.Equal(shape.None, env.ed.Selected())
	env.Equal(geom.Pt(100, 100), env.ed.Shapes()[0].(shape.Symbol).At)
}

func (env *EditorTestEnviron) TestMalformedSequences() {
	env.ed.SetTool(ToolPenBlack)
	env.gesture(Up(), Move(10, 10), Cancel(), Up())
	env.Equal(StateIdle, env.ed.State())
	env.Equal(0, env.ed.Len())

	// a second down without an up closes the first gesture
	env.gesture(Down(0, 0), Move(10, 0), Down(50, 50), Move(60, 50), Up())
	env.Equal(2, env.ed.Len())
}

func (env *EditorTestEnviron) TestToolSwitchClearsState() {
	env.stamp(ToolStampX, 200, 200)
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(200, 200))
	env.ed.SetTool(ToolPenRed)
	env.Equal(shape.None, env.ed.Selected())
	env.gesture(Down(10, 10), Move(20, 20))
	env.ed.SetTool(ToolPenBlack)
	env.Empty(env.ed.Buffer())
	env.Equal(StateIdle, env.ed.State())
	env.gesture(Move(30, 30), Up())
	env.Equal(1, env.ed.Len())
}

func (env *EditorTestEnviron) TestPanning() {
	env.ed.ZoomBy(1) // scale 3, content 1200x900 in 800x600
	env.Equal(ToolPan, env.ed.Tool())
	env.gesture(Down(100, 100), Move(50, 80))
	env.Equal(StatePanning, env.ed.State())
	tr := env.ed.Transform()
	env.Equal(geom.Pt(-50, -20), tr.Pan())
	env.False(tr.Smooth)
	env.gesture(Move(-2000, 2000), Up())
	tr = env.ed.Transform()
	env.Equal(geom.Pt(-400, 0), tr.Pan())
	env.True(tr.Smooth)
	env.Equal(StateIdle, env.ed.State())
}

func (env *EditorTestEnviron) TestCancelEndsPan() {
	env.ed.ZoomBy(1)
	env.Equal(ToolPan, env.ed.Tool())
	env.gesture(Down(100, 100), Move(-2000, 2000))
	env.False(env.ed.Transform().Smooth)
	env.gesture(Cancel())
	tr := env.ed.Transform()
	env.Equal(StateIdle, env.ed.State())
	env.Equal(geom.Pt(-400, 0), tr.Pan(), "cancel clamps like up")
	env.True(tr.Smooth)
	env.gesture(Move(0, 0))
	env.Equal(geom.Pt(-400, 0), env.ed.Transform().Pan(), "moves after cancel are ignored")
}

func (env *EditorTestEnviron) TestCancelEndsDrag() {
	env.stamp(ToolStampX, 200, 200) // content (100,100)
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(200, 200), Move(240, 220))
	env.Equal(StateDragging, env.ed.State())
	env.gesture(Cancel())
	env.Equal(StateIdle, env.ed.State())
	env.Equal(0, env.ed.Selected())
	env.Equal(geom.Pt(120, 110), env.ed.Shapes()[0].(shape.Symbol).At, "the applied delta stays")
	env.gesture(Move(400, 400))
	env.Equal(geom.Pt(120, 110), env.ed.Shapes()[0].(shape.Symbol).At)
}

func (env *EditorTestEnviron) TestDeleteDuringDrag() {
	env.stamp(ToolStampX, 200, 200)
	env.stamp(ToolStampX, 20, 20)
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(200, 200), Move(220, 200))
	env.Require().Equal(StateDragging, env.ed.State())
	env.True(env.ed.DeleteSelected())
	env.Equal(shape.None, env.ed.Selected())
	env.NotPanics(func() { env.gesture(Move(260, 240), Cancel()) })
	env.Equal(StateIdle, env.ed.State())
	env.Equal(shape.None, env.ed.Selected())
	env.Require().Equal(1, env.ed.Len())
	env.Equal(geom.Pt(10, 10), env.ed.Shapes()[0].(shape.Symbol).At, "the other mark is untouched")
}

func (env *EditorTestEnviron) TestZoomRearmsPan() {
	env.stamp(ToolStampX, 200, 200)
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(200, 200), Up())
	env.ed.ZoomBy(0.5)
	env.Equal(ToolPan, env.ed.Tool())
	env.Equal(shape.None, env.ed.Selected())

	ed := New(WithContentSize(10, 10), WithAutoPan(false), WithTool(ToolSelect))
	ed.ZoomBy(1)
	env.Equal(ToolSelect, ed.Tool())
}

func (env *EditorTestEnviron) TestZoomConverges() {
	for i := 0; i < 4; i++ {
		env.ed.ZoomBy(1000)
	}
	_, hi := env.ed.Viewport().Bounds()
	env.Equal(hi, env.ed.Transform().Scale)
	for i := 0; i < 4; i++ {
		env.ed.ZoomBy(-1000)
	}
	lo, _ := env.ed.Viewport().Bounds()
	env.Equal(lo, env.ed.Transform().Scale)
}

func (env *EditorTestEnviron) TestResizeIsIdempotent() {
	env.ed.ZoomBy(1.3)
	env.ed.ResizeToContainer(1000, 500)
	first := env.ed.Transform()
	env.ed.ResizeToContainer(1000, 500)
	env.Equal(first, env.ed.Transform())
	env.InDelta(500.0/300.0, first.Scale, 1e-9)

	env.ed.ResizeToContainer(0, 0)
	env.Equal(first.Scale, env.ed.Transform().Scale, "zero size keeps last transform")
}

func (env *EditorTestEnviron) TestResetView() {
	env.ed.ZoomBy(2)
	env.ed.SetTool(ToolSelect)
	env.ed.ResetView()
	env.InDelta(2.0, env.ed.Transform().Scale, 1e-9)
	env.Equal(ToolPan, env.ed.Tool())
}

func (env *EditorTestEnviron) TestDeleteUndoClear() {
	env.stamp(ToolStampX, 20, 20)
	env.stamp(ToolStampX, 200, 200)
	env.stamp(ToolStampM, 400, 400)
	env.False(env.ed.DeleteSelected(), "nothing selected")

	env.ed.SetTool(ToolSelect)
	env.gesture(Down(200, 200), Up())
	env.True(env.ed.DeleteSelected())
	env.Equal(2, env.ed.Len())
	env.Equal(shape.None, env.ed.Selected())

	env.True(env.ed.Undo())
	env.Equal(1, env.ed.Len())
	env.Equal(geom.Pt(10, 10), env.ed.Shapes()[0].(shape.Symbol).At)

	env.ed.ClearAll()
	env.Equal(0, env.ed.Len())
	env.False(env.ed.Undo())
}

func (env *EditorTestEnviron) TestSnapshotHidesSelection() {
	env.stamp(ToolStampX, 200, 200)
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(200, 200), Up())
	env.Require().Equal(0, env.ed.Selected())

	snap := env.ed.Snapshot()
	env.Equal(0, env.ed.Selected(), "snapshot leaves the selection alone")
	env.Len(snap.Shapes, 1)

	plain := image.NewRGBA(image.Rect(0, 0, 400, 300))
	render.New(render.DefaultStyle()).Draw(plain, render.Scene{Shapes: snap.Shapes, Selected: shape.None})
	env.True(bytes.Equal(plain.Pix, snap.Image.Pix))
	env.False(bytes.Equal(plain.Pix, env.ed.Surface().Pix), "live surface shows the halo")
}

func (env *EditorTestEnviron) TestSelectionHaloStaysLocal() {
	env.stamp(ToolStampX, 100, 100) // content (50,50)
	env.ed.SetTool(ToolSelect)
	env.gesture(Down(100, 100), Up())
	env.Require().Equal(0, env.ed.Selected())
	surf := env.ed.Surface()
	env.NotZero(surf.RGBAAt(50, 50).A, "mark is drawn")
	env.Equal(color.RGBA{}, surf.RGBAAt(390, 290), "far corner stays transparent")
	env.Equal(color.RGBA{}, surf.RGBAAt(200, 150))
}

func (env *EditorTestEnviron) TestRedrawHook() {
	n := env.redraws
	env.stamp(ToolStampX, 10, 10)
	env.Greater(env.redraws, n)
}
