// Package viewport owns the zoom and pan applied to the annotation surface
// inside its container.
package viewport

import (
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/example/markchart/internal/geom"
)

// tracer traces with key 'markchart.viewport'
func tracer() tracing.Trace {
	return tracing.Select("markchart.viewport")
}

const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 5.0
)

// Viewport holds scale and pan for one content surface shown in one
// container. The zero value is not usable; call New.
type Viewport struct {
	scale     float64
	panX      float64
	panY      float64
	smooth    bool
	content   geom.Size
	container geom.Size
	minZoom   float64
	maxZoom   float64
	sink      func(geom.Transform)
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithBounds sets the zoom range. Invalid ranges are ignored.
func WithBounds(lo, hi float64) Option {
	return func(v *Viewport) {
		if lo > 0 && hi >= lo {
			v.minZoom, v.maxZoom = lo, hi
		}
	}
}

// WithSink registers the receiver of Apply.
func WithSink(fn func(geom.Transform)) Option { return func(v *Viewport) { v.sink = fn } }

// WithContentSize sets the natural size of the content.
func WithContentSize(w, h float64) Option {
	return func(v *Viewport) { v.content = geom.Size{W: w, H: h} }
}

// New returns a viewport at identity scale.
func New(opts ...Option) *Viewport {
	v := &Viewport{
		scale:   1,
		smooth:  true,
		minZoom: DefaultMinZoom,
		maxZoom: DefaultMaxZoom,
	}
	for _, o := range opts {
		o(v)
	}
	v.scale = v.clampScale(v.scale)
	return v
}

func (v *Viewport) Scale() float64 { return v.scale }

func (v *Viewport) Pan() geom.Point { return geom.Point{X: v.panX, Y: v.panY} }

// Bounds returns the zoom range.
func (v *Viewport) Bounds() (lo, hi float64) { return v.minZoom, v.maxZoom }

func (v *Viewport) ContentSize() geom.Size { return v.content }

func (v *Viewport) ContainerSize() geom.Size { return v.container }

// Transform returns the current content -> screen transform.
func (v *Viewport) Transform() geom.Transform {
	return geom.Transform{Scale: v.scale, PanX: v.panX, PanY: v.panY, Smooth: v.smooth}
}

// SetContentSize records the natural size of the content.
func (v *Viewport) SetContentSize(w, h float64) { v.content = geom.Size{W: w, H: h} }

// SetContainerSize records the laid-out size of the container.
func (v *Viewport) SetContainerSize(w, h float64) { v.container = geom.Size{W: w, H: h} }

// SetSmooth toggles animated transitions; panning turns them off.
func (v *Viewport) SetSmooth(on bool) { v.smooth = on }

func (v *Viewport) clampScale(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return v.scale
	}
	return math.Max(v.minZoom, math.Min(v.maxZoom, s))
}

// ZoomBy adds delta to the scale, clamps it to the bounds and re-clamps
// the pan.
func (v *Viewport) ZoomBy(delta float64) {
	v.scale = v.clampScale(v.scale + delta)
	v.ClampPan()
	tracer().Debugf("zoom %+.3f -> %.3f", delta, v.scale)
}

// Fit scales the content to be fully visible in the container and centres
// it. It does nothing and returns false while either size is unknown.
func (v *Viewport) Fit() bool {
	if v.content.Empty() || v.container.Empty() {
		tracer().Debugf("fit skipped: content %v container %v", v.content, v.container)
		return false
	}
	zx := v.container.W / v.content.W
	zy := v.container.H / v.content.H
	v.scale = v.clampScale(math.Min(zx, zy))
	v.panX = (v.container.W - v.content.W*v.scale) / 2
	v.panY = (v.container.H - v.content.H*v.scale) / 2
	v.smooth = true
	tracer().Debugf("fit %vx%v in %vx%v: scale %.3f pan (%.1f,%.1f)",
		v.content.W, v.content.H, v.container.W, v.container.H, v.scale, v.panX, v.panY)
	return true
}

// FitToContainer records both sizes and fits.
func (v *Viewport) FitToContainer(container, content geom.Size) bool {
	v.container = container
	v.content = content
	return v.Fit()
}

// ClampPan centres each axis on which the scaled content is smaller than
// the container and otherwise keeps the content covering the container.
func (v *Viewport) ClampPan() {
	if v.content.Empty() || v.container.Empty() {
		return
	}
	v.panX = clampAxis(v.panX, v.container.W, v.content.W*v.scale)
	v.panY = clampAxis(v.panY, v.container.H, v.content.H*v.scale)
}

func clampAxis(pan, view, extent float64) float64 {
	if extent <= view {
		return (view - extent) / 2
	}
	lo := view - extent
	if pan < lo {
		return lo
	}
	if pan > 0 {
		return 0
	}
	return pan
}

// PanTo sets the pan offset as is. Callers re-clamp once the gesture ends.
func (v *Viewport) PanTo(p geom.Point) {
	v.panX, v.panY = p.X, p.Y
}

// Apply hands the current transform to the sink.
func (v *Viewport) Apply() {
	if v.sink != nil {
		v.sink(v.Transform())
	}
}
