package editor

import (
	"fmt"
	"image"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/markchart/internal/geom"
)

// Phase is the step of a pointer gesture.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// PointerEvent is the device independent input the editor consumes.
// Pos is relative to the container's top-left corner.
type PointerEvent struct {
	Phase Phase
	Pos   geom.Point
}

// Down returns a press at (x, y).
func Down(x, y float64) PointerEvent { return PointerEvent{PhaseDown, geom.Pt(x, y)} }

// Move returns a motion to (x, y).
func Move(x, y float64) PointerEvent { return PointerEvent{PhaseMove, geom.Pt(x, y)} }

// Up returns a release.
func Up() PointerEvent { return PointerEvent{Phase: PhaseUp} }

// Cancel returns an aborted gesture.
func Cancel() PointerEvent { return PointerEvent{Phase: PhaseCancel} }

// FromMouse converts a window mouse event. origin is the container's
// top-left corner in window pixels. Only the left button and plain motion
// are translated; wheel and other buttons report false.
func FromMouse(e mouse.Event, origin image.Point) (PointerEvent, bool) {
	pos := geom.Pt(float64(e.X)-float64(origin.X), float64(e.Y)-float64(origin.Y))
	if e.Button.IsWheel() {
		return PointerEvent{}, false
	}
	switch e.Direction {
	case mouse.DirNone:
		return PointerEvent{PhaseMove, pos}, true
	case mouse.DirPress:
		if e.Button == mouse.ButtonLeft {
			return PointerEvent{PhaseDown, pos}, true
		}
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			return PointerEvent{PhaseUp, pos}, true
		}
	}
	return PointerEvent{}, false
}

// FromTouch converts a touch event. Only the first finger is followed.
func FromTouch(e touch.Event, origin image.Point) (PointerEvent, bool) {
	if e.Sequence != 0 {
		return PointerEvent{}, false
	}
	pos := geom.Pt(float64(e.X)-float64(origin.X), float64(e.Y)-float64(origin.Y))
	switch e.Type {
	case touch.TypeBegin:
		return PointerEvent{PhaseDown, pos}, true
	case touch.TypeMove:
		return PointerEvent{PhaseMove, pos}, true
	case touch.TypeEnd:
		return PointerEvent{PhaseUp, pos}, true
	}
	return PointerEvent{}, false
}
