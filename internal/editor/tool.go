package editor

import (
	"fmt"
	"strings"

	"github.com/example/markchart/internal/shape"
)

// Tool is the active input mode.
type Tool int

const (
	ToolPan Tool = iota
	ToolSelect
	ToolPenBlack
	ToolPenRed
	ToolStampM
	ToolStampX
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolPan, ToolSelect, ToolPenBlack, ToolPenRed, ToolStampM, ToolStampX}

var toolNames = map[Tool]string{
	ToolPan:      "pan",
	ToolSelect:   "select",
	ToolPenBlack: "pen-black",
	ToolPenRed:   "pen-red",
	ToolStampM:   "stamp-m",
	ToolStampX:   "stamp-x",
}

func (t Tool) String() string {
	if n, ok := toolNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool reads a tool name as printed by String. A few short aliases
// are accepted too.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "black", "pen":
		return ToolPenBlack, nil
	case "red":
		return ToolPenRed, nil
	case "m":
		return ToolStampM, nil
	case "x":
		return ToolStampX, nil
	}
	for t, n := range toolNames {
		if n == s {
			return t, nil
		}
	}
	return ToolPan, fmt.Errorf("unknown tool %q", s)
}

// Pen reports the stroke color of a drawing tool.
func (t Tool) Pen() (shape.Pen, bool) {
	switch t {
	case ToolPenBlack:
		return shape.PenBlack, true
	case ToolPenRed:
		return shape.PenRed, true
	}
	return 0, false
}

// Glyph reports the glyph placed by a stamp tool.
func (t Tool) Glyph() (shape.Glyph, bool) {
	switch t {
	case ToolStampM:
		return shape.GlyphM, true
	case ToolStampX:
		return shape.GlyphX, true
	}
	return "", false
}

// State is the gesture currently in progress.
type State int

const (
	StateIdle State = iota
	StatePanning
	StateDrawing
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePanning:
		return "panning"
	case StateDrawing:
		return "drawing"
	case StateDragging:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
