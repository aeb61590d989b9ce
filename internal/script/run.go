package script

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/export"
)

// tracer traces with key 'markchart.script'
func tracer() tracing.Trace {
	return tracing.Select("markchart.script")
}

// Session is the target of script commands.
type Session struct {
	Editor *editor.Editor
	Chart  *export.Chart
}

// NewSession wraps ed with an empty chart.
func NewSession(ed *editor.Editor) *Session {
	return &Session{Editor: ed, Chart: &export.Chart{}}
}

// Run executes every command in order and stops at the first failure.
// Refused stamps are not failures; they reach the editor's reject handler.
func (s *Session) Run(sc *Script) error {
	for _, cmd := range sc.Commands {
		if err := s.Exec(cmd); err != nil {
			return fmt.Errorf("%s: %w", cmd.Pos, err)
		}
	}
	return nil
}

// Exec executes a single command.
func (s *Session) Exec(cmd *Command) error {
	ed := s.Editor
	switch {
	case cmd.Tool != nil:
		t, err := editor.ParseTool(*cmd.Tool)
		if err != nil {
			return err
		}
		ed.SetTool(t)
	case cmd.Down != nil:
		ed.Handle(editor.Down(cmd.Down.X, cmd.Down.Y))
	case cmd.Move != nil:
		ed.Handle(editor.Move(cmd.Move.X, cmd.Move.Y))
	case cmd.Up:
		ed.Handle(editor.Up())
	case cmd.Cancel:
		ed.Handle(editor.Cancel())
	case cmd.Zoom != nil:
		ed.ZoomBy(*cmd.Zoom)
	case cmd.Reset:
		ed.ResetView()
	case cmd.Resize != nil:
		if cmd.Resize.X <= 0 || cmd.Resize.Y <= 0 {
			return fmt.Errorf("resize needs a positive size, got %gx%g", cmd.Resize.X, cmd.Resize.Y)
		}
		ed.ResizeToContainer(cmd.Resize.X, cmd.Resize.Y)
	case cmd.Delete:
		ed.DeleteSelected()
	case cmd.Undo:
		ed.Undo()
	case cmd.Clear:
		ed.ClearAll()
	case cmd.Field != nil:
		return s.Chart.Set(cmd.Field.Name, cmd.Field.Value)
	case cmd.Date != nil:
		return s.Chart.SetDate(*cmd.Date)
	case cmd.Approve != nil:
		s.Chart.Approve(*cmd.Approve)
	default:
		return fmt.Errorf("empty command")
	}
	tracer().Debugf("%s: %s state=%s shapes=%d", cmd.Pos, cmd, ed.State(), ed.Len())
	return nil
}

// String renders the command back in script syntax.
func (c *Command) String() string {
	switch {
	case c.Tool != nil:
		return "tool " + *c.Tool
	case c.Down != nil:
		return fmt.Sprintf("down %g %g", c.Down.X, c.Down.Y)
	case c.Move != nil:
		return fmt.Sprintf("move %g %g", c.Move.X, c.Move.Y)
	case c.Up:
		return "up"
	case c.Cancel:
		return "cancel"
	case c.Zoom != nil:
		return fmt.Sprintf("zoom %g", *c.Zoom)
	case c.Reset:
		return "reset"
	case c.Resize != nil:
		return fmt.Sprintf("resize %g %g", c.Resize.X, c.Resize.Y)
	case c.Delete:
		return "delete"
	case c.Undo:
		return "undo"
	case c.Clear:
		return "clear"
	case c.Field != nil:
		return fmt.Sprintf("field %s %q", c.Field.Name, c.Field.Value)
	case c.Date != nil:
		return fmt.Sprintf("date %q", *c.Date)
	case c.Approve != nil:
		return fmt.Sprintf("approve %q", *c.Approve)
	}
	return ""
}
