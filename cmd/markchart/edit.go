package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/export"
	"github.com/example/markchart/internal/script"
	"github.com/example/markchart/internal/window"
)

// editCmd opens the diagram in a window.
type editCmd struct {
	*root
	fs      *flag.FlagSet
	diagram string
	output  string
	tool    string
	script  string
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.StringVar(&e.diagram, "diagram", r.config.Diagram, "diagram image to annotate")
	fs.StringVar(&e.output, "o", export.DefaultFilename, "PDF written by the export action")
	fs.StringVar(&e.tool, "tool", "pan", "initial tool")
	fs.StringVar(&e.script, "script", "", "gesture script applied before the window opens")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	tool, err := editor.ParseTool(e.tool)
	if err != nil {
		return err
	}
	diagram := loadDiagram(e.diagram, e.config, e.activeTheme)

	var win *window.Window
	ed := newEditor(e.config, e.activeTheme, diagram,
		editor.WithTool(tool),
		editor.WithRedraw(func() {
			if win != nil {
				win.Invalidate()
			}
		}),
		editor.WithRejectHandler(func(err error) {
			if win != nil {
				win.Reject(err)
				return
			}
			log.Printf("script: %v", err)
		}),
	)

	chart := &export.Chart{}
	if e.script != "" {
		if err := e.preload(ed, chart); err != nil {
			return err
		}
	}

	win = window.New(ed, diagram,
		window.WithTheme(e.activeTheme),
		window.WithChart(chart),
		window.WithOutput(outputPath(e.output, e.config)),
		window.WithZoomStep(e.config.Editor.ZoomStep),
		window.WithNotifier(e.notifier),
	)
	win.Run()
	return nil
}

// preload replays a script so a session can continue from recorded marks.
func (e *editCmd) preload(ed *editor.Editor, chart *export.Chart) error {
	p, err := script.NewParser()
	if err != nil {
		return err
	}
	sc, err := p.ParseFile(e.script)
	if err != nil {
		return err
	}
	s := script.NewSession(ed)
	s.Chart = chart
	if err := s.Run(sc); err != nil {
		return fmt.Errorf("preload %s: %w", e.script, err)
	}
	return nil
}
