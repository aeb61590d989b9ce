package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/script"
)

// replayCmd runs a gesture script headless and writes the result.
type replayCmd struct {
	*root
	fs      *flag.FlagSet
	script  string
	diagram string
	output  string
	copy    bool
	width   float64
	height  float64
}

func (rc *replayCmd) FlagSet() *flag.FlagSet {
	return rc.fs
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	rc := &replayCmd{root: r.subcommand("replay"), fs: fs}
	fs.StringVar(&rc.script, "script", "", "gesture script to run")
	fs.StringVar(&rc.diagram, "diagram", r.config.Diagram, "diagram image under the marks")
	fs.StringVar(&rc.output, "o", "chart.png", "output file (.pdf or .png)")
	fs.BoolVar(&rc.copy, "copy", false, "also copy the result to the clipboard")
	fs.Float64Var(&rc.width, "width", 0, "container width the gestures were recorded in (default diagram width)")
	fs.Float64Var(&rc.height, "height", 0, "container height the gestures were recorded in (default diagram height)")
	fs.Usage = usageFunc(rc)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rc.script == "" && fs.NArg() == 1 {
		rc.script = fs.Arg(0)
	}
	if rc.script == "" {
		return nil, &UsageError{of: rc}
	}
	if rc.width < 0 || rc.height < 0 {
		return nil, fmt.Errorf("container size must not be negative")
	}
	return rc, nil
}

func (rc *replayCmd) Run() error {
	p, err := script.NewParser()
	if err != nil {
		return err
	}
	sc, err := p.ParseFile(rc.script)
	if err != nil {
		return err
	}

	diagram := loadDiagram(rc.diagram, rc.config, rc.activeTheme)
	ed := newEditor(rc.config, rc.activeTheme, diagram,
		editor.WithRejectHandler(func(err error) {
			log.Printf("replay: %v", err)
			rc.notifier.Reject(err)
		}),
	)
	w, h := rc.width, rc.height
	b := diagram.Bounds()
	if w == 0 {
		w = float64(b.Dx())
	}
	if h == 0 {
		h = float64(b.Dy())
	}
	ed.ResizeToContainer(w, h)

	s := script.NewSession(ed)
	if err := s.Run(sc); err != nil {
		return err
	}

	path := outputPath(rc.output, rc.config)
	img, err := writeChart(path, diagram, ed, *s.Chart)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d marks, %s)\n", path, ed.Len(), s.Chart.Status())
	rc.notifier.Export(path, img)

	if rc.copy {
		if err := copyImageFn(img); err != nil {
			return fmt.Errorf("copy chart: %w", err)
		}
		rc.notifier.Copy(path)
	}
	return nil
}
