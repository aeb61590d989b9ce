package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/script"
	"github.com/example/markchart/internal/shape"
)

// interactiveCmd drives one editor from a prompt.
type interactiveCmd struct {
	*root
	fs      *flag.FlagSet
	diagram string
	width   float64
	height  float64

	image   image.Image
	parser  *script.Parser
	session *script.Session
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r.subcommand("interactive"), fs: fs}
	fs.StringVar(&i.diagram, "diagram", r.config.Diagram, "diagram image under the marks")
	fs.Float64Var(&i.width, "width", 0, "container width (default diagram width)")
	fs.Float64Var(&i.height, "height", 0, "container height (default diagram height)")
	fs.Usage = usageFunc(i)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return i, nil
}

// setup creates the editor the prompt works on.
func (i *interactiveCmd) setup() error {
	p, err := script.NewParser()
	if err != nil {
		return err
	}
	i.parser = p
	i.image = loadDiagram(i.diagram, i.config, i.activeTheme)
	ed := newEditor(i.config, i.activeTheme, i.image,
		editor.WithRejectHandler(func(err error) {
			pterm.Warning.Println(err.Error())
			i.notifier.Reject(err)
		}),
	)
	b := i.image.Bounds()
	w, h := i.width, i.height
	if w <= 0 {
		w = float64(b.Dx())
	}
	if h <= 0 {
		h = float64(b.Dy())
	}
	ed.ResizeToContainer(w, h)
	i.session = script.NewSession(ed)
	return nil
}

func (i *interactiveCmd) Run() error {
	if err := i.setup(); err != nil {
		return err
	}
	repl, err := readline.New("markchart > ")
	if err != nil {
		return err
	}
	defer repl.Close()

	pterm.Info.Println("Enter script commands, 'help' for a list. Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		quit, err := i.execLine(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

// execLine runs one prompt line. It reports true when the user asked to
// leave.
func (i *interactiveCmd) execLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		pterm.Println(strings.TrimSpace(replayHelp))
		return false, nil
	case "show":
		i.show()
		return false, nil
	case "status":
		i.status()
		return false, nil
	case "export":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: export PATH")
		}
		return false, i.export(fields[1])
	}
	sc, err := i.parser.ParseString("input", line)
	if err != nil {
		return false, err
	}
	return false, i.session.Run(sc)
}

const replayHelp = `
tool NAME | down X Y | move X Y | up | cancel | zoom D | reset
resize W H | delete | undo | clear
field NAME "VALUE" | date "YYYY-MM-DD" | approve "SIGNATORY"
show | status | export PATH | quit`

func (i *interactiveCmd) show() {
	ed := i.session.Editor
	data := [][]string{{"#", "Mark", "Selected"}}
	for n, sh := range ed.Shapes() {
		sel := ""
		if n == ed.Selected() {
			sel = "*"
		}
		data = append(data, []string{strconv.Itoa(n), shape.Describe(sh), sel})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	fields := [][]string{{"Field", "Value"}}
	for _, f := range i.session.Chart.Fields() {
		fields = append(fields, []string{f.Label, f.Value})
	}
	fields = append(fields, []string{"Exam date", i.session.Chart.ExamDate})
	fields = append(fields, []string{"Status", i.session.Chart.Status()})
	pterm.DefaultTable.WithHasHeader().WithData(fields).Render()
}

func (i *interactiveCmd) status() {
	ed := i.session.Editor
	t := ed.Transform()
	pterm.Printf("tool=%s state=%s marks=%d scale=%.2f pan=(%.1f,%.1f)\n",
		ed.Tool(), ed.State(), ed.Len(), t.Scale, t.PanX, t.PanY)
}

func (i *interactiveCmd) export(name string) error {
	path := outputPath(name, i.config)
	img, err := writeChart(path, i.image, i.session.Editor, *i.session.Chart)
	if err != nil {
		return err
	}
	pterm.Success.Printf("wrote %s\n", path)
	i.notifier.Export(path, img)
	return nil
}
