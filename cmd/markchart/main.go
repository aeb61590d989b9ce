package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"github.com/example/markchart/internal/config"
	"github.com/example/markchart/internal/notify"
	"github.com/example/markchart/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// traceKeys are the engine packages whose tracers -trace adjusts.
var traceKeys = []string{
	"markchart.editor",
	"markchart.shape",
	"markchart.viewport",
	"markchart.script",
}

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	configPath   string
	rejectAlerts bool
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	traceLevel   string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:      program,
		notifier:     r.notifier,
		config:       r.config,
		configPath:   r.configPath,
		rejectAlerts: r.rejectAlerts,
		exportAlerts: r.exportAlerts,
		copyAlerts:   r.copyAlerts,
		themeName:    r.themeName,
		traceLevel:   r.traceLevel,
		activeTheme:  r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	cfg := loadConfig(configPathOverride)

	r := &root{
		fs:         flag.NewFlagSet("markchart", flag.ExitOnError),
		program:    "markchart",
		notifier:   notify.New(prefs),
		config:     cfg,
		configPath: configPathOverride,
	}
	r.fs.BoolVar(&r.rejectAlerts, "notify-reject", cfg.Notify.Reject, "show a desktop notification when a mark is refused")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a chart")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to load")
	r.fs.StringVar(&r.traceLevel, "trace", "Error", "engine trace level [Debug|Info|Error]")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast)")
	r.fs.Usage = usageFunc(r)
	return r
}

func loadConfig(path string) *config.Config {
	cfg, err := config.NewLoader(version, path).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		return config.New()
	}
	return cfg
}

// reloadConfig picks up a -config file given on the command line. Notify
// flags that were not set explicitly follow the newly loaded file.
func (r *root) reloadConfig() {
	if r.configPath == "" || r.configPath == configPathOverride {
		return
	}
	r.config = loadConfig(r.configPath)
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-reject"] {
		r.rejectAlerts = r.config.Notify.Reject
	}
	if !set["notify-export"] {
		r.exportAlerts = r.config.Notify.Export
	}
	if !set["notify-copy"] {
		r.copyAlerts = r.config.Notify.Copy
	}
}

// setupTracing routes the engine tracers to the standard logger.
func setupTracing(level string) error {
	switch level {
	case "Debug", "Info", "Error":
	default:
		return fmt.Errorf("invalid trace level: %s", level)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// resolveTheme picks the theme named on the command line, in the
// environment or in the config, in that order, and records the name used.
func (r *root) resolveTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("MARKCHART_THEME")
	}
	if themeName == "" {
		themeName = r.config.Theme
	}
	r.themeName = themeName
	if themeName == "" {
		r.themeName = "default"
	}

	if cfgTheme, ok := r.config.Themes[themeName]; ok {
		return cfgTheme
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		if themeName != "" && themeName != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		r.themeName = "default"
		return theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.reloadConfig()
	if err := setupTracing(r.traceLevel); err != nil {
		return err
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventReject, r.rejectAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "themes":
		cmd = &themesCmd{root: r.subcommand("themes")}
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
