package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/markchart/internal/config"
	"github.com/example/markchart/internal/export"
	"github.com/example/markchart/internal/theme"
)

const replayScript = `
tool pen-red
down 10 150; move 150 150; move 300 150; up
tool stamp-m
down 100 100; up
down 200 100; up
down 300 100; up
field head "blaze"
`

func testRoot(t *testing.T) *root {
	t.Helper()
	return &root{
		program:     "markchart",
		config:      config.New(),
		themeName:   "default",
		activeTheme: theme.Default(),
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gestures.chart")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRootUsage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"replay", "interactive", "-notify-export", "-theme"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	err := r.Run([]string{"fly"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestInvalidTraceLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	err := r.Run([]string{"-trace", "Loud", "version"})
	if err == nil || !strings.Contains(err.Error(), "invalid trace level") {
		t.Fatalf("expected trace level error, got %v", err)
	}
}

func TestReplayRequiresScript(t *testing.T) {
	_, err := parseReplayCmd(nil, testRoot(t))
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "-script") {
		t.Errorf("replay help should list -script:\n%s", uerr.Error())
	}
}

func TestReplayWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseReplayCmd([]string{"-script", writeScript(t, replayScript), "-o", out}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(600, 300) {
		t.Fatalf("size = %v, want placeholder size", got)
	}
	placeholder := theme.Default().Placeholder
	if got := color.RGBAModel.Convert(img.At(150, 150)).(color.RGBA); got == placeholder {
		t.Errorf("stroke pixel still shows the diagram")
	}
	if got := color.RGBAModel.Convert(img.At(500, 250)).(color.RGBA); got != placeholder {
		t.Errorf("untouched pixel = %v, want %v", got, placeholder)
	}
}

func TestReplayWritesPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.pdf")
	cmd, err := parseReplayCmd([]string{"-o", out, writeScript(t, replayScript)}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	n, err := export.PageCount(out)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if n != 1 {
		t.Errorf("pages = %d, want 1", n)
	}
}

func TestCheckChartPDF(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(bad, []byte("%PDF-1.4\nnot really\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := checkChartPDF(bad); err == nil {
		t.Error("expected an error for a damaged PDF")
	}
	if err := checkChartPDF(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected an error for a missing PDF")
	}
}

func TestReplayCopy(t *testing.T) {
	original := copyImageFn
	t.Cleanup(func() { copyImageFn = original })

	var copied image.Image
	copyImageFn = func(img image.Image) error {
		copied = img
		return nil
	}
	out := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseReplayCmd([]string{"-script", writeScript(t, replayScript), "-o", out, "-copy"}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if copied == nil {
		t.Fatal("nothing copied")
	}

	sentinel := errors.New("no display")
	copyImageFn = func(image.Image) error { return sentinel }
	if err := cmd.Run(); !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped copy error, got %v", err)
	}
}

func TestReplayScriptError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseReplayCmd([]string{"-script", writeScript(t, "tool laser\n"), "-o", out}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "laser") {
		t.Fatalf("expected unknown tool error, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output written despite error")
	}
}

func TestInteractiveLines(t *testing.T) {
	i, err := parseInteractiveCmd(nil, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := i.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for _, line := range []string{"", "tool stamp-x; down 50 50; up", "tool m", "down 80 80", "up", "show", "status", "help"} {
		if quit, err := i.execLine(line); err != nil || quit {
			t.Fatalf("execLine(%q) = %v, %v", line, quit, err)
		}
	}
	if got := i.session.Editor.Len(); got != 2 {
		t.Fatalf("marks = %d, want 2", got)
	}
	if _, err := i.execLine("fly 1 2"); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := i.execLine("export"); err == nil {
		t.Error("export without a path should fail")
	}

	out := filepath.Join(t.TempDir(), "session.pdf")
	if _, err := i.execLine("export " + out); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("export missing: %v", err)
	}
	if quit, _ := i.execLine("QUIT"); !quit {
		t.Error("quit should end the session")
	}
}

func TestConfigSave(t *testing.T) {
	r := testRoot(t)
	r.config.Theme = "dark"
	r.config.Editor.ZoomStep = 0.5
	out := filepath.Join(t.TempDir(), "sub", "config.rc")
	cmd, err := parseConfigCmd([]string{"-o", out, "save"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := config.Parse(f)
	if err != nil {
		t.Fatalf("parse saved config: %v", err)
	}
	if cfg.Theme != "dark" || cfg.Editor.ZoomStep != 0.5 {
		t.Errorf("saved config = %+v", cfg)
	}

	cmd, _ = parseConfigCmd([]string{"dump"}, r)
	if err := cmd.Run(); err == nil {
		t.Error("expected unknown config command error")
	}
	cmd, _ = parseConfigCmd(nil, r)
	var uerr *UsageError
	if err := cmd.Run(); !errors.As(err, &uerr) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestThemesRows(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := testRoot(t)
	r.config.Themes["mine"] = theme.Default()
	rows := (&themesCmd{root: r}).rows()
	found := map[string]string{}
	for _, row := range rows[1:] {
		found[row[0]] = row[2]
	}
	if found["default"] != "*" {
		t.Errorf("default theme not marked active: %v", rows)
	}
	for _, name := range []string{"dark", "high_contrast", "mine"} {
		if _, ok := found[name]; !ok {
			t.Errorf("theme %q missing: %v", name, rows)
		}
	}
}

func TestLoadDiagram(t *testing.T) {
	cfg := config.New()
	th := theme.Default()
	img := loadDiagram(filepath.Join(t.TempDir(), "missing.png"), cfg, th)
	if got := img.Bounds().Size(); got != image.Pt(cfg.Editor.PlaceholderWidth, cfg.Editor.PlaceholderHeight) {
		t.Fatalf("placeholder size = %v", got)
	}

	path := filepath.Join(t.TempDir(), "diagram.png")
	if err := savePNG(path, image.NewRGBA(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := loadDiagram(path, cfg, th).Bounds().Size(); got != image.Pt(40, 20) {
		t.Errorf("diagram size = %v", got)
	}
}

func TestOutputPath(t *testing.T) {
	cfg := config.New()
	if got := outputPath("", cfg); got != export.DefaultFilename {
		t.Errorf("empty name = %q", got)
	}
	cfg.ExportDir = "/tmp/charts"
	if got := outputPath("a.pdf", cfg); got != filepath.Join("/tmp/charts", "a.pdf") {
		t.Errorf("bare name = %q", got)
	}
	if got := outputPath("out/a.pdf", cfg); got != "out/a.pdf" {
		t.Errorf("relative path = %q", got)
	}
}
