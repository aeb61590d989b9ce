package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/markchart/internal/shape"
	"github.com/example/markchart/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Reject bool
	Export bool
	Copy   bool
}

// Editor holds the canvas tuning knobs.
type Editor struct {
	MinZoom           float64
	MaxZoom           float64
	ZoomStep          float64
	AutoPan           bool
	StrokeWidth       float64
	SymbolTolerance   float64
	StrokeTolerance   float64
	PlaceholderWidth  int
	PlaceholderHeight int
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	Diagram   string
	ExportDir string
	Editor    Editor
	Caps      shape.Caps
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Editor: Editor{
			MinZoom:           0.1,
			MaxZoom:           5,
			ZoomStep:          0.25,
			AutoPan:           true,
			StrokeWidth:       shape.DefaultWidth,
			SymbolTolerance:   shape.DefaultTolerance.Symbol,
			StrokeTolerance:   shape.DefaultTolerance.Stroke,
			PlaceholderWidth:  600,
			PlaceholderHeight: 300,
		},
		Caps:   shape.DefaultCaps(),
		Themes: make(map[string]*theme.Theme),
	}
}

// Tolerance returns the hit test radii.
func (c *Config) Tolerance() shape.Tolerance {
	return shape.Tolerance{Symbol: c.Editor.SymbolTolerance, Stroke: c.Editor.StrokeTolerance}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Diagram != "" {
		fmt.Fprintf(&sb, "diagram = %s\n", c.Diagram)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "min_zoom = %s\n", formatFloat(c.Editor.MinZoom))
	fmt.Fprintf(&sb, "max_zoom = %s\n", formatFloat(c.Editor.MaxZoom))
	fmt.Fprintf(&sb, "zoom_step = %s\n", formatFloat(c.Editor.ZoomStep))
	fmt.Fprintf(&sb, "auto_pan = %v\n", c.Editor.AutoPan)
	fmt.Fprintf(&sb, "stroke_width = %s\n", formatFloat(c.Editor.StrokeWidth))
	fmt.Fprintf(&sb, "symbol_tolerance = %s\n", formatFloat(c.Editor.SymbolTolerance))
	fmt.Fprintf(&sb, "stroke_tolerance = %s\n", formatFloat(c.Editor.StrokeTolerance))
	fmt.Fprintf(&sb, "placeholder_width = %d\n", c.Editor.PlaceholderWidth)
	fmt.Fprintf(&sb, "placeholder_height = %d\n", c.Editor.PlaceholderHeight)
	sb.WriteString("\n")

	sb.WriteString("[caps]\n")
	var glyphs []string
	for g := range c.Caps {
		glyphs = append(glyphs, string(g))
	}
	sort.Strings(glyphs)
	for _, g := range glyphs {
		fmt.Fprintf(&sb, "%s = %d\n", g, c.Caps[shape.Glyph(g)])
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "reject = %v\n", c.Notify.Reject)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
