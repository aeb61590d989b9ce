package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/markchart/internal/shape"
	"github.com/example/markchart/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	// Context for parsing
	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case currentSection == "editor":
			err = setEditorField(&cfg.Editor, key, value)
		case currentSection == "caps":
			err = setCapsField(cfg.Caps, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d: error in section [%s]: %w", lineNo, section, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cfg.Editor.MinZoom > cfg.Editor.MaxZoom {
		return nil, fmt.Errorf("min_zoom %g is above max_zoom %g", cfg.Editor.MinZoom, cfg.Editor.MaxZoom)
	}
	return cfg, nil
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "diagram":
		cfg.Diagram = value
	case "export_dir":
		cfg.ExportDir = value
	}
	return nil
}

func setEditorField(e *Editor, key, value string) error {
	key = strings.ToLower(key)
	switch key {
	case "auto_pan":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		e.AutoPan = b
		return nil
	case "placeholder_width", "placeholder_height":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid size for key %s: %q", key, value)
		}
		if key == "placeholder_width" {
			e.PlaceholderWidth = n
		} else {
			e.PlaceholderHeight = n
		}
		return nil
	}

	var dst *float64
	switch key {
	case "min_zoom":
		dst = &e.MinZoom
	case "max_zoom":
		dst = &e.MaxZoom
	case "zoom_step":
		dst = &e.ZoomStep
	case "stroke_width":
		dst = &e.StrokeWidth
	case "symbol_tolerance":
		dst = &e.SymbolTolerance
	case "stroke_tolerance":
		dst = &e.StrokeTolerance
	default:
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if f <= 0 {
		return fmt.Errorf("key %s must be positive", key)
	}
	*dst = f
	return nil
}

func setCapsField(caps shape.Caps, key, value string) error {
	g, err := shape.ParseGlyph(key)
	if err != nil {
		return err
	}
	if strings.EqualFold(value, "unlimited") {
		delete(caps, g)
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid limit for glyph %s: %q", g, value)
	}
	if n == 0 {
		delete(caps, g)
		return nil
	}
	caps[g] = n
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "reject":
		n.Reject = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}
