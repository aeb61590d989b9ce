package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EmbeddedThemes holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Loader handles loading themes from various sources.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a new Loader with standard paths.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "markchart", "themes"),
		SystemDir: "/usr/share/markchart/themes",
	}
}

// Load attempts to load a theme by name or path.
// Order:
// 1. If it's a file path that exists, load it.
// 2. Check embedded themes.
// 3. Check ConfigDir.
// 4. Check SystemDir.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}

	// 1. File path
	if _, err := os.Stat(name); err == nil {
		return parseFile(name)
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}

	// 2. Embedded
	if f, err := EmbeddedThemes.Open("defaults/" + filename); err == nil {
		defer f.Close()
		return Parse(f)
	}

	// 3. Config Dir, 4. System Dir
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return parseFile(path)
		}
	}

	return nil, fmt.Errorf("theme '%s' not found", name)
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Available lists theme names from the embedded set and both directories,
// tagged with where each was found.
func (l *Loader) Available() []Source {
	seen := map[string]bool{}
	var out []Source
	add := func(name, origin string) {
		name = strings.TrimSuffix(name, ".theme")
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, Source{Name: name, Origin: origin})
	}
	if entries, err := fs.ReadDir(EmbeddedThemes, "defaults"); err == nil {
		for _, e := range entries {
			add(e.Name(), "embedded")
		}
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".theme") {
				add(e.Name(), dir)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Source names a theme and where it was found.
type Source struct {
	Name   string
	Origin string
}
