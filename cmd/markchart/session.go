package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/example/markchart/internal/clipboard"
	"github.com/example/markchart/internal/config"
	"github.com/example/markchart/internal/editor"
	"github.com/example/markchart/internal/export"
	"github.com/example/markchart/internal/render"
	"github.com/example/markchart/internal/theme"
	"github.com/example/markchart/internal/viewport"
)

var copyImageFn = clipboard.WriteImage

// loadDiagram decodes the diagram at path. A missing or unreadable diagram
// is replaced by a plain placeholder so the session can still be used.
func loadDiagram(path string, cfg *config.Config, th *theme.Theme) image.Image {
	if path != "" {
		img, err := decodeImage(path)
		if err == nil {
			return img
		}
		log.Printf("diagram: %v; using placeholder", err)
	}
	return render.Placeholder(cfg.Editor.PlaceholderWidth, cfg.Editor.PlaceholderHeight, th.Placeholder)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// newEditor builds an editor sized to diagram and tuned by cfg.
func newEditor(cfg *config.Config, th *theme.Theme, diagram image.Image, opts ...editor.Option) *editor.Editor {
	b := diagram.Bounds()
	base := []editor.Option{
		editor.WithCaps(cfg.Caps),
		editor.WithTolerance(cfg.Tolerance()),
		editor.WithStrokeWidth(cfg.Editor.StrokeWidth),
		editor.WithAutoPan(cfg.Editor.AutoPan),
		editor.WithRenderer(render.New(render.StyleFor(th))),
		editor.WithViewport(viewport.New(viewport.WithBounds(cfg.Editor.MinZoom, cfg.Editor.MaxZoom))),
		editor.WithContentSize(b.Dx(), b.Dy()),
	}
	return editor.New(append(base, opts...)...)
}

// outputPath places a bare file name in the configured export directory.
func outputPath(name string, cfg *config.Config) string {
	if name == "" {
		name = export.DefaultFilename
	}
	if cfg.ExportDir != "" && filepath.Base(name) == name {
		return filepath.Join(cfg.ExportDir, name)
	}
	return name
}

// writeChart flattens the editor's marks over diagram and writes the result
// to path, as a chart document for .pdf and as PNG otherwise.
func writeChart(path string, diagram image.Image, ed *editor.Editor, chart export.Chart) (image.Image, error) {
	snap := ed.Snapshot()
	if snap.Image == nil {
		return nil, fmt.Errorf("export chart: editor has no surface")
	}
	img := render.Composite(diagram, snap.Image)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		if err := export.NewDocument(img, chart).Save(path); err != nil {
			return nil, fmt.Errorf("export chart: %w", err)
		}
		if err := checkChartPDF(path); err != nil {
			return nil, fmt.Errorf("export chart: %w", err)
		}
		return img, nil
	}
	if err := savePNG(path, img); err != nil {
		return nil, fmt.Errorf("export chart: %w", err)
	}
	return img, nil
}

// checkChartPDF reads a written chart back and makes sure it is the single
// page document the exporter produces.
func checkChartPDF(path string) error {
	n, err := export.PageCount(path)
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("%s has %d pages, want 1", path, n)
	}
	return nil
}

func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
