package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// DefaultFilename is used when no output path is given.
const DefaultFilename = "MarkingChart.pdf"

const (
	pageMargin   = 15.0
	maxDiagramH  = 130.0
	rowHeight    = 8.0
	labelWidth   = 45.0
	watermarkPts = 110.0
)

// Document is a single-page chart: the flattened diagram and its form.
type Document struct {
	ID      uuid.UUID
	Title   string
	Image   image.Image
	Chart   Chart
	Created time.Time
}

// NewDocument wraps a composite image and its chart with a fresh id.
func NewDocument(img image.Image, chart Chart) *Document {
	return &Document{
		ID:      uuid.New(),
		Title:   "Marking Chart",
		Image:   img,
		Chart:   chart,
		Created: time.Now(),
	}
}

// Save writes the document to path, creating parent directories.
func (d *Document) Save(path string) error {
	if path == "" {
		path = DefaultFilename
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export chart: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export chart: %w", err)
	}
	if err := d.WritePDF(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export chart: %w", err)
	}
	return nil
}

// WritePDF renders the document as an A4 portrait PDF.
func (d *Document) WritePDF(w io.Writer) error {
	if d.Image == nil {
		return fmt.Errorf("export chart: no image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, d.Image); err != nil {
		return fmt.Errorf("export chart: encode diagram: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(d.Title, true)
	pdf.SetSubject("chart "+d.ID.String(), true)
	pdf.SetCreator("markchart", true)
	pdf.SetCreationDate(d.Created)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW/2, 10, tr(d.Title), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	if d.Chart.Approved {
		pdf.SetTextColor(0, 128, 0)
	} else {
		pdf.SetTextColor(200, 0, 0)
	}
	pdf.CellFormat(contentW/2, 10, d.Chart.Status(), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	b := d.Image.Bounds()
	imgW := contentW
	imgH := imgW * float64(b.Dy()) / float64(b.Dx())
	if imgH > maxDiagramH {
		imgH = maxDiagramH
		imgW = imgH * float64(b.Dx()) / float64(b.Dy())
	}
	x := pageMargin + (contentW-imgW)/2
	y := pdf.GetY()
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	name := "diagram-" + d.ID.String()
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	pdf.ImageOptions(name, x, y, imgW, imgH, false, opts, 0, "")
	pdf.SetDrawColor(160, 160, 160)
	pdf.Rect(x, y, imgW, imgH, "D")
	pdf.SetY(y + imgH + 6)

	pdf.SetFillColor(240, 240, 240)
	for _, f := range d.Chart.Fields() {
		row(pdf, tr, f.Label, f.Value, contentW)
	}
	row(pdf, tr, "Exam date", d.Chart.ExamDate, contentW)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	sig := ""
	if d.Chart.Approved {
		sig = d.Chart.Signatory
	}
	pdf.CellFormat(labelWidth, rowHeight, "Signature:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW-labelWidth, rowHeight, tr(sig), "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(128, 128, 128)
	pdf.Text(pageMargin, pageH-8, fmt.Sprintf("%s  %s", d.ID, d.Created.Format(time.RFC3339)))
	pdf.SetTextColor(0, 0, 0)

	if !d.Chart.Approved {
		watermark(pdf, pageW, pageH)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export chart: %w", err)
	}
	return nil
}

func row(pdf *gofpdf.Fpdf, tr func(string) string, label, value string, width float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelWidth, rowHeight, tr(label), "1", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(width-labelWidth, rowHeight, tr(value), "1", 1, "L", false, 0, "")
}

func watermark(pdf *gofpdf.Fpdf, pageW, pageH float64) {
	cx, cy := pageW/2, pageH/2
	pdf.SetFont("Helvetica", "B", watermarkPts)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetAlpha(0.15, "Normal")
	pdf.TransformBegin()
	pdf.TransformRotate(45, cx, cy)
	tw := pdf.GetStringWidth("DRAFT")
	pdf.Text(cx-tw/2, cy+pdf.PointConvert(watermarkPts)*0.35, "DRAFT")
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(0, 0, 0)
}

var pdfcpuOnce sync.Once

// PageCount reports the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	pdfcpuOnce.Do(api.DisableConfigDir)
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count %s: %w", path, err)
	}
	return n, nil
}
