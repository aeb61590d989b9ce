package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 60, 30))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{238, 238, 238, 255}}, image.Point{}, draw.Src)
	img.SetRGBA(10, 10, color.RGBA{255, 0, 0, 255})
	return img
}

func TestChartFields(t *testing.T) {
	var c Chart
	require.NoError(t, c.Set("head", "star"))
	require.NoError(t, c.Set("Left-Fore", "sock"))
	require.NoError(t, c.Set("chip", "985 000"))
	assert.Error(t, c.Set("tail", "x"))

	fields := c.Fields()
	require.Len(t, fields, 8)
	assert.Equal(t, "Head", fields[0].Label)
	assert.Equal(t, "star", fields[0].Value)
	assert.Equal(t, "sock", c.LeftFore)
	assert.Equal(t, "985 000", c.Microchip)
}

func TestChartDateAndApproval(t *testing.T) {
	var c Chart
	assert.Equal(t, "DRAFT", c.Status())
	require.NoError(t, c.SetDate("2024-03-01"))
	assert.Equal(t, "2024-03-01", c.ExamDate)
	assert.Error(t, c.SetDate("01/03/2024"))
	assert.Equal(t, "2024-03-01", c.ExamDate)

	c.Approve("A. Vet, MRCVS")
	assert.True(t, c.Approved)
	assert.Equal(t, "APPROVED", c.Status())
	c.Approve("  ")
	assert.False(t, c.Approved)
}

func TestWritePDF(t *testing.T) {
	doc := NewDocument(sample(), Chart{Head: "blaze"})
	var buf bytes.Buffer
	require.NoError(t, doc.WritePDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Error(t, (&Document{}).WritePDF(&bytes.Buffer{}))
}

func TestSaveSinglePage(t *testing.T) {
	for _, approved := range []bool{false, true} {
		chart := Chart{Body: "whorl"}
		if approved {
			chart.Approve("Signer")
		}
		path := filepath.Join(t.TempDir(), "out", DefaultFilename)
		require.NoError(t, NewDocument(sample(), chart).Save(path))
		n, err := PageCount(path)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
}

func TestDocumentIDsDiffer(t *testing.T) {
	a := NewDocument(sample(), Chart{})
	b := NewDocument(sample(), Chart{})
	assert.NotEqual(t, a.ID, b.ID)
}
