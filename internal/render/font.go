package render

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

var (
	boldOnce  sync.Once
	boldFont  *opentype.Font
	faceCache sync.Map // float64 size -> font.Face
)

// glyphFace returns the bold face used for stamps at size pixels.
func glyphFace(size float64) font.Face {
	if f, ok := faceCache.Load(size); ok {
		return f.(font.Face)
	}
	boldOnce.Do(func() {
		f, err := opentype.Parse(gobold.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		boldFont = f
	})
	if boldFont == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(boldFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face: %v", err)
		return basicfont.Face7x13
	}
	actual, _ := faceCache.LoadOrStore(size, face)
	return actual.(font.Face)
}
