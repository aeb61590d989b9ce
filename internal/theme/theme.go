package theme

import (
	"image/color"
)

// Theme defines the colors used by the editor window and the annotation
// renderer.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the diagram
	Foreground color.RGBA // Main text color

	// Annotations
	PenBlack    color.RGBA
	PenRed      color.RGBA
	GlyphM      color.RGBA
	GlyphX      color.RGBA
	Halo        color.RGBA // Glow around the selected mark
	Placeholder color.RGBA // Diagram stand-in when no image is loaded

	// Toolbar & status bar
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	MessageBackground color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		PenBlack:              color.RGBA{0, 0, 0, 255},
		PenRed:                color.RGBA{255, 0, 0, 255},
		GlyphM:                color.RGBA{255, 0, 0, 255},
		GlyphX:                color.RGBA{0, 0, 0, 255},
		Halo:                  color.RGBA{255, 215, 0, 255},
		Placeholder:           color.RGBA{238, 238, 238, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		StatusBackground:      color.RGBA{220, 220, 220, 255},
		MessageBackground:     color.RGBA{255, 255, 255, 230},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}
