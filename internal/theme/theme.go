// Package theme holds the colours of the drawing window's chrome.
package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the colours used around the canvas. The canvas itself is
// painted by the compositor and is not themed.
type Theme struct {
	Name string

	StatusBackground color.RGBA
	StatusText       color.RGBA
	// StatusMessage colours transient messages such as "saved ...".
	StatusMessage color.RGBA
	// StatusSwatchBorder outlines the current brush colour swatch.
	StatusSwatchBorder color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:               "Default",
		StatusBackground:   color.RGBA{220, 220, 220, 255},
		StatusText:         color.RGBA{0, 0, 0, 255},
		StatusMessage:      color.RGBA{0, 0, 160, 255},
		StatusSwatchBorder: color.RGBA{0, 0, 0, 255},
	}
}
