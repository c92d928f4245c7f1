package brush

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
)

// PaletteColor is a named swatch offered by the colour picker.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

const defaultColorIndex = 0

var (
	paletteMu sync.RWMutex
	palette   = []color.RGBA{
		{0, 0, 0, 255},       // black
		{255, 255, 255, 255}, // white
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
		{0, 255, 255, 255},
		{255, 0, 255, 255},
		{128, 0, 0, 255},
		{0, 128, 0, 255},
		{0, 0, 128, 255},
		{128, 128, 0, 255},
		{0, 128, 128, 255},
		{128, 0, 128, 255},
		{192, 192, 192, 255},
		{128, 128, 128, 255},
	}
	paletteNames = []string{
		"Black",
		"White",
		"Red",
		"Lime",
		"Blue",
		"Yellow",
		"Cyan",
		"Magenta",
		"Maroon",
		"Green",
		"Navy",
		"Olive",
		"Teal",
		"Purple",
		"Silver",
		"Gray",
	}
)

// DefaultColorIndex returns the palette index of the default brush colour.
func DefaultColorIndex() int { return defaultColorIndex }

// DefaultColor returns the default brush colour.
func DefaultColor() color.RGBA { return PaletteAt(defaultColorIndex).Color }

// PaletteColors returns palette entries annotated with their display names.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	for i := range palette {
		out[i] = PaletteColor{Name: paletteNames[i], Color: palette[i]}
	}
	return out
}

// PaletteLen returns the number of swatches.
func PaletteLen() int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	return len(palette)
}

// PaletteAt returns the swatch at idx, clamping out of range indexes.
func PaletteAt(idx int) PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	if len(palette) == 0 {
		return PaletteColor{}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return PaletteColor{Name: paletteNames[idx], Color: palette[idx]}
}

// PaletteIndex returns the index of col in the palette or -1.
func PaletteIndex(col color.RGBA) int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for idx, existing := range palette {
		if existing == col {
			return idx
		}
	}
	return -1
}

// EnsurePaletteColor makes sure col is present in the palette and returns its index.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing == col {
			if name != "" && paletteNames[idx] == "" {
				paletteNames[idx] = name
			}
			return idx
		}
	}
	if name == "" {
		name = HexString(col)
	}
	palette = append(palette, col)
	paletteNames = append(paletteNames, name)
	return len(palette) - 1
}

func lookupPalette(name string) (color.RGBA, bool) {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for i, n := range paletteNames {
		if strings.EqualFold(n, name) {
			return palette[i], true
		}
	}
	return color.RGBA{}, false
}

// HexString formats col as #RRGGBB, or #RRGGBBAA when it is not opaque.
func HexString(col color.RGBA) string {
	if col.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}
