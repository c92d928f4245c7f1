package brush

import (
	"fmt"
	"strings"
	"sync"
)

// Preset names a fixed brush width offered by the brush size chooser.
type Preset string

const (
	PresetSmall  Preset = "small"
	PresetMedium Preset = "medium"
	PresetLarge  Preset = "large"
)

const defaultPreset = PresetMedium

var (
	presetsMu    sync.RWMutex
	presetOrder  = []Preset{PresetSmall, PresetMedium, PresetLarge}
	presetWidths = map[Preset]float64{
		PresetSmall:  10,
		PresetMedium: 20,
		PresetLarge:  30,
	}
)

// Presets returns the presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presetOrder))
	copy(out, presetOrder)
	return out
}

// DefaultPreset returns the preset used for a new surface.
func DefaultPreset() Preset { return defaultPreset }

// DefaultWidth returns the width of the default preset.
func DefaultWidth() float64 { return PresetWidth(defaultPreset) }

// PresetWidth returns the width mapped to p, or 0 for an unknown preset.
func PresetWidth(p Preset) float64 {
	presetsMu.RLock()
	defer presetsMu.RUnlock()
	return presetWidths[p]
}

// ParsePreset resolves a preset name case-insensitively.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	presetsMu.RLock()
	_, ok := presetWidths[p]
	presetsMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: unknown brush preset %q", ErrInvalidBrushParameter, s)
	}
	return p, nil
}

// SetPresetWidth overrides the width for a preset, typically from configuration.
func SetPresetWidth(p Preset, width float64) error {
	if _, err := ParsePreset(string(p)); err != nil {
		return err
	}
	if err := validateWidth(width); err != nil {
		return err
	}
	presetsMu.Lock()
	presetWidths[p] = width
	presetsMu.Unlock()
	return nil
}
