// Package brush holds the paint applied to new strokes: colour, width and
// style, together with the palette and the width presets offered to the user.
package brush

import (
	"fmt"
	"image/color"
	"math"

	"github.com/example/drawpad/internal/stroke"
)

// Settings is the live brush. Strokes copy it through Snapshot when they
// begin, so later changes never reach a stroke that has already started.
type Settings struct {
	color color.RGBA
	width float64
	style stroke.Style
}

// Option modifies Settings during creation.
type Option func(*Settings)

// WithColor sets the initial colour.
func WithColor(c color.RGBA) Option { return func(s *Settings) { s.color = c } }

// WithWidth sets the initial width. Non-positive values are ignored.
func WithWidth(w float64) Option {
	return func(s *Settings) {
		if validateWidth(w) == nil {
			s.width = w
		}
	}
}

// WithStyle sets the initial stroke style.
func WithStyle(st stroke.Style) Option { return func(s *Settings) { s.style = st } }

// NewSettings returns brush settings using the default colour and preset.
func NewSettings(opts ...Option) *Settings {
	s := &Settings{
		color: DefaultColor(),
		width: DefaultWidth(),
		style: stroke.StyleFreehand,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Color returns the current colour.
func (s *Settings) Color() color.RGBA { return s.color }

// Width returns the current width.
func (s *Settings) Width() float64 { return s.width }

// Style returns the current style.
func (s *Settings) Style() stroke.Style { return s.style }

// SetColor replaces the colour.
func (s *Settings) SetColor(c color.RGBA) { s.color = c }

// SetColorToken parses token with ParseColor and applies it. On error the
// previous colour is kept.
func (s *Settings) SetColorToken(token string) error {
	c, err := ParseColor(token)
	if err != nil {
		return err
	}
	s.color = c
	return nil
}

// SetWidth replaces the width. Non-positive, NaN and infinite widths are
// rejected and the previous width is kept.
func (s *Settings) SetWidth(w float64) error {
	if err := validateWidth(w); err != nil {
		return err
	}
	s.width = w
	return nil
}

// SetStyle replaces the stroke style.
func (s *Settings) SetStyle(st stroke.Style) error {
	if _, err := stroke.ParseStyle(string(st)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBrushParameter, err)
	}
	s.style = st
	return nil
}

// ApplyPreset sets the width mapped to p.
func (s *Settings) ApplyPreset(p Preset) error {
	w := PresetWidth(p)
	if w == 0 {
		return fmt.Errorf("%w: unknown brush preset %q", ErrInvalidBrushParameter, p)
	}
	return s.SetWidth(w)
}

// Snapshot returns the attributes a new stroke should use.
func (s *Settings) Snapshot() stroke.Attributes {
	return stroke.Attributes{Color: s.color, Width: s.width, Style: s.style}
}

func validateWidth(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return fmt.Errorf("%w: width must be positive, got %v", ErrInvalidBrushParameter, w)
	}
	return nil
}
