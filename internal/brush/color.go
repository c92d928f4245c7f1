package brush

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidBrushParameter reports a rejected brush mutation. The previous
// settings are kept whenever it is returned.
var ErrInvalidBrushParameter = errors.New("invalid brush parameter")

// ParseColor resolves a colour token: a palette name, an SVG colour name or a
// #RRGGBB / #RRGGBBAA hex value. Hex alpha is straight (not premultiplied).
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("%w: color cannot be empty", ErrInvalidBrushParameter)
	}
	if c, ok := lookupPalette(spec); ok {
		return c, nil
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") && (len(spec) == 7 || len(spec) == 9) {
		r, err := strconv.ParseUint(spec[1:3], 16, 8)
		if err != nil {
			return color.RGBA{}, invalidColor(s)
		}
		g, err := strconv.ParseUint(spec[3:5], 16, 8)
		if err != nil {
			return color.RGBA{}, invalidColor(s)
		}
		b, err := strconv.ParseUint(spec[5:7], 16, 8)
		if err != nil {
			return color.RGBA{}, invalidColor(s)
		}
		a := uint64(255)
		if len(spec) == 9 {
			val, err := strconv.ParseUint(spec[7:9], 16, 8)
			if err != nil {
				return color.RGBA{}, invalidColor(s)
			}
			a = val
		}
		nc := color.NRGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
		return color.RGBAModel.Convert(nc).(color.RGBA), nil
	}
	return color.RGBA{}, invalidColor(s)
}

func invalidColor(s string) error {
	return fmt.Errorf("%w: invalid color %q", ErrInvalidBrushParameter, s)
}
