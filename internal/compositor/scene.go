package compositor

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/example/drawpad/internal/stroke"
)

// Fit controls how a background image is mapped onto the target.
type Fit string

const (
	// FitCover scales the background to fill the target, cropping overflow.
	FitCover Fit = "cover"
	// FitContain scales the background to fit inside the target.
	FitContain Fit = "contain"
	// FitStretch scales each axis independently to the target size.
	FitStretch Fit = "stretch"
)

// ParseFit resolves a fit mode name.
func ParseFit(s string) (Fit, error) {
	switch f := Fit(strings.ToLower(strings.TrimSpace(s))); f {
	case FitCover, FitContain, FitStretch:
		return f, nil
	case "":
		return FitCover, nil
	}
	return "", fmt.Errorf("unknown background fit %q", s)
}

// DefaultFill is painted where no background covers the target.
var DefaultFill = color.RGBA{255, 255, 255, 255}

// Scene is a read-only view of everything a paint needs. Strokes are values
// that are never mutated after commit, and Background is referenced, not
// copied, so building a Scene is cheap.
type Scene struct {
	// Fill with zero alpha selects DefaultFill.
	Fill       color.RGBA
	Background image.Image
	Fit        Fit
	Strokes    []stroke.Stroke
	// Active is the in-progress stroke, painted last.
	Active *stroke.Stroke
}

// layers returns the strokes in paint order.
func (s Scene) layers() []stroke.Stroke {
	out := make([]stroke.Stroke, 0, len(s.Strokes)+1)
	out = append(out, s.Strokes...)
	if s.Active != nil && s.Active.Len() > 0 {
		out = append(out, *s.Active)
	}
	return out
}

// backgroundRect returns where a background of size src lands inside dst.
func backgroundRect(fit Fit, src image.Rectangle, dst image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	dw, dh := dst.Dx(), dst.Dy()
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return image.Rectangle{}
	}
	if fit == FitStretch {
		return dst
	}
	sx := float64(dw) / float64(sw)
	sy := float64(dh) / float64(sh)
	scale := math.Max(sx, sy)
	if fit == FitContain {
		scale = math.Min(sx, sy)
	}
	w := int(float64(sw)*scale + 0.5)
	h := int(float64(sh)*scale + 0.5)
	x0 := dst.Min.X + (dw-w)/2
	y0 := dst.Min.Y + (dh-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}
