package stroke

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Point is a position in surface pixel coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Style selects how a stroke's points are turned into geometry.
type Style string

const (
	// StyleFreehand connects every recorded point in order.
	StyleFreehand Style = "freehand"
	// StyleLine draws a straight segment from the first to the last point.
	StyleLine Style = "line"
)

// Styles lists the supported stroke styles.
func Styles() []Style { return []Style{StyleFreehand, StyleLine} }

// ParseStyle resolves a style name case-insensitively.
func ParseStyle(s string) (Style, error) {
	name := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Styles() {
		if st == name {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown stroke style %q", s)
}

// Attributes is the paint captured when a stroke starts.
type Attributes struct {
	Color color.RGBA
	Width float64
	Style Style
}

// Valid reports whether the attributes can produce a visible stroke.
func (a Attributes) Valid() bool {
	return a.Width > 0 && !math.IsInf(a.Width, 0) && !math.IsNaN(a.Width)
}

// Stroke is one path with fixed paint. Its points are only appended by a
// Recorder while the gesture is active and never change afterwards.
type Stroke struct {
	id     uuid.UUID
	points []Point
	attrs  Attributes
}

// New builds a finished stroke directly from points. It is mostly useful for
// tests and for replaying recorded data.
func New(attrs Attributes, pts ...Point) (Stroke, error) {
	if len(pts) == 0 {
		return Stroke{}, fmt.Errorf("stroke requires at least one point")
	}
	if !attrs.Valid() {
		return Stroke{}, fmt.Errorf("stroke width must be positive, got %v", attrs.Width)
	}
	if attrs.Style == "" {
		attrs.Style = StyleFreehand
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return Stroke{id: uuid.New(), points: out, attrs: attrs}, nil
}

// ID returns the unique identifier assigned when the stroke began.
func (s Stroke) ID() uuid.UUID { return s.id }

// Color returns the stroke colour.
func (s Stroke) Color() color.RGBA { return s.attrs.Color }

// Width returns the stroke width in pixels.
func (s Stroke) Width() float64 { return s.attrs.Width }

// Style returns the drawing style tag.
func (s Stroke) Style() Style { return s.attrs.Style }

// Attributes returns the paint attributes captured at creation.
func (s Stroke) Attributes() Attributes { return s.attrs }

// Len returns the number of recorded points.
func (s Stroke) Len() int { return len(s.points) }

// Points returns a copy of the point sequence in drawing order.
func (s Stroke) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Geometry returns the points the renderer should connect for the stroke's
// style. The returned slice must not be modified.
func (s Stroke) Geometry() []Point {
	if s.attrs.Style == StyleLine && len(s.points) > 2 {
		return []Point{s.points[0], s.points[len(s.points)-1]}
	}
	return s.points
}

// Clone returns a stroke that shares nothing mutable with s.
func (s Stroke) Clone() Stroke {
	s.points = s.Points()
	return s
}

func (s Stroke) String() string {
	return fmt.Sprintf("stroke %s %s width=%g points=%d", s.id, s.attrs.Style, s.attrs.Width, len(s.points))
}
