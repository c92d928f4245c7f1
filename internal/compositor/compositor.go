// Package compositor flattens a background image and a stack of strokes into
// a single raster. The same layered paint serves both on-screen rendering and
// export, so an exported image always matches what was displayed.
package compositor

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/example/drawpad/internal/stroke"
)

// DefaultMaxPixels bounds the size of an off-screen target.
const DefaultMaxPixels = 64 << 20

// Compositor paints scenes. The zero value is not usable; call New.
type Compositor struct {
	maxPixels int
	encoder   png.Encoder
	scaler    xdraw.Scaler
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithMaxPixels limits the number of pixels an off-screen target may hold.
func WithMaxPixels(n int) Option {
	return func(c *Compositor) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

// New returns a Compositor with a fixed lossless encoder.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		maxPixels: DefaultMaxPixels,
		encoder:   png.Encoder{CompressionLevel: png.BestCompression},
		scaler:    xdraw.BiLinear,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// MaxPixels returns the configured pixel limit.
func (c *Compositor) MaxPixels() int { return c.maxPixels }

// Paint draws scene onto dst: fill or background first, then every committed
// stroke in order, then the in-progress stroke.
func (c *Compositor) Paint(dst draw.Image, scene Scene) error {
	if dst == nil {
		return failure("no target", ErrEmptyTarget)
	}
	b := dst.Bounds()
	if err := c.checkSize(b.Dx(), b.Dy()); err != nil {
		return err
	}
	if rgba, ok := dst.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return c.paintRGBA(rgba, scene)
	}
	tmp, err := c.Flatten(scene, b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	draw.Draw(dst, b, tmp, image.Point{}, draw.Src)
	return nil
}

// Flatten paints scene into a new off-screen image of the given size.
func (c *Compositor) Flatten(scene Scene, width, height int) (img *image.RGBA, err error) {
	if err := c.checkSize(width, height); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = failure(fmt.Sprintf("allocate %dx%d target", width, height), fmt.Errorf("%v", r))
		}
	}()
	img = image.NewRGBA(image.Rect(0, 0, width, height))
	if err := c.paintRGBA(img, scene); err != nil {
		return nil, err
	}
	return img, nil
}

// Export flattens scene and returns it PNG encoded. Calling Export twice on
// the same scene yields identical bytes.
func (c *Compositor) Export(scene Scene, width, height int) ([]byte, error) {
	img, err := c.Flatten(scene, width, height)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.encoder.Encode(&buf, img); err != nil {
		return nil, failure("encode png", err)
	}
	return buf.Bytes(), nil
}

// Result is delivered by ExportAsync.
type Result struct {
	Data []byte
	Err  error
}

// ExportAsync runs Export on its own goroutine. The scene must already be a
// snapshot; the channel receives exactly one Result and is then closed.
func (c *Compositor) ExportAsync(scene Scene, width, height int) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		data, err := c.Export(scene, width, height)
		ch <- Result{Data: data, Err: err}
	}()
	return ch
}

func (c *Compositor) checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return failure(fmt.Sprintf("target %dx%d", width, height), ErrEmptyTarget)
	}
	if int64(width)*int64(height) > int64(c.maxPixels) {
		return failure(fmt.Sprintf("target %dx%d", width, height), ErrTargetTooLarge)
	}
	return nil
}

func (c *Compositor) paintRGBA(img *image.RGBA, scene Scene) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = failure("rasterize", fmt.Errorf("%v", r))
		}
	}()
	fill := scene.Fill
	if fill.A == 0 {
		fill = DefaultFill
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	if bg := scene.Background; bg != nil {
		fit := scene.Fit
		if fit == "" {
			fit = FitCover
		}
		if r := backgroundRect(fit, bg.Bounds(), img.Bounds()); !r.Empty() {
			c.scaler.Scale(img, r, bg, bg.Bounds(), draw.Over, nil)
		}
	}
	dc := gg.NewContextForRGBA(img)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for _, s := range scene.layers() {
		paintStroke(dc, s)
	}
	return nil
}

func paintStroke(dc *gg.Context, s stroke.Stroke) {
	pts := dedupe(s.Geometry())
	if len(pts) == 0 {
		return
	}
	dc.SetColor(s.Color())
	if len(pts) == 1 {
		dc.DrawCircle(pts[0].X, pts[0].Y, s.Width()/2)
		dc.Fill()
		return
	}
	dc.SetLineWidth(s.Width())
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}

// dedupe drops consecutive repeats. They are valid stroke data but carry no
// direction for the stroker.
func dedupe(pts []stroke.Point) []stroke.Point {
	if len(pts) < 2 {
		return pts
	}
	out := make([]stroke.Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
