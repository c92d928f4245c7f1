// Package surface is the drawing canvas: it turns pointer gestures into
// strokes, keeps the committed stroke stack, and renders or exports it over an
// optional background.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	"github.com/example/drawpad/internal/brush"
	"github.com/example/drawpad/internal/compositor"
	"github.com/example/drawpad/internal/stroke"
)

var (
	// ErrInvalidGestureState is returned for a pointer event or undo that does
	// not fit the current gesture state. The surface is left unchanged.
	ErrInvalidGestureState = errors.New("invalid gesture state")
	// ErrInvalidBrushParameter is returned when a brush change is rejected.
	ErrInvalidBrushParameter = brush.ErrInvalidBrushParameter
)

// State is the gesture state of a Surface.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Surface owns the stroke stack and brush of one canvas.
//
// Gesture, undo and brush calls must come from a single goroutine. Background
// changes may arrive from any goroutine.
type Surface struct {
	brush    *brush.Settings
	recorder stroke.Recorder
	strokes  []stroke.Stroke
	comp     *compositor.Compositor
	fill     color.RGBA

	width, height int

	bgMu sync.Mutex
	bg   image.Image
	fit  compositor.Fit

	updateCh chan struct{}
}

// Option modifies a Surface during creation.
type Option func(*Surface)

// WithBrush uses b as the live brush.
func WithBrush(b *brush.Settings) Option { return func(s *Surface) { s.brush = b } }

// WithCompositor uses c for rendering and export.
func WithCompositor(c *compositor.Compositor) Option { return func(s *Surface) { s.comp = c } }

// WithSize sets the visible dimensions.
func WithSize(w, h int) Option { return func(s *Surface) { s.width, s.height = w, h } }

// WithFill sets the colour painted where no background is shown.
func WithFill(c color.RGBA) Option { return func(s *Surface) { s.fill = c } }

// WithFit sets how the background is scaled to the canvas.
func WithFit(f compositor.Fit) Option { return func(s *Surface) { s.fit = f } }

// WithBackground sets the initial background image.
func WithBackground(img image.Image) Option { return func(s *Surface) { s.bg = img } }

// New creates an idle Surface with an empty stroke stack.
func New(opts ...Option) *Surface {
	s := &Surface{
		fill:     compositor.DefaultFill,
		fit:      compositor.FitCover,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(s)
	}
	if s.brush == nil {
		s.brush = brush.NewSettings()
	}
	if s.comp == nil {
		s.comp = compositor.New()
	}
	s.recorder.OnExtend = s.invalidate
	return s
}

// Invalidated delivers repaint requests. Requests coalesce: several changes
// between two reads produce a single value.
func (s *Surface) Invalidated() <-chan struct{} { return s.updateCh }

func (s *Surface) invalidate() {
	select {
	case s.updateCh <- struct{}{}:
	default:
	}
}

// State reports whether a gesture is in progress.
func (s *Surface) State() State {
	if s.recorder.Recording() {
		return Drawing
	}
	return Idle
}

// Brush returns the live brush settings.
func (s *Surface) Brush() *brush.Settings { return s.brush }

// Strokes returns a copy of the committed stroke stack, oldest first.
func (s *Surface) Strokes() []stroke.Stroke {
	out := make([]stroke.Stroke, len(s.strokes))
	copy(out, s.strokes)
	return out
}

// Size returns the visible dimensions.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Resize changes the visible dimensions used by Export.
func (s *Surface) Resize(w, h int) {
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.invalidate()
}

func (s *Surface) reject(event string) error {
	log.Printf("surface: %s ignored while %s", event, s.State())
	return fmt.Errorf("%s while %s: %w", event, s.State(), ErrInvalidGestureState)
}

// PointerDown starts a stroke at p with a snapshot of the current brush.
func (s *Surface) PointerDown(p stroke.Point) error {
	if s.recorder.Recording() {
		return s.reject("pointer down")
	}
	if err := s.recorder.Begin(p, s.brush.Snapshot()); err != nil {
		log.Printf("surface: pointer down: %v", err)
		return fmt.Errorf("pointer down: %w", err)
	}
	s.invalidate()
	return nil
}

// PointerMove appends p to the stroke in progress.
func (s *Surface) PointerMove(p stroke.Point) error {
	if !s.recorder.Extend(p) {
		return s.reject("pointer move")
	}
	return nil
}

// PointerUp commits the stroke in progress to the top of the stack.
func (s *Surface) PointerUp() error {
	st, ok := s.recorder.End()
	if !ok {
		return s.reject("pointer up")
	}
	s.strokes = append(s.strokes, st)
	s.invalidate()
	return nil
}

// Cancel drops the stroke in progress without committing it.
func (s *Surface) Cancel() {
	if s.recorder.Recording() {
		s.recorder.Discard()
		s.invalidate()
	}
}

// Undo removes the most recently committed stroke. It is rejected while a
// gesture is in progress and does nothing on an empty stack.
func (s *Surface) Undo() error {
	if s.recorder.Recording() {
		return s.reject("undo")
	}
	n := len(s.strokes)
	if n == 0 {
		return nil
	}
	s.strokes[n-1] = stroke.Stroke{}
	s.strokes = s.strokes[:n-1]
	s.invalidate()
	return nil
}

// SetColor resolves token with brush.ParseColor and applies it.
func (s *Surface) SetColor(token string) error {
	if err := s.brush.SetColorToken(token); err != nil {
		log.Printf("surface: set color: %v", err)
		return err
	}
	return nil
}

// SetColorRGBA applies c as the brush colour.
func (s *Surface) SetColorRGBA(c color.RGBA) { s.brush.SetColor(c) }

// SetBrushWidth sets the width for future strokes.
func (s *Surface) SetBrushWidth(w float64) error {
	if err := s.brush.SetWidth(w); err != nil {
		log.Printf("surface: set width: %v", err)
		return err
	}
	return nil
}

// SetStyle sets the style for future strokes.
func (s *Surface) SetStyle(st stroke.Style) error {
	if err := s.brush.SetStyle(st); err != nil {
		log.Printf("surface: set style: %v", err)
		return err
	}
	return nil
}

// ApplyPreset sets the width mapped to a named preset.
func (s *Surface) ApplyPreset(p brush.Preset) error {
	if err := s.brush.ApplyPreset(p); err != nil {
		log.Printf("surface: apply preset: %v", err)
		return err
	}
	return nil
}

// SetBackground replaces the background. It is safe to call from any
// goroutine, including after strokes exist.
func (s *Surface) SetBackground(img image.Image) {
	s.bgMu.Lock()
	s.bg = img
	s.bgMu.Unlock()
	s.invalidate()
}

// ClearBackground removes the background so the fill shows again.
func (s *Surface) ClearBackground() { s.SetBackground(nil) }

// Background returns the current background, or nil.
func (s *Surface) Background() image.Image {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	return s.bg
}

// SetFit changes how the background is scaled.
func (s *Surface) SetFit(f compositor.Fit) {
	s.bgMu.Lock()
	s.fit = f
	s.bgMu.Unlock()
	s.invalidate()
}

// Fit returns the background fit mode.
func (s *Surface) Fit() compositor.Fit {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	return s.fit
}

// Snapshot captures what a paint needs at this instant. The result shares no
// mutable state with the Surface.
func (s *Surface) Snapshot() compositor.Scene {
	s.bgMu.Lock()
	bg, fit := s.bg, s.fit
	s.bgMu.Unlock()
	scene := compositor.Scene{
		Fill:       s.fill,
		Background: bg,
		Fit:        fit,
		Strokes:    s.Strokes(),
	}
	if act, ok := s.recorder.Active(); ok {
		scene.Active = &act
	}
	return scene
}

// Render paints the canvas onto dst.
func (s *Surface) Render(dst draw.Image) error {
	return s.comp.Paint(dst, s.Snapshot())
}

// ExportRaster returns the canvas as PNG bytes at the given size. Zero
// dimensions fall back to the visible size.
func (s *Surface) ExportRaster(w, h int) ([]byte, error) {
	w, h = s.exportSize(w, h)
	return s.comp.Export(s.Snapshot(), w, h)
}

// ExportAsync snapshots the canvas on the calling goroutine and encodes it on
// another. Drawing may continue while the export runs.
func (s *Surface) ExportAsync(w, h int) <-chan compositor.Result {
	w, h = s.exportSize(w, h)
	return s.comp.ExportAsync(s.Snapshot(), w, h)
}

func (s *Surface) exportSize(w, h int) (int, int) {
	if w == 0 && h == 0 {
		return s.width, s.height
	}
	return w, h
}
