// Package ui shows a Surface in a native window and feeds it mouse and
// keyboard input.
package ui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/drawpad/internal/export"
	"github.com/example/drawpad/internal/surface"
	"github.com/example/drawpad/internal/theme"
)

const (
	statusHeight  = 20
	defaultWidth  = 800
	defaultHeight = 600
)

// resultEvent carries an asynchronous result into the event loop.
type resultEvent struct{ v interface{} }

// Window holds what the UI needs to run.
type Window struct {
	Surface  *surface.Surface
	Exporter *export.Exporter
	SaveDir  string
	Title    string
	Theme    *theme.Theme

	onClose func()
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithExporter sets the exporter used by the save, pdf and copy keys.
func WithExporter(e *export.Exporter) Option { return func(w *Window) { w.Exporter = e } }

// WithSaveDir sets where saved drawings go.
func WithSaveDir(dir string) Option { return func(w *Window) { w.SaveDir = dir } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(w *Window) { w.Title = title } }

// WithTheme sets the colours of the status bar.
func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.Theme = t } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

// New creates a Window for surf.
func New(surf *surface.Surface, opts ...Option) *Window {
	w := &Window{Surface: surf, SaveDir: ".", Title: "drawpad"}
	for _, o := range opts {
		o(w)
	}
	if w.Theme == nil {
		w.Theme = theme.Default()
	}
	return w
}

// Run executes the UI loop using shiny's driver. It returns when the window
// is closed.
func (w *Window) Run() { driver.Main(w.Main) }

// Main runs the event loop on s.
func (w *Window) Main(s screen.Screen) {
	width, height := w.Surface.Size()
	if width == 0 || height == 0 {
		width, height = defaultWidth, defaultHeight
	}
	win, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  width,
		Height: height + statusHeight,
		Title:  w.Title,
	})
	if err != nil {
		log.Printf("ui: new window: %v", err)
		return
	}
	defer win.Release()
	if w.onClose != nil {
		defer w.onClose()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := newController(ctx, w.Surface, w.Exporter, w.SaveDir, func(v interface{}) {
		win.Send(resultEvent{v})
	})

	go func() {
		for {
			select {
			case <-w.Surface.Invalidated():
				win.Send(paint.Event{})
			case <-ctx.Done():
				return
			}
		}
	}()

	winW, winH := width, height+statusHeight
	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			winW, winH = e.WidthPx, e.HeightPx
			if ch := winH - statusHeight; winW > 0 && ch > 0 {
				w.Surface.Resize(winW, ch)
			}
			win.Send(paint.Event{})
		case paint.Event:
			drawFrame(s, win, w.Surface, statusLine{
				text:    ctrl.Status(),
				message: ctrl.Message(),
				swatch:  w.Surface.Brush().Color(),
				theme:   w.Theme,
			}, winW, winH)
		case mouse.Event:
			if ctrl.HandleMouse(e) {
				win.Send(paint.Event{})
			}
		case key.Event:
			if a := Lookup(e); a != ActionNone {
				if ctrl.HandleAction(a) {
					return
				}
				win.Send(paint.Event{})
			}
		case resultEvent:
			ctrl.HandleResult(e.v)
			win.Send(paint.Event{})
			time.AfterFunc(messageDuration, func() { win.Send(paint.Event{}) })
		case error:
			log.Printf("ui: %v", e)
		}
	}
}

// statusLine is what the status bar shows for one frame.
type statusLine struct {
	text    string
	message string
	swatch  color.RGBA
	theme   *theme.Theme
}

func drawFrame(s screen.Screen, win screen.Window, surf *surface.Surface, st statusLine, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("ui: new buffer: %v", err)
		return
	}
	defer b.Release()

	canvasH := height - statusHeight
	if canvasH > 0 {
		canvas := b.RGBA().SubImage(image.Rect(0, 0, width, canvasH)).(*image.RGBA)
		if err := surf.Render(canvas); err != nil {
			log.Printf("ui: render: %v", err)
		}
	}
	drawStatus(b.RGBA(), image.Rect(0, max(canvasH, 0), width, height), st)

	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}

func drawStatus(dst *image.RGBA, rect image.Rectangle, st statusLine) {
	th := st.theme
	if th == nil {
		th = theme.Default()
	}
	draw.Draw(dst, rect, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)

	sw := image.Rect(rect.Min.X+4, rect.Min.Y+4, rect.Min.X+4+statusHeight-8, rect.Max.Y-4)
	draw.Draw(dst, sw, &image.Uniform{th.StatusSwatchBorder}, image.Point{}, draw.Src)
	draw.Draw(dst, sw.Inset(1), &image.Uniform{st.swatch}, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(sw.Max.X+6, rect.Min.Y+14)}
	d.DrawString(st.text)
	if st.message != "" {
		d.Src = image.NewUniform(th.StatusMessage)
		d.DrawString("   " + st.message)
	}
}
