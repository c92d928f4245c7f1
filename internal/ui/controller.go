package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/drawpad/internal/background"
	"github.com/example/drawpad/internal/brush"
	"github.com/example/drawpad/internal/export"
	"github.com/example/drawpad/internal/stroke"
	"github.com/example/drawpad/internal/surface"
)

const messageDuration = 3 * time.Second

// exportDone is posted back to the event loop when an export finishes.
type exportDone struct {
	action Action
	path   string
	err    error
}

// backgroundLoaded is posted back when a background provider answers.
type backgroundLoaded struct {
	img image.Image
	err error
}

// Controller turns window input into surface operations. Every method must be
// called from the window's event goroutine; asynchronous results come back
// through post.
type Controller struct {
	surface  *surface.Surface
	exporter *export.Exporter
	saveDir  string
	clip     background.Provider
	post     func(interface{})
	ctx      context.Context

	drawing      bool
	message      string
	messageUntil time.Time
	now          func() time.Time
}

func newController(ctx context.Context, surf *surface.Surface, exp *export.Exporter, saveDir string, post func(interface{})) *Controller {
	if exp == nil {
		exp = &export.Exporter{}
	}
	return &Controller{
		surface:  surf,
		exporter: exp,
		saveDir:  saveDir,
		clip:     background.ClipboardProvider{},
		post:     post,
		ctx:      ctx,
		now:      time.Now,
	}
}

// HandleMouse maps the left button to pointer down, drag and up. Other
// buttons are ignored.
func (c *Controller) HandleMouse(e mouse.Event) bool {
	p := stroke.Pt(float64(e.X), float64(e.Y))
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if c.drawing {
			c.surface.Cancel()
		}
		if err := c.surface.PointerDown(p); err != nil {
			return false
		}
		c.drawing = true
	case e.Direction == mouse.DirNone && c.drawing:
		return c.surface.PointerMove(p) == nil
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease && c.drawing:
		c.drawing = false
		_ = c.surface.PointerMove(p)
		if err := c.surface.PointerUp(); err != nil {
			return false
		}
	default:
		return false
	}
	return true
}

// HandleAction performs a. It reports whether the window should close.
func (c *Controller) HandleAction(a Action) (quit bool) {
	var err error
	switch a {
	case ActionNone:
		return false
	case ActionQuit:
		return true
	case ActionUndo:
		err = c.surface.Undo()
	case ActionSave:
		c.export(a, export.FileSink{Dir: c.saveDir})
	case ActionPDF:
		c.export(a, export.PDFSink{FileSink: export.FileSink{Dir: c.saveDir}})
	case ActionCopy:
		c.export(a, export.ClipboardSink{})
	case ActionPasteBackground:
		background.Deliver(c.ctx, c.clip, func(img image.Image, err error) {
			c.post(backgroundLoaded{img: img, err: err})
		})
	case ActionClearBackground:
		c.surface.ClearBackground()
	case ActionPresetSmall:
		err = c.surface.ApplyPreset(brush.PresetSmall)
	case ActionPresetMedium:
		err = c.surface.ApplyPreset(brush.PresetMedium)
	case ActionPresetLarge:
		err = c.surface.ApplyPreset(brush.PresetLarge)
	case ActionNextColor:
		c.cycleColor(1)
	case ActionPrevColor:
		c.cycleColor(-1)
	case ActionToggleStyle:
		st := stroke.StyleLine
		if c.surface.Brush().Style() == stroke.StyleLine {
			st = stroke.StyleFreehand
		}
		err = c.surface.SetStyle(st)
	}
	if err != nil {
		c.setMessage(err.Error())
	}
	return false
}

// HandleResult applies a value posted back from an asynchronous operation.
func (c *Controller) HandleResult(v interface{}) {
	switch r := v.(type) {
	case exportDone:
		if r.err != nil {
			var pf *export.PersistFailure
			if errors.As(r.err, &pf) {
				c.setMessage(pf.UserMessage())
			} else {
				c.setMessage(fmt.Sprintf("%s failed: %v", r.action, r.err))
			}
			return
		}
		if r.path == export.ClipboardDest {
			c.setMessage("copied to clipboard")
		} else {
			c.setMessage("saved " + filepath.Base(r.path))
		}
	case backgroundLoaded:
		if r.err != nil {
			log.Printf("ui: background: %v", r.err)
			c.setMessage("background: " + r.err.Error())
			return
		}
		c.surface.SetBackground(r.img)
	}
}

func (c *Controller) export(a Action, sink export.Sink) {
	result := c.surface.ExportAsync(0, 0)
	c.exporter.PersistAsync(c.ctx, sink, result, func(path string, err error) {
		c.post(exportDone{action: a, path: path, err: err})
	})
}

func (c *Controller) cycleColor(step int) {
	n := brush.PaletteLen()
	if n == 0 {
		return
	}
	idx := brush.PaletteIndex(c.surface.Brush().Color())
	if idx < 0 {
		idx = 0
	} else {
		idx = ((idx+step)%n + n) % n
	}
	c.surface.SetColorRGBA(brush.PaletteAt(idx).Color)
}

func (c *Controller) setMessage(msg string) {
	c.message = msg
	c.messageUntil = c.now().Add(messageDuration)
}

// Status describes the brush and stroke count for the status bar.
func (c *Controller) Status() string {
	b := c.surface.Brush()
	name := brush.HexString(b.Color())
	if idx := brush.PaletteIndex(b.Color()); idx >= 0 {
		name = brush.PaletteAt(idx).Name
	}
	return fmt.Sprintf("%s  %spx  %s  strokes:%d", name,
		strconv.FormatFloat(b.Width(), 'g', -1, 64), b.Style(), len(c.surface.Strokes()))
}

// Message returns the current transient message, or "" once it has expired.
func (c *Controller) Message() string {
	if c.message == "" || !c.now().Before(c.messageUntil) {
		return ""
	}
	return c.message
}
