package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/drawpad/internal/brush"
	"github.com/example/drawpad/internal/compositor"
	"github.com/example/drawpad/internal/config"
	"github.com/example/drawpad/internal/session"
	"github.com/example/drawpad/internal/stroke"
	"github.com/example/drawpad/internal/surface"
)

const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 600
)

// canvasFlags are shared by every subcommand that opens a surface.
type canvasFlags struct {
	background string
	size       string
	fit        string
	color      string
	width      float64
	preset     string
	style      string
}

func addCanvasFlags(fs *flag.FlagSet) *canvasFlags {
	c := &canvasFlags{}
	fs.StringVar(&c.background, "background", "", "background image file, or clipboard or screen")
	fs.StringVar(&c.size, "size", "", "canvas size as WxH (defaults to the background size)")
	fs.StringVar(&c.fit, "fit", "", "background fit: cover, contain or stretch")
	fs.StringVar(&c.color, "color", "", "brush color name or hex value")
	fs.Float64Var(&c.width, "width", 0, "brush width in pixels")
	fs.StringVar(&c.preset, "brush", "", "brush preset: small, medium or large")
	fs.StringVar(&c.style, "style", "", "stroke style: freehand or line")
	return c
}

// parseSize reads a WxH dimension.
func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	return w, h, nil
}

// brushSettings applies the config file first and the flags on top.
func (c *canvasFlags) brushSettings(cfg *config.Config) (*brush.Settings, error) {
	var opts []brush.Option
	if cfg != nil {
		opts = cfg.BrushOptions()
	}
	b := brush.NewSettings(opts...)
	if c.preset != "" {
		p, err := brush.ParsePreset(c.preset)
		if err != nil {
			return nil, err
		}
		if err := b.ApplyPreset(p); err != nil {
			return nil, err
		}
	}
	if c.width != 0 {
		if err := b.SetWidth(c.width); err != nil {
			return nil, err
		}
	}
	if c.color != "" {
		if err := b.SetColorToken(c.color); err != nil {
			return nil, err
		}
	}
	if c.style != "" {
		st, err := stroke.ParseStyle(c.style)
		if err != nil {
			return nil, err
		}
		if err := b.SetStyle(st); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// newSurface builds a surface from the config and flags.
func (c *canvasFlags) newSurface(cfg *config.Config) (*surface.Surface, error) {
	if cfg == nil {
		cfg = config.New()
	}
	b, err := c.brushSettings(cfg)
	if err != nil {
		return nil, err
	}
	fit := cfg.Fit()
	if c.fit != "" {
		if fit, err = compositor.ParseFit(c.fit); err != nil {
			return nil, err
		}
	}
	var compOpts []compositor.Option
	if cfg.MaxPixels > 0 {
		compOpts = append(compOpts, compositor.WithMaxPixels(cfg.MaxPixels))
	}
	opts := []surface.Option{
		surface.WithBrush(b),
		surface.WithFill(cfg.FillColor()),
		surface.WithFit(fit),
		surface.WithCompositor(compositor.New(compOpts...)),
	}
	if c.size != "" {
		w, h, err := parseSize(c.size)
		if err != nil {
			return nil, err
		}
		opts = append(opts, surface.WithSize(w, h))
	}
	return surface.New(opts...), nil
}

// openSession creates the surface and session, loads the background and
// falls back to the default canvas size.
func (c *canvasFlags) openSession(ctx context.Context, r *root, out io.Writer, sessOpts ...session.Option) (*session.Session, error) {
	var cfg *config.Config
	if r != nil {
		cfg = r.config
	}
	surf, err := c.newSurface(cfg)
	if err != nil {
		return nil, err
	}
	dir := r.saveDir()
	opts := append([]session.Option{
		session.WithOutput(out),
		session.WithSaveDir(dir),
		session.WithExporter(r.exporter(dir)),
	}, sessOpts...)
	s := session.New(surf, opts...)
	if c.background != "" {
		if err := s.LoadBackground(ctx, c.background); err != nil {
			s.Close()
			return nil, err
		}
	}
	if w, h := surf.Size(); w == 0 || h == 0 {
		surf.Resize(defaultCanvasWidth, defaultCanvasHeight)
	}
	return s, nil
}
