package config

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/example/drawpad/internal/brush"
	"github.com/example/drawpad/internal/compositor"
)

// EnvSaveDir overrides save_dir when no flag is given.
const EnvSaveDir = "DRAWPAD_SAVE_DIR"

// DefaultSaveDir is used when neither flag, environment nor file set one.
const DefaultSaveDir = "~/Pictures/drawpad"

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// PaletteEntry is a named colour added to the brush palette.
type PaletteEntry struct {
	Name  string
	Color color.RGBA
}

// Config holds the application configuration.
type Config struct {
	SaveDir       string
	Color         string
	Width         float64
	Fill          string
	BackgroundFit string
	MaxPixels     int
	Theme         string
	// Brush overrides preset widths by preset name.
	Brush   map[brush.Preset]float64
	Notify  Notify
	Palette []PaletteEntry
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Brush: make(map[brush.Preset]float64),
	}
}

// ResolveSaveDir applies the precedence flag > environment > file > default.
func (c *Config) ResolveSaveDir(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSaveDir)); v != "" {
		return v
	}
	if c.SaveDir != "" {
		return c.SaveDir
	}
	return DefaultSaveDir
}

// Apply registers palette entries and preset overrides with the brush
// package. Palette entries are applied first so Color may name one of them.
func (c *Config) Apply() error {
	for _, p := range c.Palette {
		brush.EnsurePaletteColor(p.Color, p.Name)
	}
	for _, p := range brush.Presets() {
		w, ok := c.Brush[p]
		if !ok {
			continue
		}
		if err := brush.SetPresetWidth(p, w); err != nil {
			return fmt.Errorf("[brush] %s: %w", p, err)
		}
	}
	if c.Color != "" {
		if _, err := brush.ParseColor(c.Color); err != nil {
			return fmt.Errorf("color: %w", err)
		}
	}
	return nil
}

// BrushOptions returns the initial brush settings described by the file.
func (c *Config) BrushOptions() []brush.Option {
	var opts []brush.Option
	if c.Color != "" {
		if col, err := brush.ParseColor(c.Color); err == nil {
			opts = append(opts, brush.WithColor(col))
		}
	}
	if c.Width > 0 {
		opts = append(opts, brush.WithWidth(c.Width))
	}
	return opts
}

// FillColor returns the configured fill or the compositor default. Unusable
// values are logged and replaced by the default.
func (c *Config) FillColor() color.RGBA {
	if c.Fill == "" {
		return compositor.DefaultFill
	}
	col, err := brush.ParseColor(c.Fill)
	if err != nil {
		log.Printf("config: fill: %v, using default", err)
		return compositor.DefaultFill
	}
	if col.A == 0 {
		log.Printf("config: fill %q is fully transparent, using default", c.Fill)
		return compositor.DefaultFill
	}
	return col
}

// Fit returns the configured background fit.
func (c *Config) Fit() compositor.Fit {
	f, err := compositor.ParseFit(c.BackgroundFit)
	if err != nil {
		return compositor.FitCover
	}
	return f
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Color)
	}
	if c.Width > 0 {
		fmt.Fprintf(&sb, "width = %s\n", strconv.FormatFloat(c.Width, 'g', -1, 64))
	}
	if c.Fill != "" {
		fmt.Fprintf(&sb, "fill = %s\n", c.Fill)
	}
	if c.BackgroundFit != "" {
		fmt.Fprintf(&sb, "background_fit = %s\n", c.BackgroundFit)
	}
	if c.MaxPixels > 0 {
		fmt.Fprintf(&sb, "max_pixels = %d\n", c.MaxPixels)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	if len(c.Brush) > 0 {
		sb.WriteString("[brush]\n")
		for _, p := range brush.Presets() {
			if w, ok := c.Brush[p]; ok {
				fmt.Fprintf(&sb, "%s = %s\n", p, strconv.FormatFloat(w, 'g', -1, 64))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	if len(c.Palette) > 0 {
		sb.WriteString("\n[palette]\n")
		for _, p := range c.Palette {
			fmt.Fprintf(&sb, "%s = %s\n", p.Name, brush.HexString(p.Color))
		}
	}
	return sb.String()
}
