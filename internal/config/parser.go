package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/drawpad/internal/brush"
	"github.com/example/drawpad/internal/compositor"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "brush":
			err = setBrushField(cfg, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case "palette":
			err = addPaletteEntry(cfg, key, value)
		}
		if err != nil {
			name := "root section"
			if section != "" {
				name = "section [" + section + "]"
			}
			return nil, fmt.Errorf("line %d: error in %s: %w", lineNo, name, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKeyValue accepts "key = value" and "key: value", preferring '='.
func splitKeyValue(line string) (string, string, bool) {
	var parts []string
	if strings.Contains(line, "=") {
		parts = strings.SplitN(line, "=", 2)
	} else if strings.Contains(line, ":") {
		parts = strings.SplitN(line, ":", 2)
	} else {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "save_dir":
		cfg.SaveDir = value
	case "color":
		cfg.Color = value
	case "fill":
		col, err := brush.ParseColor(value)
		if err != nil {
			return fmt.Errorf("fill: %w", err)
		}
		if col.A == 0 {
			return fmt.Errorf("fill %q is fully transparent", value)
		}
		cfg.Fill = value
	case "width":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil || w <= 0 {
			return fmt.Errorf("invalid width %q", value)
		}
		cfg.Width = w
	case "background_fit":
		if _, err := compositor.ParseFit(value); err != nil {
			return err
		}
		cfg.BackgroundFit = strings.ToLower(value)
	case "theme":
		cfg.Theme = value
	case "max_pixels":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid max_pixels %q", value)
		}
		cfg.MaxPixels = n
	}
	return nil
}

func setBrushField(cfg *Config, key, value string) error {
	p, err := brush.ParsePreset(key)
	if err != nil {
		return err
	}
	w, err := strconv.ParseFloat(value, 64)
	if err != nil || w <= 0 {
		return fmt.Errorf("invalid width %q for preset %s", value, p)
	}
	cfg.Brush[p] = w
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func addPaletteEntry(cfg *Config, name, value string) error {
	if !strings.HasPrefix(value, "#") {
		return fmt.Errorf("palette colour %s must be #RRGGBB or #RRGGBBAA", name)
	}
	col, err := brush.ParseColor(value)
	if err != nil {
		return err
	}
	cfg.Palette = append(cfg.Palette, PaletteEntry{Name: name, Color: col})
	return nil
}
