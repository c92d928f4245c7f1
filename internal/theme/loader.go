package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvTheme selects a theme when no flag is given.
const EnvTheme = "DRAWPAD_THEME"

// Loader handles loading themes from various sources.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a new Loader with standard paths.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "drawpad", "themes"),
		SystemDir: "/usr/share/drawpad/themes",
	}
}

// Load finds a theme by name or path, trying in order: an existing file
// path, the embedded themes, ConfigDir and SystemDir. An empty name is the
// default theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFile(name)
	}

	filename := strings.ToLower(name)
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if f, err := EmbeddedThemes.Open("defaults/" + filename); err == nil {
		defer f.Close()
		return Parse(f)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return parseFile(p)
		}
	}
	return nil, fmt.Errorf("theme %q not found", name)
}

// Resolve applies the precedence flag > environment > config file and falls
// back to the default theme when the chosen one cannot be loaded.
func (l *Loader) Resolve(flagValue, configValue string) (*Theme, error) {
	name := strings.TrimSpace(flagValue)
	if name == "" {
		name = strings.TrimSpace(os.Getenv(EnvTheme))
	}
	if name == "" {
		name = strings.TrimSpace(configValue)
	}
	t, err := l.Load(name)
	if err != nil {
		return Default(), err
	}
	return t, nil
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
