package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `Name: Ink
// comment
StatusBackground: #101820
StatusText: white
Unknown: #FFFFFF
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Ink" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.StatusBackground != (color.RGBA{0x10, 0x18, 0x20, 0xFF}) {
		t.Errorf("StatusBackground = %v", th.StatusBackground)
	}
	if th.StatusText != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("StatusText = %v", th.StatusText)
	}
	if th.StatusMessage != Default().StatusMessage {
		t.Errorf("missing keys should keep defaults")
	}

	if _, err := Parse(strings.NewReader("StatusText: nope")); err == nil {
		t.Errorf("expected error for invalid colour")
	}
}

func TestLoadEmbedded(t *testing.T) {
	l := &Loader{}
	for _, name := range []string{"default", "dark", "High_Contrast", "dark.theme"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name == "" {
			t.Errorf("Load(%q) returned unnamed theme", name)
		}
	}
	if _, err := l.Load("missing"); err == nil {
		t.Errorf("expected error for missing theme")
	}
}

func TestLoadFromConfigDirAndPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ink.theme"), []byte("Name: Ink\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("ink")
	if err != nil || th.Name != "Ink" {
		t.Fatalf("Load(ink) = %v, %v", th, err)
	}
	th, err = l.Load(filepath.Join(dir, "ink.theme"))
	if err != nil || th.Name != "Ink" {
		t.Fatalf("Load(path) = %v, %v", th, err)
	}
}

func TestResolvePrecedence(t *testing.T) {
	l := &Loader{}
	t.Setenv(EnvTheme, "")
	th, err := l.Resolve("", "dark")
	if err != nil || th.Name != "Dark" {
		t.Fatalf("config theme = %v, %v", th, err)
	}
	t.Setenv(EnvTheme, "high_contrast")
	th, _ = l.Resolve("", "dark")
	if th.Name != "High Contrast" {
		t.Fatalf("env theme = %q", th.Name)
	}
	th, _ = l.Resolve("default", "dark")
	if th.Name != "Default" {
		t.Fatalf("flag theme = %q", th.Name)
	}
	th, err = l.Resolve("nonexistent", "")
	if err == nil || th.Name != "Default" {
		t.Fatalf("missing theme should fall back to default: %v, %v", th, err)
	}
}
