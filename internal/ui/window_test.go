package ui

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/drawpad/internal/surface"
	"github.com/example/drawpad/internal/theme"
)

func TestDrawStatus(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 40))
	rect := image.Rect(0, 20, 200, 40)
	th := theme.Default()
	th.StatusBackground = color.RGBA{10, 20, 30, 255}
	swatch := color.RGBA{200, 0, 0, 255}
	drawStatus(dst, rect, statusLine{text: "Red", swatch: swatch, theme: th})

	if got := dst.RGBAAt(199, 39); got != th.StatusBackground {
		t.Fatalf("background = %v", got)
	}
	if got := dst.RGBAAt(10, 30); got != swatch {
		t.Fatalf("swatch = %v", got)
	}
	if got := dst.RGBAAt(5, 5); got != (color.RGBA{}) {
		t.Fatalf("status bar drew outside its rect: %v", got)
	}
}

func TestNewWindowDefaults(t *testing.T) {
	w := New(surface.New())
	if w.Theme == nil || w.Title != "drawpad" || w.SaveDir != "." {
		t.Fatalf("unexpected defaults %+v", w)
	}
	dark := &theme.Theme{Name: "Dark"}
	w = New(surface.New(), WithTheme(dark), WithTitle("sketch"), WithSaveDir("/tmp"))
	if w.Theme != dark || w.Title != "sketch" || w.SaveDir != "/tmp" {
		t.Fatalf("options not applied %+v", w)
	}
}
