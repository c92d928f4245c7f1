package brush

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/example/drawpad/internal/stroke"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"red", color.RGBA{255, 0, 0, 255}},
		{"  Lime ", color.RGBA{0, 255, 0, 255}},
		{"cornflowerblue", color.RGBA{100, 149, 237, 255}},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 255}},
		{"#FFFFFFFF", color.RGBA{255, 255, 255, 255}},
		{"#00000000", color.RGBA{}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12345", "#GGGGGG", "#1234567"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidBrushParameter) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidBrushParameter", in, err)
		}
	}
}

func TestParseColorAlphaIsPremultiplied(t *testing.T) {
	got, err := ParseColor("#FF000080")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if got.A != 0x80 || got.R > got.A {
		t.Fatalf("expected premultiplied colour, got %+v", got)
	}
	if hex := HexString(got); hex != "#FF000080" {
		t.Fatalf("HexString round trip = %s", hex)
	}
}

func TestSetWidthRejectsNonPositive(t *testing.T) {
	s := NewSettings()
	if err := s.SetWidth(12); err != nil {
		t.Fatalf("SetWidth(12): %v", err)
	}
	for _, w := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if err := s.SetWidth(w); !errors.Is(err, ErrInvalidBrushParameter) {
			t.Fatalf("SetWidth(%v) error = %v", w, err)
		}
		if s.Width() != 12 {
			t.Fatalf("width changed to %v after rejected %v", s.Width(), w)
		}
	}
}

func TestSetColorTokenKeepsPrevious(t *testing.T) {
	s := NewSettings(WithColor(color.RGBA{0, 0, 255, 255}))
	if err := s.SetColorToken("mauve-ish"); err == nil {
		t.Fatalf("expected error")
	}
	if s.Color() != (color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("colour changed after rejected token: %v", s.Color())
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewSettings()
	snap := s.Snapshot()
	_ = s.SetWidth(3)
	s.SetColor(color.RGBA{1, 2, 3, 255})
	if snap.Width != DefaultWidth() || snap.Color != DefaultColor() {
		t.Fatalf("snapshot followed later changes: %+v", snap)
	}
	if snap.Style != stroke.StyleFreehand {
		t.Fatalf("unexpected default style %q", snap.Style)
	}
}

func TestPresets(t *testing.T) {
	want := map[Preset]float64{PresetSmall: 10, PresetMedium: 20, PresetLarge: 30}
	for p, w := range want {
		if got := PresetWidth(p); got != w {
			t.Errorf("PresetWidth(%s) = %v, want %v", p, got, w)
		}
	}
	s := NewSettings()
	if s.Width() != 20 {
		t.Fatalf("default width = %v, want medium preset", s.Width())
	}
	if err := s.ApplyPreset(PresetLarge); err != nil || s.Width() != 30 {
		t.Fatalf("ApplyPreset(large) width=%v err=%v", s.Width(), err)
	}
	if _, err := ParsePreset("huge"); !errors.Is(err, ErrInvalidBrushParameter) {
		t.Fatalf("ParsePreset(huge) error = %v", err)
	}
	if err := s.ApplyPreset("huge"); err == nil || s.Width() != 30 {
		t.Fatalf("unknown preset should be rejected, width=%v", s.Width())
	}
}

func TestSetPresetWidth(t *testing.T) {
	orig := PresetWidth(PresetSmall)
	t.Cleanup(func() { _ = SetPresetWidth(PresetSmall, orig) })
	if err := SetPresetWidth(PresetSmall, 4); err != nil {
		t.Fatalf("SetPresetWidth: %v", err)
	}
	if PresetWidth(PresetSmall) != 4 {
		t.Fatalf("override not applied")
	}
	if err := SetPresetWidth(PresetSmall, -1); err == nil {
		t.Fatalf("expected negative preset width to be rejected")
	}
}

func TestEnsurePaletteColor(t *testing.T) {
	col := color.RGBA{1, 2, 3, 255}
	idx := EnsurePaletteColor(col, "Ink")
	if PaletteAt(idx).Color != col || PaletteIndex(col) != idx {
		t.Fatalf("palette entry not registered at %d", idx)
	}
	if again := EnsurePaletteColor(col, "Other"); again != idx {
		t.Fatalf("duplicate colour added at %d", again)
	}
	got, err := ParseColor("ink")
	if err != nil || got != col {
		t.Fatalf("ParseColor(ink) = %v, %v", got, err)
	}
}
