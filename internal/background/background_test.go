package background

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeSniffsFormat(t *testing.T) {
	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, sample()); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}
	tests := []struct {
		name string
		data []byte
		mime string
	}{
		{"png", encodePNG(t, sample()), "image/png"},
		{"bmp", bmpBuf.Bytes(), "image/bmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, mime, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if mime != tt.mime {
				t.Fatalf("mime = %q, want %q", mime, tt.mime)
			}
			if img.Bounds() != image.Rect(0, 0, 3, 2) {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			r, g, b, _ := img.At(1, 1).RGBA()
			if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
				t.Fatalf("pixel mismatch: %d %d %d", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestDecodeRejectsUnknown(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("hello world"), []byte("%PDF-1.4\n")} {
		if _, _, err := Decode(data); !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("Decode(%q) error = %v", data, err)
		}
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bg.png")
	if err := os.WriteFile(path, encodePNG(t, sample()), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := FileProvider{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if _, err := (FileProvider{Path: filepath.Join(dir, "missing.png")}).Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v", err)
	}
	bad := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileProvider{Path: bad}).Load(context.Background()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("text file error = %v", err)
	}
}

func TestClipboardProvider(t *testing.T) {
	prev := readClipboard
	t.Cleanup(func() { readClipboard = prev })

	data := encodePNG(t, sample())
	readClipboard = func() ([]byte, error) { return data, nil }
	img, err := ClipboardProvider{}.Load(context.Background())
	if err != nil || img.Bounds().Dy() != 2 {
		t.Fatalf("Load = %v, %v", img, err)
	}

	empty := errors.New("empty")
	readClipboard = func() ([]byte, error) { return nil, empty }
	if _, err := (ClipboardProvider{}).Load(context.Background()); !errors.Is(err, empty) {
		t.Fatalf("error = %v, want wrapped clipboard error", err)
	}
}

func TestScreenProviderFallsBack(t *testing.T) {
	prevPortal, prevRoot := portalScreenshot, rootScreenshot
	t.Cleanup(func() { portalScreenshot, rootScreenshot = prevPortal, prevRoot })

	portalErr := errors.New("no portal")
	rootErr := errors.New("no X")
	portalScreenshot = func(context.Context, bool) (image.Image, error) { return nil, portalErr }
	rootScreenshot = func() (image.Image, error) { return sample(), nil }
	img, err := ScreenProvider{}.Load(context.Background())
	if err != nil || img == nil {
		t.Fatalf("fallback Load = %v, %v", img, err)
	}

	rootScreenshot = func() (image.Image, error) { return nil, rootErr }
	if _, err := (ScreenProvider{}).Load(context.Background()); !errors.Is(err, rootErr) {
		t.Fatalf("error = %v, want wrapped root error", err)
	}
}

func TestDeliver(t *testing.T) {
	done := make(chan image.Image, 1)
	p := ProviderFunc(func(context.Context) (image.Image, error) { return sample(), nil })
	Deliver(context.Background(), p, func(img image.Image, err error) {
		if err != nil {
			t.Errorf("deliver: %v", err)
		}
		done <- img
	})
	if img := <-done; img == nil {
		t.Fatalf("no image delivered")
	}
}
