package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/mitchellh/go-homedir"

	"github.com/example/drawpad/internal/clipboard"
)

// Sink stores an encoded PNG and reports where it went.
type Sink interface {
	Persist(ctx context.Context, data []byte) (string, error)
}

// DefaultPrefix starts every generated file name.
const DefaultPrefix = "drawpad"

var now = time.Now

// FileSink writes PNG files. With Path set it writes exactly there; otherwise
// it creates <Dir>/<Prefix>_<unix seconds>.png without replacing an existing
// file.
type FileSink struct {
	Dir    string
	Path   string
	Prefix string
}

// Persist writes data and returns the file path.
func (s FileSink) Persist(ctx context.Context, data []byte) (string, error) {
	return s.write(ctx, ".png", data)
}

// Name returns the file name generated for t.
func (s FileSink) Name(t time.Time, ext string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "_" + strconv.FormatInt(t.Unix(), 10) + ext
}

func (s FileSink) write(ctx context.Context, ext string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Path != "" {
		path, err := homedir.Expand(s.Path)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		return path, os.WriteFile(path, data, 0o644)
	}
	dir, err := homedir.Expand(s.Dir)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	base := s.Name(now(), "")
	for i := 0; ; i++ {
		name := base + ext
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			_ = os.Remove(path)
			return "", err
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(path)
			return "", err
		}
		return path, nil
	}
}

// PDFSink wraps the PNG in a single page sized to the drawing and writes it
// with the same naming rules as FileSink.
type PDFSink struct {
	FileSink
}

// Persist converts data to PDF and writes it.
func (s PDFSink) Persist(ctx context.Context, data []byte) (string, error) {
	doc, err := pngToPDF(data)
	if err != nil {
		return "", err
	}
	return s.write(ctx, ".pdf", doc)
}

func pngToPDF(data []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read png header: %w", err)
	}
	w, h := float64(cfg.Width), float64(cfg.Height)
	// Portrait keeps Size as given; landscape would swap the axes.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("drawpad", true)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("drawing", opts, bytes.NewReader(data))
	pdf.ImageOptions("drawing", 0, 0, w, h, false, opts, 0, "")
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteImage

// ClipboardSink places the PNG on the clipboard.
type ClipboardSink struct{}

// ClipboardDest is the destination reported by ClipboardSink.
const ClipboardDest = "clipboard"

// Persist copies data to the clipboard.
func (ClipboardSink) Persist(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := writeClipboard(data); err != nil {
		return "", err
	}
	return ClipboardDest, nil
}
