// Package background supplies the optional image shown beneath the strokes.
// Providers load from files, the clipboard or the screen and may deliver late;
// the canvas only ever holds a reference to what they return.
package background

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	// Decoders for every format the sniffer accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for data that is not a supported image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Provider loads a background image.
type Provider interface {
	Load(ctx context.Context) (image.Image, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (image.Image, error)

// Load calls f.
func (f ProviderFunc) Load(ctx context.Context) (image.Image, error) { return f(ctx) }

var supported = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// Decode sniffs data and decodes it with the matching registered decoder.
func Decode(data []byte) (image.Image, string, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return nil, "", ErrUnsupportedFormat
	}
	if !supported[kind.MIME.Value] {
		return nil, kind.MIME.Value, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, kind.MIME.Value, fmt.Errorf("decode %s: %w", kind.MIME.Value, err)
	}
	return img, kind.MIME.Value, nil
}

// FileProvider reads an image file. A leading ~ in Path is expanded.
type FileProvider struct {
	Path string
}

// Load reads and decodes the file.
func (p FileProvider) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := homedir.Expand(p.Path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", p.Path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read background: %w", err)
	}
	img, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("background %s: %w", path, err)
	}
	return img, nil
}

// Deliver runs p on its own goroutine and hands the result to fn. It returns
// immediately; fn is called exactly once unless ctx is cancelled first.
func Deliver(ctx context.Context, p Provider, fn func(image.Image, error)) {
	go func() {
		img, err := p.Load(ctx)
		if ctx.Err() != nil {
			return
		}
		fn(img, err)
	}()
}
