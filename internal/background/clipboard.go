package background

import (
	"context"
	"fmt"
	"image"

	"github.com/example/drawpad/internal/clipboard"
)

// readClipboard is swapped in tests.
var readClipboard = clipboard.ReadImage

// ClipboardProvider loads the image currently on the clipboard.
type ClipboardProvider struct{}

// Load reads and decodes the clipboard contents.
func (ClipboardProvider) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := readClipboard()
	if err != nil {
		return nil, fmt.Errorf("paste: %w", err)
	}
	img, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("paste: %w", err)
	}
	return img, nil
}
