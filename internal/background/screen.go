package background

import (
	"context"
	"fmt"
	"image"
)

// Platform capture backends, swapped in tests.
var (
	portalScreenshot = portalCapture
	rootScreenshot   = x11RootCapture
)

// ScreenProvider captures the desktop. It asks the xdg desktop portal first
// and falls back to grabbing the X11 root window.
type ScreenProvider struct {
	// Interactive lets the portal show its own selection dialog.
	Interactive bool
}

// Load captures the screen.
func (p ScreenProvider) Load(ctx context.Context) (image.Image, error) {
	img, portalErr := portalScreenshot(ctx, p.Interactive)
	if portalErr == nil {
		return img, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := rootScreenshot()
	if err != nil {
		return nil, fmt.Errorf("screen capture: portal: %v; x11 fallback: %w", portalErr, err)
	}
	return img, nil
}
