//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package background

import (
	"context"
	"errors"
	"image"
)

var errNoScreen = errors.New("screen capture is not supported on this platform")

func portalCapture(context.Context, bool) (image.Image, error) { return nil, errNoScreen }

func x11RootCapture() (image.Image, error) { return nil, errNoScreen }
