//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

// WriteImage publishes PNG bytes to the clipboard.
func WriteImage(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrEmpty
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

// ReadImage returns the PNG bytes currently on the clipboard.
func ReadImage() ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}
