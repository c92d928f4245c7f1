// Package clipboard moves encoded images between drawpad and the desktop
// clipboard. Data is exchanged as image/png bytes; decoding is left to the
// caller so any registered format can be accepted.
package clipboard

import "errors"

var (
	// ErrEmpty is returned when the clipboard holds no image data.
	ErrEmpty = errors.New("clipboard does not contain image data")
	// ErrUnsupported is returned on platforms without a clipboard backend.
	ErrUnsupported = errors.New("clipboard is not supported on this platform")

	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)
