//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

// WriteImage is unavailable on this platform.
func WriteImage([]byte) error { return ErrUnsupported }

// ReadImage is unavailable on this platform.
func ReadImage() ([]byte, error) { return nil, ErrUnsupported }
