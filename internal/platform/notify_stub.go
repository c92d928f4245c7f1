//go:build !linux && !darwin && !windows

package platform

// Notify reports ErrUnsupported so callers can log that nothing was shown.
func Notify(title, body string, opts Options) error {
	return ErrUnsupported
}
