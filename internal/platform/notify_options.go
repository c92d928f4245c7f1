// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import (
	"errors"
	"time"
)

// ErrUnsupported is returned where the host has no notification service.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// DefaultAppName identifies drawpad to the notification service.
const DefaultAppName = "drawpad"

// DefaultTimeout is how long a notification stays visible when unset.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is reported as the sending application.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Category is a freedesktop category hint such as "transfer.complete".
	Category string
	// Timeout is the display duration. Zero selects DefaultTimeout.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.AppName == "" {
		o.AppName = DefaultAppName
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}
