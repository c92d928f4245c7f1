//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

// Notify sends a desktop notification using the Freedesktop.org notification spec.
func Notify(title, body string, opts Options) error {
	opts = opts.withDefaults()
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		opts.AppName, uint32(0), opts.IconPath, title, body, []string{}, hints(opts), int32(opts.Timeout.Milliseconds()))
	return call.Err
}

func hints(opts Options) map[string]dbus.Variant {
	h := map[string]dbus.Variant{}
	if opts.Category != "" {
		h["category"] = dbus.MakeVariant(opts.Category)
	}
	if opts.IconPath != "" {
		h["image-path"] = dbus.MakeVariant(opts.IconPath)
	}
	return h
}
