//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a desktop notification using macOS Notification Center.
func Notify(title, body string, opts Options) error {
	opts = opts.withDefaults()
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, opts.AppName)
	return exec.Command("osascript", "-e", script).Run()
}
