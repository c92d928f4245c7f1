//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"testing"
)

func TestNotifyUnsupported(t *testing.T) {
	if err := Notify("drawpad", "saved", Options{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Notify = %v, want ErrUnsupported", err)
	}
}
