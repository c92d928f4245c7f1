//go:build linux || freebsd || openbsd || netbsd || dragonfly

package background

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/jezek/xgb/xproto"
)

func TestPortalOptions(t *testing.T) {
	prev := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prev })

	opts := portalOptions(true)
	if v, _ := opts["interactive"].Value().(bool); !v {
		t.Fatalf("interactive not set")
	}
	if v, _ := opts["handle_token"].Value().(string); v != "test-token" {
		t.Fatalf("handle_token = %q", v)
	}
}

func TestPortalResultPath(t *testing.T) {
	ok := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screenshot%20one.png")}}
	path, err := portalResultPath(ok)
	if err != nil || path != "/tmp/Screenshot one.png" {
		t.Fatalf("portalResultPath = %q, %v", path, err)
	}
	cancelled := []interface{}{uint32(1), map[string]dbus.Variant{}}
	if _, err := portalResultPath(cancelled); err == nil {
		t.Fatalf("expected error for cancelled request")
	}
	if _, err := portalResultPath([]interface{}{uint32(0)}); err == nil {
		t.Fatalf("expected error for short body")
	}
}

func TestXImageToRGBA(t *testing.T) {
	formats := []xproto.Format{{Depth: 24, BitsPerPixel: 32}}
	// Two pixels in BGRx order with a garbage pad byte.
	data := []byte{1, 2, 3, 0, 4, 5, 6, 7}
	img, err := xImageToRGBA(formats, 24, data, 2, 1)
	if err != nil {
		t.Fatalf("xImageToRGBA: %v", err)
	}
	want := []byte{3, 2, 1, 255, 6, 5, 4, 255}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
	if _, err := xImageToRGBA(formats, 16, data, 2, 1); err == nil {
		t.Fatalf("expected error for unknown depth")
	}
	if _, err := xImageToRGBA(formats, 24, data[:6], 2, 1); err == nil {
		t.Fatalf("expected error for short row")
	}
}
