//go:build linux || freebsd || openbsd || netbsd || dragonfly

package background

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var portalHandleToken = func() string {
	return fmt.Sprintf("drawpad-%d", time.Now().UnixNano())
}

func portalCapture(ctx context.Context, interactive bool) (image.Image, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("dbus close: %v", cerr)
		}
	}()

	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	var handle dbus.ObjectPath
	call := obj.CallWithContext(ctx, "org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalOptions(interactive))
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return nil, errors.New("portal screenshot: bus closed")
			}
			if sig.Path != handle || sig.Name != "org.freedesktop.portal.Request.Response" {
				continue
			}
			path, err := portalResultPath(sig.Body)
			if err != nil {
				return nil, err
			}
			return loadPortalFile(path)
		}
	}
}

func portalOptions(interactive bool) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(interactive),
		"modal":        dbus.MakeVariant(interactive),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
	}
}

// portalResultPath extracts the file path from a Request.Response body of
// (response uint32, results a{sv}).
func portalResultPath(body []interface{}) (string, error) {
	if len(body) < 2 {
		return "", errors.New("portal screenshot: malformed response")
	}
	if code, ok := body[0].(uint32); ok && code != 0 {
		return "", fmt.Errorf("portal screenshot: request ended with code %d", code)
	}
	res, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", errors.New("portal screenshot: malformed results")
	}
	uriVar, ok := res["uri"]
	if !ok {
		return "", errors.New("portal screenshot: response missing image data")
	}
	uri, ok := uriVar.Value().(string)
	if !ok {
		return "", errors.New("portal screenshot: uri is not a string")
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", fmt.Errorf("portal screenshot: unexpected uri %q", uri)
	}
	return u.Path, nil
}

func loadPortalFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot image: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("remove %s: %v", path, err)
	}
	img, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot image: %w", err)
	}
	return img, nil
}

func x11RootCapture() (image.Image, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	w, h := screen.WidthInPixels, screen.HeightInPixels
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root), 0, 0, w, h, ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	return xImageToRGBA(setup.PixmapFormats, reply.Depth, reply.Data, int(w), int(h))
}

// xImageToRGBA converts a ZPixmap in BGRx order to RGBA.
func xImageToRGBA(formats []xproto.Format, depth byte, data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen has empty geometry")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("screen pixels: empty image data")
	}
	bitsPerPixel := 0
	for _, format := range formats {
		if format.Depth == depth {
			bitsPerPixel = int(format.BitsPerPixel)
			break
		}
	}
	if bitsPerPixel == 0 {
		return nil, fmt.Errorf("unsupported screen depth %d", depth)
	}
	bytesPerPixel := bitsPerPixel / 8
	if bytesPerPixel < 3 {
		return nil, fmt.Errorf("unsupported screen pixel format %d bpp", bitsPerPixel)
	}
	stride := len(data) / height
	if stride*height != len(data) || stride < width*bytesPerPixel {
		return nil, fmt.Errorf("screen pixels: unexpected stride")
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			off := x * bytesPerPixel
			pix := img.PixOffset(x, y)
			img.Pix[pix+0] = row[off+2]
			img.Pix[pix+1] = row[off+1]
			img.Pix[pix+2] = row[off]
			// Depth 24 leaves the pad byte undefined, so only trust it at depth 32.
			a := byte(0xFF)
			if bytesPerPixel >= 4 && depth == 32 {
				a = row[off+3]
			}
			img.Pix[pix+3] = a
		}
	}
	return img, nil
}
