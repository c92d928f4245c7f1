// Package export persists encoded drawings. An Exporter asks its Gate for
// permission, waits for the encoder, hands the bytes to a Sink and announces
// the result.
package export

import (
	"context"
	"log"
	"path/filepath"

	"github.com/example/drawpad/internal/compositor"
)

// Announcer is told about completed exports.
type Announcer interface {
	Saved(path string)
	Copied(detail string, png []byte)
}

// Exporter connects a permission gate, an encoded result and a sink.
type Exporter struct {
	Gate     Gate
	Notifier Announcer
}

// Persist blocks until the export is stored, denied or ctx is done. Encoder
// failures are returned unchanged; everything after encoding is reported as
// a *PersistFailure.
func (e *Exporter) Persist(ctx context.Context, sink Sink, result <-chan compositor.Result) (string, error) {
	dest := destOf(sink)
	if access, ok := accessFor(sink); ok {
		granted, err := e.request(ctx, gateFor(e.Gate, sink), access)
		if err != nil {
			return "", err
		}
		if !granted {
			log.Printf("export: %s access to %s denied", access, dest)
			return "", &PersistFailure{Dest: dest, Err: ErrPermissionDenied}
		}
	}

	var res compositor.Result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-result:
	}
	if res.Err != nil {
		return "", res.Err
	}

	path, err := sink.Persist(ctx, res.Data)
	if err != nil {
		log.Printf("export: %v", err)
		return "", &PersistFailure{Dest: dest, Err: err}
	}
	if _, clip := sink.(ClipboardSink); clip {
		if e.Notifier != nil {
			e.Notifier.Copied("drawing", res.Data)
		}
	} else {
		e.Share(path)
	}
	return path, nil
}

// PersistAsync runs Persist on its own goroutine and reports through done.
func (e *Exporter) PersistAsync(ctx context.Context, sink Sink, result <-chan compositor.Result, done func(path string, err error)) {
	go func() {
		path, err := e.Persist(ctx, sink, result)
		if done != nil {
			done(path, err)
		}
	}()
}

// Share announces a saved file to the desktop.
func (e *Exporter) Share(path string) {
	if e.Notifier != nil {
		e.Notifier.Saved(path)
	}
}

func (e *Exporter) request(ctx context.Context, gate Gate, access Access) (bool, error) {
	if gate == nil {
		gate = Allow
	}
	return Await(ctx, gate, access)
}

// Await asks gate for access and blocks until it answers or ctx is done.
func Await(ctx context.Context, gate Gate, access Access) (bool, error) {
	answer := make(chan bool, 1)
	gate.Request(access, func(granted bool) { answer <- granted })
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case granted := <-answer:
		return granted, nil
	}
}

// gateFor points a DirGate at the directory an explicit sink path lands in.
func gateFor(gate Gate, sink Sink) Gate {
	g, ok := gate.(DirGate)
	if !ok {
		return gate
	}
	var path string
	switch s := sink.(type) {
	case FileSink:
		path = s.Path
	case PDFSink:
		path = s.Path
	}
	if path == "" {
		return gate
	}
	g.Dir = filepath.Dir(path)
	return g
}

func accessFor(sink Sink) (Access, bool) {
	switch sink.(type) {
	case ClipboardSink:
		return "", false
	}
	return AccessWrite, true
}

func destOf(sink Sink) string {
	switch s := sink.(type) {
	case FileSink:
		return s.dest()
	case PDFSink:
		return s.dest()
	case ClipboardSink:
		return ClipboardDest
	}
	return ""
}

func (s FileSink) dest() string {
	if s.Path != "" {
		return s.Path
	}
	if s.Dir == "" {
		return "."
	}
	return s.Dir
}
