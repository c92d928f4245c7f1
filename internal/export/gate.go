package export

import (
	"errors"
	"os"

	"github.com/mitchellh/go-homedir"
)

// Access names what a Gate is asked to allow.
type Access string

const (
	// AccessWrite covers writing exported drawings.
	AccessWrite Access = "write"
	// AccessRead covers reading a background image.
	AccessRead Access = "read"
)

// Gate decides whether an access may proceed. The answer arrives through fn,
// possibly on another goroutine and possibly after the user was asked.
type Gate interface {
	Request(access Access, fn func(granted bool))
}

// GateFunc adapts a synchronous check to Gate.
type GateFunc func(Access) bool

// Request calls f on a new goroutine and reports its answer.
func (f GateFunc) Request(access Access, fn func(bool)) {
	go func() { fn(f(access)) }()
}

// Allow grants every request.
var Allow Gate = GateFunc(func(Access) bool { return true })

// DirGate grants write access when Dir exists, or can be created, and accepts
// new files. It grants read access when ReadPath can be opened.
type DirGate struct {
	Dir      string
	ReadPath string
}

// Request checks access on a new goroutine.
func (g DirGate) Request(access Access, fn func(bool)) {
	go func() { fn(g.check(access)) }()
}

func (g DirGate) check(access Access) bool {
	switch access {
	case AccessWrite:
		return writable(g.Dir)
	case AccessRead:
		path, err := homedir.Expand(g.ReadPath)
		if err != nil || path == "" {
			return false
		}
		f, err := os.Open(path)
		if err != nil {
			return false
		}
		_ = f.Close()
		return true
	}
	return false
}

func writable(dir string) bool {
	dir, err := homedir.Expand(dir)
	if err != nil {
		return false
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".drawpad-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return false
	}
	return true
}
