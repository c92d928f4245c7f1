package stroke

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrGestureActive is returned by Begin while a gesture is in progress.
	ErrGestureActive = errors.New("gesture already active")
	// ErrInvalidAttributes is returned by Begin for a non-positive width.
	ErrInvalidAttributes = errors.New("invalid stroke attributes")
)

// Recorder turns a continuous pointer gesture into a Stroke.
//
// A Recorder is not safe for concurrent use; gestures are delivered from a
// single event loop.
type Recorder struct {
	active *Stroke

	// OnExtend, when set, is called after each accepted point so the owner can
	// schedule a repaint of the in-progress stroke.
	OnExtend func()
}

// Begin starts a new stroke at p using a copy of attrs.
func (r *Recorder) Begin(p Point, attrs Attributes) error {
	if r.active != nil {
		return ErrGestureActive
	}
	if !attrs.Valid() {
		return fmt.Errorf("%w: width %v", ErrInvalidAttributes, attrs.Width)
	}
	if attrs.Style == "" {
		attrs.Style = StyleFreehand
	}
	r.active = &Stroke{
		id:     uuid.New(),
		points: []Point{p},
		attrs:  attrs,
	}
	return nil
}

// Extend appends p to the active stroke. It reports false when no gesture is
// active.
func (r *Recorder) Extend(p Point) bool {
	if r.active == nil {
		return false
	}
	r.active.points = append(r.active.points, p)
	if r.OnExtend != nil {
		r.OnExtend()
	}
	return true
}

// End freezes the active stroke and returns it.
func (r *Recorder) End() (Stroke, bool) {
	if r.active == nil {
		return Stroke{}, false
	}
	s := *r.active
	r.active = nil
	// Trim spare capacity so later appends elsewhere can never alias.
	s.points = s.points[:len(s.points):len(s.points)]
	return s, true
}

// Active returns a copy of the in-progress stroke.
func (r *Recorder) Active() (Stroke, bool) {
	if r.active == nil {
		return Stroke{}, false
	}
	return r.active.Clone(), true
}

// Recording reports whether a gesture is in progress.
func (r *Recorder) Recording() bool { return r.active != nil }

// Discard drops the in-progress stroke without returning it.
func (r *Recorder) Discard() {
	r.active = nil
}
