package compositor

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTarget is wrapped by RenderFailure for zero sized targets.
	ErrEmptyTarget = errors.New("target has no pixels")
	// ErrTargetTooLarge is wrapped by RenderFailure when a target exceeds MaxPixels.
	ErrTargetTooLarge = errors.New("target exceeds pixel limit")
)

// RenderFailure reports that a paint or export could not complete. No partial
// output accompanies it.
type RenderFailure struct {
	Reason string
	Err    error
}

func (e *RenderFailure) Error() string {
	if e.Err == nil {
		return "render failed: " + e.Reason
	}
	return fmt.Sprintf("render failed: %s: %v", e.Reason, e.Err)
}

func (e *RenderFailure) Unwrap() error { return e.Err }

func failure(reason string, err error) error {
	return &RenderFailure{Reason: reason, Err: err}
}
