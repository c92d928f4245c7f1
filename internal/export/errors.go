package export

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is wrapped by PersistFailure when the gate refuses.
var ErrPermissionDenied = errors.New("permission denied")

// PersistFailure reports that an encoded drawing could not be written to its
// destination. It is never retried.
type PersistFailure struct {
	Dest string
	Err  error
}

func (e *PersistFailure) Error() string {
	if e.Dest == "" {
		return fmt.Sprintf("save drawing: %v", e.Err)
	}
	return fmt.Sprintf("save drawing to %s: %v", e.Dest, e.Err)
}

func (e *PersistFailure) Unwrap() error { return e.Err }

// UserMessage is a short explanation suitable for a status line or toast.
func (e *PersistFailure) UserMessage() string {
	if errors.Is(e.Err, ErrPermissionDenied) {
		return "You just denied the permission."
	}
	return "Something went wrong while saving the file."
}
