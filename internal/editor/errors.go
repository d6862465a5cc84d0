package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth is returned for a wrong secret and for any edit attempted
	// before the session has logged in.
	ErrAuth            = errors.New("admin authentication required")
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrIndexOutOfRange = errors.New("image index out of range")
	ErrSessionNotFound = errors.New("editor session not found")
)

func indexError(i, n int) error {
	return fmt.Errorf("%w: %d (have %d images)", ErrIndexOutOfRange, i, n)
}

func stateError(op string, s State) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, op, s)
}
