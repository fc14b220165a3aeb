package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNotFound          = errors.New("not found")

	// ErrActiveSession is the transition error raised when a start request
	// arrives while a session is already running or paused.
	ErrActiveSession = fmt.Errorf("%w: a session is already running", ErrInvalidTransition)
)

// PersistenceError marks a storage failure. Callers on the control path
// surface it; the tick loop logs it and keeps counting.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
