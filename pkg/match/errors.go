package match

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNoMatch is raised when no arm is satisfied and no default exists.
	ErrNoMatch = errors.New("no matching pattern found")
	// ErrTypeMismatch is raised when a suspending pattern or handler is
	// reached through a synchronous surface.
	ErrTypeMismatch = errors.New("pattern requires asynchronous dispatch")
	// ErrPanicked marks a pending computation that panicked.
	ErrPanicked = errors.New("pending computation panicked")
	// ErrCancelled is used when a wait is abandoned without a context error.
	ErrCancelled = errors.New("operation cancelled")
)

// NoMatchError carries the subject that nothing matched.
type NoMatchError struct {
	Subject any
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no matching pattern found for value: %v", e.Subject)
}

func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}

func NoMatch(subject any) error {
	return &NoMatchError{Subject: subject}
}

func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	switch reflect.ValueOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return reflect.ValueOf(i).IsNil()
	}
	return false
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.Is(err, ErrCancelled)
}
