package match

import (
	"time"

	"github.com/google/uuid"
)

// Outcome pairs a produced value with the matched flag. It is what the chain
// style reports and what a latched builder session keeps.
type Outcome[R any] struct {
	id        uuid.UUID
	createdAt time.Time
	value     R
	err       error
	matched   bool
}

// Matched builds the outcome of a fired handler.
func Matched[R any](v R, err error) Outcome[R] {
	return Outcome[R]{
		value:     v,
		err:       err,
		matched:   true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Unmatched is the outcome of a scan that produced nothing.
func Unmatched[R any]() Outcome[R] {
	return Outcome[R]{
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func (o Outcome[R]) Value() R {
	return o.value
}

// Err is the error returned by the handler that produced the outcome, if any.
func (o Outcome[R]) Err() error {
	return o.err
}

func (o Outcome[R]) Matched() bool {
	return o.matched
}

func (o Outcome[R]) CreatedAt() time.Time {
	return o.createdAt
}

func (o Outcome[R]) Id() uuid.UUID {
	return o.id
}

// IsEmpty reports an outcome that was never produced (the zero value).
func (o Outcome[R]) IsEmpty() bool {
	return o.id == uuid.Nil
}

// Errored is the outcome of a scan that stopped on an error before any
// handler fired.
func Errored[R any](err error) Outcome[R] {
	return Outcome[R]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}
