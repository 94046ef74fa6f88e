package match

import "time"

type ValueProvider[T any] interface {
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
	// Err returns the error carried alongside the value
	Err() error
}

// Settled is implemented by Result.
type Settled[T any] interface {
	ValueProvider[T]
	// Result returns the settled value
	Result() T
	// IsSuccess returns true if the computation produced a value
	IsSuccess() bool
	// IsCancel returns true if the wait was cancelled
	IsCancel() bool
}

// Reported is implemented by Outcome.
type Reported[R any] interface {
	ValueProvider[R]
	// Value returns the handler result
	Value() R
	// Matched returns true if a handler fired
	Matched() bool
}

var (
	_ Settled[int]  = Result[int]{}
	_ Reported[int] = Outcome[int]{}
)
