package match

import (
	"context"
	"fmt"
)

// Future is a value that is not known yet. It settles exactly once and can be
// awaited any number of times.
type Future[T any] struct {
	done chan struct{}
	res  Result[T]
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) settle(r Result[T]) {
	f.res = r
	close(f.done)
}

// Go runs fn on its own goroutine and settles with its return values. A panic
// in fn settles the future with ErrPanicked.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()

	go func() {
		res := Fail[T](ErrCancelled)
		defer func() {
			if p := recover(); p != nil {
				res = Fail[T](fmt.Errorf("%w: %v", ErrPanicked, p))
			}
			f.settle(res)
		}()

		if ctx.Err() != nil {
			res = Cancel[T](ctx.Err())
			return
		}

		v, err := fn(ctx)
		if err != nil {
			res = Fail[T](err)
			return
		}
		res = Success(v)
	}()

	return f
}

// Resolve returns a future that is already settled with v.
func Resolve[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.settle(Success(v))
	return f
}

// Reject returns a future that is already settled with err.
func Reject[T any](err error) *Future[T] {
	f := newFuture[T]()
	f.settle(Fail[T](err))
	return f
}

// FromChan settles with the first result read from ch. A channel closed
// without a value settles with ErrCancelled.
func FromChan[T any](ch <-chan Result[T]) *Future[T] {
	f := newFuture[T]()

	go func() {
		r, ok := <-ch
		if !ok {
			r = Cancel[T](ErrCancelled)
		}
		f.settle(r)
	}()

	return f
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx ends. In the second case the
// returned result is a cancellation carrying ctx.Err().
func (f *Future[T]) Await(ctx context.Context) Result[T] {
	select {
	case <-f.done:
		return f.res
	default:
	}

	select {
	case <-f.done:
		return f.res
	case <-ctx.Done():
		return Cancel[T](ctx.Err())
	}
}

// Get is Await unpacked into value and error.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	return f.Await(ctx).Get()
}
