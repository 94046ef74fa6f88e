package match

import (
	"context"
	"fmt"
)

// Extra holds the pattern-specific arguments passed to a handler: the
// submatches of a regexp pattern or the live handle of a generator pattern.
type Extra struct {
	Groups    []string
	Generator *Generator
}

type handlerKind int

const (
	handlerValue handlerKind = iota
	handlerFunc
	handlerAsync
)

// Handler produces the result of a satisfied arm: either a fixed value or a
// callable. The zero Handler returns the zero value of R.
type Handler[T, R any] struct {
	kind  handlerKind
	value R
	fn    func(ctx context.Context, v T, x Extra) (R, error)
	async func(ctx context.Context, v T, x Extra) *Future[R]
}

func Value[T, R any](r R) Handler[T, R] {
	return Handler[T, R]{kind: handlerValue, value: r}
}

func Fn[T, R any](fn func(v T) R) Handler[T, R] {
	return Try(func(_ context.Context, v T, _ Extra) (R, error) {
		return fn(v), nil
	})
}

// FnX receives the pattern-specific arguments alongside the subject.
func FnX[T, R any](fn func(v T, x Extra) R) Handler[T, R] {
	return Try(func(_ context.Context, v T, x Extra) (R, error) {
		return fn(v, x), nil
	})
}

// Try is a handler that can fail. Its error is returned to the caller of the
// dispatch unchanged.
func Try[T, R any](fn func(ctx context.Context, v T, x Extra) (R, error)) Handler[T, R] {
	return Handler[T, R]{kind: handlerFunc, fn: fn}
}

// Async is a handler whose result is awaited. It can only fire through the
// asynchronous surfaces.
func Async[T, R any](fn func(ctx context.Context, v T, x Extra) *Future[R]) Handler[T, R] {
	return Handler[T, R]{kind: handlerAsync, async: fn}
}

func (h Handler[T, R]) IsCallable() bool {
	return h.kind != handlerValue
}

func (h Handler[T, R]) IsAsync() bool {
	return h.kind == handlerAsync
}

// Call invokes the handler synchronously.
func (h Handler[T, R]) Call(ctx context.Context, v T, x Extra) (R, error) {
	switch h.kind {
	case handlerFunc:
		return h.fn(ctx, v, x)
	case handlerAsync:
		var zero R
		return zero, fmt.Errorf("%w: asynchronous handler", ErrTypeMismatch)
	}
	return h.value, nil
}

// Await invokes the handler and waits for an asynchronous result.
func (h Handler[T, R]) Await(ctx context.Context, v T, x Extra) (R, error) {
	if h.kind == handlerAsync {
		f := h.async(ctx, v, x)
		if f == nil {
			var zero R
			return zero, nil
		}
		return f.Get(ctx)
	}
	return h.Call(ctx, v, x)
}

// Fire runs the handler of a satisfied verdict. The generator handle, if
// any, is stopped once the handler returns.
func Fire[T, R any](ctx context.Context, h Handler[T, R], v T, verdict Verdict) (R, error) {
	defer verdict.Extra.Generator.Stop()
	return h.Call(ctx, v, verdict.Extra)
}

// FireAwait is Fire for the asynchronous surfaces.
func FireAwait[T, R any](ctx context.Context, h Handler[T, R], v T, verdict Verdict) (R, error) {
	defer verdict.Extra.Generator.Stop()
	return h.Await(ctx, v, verdict.Extra)
}
