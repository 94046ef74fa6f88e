package match

import (
	"context"
	"iter"
)

// GeneratorFunc produces the value stream a generator pattern draws from.
type GeneratorFunc[T any] func(ctx context.Context, v T) iter.Seq[bool]

// Generator is the live handle handed to the handler of a satisfied
// generator pattern. The first value has already been drawn.
type Generator struct {
	next func() (bool, bool)
	stop func()
}

// Next pulls the following value. ok is false once the sequence is exhausted
// or stopped.
func (g *Generator) Next() (v bool, ok bool) {
	if g == nil || g.next == nil {
		return false, false
	}
	return g.next()
}

// Stop releases the underlying sequence. Safe to call more than once.
func (g *Generator) Stop() {
	if g != nil && g.stop != nil {
		g.stop()
	}
}

func startGenerator[T any](ctx context.Context, fn GeneratorFunc[T], v T) (*Generator, bool) {
	seq := fn(ctx, v)
	if seq == nil {
		return nil, false
	}

	next, stop := iter.Pull(seq)
	g := &Generator{next: next, stop: stop}

	first, ok := next()
	if !ok || !first {
		stop()
		return nil, false
	}
	return g, true
}

// Yield builds a generator that yields condition(v) once.
func Yield[T any](condition func(v T) bool) GeneratorFunc[T] {
	return func(_ context.Context, v T) iter.Seq[bool] {
		return func(yield func(bool) bool) {
			yield(condition(v))
		}
	}
}
