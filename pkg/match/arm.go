package match

// Arm is one registered (pattern, handler) pair.
type Arm[T, R any] struct {
	Pattern Pattern[T]
	Handler Handler[T, R]
}

func On[T, R any](p Pattern[T], h Handler[T, R]) Arm[T, R] {
	return Arm[T, R]{Pattern: p, Handler: h}
}

// Otherwise is a wildcard arm.
func Otherwise[T, R any](h Handler[T, R]) Arm[T, R] {
	return Arm[T, R]{Pattern: Any[T](), Handler: h}
}
