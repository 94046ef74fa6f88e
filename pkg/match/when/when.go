package when

import (
	"context"

	"github.com/ib-77/match3/pkg/match"
	"github.com/ib-77/match3/pkg/match/async"
	"github.com/ib-77/match3/pkg/match/solo"
)

// Match returns the result of the first satisfied entry, else the default
// entry's, else a *match.NoMatchError.
func Match[T, R any](ctx context.Context, v T, t *Table[T, R]) (R, error) {
	if err := t.Err(); err != nil {
		var zero R
		return zero, err
	}

	r, found, err := solo.Scan(ctx, v, t.Arms())
	if found || err != nil {
		return r, err
	}
	return solo.Default(ctx, v, t.DefaultHandler())
}

// MatchAsync is Match waiting for suspending entries and async handlers.
func MatchAsync[T, R any](ctx context.Context, v T, t *Table[T, R]) *match.Future[R] {
	if err := t.Err(); err != nil {
		return match.Reject[R](err)
	}
	return async.Dispatch(ctx, v, t.Arms(), t.DefaultHandler())
}
