package arms

import (
	"context"

	"github.com/ib-77/match3/pkg/match"
	"github.com/ib-77/match3/pkg/match/async"
	"github.com/ib-77/match3/pkg/match/solo"
)

// Match returns the result of the first satisfied arm, or a
// *match.NoMatchError once the list is exhausted.
func Match[T, R any](ctx context.Context, v T, arms ...match.Arm[T, R]) (R, error) {
	return solo.Dispatch(ctx, v, arms, nil)
}

// MatchAsync is Match waiting for suspending arms and async handlers.
func MatchAsync[T, R any](ctx context.Context, v T, arms ...match.Arm[T, R]) *match.Future[R] {
	return async.Dispatch(ctx, v, arms, nil)
}
