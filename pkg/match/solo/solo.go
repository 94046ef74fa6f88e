package solo

import (
	"context"

	"github.com/ib-77/match3/pkg/match"
	"github.com/ib-77/match3/pkg/match/core"
)

// TryArm decides one arm against v and fires its handler if satisfied.
func TryArm[T, R any](ctx context.Context, v T, arm match.Arm[T, R]) (R, bool, error) {
	return try(ctx, 0, v, arm)
}

// Scan fires the first satisfied arm. found reports whether one was.
func Scan[T, R any](ctx context.Context, v T, arms []match.Arm[T, R]) (r R, found bool, err error) {
	for i, arm := range arms {
		r, found, err = try(ctx, i, v, arm)
		if found || err != nil {
			return r, found, err
		}
	}
	return r, false, nil
}

// Dispatch is Scan followed by the default handler. Without a default, an
// exhausted scan fails with a *match.NoMatchError.
func Dispatch[T, R any](ctx context.Context, v T, arms []match.Arm[T, R], def *match.Handler[T, R]) (R, error) {
	r, found, err := Scan(ctx, v, arms)
	if found || err != nil {
		return r, err
	}
	return Default(ctx, v, def)
}

func Default[T, R any](ctx context.Context, v T, def *match.Handler[T, R]) (R, error) {
	hooks := core.GetHooks(ctx)
	if def != nil {
		hooks.Matched(ctx, -1)
		return def.Call(ctx, v, match.Extra{})
	}

	hooks.NoMatch(ctx, v)
	var zero R
	return zero, match.NoMatch(v)
}

// Decide classifies v against one arm without firing it. index is what the
// hooks report for the arm.
func Decide[T, R any](ctx context.Context, index int, v T, arm match.Arm[T, R]) (match.Verdict, error) {
	verdict, err := match.ClassifyWith(ctx, arm.Pattern, v, core.GetClassifyOptions(ctx))
	if err != nil {
		return match.Verdict{}, err
	}

	core.GetHooks(ctx).Tried(ctx, index, arm.Pattern.Kind(), verdict.Satisfied)
	return verdict, nil
}

// Fire runs the handler of an arm that Decide found satisfied.
func Fire[T, R any](ctx context.Context, index int, v T, arm match.Arm[T, R], verdict match.Verdict) (R, error) {
	core.GetHooks(ctx).Matched(ctx, index)
	return match.Fire(ctx, arm.Handler, v, verdict)
}

func try[T, R any](ctx context.Context, index int, v T, arm match.Arm[T, R]) (R, bool, error) {
	var zero R

	verdict, err := Decide(ctx, index, v, arm)
	if err != nil || !verdict.Satisfied {
		return zero, false, err
	}

	r, err := Fire(ctx, index, v, arm, verdict)
	return r, true, err
}
