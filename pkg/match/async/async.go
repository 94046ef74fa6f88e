package async

import (
	"context"

	"github.com/ib-77/match3/pkg/match"
	"github.com/ib-77/match3/pkg/match/core"
)

type step struct {
	index   int
	verdict match.Verdict
	err     error
}

// Classify decides p against v, waiting for async predicates and pending
// values. Other kinds are decided by match.ClassifyWith.
func Classify[T any](ctx context.Context, p match.Pattern[T], v T) (match.Verdict, error) {
	switch p.Kind() {
	case match.KindAsyncPredicate:
		pred := p.AsyncPredicate()
		if pred == nil {
			return match.Verdict{}, nil
		}
		f := pred(ctx, v)
		if f == nil {
			return match.Verdict{}, nil
		}
		ok, err := f.Get(ctx)
		if err != nil {
			return match.Verdict{}, err
		}
		return match.Verdict{Satisfied: ok}, nil

	case match.KindPending:
		f := p.Pending()
		if f == nil {
			return match.Verdict{}, nil
		}
		resolved, err := f.Get(ctx)
		if err != nil {
			return match.Verdict{}, err
		}
		return match.Verdict{Satisfied: match.Equal(any(resolved), any(v))}, nil
	}

	return match.ClassifyWith(ctx, p, v, core.GetClassifyOptions(ctx))
}

// TryArm decides one arm, waiting if needed, and fires its handler if
// satisfied.
func TryArm[T, R any](ctx context.Context, v T, arm match.Arm[T, R]) (R, bool, error) {
	return Scan(ctx, v, []match.Arm[T, R]{arm})
}

// Scan fires the first satisfied arm. Each arm is fully settled before the
// next one is considered.
func Scan[T, R any](ctx context.Context, v T, arms []match.Arm[T, R]) (R, bool, error) {
	var zero R
	hooks := core.GetHooks(ctx)

	feedCtx, stopFeed := context.WithCancel(ctx)
	defer stopFeed()

	indexes := make([]int, len(arms))
	for i := range indexes {
		indexes[i] = i
	}

	st, found, err := core.Locomotive(ctx, core.ToChanMany(feedCtx, indexes),
		func(ctx context.Context, i int) <-chan step {
			verdict, err := decide(ctx, hooks, i, v, arms[i].Pattern)
			return core.Ready(step{index: i, verdict: verdict, err: err})
		},
		func(s step) bool {
			return s.err != nil || s.verdict.Satisfied
		})

	if err != nil {
		return zero, false, err
	}
	if !found {
		return zero, false, nil
	}
	if st.err != nil {
		return zero, false, st.err
	}

	hooks.Matched(ctx, st.index)
	r, err := match.FireAwait(ctx, arms[st.index].Handler, v, st.verdict)
	return r, true, err
}

// Run is Scan followed by the default handler, which is awaited if async.
func Run[T, R any](ctx context.Context, v T, arms []match.Arm[T, R], def *match.Handler[T, R]) (R, error) {
	r, found, err := Scan(ctx, v, arms)
	if found || err != nil {
		return r, err
	}

	hooks := core.GetHooks(ctx)
	if def != nil {
		hooks.Matched(ctx, -1)
		return def.Await(ctx, v, match.Extra{})
	}

	hooks.NoMatch(ctx, v)
	var zero R
	return zero, match.NoMatch(v)
}

// Dispatch starts Run and returns its pending result.
func Dispatch[T, R any](ctx context.Context, v T, arms []match.Arm[T, R], def *match.Handler[T, R]) *match.Future[R] {
	return match.Go(ctx, func(ctx context.Context) (R, error) {
		return Run(ctx, v, arms, def)
	})
}

// Decide classifies v against one arm, waiting if needed, without firing
// it. Failed waits count as unsatisfied.
func Decide[T, R any](ctx context.Context, index int, v T, arm match.Arm[T, R]) (match.Verdict, error) {
	return decide(ctx, core.GetHooks(ctx), index, v, arm.Pattern)
}

// decide classifies one pattern. A failed wait is swallowed unless ctx
// itself has ended.
func decide[T any](ctx context.Context, hooks core.Hooks, index int, v T, p match.Pattern[T]) (match.Verdict, error) {
	verdict, err := Classify(ctx, p, v)
	if err != nil {
		if ctx.Err() != nil {
			return match.Verdict{}, ctx.Err()
		}
		hooks.SuspensionFailed(ctx, index, err)
		verdict = match.Verdict{}
	}

	hooks.Tried(ctx, index, p.Kind(), verdict.Satisfied)
	return verdict, nil
}

// Of returns condition as an already-settled future.
func Of[T any](condition T) *match.Future[T] {
	return match.Resolve(condition)
}

// Predicate lifts a plain predicate into an async one that runs on its own
// goroutine.
func Predicate[T any](cond func(ctx context.Context, v T) (bool, error)) func(ctx context.Context, v T) *match.Future[bool] {
	return func(ctx context.Context, v T) *match.Future[bool] {
		return match.Go(ctx, func(ctx context.Context) (bool, error) {
			return cond(ctx, v)
		})
	}
}
