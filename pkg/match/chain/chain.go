package chain

import (
	"context"

	"github.com/ib-77/match3/pkg/match"
	"github.com/ib-77/match3/pkg/match/async"
	"github.com/ib-77/match3/pkg/match/solo"
)

// Chain tests one subject against successive cases.
type Chain[T, R any] struct {
	ctx     context.Context
	subject T
	outcome match.Outcome[R]
}

// Start creates a new chain over subject
func Start[T, R any](ctx context.Context, subject T) *Chain[T, R] {
	return &Chain[T, R]{
		ctx:     ctx,
		subject: subject,
	}
}

// Settled reports whether a case fired or failed.
func (c *Chain[T, R]) Settled() bool {
	return c.outcome.Matched() || c.outcome.Err() != nil
}

// Outcome returns what settled the chain, or an unmatched outcome.
func (c *Chain[T, R]) Outcome() match.Outcome[R] {
	if c.outcome.IsEmpty() {
		return match.Unmatched[R]()
	}
	return c.outcome
}

// Case tests the subject against p
func (c *Chain[T, R]) Case(p match.Pattern[T], h match.Handler[T, R]) *Chain[T, R] {
	if c.Settled() {
		return c
	}

	r, found, err := solo.TryArm(c.ctx, c.subject, match.On(p, h))
	return c.settle(r, found, err)
}

// CaseAsync is Case for patterns and handlers that need to wait
func (c *Chain[T, R]) CaseAsync(p match.Pattern[T], h match.Handler[T, R]) *match.Future[*Chain[T, R]] {
	return match.Go(c.ctx, func(ctx context.Context) (*Chain[T, R], error) {
		if c.Settled() {
			return c, nil
		}

		r, found, err := async.TryArm(ctx, c.subject, match.On(p, h))
		if !found && err != nil {
			return c, err
		}
		return c.settle(r, found, err), nil
	})
}

// Default runs h unless the chain is already settled
func (c *Chain[T, R]) Default(h match.Handler[T, R]) match.Outcome[R] {
	if c.Settled() {
		return c.outcome
	}

	r, err := h.Call(c.ctx, c.subject, match.Extra{})
	return match.Matched(r, err)
}

// DefaultAsync is Default awaiting an async handler
func (c *Chain[T, R]) DefaultAsync(h match.Handler[T, R]) *match.Future[match.Outcome[R]] {
	return match.Go(c.ctx, func(ctx context.Context) (match.Outcome[R], error) {
		if c.Settled() {
			return c.outcome, nil
		}

		r, err := h.Await(ctx, c.subject, match.Extra{})
		return match.Matched(r, err), nil
	})
}

func (c *Chain[T, R]) settle(r R, found bool, err error) *Chain[T, R] {
	switch {
	case found:
		return &Chain[T, R]{ctx: c.ctx, subject: c.subject, outcome: match.Matched(r, err)}
	case err != nil:
		return &Chain[T, R]{ctx: c.ctx, subject: c.subject, outcome: match.Errored[R](err)}
	}
	return c
}
