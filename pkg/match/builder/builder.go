package builder

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/ib-77/match3/pkg/match"
	"github.com/ib-77/match3/pkg/match/async"
	"github.com/ib-77/match3/pkg/match/core"
	"github.com/ib-77/match3/pkg/match/solo"
)

// State of a session. The only transition is Open to Latched.
type State int

const (
	Open State = iota
	Latched
)

func (s State) String() string {
	if s == Latched {
		return "latched"
	}
	return "open"
}

// Session holds the subject and the arms registered so far.
type Session[T, R any] struct {
	mu       sync.Mutex
	id       uuid.UUID
	ctx      context.Context
	subject  T
	arms     []match.Arm[T, R]
	def      *match.Handler[T, R]
	state    State
	outcome  match.Outcome[R]
	suspends bool
}

// New opens a session over subject.
func New[T, R any](ctx context.Context, subject T) *Session[T, R] {
	return &Session[T, R]{
		id:      uuid.New(),
		ctx:     ctx,
		subject: subject,
	}
}

func (s *Session[T, R]) ID() uuid.UUID {
	return s.id
}

func (s *Session[T, R]) Subject() T {
	return s.subject
}

func (s *Session[T, R]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Outcome is the result that latched the session. It is unmatched while the
// session is open, and after a Run that found nothing.
func (s *Session[T, R]) Outcome() match.Outcome[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome.IsEmpty() {
		return match.Unmatched[R]()
	}
	return s.outcome
}

// Suspends reports whether a registered arm can only be decided by RunAsync.
func (s *Session[T, R]) Suspends() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspends
}

// With evaluates the arm against the subject. If it fires, the session
// latches; otherwise the arm is kept for Run. Arms that need to wait are
// kept without being evaluated.
func (s *Session[T, R]) With(p match.Pattern[T], h match.Handler[T, R]) *Session[T, R] {
	arm := match.On(p, h)
	if p.Suspends() || h.IsAsync() {
		s.keep(arm, true)
		return s
	}

	index, ok := s.position()
	if !ok {
		return s
	}

	verdict, err := solo.Decide(s.ctx, index, s.subject, arm)
	switch {
	case err != nil:
		if s.claim() {
			s.settle(match.Errored[R](err))
		}
	case verdict.Satisfied:
		if !s.claim() {
			verdict.Extra.Generator.Stop()
			return s
		}
		r, err := solo.Fire(s.ctx, index, s.subject, arm, verdict)
		s.settle(match.Matched(r, err))
	default:
		s.keep(arm, false)
	}
	return s
}

// WithAsync is With for arms that need to wait. Arms that do not are
// decided before it returns. A waiting arm keeps its place among the
// registered arms; the future settles with the session once the arm is
// decided. Only the end of the session context can reject it.
func (s *Session[T, R]) WithAsync(p match.Pattern[T], h match.Handler[T, R]) *match.Future[*Session[T, R]] {
	if !p.Suspends() && !h.IsAsync() {
		return match.Resolve(s.With(p, h))
	}

	arm := match.On(p, h)
	index, ok := s.keep(arm, true)
	if !ok {
		return match.Resolve(s)
	}

	return match.Go(s.ctx, func(ctx context.Context) (*Session[T, R], error) {
		verdict, err := async.Decide(ctx, index, s.subject, arm)
		if err != nil {
			return s, err
		}
		if !verdict.Satisfied {
			return s, nil
		}
		if !s.claim() {
			verdict.Extra.Generator.Stop()
			return s, nil
		}

		core.GetHooks(ctx).Matched(ctx, index)
		r, err := match.FireAwait(ctx, h, s.subject, verdict)
		s.settle(match.Matched(r, err))
		return s, nil
	})
}

// Otherwise sets the default handler.
func (s *Session[T, R]) Otherwise(h match.Handler[T, R]) *Session[T, R] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Latched {
		return s
	}
	s.def = &h
	return s
}

// Run scans the kept arms in order and returns the first handler result,
// else the default's, else a *match.NoMatchError. On a latched session it
// returns the zero value and invokes nothing.
func (s *Session[T, R]) Run() (R, error) {
	arms, def, ok := s.begin()
	if !ok {
		var zero R
		return zero, nil
	}

	r, err := solo.Dispatch(s.ctx, s.subject, arms, def)
	s.finish(r, err)
	return r, err
}

// RunAsync is Run waiting for suspending arms and async handlers.
func (s *Session[T, R]) RunAsync() *match.Future[R] {
	arms, def, ok := s.begin()
	if !ok {
		var zero R
		return match.Resolve(zero)
	}

	// s.ctx may have ended already; the latched run still needs an outcome
	return match.Go(context.WithoutCancel(s.ctx), func(context.Context) (R, error) {
		if err := s.ctx.Err(); err != nil {
			var zero R
			s.finish(zero, err)
			return zero, err
		}

		r, err := async.Run(s.ctx, s.subject, arms, def)
		s.finish(r, err)
		return r, err
	})
}

// keep appends arm unless the session has latched and returns its index.
func (s *Session[T, R]) keep(arm match.Arm[T, R], suspends bool) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Latched {
		return 0, false
	}
	s.arms = append(s.arms, arm)
	s.suspends = s.suspends || suspends
	return len(s.arms) - 1, true
}

// position is the index the next kept arm would get.
func (s *Session[T, R]) position() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.arms), s.state == Open
}

// claim latches the session for the caller about to fire a handler. Only one
// caller ever gets true.
func (s *Session[T, R]) claim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Latched {
		return false
	}
	s.state = Latched
	return true
}

func (s *Session[T, R]) settle(o match.Outcome[R]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcome = o
}

// begin latches the session for a run and hands out what to scan.
func (s *Session[T, R]) begin() ([]match.Arm[T, R], *match.Handler[T, R], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Latched {
		return nil, nil, false
	}
	s.state = Latched
	return append([]match.Arm[T, R](nil), s.arms...), s.def, true
}

func (s *Session[T, R]) finish(r R, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case errors.Is(err, match.ErrNoMatch):
		s.outcome = match.Unmatched[R]()
	case err != nil:
		s.outcome = match.Errored[R](err)
	default:
		s.outcome = match.Matched(r, nil)
	}
}
