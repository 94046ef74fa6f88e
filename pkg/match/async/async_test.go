package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/match3/pkg/match"
	"github.com/ib-77/match3/pkg/match/core"
)

type trace struct {
	mu    sync.Mutex
	steps []string
}

func (tr *trace) add(s string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.steps = append(tr.steps, s)
}

func (tr *trace) get() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.steps...)
}

func TestDispatch_ArmsSettleInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := &trace{}

	slowFalse := match.AsyncFunc(func(ctx context.Context, v string) (bool, error) {
		tr.add("A start")
		time.Sleep(20 * time.Millisecond)
		tr.add("A done")
		return false, nil
	})
	literal := match.Pred(func(v string) bool {
		tr.add("B")
		return v == "cat"
	})

	r, err := Dispatch(ctx, "cat", []match.Arm[string, string]{
		match.On(slowFalse, match.Value[string]("A")),
		match.On(literal, match.Value[string]("B")),
	}, nil).Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, "B", r)
	assert.Equal(t, []string{"A start", "A done", "B"}, tr.get())
}

func TestDispatch_PendingValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dog := match.Go(ctx, func(context.Context) (string, error) {
		time.Sleep(5 * time.Millisecond)
		return "dog", nil
	})

	r, err := Dispatch(ctx, "dog", []match.Arm[string, string]{
		match.On(match.Pending(match.Resolve("cat")), match.Value[string]("cat")),
		match.On(match.Pending(dog), match.Fn(func(v string) string { return "pending " + v })),
	}, nil).Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, "pending dog", r)
}

func TestDispatch_SuspensionFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	var failed []int
	var mu sync.Mutex
	ctx := core.WithHooks(context.Background(), core.Hooks{
		OnSuspensionFailure: func(_ context.Context, i int, err error) {
			mu.Lock()
			defer mu.Unlock()
			failed = append(failed, i)
		},
	})

	r, err := Dispatch(ctx, 1, []match.Arm[int, string]{
		match.On(match.AsyncFunc(func(context.Context, int) (bool, error) { return true, errors.New("rejected") }), match.Value[int]("rejected")),
		match.On(match.Pending(match.Reject[int](errors.New("rejected"))), match.Value[int]("pending")),
		match.On(match.AsyncFunc(func(context.Context, int) (bool, error) { panic("boom") }), match.Value[int]("panicked")),
		match.On(match.Lit(1), match.Value[int]("literal")),
	}, nil).Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "literal", r)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2}, failed)
}

func TestDispatch_AsyncHandlerAndDefault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inc := match.Async(func(ctx context.Context, n int, _ match.Extra) *match.Future[int] {
		return match.Go(ctx, func(context.Context) (int, error) { return n + 1, nil })
	})

	r, err := Dispatch(ctx, 1, []match.Arm[int, int]{match.On(match.Lit(1), inc)}, nil).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, r)

	r, err = Dispatch(ctx, 5, []match.Arm[int, int]{match.On(match.Lit(1), inc)}, &inc).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, r)
}

func TestDispatch_NoMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := Dispatch(ctx, 3, []match.Arm[int, int]{
		match.On(match.AsyncFunc(func(context.Context, int) (bool, error) { return false, nil }), match.Value[int](0)),
	}, nil).Get(ctx)

	assert.ErrorIs(t, err, match.ErrNoMatch)
	assert.EqualError(t, err, "no matching pattern found for value: 3")
}

func TestDispatch_HandlerErrorPropagates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := Dispatch(ctx, 1, []match.Arm[int, int]{
		match.On(match.Lit(1), match.Try(func(context.Context, int, match.Extra) (int, error) { return 0, boom })),
		match.On(match.Lit(1), match.Value[int](1)),
	}, nil).Get(ctx)

	assert.ErrorIs(t, err, boom)
}

func TestDispatch_ContextCancelAborts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	blocked := match.AsyncFunc(func(ctx context.Context, v int) (bool, error) {
		<-ctx.Done()
		return false, ctx.Err()
	})

	called := false
	_, err := Dispatch(ctx, 1, []match.Arm[int, int]{
		match.On(blocked, match.Value[int](0)),
		match.On(match.Lit(1), match.Fn(func(int) int { called = true; return 1 })),
	}, nil).Get(context.Background())

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestScan_FoundFlagIsExplicit(t *testing.T) {
	t.Parallel()

	r, found, err := Scan(context.Background(), 0, []match.Arm[int, *int]{
		match.On(match.Lit(0), match.Value[int, *int](nil)),
	})

	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, r)
}

func TestHelpers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ok, err := Of(true).Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	positive := match.AsyncPredicate(Predicate(func(_ context.Context, n int) (bool, error) { return n > 0, nil }))
	v, err := Classify(ctx, positive, 3)
	require.NoError(t, err)
	assert.True(t, v.Satisfied)

	v, err = Classify(ctx, match.Lit(3), 3)
	require.NoError(t, err)
	assert.True(t, v.Satisfied)
}
