package builder

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/match3/pkg/match"
)

func TestWith_InlineMatchLatches(t *testing.T) {
	t.Parallel()

	later := 0
	s := New[int, string](context.Background(), 5).
		With(match.Lit(1), match.Value[int]("one")).
		With(match.Lit(5), match.Fn(func(n int) string { return "five" })).
		With(match.Pred(func(int) bool { later++; return true }), match.Value[int]("later")).
		Otherwise(match.Value[int]("default"))

	assert.Equal(t, Latched, s.State())
	assert.Equal(t, 0, later, "arms after the latch are not evaluated")

	out := s.Outcome()
	assert.True(t, out.Matched())
	assert.Equal(t, "five", out.Value())

	r, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, "", r, "run on a latched session returns the zero value")
}

func TestRun_DefaultAndIdempotence(t *testing.T) {
	t.Parallel()

	defaults := 0
	s := New[int, string](context.Background(), 42).
		With(match.Lit(1), match.Value[int]("one")).
		Otherwise(match.Fn(func(int) string { defaults++; return "other" }))

	assert.Equal(t, Open, s.State())
	assert.False(t, s.Outcome().Matched())

	r, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, "other", r)
	assert.Equal(t, Latched, s.State())
	assert.Equal(t, "other", s.Outcome().Value())

	r, err = s.Run()
	require.NoError(t, err)
	assert.Equal(t, "", r)
	assert.Equal(t, 1, defaults)
}

func TestRun_NoMatch(t *testing.T) {
	t.Parallel()

	s := New[string, int](context.Background(), "x").With(match.Lit("y"), match.Value[string](1))

	_, err := s.Run()
	assert.ErrorIs(t, err, match.ErrNoMatch)
	assert.EqualError(t, err, "no matching pattern found for value: x")
	assert.Equal(t, Latched, s.State())
	assert.False(t, s.Outcome().Matched())
}

func TestWith_RegexpExtras(t *testing.T) {
	t.Parallel()

	s := New[string, string](context.Background(), "v1.2").
		With(match.MustRegexp[string](`^v(\d+)\.(\d+)$`), match.FnX(func(_ string, x match.Extra) string {
			return x.Groups[1] + "/" + x.Groups[2]
		}))

	assert.Equal(t, "1/2", s.Outcome().Value())
}

func TestWith_SuspendingArmIsKeptForRunAsync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := New[string, string](ctx, "cat").
		With(match.Pending(match.Resolve("cat")), match.Value[string]("pending"))

	assert.True(t, s.Suspends())
	assert.Equal(t, Open, s.State())

	r, err := s.RunAsync().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pending", r)
	assert.Equal(t, Latched, s.State())
}

func TestRun_SuspendingArmNeedsRunAsync(t *testing.T) {
	t.Parallel()

	s := New[int, int](context.Background(), 1).
		With(match.AsyncFunc(func(context.Context, int) (bool, error) { return true, nil }), match.Value[int](1))

	_, err := s.Run()
	assert.ErrorIs(t, err, match.ErrTypeMismatch)
}

func TestWithAsync_LatchesOnAwaitedMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	slowTrue := match.AsyncFunc(func(context.Context, int) (bool, error) {
		time.Sleep(5 * time.Millisecond)
		return true, nil
	})

	s, err := New[int, string](ctx, 3).WithAsync(slowTrue, match.Value[int]("async")).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Latched, s.State())
	assert.Equal(t, "async", s.Outcome().Value())

	// latched sessions ignore further registration
	s, err = s.WithAsync(match.Lit(3), match.Value[int]("literal")).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "async", s.Outcome().Value())
}

func TestWithAsync_UnmatchedFallsThroughToRunAsync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := New[int, string](ctx, 3).
		WithAsync(match.AsyncFunc(func(context.Context, int) (bool, error) { return false, nil }), match.Value[int]("no")).
		Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Open, s.State())

	s, err = s.WithAsync(match.Lit(4), match.Value[int]("four")).Get(ctx)
	require.NoError(t, err)

	r, err := s.Otherwise(match.Value[int]("default")).RunAsync().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", r)

	r, err = s.RunAsync().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", r)
}

func TestWithAsync_RejectedPatternIsNotAMatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := New[int, string](ctx, 3).
		WithAsync(match.Pending(match.Reject[int](assert.AnError)), match.Value[int]("no")).
		Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, Open, s.State())
}

func TestOtherwise_IgnoredOnceLatched(t *testing.T) {
	t.Parallel()

	s := New[int, string](context.Background(), 1).
		With(match.Lit(1), match.Value[int]("one"))
	s.Otherwise(match.Value[int]("default"))

	assert.Nil(t, s.def)
	assert.NotEqual(t, s.ID(), New[int, string](context.Background(), 1).ID())
	assert.Equal(t, 1, s.Subject())
	assert.Equal(t, "latched", s.State().String())
}

func TestWithAsync_PlainArmDecidesBeforeNextWith(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		var fired atomic.Int32
		slow := func(name string) match.Handler[int, string] {
			return match.Fn(func(int) string {
				fired.Add(1)
				time.Sleep(time.Millisecond)
				return name
			})
		}

		s := New[int, string](ctx, 5)
		f := s.WithAsync(match.Lit(5), slow("first"))
		s.With(match.Lit(5), slow("second"))

		got, err := f.Get(ctx)
		require.NoError(t, err)
		assert.Same(t, s, got)
		assert.Equal(t, int32(1), fired.Load())
		assert.Equal(t, "first", s.Outcome().Value())
	}
}

func TestWith_ConcurrentArmsFireOnce(t *testing.T) {
	t.Parallel()

	var fired atomic.Int32
	s := New[int, int](context.Background(), 1)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.With(match.Any[int](), match.Fn(func(int) int {
				fired.Add(1)
				time.Sleep(time.Millisecond)
				return i
			}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, Latched, s.State())
	assert.True(t, s.Outcome().Matched())
}

func TestWithAsync_WaitingArmKeepsItsPlace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	slowFalse := match.AsyncFunc(func(context.Context, int) (bool, error) {
		time.Sleep(5 * time.Millisecond)
		return false, nil
	})

	s := New[int, string](ctx, 3)
	f := s.WithAsync(slowFalse, match.Value[int]("waiting"))
	s.With(match.Lit(9), match.Value[int]("nine"))

	_, err := f.Get(ctx)
	require.NoError(t, err)

	require.Len(t, s.arms, 2)
	assert.Equal(t, match.KindAsyncPredicate, s.arms[0].Pattern.Kind())
	assert.Equal(t, match.KindLiteral, s.arms[1].Pattern.Kind())
}

func TestRunAsync_EndedContextRecordsError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New[int, string](ctx, 1).With(match.Lit(2), match.Value[int]("two"))

	_, err := s.RunAsync().Get(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Latched, s.State())
	assert.ErrorIs(t, s.Outcome().Err(), context.Canceled)
	assert.False(t, s.Outcome().Matched())
}
