package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constCalls(values ...any) Call {
	return func(ctx context.Context, i int) (any, error) {
		return values[i], nil
	}
}

func TestExecutor_RunCollectsInOrder(t *testing.T) {
	e := NewExecutor()

	values, err := e.Run(context.Background(), 3, constCalls("a", "b", "c"))

	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, values)
}

func TestExecutor_RunEmpty(t *testing.T) {
	e := NewExecutor()

	values, err := e.Run(context.Background(), 0, nil)

	require.NoError(t, err)
	assert.NotNil(t, values)
	assert.Empty(t, values)
}

func TestExecutor_RunStopsAtFirstError(t *testing.T) {
	e := NewExecutor()
	boom := errors.New("boom")

	var called []int
	values, err := e.Run(context.Background(), 4, func(ctx context.Context, i int) (any, error) {
		called = append(called, i)
		if i == 1 {
			return "ignored", boom
		}
		return i, nil
	})

	assert.Same(t, boom, err)
	assert.Equal(t, []any{0}, values)
	assert.Equal(t, []int{0, 1}, called)
}

func TestExecutor_RunPassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	e := NewExecutor()

	values, err := e.Run(ctx, 1, func(ctx context.Context, i int) (any, error) {
		return ctx.Value(key{}), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []any{"v"}, values)
}

func TestExecutor_RunDoesNotRecoverPanics(t *testing.T) {
	e := NewExecutor()

	assert.PanicsWithValue(t, "handler exploded", func() {
		_, _ = e.Run(context.Background(), 1, func(ctx context.Context, i int) (any, error) {
			panic("handler exploded")
		})
	})
	assert.Equal(t, uint64(1), e.Stats().Invoked)
}

func TestExecutor_Stats(t *testing.T) {
	e := NewExecutor()
	ctx := context.Background()

	_, _ = e.Run(ctx, 2, constCalls(1, 2))
	_, _ = e.Run(ctx, 3, func(ctx context.Context, i int) (any, error) {
		if i == 0 {
			return nil, errors.New("fail")
		}
		return nil, nil
	})

	stats := e.Stats()
	assert.Equal(t, uint64(2), stats.Runs)
	assert.Equal(t, uint64(3), stats.Invoked)
	assert.Equal(t, uint64(1), stats.Failed)
	assert.GreaterOrEqual(t, stats.TotalDuration, stats.AvgDuration)

	e.ResetStats()
	assert.Equal(t, ExecutorStats{}, e.Stats())
}
