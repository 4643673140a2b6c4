package dispatch

import (
	"context"
	"sync/atomic"
	"time"
)

// Executor runs callback sequences synchronously in the caller's goroutine
// and keeps running totals of what it executed.
type Executor struct {
	// Stats
	runs        atomic.Uint64
	invoked     atomic.Uint64
	failed      atomic.Uint64
	totalTimeNs atomic.Int64
}

// NewExecutor creates a new executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Run invokes call for i = 0..n-1 and appends every returned value.
// On the first error it stops and returns the values collected so far
// together with that error, unwrapped. The returned slice is never nil.
func (e *Executor) Run(ctx context.Context, n int, call Call) ([]any, error) {
	e.runs.Add(1)

	values := make([]any, 0, n)
	for i := 0; i < n; i++ {
		start := time.Now()
		v, err := e.invoke(ctx, i, call)
		e.totalTimeNs.Add(time.Since(start).Nanoseconds())

		if err != nil {
			e.failed.Add(1)
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}

// invoke counts the call before running it so a panicking callback is
// still accounted for.
func (e *Executor) invoke(ctx context.Context, i int, call Call) (any, error) {
	e.invoked.Add(1)
	return call(ctx, i)
}

// Stats returns execution statistics.
// Note: Stats are read without a mutex, so values may be slightly inconsistent
// if stats are being updated concurrently.
func (e *Executor) Stats() ExecutorStats {
	invoked := e.invoked.Load()
	totalNs := e.totalTimeNs.Load()

	var avgNs int64
	if invoked > 0 {
		avgNs = totalNs / int64(invoked)
	}

	return ExecutorStats{
		Runs:          e.runs.Load(),
		Invoked:       invoked,
		Failed:        e.failed.Load(),
		TotalDuration: time.Duration(totalNs),
		AvgDuration:   time.Duration(avgNs),
	}
}

// ResetStats resets all statistics to zero.
func (e *Executor) ResetStats() {
	e.runs.Store(0)
	e.invoked.Store(0)
	e.failed.Store(0)
	e.totalTimeNs.Store(0)
}

// ExecutorStats contains statistics for an executor.
type ExecutorStats struct {
	// Runs is the number of sequences executed.
	Runs uint64

	// Invoked is the number of callbacks started.
	Invoked uint64

	// Failed is the number of callbacks that returned an error.
	Failed uint64

	// TotalDuration is the cumulative time spent in callbacks that returned.
	TotalDuration time.Duration

	// AvgDuration is the average callback execution time.
	AvgDuration time.Duration
}
