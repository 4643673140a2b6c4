package dispatch

import "context"

// Call invokes the i-th callback of a sequence.
type Call func(ctx context.Context, i int) (any, error)

// Runner is the interface for sequence executors.
type Runner interface {
	// Run invokes call for every index in [0, n) in order.
	// It returns the collected values and the first error, if any.
	Run(ctx context.Context, n int, call Call) ([]any, error)
}

var _ Runner = (*Executor)(nil)
