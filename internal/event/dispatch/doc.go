// Package dispatch runs ordered sequences of event callbacks.
//
// The event Dispatcher builds three sequences per dispatch (global before
// hooks, event handlers, global after hooks) and hands each one to an
// Executor. The Executor invokes the callbacks one at a time in the caller's
// goroutine, collects their return values and stops at the first error.
//
// # Error Handling
//
// Errors are returned exactly as the callback produced them, together with
// the values collected before the failure. Panics are not recovered: a
// panicking callback unwinds through the Executor to the caller.
//
// # Usage
//
//	exec := dispatch.NewExecutor()
//	values, err := exec.Run(ctx, len(handlers), func(ctx context.Context, i int) (any, error) {
//	    return handlers[i].Handle(ctx, args...)
//	})
//	if err != nil {
//	    // values holds the results of handlers[:len(values)]
//	}
package dispatch
