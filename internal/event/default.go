package event

import "sync"

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide Dispatcher, creating it on first use.
// Code that needs isolation, such as tests, should use New instead.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = New()
	})
	return defaultDispatcher
}
