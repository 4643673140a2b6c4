package event

import (
	"context"
	"reflect"
)

// Priority determines handler execution order within an event.
// Higher values execute first; equal values keep insertion order.
type Priority int

const (
	// PriorityHigh is for handlers that must observe the event before others.
	PriorityHigh Priority = 100

	// PriorityDefault is the priority used when none is given.
	PriorityDefault Priority = 0

	// PriorityLow is for handlers that should run after everything else,
	// such as auditing or metrics.
	PriorityLow Priority = -100
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p >= PriorityHigh:
		return "high"
	case p > PriorityDefault:
		return "above-default"
	case p == PriorityDefault:
		return "default"
	case p > PriorityLow:
		return "below-default"
	default:
		return "low"
	}
}

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes a dispatch. It receives the dispatch arguments
	// (without the event name) and returns a value that is collected
	// into the dispatch Result.
	Handle(ctx context.Context, args ...any) (any, error)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, args ...any) (any, error)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, args ...any) (any, error) {
	return f(ctx, args...)
}

// Hook is a process-wide handler that runs on every dispatch, before or
// after the event-specific handlers. Unlike Handler it also receives the
// name of the event being dispatched.
type Hook interface {
	Handle(ctx context.Context, event string, args ...any) (any, error)
}

// HookFunc is a function adapter for Hook.
type HookFunc func(ctx context.Context, event string, args ...any) (any, error)

// Handle implements the Hook interface.
func (f HookFunc) Handle(ctx context.Context, event string, args ...any) (any, error) {
	return f(ctx, event, args...)
}

// ListenerID identifies a single listener attachment. Attaching the same
// handler twice yields two distinct IDs.
type ListenerID string

// Listener is a handler attached to an event together with its priority.
type Listener struct {
	ID       ListenerID
	Handler  Handler
	Priority Priority
}

// isNil reports whether v is nil or a nil func value such as HandlerFunc(nil).
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && rv.IsNil()
}
