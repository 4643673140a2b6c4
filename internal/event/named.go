package event

import (
	"context"
	"reflect"
)

// Named is implemented by event values that choose their own event name
// instead of using their type name.
type Named interface {
	EventName() string
}

// EventName returns the name under which v is registered and dispatched by
// RegisterEvent and UseEvent: v.EventName() if v implements Named,
// otherwise the name of v's type with pointer indirections removed, such as
// "orders.Created" for both orders.Created and *orders.Created.
func EventName(v any) string {
	if n, ok := v.(Named); ok {
		return n.EventName()
	}
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// RegisterEvent registers the event named after v.
func (d *Dispatcher) RegisterEvent(v any) {
	d.Register(EventName(v))
}

// UseEvent dispatches the event named after v, passing v as the only
// argument to hooks and handlers.
func (d *Dispatcher) UseEvent(ctx context.Context, v any) (*Result, error) {
	return d.Use(ctx, EventName(v), v)
}

// ListenEvent attaches a typed handler to the event named after the zero
// value of T. The handler only receives dispatches whose first argument is
// a T; other calls return nil without invoking fn.
func ListenEvent[T any](d *Dispatcher, fn func(ctx context.Context, evt T) (any, error), opts ...ListenOption) (ListenerID, error) {
	if fn == nil {
		return "", ErrNilHandler
	}
	var zero T
	return d.Listen(EventName(zero), HandlerFunc(func(ctx context.Context, args ...any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		evt, ok := args[0].(T)
		if !ok {
			return nil, nil
		}
		return fn(ctx, evt)
	}), opts...)
}
