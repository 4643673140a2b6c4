package event

import (
	"context"
	"slices"
	"sync/atomic"
)

// Once attaches h to name so that it runs on the next dispatch only.
//
// The returned ID is allocated before the listener is attached; on its
// first invocation the listener detaches itself with that ID and then
// delegates to h. If several dispatches race, h still runs at most once.
func (d *Dispatcher) Once(name string, h Handler, opts ...ListenOption) (ListenerID, error) {
	if isNil(h) {
		return "", ErrNilHandler
	}

	cfg := listenConfig{priority: PriorityDefault}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := d.newID()
	wrapper := &onceHandler{
		dispatcher: d,
		event:      name,
		id:         id,
		handler:    h,
	}
	if err := d.attach(name, Listener{ID: id, Handler: wrapper, Priority: cfg.priority}); err != nil {
		return "", err
	}
	return id, nil
}

// OnceFunc attaches a handler function that runs on the next dispatch only.
func (d *Dispatcher) OnceFunc(name string, fn func(ctx context.Context, args ...any) (any, error), opts ...ListenOption) (ListenerID, error) {
	if fn == nil {
		return "", ErrNilHandler
	}
	return d.Once(name, HandlerFunc(fn), opts...)
}

// alreadyFired is returned by a one-shot listener invoked after it ran,
// which happens when a dispatch snapshotted it before another dispatch
// fired it. Use drops these values.
type alreadyFired struct{}

// dropFired removes the values of one-shot listeners that did not run.
func dropFired(values []any) []any {
	return slices.DeleteFunc(values, func(v any) bool {
		_, ok := v.(alreadyFired)
		return ok
	})
}

// onceHandler is the self-removing listener installed by Once.
type onceHandler struct {
	dispatcher *Dispatcher
	event      string
	id         ListenerID
	handler    Handler
	fired      atomic.Bool
}

// Handle implements the Handler interface.
func (o *onceHandler) Handle(ctx context.Context, args ...any) (any, error) {
	if !o.fired.CompareAndSwap(false, true) {
		return alreadyFired{}, nil
	}
	o.dispatcher.RemoveListener(o.event, o.id)
	return o.handler.Handle(ctx, args...)
}
