package event

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/hookbus/internal/event/dispatch"
)

// Dispatcher is a synchronous registry of named events.
//
// Events must be registered before handlers can be attached or the event
// dispatched. Global hooks need no registration and run on every dispatch.
// A Dispatcher is safe for concurrent use; handlers run without any lock
// held and may call back into the Dispatcher.
type Dispatcher struct {
	mu       sync.RWMutex
	registry *registry
	before   []Hook
	after    []Hook

	executor *dispatch.Executor
	logger   *slog.Logger
	newID    func() ListenerID

	// Stats
	dispatched   atomic.Uint64
	unregistered atomic.Uint64
}

// New creates an empty Dispatcher.
func New(opts ...Option) *Dispatcher {
	cfg := defaultDispatcherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Dispatcher{
		registry: newRegistry(),
		executor: dispatch.NewExecutor(),
		logger:   cfg.logger,
		newID:    cfg.newID,
	}
}

// Register makes name known to the dispatcher. Registering an existing
// event is a no-op and keeps its listeners.
func (d *Dispatcher) Register(name string) {
	d.mu.Lock()
	added := d.registry.register(name)
	d.mu.Unlock()

	if added {
		d.logger.Debug("event registered", "event", name)
	}
}

// Remove deletes name and all of its listeners. Removing an unknown
// event is a no-op.
func (d *Dispatcher) Remove(name string) {
	d.mu.Lock()
	removed := d.registry.remove(name)
	d.mu.Unlock()

	if removed {
		d.logger.Debug("event removed", "event", name)
	}
}

// ListenGlobalBefore appends a hook that runs before the handlers of every
// dispatched event. A nil hook, including a nil HookFunc, is ignored.
func (d *Dispatcher) ListenGlobalBefore(h Hook) {
	if isNil(h) {
		return
	}
	d.mu.Lock()
	d.before = append(d.before, h)
	d.mu.Unlock()
}

// ListenGlobalAfter appends a hook that runs after the handlers of every
// successfully dispatched event.
func (d *Dispatcher) ListenGlobalAfter(h Hook) {
	if isNil(h) {
		return
	}
	d.mu.Lock()
	d.after = append(d.after, h)
	d.mu.Unlock()
}

// Listen attaches h to name. Listeners run in descending priority order;
// listeners with equal priority run in the order they were attached.
// A nil handler, including a nil HandlerFunc, fails with ErrNilHandler.
func (d *Dispatcher) Listen(name string, h Handler, opts ...ListenOption) (ListenerID, error) {
	if isNil(h) {
		return "", ErrNilHandler
	}

	cfg := listenConfig{priority: PriorityDefault}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := d.newID()
	if err := d.attach(name, Listener{ID: id, Handler: h, Priority: cfg.priority}); err != nil {
		return "", err
	}
	return id, nil
}

// ListenFunc attaches a handler function to name.
func (d *Dispatcher) ListenFunc(name string, fn func(ctx context.Context, args ...any) (any, error), opts ...ListenOption) (ListenerID, error) {
	if fn == nil {
		return "", ErrNilHandler
	}
	return d.Listen(name, HandlerFunc(fn), opts...)
}

func (d *Dispatcher) attach(name string, l Listener) error {
	d.mu.Lock()
	if !d.registry.has(name) {
		d.mu.Unlock()
		return notRegistered(name)
	}
	d.registry.add(name, l)
	d.mu.Unlock()

	d.logger.Debug("listener attached", "event", name, "listener", l.ID, "priority", int(l.Priority))
	return nil
}

// RemoveListener detaches the listener with the given ID from name.
// It reports whether a listener was removed; unknown events and IDs are
// not errors.
func (d *Dispatcher) RemoveListener(name string, id ListenerID) bool {
	d.mu.Lock()
	removed := d.registry.removeID(name, id)
	d.mu.Unlock()

	if removed {
		d.logger.Debug("listener detached", "event", name, "listener", id)
	}
	return removed
}

// RemoveHandler detaches every listener of name whose handler is the same
// value as h, and returns how many were removed. Identity is Go equality,
// so two distinct pointers to identical handlers are different handlers.
// Function values are not comparable and never match; use RemoveListener
// with the ID returned by Listen for those.
func (d *Dispatcher) RemoveHandler(name string, h Handler) int {
	d.mu.Lock()
	removed := d.registry.removeHandler(name, h)
	d.mu.Unlock()

	if removed > 0 {
		d.logger.Debug("handler detached", "event", name, "count", removed)
	}
	return removed
}

// Use dispatches name with args.
//
// The global before hooks run first, each receiving name and args. If name
// is not registered Use then fails with an *EventNotRegisteredError: the
// before hooks have already run and their values are in the returned
// Result, but the after hooks are skipped. Otherwise the event's handlers
// run in priority order with args only, followed by the global after hooks.
//
// An error returned by any hook or handler aborts the dispatch and is
// returned unchanged alongside the values collected so far. The returned
// Result is never nil.
func (d *Dispatcher) Use(ctx context.Context, name string, args ...any) (*Result, error) {
	d.dispatched.Add(1)
	result := newResult()

	d.mu.RLock()
	before := slices.Clone(d.before)
	d.mu.RUnlock()

	var err error
	result.Before, err = d.executor.Run(ctx, len(before), func(ctx context.Context, i int) (any, error) {
		return before[i].Handle(ctx, name, args...)
	})
	if err != nil {
		return result, err
	}

	// Looked up after the before hooks; a hook may register the event.
	d.mu.RLock()
	listeners, ok := d.registry.listeners(name)
	after := slices.Clone(d.after)
	d.mu.RUnlock()

	if !ok {
		d.unregistered.Add(1)
		d.logger.Debug("dispatch of unregistered event", "event", name)
		return result, notRegistered(name)
	}

	d.logger.Debug("dispatching event", "event", name, "listeners", len(listeners))

	result.Event, err = d.executor.Run(ctx, len(listeners), func(ctx context.Context, i int) (any, error) {
		return listeners[i].Handler.Handle(ctx, args...)
	})
	result.Event = dropFired(result.Event)
	if err != nil {
		return result, err
	}

	result.After, err = d.executor.Run(ctx, len(after), func(ctx context.Context, i int) (any, error) {
		return after[i].Handle(ctx, name, args...)
	})
	return result, err
}

// RegisteredEvents returns the registered event names in registration order.
func (d *Dispatcher) RegisteredEvents() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.registry.registered()
}

// Listeners returns a copy of name's listeners in dispatch order.
// The error for an unknown name lists every registered event.
func (d *Dispatcher) Listeners(name string) ([]Listener, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	listeners, ok := d.registry.listeners(name)
	if !ok {
		return nil, &EventNotRegisteredError{
			Event:      name,
			Registered: d.registry.registered(),
		}
	}
	return listeners, nil
}

// Stats returns dispatch statistics.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Dispatched:   d.dispatched.Load(),
		Unregistered: d.unregistered.Load(),
		Executor:     d.executor.Stats(),
	}
}

// ResetStats resets all statistics to zero.
func (d *Dispatcher) ResetStats() {
	d.dispatched.Store(0)
	d.unregistered.Store(0)
	d.executor.ResetStats()
}

// Stats contains statistics for a Dispatcher.
type Stats struct {
	// Dispatched is the total number of Use calls.
	Dispatched uint64

	// Unregistered is the number of dispatches that named an unknown event.
	Unregistered uint64

	// Executor covers every hook and handler invocation.
	Executor dispatch.ExecutorStats
}
