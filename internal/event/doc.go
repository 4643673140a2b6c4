// Package event provides hookbus's synchronous event dispatcher.
//
// A Dispatcher keeps a registry of named events. Each event owns an ordered
// list of listeners, and the dispatcher additionally owns two lists of
// global hooks that run around every dispatch:
//
//	Use(ctx, "order.created", args...)
//	    │
//	    ├─ global before hooks    hook(ctx, "order.created", args...)
//	    ├─ event listeners        handler(ctx, args...)   (priority order)
//	    └─ global after hooks     hook(ctx, "order.created", args...)
//	    │
//	    ▼
//	Result{Before, Event, After}
//
// # Registration
//
// Events must be registered before listeners can attach or the event can be
// dispatched. Registration is idempotent; Remove drops the event together
// with its listeners. Global hooks need no registration and cannot be
// removed.
//
// # Priority Ordering
//
// Listeners run in descending priority order. Listeners with equal priority
// run in the order they were attached, no matter how many listeners are
// added afterwards.
//
// # Dispatch
//
// Use runs entirely in the caller's goroutine. If the event is not
// registered, the global before hooks still run; Use then returns
// ErrEventNotRegistered (as an *EventNotRegisteredError) and skips the
// global after hooks. The Result returned with an error contains every
// value collected before the failure.
//
// Handlers are not isolated. An error returned by a hook or handler is
// passed back unchanged and stops the dispatch; a panic unwinds through
// Use.
//
// # Basic Usage
//
//	d := event.New()
//	d.Register("order.created")
//
//	d.ListenFunc("order.created", func(ctx context.Context, args ...any) (any, error) {
//	    return "reserved stock", nil
//	}, event.WithPriority(10))
//
//	res, err := d.Use(ctx, "order.created", order)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Event) // [reserved stock]
//
// # One-shot Listeners
//
// Once attaches a listener that detaches itself the first time it runs:
//
//	d.OnceFunc("app.ready", func(ctx context.Context, args ...any) (any, error) {
//	    return nil, warmCaches(ctx)
//	})
//
// # Typed Events
//
// RegisterEvent and UseEvent key events by the Go type of a value, which is
// passed as the only argument:
//
//	d.RegisterEvent(OrderCreated{})
//	event.ListenEvent(d, func(ctx context.Context, evt OrderCreated) (any, error) {
//	    return evt.ID, nil
//	})
//	d.UseEvent(ctx, OrderCreated{ID: "o-1"})
//
// # Thread Safety
//
// A Dispatcher is safe for concurrent use. No lock is held while hooks and
// handlers run, so they may register events, attach or detach listeners, and
// dispatch other events.
//
// # Subpackages
//
//   - dispatch: Sequential executor used to run hooks and listeners
//   - pattern: Wildcard matching of dot-separated event names
package event
