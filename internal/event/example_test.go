package event_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/hookbus/internal/event"
)

// Example_priorityHandling demonstrates handler priority ordering.
func Example_priorityHandling() {
	d := event.New()
	d.Register("order.created")

	d.ListenFunc("order.created", func(ctx context.Context, args ...any) (any, error) {
		return "B", nil
	}, event.WithPriority(5))
	d.ListenFunc("order.created", func(ctx context.Context, args ...any) (any, error) {
		return "A", nil
	}, event.WithPriority(10))

	res, _ := d.Use(context.Background(), "order.created")
	fmt.Println(res.Event)

	// Output: [A B]
}

// Example_globalHooks shows hooks running around every dispatch.
func Example_globalHooks() {
	d := event.New()
	d.ListenGlobalBefore(event.HookFunc(func(ctx context.Context, name string, args ...any) (any, error) {
		fmt.Println("before", name)
		return "pre", nil
	}))
	d.ListenGlobalAfter(event.HookFunc(func(ctx context.Context, name string, args ...any) (any, error) {
		fmt.Println("after", name)
		return "post", nil
	}))

	d.Register("user.login")
	d.ListenFunc("user.login", func(ctx context.Context, args ...any) (any, error) {
		fmt.Println("handler", args[0])
		return "x", nil
	})

	res, _ := d.Use(context.Background(), "user.login", "alice")
	fmt.Println(res.Before, res.Event, res.After)

	// Output:
	// before user.login
	// handler alice
	// after user.login
	// [pre] [x] [post]
}

// Example_once demonstrates a one-shot listener.
func Example_once() {
	d := event.New()
	d.Register("app.ready")
	d.OnceFunc("app.ready", func(ctx context.Context, args ...any) (any, error) {
		return "warmed", nil
	})

	first, _ := d.Use(context.Background(), "app.ready")
	second, _ := d.Use(context.Background(), "app.ready")
	fmt.Println(first.Event, second.Event)

	// Output: [warmed] []
}

// Example_unregistered shows the failure for an unknown event.
func Example_unregistered() {
	d := event.New()
	d.Register("known")

	_, err := d.Listeners("unknown")
	fmt.Println(errors.Is(err, event.ErrEventNotRegistered))
	fmt.Println(err)

	// Output:
	// true
	// event unknown is not registered; registered events: known
}
