package event

import (
	"errors"
	"strings"
)

// Sentinel errors for the dispatcher.
var (
	// ErrEventNotRegistered is returned when an operation names an event that
	// has not been registered (or has since been removed).
	ErrEventNotRegistered = errors.New("event is not registered")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")
)

// EventNotRegisteredError reports an operation on an unknown event name.
// It matches ErrEventNotRegistered with errors.Is.
type EventNotRegisteredError struct {
	// Event is the name that was looked up.
	Event string

	// Registered lists the event names known at the time of the failure.
	// It is only populated by lookups that enumerate the registry.
	Registered []string
}

// Error implements the error interface.
func (e *EventNotRegisteredError) Error() string {
	msg := "event " + e.Event + " is not registered"
	if e.Registered != nil {
		msg += "; registered events: " + strings.Join(e.Registered, ", ")
	}
	return msg
}

// Is allows errors.Is to match EventNotRegisteredError with ErrEventNotRegistered.
func (e *EventNotRegisteredError) Is(target error) bool {
	return target == ErrEventNotRegistered
}

func notRegistered(name string) error {
	return &EventNotRegisteredError{Event: name}
}
