package script

import "errors"

// Errors for script state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoDispatcher is returned by NewState when no dispatcher is given.
	ErrNoDispatcher = errors.New("script state requires a dispatcher")
)
