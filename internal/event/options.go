package event

import (
	"log/slog"

	"github.com/google/uuid"
)

// Option configures a Dispatcher.
type Option func(*dispatcherConfig)

// dispatcherConfig contains configuration for a Dispatcher.
type dispatcherConfig struct {
	// logger receives debug records for registration and dispatch.
	logger *slog.Logger

	// newID generates listener identifiers.
	newID func() ListenerID
}

// defaultDispatcherConfig returns the configuration used by New.
func defaultDispatcherConfig() dispatcherConfig {
	return dispatcherConfig{
		logger: slog.New(slog.DiscardHandler),
		newID:  newListenerID,
	}
}

func newListenerID() ListenerID {
	return ListenerID(uuid.NewString())
}

// WithLogger sets the logger used for debug records. The dispatcher never
// logs above Debug level; errors are always returned to the caller.
func WithLogger(l *slog.Logger) Option {
	return func(c *dispatcherConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator replaces the listener ID generator. The generator must
// return a distinct value on every call.
func WithIDGenerator(gen func() ListenerID) Option {
	return func(c *dispatcherConfig) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// ListenOption configures a single listener attachment.
type ListenOption func(*listenConfig)

type listenConfig struct {
	priority Priority
}

// WithPriority sets the listener priority. Higher priorities run first.
func WithPriority(p Priority) ListenOption {
	return func(c *listenConfig) {
		c.priority = p
	}
}
