package event

import (
	"cmp"
	"reflect"
	"slices"
)

// registry maps event names to their priority-ordered listeners.
// It is not safe for concurrent use; the Dispatcher guards it.
type registry struct {
	events map[string][]Listener
	names  []string // registration order
}

func newRegistry() *registry {
	return &registry{
		events: make(map[string][]Listener),
	}
}

// register adds name with an empty listener list if it is not present.
// It reports whether the name was added.
func (r *registry) register(name string) bool {
	if _, ok := r.events[name]; ok {
		return false
	}
	r.events[name] = []Listener{}
	r.names = append(r.names, name)
	return true
}

// remove deletes name and all of its listeners.
func (r *registry) remove(name string) bool {
	if _, ok := r.events[name]; !ok {
		return false
	}
	delete(r.events, name)
	r.names = slices.DeleteFunc(r.names, func(n string) bool { return n == name })
	return true
}

func (r *registry) has(name string) bool {
	_, ok := r.events[name]
	return ok
}

// add appends l to name's listeners and restores descending priority order.
// The sort is stable so equal priorities keep their insertion order.
func (r *registry) add(name string, l Listener) {
	listeners := append(r.events[name], l)
	slices.SortStableFunc(listeners, func(a, b Listener) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	r.events[name] = listeners
}

// removeID deletes the listener with the given ID from name.
func (r *registry) removeID(name string, id ListenerID) bool {
	listeners, ok := r.events[name]
	if !ok {
		return false
	}
	i := slices.IndexFunc(listeners, func(l Listener) bool { return l.ID == id })
	if i < 0 {
		return false
	}
	r.events[name] = slices.Delete(slices.Clone(listeners), i, i+1)
	return true
}

// removeHandler deletes every listener of name whose handler is identical
// to h. Handlers that are not comparable values never match, including
// comparable struct types holding a func in an interface field.
func (r *registry) removeHandler(name string, h Handler) int {
	listeners, ok := r.events[name]
	if !ok || !comparableHandler(h) {
		return 0
	}
	kept := make([]Listener, 0, len(listeners))
	for _, l := range listeners {
		if sameHandler(l.Handler, h) {
			continue
		}
		kept = append(kept, l)
	}
	removed := len(listeners) - len(kept)
	if removed > 0 {
		r.events[name] = kept
	}
	return removed
}

// sameHandler compares two handlers by identity. h must be comparable.
func sameHandler(a, h Handler) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(h) || !comparableHandler(a) {
		return false
	}
	return a == h
}

// comparableHandler reports whether == on h cannot panic. The check is on
// the value, so interface fields are judged by their dynamic types.
func comparableHandler(h Handler) bool {
	if h == nil {
		return false
	}
	return reflect.ValueOf(h).Comparable()
}

// listeners returns a copy of name's listeners.
func (r *registry) listeners(name string) ([]Listener, bool) {
	listeners, ok := r.events[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(listeners), true
}

// registered returns a copy of the event names in registration order.
func (r *registry) registered() []string {
	return append(make([]string, 0, len(r.names)), r.names...)
}
