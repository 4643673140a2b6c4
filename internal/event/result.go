package event

// Result holds the values returned during a single dispatch.
//
// Before[i] and After[i] are the values of the i-th global before/after
// hook in insertion order. Event holds the handler values in dispatch
// (priority) order. When a dispatch fails, Result still describes every
// callback that completed before the failure.
type Result struct {
	Before []any
	Event  []any
	After  []any
}

func newResult() *Result {
	return &Result{
		Before: []any{},
		Event:  []any{},
		After:  []any{},
	}
}

// Len returns the total number of collected values.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Before) + len(r.Event) + len(r.After)
}
