// Package quote provides mutable market quotes and the observer
// wiring that propagates quote changes to dependent curves.
package quote

// Observer receives change notifications from an Observable.
type Observer interface {
	Update()
}

// Observable is an embeddable broadcast list. Observers are notified
// in attach order, which keeps propagation deterministic.
//
// Not safe for concurrent mutation; build and bump curve graphs from a
// single goroutine.
type Observable struct {
	observers []Observer
}

// Attach registers obs. Attaching an already-registered observer is a
// no-op.
func (o *Observable) Attach(obs Observer) {
	for _, cur := range o.observers {
		if cur == obs {
			return
		}
	}
	o.observers = append(o.observers, obs)
}

// Detach removes obs if present.
func (o *Observable) Detach(obs Observer) {
	for i, cur := range o.observers {
		if cur == obs {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// Notify calls Update on every attached observer in attach order.
func (o *Observable) Notify() {
	for _, obs := range o.observers {
		obs.Update()
	}
}

// Quote is an observed market value, stored as a decimal rate or
// spread (0.025 means 2.5%).
type Quote struct {
	Observable
	value float64
}

// New returns a quote with the given initial value.
func New(value float64) *Quote {
	return &Quote{value: value}
}

// Value returns the current quote value.
func (q *Quote) Value() float64 {
	return q.value
}

// SetValue updates the quote and notifies observers. Setting the same
// value again does not notify.
func (q *Quote) SetValue(v float64) {
	if v == q.value {
		return
	}
	q.value = v
	q.Notify()
}
