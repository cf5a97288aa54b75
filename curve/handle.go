package curve

import "github.com/ordli77/interestrate/quote"

// Handle is a relinkable reference to a term structure. Helpers hold
// handles to curves that may not exist yet; once the target curve is
// calibrated the handle is linked and every observer of the handle is
// notified, marking dependent curves dirty.
type Handle struct {
	quote.Observable
	target TermStructure
}

// NewHandle returns an empty handle.
func NewHandle() *Handle { return &Handle{} }

// LinkedTo returns a handle already linked to ts.
func LinkedTo(ts TermStructure) *Handle {
	h := NewHandle()
	h.LinkTo(ts)
	return h
}

// LinkTo points the handle at ts and notifies observers. Relinking to
// the current target is a no-op; ts may be nil to unlink.
func (h *Handle) LinkTo(ts TermStructure) {
	if h.target == ts {
		return
	}
	if h.target != nil {
		h.target.Detach(h)
	}
	h.target = ts
	if ts != nil {
		ts.Attach(h)
	}
	h.Notify()
}

// Empty reports whether the handle has no target.
func (h *Handle) Empty() bool { return h == nil || h.target == nil }

// Term returns the linked term structure or a DependencyError.
func (h *Handle) Term() (TermStructure, error) {
	if h.Empty() {
		return nil, &DependencyError{}
	}
	return h.target, nil
}

// Update relays notifications from the linked curve to the handle's
// own observers.
func (h *Handle) Update() { h.Notify() }
