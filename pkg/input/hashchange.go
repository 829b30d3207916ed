package input

import (
	"github.com/vanderheijden86/slidescroll/pkg/debug"
	"github.com/vanderheijden86/slidescroll/pkg/slides"
)

// Subscriber is a location that reports fragment changes.
type Subscriber interface {
	Fragment() string
	Subscribe(fn func(fragment string)) func()
}

// HashChange navigates when the location fragment changes from outside
// (history, links, a typed address). Changes the controller made itself
// resolve to its own target and are ignored.
type HashChange struct {
	nav         Navigator
	loc         Subscriber
	unsubscribe func()
}

var _ Attacher = (*HashChange)(nil)

// NewHashChange creates the fragment listener. It is inert until Attach.
func NewHashChange(nav Navigator, loc Subscriber) *HashChange {
	return &HashChange{nav: nav, loc: loc}
}

// Name returns the adapter name used in metrics.
func (h *HashChange) Name() string { return "hash" }

// Attach subscribes to the location. Attaching twice is a no-op.
func (h *HashChange) Attach() {
	if h.unsubscribe != nil {
		return
	}
	h.unsubscribe = h.loc.Subscribe(h.changed)
}

// Detach unsubscribes. Detaching an unattached listener is a no-op.
func (h *HashChange) Detach() {
	if h.unsubscribe == nil {
		return
	}
	h.unsubscribe()
	h.unsubscribe = nil
}

// Attached reports whether the listener is subscribed.
func (h *HashChange) Attached() bool {
	return h.unsubscribe != nil
}

func (h *HashChange) changed(fragment string) {
	index := h.nav.Resolve(slides.Key(fragment))
	if index == h.nav.Target() {
		return
	}
	debug.Log("input: fragment %q -> slide %d", fragment, index)
	Apply(h.nav, h.Name(), Goto(slides.Index(index)))
}
