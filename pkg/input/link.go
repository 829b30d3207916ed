package input

import (
	"strings"

	"github.com/vanderheijden86/slidescroll/pkg/deck"
	"github.com/vanderheijden86/slidescroll/pkg/metrics"
	"github.com/vanderheijden86/slidescroll/pkg/slides"
)

// LinkEvent is an activation of a navigation link.
type LinkEvent struct {
	Link *deck.Element
}

func (LinkEvent) isEvent() {}

// Link follows navigation links by writing their href to the location. The
// fragment listener performs the actual move, as with any other hash change.
type Link struct {
	store slides.FragmentStore
}

// NewLink creates the link adapter.
func NewLink(store slides.FragmentStore) *Link {
	return &Link{store: store}
}

// Name implements Adapter.
func (l *Link) Name() string { return "link" }

// Handle implements Adapter.
func (l *Link) Handle(ev Event) bool {
	le, ok := ev.(LinkEvent)
	if !ok || le.Link == nil {
		return false
	}
	href, ok := le.Link.Attr("href")
	if !ok || !strings.HasPrefix(href, "#") {
		return false
	}
	metrics.CountIntent(l.Name(), IntentGoto.String())
	l.store.Set(strings.TrimPrefix(href, "#"))
	return true
}
