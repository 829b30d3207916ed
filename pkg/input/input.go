// Package input turns raw keyboard, wheel, touch, link and fragment events
// into navigation intents for the slide controller.
package input

import (
	"fmt"

	"github.com/vanderheijden86/slidescroll/pkg/metrics"
	"github.com/vanderheijden86/slidescroll/pkg/slides"
)

// Navigator is the controller surface adapters drive.
type Navigator interface {
	Show(t slides.Target)
	ShowNext()
	ShowPrevious()
	ShowFirst()
	ShowLast()
	Resolve(t slides.Target) int
	Target() int
}

// IntentKind enumerates the normalized navigation requests.
type IntentKind int

const (
	IntentNext IntentKind = iota
	IntentPrevious
	IntentFirst
	IntentLast
	IntentGoto
)

// String returns the intent name.
func (k IntentKind) String() string {
	switch k {
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentFirst:
		return "first"
	case IntentLast:
		return "last"
	case IntentGoto:
		return "goto"
	default:
		return "unknown"
	}
}

// Intent is the output of every adapter.
type Intent struct {
	Kind   IntentKind
	Target slides.Target // only for IntentGoto
}

// Next, Previous, First and Last are the fixed intents.
var (
	Next     = Intent{Kind: IntentNext}
	Previous = Intent{Kind: IntentPrevious}
	First    = Intent{Kind: IntentFirst}
	Last     = Intent{Kind: IntentLast}
)

// Goto builds a goto intent.
func Goto(t slides.Target) Intent {
	return Intent{Kind: IntentGoto, Target: t}
}

func (i Intent) String() string {
	if i.Kind == IntentGoto {
		return fmt.Sprintf("goto(%s)", i.Target)
	}
	return i.Kind.String()
}

// Apply forwards the intent to nav and counts it for source.
func Apply(nav Navigator, source string, i Intent) {
	metrics.CountIntent(source, i.Kind.String())
	switch i.Kind {
	case IntentNext:
		nav.ShowNext()
	case IntentPrevious:
		nav.ShowPrevious()
	case IntentFirst:
		nav.ShowFirst()
	case IntentLast:
		nav.ShowLast()
	case IntentGoto:
		nav.Show(i.Target)
	}
}

// Event is a raw input event.
type Event interface {
	isEvent()
}

// Adapter reduces one event stream to intents.
type Adapter interface {
	Name() string
	// Handle processes ev and reports whether the default action should be
	// suppressed. Adapters ignore event types they do not own.
	Handle(ev Event) bool
}

// Attacher is implemented by adapters that listen outside the event
// dispatch path (the fragment listener).
type Attacher interface {
	Attach()
	Detach()
}
