// Package location models the addressable fragment of a deck ("deck.md#key")
// together with a back/forward history, the way a browser tab treats its
// URL hash.
package location

import "strings"

// Listener is called with the new fragment after it changed.
type Listener = func(fragment string)

// Location holds the current fragment and its history. It is not safe for
// concurrent use; the UI loop owns it.
type Location struct {
	entries   []string
	pos       int
	listeners map[int]Listener
	order     []int
	nextID    int
}

// New creates a location whose history starts at fragment.
func New(fragment string) *Location {
	return &Location{
		entries:   []string{normalize(fragment)},
		listeners: make(map[int]Listener),
	}
}

func normalize(fragment string) string {
	return strings.TrimPrefix(fragment, "#")
}

// Fragment returns the current fragment without the leading "#".
func (l *Location) Fragment() string {
	return l.entries[l.pos]
}

// Set navigates to a new fragment. Forward history is dropped. Writing the
// current value changes nothing and notifies nobody.
func (l *Location) Set(fragment string) {
	fragment = normalize(fragment)
	if fragment == l.Fragment() {
		return
	}
	l.entries = append(l.entries[:l.pos+1], fragment)
	l.pos++
	l.notify()
}

// Back moves one entry back in history. It reports whether it moved.
func (l *Location) Back() bool {
	if l.pos == 0 {
		return false
	}
	l.pos--
	l.notify()
	return true
}

// Forward moves one entry forward in history. It reports whether it moved.
func (l *Location) Forward() bool {
	if l.pos >= len(l.entries)-1 {
		return false
	}
	l.pos++
	l.notify()
	return true
}

// CanBack reports whether Back would move.
func (l *Location) CanBack() bool {
	return l.pos > 0
}

// CanForward reports whether Forward would move.
func (l *Location) CanForward() bool {
	return l.pos < len(l.entries)-1
}

// Len returns the number of history entries.
func (l *Location) Len() int {
	return len(l.entries)
}

// Subscribe registers fn for change notifications, delivered synchronously
// in subscription order. The returned func unsubscribes.
func (l *Location) Subscribe(fn Listener) func() {
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.order = append(l.order, id)
	return func() {
		if _, ok := l.listeners[id]; !ok {
			return
		}
		delete(l.listeners, id)
		for i, o := range l.order {
			if o == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// Listeners returns the number of active subscriptions.
func (l *Location) Listeners() int {
	return len(l.listeners)
}

func (l *Location) notify() {
	fragment := l.Fragment()
	// Listeners may unsubscribe while being notified.
	for _, id := range append([]int(nil), l.order...) {
		if fn, ok := l.listeners[id]; ok {
			fn(fragment)
		}
	}
}

// Href formats a deep link for a deck path.
func Href(deckPath, fragment string) string {
	fragment = normalize(fragment)
	if fragment == "" {
		return deckPath
	}
	return deckPath + "#" + fragment
}

// SplitHref splits "deck.md#key" into path and fragment.
func SplitHref(href string) (path, fragment string) {
	if i := strings.LastIndex(href, "#"); i >= 0 {
		return href[:i], href[i+1:]
	}
	return href, ""
}
