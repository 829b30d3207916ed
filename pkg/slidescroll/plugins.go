package slidescroll

import (
	"sync"

	"github.com/vanderheijden86/slidescroll/pkg/deck"
	"github.com/vanderheijden86/slidescroll/pkg/slides"
)

// DefaultEntryPoint is the name New is registered under.
const DefaultEntryPoint = "slidescroll"

// instanceKey is the container data annotation holding the live instance.
const instanceKey = "slidescroll"

// EntryPoint constructs or returns the instance for a document.
type EntryPoint func(doc *deck.Document, loc Location, base slides.Options, overrides ...Option) *Scroller

// Plugins is a registry of named entry points. Redefining a name keeps the
// previous definition so NoConflict can restore it.
type Plugins struct {
	mu   sync.Mutex
	defs map[string][]EntryPoint
}

// NewPlugins returns a registry with Attach defined as DefaultEntryPoint.
func NewPlugins() *Plugins {
	p := &Plugins{defs: make(map[string][]EntryPoint)}
	p.Define(DefaultEntryPoint, Attach)
	return p
}

// Define registers fn under name, shadowing any earlier definition.
func (p *Plugins) Define(name string, fn EntryPoint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.defs[name] = append(p.defs[name], fn)
}

// Lookup returns the current definition of name.
func (p *Plugins) Lookup(name string) (EntryPoint, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stack := p.defs[name]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// NoConflict restores the definition name had before the latest Define and
// returns the one it replaced, so the caller can keep using it under its
// own name.
func (p *Plugins) NoConflict(name string) EntryPoint {
	p.mu.Lock()
	defer p.mu.Unlock()
	stack := p.defs[name]
	if len(stack) == 0 {
		return nil
	}
	current := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(p.defs, name)
	} else {
		p.defs[name] = stack[:len(stack)-1]
	}
	return current
}

// Attach returns the scroller already bound to doc's container, or creates
// one. Options of a second Attach are ignored, as the instance exists.
func Attach(doc *deck.Document, loc Location, base slides.Options, overrides ...Option) *Scroller {
	if v, ok := doc.Container.Data(instanceKey); ok {
		if s, ok := v.(*Scroller); ok {
			return s
		}
	}
	s := New(doc, loc, base, overrides...)
	doc.Container.SetData(instanceKey, s)
	return s
}

// Detach disables the instance bound to doc, if any, and forgets it.
func Detach(doc *deck.Document) {
	v, ok := doc.Container.Data(instanceKey)
	if !ok {
		return
	}
	if s, ok := v.(*Scroller); ok {
		s.Disable()
	}
	doc.Container.RemoveData(instanceKey)
}
