package slides

import (
	"strings"

	"github.com/vanderheijden86/slidescroll/pkg/deck"
)

// FragmentStore is the location surface the controller writes to.
type FragmentStore interface {
	Fragment() string
	Set(fragment string)
}

// Fragment reads and writes the location fragment in terms of slides.
type Fragment struct {
	Store    FragmentStore
	Registry *Registry
}

// Get returns the current fragment without a leading "#".
func (f Fragment) Get() string {
	return strings.TrimPrefix(f.Store.Fragment(), "#")
}

// Set writes a slide key as the fragment; indices go through the key table.
func (f Fragment) Set(t Target) {
	key := t.String()
	if i, ok := t.(Index); ok {
		key = f.Registry.Key(int(i))
	}
	f.Store.Set(key)
}

// State is the navigation state of one enabled deck.
type State struct {
	Current int
	// Target is the slide the latest Show resolved to. It is written before
	// any side effect of Show, so observers notified from inside Show see
	// where navigation is heading rather than where it was.
	Target int
	// Transitioning is advisory; it never blocks a Show.
	Transitioning bool
}

// Controller owns the current slide and drives transitions.
type Controller struct {
	opts     Options
	doc      *deck.Document
	registry *Registry
	backend  Backend
	fragment Fragment
	state    State
	closed   bool
}

// NewController creates a controller positioned at initial without showing
// anything; callers Show the first slide themselves.
func NewController(doc *deck.Document, registry *Registry, store FragmentStore, opts Options, initial int) *Controller {
	opts = opts.Normalized()
	return &Controller{
		opts:     opts,
		doc:      doc,
		registry: registry,
		backend:  BackendFor(opts.CSS3),
		fragment: Fragment{Store: store, Registry: registry},
		state:    State{Current: initial, Target: initial},
	}
}

// Show moves to the slide addressed by t. Invalid targets fall back to the
// first slide; with no slides Show does nothing. A Show issued while another
// transition runs simply takes over.
func (c *Controller) Show(t Target) {
	if c.closed || c.registry.Count() == 0 {
		return
	}
	previous := c.state.Current
	index := c.registry.Resolve(t)
	c.state.Target = index

	if c.opts.BeforeMove != nil {
		c.opts.BeforeMove(previous, index)
	}

	c.state.Transitioning = true
	root := c.doc.Root
	root.AddClass(c.opts.Class("transitioning"))
	root.RemoveClass(c.opts.Class(c.registry.Key(previous)))
	root.AddClass(c.opts.Class(c.registry.Key(index)))

	c.registry.setActiveLink(index)
	c.backend.Move(c.doc.Container, index)
	c.fragment.Set(Index(index))
	c.state.Current = index
}

// TransitionEnd is the renderer's completion signal. It clears the
// transitioning marker and reports the move. Nothing times out if the signal
// never arrives.
func (c *Controller) TransitionEnd() {
	if c.closed {
		return
	}
	c.state.Transitioning = false
	c.doc.Root.RemoveClass(c.opts.Class("transitioning"))
	if c.opts.Moved != nil {
		c.opts.Moved(c.state.Current, c.registry.Key(c.state.Current))
	}
}

// ShowFirst shows the first slide.
func (c *Controller) ShowFirst() {
	c.Show(Index(0))
}

// ShowLast shows the last slide.
func (c *Controller) ShowLast() {
	c.Show(Index(c.registry.Count() - 1))
}

// ShowNext advances one slide, staying put on the last one.
func (c *Controller) ShowNext() {
	next := c.state.Current + 1
	if next >= c.registry.Count() {
		next = c.registry.Count() - 1
	}
	c.Show(Index(next))
}

// ShowPrevious goes back one slide. There is no lower clamp here: from the
// first slide the target is -1, which Resolve maps back to 0.
func (c *Controller) ShowPrevious() {
	c.Show(Index(c.state.Current - 1))
}

// Resolve validates a target against the registry.
func (c *Controller) Resolve(t Target) int {
	return c.registry.Resolve(t)
}

// State returns a snapshot of the navigation state.
func (c *Controller) State() State {
	return c.state
}

// Current returns the current slide index.
func (c *Controller) Current() int {
	return c.state.Current
}

// Target returns the slide the latest Show resolved to.
func (c *Controller) Target() int {
	return c.state.Target
}

// Key returns the current slide's key.
func (c *Controller) Key() string {
	return c.registry.Key(c.state.Current)
}

// Backend returns the rendering backend chosen at construction.
func (c *Controller) Backend() Backend {
	return c.backend
}

// Fragment returns the fragment helper bound to this controller's registry.
func (c *Controller) Fragment() Fragment {
	return c.fragment
}

// Close invalidates the controller. Later calls are no-ops.
func (c *Controller) Close() {
	c.closed = true
}

