// Package slidescroll enables slide navigation on a deck document: it builds
// the slide registry, owns the transition controller and wires every input
// adapter to it, and tears all of that down again on Disable.
package slidescroll

import (
	"strings"
	"time"

	"github.com/vanderheijden86/slidescroll/pkg/debug"
	"github.com/vanderheijden86/slidescroll/pkg/deck"
	"github.com/vanderheijden86/slidescroll/pkg/input"
	"github.com/vanderheijden86/slidescroll/pkg/metrics"
	"github.com/vanderheijden86/slidescroll/pkg/slides"
)

// Location is the fragment the scroller reads, writes and listens to.
// *location.Location implements it.
type Location interface {
	Fragment() string
	Set(fragment string)
	Subscribe(fn func(fragment string)) func()
}

// Scroller is one slidescroll instance bound to one deck container.
type Scroller struct {
	doc       *deck.Document
	loc       Location
	base      slides.Options
	overrides []Option
	settings  settings

	registry *slides.Registry
	ctrl     *slides.Controller
	adapters []input.Adapter
	attached []input.Attacher
	enabled  bool

	moveStart time.Time
	moveFrom  int
}

// New creates a scroller for doc and enables it. base carries defaults and
// user configuration; the deck's frontmatter is layered over it and
// overrides are applied last.
func New(doc *deck.Document, loc Location, base slides.Options, overrides ...Option) *Scroller {
	s := &Scroller{
		doc:       doc,
		loc:       loc,
		base:      base,
		overrides: overrides,
	}
	s.configure()
	s.Enable()
	return s
}

func (s *Scroller) configure() {
	s.settings = resolveSettings(s.doc.Container.DataMap(), s.base, s.overrides)
	user := s.settings.opts
	s.settings.opts.BeforeMove = func(previous, target int) {
		s.moveStart = s.settings.clock()
		s.moveFrom = previous
		if user.BeforeMove != nil {
			user.BeforeMove(previous, target)
		}
		s.notify(MoveEvent{Phase: PhaseBeforeMove, From: previous, To: target, Key: s.registry.Key(target)})
	}
	s.settings.opts.Moved = func(index int, key string) {
		if !s.moveStart.IsZero() {
			metrics.Transition.Record(s.settings.clock().Sub(s.moveStart))
		}
		if user.Moved != nil {
			user.Moved(index, key)
		}
		s.notify(MoveEvent{Phase: PhaseMoved, From: s.moveFrom, To: index, Key: key})
	}
}

func (s *Scroller) notify(ev MoveEvent) {
	for _, fn := range s.settings.observers {
		fn(ev)
	}
}

// Options returns the effective options.
func (s *Scroller) Options() slides.Options {
	return s.settings.opts
}

// Document returns the deck this scroller operates on.
func (s *Scroller) Document() *deck.Document {
	return s.doc
}

// Enable builds the slides and navigation, shows the initial slide and
// attaches the input adapters. Enabling twice is a no-op.
func (s *Scroller) Enable() {
	if s.enabled {
		return
	}
	defer metrics.Timer(metrics.DeckBuild)()

	opts := s.settings.opts
	s.registry = slides.Build(s.doc, opts)

	initial := opts.InitialPage
	if frag := strings.TrimPrefix(s.loc.Fragment(), "#"); frag != "" {
		if i, ok := s.registry.Lookup(frag); ok {
			initial = i
		}
	}
	initial = s.registry.Resolve(slides.Index(initial))

	s.ctrl = slides.NewController(s.doc, s.registry, s.loc, opts, initial)
	s.doc.Root.AddClass(opts.Class("enabled"))
	s.ctrl.Show(slides.Index(initial))

	s.adapters = []input.Adapter{
		input.NewKeyboard(s.ctrl),
		input.NewWheel(s.ctrl, opts.AnimationDuration, input.WithClock(s.settings.clock)),
		input.NewTouch(s.ctrl, s.settings.touchThreshold),
		input.NewLink(s.loc),
	}
	s.attached = []input.Attacher{input.NewHashChange(s.ctrl, s.loc)}
	for _, a := range s.attached {
		a.Attach()
	}
	s.enabled = true

	debug.Log("slidescroll: enabled %s with %d slides on %s backend, initial %d",
		s.doc.Name, s.registry.Count(), s.ctrl.Backend().Name(), initial)
}

// Disable detaches the adapters, then removes everything Enable derived.
// Disabling twice is a no-op.
func (s *Scroller) Disable() {
	if !s.enabled {
		return
	}
	for _, a := range s.attached {
		a.Detach()
	}
	s.attached = nil
	s.adapters = nil

	s.ctrl.Close()
	s.registry.Teardown()

	opts := s.settings.opts
	root := s.doc.Root
	root.RemoveClass(opts.Class("enabled"))
	root.RemoveClass(opts.Class("transitioning"))
	s.doc.Container.ClearStyle()

	s.ctrl = nil
	s.registry = nil
	s.enabled = false
	debug.Log("slidescroll: disabled %s", s.doc.Name)
}

// Reload swaps in a freshly parsed document, keeping the location. Options
// are recomputed from the new document's frontmatter.
func (s *Scroller) Reload(doc *deck.Document) {
	wasEnabled := s.enabled
	s.Disable()
	s.doc = doc
	s.configure()
	if wasEnabled {
		s.Enable()
	}
}

// Enabled reports whether the scroller is active.
func (s *Scroller) Enabled() bool {
	return s.enabled
}

// Dispatch offers ev to every adapter and reports whether the default action
// should be suppressed.
func (s *Scroller) Dispatch(ev input.Event) bool {
	if !s.enabled {
		return false
	}
	handled := false
	for _, a := range s.adapters {
		if a.Handle(ev) {
			handled = true
		}
	}
	return handled
}

// Show moves to the slide addressed by t.
func (s *Scroller) Show(t slides.Target) {
	if s.enabled {
		s.ctrl.Show(t)
	}
}

// ShowFirst shows the first slide.
func (s *Scroller) ShowFirst() {
	if s.enabled {
		s.ctrl.ShowFirst()
	}
}

// ShowLast shows the last slide.
func (s *Scroller) ShowLast() {
	if s.enabled {
		s.ctrl.ShowLast()
	}
}

// ShowNext shows the next slide.
func (s *Scroller) ShowNext() {
	if s.enabled {
		s.ctrl.ShowNext()
	}
}

// ShowPrevious shows the previous slide.
func (s *Scroller) ShowPrevious() {
	if s.enabled {
		s.ctrl.ShowPrevious()
	}
}

// TransitionEnd forwards the renderer's completion signal.
func (s *Scroller) TransitionEnd() {
	if s.enabled {
		s.ctrl.TransitionEnd()
	}
}

// State returns the navigation state; zero when disabled.
func (s *Scroller) State() slides.State {
	if !s.enabled {
		return slides.State{}
	}
	return s.ctrl.State()
}

// Current returns the current slide index.
func (s *Scroller) Current() int {
	return s.State().Current
}

// Target returns the index of the slide being moved to, which is the
// current slide once the transition has settled.
func (s *Scroller) Target() int {
	return s.State().Target
}

// Transitioning reports whether a transition awaits its completion signal.
func (s *Scroller) Transitioning() bool {
	return s.State().Transitioning
}

// Key returns the current slide's key.
func (s *Scroller) Key() string {
	if !s.enabled {
		return ""
	}
	return s.ctrl.Key()
}

// Count returns the number of slides.
func (s *Scroller) Count() int {
	if !s.enabled {
		return 0
	}
	return s.registry.Count()
}

// Slides returns the slide descriptors.
func (s *Scroller) Slides() []slides.Slide {
	if !s.enabled {
		return nil
	}
	return s.registry.Slides()
}

// Resolve maps a target to a slide index without moving.
func (s *Scroller) Resolve(t slides.Target) int {
	if !s.enabled {
		return 0
	}
	return s.registry.Resolve(t)
}

// Navigation returns the generated navigation links.
func (s *Scroller) Navigation() []*deck.Element {
	if !s.enabled {
		return nil
	}
	return s.registry.Links()
}

// Backend returns the name of the rendering backend in use.
func (s *Scroller) Backend() string {
	if !s.enabled {
		return ""
	}
	return s.ctrl.Backend().Name()
}
