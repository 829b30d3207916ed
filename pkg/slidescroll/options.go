package slidescroll

import (
	"time"

	"github.com/vanderheijden86/slidescroll/pkg/input"
	"github.com/vanderheijden86/slidescroll/pkg/slides"
)

// Option overrides a setting after the deck's own data has been applied.
type Option func(*settings)

type settings struct {
	opts           slides.Options
	touchThreshold float64
	clock          func() time.Time
	observers      []func(MoveEvent)
}

// MovePhase names the point of a transition a MoveEvent reports.
type MovePhase string

const (
	PhaseBeforeMove MovePhase = "before-move"
	PhaseMoved      MovePhase = "moved"
)

// MoveEvent describes a transition to observers. Unlike the raw hooks it
// carries the target key in both phases.
type MoveEvent struct {
	Phase MovePhase
	From  int
	To    int
	Key   string
}

// WithPagesSelector sets the slide selector.
func WithPagesSelector(sel string) Option {
	return func(s *settings) { s.opts.PagesSelector = sel }
}

// WithCSS3 selects the transform backend (true) or the offset backend.
func WithCSS3(css3 bool) Option {
	return func(s *settings) { s.opts.CSS3 = css3 }
}

// WithInitialPage sets the slide shown on enable.
func WithInitialPage(page int) Option {
	return func(s *settings) { s.opts.InitialPage = page }
}

// WithGenerateNavigation toggles the generated navigation bar.
func WithGenerateNavigation(on bool) Option {
	return func(s *settings) { s.opts.GenerateNavigation = on }
}

// WithActiveClassName sets the class of the active navigation link.
func WithActiveClassName(name string) Option {
	return func(s *settings) { s.opts.ActiveClassName = name }
}

// WithAnimationDuration sets the transition time.
func WithAnimationDuration(d time.Duration) Option {
	return func(s *settings) { s.opts.AnimationDuration = d }
}

// WithNamespace sets the class and data prefix.
func WithNamespace(ns string) Option {
	return func(s *settings) { s.opts.Namespace = ns }
}

// WithBeforeMove registers the before-move hook.
func WithBeforeMove(fn func(previous, target int)) Option {
	return func(s *settings) { s.opts.BeforeMove = fn }
}

// WithMoved registers the moved hook.
func WithMoved(fn func(index int, key string)) Option {
	return func(s *settings) { s.opts.Moved = fn }
}

// WithObserver adds fn to the observers notified after the hooks of each
// phase. Observers accumulate; they are not replaced.
func WithObserver(fn func(MoveEvent)) Option {
	return func(s *settings) { s.observers = append(s.observers, fn) }
}

// WithTouchThreshold sets the swipe distance in pixels.
func WithTouchThreshold(px float64) Option {
	return func(s *settings) { s.touchThreshold = px }
}

// WithClock replaces time.Now for wheel debouncing and transition timing.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.clock = now }
}

// resolveSettings layers base < container data < overrides. A numeric
// "<ns>-initial-page" annotation on the container wins over everything.
func resolveSettings(data map[string]any, base slides.Options, overrides []Option) settings {
	s := settings{
		opts:           base.ApplyData(data),
		touchThreshold: input.DefaultSwipeThreshold,
		clock:          time.Now,
	}
	for _, o := range overrides {
		o(&s)
	}
	s.opts = s.opts.Normalized()
	if n, ok := slides.AsInt(data[s.opts.Class("initial-page")]); ok {
		s.opts.InitialPage = n
	}
	return s
}
