package input

import "time"

// WheelSettle is added to the animation duration when debouncing wheel
// input, so trackpad momentum does not scroll twice.
const WheelSettle = 500 * time.Millisecond

// WheelEvent is a scroll wheel notch. Positive Delta scrolls up.
type WheelEvent struct {
	Delta float64
}

func (WheelEvent) isEvent() {}

// WheelOption configures a Wheel.
type WheelOption func(*Wheel)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) WheelOption {
	return func(w *Wheel) {
		w.now = now
	}
}

// Wheel navigates one slide per accepted wheel event.
type Wheel struct {
	nav    Navigator
	window time.Duration
	now    func() time.Time
	last   time.Time
	seen   bool
}

// NewWheel creates the wheel adapter. Events closer than
// animationDuration+WheelSettle to the last accepted one are dropped.
func NewWheel(nav Navigator, animationDuration time.Duration, opts ...WheelOption) *Wheel {
	w := &Wheel{
		nav:    nav,
		window: animationDuration + WheelSettle,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name implements Adapter.
func (w *Wheel) Name() string { return "wheel" }

// Window returns the debounce window.
func (w *Wheel) Window() time.Duration { return w.window }

// Handle implements Adapter. Dropped events suppress the default action.
func (w *Wheel) Handle(ev Event) bool {
	we, ok := ev.(WheelEvent)
	if !ok {
		return false
	}
	now := w.now()
	if w.seen && now.Sub(w.last) < w.window {
		return true
	}

	intent := Next
	if we.Delta > 0 {
		intent = Previous
	}
	Apply(w.nav, w.Name(), intent)
	w.last = now
	w.seen = true
	return false
}
