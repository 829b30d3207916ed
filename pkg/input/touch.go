package input

import "math"

// DefaultSwipeThreshold is the vertical travel, in pixels, that makes a swipe.
const DefaultSwipeThreshold = 50

// TouchPhase is the stage of a touch gesture.
type TouchPhase int

const (
	TouchStart TouchPhase = iota
	TouchMove
	TouchEnd
)

// Point is a touch position in pixels.
type Point struct {
	X, Y float64
}

// TouchEvent reports the active touch points of a gesture.
type TouchEvent struct {
	Phase   TouchPhase
	Touches []Point
}

func (TouchEvent) isEvent() {}

// Touch turns a vertical swipe into exactly one intent per gesture.
type Touch struct {
	nav       Navigator
	threshold float64
	startY    float64
	tracking  bool
}

// NewTouch creates the touch adapter. A threshold <= 0 means the default.
func NewTouch(nav Navigator, threshold float64) *Touch {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Touch{nav: nav, threshold: threshold}
}

// Name implements Adapter.
func (t *Touch) Name() string { return "touch" }

// Tracking reports whether move events are being followed.
func (t *Touch) Tracking() bool { return t.tracking }

// Handle implements Adapter. Touch events always suppress default scrolling.
func (t *Touch) Handle(ev Event) bool {
	te, ok := ev.(TouchEvent)
	if !ok {
		return false
	}
	switch te.Phase {
	case TouchStart:
		if len(te.Touches) > 0 {
			t.startY = te.Touches[0].Y
			t.tracking = true
		}
	case TouchMove:
		if !t.tracking || len(te.Touches) == 0 {
			break
		}
		// Content follows the finger: pulling up scrolls down.
		delta := t.startY - te.Touches[0].Y
		if delta >= t.threshold {
			Apply(t.nav, t.Name(), Next)
		}
		if delta <= -t.threshold {
			Apply(t.nav, t.Name(), Previous)
		}
		if math.Abs(delta) >= t.threshold {
			t.tracking = false
		}
	case TouchEnd:
		t.tracking = false
	}
	return true
}
