package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameInterval paces transition redraws at about 60fps.
const frameInterval = time.Second / 60

// frameMsg advances the running transition. Frames from an earlier
// generation are stale and dropped.
type frameMsg struct {
	gen int
	at  time.Time
}

func frameCmd(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

// animation tracks the displayed container offset, in percent of the slide
// height, while it eases towards the backend's target offset.
type animation struct {
	gen      int
	active   bool
	from     float64
	to       float64
	pos      float64
	start    time.Time
	duration time.Duration
}

// begin starts moving from the displayed position to target. A zero
// duration settles on the next frame.
func (a *animation) begin(target float64, duration time.Duration, now time.Time) tea.Cmd {
	a.gen++
	a.active = true
	a.from = a.pos
	a.to = target
	a.start = now
	a.duration = duration
	return frameCmd(a.gen)
}

// step moves pos for a frame at now and reports whether the transition has
// finished.
func (a *animation) step(now time.Time) bool {
	if !a.active {
		return false
	}
	p := 1.0
	if a.duration > 0 {
		p = float64(now.Sub(a.start)) / float64(a.duration)
	}
	if p >= 1 {
		a.pos = a.to
		a.active = false
		return true
	}
	if p < 0 {
		p = 0
	}
	a.pos = a.from + (a.to-a.from)*easeInOut(p)
	return false
}

// cancel abandons the running transition without settling it.
func (a *animation) cancel() {
	a.gen++
	a.active = false
}

// easeInOut is the cubic ease-in-out curve on [0,1].
func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	f := 2*p - 2
	return 1 + f*f*f/2
}
