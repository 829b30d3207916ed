package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/slidescroll/pkg/deck"
	"github.com/vanderheijden86/slidescroll/pkg/location"
	"github.com/vanderheijden86/slidescroll/pkg/slides"
	"github.com/vanderheijden86/slidescroll/pkg/slidescroll"
)

const talk = `# Intro {#intro data-slidescroll-title="Welcome"}

Hello there.

---

# Features {#features data-slidescroll-title="Features"}

- keyboard
- wheel

---

# Outro {#outro data-slidescroll-title="Thanks"}
`

var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type harness struct {
	m       Model
	loc     *location.Location
	s       *slidescroll.Scroller
	moved   []string
	copied  []string
	fakeNow time.Time
}

func newHarness(t *testing.T, fragment string, overrides ...slidescroll.Option) *harness {
	t.Helper()
	return newDeckHarness(t, talk, fragment, overrides...)
}

func newDeckHarness(t *testing.T, src, fragment string, overrides ...slidescroll.Option) *harness {
	t.Helper()
	doc, err := deck.Parse("talk.md", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	h := &harness{loc: location.New(fragment), fakeNow: epoch}
	overrides = append(overrides, slidescroll.WithMoved(func(index int, key string) {
		h.moved = append(h.moved, key)
	}))
	h.s = slidescroll.New(doc, h.loc, slides.DefaultOptions(), overrides...)
	h.m = NewModel(h.s, h.loc, "talk.md",
		WithGlamourStyle("notty"),
		WithClock(func() time.Time { return h.fakeNow }),
		WithClipboard(func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		}),
	)
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

// settle delivers the frame that finishes the running transition.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	if !h.m.anim.active {
		t.Fatal("Expected a running transition")
	}
	h.send(frameMsg{gen: h.m.anim.gen, at: h.m.anim.start.Add(h.m.anim.duration)})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelSettlesInitialSlide(t *testing.T) {
	h := newHarness(t, "features")

	if h.m.Init() == nil {
		t.Fatal("Expected Init to schedule the initial frame")
	}
	if !h.s.Transitioning() {
		t.Fatal("Expected the initial show to await completion")
	}
	if h.m.anim.duration != 0 {
		t.Errorf("Expected no animation for the initial slide, got %v", h.m.anim.duration)
	}
	h.settle(t)

	if h.s.Transitioning() {
		t.Error("Expected transition finished after the first frame")
	}
	if got := strings.Join(h.moved, ","); got != "features" {
		t.Errorf("Expected moved [features], got %q", got)
	}
}

func TestKeyDownAnimatesTransform(t *testing.T) {
	h := newHarness(t, "")
	h.settle(t)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyDown})
	if cmd == nil {
		t.Fatal("Expected a frame command")
	}
	if h.s.Current() != 1 || !h.s.Transitioning() {
		t.Fatalf("Expected transition to 1, got state %+v", h.s.State())
	}
	if h.m.anim.to != -100 || h.m.anim.duration != time.Second {
		t.Fatalf("Expected 1s animation to -100, got to=%v duration=%v", h.m.anim.to, h.m.anim.duration)
	}

	h.send(frameMsg{gen: h.m.anim.gen, at: epoch.Add(500 * time.Millisecond)})
	if !h.s.Transitioning() {
		t.Fatal("Expected transition still running halfway")
	}
	if h.m.anim.pos != -50 {
		t.Errorf("Expected eased midpoint -50, got %v", h.m.anim.pos)
	}

	h.settle(t)
	if h.s.Transitioning() {
		t.Error("Expected transition finished")
	}
	if h.m.anim.pos != -100 {
		t.Errorf("Expected resting offset -100, got %v", h.m.anim.pos)
	}
	if got := strings.Join(h.moved, ","); got != "intro,features" {
		t.Errorf("Expected moved [intro features], got %q", got)
	}
}

func TestOffsetBackendJumps(t *testing.T) {
	h := newHarness(t, "", slidescroll.WithCSS3(false))
	h.settle(t)

	h.send(tea.KeyMsg{Type: tea.KeyEnd})
	if h.m.anim.duration != 0 {
		t.Errorf("Expected offset backend to settle on the next frame, got %v", h.m.anim.duration)
	}
	h.settle(t)
	if h.s.Current() != 2 || h.s.Transitioning() {
		t.Errorf("Expected settled on 2, got %+v", h.s.State())
	}
}

func TestStaleFrameIgnored(t *testing.T) {
	h := newHarness(t, "")
	stale := h.m.anim.gen - 1

	h.send(frameMsg{gen: stale, at: epoch.Add(time.Hour)})
	if !h.s.Transitioning() {
		t.Error("Expected stale frame to leave the transition running")
	}
}

func TestGotoPrompt(t *testing.T) {
	h := newHarness(t, "")
	h.settle(t)

	h.send(keyRunes(":"))
	if !h.m.prompting {
		t.Fatal("Expected prompt open")
	}
	// Navigation keys belong to the field while it has focus.
	h.send(keyRunes("j"))
	if h.s.Current() != 0 {
		t.Errorf("Expected j typed into the prompt, moved to %d", h.s.Current())
	}
	h.send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.send(keyRunes("3"))
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if h.m.prompting {
		t.Error("Expected prompt closed")
	}
	if h.s.Current() != 2 {
		t.Errorf("Expected slide 2, got %d", h.s.Current())
	}
	if h.loc.Fragment() != "outro" {
		t.Errorf("Expected fragment outro, got %q", h.loc.Fragment())
	}
}

func TestGotoPromptUnknownKey(t *testing.T) {
	h := newHarness(t, "features")
	h.settle(t)

	h.send(keyRunes(":"))
	h.send(keyRunes("nope"))
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if h.s.Current() != 0 {
		t.Errorf("Expected unknown key to land on 0, got %d", h.s.Current())
	}
	if msg, isErr := h.m.Status(); !isErr || !strings.Contains(msg, "nope") {
		t.Errorf("Expected error status naming the key, got %q (error=%v)", msg, isErr)
	}
}

func TestGotoPromptNumericKey(t *testing.T) {
	src := `# Intro {#intro}

---

# Year in review {data-slidescroll-url="2024"}

---

# Outro {#outro}
`
	h := newDeckHarness(t, src, "", slidescroll.WithCSS3(false))
	h.settle(t)

	h.send(keyRunes(":"))
	h.send(keyRunes("2024"))
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.s.Current() != 1 || h.loc.Fragment() != "2024" {
		t.Errorf("Expected key 2024 to reach slide 1, got %d / %q", h.s.Current(), h.loc.Fragment())
	}
	if msg, isErr := h.m.Status(); isErr {
		t.Errorf("Expected no error, got %q", msg)
	}
	h.settle(t)

	// Numbers that are not keys still address slides by position.
	h.send(keyRunes(":"))
	h.send(keyRunes("3"))
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.s.Current() != 2 {
		t.Errorf("Expected slide number 3 to reach 2, got %d", h.s.Current())
	}
}

func TestLinkDigitKeys(t *testing.T) {
	h := newHarness(t, "")
	h.settle(t)

	h.send(keyRunes("2"))
	if h.loc.Fragment() != "features" || h.s.Current() != 1 {
		t.Errorf("Expected link 2 to reach features, got %q / %d", h.loc.Fragment(), h.s.Current())
	}
	h.settle(t)

	h.send(keyRunes("9"))
	if h.s.Current() != 1 {
		t.Errorf("Expected missing link to be ignored, got %d", h.s.Current())
	}
}

func TestHistoryKeys(t *testing.T) {
	h := newHarness(t, "")
	h.settle(t)
	h.send(tea.KeyMsg{Type: tea.KeyDown})
	h.settle(t)

	h.send(keyRunes("["))
	if h.s.Current() != 0 {
		t.Errorf("Expected back to reach 0, got %d", h.s.Current())
	}
	h.settle(t)

	h.send(keyRunes("]"))
	if h.s.Current() != 1 {
		t.Errorf("Expected forward to reach 1, got %d", h.s.Current())
	}
}

func TestCopyDeepLink(t *testing.T) {
	h := newHarness(t, "outro")
	h.send(keyRunes("y"))

	if len(h.copied) != 1 || h.copied[0] != "talk.md#outro" {
		t.Errorf("Expected talk.md#outro copied, got %v", h.copied)
	}
	if msg, _ := h.m.Status(); !strings.Contains(msg, "talk.md#outro") {
		t.Errorf("Expected status to show the link, got %q", msg)
	}
}

func TestCopyDeepLinkError(t *testing.T) {
	h := newHarness(t, "")
	h.m.copy = func(string) error { return errors.New("no clipboard") }
	h.send(keyRunes("y"))

	if msg, isErr := h.m.Status(); !isErr || !strings.Contains(msg, "no clipboard") {
		t.Errorf("Expected clipboard error status, got %q", msg)
	}
}

func TestToggleEnable(t *testing.T) {
	h := newHarness(t, "features")
	h.settle(t)

	h.send(keyRunes("e"))
	if h.s.Enabled() {
		t.Fatal("Expected disabled")
	}
	if !strings.Contains(h.m.View(), "navigation off") {
		t.Error("Expected footer to show navigation off")
	}
	h.send(tea.KeyMsg{Type: tea.KeyDown})
	if h.s.Current() != 0 || h.m.anim.active {
		t.Error("Expected keys ignored while disabled")
	}

	h.send(keyRunes("e"))
	if !h.s.Enabled() || h.s.Current() != 1 {
		t.Fatalf("Expected re-enabled on features, got enabled=%v current=%d", h.s.Enabled(), h.s.Current())
	}
	if h.m.anim.from != 0 || h.m.anim.to != -100 {
		t.Errorf("Expected animation from the top, got %v -> %v", h.m.anim.from, h.m.anim.to)
	}
}

func TestMouseWheel(t *testing.T) {
	h := newHarness(t, "")
	h.settle(t)

	h.send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if h.s.Current() != 1 {
		t.Fatalf("Expected wheel down to advance, got %d", h.s.Current())
	}
	h.settle(t)

	// Within the debounce window.
	h.send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if h.s.Current() != 1 {
		t.Errorf("Expected second wheel event dropped, got %d", h.s.Current())
	}
}

func TestMouseDragSwipe(t *testing.T) {
	h := newHarness(t, "features")
	h.settle(t)

	h.send(tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	h.send(tea.MouseMsg{X: 10, Y: 7, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if h.s.Current() != 1 {
		t.Fatalf("Expected 32px drag to stay, got %d", h.s.Current())
	}
	h.send(tea.MouseMsg{X: 10, Y: 9, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if h.s.Current() != 0 {
		t.Fatalf("Expected downward drag to go back, got %d", h.s.Current())
	}
	h.send(tea.MouseMsg{X: 10, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if h.s.Current() != 0 {
		t.Errorf("Expected one intent per gesture, got %d", h.s.Current())
	}
	h.send(tea.MouseMsg{X: 10, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if h.m.dragging {
		t.Error("Expected drag finished on release")
	}
}

func TestNavBarClick(t *testing.T) {
	h := newHarness(t, "")
	h.settle(t)

	zones := navZones(h.s.Navigation(), h.m.width)
	if len(zones) != 3 {
		t.Fatalf("Expected 3 zones, got %d", len(zones))
	}
	row := h.m.slideHeight()
	h.send(tea.MouseMsg{X: zones[2].start + 1, Y: row, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	if h.loc.Fragment() != "outro" || h.s.Current() != 2 {
		t.Errorf("Expected click to reach outro, got %q / %d", h.loc.Fragment(), h.s.Current())
	}
}

func TestFileChangedReloads(t *testing.T) {
	h := newHarness(t, "features")
	h.settle(t)
	h.m.load = func(path string) (*deck.Document, error) {
		if path != "talk.md" {
			t.Errorf("Expected reload of talk.md, got %q", path)
		}
		return deck.Parse(path, []byte(talk+"\n---\n\n# Extra {#extra}\n"))
	}

	h.send(FileChangedMsg{})
	if h.s.Count() != 4 {
		t.Fatalf("Expected 4 slides after reload, got %d", h.s.Count())
	}
	if h.s.Current() != 1 {
		t.Errorf("Expected fragment kept on reload, got %d", h.s.Current())
	}
	if msg, _ := h.m.Status(); msg != "Reloaded" {
		t.Errorf("Expected Reloaded status, got %q", msg)
	}
}

func TestFileChangedReloadError(t *testing.T) {
	h := newHarness(t, "")
	h.m.load = func(string) (*deck.Document, error) { return nil, errors.New("gone") }

	h.send(FileChangedMsg{})
	if h.s.Count() != 3 {
		t.Errorf("Expected old deck kept, got %d slides", h.s.Count())
	}
	if _, isErr := h.m.Status(); !isErr {
		t.Error("Expected error status")
	}
}

func TestViewLayout(t *testing.T) {
	h := newHarness(t, "features")
	h.settle(t)
	h.send(tea.WindowSizeMsg{Width: 60, Height: 12})

	view := h.m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 12 {
		t.Fatalf("Expected 12 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Features") {
		t.Errorf("Expected features slide at the top, got %q", lines[0])
	}
	if !strings.Contains(lines[10], "Welcome") || !strings.Contains(lines[10], "Thanks") {
		t.Errorf("Expected nav bar on row 10, got %q", lines[10])
	}
	if !strings.Contains(lines[11], "[2/3]") || !strings.Contains(lines[11], "features") {
		t.Errorf("Expected footer position, got %q", lines[11])
	}
}

func TestViewFollowsSelectedSlides(t *testing.T) {
	src := `---
pages-selector: "> .slide"
---
# Alpha {.slide}

First slide.

---

Speaker notes only

---

# Bravo {.slide}

Second slide.
`
	h := newDeckHarness(t, src, "", slidescroll.WithCSS3(false))
	h.settle(t)
	h.send(tea.WindowSizeMsg{Width: 60, Height: 12})
	if h.s.Count() != 2 {
		t.Fatalf("Expected 2 slides, got %d", h.s.Count())
	}

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	h.settle(t)
	if h.s.Current() != 1 {
		t.Fatalf("Expected slide 1, got %d", h.s.Current())
	}
	view := h.m.renderSlides()
	if !strings.Contains(view, "Bravo") {
		t.Errorf("Expected Bravo on screen, got:\n%s", view)
	}
	if strings.Contains(view, "Speaker notes") {
		t.Errorf("Expected unselected section hidden, got:\n%s", view)
	}

	// Disabled, the document shows every section from the top.
	h.send(keyRunes("e"))
	if view := h.m.renderSlides(); !strings.Contains(view, "Alpha") {
		t.Errorf("Expected the first section when disabled, got:\n%s", view)
	}
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t, "intro")
	h.settle(t)
	h.send(keyRunes("?"))
	view := h.m.View()
	if !strings.Contains(view, "slidescroll keys") {
		t.Error("Expected help overlay")
	}
	if strings.Contains(view, "back") || strings.Contains(view, "forward") {
		t.Errorf("Expected history keys hidden without history, got:\n%s", view)
	}
	h.send(tea.KeyMsg{Type: tea.KeyEsc})

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	h.settle(t)
	h.send(keyRunes("?"))
	if view := h.m.View(); !strings.Contains(view, "back") {
		t.Errorf("Expected back listed once there is history, got:\n%s", view)
	}
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.showHelp {
		t.Error("Expected help closed")
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t, "")
	cmd := h.send(keyRunes("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
