// Package ui is the terminal front end of slidescroll: a bubbletea model
// that renders the slide strip at the container's offset, animates
// transitions for the transform backend and feeds keyboard, mouse and
// navigation-bar input to the scroller.
package ui

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vanderheijden86/slidescroll/pkg/debug"
	"github.com/vanderheijden86/slidescroll/pkg/deck"
	"github.com/vanderheijden86/slidescroll/pkg/input"
	"github.com/vanderheijden86/slidescroll/pkg/location"
	"github.com/vanderheijden86/slidescroll/pkg/slides"
	"github.com/vanderheijden86/slidescroll/pkg/slidescroll"
	"github.com/vanderheijden86/slidescroll/pkg/watcher"
)

// DefaultCellHeight is the assumed pixel height of a terminal row, used to
// turn mouse drags into touch distances.
const DefaultCellHeight = 16

// FileChangedMsg is sent when the deck file changes on disk
type FileChangedMsg struct{}

// WatchFileCmd returns a command that waits for the next change of the deck
// and sends FileChangedMsg. It returns nothing once ctx is done.
func WatchFileCmd(ctx context.Context, w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if !w.Wait(ctx) {
			return nil
		}
		return FileChangedMsg{}
	}
}

// Option configures a Model.
type Option func(*Model)

// WithWatcher enables live reload from w.
func WithWatcher(w *watcher.Watcher) Option {
	return func(m *Model) {
		m.watcher = w
	}
}

// WithContext bounds background commands such as the file watch.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithCellHeight sets the pixel height of one terminal row.
func WithCellHeight(px int) Option {
	return func(m *Model) {
		if px > 0 {
			m.cellHeight = px
		}
	}
}

// WithGlamourStyle selects the markdown style: auto, dark, light, notty...
func WithGlamourStyle(style string) Option {
	return func(m *Model) {
		m.renderer = newSlideRenderer(style)
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copy = write
	}
}

// WithLoader replaces deck.Load for reloads.
func WithLoader(load func(path string) (*deck.Document, error)) Option {
	return func(m *Model) {
		m.load = load
	}
}

// Model is the slide viewer.
type Model struct {
	ctx      context.Context
	scroller *slidescroll.Scroller
	loc      *location.Location
	deckPath string

	theme     Theme
	keys      keyMap
	help      help.Model
	gotoInput textinput.Model
	prompting bool
	showHelp  bool

	width      int
	height     int
	cellHeight int
	renderer   *slideRenderer

	anim     animation
	dragging bool

	watcher *watcher.Watcher
	now     func() time.Time
	copy    func(string) error
	load    func(path string) (*deck.Document, error)

	statusMsg     string
	statusIsError bool
	initCmd       tea.Cmd
}

// NewModel creates the viewer for an enabled scroller. loc must be the
// location the scroller was created with.
func NewModel(s *slidescroll.Scroller, loc *location.Location, deckPath string, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "key or number"
	ti.Prompt = ": "
	ti.CharLimit = 64
	ti.Width = 30

	m := Model{
		ctx:        context.Background(),
		scroller:   s,
		loc:        loc,
		deckPath:   deckPath,
		theme:      DefaultTheme(lipgloss.NewRenderer(os.Stdout)),
		keys:       defaultKeyMap(),
		help:       help.New(),
		gotoInput:  ti,
		width:      80,
		height:     24,
		cellHeight: DefaultCellHeight,
		renderer:   newSlideRenderer("auto"),
		now:        time.Now,
		copy:       clipboard.WriteAll,
		load:       deck.Load,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = m.width
	m.renderer.resize(m.width)

	// Start where the deck already is instead of animating in from the top.
	m.anim.pos = m.containerOffset()
	m.initCmd = m.sync()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, WatchFileCmd(m.ctx, m.watcher))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.renderer.resize(msg.Width)
		return m, nil

	case frameMsg:
		if msg.gen != m.anim.gen {
			return m, nil
		}
		if !m.anim.step(msg.at) {
			return m, frameCmd(m.anim.gen)
		}
		m.scroller.TransitionEnd()
		// A moved hook may already have started the next transition.
		return m, m.sync()

	case FileChangedMsg:
		m.reload()
		return m, tea.Batch(m.sync(), WatchFileCmd(m.ctx, m.watcher))

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.sync()

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear status message on any keypress
	m.statusMsg = ""
	m.statusIsError = false

	if m.prompting {
		return m.handlePromptKeys(msg)
	}

	if m.showHelp {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case !m.scroller.Enabled():
		return m, nil
	case key.Matches(msg, m.keys.Goto):
		m.prompting = true
		m.gotoInput.SetValue("")
		return m, m.gotoInput.Focus()
	case key.Matches(msg, m.keys.Back):
		m.loc.Back()
	case key.Matches(msg, m.keys.Forward):
		m.loc.Forward()
	case key.Matches(msg, m.keys.Copy):
		m.copyLink()
	case key.Matches(msg, m.keys.Link):
		n := int(msg.String()[0] - '1')
		if links := m.scroller.Navigation(); n < len(links) {
			m.scroller.Dispatch(input.LinkEvent{Link: links[n]})
		}
	default:
		if ev, ok := keyEvent(msg.String()); ok {
			m.scroller.Dispatch(ev)
		}
	}
	return m, m.sync()
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Navigation keys typed here belong to the field; the keyboard adapter
	// sees them flagged and lets them through.
	if ev, ok := keyEvent(msg.String()); ok {
		ev.InTextField = true
		m.scroller.Dispatch(ev)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.prompting = false
		m.gotoInput.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.gotoInput.Value())
		m.prompting = false
		m.gotoInput.Blur()
		if value != "" {
			m.gotoValue(value)
		}
		return m, m.sync()
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// gotoValue navigates to a slide key or a 1-based slide number. Keys win, so
// numeric ids stay reachable. Unknown targets land on the first slide, like
// any other unresolvable target.
func (m *Model) gotoValue(value string) {
	var target slides.Target
	k := strings.TrimPrefix(value, "#")
	if m.hasKey(k) {
		target = slides.Key(k)
	} else if n, err := strconv.Atoi(value); err == nil {
		target = slides.Index(n - 1)
		if n < 1 || n > m.scroller.Count() {
			m.setError(fmt.Sprintf("No slide %d, showing the first", n))
		}
	} else {
		target = slides.Key(k)
		m.setError(fmt.Sprintf("No slide %q, showing the first", k))
	}
	input.Apply(m.scroller, "prompt", input.Goto(target))
}

func (m *Model) hasKey(k string) bool {
	for _, s := range m.scroller.Slides() {
		if s.Key == k {
			return true
		}
	}
	return false
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.scroller.Enabled() || m.prompting || m.showHelp {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroller.Dispatch(input.WheelEvent{Delta: 1})
		return
	case tea.MouseButtonWheelDown:
		m.scroller.Dispatch(input.WheelEvent{Delta: -1})
		return
	}

	p := input.Point{X: float64(msg.X), Y: float64(msg.Y * m.cellHeight)}
	if m.dragging {
		switch msg.Action {
		case tea.MouseActionMotion:
			m.scroller.Dispatch(input.TouchEvent{Phase: input.TouchMove, Touches: []input.Point{p}})
		case tea.MouseActionRelease:
			m.scroller.Dispatch(input.TouchEvent{Phase: input.TouchEnd})
			m.dragging = false
		}
		return
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if m.navVisible() && msg.Y == m.slideHeight() {
		if link := zoneAt(navZones(m.scroller.Navigation(), m.width), msg.X); link != nil {
			m.scroller.Dispatch(input.LinkEvent{Link: link})
		}
		return
	}
	if msg.Y < m.slideHeight() {
		m.scroller.Dispatch(input.TouchEvent{Phase: input.TouchStart, Touches: []input.Point{p}})
		m.dragging = true
	}
}

func (m *Model) toggle() {
	if m.scroller.Enabled() {
		m.scroller.Disable()
		m.anim.cancel()
		m.anim.pos = 0
		m.dragging = false
		m.renderer.reset()
		m.statusMsg = "Navigation disabled"
		return
	}
	m.scroller.Enable()
	m.renderer.reset()
	m.statusMsg = "Navigation enabled"
}

func (m *Model) copyLink() {
	href := location.Href(m.deckPath, m.loc.Fragment())
	if err := m.copy(href); err != nil {
		m.setError(fmt.Sprintf("Clipboard error: %v", err))
		return
	}
	m.statusMsg = fmt.Sprintf("Copied %s", href)
}

func (m *Model) reload() {
	doc, err := m.load(m.deckPath)
	if err != nil {
		m.setError(fmt.Sprintf("Reload failed: %v", err))
		return
	}
	m.anim.cancel()
	m.scroller.Reload(doc)
	m.renderer.reset()
	m.statusMsg = "Reloaded"
	debug.Log("ui: reloaded %s", m.deckPath)
}

func (m *Model) setError(msg string) {
	m.statusMsg = msg
	m.statusIsError = true
}

// sync starts a renderer transition when the controller is waiting for one.
// Transform moves ease over the animation duration; offset moves and moves
// that go nowhere settle on the next frame.
func (m *Model) sync() tea.Cmd {
	if !m.scroller.Enabled() || !m.scroller.Transitioning() {
		return nil
	}
	target := m.containerOffset()
	if m.anim.active && m.anim.to == target {
		return nil
	}
	var duration time.Duration
	if m.scroller.Backend() == "transform" && target != m.anim.pos {
		duration = m.scroller.Options().AnimationDuration
	}
	return m.anim.begin(target, duration, m.now())
}

func (m *Model) containerOffset() float64 {
	pct, _, ok := slides.ContainerOffset(m.scroller.Document().Container)
	if !ok {
		return 0
	}
	return float64(pct)
}

// --- layout ----------------------------------------------------------------

func (m Model) navVisible() bool {
	return len(m.scroller.Navigation()) > 0
}

// slideHeight is the number of rows one slide occupies.
func (m Model) slideHeight() int {
	h := m.height - 1
	if m.navVisible() {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// sources returns the markdown of each registered slide, or of each section
// when navigation is disabled. The strip must follow the registry: the
// container offset is a multiple of the slide index.
func (m Model) sources() []string {
	var out []string
	if m.scroller.Enabled() {
		for _, s := range m.scroller.Slides() {
			out = append(out, s.Element.Source)
		}
		return out
	}
	for _, el := range m.scroller.Document().Container.Children() {
		out = append(out, el.Source)
	}
	return out
}

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	parts := []string{m.renderSlides()}
	if m.navVisible() {
		zones := navZones(m.scroller.Navigation(), m.width)
		parts = append(parts, renderNavBar(zones, m.scroller.Options().ActiveClassName, m.theme))
	}
	parts = append(parts, m.renderFooter())
	return strings.Join(parts, "\n")
}

// renderSlides draws the window of the slide strip the container offset
// points at. Each slide is one slide height tall; the offset is in percent
// of that height.
func (m Model) renderSlides() string {
	height := m.slideHeight()
	sources := m.sources()
	if len(sources) == 0 {
		lines := fitLines(m.theme.MutedText.Render(fmt.Sprintf("No slides in %s", m.deckPath)), height)
		return strings.Join(lines, "\n")
	}

	first := 0
	if m.scroller.Enabled() {
		first = int(math.Round(-m.anim.pos * float64(height) / 100))
	}

	fitted := make(map[int][]string)
	lines := make([]string, 0, height)
	for row := first; row < first+height; row++ {
		i := row / height
		if row < 0 || i >= len(sources) {
			lines = append(lines, "")
			continue
		}
		slide, ok := fitted[i]
		if !ok {
			slide = fitLines(m.renderer.render(i, sources[i]), height)
			fitted[i] = slide
		}
		lines = append(lines, ansi.Truncate(slide[row%height], m.width, ""))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	if m.prompting {
		return m.gotoInput.View()
	}

	var left string
	if m.scroller.Enabled() {
		st := m.scroller.State()
		count := m.scroller.Count()
		pos := 0
		if count > 0 {
			pos = st.Current + 1
		}
		left = m.theme.Position.Render(fmt.Sprintf("[%d/%d]", pos, count)) + " " +
			m.theme.KeyText.Render(m.scroller.Key())
		if st.Transitioning {
			left += " " + m.theme.Transitioning.Render("◆")
		}
	} else {
		left = m.theme.MutedText.Render("navigation off")
	}

	var right string
	switch {
	case m.statusMsg != "" && m.statusIsError:
		right = m.theme.ErrorText.Render(m.statusMsg)
	case m.statusMsg != "":
		right = m.theme.StatusText.Render(m.statusMsg)
	default:
		right = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return ansi.Truncate(left+strings.Repeat(" ", gap)+right, m.width, "…")
}

func (m Model) renderHelp() string {
	title := m.theme.Header.Render("slidescroll keys")
	// History keys are listed only when they would move.
	keys := m.keys
	keys.Back.SetEnabled(m.loc.CanBack())
	keys.Forward.SetEnabled(m.loc.CanForward())
	body := m.help.FullHelpView(keys.FullHelp())
	hint := m.theme.MutedText.Render("press ? or esc to close")
	divider := RenderDivider(min(m.width, lipgloss.Width(body)))
	return lipgloss.JoinVertical(lipgloss.Left, title, divider, body, divider, hint)
}

// Status returns the current status line message and whether it is an
// error.
func (m Model) Status() (string, bool) {
	return m.statusMsg, m.statusIsError
}
