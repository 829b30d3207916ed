package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vanderheijden86/slidescroll/pkg/input"
)

// keyMap lists the viewer's bindings. Navigation keys are translated to
// input.KeyEvent and go through the keyboard adapter like any other input.
type keyMap struct {
	Next     key.Binding
	Previous key.Binding
	First    key.Binding
	Last     key.Binding
	Link     key.Binding
	Goto     key.Binding
	Back     key.Binding
	Forward  key.Binding
	Copy     key.Binding
	Toggle   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys(" ", "down", "j", "pgdown"),
			key.WithHelp("space/↓", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑", "previous"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last"),
		),
		Link: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "nav link"),
		),
		Goto: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to"),
		),
		Back: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "forward"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "enable/disable"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Goto, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last},
		{k.Link, k.Goto, k.Back, k.Forward},
		{k.Copy, k.Toggle, k.Help, k.Quit},
	}
}

// keyEvent translates a terminal key to the keyboard adapter's vocabulary.
// Terminals cannot report shift+space, so space only ever means next.
func keyEvent(s string) (input.KeyEvent, bool) {
	switch s {
	case " ":
		return input.KeyEvent{Key: input.KeySpace}, true
	case "down", "j", "pgdown":
		return input.KeyEvent{Key: input.KeyDown}, true
	case "up", "k", "pgup":
		return input.KeyEvent{Key: input.KeyUp}, true
	case "home", "g":
		return input.KeyEvent{Key: input.KeyHome}, true
	case "end", "G":
		return input.KeyEvent{Key: input.KeyEnd}, true
	}
	return input.KeyEvent{}, false
}
