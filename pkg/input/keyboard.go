package input

// Key names understood by the keyboard adapter.
const (
	KeySpace = "space"
	KeyUp    = "up"
	KeyDown  = "down"
	KeyHome  = "home"
	KeyEnd   = "end"
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key   string
	Shift bool
	// InTextField is set while focus is in a text entry field; such events
	// belong to the field.
	InTextField bool
}

func (KeyEvent) isEvent() {}

// KeyIntent maps a key press to an intent.
func KeyIntent(ev KeyEvent) (Intent, bool) {
	switch {
	case ev.Key == KeySpace && !ev.Shift, ev.Key == KeyDown:
		return Next, true
	case ev.Key == KeySpace && ev.Shift, ev.Key == KeyUp:
		return Previous, true
	case ev.Key == KeyHome:
		return First, true
	case ev.Key == KeyEnd:
		return Last, true
	}
	return Intent{}, false
}

// Keyboard navigates with space, arrows, home and end.
type Keyboard struct {
	nav Navigator
}

// NewKeyboard creates the keyboard adapter.
func NewKeyboard(nav Navigator) *Keyboard {
	return &Keyboard{nav: nav}
}

// Name implements Adapter.
func (k *Keyboard) Name() string { return "keyboard" }

// Handle implements Adapter. Only mapped keys suppress the default action.
func (k *Keyboard) Handle(ev Event) bool {
	ke, ok := ev.(KeyEvent)
	if !ok || ke.InTextField {
		return false
	}
	intent, ok := KeyIntent(ke)
	if !ok {
		return false
	}
	Apply(k.nav, k.Name(), intent)
	return true
}
