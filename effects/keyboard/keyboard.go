// Package keyboard maps key presses onto activations, so controls that
// react to pointer clicks also react to Enter and Space.
package keyboard

// Key identifies a non-character key. Character keys use KeyRune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

var keyNames = map[Key]string{
	KeyNone:       "none",
	KeyRune:       "rune",
	KeyEnter:      "enter",
	KeyEscape:     "escape",
	KeyTab:        "tab",
	KeyBackspace:  "backspace",
	KeyArrowUp:    "arrow-up",
	KeyArrowDown:  "arrow-down",
	KeyArrowLeft:  "arrow-left",
	KeyArrowRight: "arrow-right",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyEvent is a key-down event as delivered by the presentation layer.
type KeyEvent struct {
	Key  Key
	Rune rune // set when Key is KeyRune

	defaultPrevented bool
}

// PreventDefault suppresses the host's own handling of the event,
// such as scrolling the page on Space.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// IsActivation reports whether ev is Enter or Space.
func IsActivation(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEnter:
		return true
	case KeyRune:
		return ev.Rune == ' '
	default:
		return false
	}
}

// HandleKeyDown prevents the default and calls activate when ev is an
// activation key. It reports whether the event was handled.
func HandleKeyDown(ev *KeyEvent, activate func()) bool {
	if ev == nil || !IsActivation(*ev) {
		return false
	}
	ev.PreventDefault()
	if activate != nil {
		activate()
	}
	return true
}
