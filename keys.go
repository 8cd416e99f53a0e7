package screencheck

// Key names a key press in tmux's key table. Session.SendKeys sends a Key by
// name and a string as literal text, so "Enter" types five letters while
// Enter presses the key.
type Key string

func (k Key) String() string { return string(k) }

// Navigation and editing keys.
const (
	Enter     Key = "Enter"
	Escape    Key = "Escape"
	Space     Key = "Space"
	Tab       Key = "Tab"
	BackTab   Key = "BTab"
	Backspace Key = "BSpace"
	Insert    Key = "IC"
	Delete    Key = "DC"

	Up       Key = "Up"
	Down     Key = "Down"
	Left     Key = "Left"
	Right    Key = "Right"
	Home     Key = "Home"
	End      Key = "End"
	PageUp   Key = "PPage"
	PageDown Key = "NPage"
)

// Function keys. Debuggers bind stepping commands to these.
const (
	F1  Key = "F1"
	F2  Key = "F2"
	F3  Key = "F3"
	F4  Key = "F4"
	F5  Key = "F5"
	F6  Key = "F6"
	F7  Key = "F7"
	F8  Key = "F8"
	F9  Key = "F9"
	F10 Key = "F10"
	F11 Key = "F11"
	F12 Key = "F12"
)

// Ctrl is c pressed with Control, e.g. Ctrl('d').
func Ctrl(c rune) Key { return Key("C-" + string(c)) }

// Alt is c pressed with Meta.
func Alt(c rune) Key { return Key("M-" + string(c)) }

// Shift modifies a named key, e.g. Shift(F8) or Shift(Up).
func Shift(k Key) Key { return "S-" + k }

// Repeat returns k n times, ready to spread into SendKeys:
//
//	s.SendKeys(Repeat(Down, 3)...)
func Repeat(k Key, n int) []any {
	keys := make([]any, n)
	for i := range keys {
		keys[i] = k
	}
	return keys
}
