package event

import "strconv"

// Key is a logical key. Named keys carry Name; character keys carry Char.
type Key struct {
	Name string
	Char string
}

func (k Key) String() string {
	if k.Name != "" {
		return k.Name
	}
	return k.Char
}

// Character builds a character key.
func Character(s string) Key {
	return Key{Char: s}
}

var (
	KeyUnidentified = Key{Name: "unidentified"}
	KeyEnter        = Key{Name: "enter"}
	KeyEscape       = Key{Name: "esc"}
	KeyTab          = Key{Name: "tab"}
	KeySpace        = Key{Name: "space"}
	KeyBackspace    = Key{Name: "backspace"}
	KeyDelete       = Key{Name: "delete"}
	KeyInsert       = Key{Name: "insert"}
	KeyHome         = Key{Name: "home"}
	KeyEnd          = Key{Name: "end"}
	KeyPageUp       = Key{Name: "pgup"}
	KeyPageDown     = Key{Name: "pgdown"}
	KeyUp           = Key{Name: "up"}
	KeyDown         = Key{Name: "down"}
	KeyLeft         = Key{Name: "left"}
	KeyRight        = Key{Name: "right"}
	KeyShift        = Key{Name: "shift"}
	KeyControl      = Key{Name: "control"}
	KeyAlt          = Key{Name: "alt"}
	KeySuper        = Key{Name: "super"}
	KeyCapsLock     = Key{Name: "capslock"}
	KeyNumLock      = Key{Name: "numlock"}
)

// Xkb keysyms for named keys.
var namedKeysyms = map[uint32]Key{
	0xff1b: KeyEscape,
	0xff0d: KeyEnter,
	0xff8d: KeyEnter,
	0xff09: KeyTab,
	0xfe20: KeyTab,
	0x0020: KeySpace,
	0xff08: KeyBackspace,
	0xffff: KeyDelete,
	0xff63: KeyInsert,
	0xff50: KeyHome,
	0xff57: KeyEnd,
	0xff55: KeyPageUp,
	0xff56: KeyPageDown,
	0xff52: KeyUp,
	0xff54: KeyDown,
	0xff51: KeyLeft,
	0xff53: KeyRight,
	0xffe1: KeyShift,
	0xffe2: KeyShift,
	0xffe3: KeyControl,
	0xffe4: KeyControl,
	0xffe9: KeyAlt,
	0xffea: KeyAlt,
	0xffeb: KeySuper,
	0xffec: KeySuper,
	0xffe5: KeyCapsLock,
	0xff7f: KeyNumLock,
}

func init() {
	for i := uint32(0); i < 12; i++ {
		namedKeysyms[0xffbe+i] = Key{Name: "f" + strconv.Itoa(int(i)+1)}
	}
}

// keysymKey resolves the logical key of a keysym, falling back to the text
// the keymap produced.
func keysymKey(sym uint32, text string) Key {
	if k, ok := namedKeysyms[sym]; ok {
		return k
	}
	switch {
	case sym > 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return Character(string(rune(sym)))
	case sym&0xff000000 == 0x01000000:
		return Character(string(rune(sym & 0x00ffffff)))
	case text != "":
		return Character(text)
	}
	return KeyUnidentified
}

// Code is a physical key position, independent of the keymap.
type Code string

const CodeUnidentified Code = "Unidentified"

// Evdev scancodes to physical codes.
var evdevCodes = map[uint32]Code{
	1: "Escape", 2: "Digit1", 3: "Digit2", 4: "Digit3", 5: "Digit4",
	6: "Digit5", 7: "Digit6", 8: "Digit7", 9: "Digit8", 10: "Digit9",
	11: "Digit0", 12: "Minus", 13: "Equal", 14: "Backspace", 15: "Tab",
	16: "KeyQ", 17: "KeyW", 18: "KeyE", 19: "KeyR", 20: "KeyT",
	21: "KeyY", 22: "KeyU", 23: "KeyI", 24: "KeyO", 25: "KeyP",
	26: "BracketLeft", 27: "BracketRight", 28: "Enter", 29: "ControlLeft",
	30: "KeyA", 31: "KeyS", 32: "KeyD", 33: "KeyF", 34: "KeyG",
	35: "KeyH", 36: "KeyJ", 37: "KeyK", 38: "KeyL", 39: "Semicolon",
	40: "Quote", 41: "Backquote", 42: "ShiftLeft", 43: "Backslash",
	44: "KeyZ", 45: "KeyX", 46: "KeyC", 47: "KeyV", 48: "KeyB",
	49: "KeyN", 50: "KeyM", 51: "Comma", 52: "Period", 53: "Slash",
	54: "ShiftRight", 55: "NumpadMultiply", 56: "AltLeft", 57: "Space",
	58: "CapsLock", 59: "F1", 60: "F2", 61: "F3", 62: "F4", 63: "F5",
	64: "F6", 65: "F7", 66: "F8", 67: "F9", 68: "F10", 69: "NumLock",
	70: "ScrollLock", 71: "Numpad7", 72: "Numpad8", 73: "Numpad9",
	74: "NumpadSubtract", 75: "Numpad4", 76: "Numpad5", 77: "Numpad6",
	78: "NumpadAdd", 79: "Numpad1", 80: "Numpad2", 81: "Numpad3",
	82: "Numpad0", 83: "NumpadDecimal", 87: "F11", 88: "F12",
	96: "NumpadEnter", 97: "ControlRight", 98: "NumpadDivide",
	100: "AltRight", 102: "Home", 103: "ArrowUp", 104: "PageUp",
	105: "ArrowLeft", 106: "ArrowRight", 107: "End", 108: "ArrowDown",
	109: "PageDown", 110: "Insert", 111: "Delete", 125: "SuperLeft",
	126: "SuperRight",
}

// PhysicalCode maps an evdev scancode to its physical code.
func PhysicalCode(scancode uint32) Code {
	if c, ok := evdevCodes[scancode]; ok {
		return c
	}
	return CodeUnidentified
}

// Scancode is the inverse of PhysicalCode. It is used to synthesize virtual
// key presses from a physical code.
func Scancode(code Code) (uint32, bool) {
	for sc, c := range evdevCodes {
		if c == code {
			return sc, true
		}
	}
	return 0, false
}
