package event

import (
	"strings"

	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
)

// Pointer button codes reported by the seat (linux/input-event-codes.h).
const (
	btnLeft   = 0x110
	btnRight  = 0x111
	btnMiddle = 0x112
	btnSide   = 0x113
	btnExtra  = 0x114
)

// Translate converts a dispatch message into at most one semantic event.
// mods is the modifier state the seat last reported. Messages that have no
// semantic counterpart (surface configuration, destruction) yield false.
func Translate(msg layershell.DispatchMessage, mods Modifiers) (Event, bool) {
	switch m := msg.(type) {
	case layershell.MouseEnter:
		return CursorEntered{}, true
	case layershell.MouseLeave:
		return CursorLeft{}, true
	case layershell.MouseMotion:
		return CursorMoved{Position: point(m.X, m.Y)}, true
	case layershell.MouseButton:
		button := Button(m.Button)
		if m.State == layershell.ButtonPressed {
			return ButtonPressed{Button: button}, true
		}
		return ButtonReleased{Button: button}, true
	case layershell.Axis:
		return scroll(m.Horizontal, m.Vertical), true
	case layershell.TouchDown:
		return FingerPressed{ID: m.ID, Position: point(m.X, m.Y)}, true
	case layershell.TouchUp:
		return FingerLifted{ID: m.ID, Position: point(m.X, m.Y)}, true
	case layershell.TouchMotion:
		return FingerMoved{ID: m.ID, Position: point(m.X, m.Y)}, true
	case layershell.TouchCancel:
		return FingerLost{ID: m.ID, Position: point(m.X, m.Y)}, true
	case layershell.PreferredScale:
		return ScaleFactorChanged{Scale: m.ScaleFloat}, true
	case layershell.KeyboardInput:
		return key(m.Event, mods), true
	case layershell.ModifiersChanged:
		return ModifiersChanged{Modifiers: FromState(m.Modifiers)}, true
	case layershell.KeyboardEnter:
		return Focused{}, true
	case layershell.KeyboardLeave:
		return Unfocused{}, true
	}
	return nil, false
}

// Button maps a seat button code to a mouse button. Unknown codes are
// treated as the primary button.
func Button(code uint32) MouseButton {
	switch code {
	case btnRight:
		return ButtonRight
	case btnMiddle:
		return ButtonMiddle
	case btnSide:
		return ButtonBack
	case btnExtra:
		return ButtonForward
	default:
		return ButtonLeft
	}
}

// IsIdleScroll reports whether an axis frame only carries stop markers.
func IsIdleScroll(m layershell.Axis) bool {
	return m.Horizontal.Stop && m.Vertical.Stop
}

func scroll(h, v layershell.AxisScroll) Event {
	if h.Stop && v.Stop {
		return Tick{}
	}
	if h.Discrete != 0 || v.Discrete != 0 {
		return WheelScrolled{Delta: Lines{X: -float32(h.Discrete), Y: -float32(v.Discrete)}}
	}
	return WheelScrolled{Delta: Pixels{X: -float32(h.Absolute), Y: -float32(v.Absolute)}}
}

func key(ev layershell.KeyEvent, mods Modifiers) Event {
	k := keysymKey(ev.Keysym, FilterText(ev.Text))
	physical := PhysicalCode(ev.Keycode)
	location := Location(ev.Location)
	if ev.State == layershell.KeyReleased {
		return KeyReleased{Key: k, Physical: physical, Location: location, Modifiers: mods}
	}
	return KeyPressed{
		Key:       k,
		Physical:  physical,
		Location:  location,
		Modifiers: mods,
		Text:      FilterText(ev.Text),
		Repeat:    ev.Repeat,
	}
}

// FilterText drops private-use code points, which keymaps use for glyph
// placeholders rather than text.
func FilterText(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r >= 0xE000 && r <= 0xF8FF {
			return -1
		}
		return r
	}, s)
}

// FromState converts the seat modifier state.
func FromState(s layershell.ModifiersState) Modifiers {
	var m Modifiers
	if s.Shift {
		m |= ModShift
	}
	if s.Ctrl {
		m |= ModCtrl
	}
	if s.Alt {
		m |= ModAlt
	}
	if s.Logo {
		m |= ModLogo
	}
	return m
}

func point(x, y float64) runtime.Point {
	return runtime.Point{X: float32(x), Y: float32(y)}
}
