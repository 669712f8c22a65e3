// Package event holds the semantic input vocabulary delivered to window
// interfaces, and the translation from raw compositor dispatch messages into
// that vocabulary.
package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/tea-layershell/internal/runtime"
)

// Event is a semantic UI event.
type Event interface {
	event()
}

// Tick carries no input. It only wakes the loop.
type Tick struct{}

type CursorEntered struct{}

type CursorLeft struct{}

type CursorMoved struct {
	Position runtime.Point
}

type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
	ButtonBack
	ButtonForward
)

func (b MouseButton) String() string {
	switch b {
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return "left"
	}
}

type ButtonPressed struct {
	Button MouseButton
}

type ButtonReleased struct {
	Button MouseButton
}

// ScrollDelta is either Lines or Pixels.
type ScrollDelta interface {
	scrollDelta()
}

type Lines struct {
	X, Y float32
}

type Pixels struct {
	X, Y float32
}

func (Lines) scrollDelta()  {}
func (Pixels) scrollDelta() {}

type WheelScrolled struct {
	Delta ScrollDelta
}

type FingerPressed struct {
	ID       int32
	Position runtime.Point
}

type FingerMoved struct {
	ID       int32
	Position runtime.Point
}

type FingerLifted struct {
	ID       int32
	Position runtime.Point
}

type FingerLost struct {
	ID       int32
	Position runtime.Point
}

// KeyPressed is a key press resolved through the keymap. Its String form
// follows the "ctrl+a" / "enter" / "shift+tab" convention so it can be
// matched with key bindings.
type KeyPressed struct {
	Key       Key
	Physical  Code
	Location  Location
	Modifiers Modifiers
	Text      string
	Repeat    bool
}

func (k KeyPressed) String() string {
	var b strings.Builder
	if k.Modifiers.Has(ModCtrl) {
		b.WriteString("ctrl+")
	}
	if k.Modifiers.Has(ModAlt) {
		b.WriteString("alt+")
	}
	if k.Modifiers.Has(ModShift) && k.Key.Name != "" {
		b.WriteString("shift+")
	}
	b.WriteString(k.Key.String())
	return b.String()
}

type KeyReleased struct {
	Key       Key
	Physical  Code
	Location  Location
	Modifiers Modifiers
}

type ModifiersChanged struct {
	Modifiers Modifiers
}

// Opened is emitted once for every window the loop creates.
type Opened struct {
	Size runtime.Size
}

type Resized struct {
	Width  uint32
	Height uint32
}

type Focused struct{}

type Unfocused struct{}

type ScaleFactorChanged struct {
	Scale float64
}

type RedrawRequested struct {
	At time.Time
}

type Closed struct{}

func (Tick) event()               {}
func (CursorEntered) event()      {}
func (CursorLeft) event()         {}
func (CursorMoved) event()        {}
func (ButtonPressed) event()      {}
func (ButtonReleased) event()     {}
func (WheelScrolled) event()      {}
func (FingerPressed) event()      {}
func (FingerMoved) event()        {}
func (FingerLifted) event()       {}
func (FingerLost) event()         {}
func (KeyPressed) event()         {}
func (KeyReleased) event()        {}
func (ModifiersChanged) event()   {}
func (Opened) event()             {}
func (Resized) event()            {}
func (Focused) event()            {}
func (Unfocused) event()          {}
func (ScaleFactorChanged) event() {}
func (RedrawRequested) event()    {}
func (Closed) event()             {}

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModLogo
)

func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, entry := range []struct {
		mod  Modifiers
		name string
	}{{ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModShift, "shift"}, {ModLogo, "logo"}} {
		if m.Has(entry.mod) {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, "+")
}

// Location distinguishes keys that appear more than once on a keyboard.
type Location int

const (
	LocationStandard Location = iota
	LocationLeft
	LocationRight
	LocationNumpad
)

// Name returns a short human readable label for the event, used in traces.
func Name(ev Event) string {
	switch e := ev.(type) {
	case CursorMoved:
		return fmt.Sprintf("cursor-moved(%g,%g)", e.Position.X, e.Position.Y)
	case ButtonPressed:
		return "button-pressed(" + e.Button.String() + ")"
	case ButtonReleased:
		return "button-released(" + e.Button.String() + ")"
	case KeyPressed:
		return "key-pressed(" + e.String() + ")"
	default:
		return strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", ev), "event."))
	}
}
