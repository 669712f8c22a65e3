// Package runtime defines the leaf vocabulary shared by the UI runtime and
// the engine: window identifiers, geometry, interaction results and
// per-window appearance.
package runtime

import (
	"fmt"

	"code.hybscloud.com/atomix"
	"github.com/charmbracelet/lipgloss"
)

// WindowID identifies a window inside the UI runtime. It is distinct from
// the compositor's surface identifier.
type WindowID uint32

// MainWindow is the primary window. Closing it terminates the application.
const MainWindow WindowID = 0

var lastWindowID atomix.Uint32

// NewWindowID issues the next identifier. Identifiers are never reused.
func NewWindowID() WindowID {
	return WindowID(lastWindowID.Add(1))
}

func (id WindowID) String() string {
	if id == MainWindow {
		return "window(main)"
	}
	return fmt.Sprintf("window(%d)", uint32(id))
}

type Point struct {
	X float32
	Y float32
}

type Size struct {
	Width  float32
	Height float32
}

type Rect struct {
	X, Y          float32
	Width, Height float32
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Cursor is the pointer as seen by one window.
type Cursor struct {
	Position  Point
	Available bool
}

// Viewport maps physical surface pixels to logical units.
type Viewport struct {
	Width  uint32
	Height uint32
	Scale  float64
}

func (v Viewport) LogicalSize() Size {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	return Size{
		Width:  float32(float64(v.Width) / scale),
		Height: float32(float64(v.Height) / scale),
	}
}

// Status reports whether a widget tree consumed an event.
type Status int

const (
	StatusIgnored Status = iota
	StatusCaptured
)

func (s Status) String() string {
	if s == StatusCaptured {
		return "captured"
	}
	return "ignored"
}

// UIState is the result of updating a live interface.
type UIState int

const (
	UpToDate UIState = iota
	Outdated
)

// Interaction is the pointer interaction shape a widget tree requests.
type Interaction int

const (
	InteractionIdle Interaction = iota
	InteractionPointer
	InteractionWorking
	InteractionGrab
	InteractionText
	InteractionZoomIn
	InteractionGrabbing
	InteractionCrosshair
	InteractionNotAllowed
	InteractionResizingVertically
	InteractionResizingHorizontally
)

// CursorShape returns the cursor-shape protocol name for the interaction.
func (i Interaction) CursorShape() string {
	switch i {
	case InteractionPointer:
		return "pointer"
	case InteractionWorking:
		return "progress"
	case InteractionGrab:
		return "grab"
	case InteractionText:
		return "text"
	case InteractionZoomIn:
		return "zoom_in"
	case InteractionGrabbing:
		return "grabbing"
	case InteractionCrosshair:
		return "crosshair"
	case InteractionNotAllowed:
		return "not_allowed"
	case InteractionResizingVertically:
		return "ew_resize"
	case InteractionResizingHorizontally:
		return "ns_resize"
	default:
		return "default"
	}
}

// Appearance is the theme snapshot a window draws with.
type Appearance struct {
	Background lipgloss.Color
	Text       lipgloss.Color
}
