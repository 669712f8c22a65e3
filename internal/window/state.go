package window

import (
	"github.com/atomicstack/tea-layershell/internal/event"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
)

// Synchronizer supplies the application-owned display state of a window.
type Synchronizer interface {
	Appearance() runtime.Appearance
	ScaleFactor(id runtime.WindowID) float64
}

// State is the display and input snapshot of one window.
type State struct {
	id           runtime.WindowID
	width        uint32
	height       uint32
	surfaceScale float64
	appScale     float64
	cursor       runtime.Point
	hovered      bool
	tracked      bool
	modifiers    event.Modifiers
	focused      bool
	appearance   runtime.Appearance
}

func NewState(id runtime.WindowID, width, height uint32, surfaceScale float64, sync Synchronizer) *State {
	s := &State{
		id:           id,
		width:        width,
		height:       height,
		surfaceScale: normalizeScale(surfaceScale),
		appScale:     1,
	}
	if sync != nil {
		s.Synchronize(sync)
	}
	return s
}

func normalizeScale(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	return scale
}

// Apply records the input state carried by a raw dispatch message.
func (s *State) Apply(msg layershell.DispatchMessage) {
	switch m := msg.(type) {
	case layershell.MouseEnter:
		s.hovered, s.tracked = true, true
		s.cursor = runtime.Point{X: float32(m.X), Y: float32(m.Y)}
	case layershell.MouseMotion:
		s.hovered, s.tracked = true, true
		s.cursor = runtime.Point{X: float32(m.X), Y: float32(m.Y)}
	case layershell.MouseLeave:
		s.hovered = false
	case layershell.ModifiersChanged:
		s.modifiers = event.FromState(m.Modifiers)
	case layershell.KeyboardEnter:
		s.focused = true
	case layershell.KeyboardLeave:
		s.focused = false
		s.modifiers = 0
	case layershell.PreferredScale:
		s.surfaceScale = normalizeScale(m.ScaleFloat)
	}
}

// Resize applies a new surface configuration. It reports whether the
// viewport changed.
func (s *State) Resize(width, height uint32, surfaceScale float64) bool {
	scale := normalizeScale(surfaceScale)
	changed := s.width != width || s.height != height || s.surfaceScale != scale
	s.width, s.height, s.surfaceScale = width, height, scale
	return changed
}

// Synchronize pulls the appearance and scale factor from the application.
func (s *State) Synchronize(sync Synchronizer) {
	s.appearance = sync.Appearance()
	s.appScale = normalizeScale(sync.ScaleFactor(s.id))
}

func (s *State) ID() runtime.WindowID { return s.id }

func (s *State) Viewport() runtime.Viewport {
	return runtime.Viewport{Width: s.width, Height: s.height, Scale: s.surfaceScale * s.appScale}
}

func (s *State) LogicalSize() runtime.Size {
	return s.Viewport().LogicalSize()
}

func (s *State) Cursor() runtime.Cursor {
	return runtime.Cursor{Position: s.cursor, Available: s.hovered}
}

// MousePosition is the last known pointer position, even after the pointer
// left the surface.
func (s *State) MousePosition() (runtime.Point, bool) {
	return s.cursor, s.tracked
}

func (s *State) Modifiers() event.Modifiers { return s.modifiers }

func (s *State) Focused() bool { return s.focused }

func (s *State) Appearance() runtime.Appearance { return s.appearance }
