package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tea-layershell/internal/event"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
)

// Element is a widget tree returned by an application's view hook. Its
// concrete shape belongs to the Builder that consumes it.
type Element interface{}

// Cache is the retained state of a torn-down UserInterface.
type Cache interface{}

// Target is the presentable destination of one surface.
type Target interface{}

// Renderer draws interfaces. Each window owns exactly one.
type Renderer interface {
	LoadFont(data []byte) error
}

// Builder turns a view into a live interface, reusing the retained state
// in cache when the tree shape allows it. A nil cache builds from scratch.
type Builder interface {
	Build(root Element, bounds runtime.Size, cache Cache, r Renderer) UserInterface
}

// UserInterface is a laid out, interactive widget tree.
type UserInterface interface {
	// Update feeds events through the tree, appending produced messages.
	// The returned statuses are index aligned with events.
	Update(events []event.Event, cursor runtime.Cursor, r Renderer, messages *[]tea.Msg) (runtime.UIState, []runtime.Status)
	Draw(r Renderer, appearance runtime.Appearance, cursor runtime.Cursor) runtime.Interaction
	Relayout(bounds runtime.Size, r Renderer) UserInterface
	Operate(r Renderer, op Operation)
	IntoCache() Cache
}

// Presenter moves rendered frames onto compositor surfaces.
type Presenter interface {
	CreateTarget(surface layershell.Surface, width, height uint32) (Target, error)
	CreateRenderer() Renderer
	ConfigureTarget(t Target, width, height uint32)
	Present(r Renderer, t Target, vp runtime.Viewport, background lipgloss.Color) error
	Screenshot(r Renderer, vp runtime.Viewport, background lipgloss.Color) []byte
}
