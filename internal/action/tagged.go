package action

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/layershell"
)

// Tagged marks actions that carry a window info tag. A tagged action whose
// tag type differs from the application's is malformed.
type Tagged interface {
	Action
	tagged()
}

// NewLayerShellMsg opens a new layer surface whose window is registered
// with Info.
type NewLayerShellMsg[Info any] struct {
	Settings layershell.NewLayerShellSettings
	Info     Info
}

// NewPopupMsg opens a popup on the surface that has pointer focus.
type NewPopupMsg[Info any] struct {
	Settings layershell.PopupSettings
	Info     Info
}

// NewMenuMsg opens a popup at the pointer position.
type NewMenuMsg[Info any] struct {
	Settings layershell.MenuSettings
	Info     Info
}

func (NewLayerShellMsg[Info]) action() {}
func (NewLayerShellMsg[Info]) tagged() {}
func (NewPopupMsg[Info]) action()      {}
func (NewPopupMsg[Info]) tagged()      {}
func (NewMenuMsg[Info]) action()       {}
func (NewMenuMsg[Info]) tagged()       {}

func NewLayerShell[Info any](settings layershell.NewLayerShellSettings, info Info) tea.Cmd {
	return emit(NewLayerShellMsg[Info]{Settings: settings, Info: info})
}

func NewPopup[Info any](settings layershell.PopupSettings, info Info) tea.Cmd {
	return emit(NewPopupMsg[Info]{Settings: settings, Info: info})
}

func NewMenu[Info any](settings layershell.MenuSettings, info Info) tea.Cmd {
	return emit(NewMenuMsg[Info]{Settings: settings, Info: info})
}
