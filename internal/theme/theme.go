package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tea-layershell/internal/runtime"
)

// Styles describes reusable Lip Gloss styles shared by the widgets.
type Styles struct {
	Text             *lipgloss.Style
	Header           *lipgloss.Style
	Button           *lipgloss.Style
	ButtonHovered    *lipgloss.Style
	ButtonPressed    *lipgloss.Style
	Input            *lipgloss.Style
	InputFocused     *lipgloss.Style
	InputPlaceholder *lipgloss.Style
	Cursor           *lipgloss.Style
	Error            *lipgloss.Style
}

var defaultStyles = Styles{
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	ButtonHovered: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	ButtonPressed: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")).Bold(true),
	),
	Input: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Background(lipgloss.Color("236")),
	),
	InputFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	InputPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

// DefaultAppearance is the window appearance applications get unless they
// override it.
func DefaultAppearance() runtime.Appearance {
	return runtime.Appearance{
		Background: lipgloss.Color("235"),
		Text:       lipgloss.Color("249"),
	}
}

// LightAppearance is the alternative appearance offered by the demo.
func LightAppearance() runtime.Appearance {
	return runtime.Appearance{
		Background: lipgloss.Color("255"),
		Text:       lipgloss.Color("235"),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
