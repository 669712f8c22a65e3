// Package widget is a retained text-cell widget toolkit. Views are built
// from the element types below; the Builder lays them out on a cell grid
// and renders them with lipgloss.
package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/ui"
)

type Text struct {
	Content string
	Header  bool
}

// Button emits OnPress when clicked. ID keeps its state stable across
// rebuilds; without one the button is keyed by its position in the tree.
type Button struct {
	ID      string
	Label   string
	OnPress tea.Msg
}

// TextInput edits Value, which the application owns: every edit emits
// OnInput with the new value.
type TextInput struct {
	ID          string
	Placeholder string
	Value       string
	Width       int
	OnInput     func(string) tea.Msg
	OnSubmit    tea.Msg
}

type Column struct {
	Children []ui.Element
	Spacing  int
	Padding  int
}

type Row struct {
	Children []ui.Element
	Spacing  int
	Padding  int
}

// Container pads its child. A centered container fills the space it is
// given and centers the child in it.
type Container struct {
	Child   ui.Element
	Padding int
	Center  bool
}

type Space struct {
	Width  int
	Height int
}

func NewColumn(children ...ui.Element) Column {
	return Column{Children: children}
}

func NewRow(children ...ui.Element) Row {
	return Row{Children: children}
}

func (c Column) WithSpacing(n int) Column {
	c.Spacing = n
	return c
}

func (r Row) WithSpacing(n int) Row {
	r.Spacing = n
	return r
}

func Centered(child ui.Element) Container {
	return Container{Child: child, Center: true}
}
