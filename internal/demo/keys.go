package demo

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Increment key.Binding
	Decrement key.Binding
	Panel     key.Binding
	Launcher  key.Binding
	Menu      key.Binding
	Close     key.Binding
	Theme     key.Binding
	Flip      key.Binding
	Type      key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Increment: key.NewBinding(
		key.WithKeys("+", "up", "k"),
		key.WithHelp("+", "increment"),
	),
	Decrement: key.NewBinding(
		key.WithKeys("-", "down", "j"),
		key.WithHelp("-", "decrement"),
	),
	Panel: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "side panel"),
	),
	Launcher: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "launcher"),
	),
	Menu: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menu"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close window"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Flip: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "flip panel"),
	),
	Type: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "virtual key"),
	),
}

// help is the one-line key summary shown in the main window.
func (k keyMap) help() string {
	out := ""
	for _, b := range []key.Binding{k.Increment, k.Decrement, k.Panel, k.Launcher, k.Quit} {
		h := b.Help()
		if out != "" {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
