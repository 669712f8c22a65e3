package widget

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tea-layershell/internal/event"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/theme"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

// State is the widget state retained across rebuilds, keyed by widget id.
type State struct {
	Focused string
	Hovered string
	Pressed string
}

// Builder builds Interfaces from widget elements.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Build(root ui.Element, bounds runtime.Size, cache ui.Cache, _ ui.Renderer) ui.UserInterface {
	state, ok := cache.(*State)
	if !ok || state == nil {
		state = &State{}
	}
	return newInterface(root, bounds, state)
}

// Interface is a laid out widget tree.
type Interface struct {
	root   ui.Element
	bounds runtime.Size
	state  *State
	tree   *node
	// interactive holds buttons and inputs in tree order.
	interactive []*node
}

func newInterface(root ui.Element, bounds runtime.Size, state *State) *Interface {
	i := &Interface{root: root, bounds: bounds, state: state}
	i.tree = layout(root, 0, 0, int(bounds.Width), int(bounds.Height), "")
	walk(i.tree, func(n *node) {
		if n.kind == kindButton || n.kind == kindInput {
			i.interactive = append(i.interactive, n)
		}
	})
	if i.find(state.Focused) == nil {
		state.Focused = ""
	}
	if i.find(state.Pressed) == nil {
		state.Pressed = ""
	}
	return i
}

func (i *Interface) find(id string) *node {
	if id == "" {
		return nil
	}
	for _, n := range i.interactive {
		if n.id == id {
			return n
		}
	}
	return nil
}

func (i *Interface) hit(p runtime.Point) *node {
	for _, n := range i.interactive {
		if n.area.contains(p) {
			return n
		}
	}
	return nil
}

func (i *Interface) Update(events []event.Event, cursor runtime.Cursor, _ ui.Renderer, messages *[]tea.Msg) (runtime.UIState, []runtime.Status) {
	statuses := make([]runtime.Status, len(events))
	outdated := false
	for idx, ev := range events {
		captured, changed := i.handle(ev, cursor, messages)
		if captured {
			statuses[idx] = runtime.StatusCaptured
		}
		outdated = outdated || changed
	}
	if outdated {
		return runtime.Outdated, statuses
	}
	return runtime.UpToDate, statuses
}

func (i *Interface) handle(ev event.Event, cursor runtime.Cursor, messages *[]tea.Msg) (captured, changed bool) {
	switch e := ev.(type) {
	case event.CursorMoved:
		hovered := ""
		if n := i.hit(e.Position); n != nil {
			hovered = n.id
		}
		if hovered != i.state.Hovered {
			i.state.Hovered = hovered
			return false, true
		}
	case event.CursorLeft:
		changed = i.state.Hovered != "" || i.state.Pressed != ""
		i.state.Hovered, i.state.Pressed = "", ""
		return false, changed
	case event.ButtonPressed:
		if e.Button != event.ButtonLeft {
			return false, false
		}
		var n *node
		if cursor.Available {
			n = i.hit(cursor.Position)
		}
		switch {
		case n != nil && n.kind == kindButton:
			i.state.Pressed = n.id
			return true, true
		case n != nil && n.kind == kindInput:
			changed = i.state.Focused != n.id
			i.state.Focused = n.id
			return true, changed
		case i.state.Focused != "":
			i.state.Focused = ""
			return false, true
		}
	case event.ButtonReleased:
		if e.Button != event.ButtonLeft || i.state.Pressed == "" {
			return false, false
		}
		pressed := i.find(i.state.Pressed)
		i.state.Pressed = ""
		if pressed != nil && cursor.Available && pressed.area.contains(cursor.Position) {
			if b := pressed.element.(Button); b.OnPress != nil {
				*messages = append(*messages, b.OnPress)
			}
		}
		return true, true
	case event.KeyPressed:
		if n := i.find(i.state.Focused); n != nil && n.kind == kindInput {
			return i.edit(n, e, messages)
		}
		if e.Key == event.KeyTab && !e.Modifiers.Has(event.ModCtrl) {
			return i.cycleFocus(e.Modifiers.Has(event.ModShift))
		}
	case event.Unfocused:
		if i.state.Pressed != "" {
			i.state.Pressed = ""
			return false, true
		}
	}
	return false, false
}

func (i *Interface) edit(n *node, e event.KeyPressed, messages *[]tea.Msg) (captured, changed bool) {
	input := n.element.(TextInput)
	emit := func(value string) {
		if input.OnInput != nil {
			*messages = append(*messages, input.OnInput(value))
		}
	}
	switch e.Key {
	case event.KeyEnter:
		if input.OnSubmit != nil {
			*messages = append(*messages, input.OnSubmit)
		}
		return true, false
	case event.KeyEscape:
		i.state.Focused = ""
		return true, true
	case event.KeyTab:
		return i.cycleFocus(e.Modifiers.Has(event.ModShift))
	case event.KeyBackspace:
		if input.Value == "" {
			return true, false
		}
		runes := []rune(input.Value)
		emit(string(runes[:len(runes)-1]))
		return true, false
	}
	if e.Text == "" || e.Modifiers.Has(event.ModCtrl) || e.Modifiers.Has(event.ModAlt) {
		return false, false
	}
	emit(input.Value + e.Text)
	return true, false
}

func (i *Interface) cycleFocus(backwards bool) (captured, changed bool) {
	var inputs []*node
	current := -1
	for _, n := range i.interactive {
		if n.kind != kindInput {
			continue
		}
		if n.id == i.state.Focused {
			current = len(inputs)
		}
		inputs = append(inputs, n)
	}
	if len(inputs) == 0 {
		return false, false
	}
	next := 0
	switch {
	case current >= 0 && backwards:
		next = (current - 1 + len(inputs)) % len(inputs)
	case current >= 0:
		next = (current + 1) % len(inputs)
	case backwards:
		next = len(inputs) - 1
	}
	i.state.Focused = inputs[next].id
	return true, true
}

func (i *Interface) Draw(r ui.Renderer, appearance runtime.Appearance, cursor runtime.Cursor) runtime.Interaction {
	styles := theme.Default()
	base := lipgloss.NewStyle().Background(appearance.Background).Foreground(appearance.Text)
	c := newCanvas(int(i.bounds.Width), int(i.bounds.Height), base)
	text := c.style(styles.Text.Background(appearance.Background).Foreground(appearance.Text))
	header := c.style(styles.Header.Background(appearance.Background))

	walk(i.tree, func(n *node) {
		switch n.kind {
		case kindText:
			t := n.element.(Text)
			style := text
			if t.Header {
				style = header
			}
			for row, line := range splitLines(t.Content, n.area.h) {
				c.text(n.area.x, n.area.y+row, line, style, n.area.w)
			}
		case kindButton:
			b := n.element.(Button)
			s := c.style(i.buttonStyle(n.id))
			c.fill(n.area, s)
			c.text(n.area.x+2, n.area.y, b.Label, s, n.area.w-4)
		case kindInput:
			i.drawInput(c, n)
		}
	})

	if rr, ok := r.(*Renderer); ok {
		rr.frame = c.render()
		rr.frames++
	}

	if !cursor.Available {
		return runtime.InteractionIdle
	}
	switch n := i.hit(cursor.Position); {
	case n == nil:
		return runtime.InteractionIdle
	case n.kind == kindInput:
		return runtime.InteractionText
	default:
		return runtime.InteractionPointer
	}
}

func (i *Interface) buttonStyle(id string) lipgloss.Style {
	styles := theme.Default()
	switch id {
	case i.state.Pressed:
		return *styles.ButtonPressed
	case i.state.Hovered:
		return *styles.ButtonHovered
	}
	return *styles.Button
}

func (i *Interface) drawInput(c *canvas, n *node) {
	styles := theme.Default()
	input := n.element.(TextInput)
	focused := n.id == i.state.Focused
	style := *styles.Input
	if focused {
		style = *styles.InputFocused
	}
	s := c.style(style)
	c.fill(n.area, s)
	if input.Value == "" {
		if input.Placeholder != "" && !focused {
			c.text(n.area.x, n.area.y, input.Placeholder, c.style(*styles.InputPlaceholder), n.area.w)
		}
	} else {
		c.text(n.area.x, n.area.y, tail(input.Value, n.area.w-1), s, n.area.w)
	}
	if focused && n.area.w > 0 {
		at := n.area.x + min(runeWidth(tail(input.Value, n.area.w-1)), n.area.w-1)
		c.text(at, n.area.y, " ", c.style(*styles.Cursor), 1)
	}
}

func (i *Interface) Relayout(bounds runtime.Size, _ ui.Renderer) ui.UserInterface {
	return newInterface(i.root, bounds, i.state)
}

func (i *Interface) Operate(_ ui.Renderer, op ui.Operation) {
	for _, n := range i.interactive {
		node := ui.Node{
			ID:      n.id,
			Bounds:  n.area.bounds(),
			Focused: n.id == i.state.Focused,
		}
		if n.kind == kindInput {
			id := n.id
			node.Focus = func(focus bool) {
				switch {
				case focus:
					i.state.Focused = id
				case i.state.Focused == id:
					i.state.Focused = ""
				}
			}
		}
		op.Visit(node)
	}
}

func (i *Interface) IntoCache() ui.Cache {
	return i.state
}
