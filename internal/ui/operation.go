package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/runtime"
)

// Node is what an interface exposes to an operation for one identified
// widget.
type Node struct {
	ID      string
	Bounds  runtime.Rect
	Focused bool
	// Focus is nil for widgets that cannot take focus.
	Focus func(bool)
}

// Operation walks the identified widgets of every live interface.
// Finish may be called after each interface is visited and must not
// consume the operation's state.
type Operation interface {
	Visit(n Node)
	Finish() Outcome
}

// Outcome is the result of an operation. A non-nil Message ends the
// operation; a non-nil Next restarts the walk with another operation.
type Outcome struct {
	Message tea.Msg
	Next    Operation
}

type focusOn struct {
	id string
}

// FocusOn focuses the widget with the given id and unfocuses every other
// focusable widget.
func FocusOn(id string) Operation {
	return &focusOn{id: id}
}

func (f *focusOn) Visit(n Node) {
	if n.Focus != nil {
		n.Focus(n.ID == f.id)
	}
}

func (f *focusOn) Finish() Outcome { return Outcome{} }

type focusNext struct {
	count   int
	current int
}

// FocusNext moves focus to the focusable widget after the focused one,
// wrapping around.
func FocusNext() Operation {
	return &focusNext{current: -1}
}

func (f *focusNext) Visit(n Node) {
	if n.Focus == nil {
		return
	}
	if n.Focused {
		f.current = f.count
	}
	f.count++
}

func (f *focusNext) Finish() Outcome {
	if f.current < 0 {
		return Outcome{}
	}
	return Outcome{Next: &focusIndex{target: (f.current + 1) % f.count}}
}

type focusIndex struct {
	target int
	seen   int
}

func (f *focusIndex) Visit(n Node) {
	if n.Focus == nil {
		return
	}
	n.Focus(f.seen == f.target)
	f.seen++
}

func (f *focusIndex) Finish() Outcome { return Outcome{} }

type queryBounds struct {
	id     string
	found  bool
	bounds runtime.Rect
	tag    func(runtime.Rect) tea.Msg
}

// QueryBounds reports the bounds of the widget with the given id.
func QueryBounds(id string, tag func(runtime.Rect) tea.Msg) Operation {
	return &queryBounds{id: id, tag: tag}
}

func (q *queryBounds) Visit(n Node) {
	if !q.found && n.ID == q.id {
		q.found = true
		q.bounds = n.Bounds
	}
}

func (q *queryBounds) Finish() Outcome {
	if !q.found || q.tag == nil {
		return Outcome{}
	}
	return Outcome{Message: q.tag(q.bounds)}
}
