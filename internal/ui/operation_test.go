package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/runtime"
)

type focusable struct {
	id      string
	focused bool
}

func (f *focusable) node() Node {
	return Node{ID: f.id, Focused: f.focused, Focus: func(v bool) { f.focused = v }}
}

func TestFocusOnFocusesOnlyTarget(t *testing.T) {
	a, b := &focusable{id: "a", focused: true}, &focusable{id: "b"}
	op := FocusOn("b")
	op.Visit(a.node())
	op.Visit(b.node())
	op.Visit(Node{ID: "label"})
	if a.focused || !b.focused {
		t.Fatalf("expected only b focused, got a=%v b=%v", a.focused, b.focused)
	}
	if out := op.Finish(); out.Message != nil || out.Next != nil {
		t.Fatalf("expected empty outcome, got %#v", out)
	}
}

func TestFocusNextChainsAndWraps(t *testing.T) {
	a, b := &focusable{id: "a"}, &focusable{id: "b", focused: true}
	op := FocusNext()
	op.Visit(a.node())
	op.Visit(b.node())
	out := op.Finish()
	if out.Next == nil {
		t.Fatalf("expected chained operation")
	}
	out.Next.Visit(a.node())
	out.Next.Visit(b.node())
	if !a.focused || b.focused {
		t.Fatalf("expected focus to wrap to a, got a=%v b=%v", a.focused, b.focused)
	}
}

func TestFocusNextWithoutFocusDoesNothing(t *testing.T) {
	op := FocusNext()
	op.Visit((&focusable{id: "a"}).node())
	if out := op.Finish(); out.Next != nil {
		t.Fatalf("expected no chain without a focused widget")
	}
}

type boundsMsg struct{ rect runtime.Rect }

func TestQueryBoundsProducesMessage(t *testing.T) {
	op := QueryBounds("b", func(r runtime.Rect) tea.Msg { return boundsMsg{rect: r} })
	if out := op.Finish(); out.Message != nil {
		t.Fatalf("expected no message before the widget is found")
	}
	op.Visit(Node{ID: "b", Bounds: runtime.Rect{X: 1, Y: 2, Width: 3, Height: 1}})
	out := op.Finish()
	msg, ok := out.Message.(boundsMsg)
	if !ok || msg.rect.Width != 3 {
		t.Fatalf("expected bounds message, got %#v", out.Message)
	}
}
