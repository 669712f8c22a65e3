package runtime

import "testing"

func TestNewWindowIDIsMonotonic(t *testing.T) {
	first := NewWindowID()
	second := NewWindowID()
	if second <= first {
		t.Fatalf("expected increasing ids, got %d then %d", first, second)
	}
	if first == MainWindow || second == MainWindow {
		t.Fatalf("issued id collided with the main window")
	}
}

func TestViewportLogicalSize(t *testing.T) {
	vp := Viewport{Width: 800, Height: 60, Scale: 2}
	got := vp.LogicalSize()
	if got.Width != 400 || got.Height != 30 {
		t.Fatalf("expected 400x30, got %vx%v", got.Width, got.Height)
	}
	zero := Viewport{Width: 10, Height: 10}
	if zero.LogicalSize().Width != 10 {
		t.Fatalf("expected zero scale to be treated as 1")
	}
}

func TestInteractionCursorShape(t *testing.T) {
	cases := map[Interaction]string{
		InteractionIdle:                 "default",
		InteractionPointer:              "pointer",
		InteractionWorking:              "progress",
		InteractionText:                 "text",
		InteractionResizingVertically:   "ew_resize",
		InteractionResizingHorizontally: "ns_resize",
	}
	for interaction, want := range cases {
		if got := interaction.CursorShape(); got != want {
			t.Fatalf("expected %s for %d, got %s", want, interaction, got)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 2, Width: 4, Height: 1}
	if !r.Contains(Point{X: 2, Y: 2}) || !r.Contains(Point{X: 5.5, Y: 2.5}) {
		t.Fatalf("expected points inside")
	}
	if r.Contains(Point{X: 6, Y: 2}) || r.Contains(Point{X: 3, Y: 3}) {
		t.Fatalf("expected points outside")
	}
}
