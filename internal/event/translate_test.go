package event

import (
	"testing"

	"github.com/atomicstack/tea-layershell/internal/layershell"
)

func TestScrollWithBothStopsIsTick(t *testing.T) {
	ev, ok := Translate(layershell.Axis{
		Horizontal: layershell.AxisScroll{Stop: true},
		Vertical:   layershell.AxisScroll{Stop: true},
	}, 0)
	if !ok {
		t.Fatalf("expected an event")
	}
	if _, isTick := ev.(Tick); !isTick {
		t.Fatalf("expected Tick, got %#v", ev)
	}
}

func TestScrollPrefersDiscreteLinesWithInvertedSign(t *testing.T) {
	ev, _ := Translate(layershell.Axis{
		Horizontal: layershell.AxisScroll{Absolute: 4, Discrete: 2},
		Vertical:   layershell.AxisScroll{Absolute: -30, Discrete: -3},
	}, 0)
	wheel, ok := ev.(WheelScrolled)
	if !ok {
		t.Fatalf("expected WheelScrolled, got %#v", ev)
	}
	lines, ok := wheel.Delta.(Lines)
	if !ok {
		t.Fatalf("expected Lines delta, got %#v", wheel.Delta)
	}
	if lines.X != -2 || lines.Y != 3 {
		t.Fatalf("expected (-2,3), got (%v,%v)", lines.X, lines.Y)
	}
}

func TestScrollFallsBackToPixels(t *testing.T) {
	ev, _ := Translate(layershell.Axis{
		Vertical: layershell.AxisScroll{Absolute: 12.5},
	}, 0)
	pixels, ok := ev.(WheelScrolled).Delta.(Pixels)
	if !ok {
		t.Fatalf("expected Pixels delta, got %#v", ev)
	}
	if pixels.X != 0 || pixels.Y != -12.5 {
		t.Fatalf("expected (0,-12.5), got (%v,%v)", pixels.X, pixels.Y)
	}
}

func TestButtonTable(t *testing.T) {
	cases := map[uint32]MouseButton{
		272: ButtonLeft,
		273: ButtonRight,
		274: ButtonMiddle,
		275: ButtonBack,
		276: ButtonForward,
		999: ButtonLeft,
	}
	for code, want := range cases {
		if got := Button(code); got != want {
			t.Fatalf("expected %s for %d, got %s", want, code, got)
		}
	}
	ev, _ := Translate(layershell.MouseButton{State: layershell.ButtonPressed, Button: 273}, 0)
	if pressed, ok := ev.(ButtonPressed); !ok || pressed.Button != ButtonRight {
		t.Fatalf("expected right press, got %#v", ev)
	}
	ev, _ = Translate(layershell.MouseButton{State: layershell.ButtonReleased, Button: 272}, 0)
	if _, ok := ev.(ButtonReleased); !ok {
		t.Fatalf("expected release, got %#v", ev)
	}
}

func TestKeyTextDropsPrivateUse(t *testing.T) {
	ev, _ := Translate(layershell.KeyboardInput{Event: layershell.KeyEvent{
		State:   layershell.KeyPressed,
		Keycode: 30,
		Keysym:  0x61,
		Text:    "a\ue000\uf8ff",
	}}, ModCtrl)
	pressed, ok := ev.(KeyPressed)
	if !ok {
		t.Fatalf("expected KeyPressed, got %#v", ev)
	}
	if pressed.Text != "a" {
		t.Fatalf("expected filtered text %q, got %q", "a", pressed.Text)
	}
	if pressed.Physical != "KeyA" {
		t.Fatalf("expected KeyA, got %s", pressed.Physical)
	}
	if pressed.String() != "ctrl+a" {
		t.Fatalf("expected ctrl+a, got %s", pressed.String())
	}
}

func TestPrivateUseOnlyTextIsEmpty(t *testing.T) {
	if got := FilterText("\ue123"); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
	if got := FilterText("x\ue123y"); got != "xy" {
		t.Fatalf("expected xy, got %q", got)
	}
}

func TestNamedKeys(t *testing.T) {
	ev, _ := Translate(layershell.KeyboardInput{Event: layershell.KeyEvent{
		State:  layershell.KeyPressed,
		Keysym: 0xfe20,
	}}, ModShift)
	if got := ev.(KeyPressed).String(); got != "shift+tab" {
		t.Fatalf("expected shift+tab, got %s", got)
	}
	ev, _ = Translate(layershell.KeyboardInput{Event: layershell.KeyEvent{
		State:   layershell.KeyReleased,
		Keycode: 1,
		Keysym:  0xff1b,
	}}, 0)
	released, ok := ev.(KeyReleased)
	if !ok || released.Key != KeyEscape || released.Physical != "Escape" {
		t.Fatalf("expected escape release, got %#v", ev)
	}
	ev, _ = Translate(layershell.KeyboardInput{Event: layershell.KeyEvent{
		State:  layershell.KeyPressed,
		Keysym: 0xffc9,
	}}, 0)
	if got := ev.(KeyPressed).Key; got.Name != "f12" {
		t.Fatalf("expected f12, got %s", got)
	}
}

func TestUnicodeKeysym(t *testing.T) {
	ev, _ := Translate(layershell.KeyboardInput{Event: layershell.KeyEvent{
		State:  layershell.KeyPressed,
		Keysym: 0x010020ac,
	}}, 0)
	if got := ev.(KeyPressed).Key.Char; got != "€" {
		t.Fatalf("expected euro sign, got %q", got)
	}
}

func TestSurfaceMessagesHaveNoSemanticEvent(t *testing.T) {
	for _, msg := range []layershell.DispatchMessage{
		layershell.RequestRefresh{Width: 10, Height: 10},
		layershell.Closed{},
	} {
		if ev, ok := Translate(msg, 0); ok {
			t.Fatalf("expected no event for %T, got %#v", msg, ev)
		}
	}
}

func TestFocusScaleAndModifiers(t *testing.T) {
	if ev, _ := Translate(layershell.KeyboardEnter{}, 0); ev != (Focused{}) {
		t.Fatalf("expected Focused, got %#v", ev)
	}
	if ev, _ := Translate(layershell.KeyboardLeave{}, 0); ev != (Unfocused{}) {
		t.Fatalf("expected Unfocused, got %#v", ev)
	}
	ev, _ := Translate(layershell.PreferredScale{ScaleU32: 2, ScaleFloat: 1.5}, 0)
	if ev != (ScaleFactorChanged{Scale: 1.5}) {
		t.Fatalf("expected scale 1.5, got %#v", ev)
	}
	ev, _ = Translate(layershell.ModifiersChanged{Modifiers: layershell.ModifiersState{Ctrl: true, Logo: true}}, 0)
	mods := ev.(ModifiersChanged).Modifiers
	if !mods.Has(ModCtrl) || !mods.Has(ModLogo) || mods.Has(ModShift) {
		t.Fatalf("unexpected modifiers %s", mods)
	}
}

func TestTouchTranslation(t *testing.T) {
	ev, _ := Translate(layershell.TouchDown{ID: 3, X: 1, Y: 2}, 0)
	pressed, ok := ev.(FingerPressed)
	if !ok || pressed.ID != 3 || pressed.Position.X != 1 || pressed.Position.Y != 2 {
		t.Fatalf("unexpected touch event %#v", ev)
	}
	if ev, _ := Translate(layershell.TouchCancel{ID: 3}, 0); ev.(FingerLost).ID != 3 {
		t.Fatalf("expected finger lost")
	}
}

func TestScancodeRoundTrip(t *testing.T) {
	sc, ok := Scancode("KeyA")
	if !ok || sc != 30 {
		t.Fatalf("expected scancode 30, got %d (%v)", sc, ok)
	}
	if PhysicalCode(4242) != CodeUnidentified {
		t.Fatalf("expected unidentified code")
	}
}
