package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/action"
	"github.com/atomicstack/tea-layershell/internal/event"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/subscription"
	"github.com/atomicstack/tea-layershell/internal/ui"
	"github.com/atomicstack/tea-layershell/internal/widget"
)

type role string

const (
	roleLeft role = "Left"
	roleMenu role = "Menu"
)

type incMsg struct{}

type runMsg struct{ cmd tea.Cmd }

type keyMsg struct{ key string }

type testApp struct {
	Base[role]
	count     int
	seen      []tea.Msg
	infoCalls []role
	exit      bool
	listen    bool
}

func (a *testApp) Update(msg tea.Msg) tea.Cmd {
	a.seen = append(a.seen, msg)
	switch m := msg.(type) {
	case incMsg:
		a.count++
	case runMsg:
		return m.cmd
	}
	return nil
}

func (a *testApp) View(id runtime.WindowID) ui.Element {
	return widget.NewColumn(
		widget.Text{Content: id.String()},
		widget.Button{ID: "inc", Label: "inc", OnPress: incMsg{}},
		widget.Text{Content: fmt.Sprintf("count: %d", a.count)},
	)
}

func (a *testApp) SetWindowInfo(id runtime.WindowID, info role) {
	a.infoCalls = append(a.infoCalls, info)
	a.Base.SetWindowInfo(id, info)
}

func (a *testApp) ShouldExit() bool { return a.exit }

func (a *testApp) Subscriptions() []subscription.Subscription {
	if !a.listen {
		return nil
	}
	return []subscription.Subscription{
		subscription.ListenIgnored("keys", func(ev event.Event, _ runtime.WindowID) tea.Msg {
			if kp, ok := ev.(event.KeyPressed); ok {
				return keyMsg{kp.String()}
			}
			return nil
		}),
	}
}

func (a *testApp) messages() []tea.Msg {
	var out []tea.Msg
	for _, msg := range a.seen {
		if _, ok := msg.(runMsg); !ok {
			out = append(out, msg)
		}
	}
	return out
}

// converterApp maps custom actions onto engine actions.
type converterApp struct {
	testApp
}

func (a *converterApp) ConvertAction(v any) (tea.Msg, bool) {
	if v == "shrink" {
		return action.SizeChangeMsg{ID: runtime.MainWindow, Width: 10, Height: 5}, true
	}
	return nil, false
}

// recorder keeps the events each window's interface was updated with.
type recorder struct {
	builds int
	events map[string][]event.Event
}

type recordingBuilder struct {
	inner ui.Builder
	rec   *recorder
}

type recordingUI struct {
	ui.UserInterface
	name string
	b    *recordingBuilder
}

func newRecordingBuilder() *recordingBuilder {
	return &recordingBuilder{inner: widget.NewBuilder(), rec: &recorder{events: map[string][]event.Event{}}}
}

func (b *recordingBuilder) Build(root ui.Element, bounds runtime.Size, cache ui.Cache, r ui.Renderer) ui.UserInterface {
	b.rec.builds++
	return &recordingUI{UserInterface: b.inner.Build(root, bounds, cache, r), name: windowName(root), b: b}
}

func (u *recordingUI) Update(evs []event.Event, cursor runtime.Cursor, r ui.Renderer, messages *[]tea.Msg) (runtime.UIState, []runtime.Status) {
	for _, ev := range evs {
		if _, redraw := ev.(event.RedrawRequested); !redraw {
			u.b.rec.events[u.name] = append(u.b.rec.events[u.name], ev)
		}
	}
	return u.UserInterface.Update(evs, cursor, r, messages)
}

func (u *recordingUI) Relayout(bounds runtime.Size, r ui.Renderer) ui.UserInterface {
	return &recordingUI{UserInterface: u.UserInterface.Relayout(bounds, r), name: u.name, b: u.b}
}

func windowName(root ui.Element) string {
	if col, ok := root.(widget.Column); ok && len(col.Children) > 0 {
		if text, ok := col.Children[0].(widget.Text); ok {
			return text.Content
		}
	}
	return ""
}

func startHarness(t *testing.T, app Application[role], settings layershell.Settings) (*Harness[role], *recorder) {
	t.Helper()
	builder := newRecordingBuilder()
	h, err := NewHarness(app, settings, HarnessOptions{Builder: builder})
	if err != nil {
		t.Fatalf("failed to start harness: %v", err)
	}
	return h, builder.rec
}

func countRequests[T layershell.Request](reqs []layershell.Request) int {
	n := 0
	for _, req := range reqs {
		if _, ok := req.(T); ok {
			n++
		}
	}
	return n
}

func openLeft(t *testing.T, h *Harness[role]) runtime.WindowID {
	t.Helper()
	h.Send(runMsg{action.NewLayerShell(layershell.NewLayerShellSettings{
		Size:   &layershell.Size{Width: 30},
		Anchor: layershell.AnchorLeft | layershell.AnchorTop | layershell.AnchorBottom,
	}, roleLeft)})
	ids := h.Host().Windows()
	if len(ids) != 2 {
		t.Fatalf("expected 2 windows, got %v", ids)
	}
	return ids[1]
}

func TestPointerEventsReachTheirWindow(t *testing.T) {
	app := &testApp{}
	settings := layershell.DefaultSettings()
	settings.Size = &layershell.Size{Width: 400}
	settings.Anchor = layershell.AnchorBottom
	h, rec := startHarness(t, app, settings)

	comp := h.Compositor()
	comp.ResetRequests()
	rec.events = map[string][]event.Event{}

	comp.PointerEnter(1, 10, 10)
	comp.PointerMotion(1, 10, 10)
	h.Pump()

	got := rec.events["window(main)"]
	if len(got) != 2 {
		t.Fatalf("expected 2 events for the main window, got %#v", got)
	}
	if _, ok := got[0].(event.CursorEntered); !ok {
		t.Fatalf("expected cursor entered first, got %#v", got[0])
	}
	if moved, ok := got[1].(event.CursorMoved); !ok || moved.Position != (runtime.Point{X: 10, Y: 10}) {
		t.Fatalf("expected cursor moved to (10,10), got %#v", got[1])
	}
	if len(app.seen) != 0 {
		t.Fatalf("expected no application messages, got %#v", app.seen)
	}
	for _, req := range comp.Requests() {
		switch req.(type) {
		case layershell.RedrawAll, layershell.RedrawSurface:
		default:
			t.Fatalf("expected only redraw bookkeeping, got %s", req)
		}
	}
	if s, _ := comp.Surface(1); s.Size.Width != 400 {
		t.Fatalf("expected main surface width 400, got %d", s.Size.Width)
	}
}

// surfaceHandle addresses a surface by id without going through the
// compositor's input helpers.
type surfaceHandle layershell.SurfaceID

func (s surfaceHandle) ID() layershell.SurfaceID { return layershell.SurfaceID(s) }

func TestSurfacelessInputReachesEveryWindowInOrder(t *testing.T) {
	app := &testApp{}
	h, rec := startHarness(t, app, layershell.DefaultSettings())
	left := openLeft(t, h)
	mainSurface, _ := h.Host().Surface(runtime.MainWindow)
	leftSurface, _ := h.Host().Surface(left)
	rec.events = map[string][]event.Event{}

	shift := layershell.ModifiersState{Shift: true}
	inputs := []layershell.RequestMessages{
		{Surface: surfaceHandle(mainSurface), Message: layershell.MouseEnter{Serial: 7, X: 1, Y: 1}},
		{Surface: surfaceHandle(leftSurface), Message: layershell.MouseEnter{Serial: 8, X: 1, Y: 1}},
		{Message: layershell.ModifiersChanged{Modifiers: shift}},
		{Surface: surfaceHandle(mainSurface), Message: layershell.MouseMotion{X: 2, Y: 2}},
		{Surface: surfaceHandle(leftSurface), Message: layershell.MouseMotion{X: 3, Y: 3}},
	}
	for _, in := range inputs {
		h.Host().Dispatch(in)
	}
	h.Host().Dispatch(layershell.NormalDispatch{})

	cases := []struct {
		window runtime.WindowID
		moved  runtime.Point
	}{
		{runtime.MainWindow, runtime.Point{X: 2, Y: 2}},
		{left, runtime.Point{X: 3, Y: 3}},
	}
	for _, tc := range cases {
		got := rec.events[tc.window.String()]
		if len(got) != 3 {
			t.Fatalf("expected 3 events for %s, got %#v", tc.window, got)
		}
		if _, ok := got[0].(event.CursorEntered); !ok {
			t.Fatalf("expected cursor entered first for %s, got %#v", tc.window, got[0])
		}
		mods, ok := got[1].(event.ModifiersChanged)
		if !ok || mods.Modifiers != event.FromState(shift) {
			t.Fatalf("expected the shared modifiers change second for %s, got %#v", tc.window, got[1])
		}
		if moved, ok := got[2].(event.CursorMoved); !ok || moved.Position != tc.moved {
			t.Fatalf("expected cursor moved to %v last for %s, got %#v", tc.moved, tc.window, got[2])
		}
	}
}

func TestMainWindowIsFirstWindow(t *testing.T) {
	h, _ := startHarness(t, &testApp{}, layershell.DefaultSettings())
	ids := h.Host().Windows()
	if len(ids) != 1 || ids[0] != runtime.MainWindow {
		t.Fatalf("expected only the main window, got %v", ids)
	}
	if !strings.Contains(h.View(runtime.MainWindow), "window(main)") {
		t.Fatalf("expected main window frame to be presented, got %q", h.View(runtime.MainWindow))
	}
}

func TestNewLayerShellRegistersInfoOnce(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())

	id := openLeft(t, h)
	if id == runtime.MainWindow {
		t.Fatalf("expected a fresh window id")
	}
	if len(app.infoCalls) != 1 || app.infoCalls[0] != roleLeft {
		t.Fatalf("expected one registration with Left, got %v", app.infoCalls)
	}
	if info, ok := app.WindowInfo(id); !ok || info != roleLeft {
		t.Fatalf("expected window info Left, got %v %v", info, ok)
	}
	if n := countRequests[layershell.NewLayerShell](h.Compositor().Requests()); n != 1 {
		t.Fatalf("expected one create-surface request, got %d", n)
	}
	surfaces := h.Compositor().Surfaces()
	if len(surfaces) != 2 || surfaces[1].Size != (layershell.Size{Width: 30, Height: 24}) {
		t.Fatalf("expected a 30x24 second surface, got %+v", surfaces)
	}
	if !strings.Contains(h.View(id), id.String()) {
		t.Fatalf("expected the new window to present its own view, got %q", h.View(id))
	}
}

func TestResizeKeepsWindowIdentity(t *testing.T) {
	app := &testApp{}
	h, rec := startHarness(t, app, layershell.DefaultSettings())
	id := openLeft(t, h)
	surface, _ := h.Host().Surface(id)

	h.Compositor().Resize(surface, 50, 10)
	h.Pump()

	if ids := h.Host().Windows(); len(ids) != 2 || ids[1] != id {
		t.Fatalf("expected window ids to be unchanged, got %v", ids)
	}
	if info, _ := app.WindowInfo(id); info != roleLeft {
		t.Fatalf("expected info to survive resize, got %v", info)
	}
	if len(app.infoCalls) != 1 {
		t.Fatalf("expected no further registrations, got %v", app.infoCalls)
	}
	resized := false
	for _, ev := range rec.events[id.String()] {
		if r, ok := ev.(event.Resized); ok && r.Width == 50 && r.Height == 10 {
			resized = true
		}
	}
	if !resized {
		t.Fatalf("expected a resized event for %s, got %#v", id, rec.events[id.String()])
	}
}

func TestMenuPlacement(t *testing.T) {
	cases := []struct {
		name      string
		direction layershell.MenuDirection
		want      layershell.Point
	}{
		{"up", layershell.MenuUp, layershell.Point{X: 50, Y: 50}},
		{"down", layershell.MenuDown, layershell.Point{X: 50, Y: 80}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := &testApp{}
			h, _ := startHarness(t, app, layershell.DefaultSettings())
			comp := h.Compositor()
			comp.PointerEnter(1, 50, 80)
			h.Pump()

			h.Send(runMsg{action.NewMenu(layershell.MenuSettings{Size: layershell.Size{Width: 20, Height: 30}, Direction: tc.direction}, roleMenu)})

			surfaces := comp.Surfaces()
			if len(surfaces) != 2 {
				t.Fatalf("expected a popup surface, got %+v", surfaces)
			}
			popup := surfaces[1]
			if popup.Kind.String() != "popup" || popup.Parent != 1 {
				t.Fatalf("expected a popup on surface 1, got %+v", popup)
			}
			if popup.Position != tc.want {
				t.Fatalf("expected popup at %+v, got %+v", tc.want, popup.Position)
			}
			if len(app.infoCalls) != 1 || app.infoCalls[0] != roleMenu {
				t.Fatalf("expected the menu to register its info, got %v", app.infoCalls)
			}
		})
	}
}

func TestPlaceMenu(t *testing.T) {
	up := PlaceMenu(runtime.Point{X: 50, Y: 80}, layershell.MenuSettings{Size: layershell.Size{Width: 10, Height: 30}, Direction: layershell.MenuUp})
	if up.Position != (layershell.Point{X: 50, Y: 50}) || up.Size.Height != 30 {
		t.Fatalf("unexpected upward placement %+v", up)
	}
	down := PlaceMenu(runtime.Point{X: 50, Y: 80}, layershell.MenuSettings{Size: layershell.Size{Width: 10, Height: 30}})
	if down.Position != (layershell.Point{X: 50, Y: 80}) {
		t.Fatalf("unexpected downward placement %+v", down)
	}
}

func TestIdleTickIsNoop(t *testing.T) {
	h, rec := startHarness(t, &testApp{}, layershell.DefaultSettings())
	comp := h.Compositor()
	comp.ResetRequests()
	builds := rec.builds

	comp.Tick()
	h.Pump()

	if reqs := comp.Requests(); len(reqs) != 0 {
		t.Fatalf("expected no requests, got %v", reqs)
	}
	if rec.builds != builds {
		t.Fatalf("expected no rebuild, got %d new builds", rec.builds-builds)
	}
	if h.Host().Phase() != PhaseIdle {
		t.Fatalf("expected idle phase, got %s", h.Host().Phase())
	}
}

func TestButtonClickUpdatesApplication(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	h.Compositor().PointerEnter(1, 0, 0)
	h.Compositor().Click(1, 2, 1)
	h.Pump()

	if app.count != 1 {
		t.Fatalf("expected one increment, got %d", app.count)
	}
	if !strings.Contains(h.View(runtime.MainWindow), "count: 1") {
		t.Fatalf("expected redrawn count, got %q", h.View(runtime.MainWindow))
	}
	if shape := h.Compositor().CursorShape(); shape != "pointer" {
		t.Fatalf("expected pointer cursor over the button, got %q", shape)
	}
	for _, req := range h.Compositor().Requests() {
		if r, ok := req.(layershell.SetCursorShape); ok && r.Serial != 1 {
			t.Fatalf("expected cursor requests to carry the enter serial, got %d", r.Serial)
		}
	}
}

func TestCloseSecondaryWindowRemovesSurface(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	id := openLeft(t, h)
	h.Compositor().ResetRequests()

	h.Send(runMsg{action.Close(id)})

	reqs := h.Compositor().Requests()
	if n := countRequests[layershell.RemoveLayerShell](reqs); n != 1 {
		t.Fatalf("expected exactly one remove request, got %d in %v", n, reqs)
	}
	if h.Host().Exited() {
		t.Fatalf("expected closing a secondary window not to exit")
	}
	if ids := h.Host().Windows(); len(ids) != 1 {
		t.Fatalf("expected the window to be removed, got %v", ids)
	}
	if _, ok := app.WindowInfo(id); ok {
		t.Fatalf("expected the removal hook to drop the info")
	}
	if len(h.Compositor().Surfaces()) != 1 {
		t.Fatalf("expected the surface to be destroyed")
	}
}

func TestCloseMainWindowExits(t *testing.T) {
	h, _ := startHarness(t, &testApp{}, layershell.DefaultSettings())
	openLeft(t, h)
	h.Compositor().ResetRequests()

	h.Send(runMsg{action.Close(runtime.MainWindow)})

	reqs := h.Compositor().Requests()
	if n := countRequests[layershell.RemoveLayerShell](reqs); n != 0 {
		t.Fatalf("expected no remove request, got %v", reqs)
	}
	if n := countRequests[layershell.Exit](reqs); n != 1 {
		t.Fatalf("expected one exit request, got %v", reqs)
	}
	if !h.Host().Exited() || !h.Compositor().Exited() {
		t.Fatalf("expected host and compositor to exit")
	}
	if out := h.Host().Dispatch(layershell.NormalDispatch{}); out != nil {
		t.Fatalf("expected no requests after exit, got %v", out)
	}
}

func TestCompositorCloseOfSecondaryWindow(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	id := openLeft(t, h)
	surface, _ := h.Host().Surface(id)

	h.Compositor().Close(surface)
	h.Pump()

	if ids := h.Host().Windows(); len(ids) != 1 {
		t.Fatalf("expected the closed window to be removed, got %v", ids)
	}
	if h.Host().Exited() {
		t.Fatalf("expected the engine to keep running")
	}
	if len(h.Compositor().Surfaces()) != 1 {
		t.Fatalf("expected the compositor to drop the closed surface")
	}
}

func TestQuitExits(t *testing.T) {
	h, _ := startHarness(t, &testApp{}, layershell.DefaultSettings())
	h.Send(runMsg{tea.Quit})
	if !h.Host().Exited() {
		t.Fatalf("expected tea.Quit to exit")
	}
}

func TestShouldExitHook(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	app.exit = true
	h.Send(incMsg{})
	if !h.Host().Exited() {
		t.Fatalf("expected ShouldExit to stop the engine")
	}
}

func TestMalformedTaggedActionIsDropped(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	h.Compositor().ResetRequests()

	h.Send(runMsg{action.NewLayerShell(layershell.NewLayerShellSettings{}, 42)})

	if n := countRequests[layershell.NewLayerShell](h.Compositor().Requests()); n != 0 {
		t.Fatalf("expected a mistagged action to be dropped, got %d requests", n)
	}
	if len(h.Host().Windows()) != 1 || h.Host().Exited() {
		t.Fatalf("expected the engine to be unaffected")
	}
}

func TestCustomActionConversion(t *testing.T) {
	app := &converterApp{}
	builder := newRecordingBuilder()
	h, err := NewHarness[role](app, layershell.DefaultSettings(), HarnessOptions{Builder: builder})
	if err != nil {
		t.Fatalf("failed to start harness: %v", err)
	}

	h.Send(runMsg{action.Custom("unknown")})
	if n := countRequests[layershell.SetSize](h.Compositor().Requests()); n != 0 {
		t.Fatalf("expected an unconvertible action to be dropped")
	}

	h.Send(runMsg{action.Custom("shrink")})
	s, _ := h.Compositor().Surface(1)
	if s.Size != (layershell.Size{Width: 10, Height: 5}) {
		t.Fatalf("expected the main surface to shrink, got %+v", s.Size)
	}
}

func TestCustomActionWithoutConverterIsDropped(t *testing.T) {
	h, _ := startHarness(t, &testApp{}, layershell.DefaultSettings())
	h.Compositor().ResetRequests()
	h.Send(runMsg{action.Custom("shrink")})
	if n := countRequests[layershell.SetSize](h.Compositor().Requests()); n != 0 {
		t.Fatalf("expected no size change without a converter")
	}
}

func TestSurfaceActions(t *testing.T) {
	h, _ := startHarness(t, &testApp{}, layershell.DefaultSettings())
	id := openLeft(t, h)
	surface, _ := h.Host().Surface(id)

	h.Send(runMsg{tea.Batch(
		action.ChangeLayer(id, layershell.LayerOverlay),
		action.ChangeMargin(id, layershell.Margin{Left: 4}),
		action.ChangeExclusiveZone(id, 30),
		action.ChangeAnchor(id, layershell.AnchorRight),
		action.ChangeLayer(runtime.WindowID(9999), layershell.LayerBottom),
	)})

	s, _ := h.Compositor().Surface(surface)
	if s.Layer != layershell.LayerOverlay || s.Margin.Left != 4 || s.ExclusiveZone != 30 || s.Anchor != layershell.AnchorRight {
		t.Fatalf("expected surface actions to apply, got %+v", s)
	}
	if n := countRequests[layershell.SetLayer](h.Compositor().Requests()); n != 1 {
		t.Fatalf("expected the action on a missing window to be dropped, got %d layer requests", n)
	}
}

type boundsMsg struct{ bounds runtime.Rect }

func TestOperateQueriesBounds(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	h.Send(runMsg{action.Operate(ui.QueryBounds("inc", func(r runtime.Rect) tea.Msg { return boundsMsg{r} }))})

	var got *boundsMsg
	for _, msg := range app.messages() {
		if b, ok := msg.(boundsMsg); ok {
			got = &b
		}
	}
	if got == nil {
		t.Fatalf("expected a bounds message, got %#v", app.seen)
	}
	if got.bounds.Y != 1 || got.bounds.Width != 7 {
		t.Fatalf("expected button bounds at row 1 width 7, got %+v", got.bounds)
	}
}

type shotMsg struct{ shot action.Screenshot }

func TestScreenshot(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	h.Send(runMsg{action.TakeScreenshot(runtime.MainWindow, func(s action.Screenshot) tea.Msg { return shotMsg{s} })})
	h.Send(runMsg{action.TakeScreenshot(runtime.WindowID(4242), func(s action.Screenshot) tea.Msg { return shotMsg{s} })})

	var shots []action.Screenshot
	for _, msg := range app.messages() {
		if s, ok := msg.(shotMsg); ok {
			shots = append(shots, s.shot)
		}
	}
	if len(shots) != 1 {
		t.Fatalf("expected exactly one screenshot, got %d", len(shots))
	}
	if shots[0].Viewport.Width != 80 || !strings.Contains(string(shots[0].Bytes), "window(main)") {
		t.Fatalf("unexpected screenshot %+v", shots[0].Viewport)
	}
}

type fontMsg struct{ err error }

func TestLoadFontReportsErrors(t *testing.T) {
	app := &testApp{}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	h.Send(runMsg{action.LoadFont(nil, func(err error) tea.Msg { return fontMsg{err} })})
	h.Send(runMsg{action.LoadFont([]byte("font"), func(err error) tea.Msg { return fontMsg{err} })})

	var results []error
	for _, msg := range app.messages() {
		if f, ok := msg.(fontMsg); ok {
			results = append(results, f.err)
		}
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 font results, got %d", len(results))
	}
	if !errors.Is(results[0], widget.ErrEmptyFont) {
		t.Fatalf("expected ErrEmptyFont, got %v", results[0])
	}
	if results[1] != nil {
		t.Fatalf("expected the second font to load, got %v", results[1])
	}
}

func TestVirtualKeyIsReleased(t *testing.T) {
	settings := layershell.DefaultSettings()
	settings.VirtualKeyboard = &layershell.VirtualKeyboardSettings{KeymapPath: "/tmp/keymap.xkb"}
	builder := newRecordingBuilder()
	h, err := NewHarness[role](&testApp{}, settings, HarnessOptions{
		Builder:   builder,
		Protocols: []layershell.Protocol{layershell.ProtocolVirtualKeyboard},
	})
	if err != nil {
		t.Fatalf("failed to start harness: %v", err)
	}
	if bound := h.Compositor().Bound(); len(bound) != 1 || bound[0] != layershell.ProtocolVirtualKeyboard {
		t.Fatalf("expected the virtual keyboard to be bound, got %v", bound)
	}

	h.Send(runMsg{action.PressVirtualKey(7, 30)})

	deadline := time.Now().Add(2 * time.Second)
	for len(h.Compositor().VirtualKeys()) < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
		h.Compositor().Tick()
		h.Pump()
	}
	keys := h.Compositor().VirtualKeys()
	if len(keys) != 2 {
		t.Fatalf("expected press and release, got %v", keys)
	}
	if keys[0].State != layershell.KeyPressed || keys[1].State != layershell.KeyReleased || keys[1].Key != 30 {
		t.Fatalf("unexpected key sequence %v", keys)
	}
}

func TestMissingVirtualKeyboardFailsStartup(t *testing.T) {
	settings := layershell.DefaultSettings()
	settings.VirtualKeyboard = &layershell.VirtualKeyboardSettings{}
	_, err := NewHarness[role](&testApp{}, settings, HarnessOptions{})
	if !errors.Is(err, ErrVirtualKeyboardUnsupported) {
		t.Fatalf("expected ErrVirtualKeyboardUnsupported, got %v", err)
	}
}

func TestListenersSeeIgnoredEvents(t *testing.T) {
	app := &testApp{listen: true}
	h, _ := startHarness(t, app, layershell.DefaultSettings())
	comp := h.Compositor()
	comp.KeyboardEnter(1)
	comp.Type(1, 16, 'q', "q")
	h.Pump()

	var keys []string
	for _, msg := range app.messages() {
		if k, ok := msg.(keyMsg); ok {
			keys = append(keys, k.key)
		}
	}
	if len(keys) != 1 || keys[0] != "q" {
		t.Fatalf("expected one q key message, got %v", keys)
	}
}

func TestHostCloseShutsDownLoop(t *testing.T) {
	h, _ := startHarness(t, &testApp{}, layershell.DefaultSettings())
	h.Host().Close()
	out := h.Host().Dispatch(layershell.NormalDispatch{})
	if n := countRequests[layershell.Exit](out); n != 1 {
		t.Fatalf("expected an exit request after close, got %v", out)
	}
	if h.Host().Phase() != PhaseShuttingDown {
		t.Fatalf("expected shutting-down phase, got %s", h.Host().Phase())
	}
}

func TestCloseRacingDispatchShutsDownCleanly(t *testing.T) {
	motion := layershell.RequestMessages{Surface: surfaceHandle(1), Message: layershell.MouseMotion{X: 1, Y: 1}}
	for i := 0; i < 200; i++ {
		host, err := NewHost[role](&testApp{}, Options{
			Builder:   widget.NewBuilder(),
			Presenter: widget.NewPresenter(nil),
			Executor:  InlineExecutor{},
		})
		if err != nil {
			t.Fatalf("failed to create host: %v", err)
		}
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			host.Close()
		}()
		exits := 0
		for j := 0; j < 50 && !host.Exited(); j++ {
			exits += countRequests[layershell.Exit](host.Dispatch(motion))
			exits += countRequests[layershell.Exit](host.Dispatch(layershell.NormalDispatch{}))
		}
		wg.Wait()
		exits += countRequests[layershell.Exit](host.Dispatch(layershell.NormalDispatch{}))
		if exits != 1 || !host.Exited() {
			t.Fatalf("expected exactly one exit request after close, got %d", exits)
		}
	}
}

func TestNewHostValidatesOptions(t *testing.T) {
	if _, err := NewHost[role](nil, Options{}); err == nil {
		t.Fatalf("expected an error for a nil application")
	}
	if _, err := NewHost[role](&testApp{}, Options{}); err == nil {
		t.Fatalf("expected an error without builder and presenter")
	}
	host, err := NewHost[role](&testApp{}, Options{Builder: widget.NewBuilder(), Presenter: widget.NewPresenter(nil)})
	if err != nil {
		t.Fatalf("expected host, got %v", err)
	}
	if host.Settings().Namespace != "tea-layershell" {
		t.Fatalf("expected namespace from the application, got %q", host.Settings().Namespace)
	}
}
