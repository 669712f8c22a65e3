// Package demo is a small multi-window counter: a main surface with a
// counter, a side panel layer surface, a command launcher popup and a
// pointer menu.
package demo

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/action"
	"github.com/atomicstack/tea-layershell/internal/engine"
	"github.com/atomicstack/tea-layershell/internal/event"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/subscription"
	"github.com/atomicstack/tea-layershell/internal/theme"
	"github.com/atomicstack/tea-layershell/internal/ui"
	"github.com/atomicstack/tea-layershell/internal/widget"
)

// Role tags every window the demo opens besides the main one.
type Role int

const (
	RolePanel Role = iota + 1
	RoleLauncher
	RoleMenu
)

func (r Role) String() string {
	switch r {
	case RolePanel:
		return "panel"
	case RoleLauncher:
		return "launcher"
	case RoleMenu:
		return "menu"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

const (
	panelWidth   = 24
	queryInputID = "query"
)

var (
	launcherSize = layershell.Size{Width: 40, Height: 10}
	menuSize     = layershell.Size{Width: 16, Height: 5}
)

type (
	incrementMsg  struct{}
	decrementMsg  struct{}
	resetMsg      struct{}
	themeMsg      struct{}
	panelMsg      struct{}
	flipMsg       struct{}
	launcherMsg   struct{}
	menuMsg       struct{}
	quitMsg       struct{}
	virtualKeyMsg struct{}
	clockMsg      time.Time
	queryMsg      string
)

type closeMsg struct{ window runtime.WindowID }

type submitMsg struct{ window runtime.WindowID }

// pickMsg is a menu entry: it closes the menu and then runs msg.
type pickMsg struct {
	window runtime.WindowID
	msg    tea.Msg
}

type openedMsg struct{ window runtime.WindowID }

type keyMsg struct {
	key    event.KeyPressed
	window runtime.WindowID
}

type Options struct {
	// Clock shows the time in the main window, updated every second.
	Clock bool
}

type App struct {
	engine.Base[Role]
	opts Options

	count    int
	query    string
	status   string
	light    bool
	flipped  bool
	quitting bool
	now      time.Time
}

func New(opts Options) *App {
	return &App{opts: opts}
}

func (a *App) Namespace() string { return "tea-layershell-demo" }

func (a *App) Count() int { return a.count }

func (a *App) Status() string { return a.status }

func (a *App) Subscriptions() []subscription.Subscription {
	subs := []subscription.Subscription{
		subscription.ListenIgnored("keys", func(ev event.Event, id runtime.WindowID) tea.Msg {
			switch e := ev.(type) {
			case event.KeyPressed:
				return keyMsg{key: e, window: id}
			case event.Opened:
				return openedMsg{window: id}
			}
			return nil
		}),
	}
	if a.opts.Clock {
		subs = append(subs, subscription.Every("clock", time.Second, func(t time.Time) tea.Msg {
			return clockMsg(t)
		}))
	}
	return subs
}

func (a *App) Appearance() runtime.Appearance {
	if a.light {
		return theme.LightAppearance()
	}
	return theme.DefaultAppearance()
}

func (a *App) ShouldExit() bool { return a.quitting }

func (a *App) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case incrementMsg:
		a.count++
	case decrementMsg:
		a.count--
	case resetMsg:
		a.count = 0
	case themeMsg:
		a.light = !a.light
	case clockMsg:
		a.now = time.Time(m)
	case queryMsg:
		a.query = string(m)
	case panelMsg:
		return a.togglePanel()
	case flipMsg:
		return a.flipPanel()
	case launcherMsg:
		if _, ok := a.find(RoleLauncher); ok {
			return nil
		}
		a.query = ""
		return action.NewPopup(layershell.PopupSettings{Size: launcherSize, Position: layershell.Point{X: 2, Y: 2}}, RoleLauncher)
	case menuMsg:
		return action.NewMenu(layershell.MenuSettings{Size: menuSize, Direction: layershell.MenuDown}, RoleMenu)
	case virtualKeyMsg:
		code, _ := event.Scancode("KeyA")
		return action.PressVirtualKey(uint32(time.Now().UnixMilli()), code)
	case closeMsg:
		return action.Close(m.window)
	case quitMsg:
		a.quitting = true
	case submitMsg:
		return a.launch(m.window)
	case pickMsg:
		return tea.Batch(action.Close(m.window), a.Update(m.msg))
	case openedMsg:
		if role, ok := a.WindowInfo(m.window); ok && role == RoleLauncher {
			return action.Operate(ui.FocusOn(queryInputID))
		}
	case keyMsg:
		return a.handleKey(m)
	}
	return nil
}

func (a *App) handleKey(m keyMsg) tea.Cmd {
	switch {
	case key.Matches(m.key, keys.Quit):
		return tea.Quit
	case key.Matches(m.key, keys.Close):
		if m.window != runtime.MainWindow {
			return action.Close(m.window)
		}
	case key.Matches(m.key, keys.Increment):
		a.count++
	case key.Matches(m.key, keys.Decrement):
		a.count--
	case key.Matches(m.key, keys.Panel):
		return a.togglePanel()
	case key.Matches(m.key, keys.Flip):
		return a.flipPanel()
	case key.Matches(m.key, keys.Launcher):
		return a.Update(launcherMsg{})
	case key.Matches(m.key, keys.Menu):
		return a.Update(menuMsg{})
	case key.Matches(m.key, keys.Theme):
		a.light = !a.light
	case key.Matches(m.key, keys.Type):
		return a.Update(virtualKeyMsg{})
	}
	return nil
}

// find returns the first window tagged with role.
func (a *App) find(role Role) (runtime.WindowID, bool) {
	for _, id := range a.Windows() {
		if r, _ := a.WindowInfo(id); r == role {
			return id, true
		}
	}
	return 0, false
}

func (a *App) panelAnchor() layershell.Anchor {
	edge := layershell.AnchorLeft
	if a.flipped {
		edge = layershell.AnchorRight
	}
	return edge | layershell.AnchorTop | layershell.AnchorBottom
}

func (a *App) togglePanel() tea.Cmd {
	if id, ok := a.find(RolePanel); ok {
		return action.Close(id)
	}
	zone := int32(panelWidth)
	return action.NewLayerShell(layershell.NewLayerShellSettings{
		Size:                  &layershell.Size{Width: panelWidth},
		ExclusiveZone:         &zone,
		Anchor:                a.panelAnchor(),
		Layer:                 layershell.LayerTop,
		KeyboardInteractivity: layershell.KeyboardNone,
	}, RolePanel)
}

func (a *App) flipPanel() tea.Cmd {
	id, ok := a.find(RolePanel)
	if !ok {
		return nil
	}
	a.flipped = !a.flipped
	return action.ChangeAnchor(id, a.panelAnchor())
}

// launch runs the best launcher match and closes the launcher.
func (a *App) launch(window runtime.WindowID) tea.Cmd {
	found := matches(a.query)
	a.query = ""
	if len(found) == 0 {
		a.status = "no match"
		return action.Close(window)
	}
	a.status = "ran " + found[0].name
	msg := found[0].msg
	return tea.Batch(action.Close(window), func() tea.Msg { return msg })
}

func (a *App) View(id runtime.WindowID) ui.Element {
	if id == runtime.MainWindow {
		return a.mainView()
	}
	role, _ := a.WindowInfo(id)
	switch role {
	case RolePanel:
		return widget.Column{Padding: 1, Children: []ui.Element{
			widget.Text{Content: "panel", Header: true},
			widget.Text{Content: fmt.Sprintf("count: %d", a.count)},
			widget.Button{ID: "close", Label: "close", OnPress: closeMsg{window: id}},
		}}
	case RoleLauncher:
		return a.launcherView(id)
	case RoleMenu:
		return widget.Column{Children: []ui.Element{
			widget.Button{ID: "reset", Label: "reset", OnPress: pickMsg{window: id, msg: resetMsg{}}},
			widget.Button{ID: "theme", Label: "theme", OnPress: pickMsg{window: id, msg: themeMsg{}}},
			widget.Button{ID: "dismiss", Label: "dismiss", OnPress: closeMsg{window: id}},
		}}
	}
	return widget.Space{}
}

func (a *App) mainView() ui.Element {
	children := []ui.Element{
		widget.Text{Content: "tea-layershell", Header: true},
		widget.Text{Content: fmt.Sprintf("count: %d", a.count)},
		widget.NewRow(
			widget.Button{ID: "decrement", Label: "-", OnPress: decrementMsg{}},
			widget.Button{ID: "increment", Label: "+", OnPress: incrementMsg{}},
		).WithSpacing(1),
		widget.NewRow(
			widget.Button{ID: "panel", Label: "panel", OnPress: panelMsg{}},
			widget.Button{ID: "launcher", Label: "launcher", OnPress: launcherMsg{}},
			widget.Button{ID: "menu", Label: "menu", OnPress: menuMsg{}},
			widget.Button{ID: "quit", Label: "quit", OnPress: quitMsg{}},
		).WithSpacing(1),
	}
	if a.status != "" {
		children = append(children, widget.Text{Content: a.status})
	}
	if a.opts.Clock && !a.now.IsZero() {
		children = append(children, widget.Text{Content: a.now.Format("15:04:05")})
	}
	children = append(children, widget.Text{Content: keys.help()})
	return widget.Column{Padding: 1, Spacing: 1, Children: children}
}
