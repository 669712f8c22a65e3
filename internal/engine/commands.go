package engine

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/action"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/logging"
	"github.com/atomicstack/tea-layershell/internal/logging/events"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

// maxOperationChain bounds how many chained operations one OperateMsg may
// run.
const maxOperationChain = 16

func isAction(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.BatchMsg, tea.QuitMsg, action.Action:
		return true
	}
	return false
}

// runAction executes msg when it is an engine action and reports whether it
// was one.
func (l *Loop[Info]) runAction(msg tea.Msg) bool {
	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, cmd := range m {
			l.executor.Spawn(cmd, l.send)
		}
	case tea.QuitMsg:
		l.requestExit("quit")
	case action.StreamMsg:
		events.Command.Spawn("stream")
		l.executor.Stream(l.ctx, m.Run, l.send)
	case action.OperateMsg:
		l.operate(m.Op)
	case action.LoadFontMsg:
		l.loadFont(m)
	case action.ScreenshotMsg:
		l.screenshot(m)
	case action.CustomMsg:
		l.custom(m)
	case action.NewLayerShellMsg[Info]:
		l.emit(layershell.NewLayerShell{Settings: m.Settings, Info: m.Info})
	case action.NewPopupMsg[Info]:
		l.emit(layershell.NewPopup{Settings: m.Settings, Info: m.Info})
	case action.NewMenuMsg[Info]:
		l.emit(layershell.RequestMenu{Settings: m.Settings, Info: m.Info})
	case action.Tagged:
		events.Action.Malformed(fmt.Sprintf("%T", msg))
	case action.Action:
		l.translate(m)
	default:
		return false
	}
	return true
}

// translate maps a window action onto a compositor request for the window's
// surface. Actions on windows that are already gone are dropped.
func (l *Loop[Info]) translate(a action.Action) {
	switch m := a.(type) {
	case action.CloseMsg:
		l.close(m.ID, "close")
	case action.RemoveWindowMsg:
		l.close(m.ID, "remove")
	case action.AnchorChangeMsg:
		l.onSurface(m.ID, "anchor", func(s layershell.SurfaceID) layershell.Request {
			return layershell.SetAnchor{Surface: s, Anchor: m.Anchor}
		})
	case action.LayerChangeMsg:
		l.onSurface(m.ID, "layer", func(s layershell.SurfaceID) layershell.Request {
			return layershell.SetLayer{Surface: s, Layer: m.Layer}
		})
	case action.SizeChangeMsg:
		l.onSurface(m.ID, "size", func(s layershell.SurfaceID) layershell.Request {
			return layershell.SetSize{Surface: s, Size: layershell.Size{Width: m.Width, Height: m.Height}}
		})
	case action.MarginChangeMsg:
		l.onSurface(m.ID, "margin", func(s layershell.SurfaceID) layershell.Request {
			return layershell.SetMargin{Surface: s, Margin: m.Margin}
		})
	case action.ExclusiveZoneChangeMsg:
		l.onSurface(m.ID, "exclusive-zone", func(s layershell.SurfaceID) layershell.Request {
			return layershell.SetExclusiveZone{Surface: s, Zone: m.Zone}
		})
	case action.VirtualKeyboardPressedMsg:
		l.emit(layershell.VirtualKey{Time: m.Time, Key: m.Key, State: layershell.KeyPressed})
	default:
		events.Action.Malformed(fmt.Sprintf("%T", a))
	}
}

func (l *Loop[Info]) close(id runtime.WindowID, kind string) {
	if id == runtime.MainWindow {
		l.requestExit(kind + " main window")
		return
	}
	l.onSurface(id, kind, func(s layershell.SurfaceID) layershell.Request {
		return layershell.RemoveLayerShell{Surface: s}
	})
}

func (l *Loop[Info]) onSurface(id runtime.WindowID, kind string, build func(layershell.SurfaceID) layershell.Request) {
	surface, ok := l.registry.SurfaceID(id)
	if !ok {
		events.Action.Drop(kind, id.String())
		return
	}
	l.emit(build(surface))
}

// operate walks every live interface with op. The walk stops at the first
// interface after which op produced a message; a chained operation restarts
// the walk.
func (l *Loop[Info]) operate(op ui.Operation) {
	touched := false
	for round := 0; op != nil && round < maxOperationChain; round++ {
		var next ui.Operation
		visited := 0
		for _, id := range l.registry.IDs() {
			iface, ok := l.caches.Live(id)
			if !ok {
				continue
			}
			entry, _ := l.registry.Get(id)
			iface.Operate(entry.Renderer, op)
			visited++
			touched = true
			out := op.Finish()
			if out.Message != nil {
				events.Command.Operation(fmt.Sprintf("%T", op), visited, true)
				l.messages = append(l.messages, out.Message)
				l.emit(layershell.RedrawAll{})
				return
			}
			if out.Next != nil {
				next = out.Next
				break
			}
		}
		events.Command.Operation(fmt.Sprintf("%T", op), visited, false)
		op = next
	}
	if touched {
		l.emit(layershell.RedrawAll{})
	}
}

func (l *Loop[Info]) loadFont(m action.LoadFontMsg) {
	var first error
	for _, id := range l.registry.IDs() {
		entry, _ := l.registry.Get(id)
		if err := entry.Renderer.LoadFont(m.Data); err != nil && first == nil {
			first = fmt.Errorf("load font into %s: %w", id, err)
		}
	}
	if first != nil {
		logging.Error(first)
	}
	l.caches.DematerializeAll()
	l.rebuild()
	if m.Tag != nil {
		l.messages = append(l.messages, m.Tag(first))
	}
}

func (l *Loop[Info]) screenshot(m action.ScreenshotMsg) {
	entry, ok := l.registry.Get(m.ID)
	if !ok {
		events.Action.Drop("screenshot", m.ID.String())
		return
	}
	vp := entry.State.Viewport()
	shot := action.Screenshot{
		ID:       m.ID,
		Viewport: vp,
		Bytes:    l.presenter.Screenshot(entry.Renderer, vp, entry.State.Appearance().Background),
	}
	if m.Tag != nil {
		l.messages = append(l.messages, m.Tag(shot))
	}
}

func (l *Loop[Info]) custom(m action.CustomMsg) {
	conv, ok := l.app.(ActionConverter)
	if !ok {
		events.Action.Malformed(fmt.Sprintf("%T", m.Value))
		return
	}
	msg, ok := conv.ConvertAction(m.Value)
	if !ok || msg == nil {
		events.Action.Malformed(fmt.Sprintf("%T", m.Value))
		return
	}
	if _, nested := msg.(action.CustomMsg); nested || !l.runAction(msg) {
		events.Action.Malformed(fmt.Sprintf("%T", msg))
	}
}
