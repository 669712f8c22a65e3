package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"code.hybscloud.com/iox"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/event"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/logging"
	"github.com/atomicstack/tea-layershell/internal/logging/events"
	"github.com/atomicstack/tea-layershell/internal/queue"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/subscription"
	"github.com/atomicstack/tea-layershell/internal/ui"
	"github.com/atomicstack/tea-layershell/internal/uicache"
	"github.com/atomicstack/tea-layershell/internal/window"
)

// Phase is the state of the reconciliation loop.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseProcessing
	PhaseFlushing
	PhaseShuttingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseProcessing:
		return "processing"
	case PhaseFlushing:
		return "flushing"
	case PhaseShuttingDown:
		return "shutting-down"
	default:
		return "idle"
	}
}

// loopEvent is what the host feeds the loop.
type loopEvent interface {
	loopEvent()
}

// surfaceReady is a configured surface asking to be drawn.
type surfaceReady struct {
	surface layershell.Surface
	width   uint32
	height  uint32
	scale   float64
	created bool
	info    any
}

// windowInput is a raw input message. A zero surface addresses every
// window.
type windowInput struct {
	surface layershell.SurfaceID
	msg     layershell.DispatchMessage
}

type userMessage struct {
	msg tea.Msg
}

type normalUpdate struct{}

type windowRemoved struct {
	surface layershell.SurfaceID
}

type menuRequested struct {
	surface  layershell.SurfaceID
	settings layershell.MenuSettings
	info     any
}

func (surfaceReady) loopEvent()  {}
func (windowInput) loopEvent()   {}
func (userMessage) loopEvent()   {}
func (normalUpdate) loopEvent()  {}
func (windowRemoved) loopEvent() {}
func (menuRequested) loopEvent() {}

type pendingEvent struct {
	window runtime.WindowID
	all    bool
	ev     event.Event
}

// Loop owns the windows, their interfaces and the application. It only
// runs when polled.
type Loop[Info any] struct {
	app       Application[Info]
	builder   ui.Builder
	presenter ui.Presenter
	executor  Executor
	wake      func()

	events  *queue.Queue[loopEvent]
	actions *queue.Queue[[]layershell.Request]

	registry *window.Registry
	caches   *uicache.Set
	subs     *subscription.Tracker

	ctx    context.Context
	cancel context.CancelFunc

	pending   []pendingEvent
	messages  []tea.Msg
	batch     []layershell.Request
	modifiers event.Modifiers

	mainAssigned bool
	phase        Phase
	exit         bool
	reason       string
	done         bool
}

func newLoop[Info any](app Application[Info], builder ui.Builder, presenter ui.Presenter, executor Executor, wake func(), evs *queue.Queue[loopEvent], actions *queue.Queue[[]layershell.Request]) *Loop[Info] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loop[Info]{
		app:       app,
		builder:   builder,
		presenter: presenter,
		executor:  executor,
		wake:      wake,
		events:    evs,
		actions:   actions,
		registry:  window.NewRegistry(),
		caches:    uicache.NewSet(),
		subs:      subscription.NewTracker(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (l *Loop[Info]) start() {
	l.subs.Track(l.ctx, l.app.Subscriptions(), l.send)
	l.executor.Spawn(l.app.Init(), l.send)
}

// send is how commands, streams and subscriptions reach the loop. Sends
// after shutdown are dropped.
func (l *Loop[Info]) send(msg tea.Msg) {
	if msg == nil {
		return
	}
	if err := l.events.Push(userMessage{msg: msg}); err != nil {
		return
	}
	if l.wake != nil {
		l.wake()
	}
}

// Poll drains the queued events without blocking. It reports true once the
// loop has shut down.
func (l *Loop[Info]) Poll() bool {
	if l.done {
		return true
	}
	for {
		ev, err := l.events.TryPop()
		if errors.Is(err, iox.ErrWouldBlock) {
			break
		}
		if err != nil {
			l.shutdown("event stream closed")
			return true
		}
		l.handle(ev)
		l.flush()
		if l.exit {
			l.shutdown(l.reason)
			return true
		}
	}
	l.setPhase(PhaseIdle)
	return false
}

func (l *Loop[Info]) handle(ev loopEvent) {
	switch e := ev.(type) {
	case surfaceReady:
		l.onSurfaceReady(e)
	case windowInput:
		l.onWindowInput(e)
	case userMessage:
		if !l.runAction(e.msg) {
			l.messages = append(l.messages, e.msg)
		}
	case normalUpdate:
		l.onNormalUpdate()
	case windowRemoved:
		l.onWindowRemoved(e)
	case menuRequested:
		l.onMenuRequested(e)
	}
}

func (l *Loop[Info]) nextID() runtime.WindowID {
	if !l.mainAssigned {
		l.mainAssigned = true
		return runtime.MainWindow
	}
	return runtime.NewWindowID()
}

func (l *Loop[Info]) onSurfaceReady(e surfaceReady) {
	if id, ok := l.registry.Alias(e.surface.ID()); ok {
		l.resize(id, e)
		return
	}

	id := l.nextID()
	entry, err := l.registry.Insert(id, e.width, e.height, e.scale, e.surface, l.app, l.presenter)
	if err != nil {
		logging.Error(fmt.Errorf("open %s: %w", id, err))
		return
	}
	size := entry.State.LogicalSize()
	iface := l.builder.Build(l.app.View(id), size, nil, entry.Renderer)
	l.caches.Insert(id, iface)
	// Opened is scoped to the new window; subscription listeners still see it.
	l.pending = append(l.pending, pendingEvent{window: id, ev: event.Opened{Size: size}})
	events.Window.Opened(id.String(), uint32(e.surface.ID()), e.width, e.height)

	// The first frame is drawn but not presented; the redraw requested
	// below presents it once the interface is complete.
	l.draw(entry, iface, false)

	if e.created && e.info != nil {
		info, ok := e.info.(Info)
		if !ok {
			events.Action.Malformed(fmt.Sprintf("%T", e.info))
		} else {
			l.caches.DematerializeAll()
			l.app.SetWindowInfo(id, info)
			events.Window.Info(id.String(), info)
			l.rebuild()
		}
	}
	l.emit(layershell.RedrawSurface{Surface: e.surface.ID()})
}

func (l *Loop[Info]) resize(id runtime.WindowID, e surfaceReady) {
	entry, _ := l.registry.Get(id)
	if entry.State.Resize(e.width, e.height, e.scale) {
		l.presenter.ConfigureTarget(entry.Target, e.width, e.height)
		l.relayout(entry)
		l.pending = append(l.pending, pendingEvent{window: id, ev: event.Resized{Width: e.width, Height: e.height}})
		events.Window.Resized(id.String(), e.width, e.height)
	}
	if iface, ok := l.caches.Live(id); ok {
		l.draw(entry, iface, true)
	}
}

func (l *Loop[Info]) relayout(entry *window.Entry) {
	iface, ok := l.caches.Live(entry.ID)
	if !ok {
		return
	}
	l.caches.Replace(entry.ID, iface.Relayout(entry.State.LogicalSize(), entry.Renderer))
}

func (l *Loop[Info]) draw(entry *window.Entry, iface ui.UserInterface, present bool) {
	cursor := entry.State.Cursor()
	iface.Update([]event.Event{event.RedrawRequested{At: time.Now()}}, cursor, entry.Renderer, &l.messages)
	interaction := iface.Draw(entry.Renderer, entry.State.Appearance(), cursor)
	if interaction != entry.MouseInteraction {
		entry.MouseInteraction = interaction
		l.emit(layershell.SetCursorShape{Shape: interaction.CursorShape()})
		events.Window.Cursor(entry.ID.String(), interaction.CursorShape())
	}
	if !present {
		return
	}
	if err := l.presenter.Present(entry.Renderer, entry.Target, entry.State.Viewport(), entry.State.Appearance().Background); err != nil {
		logging.Error(fmt.Errorf("present %s: %w", entry.ID, err))
	}
}

func (l *Loop[Info]) onWindowInput(e windowInput) {
	if mods, ok := e.msg.(layershell.ModifiersChanged); ok {
		l.modifiers = event.FromState(mods.Modifiers)
	}
	if e.surface == 0 {
		for _, id := range l.registry.IDs() {
			entry, _ := l.registry.Get(id)
			entry.State.Apply(e.msg)
		}
		if ev, ok := event.Translate(e.msg, l.modifiers); ok && !isTick(ev) {
			l.pending = append(l.pending, pendingEvent{all: true, ev: ev})
		}
		return
	}

	id, ok := l.registry.Alias(e.surface)
	if !ok {
		events.Window.Unresolved(uint32(e.surface), "input")
		return
	}
	entry, _ := l.registry.Get(id)
	entry.State.Apply(e.msg)
	if _, ok := e.msg.(layershell.PreferredScale); ok {
		l.relayout(entry)
	}
	ev, ok := event.Translate(e.msg, entry.State.Modifiers())
	if !ok || isTick(ev) {
		return
	}
	l.pending = append(l.pending, pendingEvent{window: id, ev: ev})
}

func isTick(ev event.Event) bool {
	_, ok := ev.(event.Tick)
	return ok
}

func (l *Loop[Info]) onNormalUpdate() {
	if len(l.pending) == 0 && len(l.messages) == 0 {
		events.Loop.Skip()
		return
	}
	l.setPhase(PhaseProcessing)

	pending := l.pending
	l.pending = nil
	stale := false
	for _, id := range l.registry.IDs() {
		iface, ok := l.caches.Live(id)
		if !ok {
			continue
		}
		entry, _ := l.registry.Get(id)
		var evs []event.Event
		for _, p := range pending {
			if p.all || p.window == id {
				evs = append(evs, p.ev)
			}
		}
		state, statuses := iface.Update(evs, entry.State.Cursor(), entry.Renderer, &l.messages)
		if state == runtime.Outdated {
			stale = true
		}
		for i, ev := range evs {
			status := runtime.StatusIgnored
			if i < len(statuses) {
				status = statuses[i]
			}
			l.messages = append(l.messages, l.subs.Broadcast(ev, status, id)...)
		}
	}
	events.Loop.Update(l.registry.Len(), len(pending), len(l.messages))

	if !stale && len(l.messages) == 0 {
		return
	}
	l.update()
}

// update runs the application over the pending messages and rebuilds every
// interface from the new state.
func (l *Loop[Info]) update() {
	l.caches.DematerializeAll()

	msgs := l.messages
	l.messages = nil
	for _, msg := range msgs {
		if isAction(msg) {
			l.send(msg)
			continue
		}
		l.executor.Spawn(l.app.Update(msg), l.send)
	}

	l.subs.Track(l.ctx, l.app.Subscriptions(), l.send)
	for _, id := range l.registry.IDs() {
		entry, _ := l.registry.Get(id)
		entry.State.Synchronize(l.app)
	}
	l.emit(layershell.RedrawAll{})
	l.rebuild()

	if l.app.ShouldExit() {
		l.requestExit("application")
	}
}

func (l *Loop[Info]) rebuild() {
	l.caches.MaterializeAll(l.registry.IDs(), func(id runtime.WindowID, cache ui.Cache) ui.UserInterface {
		entry, _ := l.registry.Get(id)
		return l.builder.Build(l.app.View(id), entry.State.LogicalSize(), cache, entry.Renderer)
	})
	events.Loop.Rebuild(l.registry.Len())
}

func (l *Loop[Info]) onWindowRemoved(e windowRemoved) {
	id, ok := l.registry.Alias(e.surface)
	if !ok {
		events.Window.Unresolved(uint32(e.surface), "remove")
		return
	}
	l.registry.Remove(id)
	l.caches.Remove(id)
	l.app.RemoveWindow(id)
	events.Window.Removed(id.String(), uint32(e.surface))
	if id == runtime.MainWindow {
		l.requestExit("main window removed")
		return
	}
	l.caches.DematerializeAll()
	l.rebuild()
}

func (l *Loop[Info]) onMenuRequested(e menuRequested) {
	id, ok := l.registry.Alias(e.surface)
	if !ok {
		events.Window.Unresolved(uint32(e.surface), "menu")
		return
	}
	entry, _ := l.registry.Get(id)
	pos, ok := entry.State.MousePosition()
	if !ok {
		events.Action.Drop("menu", id.String())
		return
	}
	popup := PlaceMenu(pos, e.settings)
	events.Host.Menu(uint32(e.surface), popup.Position.X, popup.Position.Y)
	l.emit(layershell.NewPopup{Parent: e.surface, Settings: popup, Info: e.info})
}

// PlaceMenu positions a menu at the pointer. Upward menus end at the
// pointer; downward menus start there.
func PlaceMenu(pointer runtime.Point, s layershell.MenuSettings) layershell.PopupSettings {
	x, y := int32(pointer.X), int32(pointer.Y)
	if s.Direction == layershell.MenuUp {
		y -= int32(s.Size.Height)
	}
	return layershell.PopupSettings{Size: s.Size, Position: layershell.Point{X: x, Y: y}}
}

func (l *Loop[Info]) emit(req layershell.Request) {
	l.batch = append(l.batch, req)
	events.Action.Emit(req.String())
}

func (l *Loop[Info]) flush() {
	if len(l.batch) == 0 {
		return
	}
	l.setPhase(PhaseFlushing)
	batch := l.batch
	l.batch = nil
	if logging.TraceEnabled() {
		names := make([]string, len(batch))
		for i, req := range batch {
			names[i] = req.String()
		}
		events.Loop.Flush(names)
	}
	_ = l.actions.Push(batch)
}

func (l *Loop[Info]) requestExit(reason string) {
	if !l.exit {
		l.reason = reason
	}
	l.exit = true
}

func (l *Loop[Info]) shutdown(reason string) {
	l.flush()
	l.setPhase(PhaseShuttingDown)
	l.caches.Drain()
	l.subs.Stop()
	l.cancel()
	l.events.Close()
	l.actions.Close()
	l.done = true
	events.Loop.Exit(reason)
}

func (l *Loop[Info]) setPhase(p Phase) {
	if l.phase == p {
		return
	}
	l.phase = p
	events.Loop.Phase(p.String())
}
