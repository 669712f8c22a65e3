package engine

import (
	"errors"
	"fmt"
	"time"

	"code.hybscloud.com/atomix"

	"github.com/atomicstack/tea-layershell/internal/event"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/logging/events"
	"github.com/atomicstack/tea-layershell/internal/queue"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

// ErrVirtualKeyboardUnsupported is returned by Bind when a virtual keyboard
// is configured but the compositor does not offer the protocol.
var ErrVirtualKeyboardUnsupported = errors.New("engine: compositor does not support the virtual keyboard protocol")

// DefaultKeyReleaseDelay separates a virtual key press from its release.
const DefaultKeyReleaseDelay = 100 * time.Microsecond

type Options struct {
	Settings  layershell.Settings
	Builder   ui.Builder
	Presenter ui.Presenter
	// Executor defaults to a GoExecutor.
	Executor Executor
	// Wake is called from other goroutines when the loop has work; the
	// compositor client should dispatch soon after.
	Wake            func()
	KeyReleaseDelay time.Duration
}

// Host adapts the loop to the compositor client's dispatch callback. All
// methods except Close must be called from the compositor's goroutine.
type Host[Info any] struct {
	loop     *Loop[Info]
	events   *queue.Queue[loopEvent]
	actions  *queue.Queue[[]layershell.Request]
	deferred *queue.Queue[layershell.Request]

	settings layershell.Settings
	wake     func()
	keyDelay time.Duration

	current       layershell.SurfaceID
	pointerSerial uint32
	exited        bool
	closing       atomix.Bool
}

func NewHost[Info any](app Application[Info], opts Options) (*Host[Info], error) {
	if app == nil {
		return nil, errors.New("engine: nil application")
	}
	if opts.Builder == nil || opts.Presenter == nil {
		return nil, errors.New("engine: builder and presenter are required")
	}
	settings := opts.Settings
	if settings.Namespace == "" {
		settings.Namespace = app.Namespace()
	}
	executor := opts.Executor
	if executor == nil {
		executor = NewGoExecutor()
	}
	delay := opts.KeyReleaseDelay
	if delay <= 0 {
		delay = DefaultKeyReleaseDelay
	}
	h := &Host[Info]{
		events:   queue.New[loopEvent](),
		actions:  queue.New[[]layershell.Request](),
		deferred: queue.New[layershell.Request](),
		settings: settings,
		wake:     opts.Wake,
		keyDelay: delay,
	}
	h.loop = newLoop(app, opts.Builder, opts.Presenter, executor, opts.Wake, h.events, h.actions)
	h.loop.start()
	return h, nil
}

// Settings returns the settings the main surface must be created with.
func (h *Host[Info]) Settings() layershell.Settings { return h.settings }

// Bind checks the protocols the compositor advertised against the ones
// the settings require.
func (h *Host[Info]) Bind(globals layershell.Globals) error {
	if h.settings.VirtualKeyboard == nil {
		return nil
	}
	if globals == nil || !globals.Has(layershell.ProtocolVirtualKeyboard) {
		events.Host.StartupError(ErrVirtualKeyboardUnsupported)
		return ErrVirtualKeyboardUnsupported
	}
	events.Host.Bind([]string{string(layershell.ProtocolVirtualKeyboard)})
	return nil
}

// Dispatch is the compositor callback. It forwards ev to the loop, polls
// the loop once and returns the requests the compositor must perform.
func (h *Host[Info]) Dispatch(ev layershell.LayerEvent) []layershell.Request {
	if h.exited {
		return nil
	}
	if h.closing.Load() && !h.events.Closed() {
		h.events.Close()
		h.deferred.Close()
	}
	var out []layershell.Request
	if !h.events.Closed() {
		switch e := ev.(type) {
		case layershell.InitRequest:
			if h.settings.VirtualKeyboard != nil {
				out = append(out, layershell.RequestBind{Protocols: []layershell.Protocol{layershell.ProtocolVirtualKeyboard}})
			}
		case layershell.RequestMessages:
			h.requestMessages(e)
		case layershell.UserEvent:
			h.push(userMessage{msg: e.Message})
		case layershell.NormalDispatch:
			h.push(normalUpdate{})
		}
	}
	out = append(out, h.drainDeferred()...)

	if h.loop.Poll() {
		for {
			batch, err := h.actions.TryPop()
			if err != nil {
				break
			}
			out = append(out, h.resolve(batch)...)
		}
		h.exited = true
		return append(out, layershell.Exit{})
	}
	if batch, err := h.actions.TryPop(); err == nil {
		out = append(out, h.resolve(batch)...)
	}
	return out
}

func (h *Host[Info]) requestMessages(e layershell.RequestMessages) {
	var surface layershell.SurfaceID
	if e.Surface != nil {
		surface = e.Surface.ID()
	}
	events.Host.Dispatch(fmt.Sprintf("%T", e.Message), uint32(surface))
	switch m := e.Message.(type) {
	case layershell.RequestRefresh:
		if e.Surface == nil {
			return
		}
		h.push(surfaceReady{
			surface: e.Surface,
			width:   m.Width,
			height:  m.Height,
			scale:   m.ScaleFloat,
			created: m.IsCreated,
			info:    e.Info,
		})
		return
	case layershell.Closed:
		events.Window.RemoveRequested(uint32(surface), events.ReasonClosed)
		h.push(windowRemoved{surface: surface})
		return
	case layershell.MouseEnter:
		h.pointerSerial = m.Serial
	case layershell.Axis:
		if event.IsIdleScroll(m) {
			h.push(normalUpdate{})
			return
		}
	}
	if surface != 0 {
		h.current = surface
	}
	h.push(windowInput{surface: surface, msg: e.Message})
}

// resolve completes a batch with compositor side state the loop does not
// own: the focused surface and the pointer serial.
func (h *Host[Info]) resolve(batch []layershell.Request) []layershell.Request {
	out := make([]layershell.Request, 0, len(batch))
	for _, req := range batch {
		switch r := req.(type) {
		case layershell.NewPopup:
			if r.Parent == 0 {
				if h.current == 0 {
					events.Window.Unresolved(0, "popup")
					continue
				}
				r.Parent = h.current
			}
			req = r
		case layershell.RequestMenu:
			if h.current == 0 {
				events.Window.Unresolved(0, "menu")
				continue
			}
			h.feed(menuRequested{surface: h.current, settings: r.Settings, info: r.Info})
			continue
		case layershell.SetCursorShape:
			r.Serial = h.pointerSerial
			req = r
		case layershell.RemoveLayerShell:
			events.Window.RemoveRequested(uint32(r.Surface), events.ReasonRequested)
			h.feed(windowRemoved{surface: r.Surface})
		case layershell.VirtualKey:
			if r.State == layershell.KeyPressed {
				h.scheduleRelease(r)
			}
		}
		out = append(out, req)
	}
	return out
}

func (h *Host[Info]) scheduleRelease(press layershell.VirtualKey) {
	release := layershell.VirtualKey{Time: press.Time, Key: press.Key, State: layershell.KeyReleased}
	time.AfterFunc(h.keyDelay, func() {
		if err := h.deferred.Push(release); err != nil {
			return
		}
		events.Host.KeyRelease(release.Key)
		if h.wake != nil {
			h.wake()
		}
	})
}

func (h *Host[Info]) drainDeferred() []layershell.Request {
	var out []layershell.Request
	for {
		req, err := h.deferred.TryPop()
		if err != nil {
			return out
		}
		out = append(out, req)
	}
}

// push forwards a compositor event. The loop must outlive the compositor,
// so a failed send is a bug.
func (h *Host[Info]) push(ev loopEvent) {
	if err := h.events.Push(ev); err != nil {
		panic(fmt.Sprintf("engine: cannot send %T to the loop: %v", ev, err))
	}
}

// feed returns a host-derived event to the loop. It is dropped when the loop
// already shut down.
func (h *Host[Info]) feed(ev loopEvent) {
	_ = h.events.Push(ev)
}

// Close detaches the compositor. It is safe to call from any goroutine; the
// queues are closed by the next dispatch, which also shuts the loop down.
func (h *Host[Info]) Close() {
	h.closing.Store(true)
	if h.wake != nil {
		h.wake()
	}
}

// Exited reports whether the loop has shut down.
func (h *Host[Info]) Exited() bool { return h.exited }

// Phase is the loop's current phase.
func (h *Host[Info]) Phase() Phase { return h.loop.phase }

// Windows returns the registered window ids in creation order.
func (h *Host[Info]) Windows() []runtime.WindowID { return h.loop.registry.IDs() }

// Surface returns the surface id of a window.
func (h *Host[Info]) Surface(id runtime.WindowID) (layershell.SurfaceID, bool) {
	return h.loop.registry.SurfaceID(id)
}

// PendingMessages is the number of application messages waiting for the
// next update pass.
func (h *Host[Info]) PendingMessages() int { return len(h.loop.messages) }
