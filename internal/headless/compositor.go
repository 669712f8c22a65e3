// Package headless is an in-process compositor client. It simulates layer
// surfaces and popups, feeds input to a dispatcher and applies the
// requests the dispatcher returns.
package headless

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/logging"
)

// maxPumpSteps bounds one Pump so a request cycle cannot spin forever.
const maxPumpSteps = 256

var ErrNotStarted = errors.New("headless: compositor not started")

// Dispatcher is the compositor-facing side of the engine.
type Dispatcher interface {
	Dispatch(layershell.LayerEvent) []layershell.Request
	Bind(layershell.Globals) error
}

type Kind int

const (
	KindLayer Kind = iota
	KindPopup
)

func (k Kind) String() string {
	if k == KindPopup {
		return "popup"
	}
	return "layer"
}

// Surface is a simulated surface. The compositor hands out pointers as
// surface handles; callers get copies.
type Surface struct {
	id            layershell.SurfaceID
	Kind          Kind
	Parent        layershell.SurfaceID
	Size          layershell.Size
	Position      layershell.Point
	Anchor        layershell.Anchor
	Layer         layershell.Layer
	Margin        layershell.Margin
	ExclusiveZone int32
	Scale         float64
	Info          any
}

func (s *Surface) ID() layershell.SurfaceID { return s.id }

type Options struct {
	// Output is the size of the simulated output. Defaults to 80x24.
	Output    layershell.Size
	Scale     float64
	Protocols []layershell.Protocol
	// FrameInterval is the minimum time between two pumps in Run.
	FrameInterval time.Duration
}

type Compositor struct {
	mu        sync.Mutex
	target    Dispatcher
	output    layershell.Size
	scale     float64
	protocols map[layershell.Protocol]bool
	throttle  *throttle
	wake      chan struct{}

	nextID   layershell.SurfaceID
	surfaces map[layershell.SurfaceID]*Surface
	order    []layershell.SurfaceID
	pending  []layershell.LayerEvent

	requests    []layershell.Request
	keys        []layershell.VirtualKey
	bound       []layershell.Protocol
	frames      map[layershell.SurfaceID]string
	cursorShape string
	serial      uint32
	clock       uint32
	pumping     int
	started     bool
	exited      bool
}

func New(opts Options) *Compositor {
	output := opts.Output
	if output.Width == 0 {
		output.Width = 80
	}
	if output.Height == 0 {
		output.Height = 24
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	protocols := make(map[layershell.Protocol]bool, len(opts.Protocols))
	for _, p := range opts.Protocols {
		protocols[p] = true
	}
	return &Compositor{
		output:    output,
		scale:     scale,
		protocols: protocols,
		throttle:  newThrottle(opts.FrameInterval),
		wake:      make(chan struct{}, 1),
		surfaces:  make(map[layershell.SurfaceID]*Surface),
		frames:    make(map[layershell.SurfaceID]string),
	}
}

// Has implements layershell.Globals.
func (c *Compositor) Has(p layershell.Protocol) bool {
	return c.protocols[p]
}

// Wake asks Run to pump soon. It never blocks.
func (c *Compositor) Wake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Present is a frame sink for a presenter.
func (c *Compositor) Present(surface layershell.SurfaceID, frame string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames[surface] = frame
}

// Start performs the startup handshake with d, creates the main surface
// and pumps until idle.
func (c *Compositor) Start(d Dispatcher, settings layershell.Settings) error {
	c.mu.Lock()
	c.target = d
	c.mu.Unlock()

	for _, req := range d.Dispatch(layershell.InitRequest{}) {
		bind, ok := req.(layershell.RequestBind)
		if !ok {
			c.apply([]layershell.Request{req})
			continue
		}
		c.mu.Lock()
		c.requests = append(c.requests, req)
		c.bound = append(c.bound, bind.Protocols...)
		c.mu.Unlock()
	}
	if err := d.Bind(c); err != nil {
		return fmt.Errorf("bind globals: %w", err)
	}

	c.mu.Lock()
	var size layershell.Size
	if settings.Size != nil {
		size = *settings.Size
	}
	main := c.create(KindLayer, 0, c.fit(size), nil)
	main.Anchor = settings.Anchor
	main.Layer = settings.Layer
	main.Margin = settings.Margin
	main.ExclusiveZone = settings.ExclusiveZone
	c.refresh(main, false)
	c.started = true
	c.mu.Unlock()

	c.Pump()
	return nil
}

// Pump dispatches queued events, then normal dispatches until the
// dispatcher has nothing left to say. It returns the number of dispatches.
func (c *Compositor) Pump() int {
	c.mu.Lock()
	c.pumping++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.pumping--
		c.mu.Unlock()
	}()

	steps := 0
	for steps < maxPumpSteps {
		c.mu.Lock()
		if c.exited || c.target == nil {
			c.mu.Unlock()
			break
		}
		var ev layershell.LayerEvent = layershell.NormalDispatch{}
		if len(c.pending) > 0 {
			ev = c.pending[0]
			c.pending = c.pending[1:]
		}
		target := c.target
		c.mu.Unlock()

		reqs := target.Dispatch(ev)
		c.apply(reqs)
		steps++

		_, normal := ev.(layershell.NormalDispatch)
		if normal && len(reqs) == 0 && c.queued() == 0 {
			break
		}
	}
	if steps == maxPumpSteps {
		logging.Errorf("headless: pump did not settle after %d dispatches", steps)
	}
	return steps
}

// Run pumps whenever the compositor is woken or input is queued, until ctx
// is cancelled or the dispatcher exits.
func (c *Compositor) Run(ctx context.Context) error {
	if !c.isStarted() {
		return ErrNotStarted
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
		}
		c.throttle.wait()
		c.Pump()
		if c.Exited() {
			return nil
		}
	}
}

func (c *Compositor) isStarted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// Idle reports whether no input is queued and no pump is running.
func (c *Compositor) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending) == 0 && c.pumping == 0
}

func (c *Compositor) queued() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Compositor) apply(reqs []layershell.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, req := range reqs {
		c.requests = append(c.requests, req)
		switch r := req.(type) {
		case layershell.NewLayerShell:
			var size layershell.Size
			if r.Settings.Size != nil {
				size = *r.Settings.Size
			}
			s := c.create(KindLayer, 0, c.fit(size), r.Info)
			s.Anchor = r.Settings.Anchor
			s.Layer = r.Settings.Layer
			if r.Settings.Margin != nil {
				s.Margin = *r.Settings.Margin
			}
			if r.Settings.ExclusiveZone != nil {
				s.ExclusiveZone = *r.Settings.ExclusiveZone
			}
			c.refresh(s, true)
		case layershell.NewPopup:
			if _, ok := c.surfaces[r.Parent]; !ok {
				logging.Errorf("headless: popup parent %d does not exist", r.Parent)
				continue
			}
			s := c.create(KindPopup, r.Parent, c.fit(r.Settings.Size), r.Info)
			s.Position = r.Settings.Position
			c.refresh(s, true)
		case layershell.RemoveLayerShell:
			c.destroy(r.Surface)
		case layershell.SetAnchor:
			if s, ok := c.surfaces[r.Surface]; ok {
				s.Anchor = r.Anchor
			}
		case layershell.SetLayer:
			if s, ok := c.surfaces[r.Surface]; ok {
				s.Layer = r.Layer
			}
		case layershell.SetMargin:
			if s, ok := c.surfaces[r.Surface]; ok {
				s.Margin = r.Margin
			}
		case layershell.SetExclusiveZone:
			if s, ok := c.surfaces[r.Surface]; ok {
				s.ExclusiveZone = r.Zone
			}
		case layershell.SetSize:
			if s, ok := c.surfaces[r.Surface]; ok {
				s.Size = c.fit(r.Size)
				c.refresh(s, false)
			}
		case layershell.SetCursorShape:
			c.cursorShape = r.Shape
		case layershell.RedrawAll:
			for _, id := range c.order {
				c.refresh(c.surfaces[id], false)
			}
		case layershell.RedrawSurface:
			if s, ok := c.surfaces[r.Surface]; ok {
				c.refresh(s, false)
			}
		case layershell.VirtualKey:
			c.keys = append(c.keys, r)
		case layershell.Exit:
			c.exited = true
		}
	}
}

// fit replaces zero dimensions with the output's.
func (c *Compositor) fit(size layershell.Size) layershell.Size {
	if size.Width == 0 {
		size.Width = c.output.Width
	}
	if size.Height == 0 {
		size.Height = c.output.Height
	}
	return size
}

func (c *Compositor) create(kind Kind, parent layershell.SurfaceID, size layershell.Size, info any) *Surface {
	c.nextID++
	s := &Surface{id: c.nextID, Kind: kind, Parent: parent, Size: size, Scale: c.scale, Info: info}
	c.surfaces[s.id] = s
	c.order = append(c.order, s.id)
	return s
}

func (c *Compositor) destroy(id layershell.SurfaceID) {
	if _, ok := c.surfaces[id]; !ok {
		return
	}
	delete(c.surfaces, id)
	delete(c.frames, id)
	pending := c.pending[:0]
	for _, ev := range c.pending {
		if rm, ok := ev.(layershell.RequestMessages); ok && rm.Surface != nil && rm.Surface.ID() == id {
			continue
		}
		pending = append(pending, ev)
	}
	c.pending = pending
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// refresh queues a configure for s. Info is only attached to the first one.
func (c *Compositor) refresh(s *Surface, created bool) {
	var info any
	if created {
		info = s.Info
	}
	c.pending = append(c.pending, layershell.RequestMessages{
		Surface: s,
		Info:    info,
		Message: layershell.RequestRefresh{
			Width:      s.Size.Width,
			Height:     s.Size.Height,
			ScaleFloat: s.Scale,
			IsCreated:  created,
		},
	})
}

// Surfaces returns copies of the live surfaces in creation order.
func (c *Compositor) Surfaces() []Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Surface, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.surfaces[id])
	}
	return out
}

func (c *Compositor) Surface(id layershell.SurfaceID) (Surface, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.surfaces[id]
	if !ok {
		return Surface{}, false
	}
	return *s, true
}

// Requests returns every request applied so far.
func (c *Compositor) Requests() []layershell.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]layershell.Request(nil), c.requests...)
}

// ResetRequests forgets the applied requests.
func (c *Compositor) ResetRequests() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = nil
}

func (c *Compositor) VirtualKeys() []layershell.VirtualKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]layershell.VirtualKey(nil), c.keys...)
}

func (c *Compositor) Bound() []layershell.Protocol {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]layershell.Protocol(nil), c.bound...)
}

func (c *Compositor) CursorShape() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursorShape
}

// Frame is the last frame presented to a surface.
func (c *Compositor) Frame(id layershell.SurfaceID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames[id]
}

// Text is the last presented frame without styling.
func (c *Compositor) Text(id layershell.SurfaceID) string {
	return ansi.Strip(c.Frame(id))
}

func (c *Compositor) Exited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exited
}
