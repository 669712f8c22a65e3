package headless

import (
	"github.com/atomicstack/tea-layershell/internal/layershell"
)

// Pointer button codes, as reported by the kernel.
const (
	ButtonLeft   uint32 = 0x110
	ButtonRight  uint32 = 0x111
	ButtonMiddle uint32 = 0x112
)

// queue adds a message for surface id. Messages for unknown surfaces are
// dropped.
func (c *Compositor) queue(id layershell.SurfaceID, msg layershell.DispatchMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.surfaces[id]
	if !ok {
		return
	}
	c.clock++
	c.pending = append(c.pending, layershell.RequestMessages{Surface: s, Message: msg})
}

func (c *Compositor) tick() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock++
	return c.clock
}

func (c *Compositor) nextSerial() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serial++
	return c.serial
}

func (c *Compositor) PointerEnter(id layershell.SurfaceID, x, y float64) {
	c.queue(id, layershell.MouseEnter{Serial: c.nextSerial(), X: x, Y: y})
}

func (c *Compositor) PointerMotion(id layershell.SurfaceID, x, y float64) {
	c.queue(id, layershell.MouseMotion{Time: c.tick(), X: x, Y: y})
}

func (c *Compositor) PointerLeave(id layershell.SurfaceID) {
	c.queue(id, layershell.MouseLeave{})
}

func (c *Compositor) PointerButton(id layershell.SurfaceID, button uint32, pressed bool) {
	state := layershell.ButtonReleased
	if pressed {
		state = layershell.ButtonPressed
	}
	c.queue(id, layershell.MouseButton{State: state, Serial: c.nextSerial(), Button: button, Time: c.tick()})
}

// Click moves the pointer to (x, y) and clicks the left button.
func (c *Compositor) Click(id layershell.SurfaceID, x, y float64) {
	c.PointerMotion(id, x, y)
	c.PointerButton(id, ButtonLeft, true)
	c.PointerButton(id, ButtonLeft, false)
}

// Scroll sends an axis event. A zero discrete value scrolls by pixels.
func (c *Compositor) Scroll(id layershell.SurfaceID, dx, dy float64, discrete int32) {
	axis := layershell.Axis{Time: c.tick()}
	if dx != 0 {
		axis.Horizontal = layershell.AxisScroll{Absolute: dx, Discrete: discrete}
	}
	if dy != 0 {
		axis.Vertical = layershell.AxisScroll{Absolute: dy, Discrete: discrete}
	}
	c.queue(id, axis)
}

// ScrollStop ends a scroll sequence on both axes.
func (c *Compositor) ScrollStop(id layershell.SurfaceID) {
	c.queue(id, layershell.Axis{
		Time:       c.tick(),
		Horizontal: layershell.AxisScroll{Stop: true},
		Vertical:   layershell.AxisScroll{Stop: true},
	})
}

func (c *Compositor) KeyboardEnter(id layershell.SurfaceID) {
	c.queue(id, layershell.KeyboardEnter{})
}

func (c *Compositor) KeyboardLeave(id layershell.SurfaceID) {
	c.queue(id, layershell.KeyboardLeave{})
}

func (c *Compositor) Modifiers(id layershell.SurfaceID, mods layershell.ModifiersState) {
	c.queue(id, layershell.ModifiersChanged{Modifiers: mods})
}

// Key sends a key event. keycode is the evdev scancode, keysym the xkb
// symbol and text the produced text, if any.
func (c *Compositor) Key(id layershell.SurfaceID, keycode, keysym uint32, text string, pressed bool) {
	state := layershell.KeyReleased
	if pressed {
		state = layershell.KeyPressed
	}
	c.queue(id, layershell.KeyboardInput{Event: layershell.KeyEvent{
		State:   state,
		Keycode: keycode,
		Keysym:  keysym,
		Text:    text,
		Time:    c.tick(),
	}})
}

// Type presses and releases a key.
func (c *Compositor) Type(id layershell.SurfaceID, keycode, keysym uint32, text string) {
	c.Key(id, keycode, keysym, text, true)
	c.Key(id, keycode, keysym, "", false)
}

func (c *Compositor) TouchDown(id layershell.SurfaceID, finger int32, x, y float64) {
	c.queue(id, layershell.TouchDown{Serial: c.nextSerial(), Time: c.tick(), ID: finger, X: x, Y: y})
}

func (c *Compositor) TouchMotion(id layershell.SurfaceID, finger int32, x, y float64) {
	c.queue(id, layershell.TouchMotion{Time: c.tick(), ID: finger, X: x, Y: y})
}

func (c *Compositor) TouchUp(id layershell.SurfaceID, finger int32, x, y float64) {
	c.queue(id, layershell.TouchUp{Serial: c.nextSerial(), Time: c.tick(), ID: finger, X: x, Y: y})
}

// SetScale changes the preferred scale of a surface and reconfigures it.
func (c *Compositor) SetScale(id layershell.SurfaceID, scale float64) {
	c.queue(id, layershell.PreferredScale{ScaleU32: uint32(scale + 0.5), ScaleFloat: scale})
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.surfaces[id]; ok {
		s.Scale = scale
		c.refresh(s, false)
	}
}

// Resize reconfigures a surface as if the output changed under it.
func (c *Compositor) Resize(id layershell.SurfaceID, width, height uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.surfaces[id]; ok {
		s.Size = c.fit(layershell.Size{Width: width, Height: height})
		c.refresh(s, false)
	}
}

// Close destroys a surface on the compositor side and reports it as closed.
func (c *Compositor) Close(id layershell.SurfaceID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.surfaces[id]
	if !ok {
		return
	}
	c.destroy(id)
	c.pending = append(c.pending, layershell.RequestMessages{Surface: s, Message: layershell.Closed{}})
}

// Send delivers a user event to the dispatcher.
func (c *Compositor) Send(msg any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, layershell.UserEvent{Message: msg})
}

// Tick queues a normal dispatch.
func (c *Compositor) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, layershell.NormalDispatch{})
}
