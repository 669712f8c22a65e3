package layershell

import "fmt"

// Request is an action the compositor client performs on behalf of the
// engine. A batch of requests is returned from each dispatch callback.
type Request interface {
	fmt.Stringer
	request()
}

// RequestBind asks the client to bind the listed protocols and report them
// back through the host's Bind method.
type RequestBind struct {
	Protocols []Protocol
}

type NewLayerShell struct {
	Settings NewLayerShellSettings
	Info     any
}

// NewPopup creates a popup on Parent. A zero Parent is resolved by the host
// to the surface that currently has pointer focus.
type NewPopup struct {
	Parent   SurfaceID
	Settings PopupSettings
	Info     any
}

// RequestMenu asks the host to place a popup at the pointer position of the
// focused surface. It never reaches the compositor client.
type RequestMenu struct {
	Settings MenuSettings
	Info     any
}

type RemoveLayerShell struct {
	Surface SurfaceID
}

type SetAnchor struct {
	Surface SurfaceID
	Anchor  Anchor
}

type SetLayer struct {
	Surface SurfaceID
	Layer   Layer
}

type SetSize struct {
	Surface SurfaceID
	Size    Size
}

type SetMargin struct {
	Surface SurfaceID
	Margin  Margin
}

type SetExclusiveZone struct {
	Surface SurfaceID
	Zone    int32
}

// SetCursorShape sets the pointer shape using the serial of the last
// pointer enter.
type SetCursorShape struct {
	Shape  string
	Serial uint32
}

type RedrawAll struct{}

type RedrawSurface struct {
	Surface SurfaceID
}

type VirtualKey struct {
	Time  uint32
	Key   uint32
	State KeyState
}

type Exit struct{}

func (RequestBind) request()      {}
func (NewLayerShell) request()    {}
func (NewPopup) request()         {}
func (RequestMenu) request()      {}
func (RemoveLayerShell) request() {}
func (SetAnchor) request()        {}
func (SetLayer) request()         {}
func (SetSize) request()          {}
func (SetMargin) request()        {}
func (SetExclusiveZone) request() {}
func (SetCursorShape) request()   {}
func (RedrawAll) request()        {}
func (RedrawSurface) request()    {}
func (VirtualKey) request()       {}
func (Exit) request()             {}

func (r RequestBind) String() string { return fmt.Sprintf("bind%v", r.Protocols) }
func (r NewLayerShell) String() string {
	return fmt.Sprintf("new-layer-shell(anchor=%s layer=%s)", r.Settings.Anchor, r.Settings.Layer)
}
func (r NewPopup) String() string {
	return fmt.Sprintf("new-popup(parent=%d at=%d,%d size=%dx%d)", r.Parent,
		r.Settings.Position.X, r.Settings.Position.Y, r.Settings.Size.Width, r.Settings.Size.Height)
}
func (r RequestMenu) String() string {
	return fmt.Sprintf("menu(%dx%d)", r.Settings.Size.Width, r.Settings.Size.Height)
}
func (r RemoveLayerShell) String() string { return fmt.Sprintf("remove(%d)", r.Surface) }
func (r SetAnchor) String() string        { return fmt.Sprintf("anchor(%d, %s)", r.Surface, r.Anchor) }
func (r SetLayer) String() string         { return fmt.Sprintf("layer(%d, %s)", r.Surface, r.Layer) }
func (r SetSize) String() string {
	return fmt.Sprintf("size(%d, %dx%d)", r.Surface, r.Size.Width, r.Size.Height)
}
func (r SetMargin) String() string        { return fmt.Sprintf("margin(%d, %+v)", r.Surface, r.Margin) }
func (r SetExclusiveZone) String() string { return fmt.Sprintf("exclusive-zone(%d, %d)", r.Surface, r.Zone) }
func (r SetCursorShape) String() string   { return fmt.Sprintf("cursor(%s)", r.Shape) }
func (RedrawAll) String() string          { return "redraw-all" }
func (r RedrawSurface) String() string    { return fmt.Sprintf("redraw(%d)", r.Surface) }
func (r VirtualKey) String() string {
	state := "released"
	if r.State == KeyPressed {
		state = "pressed"
	}
	return fmt.Sprintf("virtual-key(%d %s)", r.Key, state)
}
func (Exit) String() string { return "exit" }
