package layershell

// SurfaceID is the compositor-native identifier of a surface. Zero is never
// assigned to a live surface.
type SurfaceID uint32

// Surface is a presentable compositor surface. The handle is shared by the
// compositor client, the window registry and the presenter.
type Surface interface {
	ID() SurfaceID
}

type ButtonState int

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

type KeyState int

const (
	KeyReleased KeyState = iota
	KeyPressed
)

// AxisScroll is one axis of a pointer scroll frame.
type AxisScroll struct {
	Absolute float64
	Discrete int32
	Stop     bool
}

// ModifiersState is the xkb modifier state reported by the seat.
type ModifiersState struct {
	Ctrl     bool
	Alt      bool
	Shift    bool
	CapsLock bool
	Logo     bool
	NumLock  bool
}

type KeyLocation int

const (
	LocationStandard KeyLocation = iota
	LocationLeft
	LocationRight
	LocationNumpad
)

// KeyEvent is a keyboard key resolved through the seat keymap. Keycode is the
// evdev scancode, Keysym the xkb keysym and Text the UTF-8 the keymap produced.
type KeyEvent struct {
	State    KeyState
	Keycode  uint32
	Keysym   uint32
	Text     string
	Location KeyLocation
	Repeat   bool
	Time     uint32
}

// DispatchMessage is a raw message reported by the compositor client for a
// single surface.
type DispatchMessage interface {
	dispatchMessage()
}

type MouseEnter struct {
	Serial uint32
	X, Y   float64
}

type MouseMotion struct {
	Time uint32
	X, Y float64
}

type MouseLeave struct{}

type MouseButton struct {
	State  ButtonState
	Serial uint32
	Button uint32
	Time   uint32
}

type Axis struct {
	Time       uint32
	Horizontal AxisScroll
	Vertical   AxisScroll
}

type TouchDown struct {
	Serial uint32
	Time   uint32
	ID     int32
	X, Y   float64
}

type TouchUp struct {
	Serial uint32
	Time   uint32
	ID     int32
	X, Y   float64
}

type TouchMotion struct {
	Time uint32
	ID   int32
	X, Y float64
}

type TouchCancel struct {
	ID   int32
	X, Y float64
}

type PreferredScale struct {
	ScaleU32   uint32
	ScaleFloat float64
}

type KeyboardInput struct {
	Event       KeyEvent
	IsSynthetic bool
}

type ModifiersChanged struct {
	Modifiers ModifiersState
}

type KeyboardEnter struct{}

type KeyboardLeave struct{}

// RequestRefresh reports that a surface is configured and ready to draw.
// IsCreated is set on the first refresh of a surface created on request.
type RequestRefresh struct {
	Width      uint32
	Height     uint32
	ScaleFloat float64
	IsCreated  bool
}

// Closed reports that the compositor destroyed the surface.
type Closed struct{}

func (MouseEnter) dispatchMessage()       {}
func (MouseMotion) dispatchMessage()      {}
func (MouseLeave) dispatchMessage()       {}
func (MouseButton) dispatchMessage()      {}
func (Axis) dispatchMessage()             {}
func (TouchDown) dispatchMessage()        {}
func (TouchUp) dispatchMessage()          {}
func (TouchMotion) dispatchMessage()      {}
func (TouchCancel) dispatchMessage()      {}
func (PreferredScale) dispatchMessage()   {}
func (KeyboardInput) dispatchMessage()    {}
func (ModifiersChanged) dispatchMessage() {}
func (KeyboardEnter) dispatchMessage()    {}
func (KeyboardLeave) dispatchMessage()    {}
func (RequestRefresh) dispatchMessage()   {}
func (Closed) dispatchMessage()           {}

// LayerEvent is what a compositor client hands to the dispatch callback on
// each invocation.
type LayerEvent interface {
	layerEvent()
}

// InitRequest is sent once before the first surface is configured.
type InitRequest struct{}

// RequestMessages carries a dispatch message. Surface is nil for messages
// that are not scoped to a surface. Info is the tag bound to the surface when
// it was created on request.
type RequestMessages struct {
	Surface Surface
	Info    any
	Message DispatchMessage
}

// UserEvent carries an application message injected from outside the
// compositor.
type UserEvent struct {
	Message any
}

// NormalDispatch is the low-priority idle signal of the compositor loop.
type NormalDispatch struct{}

func (InitRequest) layerEvent()     {}
func (RequestMessages) layerEvent() {}
func (UserEvent) layerEvent()       {}
func (NormalDispatch) layerEvent()  {}

// Protocol names an optional compositor protocol.
type Protocol string

const ProtocolVirtualKeyboard Protocol = "zwp_virtual_keyboard_manager_v1"

// Globals reports which optional protocols the compositor advertises.
type Globals interface {
	Has(Protocol) bool
}
