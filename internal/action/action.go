// Package action is the command vocabulary an application uses to act on
// windows and layer surfaces. Every action is a tea.Msg intercepted by the
// engine before it reaches the application's Update.
package action

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

// Action marks messages the engine handles itself.
type Action interface {
	tea.Msg
	action()
}

// CloseMsg closes a window. Closing the main window exits.
type CloseMsg struct {
	ID runtime.WindowID
}

// RemoveWindowMsg removes the layer surface behind a window.
type RemoveWindowMsg struct {
	ID runtime.WindowID
}

type AnchorChangeMsg struct {
	ID     runtime.WindowID
	Anchor layershell.Anchor
}

type LayerChangeMsg struct {
	ID    runtime.WindowID
	Layer layershell.Layer
}

type SizeChangeMsg struct {
	ID     runtime.WindowID
	Width  uint32
	Height uint32
}

type MarginChangeMsg struct {
	ID     runtime.WindowID
	Margin layershell.Margin
}

type ExclusiveZoneChangeMsg struct {
	ID   runtime.WindowID
	Zone int32
}

// VirtualKeyboardPressedMsg taps a key on the virtual keyboard. The
// release follows shortly after.
type VirtualKeyboardPressedMsg struct {
	Time uint32
	Key  uint32
}

// ScreenshotMsg captures the last frame of a window.
type ScreenshotMsg struct {
	ID  runtime.WindowID
	Tag func(Screenshot) tea.Msg
}

// Screenshot is a captured frame.
type Screenshot struct {
	ID       runtime.WindowID
	Viewport runtime.Viewport
	Bytes    []byte
}

// LoadFontMsg loads a font into every window's renderer.
type LoadFontMsg struct {
	Data []byte
	Tag  func(error) tea.Msg
}

// OperateMsg runs a widget operation against every live interface.
type OperateMsg struct {
	Op ui.Operation
}

// StreamMsg runs a producer until it returns or the engine shuts down.
type StreamMsg struct {
	Run func(ctx context.Context, send func(tea.Msg))
}

// CustomMsg wraps an application specific action. The engine hands Value to
// the application's converter.
type CustomMsg struct {
	Value any
}

func (CloseMsg) action()                  {}
func (RemoveWindowMsg) action()           {}
func (AnchorChangeMsg) action()           {}
func (LayerChangeMsg) action()            {}
func (SizeChangeMsg) action()             {}
func (MarginChangeMsg) action()           {}
func (ExclusiveZoneChangeMsg) action()    {}
func (VirtualKeyboardPressedMsg) action() {}
func (ScreenshotMsg) action()             {}
func (LoadFontMsg) action()               {}
func (OperateMsg) action()                {}
func (StreamMsg) action()                 {}
func (CustomMsg) action()                 {}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func Close(id runtime.WindowID) tea.Cmd { return emit(CloseMsg{ID: id}) }

func RemoveWindow(id runtime.WindowID) tea.Cmd { return emit(RemoveWindowMsg{ID: id}) }

func ChangeAnchor(id runtime.WindowID, anchor layershell.Anchor) tea.Cmd {
	return emit(AnchorChangeMsg{ID: id, Anchor: anchor})
}

func ChangeLayer(id runtime.WindowID, layer layershell.Layer) tea.Cmd {
	return emit(LayerChangeMsg{ID: id, Layer: layer})
}

func ChangeSize(id runtime.WindowID, width, height uint32) tea.Cmd {
	return emit(SizeChangeMsg{ID: id, Width: width, Height: height})
}

func ChangeMargin(id runtime.WindowID, margin layershell.Margin) tea.Cmd {
	return emit(MarginChangeMsg{ID: id, Margin: margin})
}

func ChangeExclusiveZone(id runtime.WindowID, zone int32) tea.Cmd {
	return emit(ExclusiveZoneChangeMsg{ID: id, Zone: zone})
}

func PressVirtualKey(time, key uint32) tea.Cmd {
	return emit(VirtualKeyboardPressedMsg{Time: time, Key: key})
}

func TakeScreenshot(id runtime.WindowID, tag func(Screenshot) tea.Msg) tea.Cmd {
	return emit(ScreenshotMsg{ID: id, Tag: tag})
}

func LoadFont(data []byte, tag func(error) tea.Msg) tea.Cmd {
	return emit(LoadFontMsg{Data: data, Tag: tag})
}

func Operate(op ui.Operation) tea.Cmd { return emit(OperateMsg{Op: op}) }

func Stream(run func(ctx context.Context, send func(tea.Msg))) tea.Cmd {
	return emit(StreamMsg{Run: run})
}

func Custom(v any) tea.Cmd { return emit(CustomMsg{Value: v}) }
