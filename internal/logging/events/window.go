package events

import "github.com/atomicstack/tea-layershell/internal/logging"

type WindowTracer struct{}

type removeReason string

const (
	ReasonRequested removeReason = "requested"
	ReasonClosed    removeReason = "closed"
)

var Window = WindowTracer{}

func (WindowTracer) Opened(window string, surface uint32, width, height uint32) {
	logging.Trace("window.opened", map[string]interface{}{
		"window":  window,
		"surface": surface,
		"width":   width,
		"height":  height,
	})
}

func (WindowTracer) Resized(window string, width, height uint32) {
	logging.Trace("window.resized", map[string]interface{}{"window": window, "width": width, "height": height})
}

func (WindowTracer) Info(window string, info interface{}) {
	logging.Trace("window.info", map[string]interface{}{"window": window, "info": info})
}

func (WindowTracer) Removed(window string, surface uint32) {
	logging.Trace("window.removed", map[string]interface{}{"window": window, "surface": surface})
}

func (WindowTracer) RemoveRequested(surface uint32, reason removeReason) {
	logging.Trace("window.remove", map[string]interface{}{"surface": surface, "reason": string(reason)})
}

func (WindowTracer) Cursor(window, shape string) {
	logging.Trace("window.cursor", map[string]interface{}{"window": window, "shape": shape})
}

func (WindowTracer) Unresolved(surface uint32, kind string) {
	logging.Trace("window.unresolved", map[string]interface{}{"surface": surface, "kind": kind})
}
