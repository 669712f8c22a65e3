package events

import "github.com/atomicstack/tea-layershell/internal/logging"

type HostTracer struct{}

var Host = HostTracer{}

func (HostTracer) Dispatch(kind string, surface uint32) {
	logging.Trace("host.dispatch", map[string]interface{}{"kind": kind, "surface": surface})
}

func (HostTracer) Bind(protocols []string) {
	logging.Trace("host.bind", map[string]interface{}{"protocols": protocols})
}

func (HostTracer) KeyRelease(key uint32) {
	logging.Trace("host.key.release", map[string]interface{}{"key": key})
}

func (HostTracer) Menu(surface uint32, x, y int32) {
	logging.Trace("host.menu", map[string]interface{}{"surface": surface, "x": x, "y": y})
}

func (HostTracer) StartupError(err error) {
	if err == nil {
		return
	}
	logging.Trace("host.startup.error", map[string]interface{}{"error": err.Error()})
}
