package events

import "github.com/atomicstack/tea-layershell/internal/logging"

type ActionTracer struct{}

type CommandTracer struct{}

var (
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (ActionTracer) Emit(request string) {
	logging.Trace("action.emit", map[string]interface{}{"request": request})
}

func (ActionTracer) Drop(kind, window string) {
	logging.Trace("action.drop", map[string]interface{}{"kind": kind, "window": window})
}

func (ActionTracer) Malformed(kind string) {
	logging.Trace("action.malformed", map[string]interface{}{"kind": kind})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (CommandTracer) Spawn(kind string) {
	logging.Trace("command.spawn", map[string]interface{}{"kind": kind})
}

func (CommandTracer) Result(kind string) {
	logging.Trace("command.result", map[string]interface{}{"kind": kind})
}

func (CommandTracer) Operation(kind string, windows int, produced bool) {
	logging.Trace("command.operation", map[string]interface{}{
		"kind":     kind,
		"windows":  windows,
		"produced": produced,
	})
}

func (CommandTracer) Stream(state string) {
	logging.Trace("command.stream", map[string]interface{}{"state": state})
}
