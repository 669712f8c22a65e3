package events

import "github.com/atomicstack/tea-layershell/internal/logging"

type LoopTracer struct{}

type SubscriptionTracer struct{}

var (
	Loop         = LoopTracer{}
	Subscription = SubscriptionTracer{}
)

func (LoopTracer) Phase(phase string) {
	logging.Trace("loop.phase", map[string]interface{}{"phase": phase})
}

func (LoopTracer) Skip() {
	logging.Trace("loop.skip", nil)
}

func (LoopTracer) Update(windows, events, messages int) {
	logging.Trace("loop.update", map[string]interface{}{
		"windows":  windows,
		"events":   events,
		"messages": messages,
	})
}

func (LoopTracer) Rebuild(windows int) {
	logging.Trace("loop.rebuild", map[string]interface{}{"windows": windows})
}

func (LoopTracer) Flush(requests []string) {
	logging.Trace("loop.flush", map[string]interface{}{"requests": requests})
}

func (LoopTracer) Exit(reason string) {
	logging.Trace("loop.exit", map[string]interface{}{"reason": reason})
}

func (SubscriptionTracer) Start(id string) {
	logging.Trace("subscription.start", map[string]interface{}{"id": id})
}

func (SubscriptionTracer) Stop(id string) {
	logging.Trace("subscription.stop", map[string]interface{}{"id": id})
}
