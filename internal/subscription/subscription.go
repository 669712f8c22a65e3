// Package subscription runs the long-lived event sources an application
// declares, and fans window events out to its listeners.
package subscription

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/event"
	"github.com/atomicstack/tea-layershell/internal/logging/events"
	"github.com/atomicstack/tea-layershell/internal/runtime"
)

// Subscription is identified by ID. Declaring the same ID on consecutive
// updates keeps the running subscription alive.
type Subscription interface {
	ID() string
}

// Source produces messages until its context is cancelled.
type Source struct {
	id  string
	run func(ctx context.Context, send func(tea.Msg))
}

func (s Source) ID() string { return s.id }

// Listener observes every window event along with the status the window's
// interface reported for it.
type Listener struct {
	id     string
	handle func(ev event.Event, status runtime.Status, id runtime.WindowID) tea.Msg
}

func (l Listener) ID() string { return l.id }

// Run declares a source.
func Run(id string, run func(ctx context.Context, send func(tea.Msg))) Subscription {
	return Source{id: id, run: run}
}

// Every emits fn(t) on each tick of interval.
func Every(id string, interval time.Duration, fn func(time.Time) tea.Msg) Subscription {
	return Run(id, func(ctx context.Context, send func(tea.Msg)) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				send(fn(t))
			}
		}
	})
}

// Listen declares a listener.
func Listen(id string, handle func(event.Event, runtime.Status, runtime.WindowID) tea.Msg) Subscription {
	return Listener{id: id, handle: handle}
}

// ListenIgnored declares a listener that only sees events no widget
// captured.
func ListenIgnored(id string, handle func(event.Event, runtime.WindowID) tea.Msg) Subscription {
	return Listen(id, func(ev event.Event, status runtime.Status, window runtime.WindowID) tea.Msg {
		if status == runtime.StatusCaptured {
			return nil
		}
		return handle(ev, window)
	})
}

type running struct {
	cancel context.CancelFunc
}

// Tracker keeps the declared subscriptions running.
type Tracker struct {
	mu        sync.Mutex
	sources   map[string]running
	listeners []Listener
	wg        sync.WaitGroup
}

func NewTracker() *Tracker {
	return &Tracker{sources: make(map[string]running)}
}

// Track reconciles the running set with subs: new sources start, sources
// no longer declared stop, and the listener list is replaced.
func (t *Tracker) Track(ctx context.Context, subs []Subscription, send func(tea.Msg)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	declared := make(map[string]bool, len(subs))
	t.listeners = t.listeners[:0]
	for _, sub := range subs {
		switch s := sub.(type) {
		case Listener:
			t.listeners = append(t.listeners, s)
		case Source:
			declared[s.id] = true
			if _, ok := t.sources[s.id]; ok {
				continue
			}
			runCtx, cancel := context.WithCancel(ctx)
			t.sources[s.id] = running{cancel: cancel}
			events.Subscription.Start(s.id)
			t.wg.Add(1)
			go func(s Source) {
				defer t.wg.Done()
				s.run(runCtx, func(msg tea.Msg) {
					if msg == nil || runCtx.Err() != nil {
						return
					}
					send(msg)
				})
			}(s)
		}
	}
	for id, r := range t.sources {
		if !declared[id] {
			r.cancel()
			delete(t.sources, id)
			events.Subscription.Stop(id)
		}
	}
}

// Broadcast hands one window event to every listener and returns the
// messages they produced.
func (t *Tracker) Broadcast(ev event.Event, status runtime.Status, id runtime.WindowID) []tea.Msg {
	t.mu.Lock()
	listeners := append([]Listener(nil), t.listeners...)
	t.mu.Unlock()

	var out []tea.Msg
	for _, l := range listeners {
		if msg := l.handle(ev, status, id); msg != nil {
			out = append(out, msg)
		}
	}
	return out
}

// Running returns the number of running sources.
func (t *Tracker) Running() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sources)
}

// Stop cancels every source. Sources exit after their current step; use
// Wait if a clean drain is required.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, r := range t.sources {
		r.cancel()
		delete(t.sources, id)
	}
	t.listeners = nil
}

// Wait blocks until every source goroutine has exited.
func (t *Tracker) Wait() {
	t.wg.Wait()
}
