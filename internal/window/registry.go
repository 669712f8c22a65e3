// Package window tracks the live windows of the engine: the compositor
// surface each one is bound to, its renderer and its display state.
package window

import (
	"fmt"

	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

// Entry is one registered window.
type Entry struct {
	ID               runtime.WindowID
	Surface          layershell.Surface
	Target           ui.Target
	Renderer         ui.Renderer
	State            *State
	MouseInteraction runtime.Interaction
}

// Registry maps window ids to entries. Alias resolves the reverse direction
// from a surface id by scanning entries, which stays cheap for the handful
// of windows a shell client opens.
type Registry struct {
	entries map[runtime.WindowID]*Entry
	order   []runtime.WindowID
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[runtime.WindowID]*Entry)}
}

// Insert registers a window on surface. Registering a surface or id twice
// is a programming error and panics.
func (r *Registry) Insert(id runtime.WindowID, width, height uint32, scale float64, surface layershell.Surface, sync Synchronizer, presenter ui.Presenter) (*Entry, error) {
	if surface == nil {
		return nil, fmt.Errorf("window %s: nil surface", id)
	}
	if existing, ok := r.Alias(surface.ID()); ok {
		panic(fmt.Sprintf("window: surface %d already registered as %s", surface.ID(), existing))
	}
	if _, ok := r.entries[id]; ok {
		panic(fmt.Sprintf("window: %s already registered", id))
	}
	target, err := presenter.CreateTarget(surface, width, height)
	if err != nil {
		return nil, fmt.Errorf("window %s: create target: %w", id, err)
	}
	entry := &Entry{
		ID:       id,
		Surface:  surface,
		Target:   target,
		Renderer: presenter.CreateRenderer(),
		State:    NewState(id, width, height, scale, sync),
	}
	r.entries[id] = entry
	r.order = append(r.order, id)
	return entry, nil
}

func (r *Registry) Get(id runtime.WindowID) (*Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Alias resolves a surface id to the window registered on it.
func (r *Registry) Alias(surface layershell.SurfaceID) (runtime.WindowID, bool) {
	for _, id := range r.order {
		if r.entries[id].Surface.ID() == surface {
			return id, true
		}
	}
	return 0, false
}

// SurfaceID resolves a window id to its surface id.
func (r *Registry) SurfaceID(id runtime.WindowID) (layershell.SurfaceID, bool) {
	e, ok := r.entries[id]
	if !ok {
		return 0, false
	}
	return e.Surface.ID(), true
}

func (r *Registry) Remove(id runtime.WindowID) (*Entry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return e, true
}

// IDs returns the registered ids in insertion order.
func (r *Registry) IDs() []runtime.WindowID {
	return append([]runtime.WindowID(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }
