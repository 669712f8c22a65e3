// Package uicache holds the per-window interface slots. A slot is either a
// live interface or the cache it was torn down into, never both.
package uicache

import (
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

// Slot is Live or Cold.
type Slot interface {
	slot()
}

type Live struct {
	UI ui.UserInterface
}

type Cold struct {
	Cache ui.Cache
}

func (Live) slot() {}
func (Cold) slot() {}

// Dematerialize tears a slot down into its cache.
func Dematerialize(s Slot) Cold {
	switch v := s.(type) {
	case Live:
		return Cold{Cache: v.UI.IntoCache()}
	case Cold:
		return v
	}
	return Cold{}
}

// Materialize builds a slot into a live interface.
func Materialize(s Slot, build func(ui.Cache) ui.UserInterface) Live {
	switch v := s.(type) {
	case Live:
		return v
	case Cold:
		return Live{UI: build(v.Cache)}
	}
	return Live{UI: build(nil)}
}

// Set is the slot of every window, keyed by window id.
type Set struct {
	slots map[runtime.WindowID]Slot
}

func NewSet() *Set {
	return &Set{slots: make(map[runtime.WindowID]Slot)}
}

// Insert stores a freshly built interface.
func (s *Set) Insert(id runtime.WindowID, iface ui.UserInterface) {
	s.slots[id] = Live{UI: iface}
}

// Live returns the live interface of a window, if it is materialized.
func (s *Set) Live(id runtime.WindowID) (ui.UserInterface, bool) {
	live, ok := s.slots[id].(Live)
	if !ok {
		return nil, false
	}
	return live.UI, true
}

// Replace swaps the live interface of a materialized window, as after a
// relayout.
func (s *Set) Replace(id runtime.WindowID, iface ui.UserInterface) bool {
	if _, ok := s.slots[id].(Live); !ok {
		return false
	}
	s.slots[id] = Live{UI: iface}
	return true
}

// Remove drops a window's slot and returns whatever cache it held.
func (s *Set) Remove(id runtime.WindowID) (ui.Cache, bool) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, false
	}
	delete(s.slots, id)
	return Dematerialize(slot).Cache, true
}

// DematerializeAll tears every live interface down into its cache.
func (s *Set) DematerializeAll() {
	for id, slot := range s.slots {
		s.slots[id] = Dematerialize(slot)
	}
}

// MaterializeAll rebuilds the slots of ids in order. Ids without a slot are
// built from scratch.
func (s *Set) MaterializeAll(ids []runtime.WindowID, build func(id runtime.WindowID, cache ui.Cache) ui.UserInterface) {
	for _, id := range ids {
		slot, ok := s.slots[id]
		if !ok {
			slot = Cold{}
		}
		s.slots[id] = Materialize(slot, func(cache ui.Cache) ui.UserInterface {
			return build(id, cache)
		})
	}
}

// Drain empties the set, returning the caches of every slot.
func (s *Set) Drain() map[runtime.WindowID]ui.Cache {
	out := make(map[runtime.WindowID]ui.Cache, len(s.slots))
	for id, slot := range s.slots {
		out[id] = Dematerialize(slot).Cache
		delete(s.slots, id)
	}
	return out
}

func (s *Set) Len() int { return len(s.slots) }
