package engine

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/subscription"
	"github.com/atomicstack/tea-layershell/internal/theme"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

// Application is a multi-window program. Info is the tag attached to every
// window opened on request; the application owns the id to tag mapping and
// the engine only goes through the hooks below.
type Application[Info any] interface {
	Init() tea.Cmd
	Namespace() string
	Update(msg tea.Msg) tea.Cmd
	View(id runtime.WindowID) ui.Element

	WindowInfo(id runtime.WindowID) (Info, bool)
	SetWindowInfo(id runtime.WindowID, info Info)
	RemoveWindow(id runtime.WindowID)

	Subscriptions() []subscription.Subscription
	Appearance() runtime.Appearance
	ScaleFactor(id runtime.WindowID) float64
	ShouldExit() bool
}

// ActionConverter is implemented by applications that define their own
// actions. ConvertAction maps the value of an action.CustomMsg to an engine
// action; returning false drops it.
type ActionConverter interface {
	ConvertAction(v any) (tea.Msg, bool)
}

// Base provides the bookkeeping hooks of Application. Embed it and
// implement Update and View.
type Base[Info any] struct {
	infos map[runtime.WindowID]Info
}

func (b *Base[Info]) Init() tea.Cmd { return nil }

func (b *Base[Info]) Namespace() string { return "tea-layershell" }

func (b *Base[Info]) WindowInfo(id runtime.WindowID) (Info, bool) {
	info, ok := b.infos[id]
	return info, ok
}

func (b *Base[Info]) SetWindowInfo(id runtime.WindowID, info Info) {
	if b.infos == nil {
		b.infos = make(map[runtime.WindowID]Info)
	}
	b.infos[id] = info
}

func (b *Base[Info]) RemoveWindow(id runtime.WindowID) {
	delete(b.infos, id)
}

// Windows returns the ids that currently carry a tag.
func (b *Base[Info]) Windows() []runtime.WindowID {
	ids := make([]runtime.WindowID, 0, len(b.infos))
	for id := range b.infos {
		ids = append(ids, id)
	}
	return ids
}

func (b *Base[Info]) Subscriptions() []subscription.Subscription { return nil }

func (b *Base[Info]) Appearance() runtime.Appearance { return theme.DefaultAppearance() }

func (b *Base[Info]) ScaleFactor(runtime.WindowID) float64 { return 1 }

func (b *Base[Info]) ShouldExit() bool { return false }
