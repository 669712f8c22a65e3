package engine

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/headless"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
	"github.com/atomicstack/tea-layershell/internal/widget"
)

type HarnessOptions struct {
	// Builder defaults to the widget builder.
	Builder   ui.Builder
	Output    layershell.Size
	Protocols []layershell.Protocol
}

// Harness drives an application against a headless compositor with an
// inline executor, so every Send settles before it returns.
type Harness[Info any] struct {
	host *Host[Info]
	comp *headless.Compositor
}

func NewHarness[Info any](app Application[Info], settings layershell.Settings, opts HarnessOptions) (*Harness[Info], error) {
	comp := headless.New(headless.Options{Output: opts.Output, Protocols: opts.Protocols})
	builder := opts.Builder
	if builder == nil {
		builder = widget.NewBuilder()
	}
	host, err := NewHost(app, Options{
		Settings:  settings,
		Builder:   builder,
		Presenter: widget.NewPresenter(comp.Present),
		Executor:  InlineExecutor{},
		Wake:      comp.Wake,
	})
	if err != nil {
		return nil, err
	}
	if err := comp.Start(host, host.Settings()); err != nil {
		host.Close()
		return nil, err
	}
	return &Harness[Info]{host: host, comp: comp}, nil
}

// Send delivers msg as a user event and pumps until the engine settles.
func (h *Harness[Info]) Send(msg tea.Msg) {
	h.comp.Send(msg)
	h.comp.Pump()
}

// Pump dispatches queued compositor input.
func (h *Harness[Info]) Pump() int {
	return h.comp.Pump()
}

// View returns the last presented frame of a window as plain text.
func (h *Harness[Info]) View(id runtime.WindowID) string {
	surface, ok := h.host.Surface(id)
	if !ok {
		return ""
	}
	return h.comp.Text(surface)
}

func (h *Harness[Info]) Host() *Host[Info] { return h.host }

func (h *Harness[Info]) Compositor() *headless.Compositor { return h.comp }
