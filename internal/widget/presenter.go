package widget

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
)

// ErrEmptyFont is returned when loading a font with no data.
var ErrEmptyFont = errors.New("widget: empty font data")

// Renderer holds the last frame drawn by an Interface.
type Renderer struct {
	frame  string
	frames int
	fonts  int
}

func (r *Renderer) LoadFont(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFont
	}
	r.fonts++
	return nil
}

// Frame is the last drawn frame, with styling.
func (r *Renderer) Frame() string { return r.frame }

func (r *Renderer) Frames() int { return r.frames }

func (r *Renderer) Fonts() int { return r.fonts }

// Target is a surface frames are presented to.
type Target struct {
	Surface layershell.SurfaceID
	Width   uint32
	Height  uint32
}

// Presenter hands presented frames to a sink.
type Presenter struct {
	sink func(layershell.SurfaceID, string)
}

func NewPresenter(sink func(layershell.SurfaceID, string)) *Presenter {
	return &Presenter{sink: sink}
}

func (p *Presenter) CreateTarget(surface layershell.Surface, width, height uint32) (ui.Target, error) {
	if surface == nil {
		return nil, errors.New("widget: nil surface")
	}
	return &Target{Surface: surface.ID(), Width: width, Height: height}, nil
}

func (p *Presenter) CreateRenderer() ui.Renderer {
	return &Renderer{}
}

func (p *Presenter) ConfigureTarget(t ui.Target, width, height uint32) {
	if target, ok := t.(*Target); ok {
		target.Width, target.Height = width, height
	}
}

func (p *Presenter) Present(r ui.Renderer, t ui.Target, _ runtime.Viewport, _ lipgloss.Color) error {
	rr, ok := r.(*Renderer)
	if !ok {
		return fmt.Errorf("widget: cannot present with %T", r)
	}
	target, ok := t.(*Target)
	if !ok {
		return fmt.Errorf("widget: cannot present to %T", t)
	}
	if p.sink != nil {
		p.sink(target.Surface, rr.frame)
	}
	return nil
}

// Screenshot returns the last frame as plain text.
func (p *Presenter) Screenshot(r ui.Renderer, _ runtime.Viewport, _ lipgloss.Color) []byte {
	rr, ok := r.(*Renderer)
	if !ok {
		return nil
	}
	return []byte(ansi.Strip(rr.frame))
}
