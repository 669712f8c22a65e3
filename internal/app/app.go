package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/tea-layershell/internal/demo"
	"github.com/atomicstack/tea-layershell/internal/engine"
	"github.com/atomicstack/tea-layershell/internal/headless"
	"github.com/atomicstack/tea-layershell/internal/layershell"
	"github.com/atomicstack/tea-layershell/internal/logging"
	"github.com/atomicstack/tea-layershell/internal/logging/events"
	"github.com/atomicstack/tea-layershell/internal/widget"
)

// settlePoll is how often the input feeder checks whether the compositor
// has caught up.
const settlePoll = 5 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Settings layershell.Settings
	// Output is the simulated output size; zero values use the defaults of
	// the headless compositor.
	Output        layershell.Size
	FrameInterval time.Duration
	// Preview writes the last frame of the main surface to the output
	// writer on exit.
	Preview bool
	Clock   bool
}

// Run starts the demo on an in-process compositor and blocks until the
// application exits or ctx is cancelled. Every line read from in is typed
// into the newest surface; an empty line presses enter.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) (err error) {
	defer func() { events.App.Stop(err) }()

	comp := headless.New(headless.Options{
		Output:        cfg.Output,
		Protocols:     []layershell.Protocol{layershell.ProtocolVirtualKeyboard},
		FrameInterval: cfg.FrameInterval,
	})
	host, err := engine.NewHost[demo.Role](demo.New(demo.Options{Clock: cfg.Clock}), engine.Options{
		Settings:  cfg.Settings,
		Builder:   widget.NewBuilder(),
		Presenter: widget.NewPresenter(comp.Present),
		Wake:      comp.Wake,
	})
	if err != nil {
		return fmt.Errorf("create host: %w", err)
	}
	if err := comp.Start(host, host.Settings()); err != nil {
		host.Close()
		return fmt.Errorf("start compositor: %w", err)
	}
	surfaces := comp.Surfaces()
	if len(surfaces) == 0 {
		host.Close()
		return fmt.Errorf("start compositor: no main surface")
	}
	mainSurface := surfaces[0].ID()

	done := make(chan struct{})
	if in != nil {
		go feed(comp, in, done)
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		defer close(done)
		// The run loop outlives ctx so the shutdown below is dispatched.
		return comp.Run(context.WithoutCancel(ctx))
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			host.Close()
		case <-done:
		}
		return nil
	})
	err = g.Wait()

	if cfg.Preview && out != nil {
		if _, werr := io.WriteString(out, comp.Text(mainSurface)+"\n"); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// feed types every line of in into the newest surface, waiting for the
// compositor to settle between lines.
func feed(comp *headless.Compositor, in io.Reader, done <-chan struct{}) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !settle(comp, done) {
			return
		}
		surfaces := comp.Surfaces()
		if len(surfaces) == 0 {
			return
		}
		target := surfaces[len(surfaces)-1].ID()
		line := scanner.Text()
		if line == "" {
			comp.Type(target, 28, 0xff0d, "")
		}
		for _, r := range line {
			comp.Type(target, 0, keysym(r), string(r))
		}
		comp.Wake()
	}
	if err := scanner.Err(); err != nil {
		logging.Error(fmt.Errorf("read input: %w", err))
	}
}

// settle waits until no input is queued and no pump is running. It
// returns false once the compositor has stopped.
func settle(comp *headless.Compositor, done <-chan struct{}) bool {
	for {
		select {
		case <-done:
			return false
		default:
		}
		if comp.Idle() {
			return true
		}
		time.Sleep(settlePoll)
	}
}

func keysym(r rune) uint32 {
	if r < 0x100 {
		return uint32(r)
	}
	return 0x01000000 | uint32(r)
}
