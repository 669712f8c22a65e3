package engine

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tea-layershell/internal/logging/events"
)

// Executor runs commands away from the loop. Results re-enter the loop only
// through send.
type Executor interface {
	Spawn(cmd tea.Cmd, send func(tea.Msg))
	Stream(ctx context.Context, run func(context.Context, func(tea.Msg)), send func(tea.Msg))
	Wait()
}

// GoExecutor runs every command on its own goroutine.
type GoExecutor struct {
	wg sync.WaitGroup
}

func NewGoExecutor() *GoExecutor {
	return &GoExecutor{}
}

func (e *GoExecutor) Spawn(cmd tea.Cmd, send func(tea.Msg)) {
	if cmd == nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		deliver(cmd(), func(next tea.Cmd) { e.Spawn(next, send) }, send)
	}()
}

func (e *GoExecutor) Stream(ctx context.Context, run func(context.Context, func(tea.Msg)), send func(tea.Msg)) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		events.Command.Stream("start")
		run(ctx, func(msg tea.Msg) {
			if msg == nil || ctx.Err() != nil {
				return
			}
			send(msg)
		})
		events.Command.Stream("done")
	}()
}

// Wait blocks until every spawned command returned.
func (e *GoExecutor) Wait() {
	e.wg.Wait()
}

// InlineExecutor runs commands synchronously on the caller. Commands that
// block (tea.Tick, tea.Every) block the caller too.
type InlineExecutor struct{}

func (InlineExecutor) Spawn(cmd tea.Cmd, send func(tea.Msg)) {
	if cmd == nil {
		return
	}
	deliver(cmd(), func(next tea.Cmd) { InlineExecutor{}.Spawn(next, send) }, send)
}

func (InlineExecutor) Stream(ctx context.Context, run func(context.Context, func(tea.Msg)), send func(tea.Msg)) {
	run(ctx, func(msg tea.Msg) {
		if msg != nil {
			send(msg)
		}
	})
}

func (InlineExecutor) Wait() {}

// deliver unwraps batches so each command of a tea.Batch runs on its own.
func deliver(msg tea.Msg, spawn func(tea.Cmd), send func(tea.Msg)) {
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, cmd := range m {
			spawn(cmd)
		}
	default:
		events.Command.Result(fmt.Sprintf("%T", msg))
		send(msg)
	}
}
