package counter

import (
	"context"
	"log/slog"
	"sync"
)

// taskGroup supervises the fire-and-forget remote writes behind optimistic
// responses. Failures are logged, never surfaced to the caller; Wait lets
// shutdown and tests drain in-flight work.
type taskGroup struct {
	log *slog.Logger
	wg  sync.WaitGroup
}

func newTaskGroup(log *slog.Logger) *taskGroup {
	return &taskGroup{log: log}
}

// spawn runs fn on its own goroutine with a fresh background context, so the
// write outlives the HTTP request that triggered it.
func (g *taskGroup) spawn(name string, fn func(context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.log.Error("background task panicked", "task", name, "panic", r)
			}
		}()
		if err := fn(context.Background()); err != nil {
			g.log.Warn("background task failed", "task", name, "error", err)
		}
	}()
}

func (g *taskGroup) Wait() {
	g.wg.Wait()
}
