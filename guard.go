// FILE: lixenwraith/duallog/guard.go
package duallog

import (
	"context"
	"sync"
)

// Guard owns the writer goroutine and the open log file of one instance.
// Release it on every exit path; queued records are lost otherwise.
type Guard struct {
	core *core
	once sync.Once
	err  error
}

// Release drains and closes the instance, waiting at most shutdown_timeout_ms.
// Calling it again returns the result of the first call.
func (g *Guard) Release() error {
	ctx, cancel := context.WithTimeout(context.Background(), g.core.cfg.shutdownTimeout())
	defer cancel()
	return g.ReleaseContext(ctx)
}

// ReleaseContext drains and closes the instance, bounded by ctx
func (g *Guard) ReleaseContext(ctx context.Context) error {
	g.once.Do(func() {
		g.err = g.core.shutdown(ctx)
	})
	return g.err
}

// State returns the lifecycle stage of the guarded instance
func (g *Guard) State() GuardState {
	return g.core.state.lifecycle()
}

// Stats returns a snapshot of the guarded instance counters
func (g *Guard) Stats() Stats {
	return g.core.state.snapshot()
}

// shutdown moves the instance Active -> Draining -> Closed
func (c *core) shutdown(ctx context.Context) error {
	if !c.state.Lifecycle.CompareAndSwap(int32(StateActive), int32(StateDraining)) {
		return nil
	}

	// No new diagnostics once draining
	close(c.diagStop)
	c.diagWG.Wait()

	// Final report so drops since the last tick are never silent
	if c.cfg.DropReportIntervalS > 0 {
		c.reportedDrops = c.reportDrops(c.reportedDrops)
	}

	var finalErr error
	if c.writer != nil {
		if err := c.writer.Close(ctx); err != nil {
			finalErr = combineErrors(finalErr, err)
			c.internalLog("%v\n", err)
		}
	}

	if c.console != nil {
		if err := c.console.Sync(); err != nil {
			finalErr = combineErrors(finalErr, err)
		}
	}

	c.state.Lifecycle.Store(int32(StateClosed))

	for _, hook := range c.releaseHooks {
		hook()
	}

	return finalErr
}

// onRelease registers a function run after the instance reaches Closed.
// Only called before the guard is handed out.
func (c *core) onRelease(fn func()) {
	c.releaseHooks = append(c.releaseHooks, fn)
}
