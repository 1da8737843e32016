// FILE: lixenwraith/duallog/writer.go
package duallog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// writerOptions configures queueing and the background timers of a Writer
type writerOptions struct {
	bufferSize     int
	policy         string
	blockTimeout   time.Duration
	flushInterval  time.Duration
	periodicSync   bool
	retentionCheck time.Duration
}

// Writer decouples producers from file I/O through a bounded FIFO queue
// drained by a single background goroutine.
type Writer struct {
	sink  Sink
	state *State
	opts  writerOptions

	mu      sync.RWMutex // Write lock only to close the queue, so close never races a send
	closed  bool
	closing chan struct{} // Closed before mu is write-locked, releases blocked producers
	queue   chan Record

	flushRequests chan chan struct{}
	started       atomic.Bool
	startOnce     sync.Once
	closeOnce     sync.Once
	done          chan struct{}
	finalErr      error // Set by the processor before done is closed

	diag func(format string, args ...any)
}

// newWriter creates a writer for sink. Records may be enqueued before Start.
func newWriter(sink Sink, state *State, opts writerOptions) *Writer {
	if opts.bufferSize <= 0 {
		opts.bufferSize = 1
	}
	if opts.policy == "" {
		opts.policy = PolicyDropOldest
	}
	if state == nil {
		state = new(State)
	}
	return &Writer{
		sink:          sink,
		state:         state,
		opts:          opts,
		closing:       make(chan struct{}),
		queue:         make(chan Record, opts.bufferSize),
		flushRequests: make(chan chan struct{}),
		done:          make(chan struct{}),
		diag:          func(string, ...any) {},
	}
}

// Start launches the background goroutine. Safe to call multiple times.
func (w *Writer) Start() {
	w.startOnce.Do(func() {
		w.started.Store(true)
		go w.processRecords()
	})
}

// Enqueue hands a record to the background goroutine and reports whether it was queued.
// It never waits on I/O. A full queue is resolved by the backpressure policy.
func (w *Writer) Enqueue(rec Record) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.state.TotalDroppedLogs.Inc()
		return false
	}

	select {
	case w.queue <- rec:
		return true
	default:
	}

	switch w.opts.policy {
	case PolicyDropOldest:
		for {
			select {
			case <-w.queue:
				w.state.TotalDroppedLogs.Inc()
			default:
			}
			select {
			case w.queue <- rec:
				return true
			default:
			}
		}

	case PolicyBlock:
		timer := time.NewTimer(w.opts.blockTimeout)
		defer timer.Stop()
		select {
		case w.queue <- rec:
			return true
		case <-timer.C:
		case <-w.closing:
		}
	}

	w.state.TotalDroppedLogs.Inc()
	return false
}

// Queued returns the number of records waiting to be written
func (w *Writer) Queued() int {
	return len(w.queue)
}

// Flush waits until every record queued at the time of the call is written and synced
func (w *Writer) Flush(timeout time.Duration) error {
	w.mu.RLock()
	closed := w.closed
	w.mu.RUnlock()
	if closed {
		return ErrReleased
	}
	if !w.started.Load() {
		return fmtErrorf("writer not started")
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	confirm := make(chan struct{})
	select {
	case w.flushRequests <- confirm:
	case <-w.done:
		return ErrReleased
	case <-timer.C:
		return fmtErrorf("failed to send flush request to writer within %v", timeout)
	}

	select {
	case <-confirm:
		return nil
	case <-timer.C:
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Close stops accepting records, drains the queue to the sink, then syncs and closes it.
// If ctx ends first the drain keeps running in the background and an error naming the
// number of records still queued is returned. Producers waiting under the block policy
// give up and drop their record as soon as Close is called.
func (w *Writer) Close(ctx context.Context) error {
	w.closeOnce.Do(func() {
		close(w.closing)
		w.mu.Lock()
		w.closed = true
		close(w.queue)
		w.mu.Unlock()

		// A writer closed before Start still drains what was queued
		w.Start()
	})

	select {
	case <-w.done:
		return w.finalErr
	case <-ctx.Done():
		return fmtErrorf("writer drain incomplete, %d records still queued: %w", len(w.queue), ctx.Err())
	}
}

// Done is closed once the background goroutine has drained the queue and closed the sink
func (w *Writer) Done() <-chan struct{} {
	return w.done
}
