// FILE: lixenwraith/duallog/processor.go
package duallog

import (
	"time"
)

// processRecords is the writer's background loop. It is the only goroutine touching the sink.
func (w *Writer) processRecords() {
	defer close(w.done)

	timers := w.setupTimers()
	defer timers.stop()

	for {
		select {
		case rec, ok := <-w.queue:
			if !ok {
				// Queue closed and fully drained
				w.finalErr = w.finish()
				return
			}
			w.writeRecord(rec)

		case <-timers.syncChan:
			w.performSync()

		case <-timers.retentionChan:
			w.handleRetentionCheck()

		case confirm := <-w.flushRequests:
			w.handleFlushRequest(confirm)
		}
	}
}

// timerSet holds the tickers used by processRecords
type timerSet struct {
	syncTicker      *time.Ticker
	retentionTicker *time.Ticker
	syncChan        <-chan time.Time
	retentionChan   <-chan time.Time
}

func (w *Writer) setupTimers() *timerSet {
	timers := &timerSet{}

	if w.opts.periodicSync && w.opts.flushInterval > 0 {
		timers.syncTicker = time.NewTicker(w.opts.flushInterval)
		timers.syncChan = timers.syncTicker.C
	}

	if _, ok := w.sink.(retainer); ok && w.opts.retentionCheck > 0 {
		timers.retentionTicker = time.NewTicker(w.opts.retentionCheck)
		timers.retentionChan = timers.retentionTicker.C
	}

	return timers
}

func (t *timerSet) stop() {
	if t.syncTicker != nil {
		t.syncTicker.Stop()
	}
	if t.retentionTicker != nil {
		t.retentionTicker.Stop()
	}
}

// writeRecord forwards one record to the sink. Failures are counted and the loop continues.
func (w *Writer) writeRecord(rec Record) {
	if err := w.sink.Write(rec); err != nil {
		w.state.TotalFileErrors.Inc()
		w.diag("%s sink dropped record: %v\n", w.sink.Name(), err)
		return
	}
	w.state.TotalWritten.Inc()
}

// performSync syncs the sink, reporting failures
func (w *Writer) performSync() {
	if err := w.sink.Sync(); err != nil {
		w.state.TotalFileErrors.Inc()
		w.diag("%s sink sync failed: %v\n", w.sink.Name(), err)
	}
}

// handleFlushRequest writes everything queued at request time, syncs, then confirms
func (w *Writer) handleFlushRequest(confirm chan struct{}) {
	for n := len(w.queue); n > 0; n-- {
		rec, ok := <-w.queue
		if !ok {
			break
		}
		w.writeRecord(rec)
	}
	w.performSync()
	close(confirm)
}

// handleRetentionCheck prunes expired files on sinks that support it
func (w *Writer) handleRetentionCheck() {
	r, ok := w.sink.(retainer)
	if !ok {
		return
	}
	if _, err := r.EnforceRetention(); err != nil {
		w.diag("%s sink retention check failed: %v\n", w.sink.Name(), err)
	}
}

// finish syncs and closes the sink after the final record
func (w *Writer) finish() error {
	var finalErr error
	if err := w.sink.Sync(); err != nil {
		finalErr = combineErrors(finalErr, err)
	}
	if err := w.sink.Close(); err != nil {
		finalErr = combineErrors(finalErr, err)
	}
	return finalErr
}
