// FILE: lixenwraith/duallog/writer_test.go
package duallog

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink collects records in memory, optionally failing or stalling writes
type recordingSink struct {
	mu      sync.Mutex
	records []Record
	syncs   int
	closed  bool
	fail    func(rec Record) bool
	gate    chan struct{} // When set, Write waits until it is closed
}

func (s *recordingSink) Write(rec Record) error {
	if s.gate != nil {
		<-s.gate
	}
	if s.fail != nil && s.fail(rec) {
		return errors.New("simulated write failure")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *recordingSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncs++
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]string, len(s.records))
	for i, rec := range s.records {
		msgs[i] = rec.Message
	}
	return msgs
}

func numbered(i int) Record {
	return Record{Level: LevelInfo, Message: strconv.Itoa(i), Time: time.Now()}
}

func seq(from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

func closeWriter(t *testing.T, w *Writer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, w.Close(ctx))
}

func TestWriterPreservesFIFO(t *testing.T) {
	sink := &recordingSink{}
	w := newWriter(sink, nil, writerOptions{bufferSize: 64, policy: PolicyBlock, blockTimeout: time.Second})
	w.Start()

	const n = 1000
	for i := 0; i < n; i++ {
		require.True(t, w.Enqueue(numbered(i)))
	}
	closeWriter(t, w)

	assert.Equal(t, seq(0, n), sink.messages())
	assert.Equal(t, uint64(n), w.state.TotalWritten.Load())
	assert.True(t, sink.closed)
}

func TestWriterBackpressure(t *testing.T) {
	const bound = 10
	const enqueued = 25

	t.Run("drop newest keeps the first records", func(t *testing.T) {
		sink := &recordingSink{}
		w := newWriter(sink, nil, writerOptions{bufferSize: bound, policy: PolicyDropNewest})

		accepted := 0
		for i := 0; i < enqueued; i++ {
			if w.Enqueue(numbered(i)) {
				accepted++
			}
		}
		assert.Equal(t, bound, accepted)
		assert.Equal(t, bound, w.Queued())

		closeWriter(t, w)
		assert.Equal(t, seq(0, bound), sink.messages())
		assert.Equal(t, uint64(enqueued-bound), w.state.TotalDroppedLogs.Load())
	})

	t.Run("drop oldest keeps the last records", func(t *testing.T) {
		sink := &recordingSink{}
		w := newWriter(sink, nil, writerOptions{bufferSize: bound, policy: PolicyDropOldest})

		for i := 0; i < enqueued; i++ {
			assert.True(t, w.Enqueue(numbered(i)))
		}

		closeWriter(t, w)
		retained := sink.messages()
		assert.Len(t, retained, bound)
		assert.Equal(t, seq(enqueued-bound, enqueued), retained)
		assert.Equal(t, uint64(enqueued-len(retained)), w.state.TotalDroppedLogs.Load())
	})

	t.Run("block waits then drops", func(t *testing.T) {
		sink := &recordingSink{}
		w := newWriter(sink, nil, writerOptions{bufferSize: 1, policy: PolicyBlock, blockTimeout: 20 * time.Millisecond})

		require.True(t, w.Enqueue(numbered(0)))
		start := time.Now()
		assert.False(t, w.Enqueue(numbered(1)))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

		closeWriter(t, w)
		assert.Equal(t, []string{"0"}, sink.messages())
		assert.Equal(t, uint64(1), w.state.TotalDroppedLogs.Load())
	})

	t.Run("close releases a blocked producer", func(t *testing.T) {
		sink := &recordingSink{}
		w := newWriter(sink, nil, writerOptions{bufferSize: 1, policy: PolicyBlock, blockTimeout: time.Minute})
		require.True(t, w.Enqueue(numbered(0)))

		result := make(chan bool, 1)
		go func() {
			result <- w.Enqueue(numbered(1))
		}()
		time.Sleep(20 * time.Millisecond)

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, w.Close(ctx))
		assert.Less(t, time.Since(start), 5*time.Second)

		select {
		case queued := <-result:
			assert.False(t, queued)
		case <-time.After(5 * time.Second):
			t.Fatal("producer still blocked after close")
		}
		assert.Equal(t, []string{"0"}, sink.messages())
		assert.Equal(t, uint64(1), w.state.TotalDroppedLogs.Load())
	})

	t.Run("block succeeds once the consumer frees space", func(t *testing.T) {
		sink := &recordingSink{}
		w := newWriter(sink, nil, writerOptions{bufferSize: 1, policy: PolicyBlock, blockTimeout: 2 * time.Second})

		require.True(t, w.Enqueue(numbered(0)))
		go func() {
			time.Sleep(20 * time.Millisecond)
			w.Start()
		}()
		assert.True(t, w.Enqueue(numbered(1)))

		closeWriter(t, w)
		assert.Equal(t, []string{"0", "1"}, sink.messages())
		assert.Zero(t, w.state.TotalDroppedLogs.Load())
	})
}

func TestWriterConcurrentProducers(t *testing.T) {
	sink := &recordingSink{}
	w := newWriter(sink, nil, writerOptions{bufferSize: 16, policy: PolicyDropOldest})
	w.Start()

	const producers = 8
	const perProducer = 500
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				w.Enqueue(numbered(i))
			}
		}()
	}
	wg.Wait()
	closeWriter(t, w)

	written := uint64(len(sink.messages()))
	assert.Equal(t, uint64(producers*perProducer), written+w.state.TotalDroppedLogs.Load())
}

func TestWriterCloseDrainsUnstartedQueue(t *testing.T) {
	sink := &recordingSink{}
	w := newWriter(sink, nil, writerOptions{bufferSize: 8})

	for i := 0; i < 5; i++ {
		require.True(t, w.Enqueue(numbered(i)))
	}
	closeWriter(t, w)

	assert.Equal(t, seq(0, 5), sink.messages())
	assert.GreaterOrEqual(t, sink.syncs, 1)
}

func TestWriterCloseTimeout(t *testing.T) {
	gate := make(chan struct{})
	sink := &recordingSink{gate: gate}
	w := newWriter(sink, nil, writerOptions{bufferSize: 8})

	for i := 0; i < 5; i++ {
		require.True(t, w.Enqueue(numbered(i)))
	}
	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := w.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still queued")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The drain continues in the background
	close(gate)
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("writer did not finish draining")
	}
	assert.Equal(t, seq(0, 5), sink.messages())
}

func TestWriterEnqueueAfterClose(t *testing.T) {
	w := newWriter(&recordingSink{}, nil, writerOptions{bufferSize: 4})
	closeWriter(t, w)

	assert.False(t, w.Enqueue(numbered(0)))
	assert.Equal(t, uint64(1), w.state.TotalDroppedLogs.Load())
	assert.ErrorIs(t, w.Flush(time.Second), ErrReleased)
}

func TestWriterSinkErrorsDoNotStopProcessing(t *testing.T) {
	sink := &recordingSink{fail: func(rec Record) bool {
		n, _ := strconv.Atoi(rec.Message)
		return n%2 == 1
	}}
	w := newWriter(sink, nil, writerOptions{bufferSize: 32})
	var diagnostics []string
	var diagMu sync.Mutex
	w.diag = func(format string, args ...any) {
		diagMu.Lock()
		defer diagMu.Unlock()
		diagnostics = append(diagnostics, format)
	}
	w.Start()

	for i := 0; i < 10; i++ {
		require.True(t, w.Enqueue(numbered(i)))
	}
	closeWriter(t, w)

	assert.Equal(t, []string{"0", "2", "4", "6", "8"}, sink.messages())
	assert.Equal(t, uint64(5), w.state.TotalWritten.Load())
	assert.Equal(t, uint64(5), w.state.TotalFileErrors.Load())
	assert.Zero(t, w.state.TotalDroppedLogs.Load())

	diagMu.Lock()
	defer diagMu.Unlock()
	assert.Len(t, diagnostics, 5)
}

func TestWriterFlush(t *testing.T) {
	sink := &recordingSink{}
	w := newWriter(sink, nil, writerOptions{bufferSize: 32})

	assert.Error(t, w.Flush(100*time.Millisecond), "flush before start")

	for i := 0; i < 10; i++ {
		require.True(t, w.Enqueue(numbered(i)))
	}
	w.Start()
	require.NoError(t, w.Flush(time.Second))

	assert.Equal(t, seq(0, 10), sink.messages())
	sink.mu.Lock()
	assert.GreaterOrEqual(t, sink.syncs, 1)
	sink.mu.Unlock()

	closeWriter(t, w)
}

func TestWriterPeriodicSync(t *testing.T) {
	sink := &recordingSink{}
	w := newWriter(sink, nil, writerOptions{bufferSize: 4, periodicSync: true, flushInterval: 5 * time.Millisecond})
	w.Start()

	assert.Eventually(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return sink.syncs >= 2
	}, time.Second, 5*time.Millisecond)

	closeWriter(t, w)
}
