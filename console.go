// FILE: lixenwraith/duallog/console.go
package duallog

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/duallog/formatter"
)

// ConsoleSink writes formatted records synchronously to an interactive stream
type ConsoleSink struct {
	mu        sync.Mutex
	w         io.Writer
	formatter *formatter.Formatter
	buf       []byte
}

// NewConsoleSink creates a console sink writing to w.
// ANSI colors are turned off when w is a file that is not a terminal.
func NewConsoleSink(w io.Writer, cfg SinkConfig) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if f, ok := w.(*os.File); ok && cfg.ANSI {
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			cfg.ANSI = false
		}
	}
	return &ConsoleSink{
		w:         w,
		formatter: formatter.New(cfg),
		buf:       make([]byte, 0, 256),
	}
}

// Write formats and writes one record. Errors are returned to the dispatcher, never to the log caller.
func (s *ConsoleSink) Write(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = s.formatter.Append(s.buf[:0], rec)
	if _, err := s.w.Write(s.buf); err != nil {
		return fmtErrorf("console write failed: %w", err)
	}
	return nil
}

// Sync is a no-op, console writes are unbuffered
func (s *ConsoleSink) Sync() error {
	return nil
}

// Close leaves the underlying stream open, it belongs to the process
func (s *ConsoleSink) Close() error {
	return nil
}

// Name returns the sink name used in diagnostics
func (s *ConsoleSink) Name() string {
	return "console"
}

// Config returns the effective formatting options
func (s *ConsoleSink) Config() SinkConfig {
	return s.formatter.Config()
}
