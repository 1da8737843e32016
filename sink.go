// FILE: lixenwraith/duallog/sink.go
package duallog

import (
	"github.com/lixenwraith/duallog/formatter"
)

// Record is a single captured log call
type Record = formatter.Record

// SinkConfig holds per-sink formatting options
type SinkConfig = formatter.SinkConfig

// Sink is a destination for formatted log records.
// The console sink is called from producer goroutines, the file sink only from the writer goroutine.
type Sink interface {
	Write(rec Record) error
	Sync() error
	Close() error
	Name() string
}

// retainer is implemented by sinks that prune old output on a schedule
type retainer interface {
	EnforceRetention() (int, error)
}
