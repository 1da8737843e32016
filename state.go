// FILE: lixenwraith/duallog/state.go
package duallog

import (
	"go.uber.org/atomic"
)

// GuardState is the lifecycle stage of a logging facility instance
type GuardState int32

const (
	StateUninitialized GuardState = iota
	StateActive
	StateDraining
	StateClosed
)

// String returns the state name
func (s GuardState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// State encapsulates the runtime counters and flags of a logger instance
type State struct {
	Lifecycle atomic.Int32 // stores GuardState

	TotalLogged        atomic.Uint64 // Records accepted by the dispatcher
	TotalWritten       atomic.Uint64 // Records written to the file sink
	TotalDroppedLogs   atomic.Uint64 // Records lost to backpressure or a closed queue
	TotalFileErrors    atomic.Uint64 // File sink open/write failures
	TotalConsoleErrors atomic.Uint64 // Console sink write failures
	TotalRotations     atomic.Uint64 // Successful window changes
	TotalDeletions     atomic.Uint64 // Files removed by retention

	CurrentFile       atomic.String // Path of the open window file
	HeartbeatSequence atomic.Uint64
	LoggerStartTime   atomic.Time
}

// Stats is a point-in-time snapshot of the logger counters
type Stats struct {
	Logged        uint64
	Written       uint64
	Dropped       uint64
	FileErrors    uint64
	ConsoleErrors uint64
	Rotations     uint64
	Deletions     uint64
	CurrentFile   string
}

func (s *State) lifecycle() GuardState {
	return GuardState(s.Lifecycle.Load())
}

func (s *State) snapshot() Stats {
	return Stats{
		Logged:        s.TotalLogged.Load(),
		Written:       s.TotalWritten.Load(),
		Dropped:       s.TotalDroppedLogs.Load(),
		FileErrors:    s.TotalFileErrors.Load(),
		ConsoleErrors: s.TotalConsoleErrors.Load(),
		Rotations:     s.TotalRotations.Load(),
		Deletions:     s.TotalDeletions.Load(),
		CurrentFile:   s.CurrentFile.Load(),
	}
}
