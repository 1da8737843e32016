// FILE: lixenwraith/duallog/constant.go
package duallog

import (
	"time"
)

// Log level constants
const (
	LevelTrace int64 = -8
	LevelDebug int64 = -4
	LevelInfo  int64 = 0
	LevelWarn  int64 = 4
	LevelError int64 = 8
)

// Diagnostic levels, always emitted regardless of the configured level
const (
	LevelProc int64 = 12
	LevelDisk int64 = 16
)

// Backpressure policies applied when the file queue is full
const (
	PolicyDropNewest = "drop_newest"
	PolicyDropOldest = "drop_oldest"
	PolicyBlock      = "block"
)

// Rotation schedules for the file sink
const (
	RotationMinutely = "minutely"
	RotationHourly   = "hourly"
	RotationDaily    = "daily"
	RotationNever    = "never"
)

// Console targets
const (
	ConsoleStdout = "stdout"
	ConsoleStderr = "stderr"
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Size multiplier for heartbeat size reports
	sizeMultiplier = 1000
)
