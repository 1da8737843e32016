// FILE: lixenwraith/duallog/rotation.go
package duallog

import (
	"os"
	"strings"
	"time"
)

// Window file name layouts, appended to the prefix after a dot
const (
	layoutMinutely = "2006-01-02-15-04"
	layoutHourly   = "2006-01-02-15"
	layoutDaily    = "2006-01-02"
)

// schedule describes how a rotation setting maps timestamps to windows
type schedule struct {
	rotation string
	period   time.Duration // zero for RotationNever
	layout   string
}

// newSchedule resolves a rotation name, empty selects hourly
func newSchedule(rotation string) (schedule, error) {
	switch rotation {
	case RotationMinutely:
		return schedule{rotation: rotation, period: time.Minute, layout: layoutMinutely}, nil
	case RotationHourly, "":
		return schedule{rotation: RotationHourly, period: time.Hour, layout: layoutHourly}, nil
	case RotationDaily:
		return schedule{rotation: rotation, period: 24 * time.Hour, layout: layoutDaily}, nil
	case RotationNever:
		return schedule{rotation: rotation}, nil
	default:
		return schedule{}, fmtErrorf("invalid rotation: '%s' (use minutely, hourly, daily, or never)", rotation)
	}
}

// windowStart returns the UTC start of the window containing t
func (s schedule) windowStart(t time.Time) time.Time {
	if s.period == 0 {
		return time.Time{}
	}
	return t.UTC().Truncate(s.period)
}

// fileName derives the deterministic file name of a window
func (s schedule) fileName(prefix string, window time.Time) string {
	if s.period == 0 {
		return prefix
	}
	return prefix + "." + window.Format(s.layout)
}

// parseWindow recovers the window start from a file name produced by fileName
func (s schedule) parseWindow(prefix, name string) (time.Time, bool) {
	if s.period == 0 || !strings.HasPrefix(name, prefix+".") {
		return time.Time{}, false
	}
	suffix := name[len(prefix)+1:]
	if len(suffix) != len(s.layout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(s.layout, suffix, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RotationState is the open window of a file sink.
// Only the writer goroutine reads or replaces it.
type RotationState struct {
	prefix      string
	windowStart time.Time
	file        *os.File
}

// active reports whether a file is open for the given window
func (rs *RotationState) active(window time.Time) bool {
	return rs.file != nil && rs.windowStart.Equal(window)
}
