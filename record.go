// FILE: lixenwraith/duallog/record.go
package duallog

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// capture builds a record for the call site depth frames above capture's caller (0 is the caller itself)
func (l *Logger) capture(depth int, level int64, msg string) Record {
	file, line, target := callerInfo(depth + 1)
	return Record{
		Level:      level,
		Message:    msg,
		Time:       time.Now(),
		Target:     target,
		ThreadID:   goroutineID(),
		ThreadName: l.name,
		File:       file,
		Line:       line,
	}
}

// enabled reports whether a record at level would be dispatched
func (l *Logger) enabled(level int64) bool {
	c := l.core
	if c == nil || c.state.lifecycle() != StateActive {
		return false
	}
	return level >= c.level || level >= LevelProc
}

// output captures and dispatches a record. depth 1 is the caller of output.
func (l *Logger) output(depth int, level int64, msg string) {
	if !l.enabled(level) {
		return
	}
	l.core.dispatch(l.capture(depth, level, msg))
}

// dispatch fans a record out to every sink. A sink failure never reaches the caller or the other sink.
func (c *core) dispatch(rec Record) {
	c.state.TotalLogged.Inc()

	if c.console != nil {
		if err := c.console.Write(rec); err != nil {
			c.state.TotalConsoleErrors.Inc()
			c.internalLog("%v\n", err)
		}
	}

	if c.writer != nil {
		c.writer.Enqueue(rec)
	}
}

// internalLog handles writing internal logger diagnostics to stderr, if enabled.
func (c *core) internalLog(format string, args ...any) {
	if !c.cfg.InternalErrorsToStderr {
		return
	}

	// Ensure consistent "duallog: " prefix
	msg := fmt.Sprintf(format, args...)
	if !strings.HasPrefix(msg, "duallog: ") {
		msg = "duallog: " + msg
	}

	_, _ = io.WriteString(c.stderr, msg)
}

// reportError routes a sink side error to the internal diagnostics
func (c *core) reportError(err error) {
	c.internalLog("%v\n", err)
}
