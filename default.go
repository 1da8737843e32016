// FILE: lixenwraith/duallog/default.go
package duallog

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/lixenwraith/duallog/formatter"
)

var (
	initMu        sync.Mutex
	defaultLogger atomic.Pointer[Logger]

	// uninitialized backs Default before Init, every call on it is a no-op
	uninitialized = &Logger{core: &core{cfg: DefaultConfig()}}
)

// Init installs a process-wide logger behind the package-level functions.
// While a previous instance is live it returns ErrAlreadyInitialized and leaves that instance untouched.
// Releasing the returned guard clears the default, after which Init may be called again.
func Init(cfg *Config, opts ...Option) (*Guard, error) {
	initMu.Lock()
	defer initMu.Unlock()

	if prev := defaultLogger.Load(); prev != nil && prev.State() == StateActive {
		prev.core.internalLog("Init called while the default logger is active, release its guard first\n")
		return nil, ErrAlreadyInitialized
	}

	l, g, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	l.core.onRelease(func() {
		defaultLogger.CompareAndSwap(l, nil)
	})
	defaultLogger.Store(l)
	return g, nil
}

// Default returns the process-wide logger, or a no-op logger before Init
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return uninitialized
}

// Named returns a view of the default logger stamping records with a thread name
func Named(name string) *Logger {
	return Default().Named(name)
}

// Flush triggers a drain and sync of the default logger's file sink
func Flush(timeout time.Duration) error {
	return Default().Flush(timeout)
}

// Trace logs a message at trace level
func Trace(args ...any) {
	if l := Default(); l.enabled(LevelTrace) {
		l.output(2, LevelTrace, formatter.FormatArgs(args...))
	}
}

// Debug logs a message at debug level
func Debug(args ...any) {
	if l := Default(); l.enabled(LevelDebug) {
		l.output(2, LevelDebug, formatter.FormatArgs(args...))
	}
}

// Info logs a message at info level
func Info(args ...any) {
	if l := Default(); l.enabled(LevelInfo) {
		l.output(2, LevelInfo, formatter.FormatArgs(args...))
	}
}

// Warn logs a message at warning level
func Warn(args ...any) {
	if l := Default(); l.enabled(LevelWarn) {
		l.output(2, LevelWarn, formatter.FormatArgs(args...))
	}
}

// Error logs a message at error level
func Error(args ...any) {
	if l := Default(); l.enabled(LevelError) {
		l.output(2, LevelError, formatter.FormatArgs(args...))
	}
}

// Tracef logs a formatted message at trace level
func Tracef(format string, args ...any) {
	if l := Default(); l.enabled(LevelTrace) {
		l.output(2, LevelTrace, sprintf(format, args...))
	}
}

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...any) {
	if l := Default(); l.enabled(LevelDebug) {
		l.output(2, LevelDebug, sprintf(format, args...))
	}
}

// Infof logs a formatted message at info level
func Infof(format string, args ...any) {
	if l := Default(); l.enabled(LevelInfo) {
		l.output(2, LevelInfo, sprintf(format, args...))
	}
}

// Warnf logs a formatted message at warning level
func Warnf(format string, args ...any) {
	if l := Default(); l.enabled(LevelWarn) {
		l.output(2, LevelWarn, sprintf(format, args...))
	}
}

// Errorf logs a formatted message at error level
func Errorf(format string, args ...any) {
	if l := Default(); l.enabled(LevelError) {
		l.output(2, LevelError, sprintf(format, args...))
	}
}
