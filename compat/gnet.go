// FILE: lixenwraith/duallog/compat/gnet.go
package compat

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/duallog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps duallog.Logger to implement the gnet logging.Logger interface
type GnetAdapter struct {
	logger       *duallog.Logger
	fatalHandler func(msg string)
	flushTimeout time.Duration
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *duallog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger:       logger.Named("gnet"),
		flushTimeout: 100 * time.Millisecond,
		fatalHandler: func(msg string) {
			os.Exit(1)
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// WithFatalFlushTimeout bounds how long Fatalf waits for queued records
func WithFatalFlushTimeout(timeout time.Duration) GnetOption {
	return func(a *GnetAdapter) {
		a.flushTimeout = timeout
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Output(2, duallog.LevelDebug, fmt.Sprintf(format, args...))
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Output(2, duallog.LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Output(2, duallog.LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Output(2, duallog.LevelError, fmt.Sprintf(format, args...))
}

// Fatalf logs at error level, flushes, then triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Output(2, duallog.LevelError, "fatal: "+msg)

	_ = a.logger.Flush(a.flushTimeout)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
