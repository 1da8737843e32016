// FILE: lixenwraith/duallog/compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/duallog"
	"github.com/valyala/fasthttp"
)

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// FastHTTPAdapter wraps duallog.Logger to implement the fasthttp Logger interface
type FastHTTPAdapter struct {
	logger        *duallog.Logger
	defaultLevel  int64
	levelDetector func(string) (int64, bool)
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *duallog.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger.Named("fasthttp"),
		defaultLevel:  duallog.LevelInfo,
		levelDetector: DetectLogLevel,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the level used when no level is detected in the message
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) (int64, bool)) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected, ok := a.levelDetector(msg); ok {
			level = detected
		}
	}

	a.logger.Output(2, level, msg)
}

// DetectLogLevel guesses a level from keywords in the message.
// The second result is false when no keyword matched.
func DetectLogLevel(msg string) (int64, bool) {
	lower := strings.ToLower(msg)

	switch {
	case containsAny(lower, "error", "failed", "fatal", "panic"):
		return duallog.LevelError, true
	case containsAny(lower, "warn", "deprecated"):
		return duallog.LevelWarn, true
	case containsAny(lower, "debug"):
		return duallog.LevelDebug, true
	case containsAny(lower, "trace"):
		return duallog.LevelTrace, true
	}
	return 0, false
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
