// FILE: lixenwraith/duallog/logger.go
package duallog

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/duallog/formatter"
)

var (
	// ErrAlreadyInitialized is returned by Init while a previous default instance is still live
	ErrAlreadyInitialized = errors.New("duallog: already initialized, release the previous guard first")
	// ErrReleased is returned by operations on a released instance
	ErrReleased = errors.New("duallog: logger released")
)

// core is the shared state of one logging facility instance
type core struct {
	cfg     *Config
	level   int64
	console Sink      // nil when console output is disabled
	writer  *Writer   // nil when file output is disabled
	files   *FileSink // The rotating sink behind writer, nil when replaced by WithFileSink
	state   State
	stderr  io.Writer

	diagStop      chan struct{}
	diagWG        sync.WaitGroup
	reportedDrops uint64 // Owned by the drop reporter, read by shutdown after it exits

	releaseHooks []func()
}

// Logger is the producer-facing handle. Named views share the same core.
type Logger struct {
	core *core
	name string
}

// options collects construction overrides
type options struct {
	consoleWriter io.Writer
	fileSink      Sink
	stderr        io.Writer
}

// Option customizes New
type Option func(*options)

// WithConsoleWriter replaces stdout/stderr as the console destination
func WithConsoleWriter(w io.Writer) Option {
	return func(o *options) {
		o.consoleWriter = w
	}
}

// WithFileSink replaces the rotating file sink behind the writer
func WithFileSink(s Sink) Option {
	return func(o *options) {
		o.fileSink = s
	}
}

// WithDiagnosticWriter replaces stderr as the destination of internal diagnostics
func WithDiagnosticWriter(w io.Writer) Option {
	return func(o *options) {
		o.stderr = w
	}
}

// New validates cfg, builds the sinks and starts the background goroutines.
// The returned Guard must be released before exit to drain queued records.
func New(cfg *Config, opts ...Option) (*Logger, *Guard, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.Clone()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &core{
		cfg:      cfg,
		level:    cfg.Level,
		stderr:   o.stderr,
		diagStop: make(chan struct{}),
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	c.state.LoggerStartTime.Store(time.Now())

	if cfg.EnableConsole {
		w := o.consoleWriter
		if w == nil {
			if cfg.ConsoleTarget == ConsoleStderr {
				w = os.Stderr
			} else {
				w = os.Stdout
			}
		}
		c.console = NewConsoleSink(w, cfg.ConsoleSinkConfig())
	}

	if cfg.EnableFile || o.fileSink != nil {
		sink := o.fileSink
		if sink == nil {
			fs, err := NewFileSink(cfg.Directory, cfg.Name, cfg.Rotation, cfg.FileSinkConfig(), cfg.fileSinkOptions())
			if err != nil {
				return nil, nil, err
			}
			sink = fs
		}
		if fs, ok := sink.(*FileSink); ok {
			fs.attach(&c.state, c.reportError)
			c.files = fs
		}
		c.writer = newWriter(sink, &c.state, cfg.writerOptions())
		c.writer.diag = c.internalLog
	}

	c.state.Lifecycle.Store(int32(StateActive))
	if c.writer != nil {
		c.writer.Start()
	}
	c.startDiagnostics()

	return &Logger{core: c}, &Guard{core: c}, nil
}

// Initialize builds a logger writing to the console and to {directory}/{prefix}.{window} files,
// using default settings for everything else.
func Initialize(directory, prefix string, console, file SinkConfig) (*Logger, *Guard, error) {
	cfg := DefaultConfig()
	cfg.Directory = directory
	cfg.Name = prefix
	cfg.setConsoleSinkConfig(console)
	cfg.setFileSinkConfig(file)
	return New(cfg)
}

// Named returns a view of the logger that stamps records with a thread name
func (l *Logger) Named(name string) *Logger {
	return &Logger{core: l.core, name: name}
}

// Name returns the thread name stamped by this view
func (l *Logger) Name() string {
	return l.name
}

// Config returns a copy of the configuration the logger was built with
func (l *Logger) Config() *Config {
	return l.core.cfg.Clone()
}

// State returns the lifecycle stage of the instance
func (l *Logger) State() GuardState {
	return l.core.state.lifecycle()
}

// Stats returns a snapshot of the logger counters
func (l *Logger) Stats() Stats {
	return l.core.state.snapshot()
}

// Flush writes every queued record to the file sink and syncs it, waiting at most timeout
func (l *Logger) Flush(timeout time.Duration) error {
	c := l.core
	switch c.state.lifecycle() {
	case StateUninitialized:
		return fmtErrorf("logger not initialized")
	case StateDraining, StateClosed:
		return ErrReleased
	}
	if c.writer == nil {
		return nil
	}
	return c.writer.Flush(timeout)
}

// Output logs msg at level for the caller calldepth frames up. calldepth 1 is the caller of Output.
// It serves adapters that wrap the logger.
func (l *Logger) Output(calldepth int, level int64, msg string) {
	l.output(calldepth+1, level, msg)
}

// Enabled reports whether records at level are currently dispatched
func (l *Logger) Enabled(level int64) bool {
	return l.enabled(level)
}

// Trace logs a message at trace level
func (l *Logger) Trace(args ...any) {
	if l.enabled(LevelTrace) {
		l.output(2, LevelTrace, formatter.FormatArgs(args...))
	}
}

// Debug logs a message at debug level
func (l *Logger) Debug(args ...any) {
	if l.enabled(LevelDebug) {
		l.output(2, LevelDebug, formatter.FormatArgs(args...))
	}
}

// Info logs a message at info level
func (l *Logger) Info(args ...any) {
	if l.enabled(LevelInfo) {
		l.output(2, LevelInfo, formatter.FormatArgs(args...))
	}
}

// Warn logs a message at warning level
func (l *Logger) Warn(args ...any) {
	if l.enabled(LevelWarn) {
		l.output(2, LevelWarn, formatter.FormatArgs(args...))
	}
}

// Error logs a message at error level
func (l *Logger) Error(args ...any) {
	if l.enabled(LevelError) {
		l.output(2, LevelError, formatter.FormatArgs(args...))
	}
}

// Tracef logs a formatted message at trace level
func (l *Logger) Tracef(format string, args ...any) {
	if l.enabled(LevelTrace) {
		l.output(2, LevelTrace, sprintf(format, args...))
	}
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...any) {
	if l.enabled(LevelDebug) {
		l.output(2, LevelDebug, sprintf(format, args...))
	}
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...any) {
	if l.enabled(LevelInfo) {
		l.output(2, LevelInfo, sprintf(format, args...))
	}
}

// Warnf logs a formatted message at warning level
func (l *Logger) Warnf(format string, args ...any) {
	if l.enabled(LevelWarn) {
		l.output(2, LevelWarn, sprintf(format, args...))
	}
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...any) {
	if l.enabled(LevelError) {
		l.output(2, LevelError, sprintf(format, args...))
	}
}
