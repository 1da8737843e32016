// FILE: lixenwraith/duallog/builder.go
package duallog

import (
	"io"
)

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg  *Config
	opts []Option
	err  error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger and its Guard with the specified configuration.
func (b *Builder) Build() (*Logger, *Guard, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	return New(b.cfg, b.opts...)
}

// Config returns the validated configuration without building a logger.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	cfg := b.cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level sets the log level.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the log level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// Name sets the log file prefix.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Rotation sets the rotation schedule.
func (b *Builder) Rotation(rotation string) *Builder {
	b.cfg.Rotation = rotation
	return b
}

// MaxFiles sets how many window files are kept.
func (b *Builder) MaxFiles(n int64) *Builder {
	b.cfg.MaxFiles = n
	return b
}

// RetentionPeriodHrs sets how long window files are kept.
func (b *Builder) RetentionPeriodHrs(hours float64) *Builder {
	b.cfg.RetentionPeriodHrs = hours
	return b
}

// BufferSize sets the queue capacity.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// Backpressure sets the full queue policy.
func (b *Builder) Backpressure(policy string) *Builder {
	b.cfg.Backpressure = policy
	return b
}

// BlockTimeoutMs sets how long producers wait under the block policy.
func (b *Builder) BlockTimeoutMs(ms int64) *Builder {
	b.cfg.BlockTimeoutMs = ms
	return b
}

// ShutdownTimeoutMs sets the drain deadline used by Guard.Release.
func (b *Builder) ShutdownTimeoutMs(ms int64) *Builder {
	b.cfg.ShutdownTimeoutMs = ms
	return b
}

// EnableConsole enables console output.
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// ConsoleTarget selects stdout or stderr.
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// EnableFile enables file output.
func (b *Builder) EnableFile(enable bool) *Builder {
	b.cfg.EnableFile = enable
	return b
}

// ConsoleSink sets the console formatting options.
func (b *Builder) ConsoleSink(sc SinkConfig) *Builder {
	b.cfg.setConsoleSinkConfig(sc)
	return b
}

// FileSink sets the file formatting options.
func (b *Builder) FileSink(sc SinkConfig) *Builder {
	b.cfg.setFileSinkConfig(sc)
	return b
}

// HeartbeatLevel sets the heartbeat monitoring level.
func (b *Builder) HeartbeatLevel(level int64) *Builder {
	b.cfg.HeartbeatLevel = level
	return b
}

// HeartbeatIntervalS sets the heartbeat interval in seconds.
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// DropReportIntervalS sets the interval of dropped record reports, 0 disables them.
func (b *Builder) DropReportIntervalS(interval int64) *Builder {
	b.cfg.DropReportIntervalS = interval
	return b
}

// InternalErrorsToStderr toggles internal diagnostics.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// ConsoleWriter redirects console output, mainly for tests.
func (b *Builder) ConsoleWriter(w io.Writer) *Builder {
	b.opts = append(b.opts, WithConsoleWriter(w))
	return b
}

// Example usage:
// logger, guard, err := duallog.NewBuilder().
//
//	Directory("/var/log/app").
//	Name("app.log").
//	LevelString("debug").
//	Rotation("daily").
//	Build()
//
// if err == nil {
//
//	 defer guard.Release()
//	 logger.Info("Logger initialized successfully")
//
// }
