// FILE: lixenwraith/duallog/formatter/formatter.go
package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lixenwraith/duallog/sanitizer"
)

// Level values mirrored from the root package to avoid an import cycle
const (
	levelTrace int64 = -8
	levelDebug int64 = -4
	levelInfo  int64 = 0
	levelWarn  int64 = 4
	levelError int64 = 8
	levelProc  int64 = 12
	levelDisk  int64 = 16
)

// DefaultTimestampFormat is microsecond RFC3339 with a numeric zone
const DefaultTimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// Record is a single captured log call. It is passed by value and never mutated after capture.
type Record struct {
	Level      int64
	Message    string
	Time       time.Time
	Target     string // Package path of the call site
	ThreadID   uint64 // Goroutine id of the producer
	ThreadName string // Optional, empty when the producer logger is unnamed
	File       string
	Line       int
}

// SinkConfig holds per-sink formatting options
type SinkConfig struct {
	ShowTarget      bool   `toml:"show_target"`
	ANSI            bool   `toml:"ansi"`
	ThreadIDs       bool   `toml:"thread_ids"`
	ThreadNames     bool   `toml:"thread_names"`
	File            bool   `toml:"file"`
	Line            bool   `toml:"line"`
	Format          string `toml:"format"` // "txt" or "json"
	TimestampFormat string `toml:"timestamp_format"`
}

// ANSI escape sequences
const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiPurple = "\x1b[35m"
	ansiCyan   = "\x1b[36m"
)

// Formatter renders records according to one SinkConfig.
// It keeps no per-call state, so the same record and config always produce the same bytes.
type Formatter struct {
	cfg SinkConfig
	enc *sanitizer.Encoder
}

// New creates a formatter for the given sink configuration
func New(cfg SinkConfig) *Formatter {
	if cfg.Format == "" {
		cfg.Format = "txt"
	}
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTimestampFormat
	}
	mode := sanitizer.ModeTxt
	if cfg.Format == "json" {
		cfg.ANSI = false
		mode = sanitizer.ModeJSON
	}
	return &Formatter{
		cfg: cfg,
		enc: sanitizer.NewEncoder(mode),
	}
}

// Config returns the effective sink configuration
func (f *Formatter) Config() SinkConfig {
	return f.cfg
}

// Format renders a record into a newly allocated line
func (f *Formatter) Format(rec Record) []byte {
	return f.Append(make([]byte, 0, 128+len(rec.Message)), rec)
}

// Append renders a record, appends it to dst and returns the extended buffer
func (f *Formatter) Append(dst []byte, rec Record) []byte {
	if f.cfg.Format == "json" {
		return f.appendJSON(dst, rec)
	}
	return f.appendTxt(dst, rec)
}

// appendTxt writes: timestamp, level, thread name, thread id, target, file:line, message
func (f *Formatter) appendTxt(buf []byte, rec Record) []byte {
	buf = rec.Time.AppendFormat(buf, f.cfg.TimestampFormat)
	buf = append(buf, ' ')

	if f.cfg.ANSI {
		buf = append(buf, levelColor(rec.Level)...)
		buf = appendPaddedLevel(buf, rec.Level)
		buf = append(buf, ansiReset...)
	} else {
		buf = appendPaddedLevel(buf, rec.Level)
	}

	if f.cfg.ThreadNames && rec.ThreadName != "" {
		buf = append(buf, ' ')
		buf = f.enc.AppendString(buf, rec.ThreadName)
	}

	if f.cfg.ThreadIDs {
		buf = append(buf, " ThreadId("...)
		buf = strconv.AppendUint(buf, rec.ThreadID, 10)
		buf = append(buf, ')')
	}

	if f.cfg.ShowTarget && rec.Target != "" {
		buf = append(buf, ' ')
		f.dim(&buf, true)
		buf = append(buf, rec.Target...)
		buf = append(buf, ':')
		f.dim(&buf, false)
	}

	showFile := f.cfg.File && rec.File != ""
	showLine := f.cfg.Line && rec.Line > 0
	if showFile || showLine {
		buf = append(buf, ' ')
		f.dim(&buf, true)
		if showFile {
			buf = append(buf, rec.File...)
		}
		if showLine {
			if showFile {
				buf = append(buf, ':')
			}
			buf = strconv.AppendInt(buf, int64(rec.Line), 10)
		}
		buf = append(buf, ':')
		f.dim(&buf, false)
	}

	buf = append(buf, ' ')
	buf = f.enc.AppendString(buf, rec.Message)
	buf = append(buf, '\n')
	return buf
}

// appendJSON writes one JSON object per record
func (f *Formatter) appendJSON(buf []byte, rec Record) []byte {
	buf = append(buf, `{"time":"`...)
	buf = rec.Time.AppendFormat(buf, f.cfg.TimestampFormat)
	buf = append(buf, `","level":"`...)
	buf = append(buf, LevelToString(rec.Level)...)
	buf = append(buf, '"')

	if f.cfg.ThreadNames && rec.ThreadName != "" {
		buf = append(buf, `,"thread_name":`...)
		buf = f.enc.AppendString(buf, rec.ThreadName)
	}
	if f.cfg.ThreadIDs {
		buf = append(buf, `,"thread_id":`...)
		buf = strconv.AppendUint(buf, rec.ThreadID, 10)
	}
	if f.cfg.ShowTarget && rec.Target != "" {
		buf = append(buf, `,"target":`...)
		buf = f.enc.AppendString(buf, rec.Target)
	}
	if f.cfg.File && rec.File != "" {
		buf = append(buf, `,"file":`...)
		buf = f.enc.AppendString(buf, rec.File)
	}
	if f.cfg.Line && rec.Line > 0 {
		buf = append(buf, `,"line":`...)
		buf = strconv.AppendInt(buf, int64(rec.Line), 10)
	}

	buf = append(buf, `,"message":`...)
	buf = f.enc.AppendString(buf, rec.Message)
	buf = append(buf, '}', '\n')
	return buf
}

func (f *Formatter) dim(buf *[]byte, start bool) {
	if !f.cfg.ANSI {
		return
	}
	if start {
		*buf = append(*buf, ansiDim...)
	} else {
		*buf = append(*buf, ansiReset...)
	}
}

// appendPaddedLevel right-aligns the level name to five columns
func appendPaddedLevel(buf []byte, level int64) []byte {
	name := LevelToString(level)
	for i := len(name); i < 5; i++ {
		buf = append(buf, ' ')
	}
	return append(buf, name...)
}

func levelColor(level int64) string {
	switch level {
	case levelTrace:
		return ansiPurple
	case levelDebug:
		return ansiBlue
	case levelInfo:
		return ansiGreen
	case levelWarn:
		return ansiYellow
	case levelError:
		return ansiRed
	default:
		return ansiCyan
	}
}

// LevelToString converts integer level values to string
func LevelToString(level int64) string {
	switch level {
	case levelTrace:
		return "TRACE"
	case levelDebug:
		return "DEBUG"
	case levelInfo:
		return "INFO"
	case levelWarn:
		return "WARN"
	case levelError:
		return "ERROR"
	case levelProc:
		return "PROC"
	case levelDisk:
		return "DISK"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}

// argEncoder converts producer arguments without sanitizing; sinks sanitize on output
var argEncoder = sanitizer.NewEncoder(sanitizer.ModeRaw)

// FormatArgs joins arguments with single spaces into a message.
// Safe for concurrent use.
func FormatArgs(args ...any) string {
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return s
		}
	}
	buf := make([]byte, 0, 64)
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = convertValue(buf, arg)
	}
	return string(buf)
}

// convertValue provides unified type conversion
func convertValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		buf = append(buf, val...)
	case []byte:
		buf = append(buf, val...)
	case int:
		buf = strconv.AppendInt(buf, int64(val), 10)
	case int8:
		buf = strconv.AppendInt(buf, int64(val), 10)
	case int16:
		buf = strconv.AppendInt(buf, int64(val), 10)
	case int32:
		buf = strconv.AppendInt(buf, int64(val), 10)
	case int64:
		buf = strconv.AppendInt(buf, val, 10)
	case uint:
		buf = strconv.AppendUint(buf, uint64(val), 10)
	case uint8:
		buf = strconv.AppendUint(buf, uint64(val), 10)
	case uint16:
		buf = strconv.AppendUint(buf, uint64(val), 10)
	case uint32:
		buf = strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		buf = strconv.AppendUint(buf, val, 10)
	case uintptr:
		buf = strconv.AppendUint(buf, uint64(val), 10)
	case float32:
		buf = strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		buf = strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		buf = strconv.AppendBool(buf, val)
	case nil:
		buf = argEncoder.AppendNil(buf)
	case time.Time:
		buf = val.AppendFormat(buf, time.RFC3339Nano)
	case error:
		buf = append(buf, val.Error()...)
	case fmt.Stringer:
		buf = append(buf, val.String()...)
	default:
		buf = argEncoder.AppendValue(buf, val)
	}
	return buf
}
