// FILE: lixenwraith/duallog/config.go
package duallog

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lixenwraith/config"

	"github.com/lixenwraith/duallog/formatter"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Level     int64  `toml:"level"`
	Directory string `toml:"directory" validate:"required"`
	Name      string `toml:"name" validate:"required"` // File prefix, files are named {name}.{window}

	// Rotation and retention
	Rotation           string  `toml:"rotation" validate:"oneof=minutely hourly daily never"`
	MaxFiles           int64   `toml:"max_files" validate:"gte=0"`            // Window files to keep (0=unlimited)
	RetentionPeriodHrs float64 `toml:"retention_period_hrs" validate:"gte=0"` // Hours to keep logs (0=disabled)
	RetentionCheckMins float64 `toml:"retention_check_mins" validate:"gte=0"` // How often to check retention

	// Queue and writer
	BufferSize         int64  `toml:"buffer_size" validate:"gt=0"` // Queue capacity in records
	Backpressure       string `toml:"backpressure" validate:"oneof=drop_newest drop_oldest block"`
	BlockTimeoutMs     int64  `toml:"block_timeout_ms" validate:"gte=0"`
	FlushIntervalMs    int64  `toml:"flush_interval_ms" validate:"gt=0"` // Interval for periodic sync
	EnablePeriodicSync bool   `toml:"enable_periodic_sync"`
	ShutdownTimeoutMs  int64  `toml:"shutdown_timeout_ms" validate:"gt=0"` // Drain deadline used by Guard.Release

	// Diagnostics
	HeartbeatLevel      int64 `toml:"heartbeat_level" validate:"min=0,max=2"` // 0=disabled, 1=proc, 2=proc+disk
	HeartbeatIntervalS  int64 `toml:"heartbeat_interval_s" validate:"gte=0"`
	DropReportIntervalS int64 `toml:"drop_report_interval_s" validate:"gte=0"` // 0 disables drop reports

	// Sinks
	EnableConsole bool   `toml:"enable_console"`
	ConsoleTarget string `toml:"console_target" validate:"oneof=stdout stderr"`
	EnableFile    bool   `toml:"enable_file"`

	// Console formatting
	ConsoleShowTarget      bool   `toml:"console_show_target"`
	ConsoleANSI            bool   `toml:"console_ansi"`
	ConsoleThreadIDs       bool   `toml:"console_thread_ids"`
	ConsoleThreadNames     bool   `toml:"console_thread_names"`
	ConsoleFile            bool   `toml:"console_file"`
	ConsoleLine            bool   `toml:"console_line"`
	ConsoleFormat          string `toml:"console_format" validate:"oneof=txt json"`
	ConsoleTimestampFormat string `toml:"console_timestamp_format" validate:"required"`

	// File formatting
	FileShowTarget      bool   `toml:"file_show_target"`
	FileANSI            bool   `toml:"file_ansi"`
	FileThreadIDs       bool   `toml:"file_thread_ids"`
	FileThreadNames     bool   `toml:"file_thread_names"`
	FileFile            bool   `toml:"file_file"`
	FileLine            bool   `toml:"file_line"`
	FileFormat          string `toml:"file_format" validate:"oneof=txt json"`
	FileTimestampFormat string `toml:"file_timestamp_format" validate:"required"`

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Basic settings
	Level:     LevelInfo,
	Directory: "./logs",
	Name:      "app.log",

	// Rotation and retention
	Rotation:           RotationHourly,
	MaxFiles:           0,
	RetentionPeriodHrs: 0.0,
	RetentionCheckMins: 60.0,

	// Queue and writer
	BufferSize:         1024,
	Backpressure:       PolicyDropOldest,
	BlockTimeoutMs:     100,
	FlushIntervalMs:    100,
	EnablePeriodicSync: true,
	ShutdownTimeoutMs:  5000,

	// Diagnostics
	HeartbeatLevel:      0,
	HeartbeatIntervalS:  60,
	DropReportIntervalS: 10,

	// Sinks
	EnableConsole: true,
	ConsoleTarget: ConsoleStdout,
	EnableFile:    true,

	// Console formatting
	ConsoleShowTarget:      false,
	ConsoleANSI:            true,
	ConsoleThreadIDs:       true,
	ConsoleThreadNames:     true,
	ConsoleFile:            true,
	ConsoleLine:            true,
	ConsoleFormat:          "txt",
	ConsoleTimestampFormat: formatter.DefaultTimestampFormat,

	// File formatting
	FileShowTarget:      false,
	FileANSI:            false,
	FileThreadIDs:       true,
	FileThreadNames:     true,
	FileFile:            true,
	FileLine:            true,
	FileFormat:          "txt",
	FileTimestampFormat: formatter.DefaultTimestampFormat,

	// Internal error handling
	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and command line arguments
// (e.g. --log.level=-4) and returns a validated Config. A missing file yields defaults.
func NewConfigFromFile(path string, args []string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, args); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml tag
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion.
// Strings are parsed, as command line values arrive unconverted.
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
			field.SetInt(int64(v))
		case string:
			intVal, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				// Levels may be given by name
				levelVal, errLevel := Level(v)
				if errLevel != nil {
					return fmt.Errorf("expected int64, got '%s'", v)
				}
				intVal = levelVal
			}
			field.SetInt(intVal)
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Float64:
		switch v := value.(type) {
		case float64:
			field.SetFloat(v)
		case int64:
			field.SetFloat(float64(v))
		case int:
			field.SetFloat(float64(v))
		case string:
			floatVal, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("expected float64, got '%s'", v)
			}
			field.SetFloat(floatVal)
		default:
			return fmt.Errorf("expected float64, got %T", value)
		}

	case reflect.Bool:
		switch v := value.(type) {
		case bool:
			field.SetBool(v)
		case string:
			boolVal, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected bool, got '%s'", v)
			}
			field.SetBool(boolVal)
		default:
			return fmt.Errorf("expected bool, got %T", value)
		}

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if c == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(c); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	if _, err := levelName(c.Level); err != nil {
		return err
	}

	if strings.TrimSpace(c.Name) == "" || strings.ContainsAny(c.Name, `/\`) || c.Name != filepath.Base(c.Name) {
		return fmtErrorf("name must be a plain file name: '%s'", c.Name)
	}

	// Cross-field validations
	if c.Backpressure == PolicyBlock && c.BlockTimeoutMs <= 0 {
		return fmtErrorf("block_timeout_ms must be positive with backpressure=block: %d", c.BlockTimeoutMs)
	}

	if c.HeartbeatLevel > 0 && c.HeartbeatIntervalS <= 0 {
		return fmtErrorf("heartbeat_interval_s must be positive when heartbeat is enabled: %d",
			c.HeartbeatIntervalS)
	}

	if c.RetentionPeriodHrs > 0 && c.RetentionCheckMins <= 0 {
		return fmtErrorf("retention_check_mins must be positive when retention is enabled: %v",
			c.RetentionCheckMins)
	}

	if c.RetentionPeriodHrs > 0 && c.Rotation == RotationNever {
		return fmtErrorf("retention_period_hrs requires a rotating schedule, rotation is 'never'")
	}

	return nil
}

// levelName returns the name of a user-facing level
func levelName(level int64) (string, error) {
	switch level {
	case LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError:
		return formatter.LevelToString(level), nil
	default:
		return "", fmtErrorf("invalid level: %d (use -8, -4, 0, 4, or 8)", level)
	}
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// ConsoleSinkConfig returns the console formatting options
func (c *Config) ConsoleSinkConfig() SinkConfig {
	return SinkConfig{
		ShowTarget:      c.ConsoleShowTarget,
		ANSI:            c.ConsoleANSI,
		ThreadIDs:       c.ConsoleThreadIDs,
		ThreadNames:     c.ConsoleThreadNames,
		File:            c.ConsoleFile,
		Line:            c.ConsoleLine,
		Format:          c.ConsoleFormat,
		TimestampFormat: c.ConsoleTimestampFormat,
	}
}

// FileSinkConfig returns the file formatting options
func (c *Config) FileSinkConfig() SinkConfig {
	return SinkConfig{
		ShowTarget:      c.FileShowTarget,
		ANSI:            c.FileANSI,
		ThreadIDs:       c.FileThreadIDs,
		ThreadNames:     c.FileThreadNames,
		File:            c.FileFile,
		Line:            c.FileLine,
		Format:          c.FileFormat,
		TimestampFormat: c.FileTimestampFormat,
	}
}

// setConsoleSinkConfig copies formatting options into the console fields
func (c *Config) setConsoleSinkConfig(sc SinkConfig) {
	c.ConsoleShowTarget = sc.ShowTarget
	c.ConsoleANSI = sc.ANSI
	c.ConsoleThreadIDs = sc.ThreadIDs
	c.ConsoleThreadNames = sc.ThreadNames
	c.ConsoleFile = sc.File
	c.ConsoleLine = sc.Line
	if sc.Format != "" {
		c.ConsoleFormat = sc.Format
	}
	if sc.TimestampFormat != "" {
		c.ConsoleTimestampFormat = sc.TimestampFormat
	}
}

// setFileSinkConfig copies formatting options into the file fields
func (c *Config) setFileSinkConfig(sc SinkConfig) {
	c.FileShowTarget = sc.ShowTarget
	c.FileANSI = sc.ANSI
	c.FileThreadIDs = sc.ThreadIDs
	c.FileThreadNames = sc.ThreadNames
	c.FileFile = sc.File
	c.FileLine = sc.Line
	if sc.Format != "" {
		c.FileFormat = sc.Format
	}
	if sc.TimestampFormat != "" {
		c.FileTimestampFormat = sc.TimestampFormat
	}
}

// durations derived from the numeric settings
func (c *Config) shutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMs) * time.Millisecond
}

func (c *Config) writerOptions() writerOptions {
	opts := writerOptions{
		bufferSize:    int(c.BufferSize),
		policy:        c.Backpressure,
		blockTimeout:  time.Duration(c.BlockTimeoutMs) * time.Millisecond,
		flushInterval: time.Duration(c.FlushIntervalMs) * time.Millisecond,
		periodicSync:  c.EnablePeriodicSync,
	}
	if c.RetentionPeriodHrs > 0 {
		opts.retentionCheck = time.Duration(c.RetentionCheckMins * float64(time.Minute))
	}
	return opts
}

func (c *Config) fileSinkOptions() FileSinkOptions {
	return FileSinkOptions{
		MaxFiles:        int(c.MaxFiles),
		RetentionPeriod: time.Duration(c.RetentionPeriodHrs * float64(time.Hour)),
	}
}
