// FILE: lixenwraith/duallog/default_test.go
package duallog

import (
	"bytes"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig(t *testing.T) *Config {
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()
	cfg.ConsoleANSI = false
	cfg.Level = LevelTrace
	return cfg
}

func TestDefaultBeforeInit(t *testing.T) {
	require.Nil(t, defaultLogger.Load())

	// No-ops, never panic
	Info("nobody listens")
	Errorf("nobody %s", "listens")
	assert.Equal(t, StateUninitialized, Default().State())
	assert.Equal(t, Stats{}, Default().Stats())
	assert.Error(t, Flush(time.Second))
}

func TestInitPackageFunctions(t *testing.T) {
	console := &syncBuffer{}
	guard, err := Init(defaultTestConfig(t), WithConsoleWriter(console))
	require.NoError(t, err)

	_, _, line, _ := runtime.Caller(0)
	Info("Hello, world!")
	Trace("t")
	Debug("d")
	Warn("w")
	Error("e")
	Tracef("%s", "tf")
	Debugf("%s", "df")
	Infof("%s", "if")
	Warnf("%s", "wf")
	Errorf("%s", "ef")
	Named("main").Info("named")
	require.NoError(t, Flush(time.Second))
	require.NoError(t, guard.Release())

	lines := console.Lines()
	require.Len(t, lines, 11)
	assert.Contains(t, lines[0], fmt.Sprintf("default_test.go:%d: Hello, world!", line+1))
	assert.Contains(t, lines[10], " main ThreadId(")
	assert.Nil(t, defaultLogger.Load(), "release clears the default")
}

func TestInitTwiceIsRejected(t *testing.T) {
	console := &syncBuffer{}
	var diag bytes.Buffer
	first, err := Init(defaultTestConfig(t), WithConsoleWriter(console), WithDiagnosticWriter(&diag))
	require.NoError(t, err)

	second, err := Init(defaultTestConfig(t))
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Nil(t, second)
	assert.Contains(t, diag.String(), "release its guard first")

	// The first instance is untouched
	Info("still routed")
	assert.Len(t, console.Lines(), 1)
	assert.Equal(t, StateActive, first.State())
	require.NoError(t, first.Release())

	// A fresh instance is allowed after release
	console2 := &syncBuffer{}
	third, err := Init(defaultTestConfig(t), WithConsoleWriter(console2))
	require.NoError(t, err)
	Info("new instance")
	require.NoError(t, third.Release())

	assert.Len(t, console.Lines(), 1)
	assert.Len(t, console2.Lines(), 1)
}

func TestInitInvalidConfig(t *testing.T) {
	cfg := defaultTestConfig(t)
	cfg.Rotation = "weekly"
	_, err := Init(cfg)
	require.Error(t, err)
	assert.Nil(t, defaultLogger.Load())
}
