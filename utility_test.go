// FILE: lixenwraith/duallog/utility_test.go
package duallog

import (
	"errors"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"trace", LevelTrace, false},
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"proc", 0, true},
		{"invalid", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := Level(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, level)
			}
		})
	}
}

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{"key=value", "key", "value", false},
		{" key = value ", "key", "value", false},
		{"key=value=with=equals", "key", "value=with=equals", false},
		{"noequals", "", "", true},
		{"=value", "", "", true},
		{"key=", "key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, value, err := parseKeyValue(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantKey, key)
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestFmtErrorf(t *testing.T) {
	err := fmtErrorf("test error: %s", "details")
	assert.Error(t, err)
	assert.Equal(t, "duallog: test error: details", err.Error())

	// Already prefixed
	err = fmtErrorf("duallog: already prefixed")
	assert.Equal(t, "duallog: already prefixed", err.Error())

	// Wrapping keeps the cause reachable
	cause := errors.New("cause")
	assert.ErrorIs(t, fmtErrorf("wrapped: %w", cause), cause)
}

func TestCombineErrors(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")

	assert.Nil(t, combineErrors(nil, nil))
	assert.Equal(t, e1, combineErrors(e1, nil))
	assert.Equal(t, e2, combineErrors(nil, e2))

	both := combineErrors(e1, e2)
	assert.Equal(t, "first; second", both.Error())
	assert.ErrorIs(t, both, e2)
}

func TestGoroutineID(t *testing.T) {
	main := goroutineID()
	assert.NotZero(t, main)
	assert.Equal(t, main, goroutineID(), "stable within a goroutine")

	ids := make([]uint64, 4)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = goroutineID()
		}()
	}
	wg.Wait()

	seen := map[uint64]bool{main: true}
	for _, id := range ids {
		assert.False(t, seen[id], "ids are unique across live goroutines")
		seen[id] = true
	}
}

func TestCallerInfo(t *testing.T) {
	_, _, line, _ := runtime.Caller(0)
	file, gotLine, target := callerInfo(0)

	assert.True(t, strings.HasSuffix(file, "/utility_test.go"), file)
	assert.Equal(t, line+1, gotLine)
	assert.Equal(t, "github.com/lixenwraith/duallog", target)
}

func TestPackagePath(t *testing.T) {
	tests := []struct{ funcName, want string }{
		{"github.com/lixenwraith/duallog.(*Logger).Info", "github.com/lixenwraith/duallog"},
		{"github.com/lixenwraith/duallog/cmd/demo.main", "github.com/lixenwraith/duallog/cmd/demo"},
		{"main.main.func1", "main"},
		{"gopkg.in/yaml%2ev3.Unmarshal", "gopkg.in/yaml.v3"},
		{"gopkg.in/yaml%2ev3.(*decoder).unmarshal", "gopkg.in/yaml.v3"},
		{"runtime", "runtime"},
	}
	for _, tc := range tests {
		t.Run(tc.funcName, func(t *testing.T) {
			assert.Equal(t, tc.want, packagePath(tc.funcName))
		})
	}
}

func TestShortFile(t *testing.T) {
	assert.Equal(t, "demo/main.go", shortFile("/src/duallog/cmd/demo/main.go"))
	assert.Equal(t, "main.go", shortFile("main.go"))
}

func TestSprintf(t *testing.T) {
	tests := []struct {
		format string
		args   []any
		want   string
	}{
		{"100% literal", nil, "100% literal"},
		{"n=%d", []any{3}, "n=3"},
		{"%d", []any{42}, strconv.Itoa(42)},
		{"%s-%s", []any{"a", "b"}, "a-b"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			assert.Equal(t, tc.want, sprintf(tc.format, tc.args...))
		})
	}
}
