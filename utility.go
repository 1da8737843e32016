// FILE: lixenwraith/duallog/utility.go
package duallog

import (
	"bytes"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "duallog: ") {
		format = "duallog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// sprintf formats only when arguments are present, so a literal message with '%' stays intact
func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// Level converts level string to numeric constant.
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use trace, debug, info, warn, error)", levelStr)
	}
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID parses the current goroutine id from the runtime stack header
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// callerInfo resolves the call site skip frames above its caller.
// file is shortened to its last directory and base name, target is the package path.
func callerInfo(skip int) (file string, line int, target string) {
	pc, fullPath, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???", 0, ""
	}
	file = shortFile(fullPath)
	if fn := runtime.FuncForPC(pc); fn != nil {
		target = packagePath(fn.Name())
	}
	return file, line, target
}

// shortFile keeps the parent directory and file name
func shortFile(path string) string {
	dir, base := filepath.Split(path)
	dir = strings.TrimSuffix(dir, string(filepath.Separator))
	if dir == "" {
		return base
	}
	return filepath.Base(dir) + "/" + base
}

// packagePath strips the function and receiver from a fully qualified function name
func packagePath(funcName string) string {
	lastSlash := strings.LastIndexByte(funcName, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}
	path := funcName
	if dot := strings.IndexByte(funcName[lastSlash:], '.'); dot >= 0 {
		path = funcName[:lastSlash+dot]
	}
	// Symbol names escape dots in the last path element, as in gopkg.in/yaml%2ev3
	return strings.ReplaceAll(path, "%2e", ".")
}
