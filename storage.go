// FILE: lixenwraith/duallog/storage.go
package duallog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lixenwraith/duallog/formatter"
)

// FileSinkOptions controls retention of rotated window files
type FileSinkOptions struct {
	MaxFiles        int           // Keep at most this many window files, 0 disables
	RetentionPeriod time.Duration // Delete windows that ended before now minus this, 0 disables
}

// FileSink appends formatted records to time-windowed files named {prefix}.{window}.
// It is not safe for concurrent use, the writer goroutine is its only caller.
type FileSink struct {
	dir       string
	schedule  schedule
	formatter *formatter.Formatter
	opts      FileSinkOptions
	rs        RotationState
	buf       []byte
	state     *State
	report    func(error) // Receives errors that do not fail the current write
	now       func() time.Time
}

// NewFileSink creates a file sink. The directory is created if missing; no file is opened until the first write.
func NewFileSink(dir, prefix, rotation string, cfg SinkConfig, opts FileSinkOptions) (*FileSink, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, fmtErrorf("file prefix cannot be empty")
	}
	if strings.ContainsRune(prefix, filepath.Separator) {
		return nil, fmtErrorf("file prefix '%s' must not contain a path separator", prefix)
	}
	sched, err := newSchedule(rotation)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}
	if opts.MaxFiles < 0 || opts.RetentionPeriod < 0 {
		return nil, fmtErrorf("retention settings cannot be negative")
	}

	return &FileSink{
		dir:       dir,
		schedule:  sched,
		formatter: formatter.New(cfg),
		opts:      opts,
		rs:        RotationState{prefix: prefix},
		buf:       make([]byte, 0, 256),
		state:     new(State),
		report:    func(error) {},
		now:       time.Now,
	}, nil
}

// attach makes the sink report counters and side errors into a logger
func (s *FileSink) attach(st *State, report func(error)) {
	s.state = st
	if report != nil {
		s.report = report
	}
}

// Name returns the sink name used in diagnostics
func (s *FileSink) Name() string {
	return "file"
}

// Write appends one record to the file of the record's window, rotating first if the window changed.
// A record older than the open window is written to the open file so a window is never reopened.
func (s *FileSink) Write(rec Record) error {
	window := s.schedule.windowStart(rec.Time)
	if !s.rs.active(window) && (s.rs.file == nil || window.After(s.rs.windowStart)) {
		if err := s.rotate(window); err != nil {
			return err
		}
	}

	s.buf = s.formatter.Append(s.buf[:0], rec)
	if _, err := s.rs.file.Write(s.buf); err != nil {
		return fmtErrorf("failed to write to log file '%s': %w", s.rs.file.Name(), err)
	}
	return nil
}

// rotate closes the current window file and opens the file for window.
// On failure the sink is left without a file so the next write retries.
func (s *FileSink) rotate(window time.Time) error {
	hadWindow := s.rs.file != nil || !s.rs.windowStart.IsZero()
	if s.rs.file != nil {
		if err := s.closeFile(); err != nil {
			// The old window is done either way
			s.state.TotalFileErrors.Inc()
			s.report(err)
		}
	}

	path := filepath.Join(s.dir, s.schedule.fileName(s.rs.prefix, window))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open/create log file '%s': %w", path, err)
	}

	changed := hadWindow && !s.rs.windowStart.Equal(window)
	s.rs.file = file
	s.rs.windowStart = window
	s.state.CurrentFile.Store(path)

	if changed {
		s.state.TotalRotations.Inc()
		if s.opts.MaxFiles > 0 {
			if _, err := s.pruneExcessFiles(); err != nil {
				s.report(err)
			}
		}
	}
	return nil
}

func (s *FileSink) closeFile() error {
	f := s.rs.file
	s.rs.file = nil
	s.state.CurrentFile.Store("")
	syncErr := f.Sync()
	closeErr := f.Close()
	if syncErr != nil || closeErr != nil {
		return fmtErrorf("failed to close log file '%s': %w", f.Name(), combineErrors(syncErr, closeErr))
	}
	return nil
}

// Sync commits the open file to stable storage
func (s *FileSink) Sync() error {
	if s.rs.file == nil {
		return nil
	}
	if err := s.rs.file.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", s.rs.file.Name(), err)
	}
	return nil
}

// Close syncs and closes the open file. The sink reopens on the next write.
func (s *FileSink) Close() error {
	if s.rs.file == nil {
		return nil
	}
	return s.closeFile()
}

// CurrentPath returns the path of the open window file, empty when none is open
func (s *FileSink) CurrentPath() string {
	return s.state.CurrentFile.Load()
}

// windowFile is a window file found on disk
type windowFile struct {
	name   string
	window time.Time
	size   int64
}

// listWindowFiles returns the sink's window files sorted oldest first
func (s *FileSink) listWindowFiles() ([]windowFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmtErrorf("failed to read log directory '%s': %w", s.dir, err)
	}

	var files []windowFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		window, ok := s.schedule.parseWindow(s.rs.prefix, name)
		if !ok {
			if s.schedule.period != 0 || name != s.rs.prefix {
				continue
			}
		}
		info, errInfo := entry.Info()
		if errInfo != nil {
			continue
		}
		files = append(files, windowFile{name: name, window: window, size: info.Size()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].window.Before(files[j].window) })
	return files, nil
}

// isActive reports whether the named file is the open window file
func (s *FileSink) isActive(name string) bool {
	return s.rs.file != nil && filepath.Base(s.rs.file.Name()) == name
}

// remove deletes a window file, counting the deletion
func (s *FileSink) remove(name string) error {
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		return fmtErrorf("failed to remove old log file '%s': %w", path, err)
	}
	s.state.TotalDeletions.Inc()
	return nil
}

// pruneExcessFiles deletes the oldest window files beyond MaxFiles
func (s *FileSink) pruneExcessFiles() (int, error) {
	files, err := s.listWindowFiles()
	if err != nil {
		return 0, err
	}
	excess := len(files) - s.opts.MaxFiles
	var deleted int
	var finalErr error
	for i := 0; i < len(files) && excess > 0; i++ {
		if s.isActive(files[i].name) {
			continue
		}
		if err := s.remove(files[i].name); err != nil {
			finalErr = combineErrors(finalErr, err)
			continue
		}
		deleted++
		excess--
	}
	return deleted, finalErr
}

// EnforceRetention deletes window files whose window ended before the retention cutoff.
// The open file is never deleted. Returns the number of files removed.
func (s *FileSink) EnforceRetention() (int, error) {
	if s.opts.RetentionPeriod <= 0 || s.schedule.period == 0 {
		return 0, nil
	}
	files, err := s.listWindowFiles()
	if err != nil {
		return 0, err
	}
	cutoff := s.now().Add(-s.opts.RetentionPeriod)
	var deleted int
	var finalErr error
	for _, f := range files {
		if s.isActive(f.name) || f.window.Add(s.schedule.period).After(cutoff) {
			continue
		}
		if err := s.remove(f.name); err != nil {
			finalErr = combineErrors(finalErr, err)
			continue
		}
		deleted++
	}
	return deleted, finalErr
}

// dirUsage returns the count and total size of the sink's files on disk
func (s *FileSink) dirUsage() (int, int64, error) {
	files, err := s.listWindowFiles()
	if err != nil {
		return -1, -1, err
	}
	var total int64
	for _, f := range files {
		total += f.size
	}
	return len(files), total, nil
}
