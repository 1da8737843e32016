// FILE: lixenwraith/duallog/heartbeat.go
package duallog

import (
	"fmt"
	"time"
)

// heartbeatTarget is stamped on records the facility emits about itself
const heartbeatTarget = "github.com/lixenwraith/duallog"

// startDiagnostics launches the drop reporter and heartbeat goroutines as configured
func (c *core) startDiagnostics() {
	if c.cfg.DropReportIntervalS > 0 {
		c.diagWG.Add(1)
		go c.dropReportLoop(time.Duration(c.cfg.DropReportIntervalS) * time.Second)
	}

	if c.cfg.HeartbeatLevel > 0 {
		c.diagWG.Add(1)
		go c.heartbeatLoop(time.Duration(c.cfg.HeartbeatIntervalS) * time.Second)
	}
}

// dropReportLoop warns about records lost since the previous report
func (c *core) dropReportLoop(interval time.Duration) {
	defer c.diagWG.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.diagStop:
			return
		case <-ticker.C:
			c.reportedDrops = c.reportDrops(c.reportedDrops)
		}
	}
}

// reportDrops emits a WARN record when the drop counter moved past last and returns the new total
func (c *core) reportDrops(last uint64) uint64 {
	total := c.state.TotalDroppedLogs.Load()
	if total <= last {
		return last
	}
	c.emit(LevelWarn, fmt.Sprintf("log records dropped dropped=%d total_dropped=%d", total-last, total))
	return total
}

// heartbeatLoop emits PROC and DISK records at a fixed interval
func (c *core) heartbeatLoop(interval time.Duration) {
	defer c.diagWG.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastDropped uint64
	for {
		select {
		case <-c.diagStop:
			return
		case <-ticker.C:
			lastDropped = c.handleHeartbeat(lastDropped)
		}
	}
}

// handleHeartbeat processes a heartbeat timer tick and returns the drop total it reported
func (c *core) handleHeartbeat(lastDropped uint64) uint64 {
	heartbeatLevel := c.cfg.HeartbeatLevel
	totalDropped := c.state.TotalDroppedLogs.Load()

	if heartbeatLevel >= 1 {
		c.logProcHeartbeat(totalDropped, totalDropped-lastDropped)
	}

	if heartbeatLevel >= 2 {
		c.logDiskHeartbeat()
	}

	return totalDropped
}

// logProcHeartbeat logs logger statistics heartbeat
func (c *core) logProcHeartbeat(totalDropped, droppedSinceLast uint64) {
	sequence := c.state.HeartbeatSequence.Inc()

	var uptimeHours float64
	if startTime := c.state.LoggerStartTime.Load(); !startTime.IsZero() {
		uptimeHours = time.Since(startTime).Hours()
	}

	c.emit(LevelProc, fmt.Sprintf(
		"type=proc sequence=%d uptime_hours=%.2f logged=%d written=%d total_dropped=%d dropped_since_last=%d file_errors=%d",
		sequence,
		uptimeHours,
		c.state.TotalLogged.Load(),
		c.state.TotalWritten.Load(),
		totalDropped,
		droppedSinceLast,
		c.state.TotalFileErrors.Load(),
	))
}

// logDiskHeartbeat logs file statistics heartbeat
func (c *core) logDiskHeartbeat() {
	sequence := c.state.HeartbeatSequence.Load()
	// -1 marks an unreadable directory
	fileCount := -1
	totalSizeMB := float64(-1.0)

	if c.files != nil {
		count, size, err := c.files.dirUsage()
		if err == nil {
			fileCount = count
			totalSizeMB = float64(size) / (sizeMultiplier * sizeMultiplier)
		} else {
			c.internalLog("warning - heartbeat failed to read log directory: %v\n", err)
		}
	}

	c.emit(LevelDisk, fmt.Sprintf(
		"type=disk sequence=%d current_file=%s rotations=%d deletions=%d log_file_count=%d total_log_size_mb=%.2f",
		sequence,
		c.state.CurrentFile.Load(),
		c.state.TotalRotations.Load(),
		c.state.TotalDeletions.Load(),
		fileCount,
		totalSizeMB,
	))
}

// emit dispatches a record generated by the facility itself, bypassing the level filter
func (c *core) emit(level int64, msg string) {
	state := c.state.lifecycle()
	if state != StateActive && state != StateDraining {
		return
	}
	c.dispatch(Record{
		Level:      level,
		Message:    msg,
		Time:       time.Now(),
		Target:     heartbeatTarget,
		ThreadID:   goroutineID(),
		ThreadName: "duallog",
	})
}
