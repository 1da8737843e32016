// FILE: lixenwraith/duallog/heartbeat_test.go
package duallog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropReport(t *testing.T) {
	logger, guard, _, console := createTestLogger(t, func(c *Config) {
		c.DropReportIntervalS = 0
	})
	c := logger.core

	// Nothing dropped, nothing reported
	assert.Equal(t, uint64(0), c.reportDrops(0))
	assert.Empty(t, console.Lines())

	c.state.TotalDroppedLogs.Add(7)
	last := c.reportDrops(0)
	assert.Equal(t, uint64(7), last)

	c.state.TotalDroppedLogs.Add(3)
	last = c.reportDrops(last)
	assert.Equal(t, uint64(10), last)

	// No new drops since the last report
	c.reportDrops(last)
	require.NoError(t, guard.Release())

	lines := console.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], " WARN ")
	assert.Contains(t, lines[0], "log records dropped dropped=7 total_dropped=7")
	assert.Contains(t, lines[1], "log records dropped dropped=3 total_dropped=10")
}

func TestDropReportOnRelease(t *testing.T) {
	logger, guard, dir, console := createTestLogger(t)
	logger.core.state.TotalDroppedLogs.Add(2)
	require.NoError(t, guard.Release())

	assert.Contains(t, console.String(), "log records dropped dropped=2 total_dropped=2")
	assert.Len(t, readLogLines(t, dir), 1, "the final report reaches the file too")
}

func TestHeartbeatRecords(t *testing.T) {
	logger, guard, dir, console := createTestLogger(t, func(c *Config) {
		c.Level = LevelError
		c.HeartbeatLevel = 2
		c.HeartbeatIntervalS = 3600
	})
	c := logger.core

	logger.Error("one")
	require.NoError(t, logger.Flush(time.Second))

	c.state.TotalDroppedLogs.Add(4)
	last := c.handleHeartbeat(0)
	assert.Equal(t, uint64(4), last)
	require.NoError(t, guard.Release())

	out := console.String()
	// Diagnostic levels bypass the level filter
	assert.Contains(t, out, " PROC ")
	assert.Contains(t, out, "type=proc sequence=1 ")
	assert.Contains(t, out, "logged=1 written=1 total_dropped=4 dropped_since_last=4 file_errors=0")
	assert.Contains(t, out, " DISK ")
	assert.Contains(t, out, "type=disk sequence=1 current_file="+dir)
	assert.Contains(t, out, "log_file_count=1 ")
}
