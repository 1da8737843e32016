// FILE: lixenwraith/duallog/doc.go
// Package duallog is an asynchronous dual-sink logger.
//
// Every accepted record goes to an optional console sink and to a
// file sink. Console output is written synchronously by the producing
// goroutine. File output passes through a bounded queue drained by a
// single writer goroutine, so a slow disk never blocks callers beyond
// the configured backpressure policy.
//
// File names are {name}.{window}, where the window is the UTC start of
// the current minute, hour or day. Windows roll over when the first
// record of a new window arrives. Old windows are pruned by count
// (max_files) and age (retention_period_hrs).
//
// New returns a Logger together with a Guard. Releasing the Guard drains
// the queue, syncs and closes the file, and turns later log calls into
// no-ops. Init installs a process-wide default logger used by the
// package-level functions:
//
//	cfg := duallog.DefaultConfig()
//	cfg.Directory = "/var/log/myapp"
//	guard, err := duallog.Init(cfg)
//	if err != nil {
//		panic(err)
//	}
//	defer guard.Release()
//
//	duallog.Info("service started on port", 8080)
//	duallog.Named("worker").Warnf("queue depth %d", 512)
package duallog
