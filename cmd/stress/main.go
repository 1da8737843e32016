// FILE: lixenwraith/duallog/cmd/stress/main.go
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/duallog"
)

const (
	totalBursts    = 100
	logsPerBurst   = 500
	maxMessageSize = 2000
	numWorkers     = 64
)

const configFile = "stress_config.toml"

var tomlContent = `
# stress_config.toml
[log]
  level = -4 # debug
  name = "stress.log"
  directory = "./logs"
  rotation = "minutely"
  max_files = 5
  buffer_size = 512
  backpressure = "drop_newest"
  flush_interval_ms = 50
  enable_console = false
  drop_report_interval_s = 1
  heartbeat_level = 2
  heartbeat_interval_s = 5
`

var levels = []int64{
	duallog.LevelDebug,
	duallog.LevelInfo,
	duallog.LevelWarn,
	duallog.LevelError,
}

var logger *duallog.Logger

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID int) {
	for i := 0; i < logsPerBurst; i++ {
		level := levels[rand.Intn(len(levels))]
		msg := generateRandomMessage(rand.Intn(maxMessageSize) + 10)
		logger.Output(1, level, fmt.Sprintf("wkr=%d bst=%d seq=%d %s", burstID%numWorkers, burstID, i, msg))
	}
}

func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed", completed, totalBursts)
		}
	}
}

func main() {
	fmt.Println("--- Logger Stress Test ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
		os.Exit(1)
	}
	_ = os.RemoveAll("./logs")

	cfg, err := duallog.NewConfigFromFile(configFile, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var guard *duallog.Guard
	logger, guard, err = duallog.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger initialized. Logs will be written to: %s\n", cfg.Directory)
	fmt.Printf("Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
		numWorkers, totalBursts, logsPerBurst)
	fmt.Println("Press Ctrl+C to stop early.")

	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	var completedBursts atomic.Int64
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts)
	}

	startTime := time.Now()
submit:
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			break submit
		}
	}
	close(burstChan)

	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---\n")
	fmt.Printf("Completed %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		fmt.Printf("Approximate Logs/sec: %.2f\n", float64(finalCompleted*logsPerBurst)/duration.Seconds())
	}

	fmt.Println("Releasing logger (allowing up to 10s)...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := guard.ReleaseContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Logger release error: %v\n", err)
	}

	stats := guard.Stats()
	fmt.Printf("logged=%d written=%d dropped=%d file_errors=%d rotations=%d deletions=%d\n",
		stats.Logged, stats.Written, stats.Dropped, stats.FileErrors, stats.Rotations, stats.Deletions)
}
