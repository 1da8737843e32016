// FILE: lixenwraith/duallog/cmd/demo/main.go
package main

import (
	"fmt"
	"os"

	"github.com/lixenwraith/duallog"
)

const configFile = "duallog.toml"

// Settings come from duallog.toml when present, then command line overrides such as --log.level=debug
func main() {
	cfg, err := duallog.NewConfigFromFile(configFile, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	guard, err := duallog.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	duallog.Info("Hello, world!")
	duallog.Info("Hello, world!2")
	duallog.Warn("warning 1")

	if err := guard.Release(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger release error: %v\n", err)
		os.Exit(1)
	}
}
