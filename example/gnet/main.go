// FILE: lixenwraith/duallog/example/gnet/main.go
package main

import (
	"github.com/lixenwraith/duallog"
	"github.com/lixenwraith/duallog/compat"
	"github.com/panjf2000/gnet/v2"
)

// echoServer echoes every inbound frame
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	cfg, err := duallog.NewConfigFromDefaults(map[string]any{
		"directory":   "./logs/gnet",
		"level":       "debug",
		"file_format": "json",
	})
	if err != nil {
		panic(err)
	}

	logger, guard, err := duallog.New(cfg)
	if err != nil {
		panic(err)
	}
	defer guard.Release()

	gnetAdapter := compat.NewGnetAdapter(logger)

	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		logger.Error("gnet server stopped:", err)
	}
}
