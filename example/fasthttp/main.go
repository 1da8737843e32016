// FILE: lixenwraith/duallog/example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/duallog"
	"github.com/lixenwraith/duallog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	logger, guard, err := duallog.NewBuilder().
		Directory("./logs/fasthttp").
		Name("fasthttp.log").
		Rotation(duallog.RotationDaily).
		MaxFiles(14).
		BufferSize(2048).
		Build()
	if err != nil {
		panic(err)
	}
	defer guard.Release()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(duallog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler(logger.Named("http")),
		Logger:  fasthttpAdapter,

		Name:              "duallog-example",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	logger.Info("starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Error("server stopped:", err)
	}
}

func requestHandler(logger *duallog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		logger.Infof("%s %s", ctx.Method(), ctx.Path())
		ctx.SetContentType("text/plain")
		fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
	}
}

// customLevelDetector recognizes fasthttp's own connection messages before falling back to keywords
func customLevelDetector(msg string) (int64, bool) {
	if strings.Contains(msg, "connection cannot be served") {
		return duallog.LevelWarn, true
	}
	if strings.Contains(msg, "error when serving connection") {
		return duallog.LevelError, true
	}
	return compat.DetectLogLevel(msg)
}
