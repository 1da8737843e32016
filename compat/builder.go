// FILE: lixenwraith/duallog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/duallog"
)

// Builder creates gnet and fasthttp adapters sharing one logger.
// It uses an existing *duallog.Logger or creates one from a *duallog.Config.
type Builder struct {
	logger *duallog.Logger
	guard  *duallog.Guard
	logCfg *duallog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger specifies an existing logger to use for the adapters.
// If this is set WithConfig is ignored and the caller keeps ownership of the guard.
func (b *Builder) WithLogger(l *duallog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("duallog/compat: provided logger cannot be nil")
		return b
	}
	b.logger = l
	return b
}

// WithConfig provides a configuration for a new logger instance.
// Used only when no logger was provided via WithLogger; defaults apply when neither is set.
func (b *Builder) WithConfig(cfg *duallog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger resolves the logger to be used, creating one if necessary
func (b *Builder) getLogger() (*duallog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.logger != nil {
		return b.logger, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = duallog.DefaultConfig()
	}

	l, guard, err := duallog.New(cfg)
	if err != nil {
		return nil, err
	}

	// Cache for subsequent builds with this builder
	b.logger = l
	b.guard = guard
	return l, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// GetLogger returns the underlying logger, creating it if needed
func (b *Builder) GetLogger() (*duallog.Logger, error) {
	return b.getLogger()
}

// Guard returns the guard of a logger created by this builder.
// It is nil when the logger was supplied through WithLogger.
func (b *Builder) Guard() *duallog.Guard {
	return b.guard
}

// --- Example Usage ---
//
//	logger, guard, err := duallog.NewBuilder().
//		Directory("./logs").
//		LevelString("debug").
//		Build()
//	if err != nil {
//		panic(err)
//	}
//	defer guard.Release()
//
//	builder := compat.NewBuilder().WithLogger(logger)
//	gnetLogger, _ := builder.BuildGnet()
//	fasthttpLogger, _ := builder.BuildFastHTTP()
//
//	go gnet.Run(events, "tcp://:9000", gnet.WithLogger(gnetLogger))
//
//	server := &fasthttp.Server{Handler: handler, Logger: fasthttpLogger}
//	go server.ListenAndServe(":8080")
