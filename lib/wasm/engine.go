package wasm

import (
	"context"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// HostCallHandler serves the calls a guest issues with __host_call.
// The returned error text is handed to the guest as the host error.
type HostCallHandler func(ctx context.Context, binding, namespace, operation string, payload []byte) ([]byte, error)

// Option configures an Engine
type Option func(*engineConfig)

type engineConfig struct {
	hostCall         HostCallHandler
	logger           *zap.Logger
	stdout           io.Writer
	stderr           io.Writer
	memoryLimitPages uint32
}

// WithHostCallHandler sets the handler for guest host calls. Without it every
// host call fails.
func WithHostCallHandler(fn HostCallHandler) Option {
	return func(c *engineConfig) {
		c.hostCall = fn
	}
}

// WithLogger sets the logger for engine events and guest console output
func WithLogger(l *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithStdout sets the writer for the guests' standard output
func WithStdout(w io.Writer) Option {
	return func(c *engineConfig) {
		c.stdout = w
	}
}

// WithStderr sets the writer for the guests' standard error
func WithStderr(w io.Writer) Option {
	return func(c *engineConfig) {
		c.stderr = w
	}
}

// WithMemoryLimitPages limits the memory of each guest (one page is 64 KiB)
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *engineConfig) {
		c.memoryLimitPages = pages
	}
}

// Engine owns a wazero runtime with WASI and the waPC host module instantiated
type Engine struct {
	runtime wazero.Runtime
	config  engineConfig
}

// NewEngine creates a runtime and instantiates the host modules guests import
func NewEngine(ctx context.Context, opts ...Option) (*Engine, error) {
	config := engineConfig{
		logger: zap.NewNop(),
		stdout: io.Discard,
		stderr: io.Discard,
	}
	for _, opt := range opts {
		opt(&config)
	}

	runtimeConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if config.memoryLimitPages > 0 {
		runtimeConfig = runtimeConfig.WithMemoryLimitPages(config.memoryLimitPages)
	}
	r := wazero.NewRuntimeWithConfig(ctx, runtimeConfig)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}

	e := &Engine{
		runtime: r,
		config:  config,
	}

	if err := e.instantiateHostModule(ctx); err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate %s host module: %w", hostModuleName, err)
	}

	return e, nil
}

// Compile validates and compiles a guest module. The guest must export its
// memory and __guest_call.
func (e *Engine) Compile(ctx context.Context, name string, code []byte) (*Module, error) {
	compiled, err := e.runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module %s: %w", name, err)
	}

	if _, ok := compiled.ExportedMemories()["memory"]; !ok {
		_ = compiled.Close(ctx)
		return nil, fmt.Errorf("module %s does not export memory", name)
	}

	guestCall, ok := compiled.ExportedFunctions()[guestCallExport]
	if !ok {
		_ = compiled.Close(ctx)
		return nil, fmt.Errorf("module %s does not export %s", name, guestCallExport)
	}
	if len(guestCall.ParamTypes()) != 2 || len(guestCall.ResultTypes()) != 1 {
		_ = compiled.Close(ctx)
		return nil, fmt.Errorf("module %s exports %s with an unexpected signature", name, guestCallExport)
	}

	e.config.logger.Debug("compiled module", zap.String("module", name))

	return &Module{
		name:     name,
		engine:   e,
		compiled: compiled,
	}, nil
}

// Close closes the runtime and every module instantiated in it
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
