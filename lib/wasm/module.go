package wasm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ValentinKolb/wActor/lib/wire"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"
)

var (
	// ErrGuestFailed is returned when a guest reports a failed call without an error message
	ErrGuestFailed = errors.New("guest call failed")
	// ErrInstanceBusy is returned when an instance stays busy longer than the wait set with WithAcquireTimeout
	ErrInstanceBusy = errors.New("instance is busy")
)

type acquireTimeoutKey struct{}

// WithAcquireTimeout bounds how long Invoke waits for an instance that is
// executing another call. Only the wait is bounded, a running call is never
// interrupted. Without it Invoke waits until the instance is free.
func WithAcquireTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, acquireTimeoutKey{}, d)
}

// Module is a compiled guest that can be instantiated multiple times
type Module struct {
	name     string
	engine   *Engine
	compiled wazero.CompiledModule
}

// Name returns the name the module was compiled with
func (m *Module) Name() string {
	return m.name
}

// Instantiate creates a new instance and runs the guest's start functions
// (_initialize, _start and wapc_init, each only if exported).
func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	config := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions().
		WithStdout(m.engine.config.stdout).
		WithStderr(m.engine.config.stderr)

	mod, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, config)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module %s: %w", m.name, err)
	}

	inst := &Instance{
		name:      m.name,
		mod:       mod,
		guestCall: mod.ExportedFunction(guestCallExport),
		lock:      make(chan struct{}, 1),
		logger:    m.engine.config.logger.With(zap.String("module", m.name)),
	}

	// start functions may already log or issue host calls
	startCtx := withInvocation(ctx, &invocation{})
	for _, name := range startFunctions {
		fn := mod.ExportedFunction(name)
		if fn == nil {
			continue
		}
		if _, err := fn.Call(startCtx); err != nil {
			var exitErr *sys.ExitError
			if errors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
				continue
			}
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("start function %s of module %s failed: %w", name, m.name, err)
		}
	}

	inst.logger.Debug("instantiated module")
	return inst, nil
}

// Close releases the compiled module. Running instances are not affected.
func (m *Module) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// Instance is an instantiated guest. Calls into one instance are serialized.
type Instance struct {
	name      string
	mod       api.Module
	guestCall api.Function
	logger    *zap.Logger
	lock      chan struct{} // holds one token while a call executes
}

// Invoke calls __guest_call with the operation and payload.
// Errors the guest reports with __guest_error are parsed back into typed
// wire errors where possible (see wire.ParseError).
func (i *Instance) Invoke(ctx context.Context, operation string, payload []byte) ([]byte, error) {
	if err := i.acquire(ctx); err != nil {
		return nil, err
	}
	defer i.release()

	inv := &invocation{
		operation: operation,
		payload:   payload,
	}

	results, err := i.guestCall.Call(withInvocation(ctx, inv), uint64(len(operation)), uint64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("call of %s on module %s failed: %w", operation, i.name, err)
	}

	if len(results) == 1 && api.DecodeI32(results[0]) == 1 {
		return inv.guestResp, nil
	}

	if inv.guestErr != "" {
		return nil, wire.ParseError(inv.guestErr)
	}
	return nil, ErrGuestFailed
}

// Close closes the instance
func (i *Instance) Close(ctx context.Context) error {
	i.lock <- struct{}{}
	defer i.release()
	return i.mod.Close(ctx)
}

// acquire takes the call token, waiting at most the acquire timeout of ctx
func (i *Instance) acquire(ctx context.Context) error {
	wait, ok := ctx.Value(acquireTimeoutKey{}).(time.Duration)
	if !ok {
		i.lock <- struct{}{}
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case i.lock <- struct{}{}:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: module %s did not become free within %s", ErrInstanceBusy, i.name, wait)
	}
}

func (i *Instance) release() {
	<-i.lock
}
