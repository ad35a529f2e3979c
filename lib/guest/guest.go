package guest

import (
	"context"
	"errors"
	"sync"

	"github.com/ValentinKolb/wActor/lib/actor"
	"github.com/ValentinKolb/wActor/lib/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// ErrNotServing is reported to the host when a call arrives before Serve was called
	ErrNotServing = errors.New("guest is not serving")
	// ErrHostCallFailed is returned when the host rejects a call without an error message
	ErrHostCallFailed = errors.New("host call failed")
)

var (
	invoker   actor.IInvoker
	invokerMu sync.RWMutex
)

// Serve makes inv the target of all calls the host sends to this guest.
// It is typically called from an init function.
func Serve(inv actor.IInvoker) {
	invokerMu.Lock()
	defer invokerMu.Unlock()
	invoker = inv
}

// handleCall is the body of the exported __guest_call
func handleCall(opLen, payloadLen uint32) uint32 {
	op := make([]byte, opLen)
	payload := make([]byte, payloadLen)
	readRequest(op, payload)

	invokerMu.RLock()
	inv := invoker
	invokerMu.RUnlock()

	if inv == nil {
		writeError(ErrNotServing.Error())
		return 0
	}

	resp, err := inv.Invoke(context.Background(), string(op), payload)
	if err != nil {
		writeError(err.Error())
		return 0
	}

	writeResponse(resp)
	return 1
}

// --------------------------------------------------------------------------
// Host Calls
// --------------------------------------------------------------------------

// HostCall issues a call through the host. Error messages of the host are
// parsed back into typed wire errors where possible.
func HostCall(binding, namespace, operation string, payload []byte) ([]byte, error) {
	if callHost(binding, namespace, operation, payload) {
		return hostResponse(), nil
	}
	if msg := hostError(); msg != "" {
		return nil, wire.ParseError(msg)
	}
	return nil, ErrHostCallFailed
}

// Caller implements actor.IHostCaller on top of HostCall
type Caller struct{}

func (Caller) HostCall(_ context.Context, binding, namespace, operation string, payload []byte) ([]byte, error) {
	return HostCall(binding, namespace, operation, payload)
}

// NewHost returns the typed facade for calling the actor bound to binding
func NewHost(binding string) *actor.Host {
	return actor.NewHost(Caller{}, binding)
}

// --------------------------------------------------------------------------
// Logging
// --------------------------------------------------------------------------

// ConsoleLog writes msg to the host's log
func ConsoleLog(msg string) {
	consoleLog(msg)
}

// consoleWriter forwards every write to the host's log
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	consoleLog(msg)
	return len(p), nil
}

// NewLogger creates a logger that writes to the host's log
func NewLogger(level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(consoleWriter{}),
		level,
	)
	return zap.New(core)
}
