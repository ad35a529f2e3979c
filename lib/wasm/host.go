package wasm

import (
	"context"
	"errors"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

const (
	hostModuleName  = "wapc"
	guestCallExport = "__guest_call"
)

var startFunctions = []string{"_initialize", "_start", "wapc_init"}

// errNoHostCallHandler is handed to guests when the engine has no handler
var errNoHostCallHandler = errors.New("host calls are not supported")

// --------------------------------------------------------------------------
// Invocation State
// --------------------------------------------------------------------------

// invocation is the state of a single guest call. It travels in the context
// passed to the guest, the host functions read and fill it.
type invocation struct {
	operation string
	payload   []byte

	guestResp []byte
	guestErr  string

	hostResp []byte
	hostErr  string
}

type invocationKey struct{}

func withInvocation(ctx context.Context, inv *invocation) context.Context {
	return context.WithValue(ctx, invocationKey{}, inv)
}

func invocationFromContext(ctx context.Context) *invocation {
	if inv, ok := ctx.Value(invocationKey{}).(*invocation); ok {
		return inv
	}
	return &invocation{}
}

// --------------------------------------------------------------------------
// Host Module
// --------------------------------------------------------------------------

func (e *Engine) instantiateHostModule(ctx context.Context) error {
	i32 := api.ValueTypeI32
	_, err := e.runtime.NewHostModuleBuilder(hostModuleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.guestRequest), []api.ValueType{i32, i32}, nil).
		WithParameterNames("op_ptr", "ptr").
		Export("__guest_request").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.guestResponse), []api.ValueType{i32, i32}, nil).
		WithParameterNames("ptr", "len").
		Export("__guest_response").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.guestError), []api.ValueType{i32, i32}, nil).
		WithParameterNames("ptr", "len").
		Export("__guest_error").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.hostCall),
			[]api.ValueType{i32, i32, i32, i32, i32, i32, i32, i32}, []api.ValueType{i32}).
		WithParameterNames("bd_ptr", "bd_len", "ns_ptr", "ns_len", "op_ptr", "op_len", "ptr", "len").
		Export("__host_call").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.hostResponseLen), nil, []api.ValueType{i32}).
		Export("__host_response_len").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.hostResponse), []api.ValueType{i32}, nil).
		WithParameterNames("ptr").
		Export("__host_response").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.hostErrorLen), nil, []api.ValueType{i32}).
		Export("__host_error_len").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.hostError), []api.ValueType{i32}, nil).
		WithParameterNames("ptr").
		Export("__host_error").
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.consoleLog), []api.ValueType{i32, i32}, nil).
		WithParameterNames("ptr", "len").
		Export("__console_log").
		Instantiate(ctx)
	return err
}

// guestRequest writes the operation and payload of the current call into guest memory
func (e *Engine) guestRequest(ctx context.Context, m api.Module, stack []uint64) {
	opPtr, ptr := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	inv := invocationFromContext(ctx)

	mem := m.Memory()
	if !mem.WriteString(opPtr, inv.operation) {
		e.config.logger.Error("guest request: operation out of memory range", zap.Uint32("ptr", opPtr))
	}
	if !mem.Write(ptr, inv.payload) {
		e.config.logger.Error("guest request: payload out of memory range", zap.Uint32("ptr", ptr))
	}
}

func (e *Engine) guestResponse(ctx context.Context, m api.Module, stack []uint64) {
	inv := invocationFromContext(ctx)
	inv.guestResp = readBytes(m, stack[0], stack[1])
}

func (e *Engine) guestError(ctx context.Context, m api.Module, stack []uint64) {
	inv := invocationFromContext(ctx)
	inv.guestErr = string(readBytes(m, stack[0], stack[1]))
}

// hostCall forwards a guest's call to the host call handler. It returns 1 on
// success and 0 on failure, the guest fetches the result or the error text afterwards.
func (e *Engine) hostCall(ctx context.Context, m api.Module, stack []uint64) {
	binding := string(readBytes(m, stack[0], stack[1]))
	namespace := string(readBytes(m, stack[2], stack[3]))
	operation := string(readBytes(m, stack[4], stack[5]))
	payload := readBytes(m, stack[6], stack[7])

	inv := invocationFromContext(ctx)
	inv.hostResp, inv.hostErr = nil, ""

	handler := e.config.hostCall
	if handler == nil {
		inv.hostErr = errNoHostCallHandler.Error()
		stack[0] = api.EncodeI32(0)
		return
	}

	resp, err := handler(ctx, binding, namespace, operation, payload)
	if err != nil {
		e.config.logger.Debug("host call failed",
			zap.String("binding", binding),
			zap.String("namespace", namespace),
			zap.String("operation", operation),
			zap.Error(err))
		inv.hostErr = err.Error()
		stack[0] = api.EncodeI32(0)
		return
	}

	inv.hostResp = resp
	stack[0] = api.EncodeI32(1)
}

func (e *Engine) hostResponseLen(ctx context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI32(int32(len(invocationFromContext(ctx).hostResp)))
}

func (e *Engine) hostResponse(ctx context.Context, m api.Module, stack []uint64) {
	if resp := invocationFromContext(ctx).hostResp; resp != nil {
		m.Memory().Write(api.DecodeU32(stack[0]), resp)
	}
}

func (e *Engine) hostErrorLen(ctx context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI32(int32(len(invocationFromContext(ctx).hostErr)))
}

func (e *Engine) hostError(ctx context.Context, m api.Module, stack []uint64) {
	if msg := invocationFromContext(ctx).hostErr; msg != "" {
		m.Memory().WriteString(api.DecodeU32(stack[0]), msg)
	}
}

func (e *Engine) consoleLog(_ context.Context, m api.Module, stack []uint64) {
	e.config.logger.Info(string(readBytes(m, stack[0], stack[1])), zap.String("source", "guest"))
}

// readBytes copies a range of guest memory. Out of range reads yield nil.
func readBytes(m api.Module, ptr, length uint64) []byte {
	buf, ok := m.Memory().Read(api.DecodeU32(ptr), api.DecodeU32(length))
	if !ok {
		return nil
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	return out
}
