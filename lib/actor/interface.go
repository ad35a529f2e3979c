package actor

import (
	"context"

	"github.com/ValentinKolb/wActor/lib/records"
)

const (
	// Namespace is the namespace the test operations are registered under
	Namespace = "tests"
	// DefaultBinding is used when no binding name is given
	DefaultBinding = "default"

	OpTestFunction = "testFunction"
	OpTestUnary    = "testUnary"
	OpTestDecode   = "testDecode"
)

// HandlerFunc handles a single call. It receives the encoded argument record
// and returns the encoded result.
type HandlerFunc func(ctx context.Context, payload []byte) ([]byte, error)

// IInvoker routes an operation with an encoded payload to its handler.
// It is implemented by the Dispatcher, by wasm instances and by the RPC server actors.
type IInvoker interface {
	Invoke(ctx context.Context, operation string, payload []byte) ([]byte, error)
}

// IHostCaller issues calls addressed by binding, namespace and operation.
// Implementations exist for wasm guests (waPC __host_call), for RPC clients and
// for in-process invokers.
type IHostCaller interface {
	HostCall(ctx context.Context, binding, namespace, operation string, payload []byte) ([]byte, error)
}

// IActor is the typed interface of the test actor
type IActor interface {
	// TestFunction echoes the four inputs into a bundle
	TestFunction(
		ctx context.Context,
		required records.RequiredFields,
		optional records.OptionalFields,
		maps records.MapFields,
		lists records.ListFields,
	) (records.TestBundle, error)
	// TestUnary echoes the bundle unchanged
	TestUnary(ctx context.Context, bundle records.TestBundle) (records.TestBundle, error)
	// TestDecode renders the required fields of the bundle as text
	TestDecode(ctx context.Context, bundle records.TestBundle) (string, error)
}
