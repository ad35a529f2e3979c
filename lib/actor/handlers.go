package actor

import (
	"context"

	"github.com/ValentinKolb/wActor/lib/records"
	"github.com/ValentinKolb/wActor/lib/wire"
)

// Handlers holds the typed handlers of the test actor. A nil handler is not
// registered, calls to it fail with wire.ErrOperationNotFound.
type Handlers struct {
	TestFunction func(
		ctx context.Context,
		required records.RequiredFields,
		optional records.OptionalFields,
		maps records.MapFields,
		lists records.ListFields,
	) (records.TestBundle, error)
	TestUnary  func(ctx context.Context, bundle records.TestBundle) (records.TestBundle, error)
	TestDecode func(ctx context.Context, bundle records.TestBundle) (string, error)
}

// Register wraps every non-nil handler and registers it on d
func (h Handlers) Register(d *Dispatcher) {
	if h.TestFunction != nil {
		d.Register(OpTestFunction, h.testFunctionWrapper)
	}
	if h.TestUnary != nil {
		d.Register(OpTestUnary, h.testUnaryWrapper)
	}
	if h.TestDecode != nil {
		d.Register(OpTestDecode, h.testDecodeWrapper)
	}
}

// --------------------------------------------------------------------------
// Wrappers (decode args, call handler, encode result)
// --------------------------------------------------------------------------

func (h Handlers) testFunctionWrapper(ctx context.Context, payload []byte) ([]byte, error) {
	var args records.TestFunctionArgs
	if err := wire.Decode(payload, &args); err != nil {
		return nil, err
	}
	ret, err := h.TestFunction(ctx, args.Required, args.Optional, args.Maps, args.Lists)
	if err != nil {
		return nil, err
	}
	return wire.Encode(ret)
}

func (h Handlers) testUnaryWrapper(ctx context.Context, payload []byte) ([]byte, error) {
	var bundle records.TestBundle
	if err := wire.Decode(payload, &bundle); err != nil {
		return nil, err
	}
	ret, err := h.TestUnary(ctx, bundle)
	if err != nil {
		return nil, err
	}
	return wire.Encode(ret)
}

func (h Handlers) testDecodeWrapper(ctx context.Context, payload []byte) ([]byte, error) {
	var bundle records.TestBundle
	if err := wire.Decode(payload, &bundle); err != nil {
		return nil, err
	}
	ret, err := h.TestDecode(ctx, bundle)
	if err != nil {
		return nil, err
	}
	return wire.Encode(ret)
}
