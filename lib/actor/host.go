package actor

import (
	"context"

	"github.com/ValentinKolb/wActor/lib/records"
	"github.com/ValentinKolb/wActor/lib/wire"
)

// NewHost creates the typed facade for calls through caller.
// An empty binding selects DefaultBinding.
func NewHost(caller IHostCaller, binding string) *Host {
	if binding == "" {
		binding = DefaultBinding
	}
	return &Host{
		caller:  caller,
		binding: binding,
	}
}

// NewInvokerHost creates a facade that calls inv directly, binding and
// namespace are not used.
func NewInvokerHost(inv IInvoker) *Host {
	return NewHost(InvokerCaller{Invoker: inv}, DefaultBinding)
}

// Host issues the test operations through an IHostCaller, addressed by its
// binding and the "tests" namespace
type Host struct {
	caller  IHostCaller
	binding string
}

// Binding returns the binding the facade targets
func (h *Host) Binding() string {
	return h.binding
}

// --------------------------------------------------------------------------
// Interface Methods (docu see actor.IActor)
// --------------------------------------------------------------------------

func (h *Host) TestFunction(
	ctx context.Context,
	required records.RequiredFields,
	optional records.OptionalFields,
	maps records.MapFields,
	lists records.ListFields,
) (records.TestBundle, error) {
	var ret records.TestBundle
	args := records.TestFunctionArgs{
		Required: required,
		Optional: optional,
		Maps:     maps,
		Lists:    lists,
	}
	err := h.call(ctx, OpTestFunction, args, &ret)
	return ret, err
}

func (h *Host) TestUnary(ctx context.Context, bundle records.TestBundle) (records.TestBundle, error) {
	var ret records.TestBundle
	err := h.call(ctx, OpTestUnary, bundle, &ret)
	return ret, err
}

func (h *Host) TestDecode(ctx context.Context, bundle records.TestBundle) (string, error) {
	var ret string
	err := h.call(ctx, OpTestDecode, bundle, &ret)
	return ret, err
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// call encodes args, issues the host call and decodes the response into ret
func (h *Host) call(ctx context.Context, operation string, args any, ret any) error {
	payload, err := wire.Encode(args)
	if err != nil {
		return err
	}

	resp, err := h.caller.HostCall(ctx, h.binding, Namespace, operation, payload)
	if err != nil {
		return err
	}

	return wire.Decode(resp, ret)
}

// InvokerCaller adapts an IInvoker to IHostCaller. Binding and namespace are dropped.
type InvokerCaller struct {
	Invoker IInvoker
}

func (c InvokerCaller) HostCall(ctx context.Context, _, _ string, operation string, payload []byte) ([]byte, error) {
	return c.Invoker.Invoke(ctx, operation, payload)
}
