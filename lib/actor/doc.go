// Package actor implements call dispatch for the test actor and the facade for
// calling the actor's operations through a host.
//
// The package focuses on:
//   - Routing an operation name and an encoded payload to a registered handler
//   - Typed registration of the three test operations
//   - A typed facade that encodes arguments, issues a host call and decodes the result
//
// Key Components:
//
//   - Dispatcher: An explicit registry created once at startup. Registration
//     takes the write lock, every call takes the read lock to look up its
//     handler. Calls to unregistered operations fail with
//     wire.ErrOperationNotFound without decoding the payload.
//
//   - Handlers: Typed handlers for testFunction, testUnary and testDecode.
//     Register wraps each handler (decode args, call, encode result) and skips
//     nil handlers.
//
//   - Host: The IActor facade addressed by a binding name. It works on top of
//     any IHostCaller: a wasm guest's __host_call, an RPC client or an
//     in-process IInvoker (see NewInvokerHost).
//
//   - FixtureHandlers / FormatRequired: The reference implementation used by
//     the test suites. testDecode output is byte-compatible with the other
//     language implementations.
//
// Usage:
//
//	d := actor.NewDispatcher(actor.Namespace)
//	actor.FixtureHandlers().Register(d)
//
//	host := actor.NewInvokerHost(d)
//	out, err := host.TestUnary(ctx, bundle)
//
// Thread Safety:
//
//	Dispatcher and Host are safe for concurrent use. Handlers own their input
//	and output records for the duration of a call.
package actor
