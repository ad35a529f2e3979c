// Package guest is the guest side of the waPC calling convention for actors
// compiled to WebAssembly.
//
// A guest registers an actor.IInvoker with Serve, the exported __guest_call
// routes every call of the host to it. HostCall, Caller and NewHost issue calls
// through the host to the actors behind its bindings.
//
// In wasm builds the functions of the "wapc" host module are imported with
// go:wasmimport. Native builds replace them with an in-process host so the
// package can be tested without a runtime.
//
// Usage:
//
//	func init() {
//		d := actor.NewDispatcher(actor.Namespace)
//		actor.FixtureHandlers().Register(d)
//		guest.Serve(d)
//	}
//
//	func main() {}
package guest
