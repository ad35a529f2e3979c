// Package wasm runs test actors compiled to WebAssembly on the waPC calling
// convention using the wazero runtime.
//
// The package focuses on:
//   - Compiling and validating guest modules
//   - Instantiating guests and running their start functions
//   - The "wapc" host module guests import to receive calls and issue host calls
//
// Key Components:
//
//   - Engine: Owns the wazero runtime. WASI and the "wapc" host module are
//     instantiated once per engine, host calls of all guests go to the
//     HostCallHandler configured with WithHostCallHandler.
//
//   - Module: A compiled guest. Compile rejects modules that do not export
//     "memory" and "__guest_call(op_len, req_len) -> i32".
//
//   - Instance: An instantiated guest. Invoke writes nothing into guest memory
//     on its own. The guest pulls operation and payload with __guest_request and
//     hands back its result with __guest_response or __guest_error. A guest error
//     is parsed back into a typed wire error.
//
// Call Flow:
//
//	Invoke(op, payload)
//	  -> __guest_call(len(op), len(payload))
//	     -> __guest_request(op_ptr, ptr)
//	     -> __host_call(binding, namespace, operation, payload)   (optional)
//	        -> HostCallHandler
//	     -> __host_response_len / __host_response  or  __host_error_len / __host_error
//	     -> __guest_response(ptr, len)  or  __guest_error(ptr, len)
//	  <- 1 (response) or 0 (error)
//
// Guests written in Go are built as reactors:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o tests.wasm ./wasm/tests
//
// Thread Safety:
//
//	Engine and Module are safe for concurrent use. Calls into one Instance are
//	serialized. A guest that issues a host call routed back to its own instance
//	would deadlock, callers must prevent such bindings. Two instances calling
//	each other at the same time wait on one another, WithAcquireTimeout bounds
//	that wait and turns it into ErrInstanceBusy.
package wasm
