// Package cmd implements the command-line interface of wActor. It provides a
// hierarchical command structure for hosting actors and for calling them as a
// client.
//
// The package is organized into several subpackages:
//
//   - serve: Starts the RPC server hosting fixture and wasm actors
//   - call: Client commands for the test operations (function, unary, decode) and a perf test
//   - run: Invokes an operation of a wasm module in process
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set as environment variable WACTOR_<FLAG> (e.g.
// WACTOR_TRANSPORT_ENDPOINTS), .env and .env.local files are loaded.
//
// See wactor -help for a list of all commands.
package cmd
