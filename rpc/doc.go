// Package rpc carries waPC host calls between actors that do not share a
// process. A guest calling __host_call with a binding that points to a remote
// actor ends up here: the call is wrapped in a Message, serialized, sent over a
// transport to the actor server and answered with the operation's msgpack
// result or a typed error.
//
// Subpackages:
//
//   - common: The Message envelope, client and server configuration, logger
//     setup and tracing.
//
//   - transport: Pluggable byte transports (TCP, Unix sockets, HTTP). Every
//     request is addressed to an actor by its numeric id.
//
//   - serializer: Envelope encodings (Binary, JSON, GOB, Msgpack, CBOR).
//
//   - client: RPCHostCaller, an actor.IHostCaller that forwards host calls to
//     a remote actor.
//
//   - server: RPCServer hosts fixture and wasm actors, routes their host calls
//     through the configured bindings and exports call metrics.
package rpc
