// Package server implements the RPC server of the actor system. It hosts a set
// of actors, routes incoming requests to them by actor ID and routes the host
// calls of wasm actors to their bound actors.
//
// The package focuses on:
//   - Server-side RPC request handling for actor calls
//   - Adapter pattern to decouple the actors from the RPC messages
//   - Creation of fixture and wasm actors based on the configuration
//   - Call metrics and tracing
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for all server adapters,
//     with the Handle method that processes an incoming Message against an actor.
//
//   - NewActorServerAdapter: Factory function creating the adapter that turns
//     MsgTCall messages into calls of the actor and their results into responses.
//
//   - NewRPCServer: Factory function creating a configured server with the specified
//     transport and serializer mechanisms.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Actors: []common.ServerActor{
//	    {ActorID: 1, Type: common.ActorTypeFixture},
//	    {ActorID: 2, Type: common.ActorTypeWasm, Module: "tests.wasm"},
//	  },
//	  Bindings:      map[string]uint64{"default": 1},
//	  TimeoutSecond: 5,
//	  LogLevel:      "info",
//	  Transport:     common.ServerTransportConfig{Endpoint: "0.0.0.0:8080"},
//	}
//
//	s := server.NewRPCServer(config, tcp.NewTCPServerTransport(), serializer.NewBinarySerializer())
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// The server supports two types of actors, which can be mixed within a single server:
//
//   - ActorTypeFixture: A dispatcher with the built-in fixture handlers of the
//     tests namespace.
//
//   - ActorTypeWasm: A waPC guest module. All wasm actors share one engine. Their
//     host calls are resolved through the Bindings map (binding name -> actor ID).
//     A host call into an actor that is already part of the call chain is rejected,
//     since the actor's instance is still busy.
//
// Every actor serves exactly one namespace, calls to any other namespace fail
// with "operation not found". Requests for unknown actors get a MsgTError
// response "actor not found".
//
// Observability:
//
//	Each call updates wactor_calls_total, wactor_call_errors_total and the
//	wactor_call_duration_seconds histogram (labels actor and operation) and
//	is recorded as an "actor.call" span when tracing is configured.
//
// Thread Safety:
//
//	The server can handle concurrent requests across multiple connections.
//	Calls into one wasm actor are serialized by its instance.
//	Serve should be called only once.
package server
