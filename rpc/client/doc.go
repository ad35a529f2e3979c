// Package client implements the RPC client of the actor system. It provides an
// implementation of actor.IHostCaller that sends calls to a remote actor.
//
// The package focuses on:
//   - Transparent RPC access to actors through the typed actor.Host facade
//   - Integration with the transport and serialization layers
//   - Conversion of error responses back into typed wire errors
//
// Key Components:
//
//   - NewRPCHostCaller: Factory function that creates a client implementing
//     actor.IHostCaller. Every call is sent as a MsgTCall message carrying
//     binding, namespace, operation and the encoded arguments to one actor.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  TimeoutSecond: 5,
//	  Transport: common.ClientTransportConfig{
//	    Endpoints:  []string{"localhost:8080"},
//	    RetryCount: 3,
//	  },
//	}
//
//	caller, err := client.NewRPCHostCaller(1, config, tcp.NewTCPClientTransport(), serializer.NewBinarySerializer())
//	if err != nil {
//	  log.Fatalf("Failed to connect: %v", err)
//	}
//	defer caller.Close()
//
//	host := actor.NewHost(caller, actor.DefaultBinding)
//	bundle, err := host.TestUnary(ctx, records.TestBundle{})
//
// Error Handling:
//
//	Transport failures and MsgTError responses (e.g. an unknown actor) are
//	returned as plain errors. Errors of the actor itself are parsed with
//	wire.ParseError, so errors.Is(err, wire.ErrDecode) works across the wire.
//
// Thread Safety:
//
//	The client is safe for concurrent use as long as the transport is.
package client
