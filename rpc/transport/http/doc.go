// Package http implements an HTTP-based transport layer for the actor RPC system.
// It provides implementations of the transport interfaces defined in the parent
// package that carry serialized messages over plain HTTP.
//
// The package focuses on:
//   - Client-side HTTP transport for sending call requests to servers
//   - Server-side HTTP transport for receiving and handling call requests
//   - Round-robin load balancing across multiple server endpoints
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport. Each request is sent
//     as "POST {endpoint}/{actorId}" with the serialized message as body and is
//     retried up to RetryCount times.
//
//   - httpServerTransport: Implements IRPCServerTransport. It routes
//     "POST /{actorId}" to the registered handler and serves the actor metrics
//     in Prometheus format on "GET /metrics".
//
// Thread Safety:
//
//	The client transport is safe for concurrent use after Connect. It uses
//	atomic operations for the round-robin counter.
package http
