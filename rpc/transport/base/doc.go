// Package base provides the foundation for the stream transports (TCP and Unix
// sockets) of the actor RPC system. It implements the protocol-independent parts
// of client and server, protocol-specific connectors plug into it.
//
// The package focuses on:
//   - Protocol-agnostic client and server transport implementations
//   - Connection pooling and buffer reuse
//   - Frame-based message protocol with actorID and requestID tracking
//   - Response correlation, retries and reconnection
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     (dialing, listening and tuning connections). SocketConnector implements
//     both on top of net.Dial and net.Listen.
//
//   - clientTransport: Manages multiple connections with round-robin load
//     balancing. Supports multiple connections per endpoint.
//
//   - serverTransport: Accepts connections and hands each request together with
//     its actorID to the registered handler. Requests of one connection are
//     processed by a bounded number of workers.
//
// Frame Format:
//
//	+-----------------+-------------------+---------------+------------+
//	| actorID (8, BE) | requestID (8, BE) | length (4, BE)| data (len) |
//	+-----------------+-------------------+---------------+------------+
//
// Responses carry the requestID of their request, so a client may have many
// requests in flight on one connection. Frames larger than 64 MB are rejected.
//
// Error Handling:
//
//	When the client fails to read from a connection, all requests waiting on
//	that connection fail and the connection is re-established. Requests are
//	retried with exponential backoff up to RetryCount attempts.
//
//	Closing the server closes every open connection and waits until the
//	requests already handed to workers are done.
//
// Thread Safety:
//
//	All public methods are thread-safe. The server creates a dedicated
//	goroutine for each connection.
package base
