// Package common provides core data structures and utilities shared across
// the RPC layer of wActor. It defines the message envelope, configuration
// structures and the logging and tracing setup used by the other packages.
//
// The package focuses on:
//   - Message protocol definition for calls between clients and actor servers
//   - Configuration structures for client and server components
//   - Logging through a zap backed implementation of dragonboats logger interface
//   - Opt-in OpenTelemetry tracing
//
// Key Components:
//
//   - Message: Envelope for all RPC communication. A call request carries the
//     binding, namespace, operation and the msgpack encoded payload, the response
//     carries the result payload or the error text.
//
//   - MessageType: Enumeration of the supported message types.
//
//   - ServerConfig: Configuration for server nodes: hosted actors, bindings for
//     host calls of wasm actors, transport settings, logging and tracing.
//     ParseActor and ParseBinding parse the flag formats.
//
//   - ClientConfig: Configuration for client components, controlling connection
//     parameters, timeouts, and retry behavior.
//
//   - Logger: InitLoggers installs a logger factory so the package level loggers
//     (logger.GetLogger) of all packages write through one zap logger.
//
//   - SetupTracing: Installs a global tracer provider exporting via OTLP/HTTP.
package common
