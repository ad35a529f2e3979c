// Package unix implements the transport of the actor RPC system on Unix domain
// sockets, for clients and actors running on the same machine.
//
// Both sides use a base.SocketConnector for the "unix" network and inherit
// connection pooling, request routing and error handling from the base package.
// A stale socket file at the endpoint is removed before listening.
//
// The default buffer size is 64 KB.
package unix
