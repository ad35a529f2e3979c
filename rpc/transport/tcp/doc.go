// Package tcp implements the TCP socket transport of the actor RPC system.
//
// Both sides use a base.SocketConnector for the "tcp" network, see the base
// package documentation for the frame format. Every dialed and accepted
// connection gets the SocketConf and TCPConf settings of its config
// (no delay, keep-alive, linger and socket buffer sizes).
//
// The default server buffer size is set to 512 KB.
package tcp
