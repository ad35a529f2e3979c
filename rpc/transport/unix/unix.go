package unix

import (
	"github.com/ValentinKolb/wActor/rpc/transport"
	"github.com/ValentinKolb/wActor/rpc/transport/base"
)

const (
	defaultBufferSize = 64 * 1024 // 64 KB
	defaultWorkers    = 16
)

// unix sockets have no tunable settings, connections are used as accepted
var connector = base.NewSocketConnector("unix", nil)

// NewUnixClientTransport creates a new Unix client transport
func NewUnixClientTransport() transport.IRPCClientTransport {
	return base.NewBaseClientTransport(connector)
}

// NewUnixDefaultServerTransport creates a new Unix server transport with default buffer size
func NewUnixDefaultServerTransport() transport.IRPCServerTransport {
	return NewUnixServerTransport(defaultBufferSize)
}

// NewUnixServerTransport creates a new Unix server transport with specified buffer size
func NewUnixServerTransport(bufferSize int) transport.IRPCServerTransport {
	return base.NewBaseServerTransport(connector, bufferSize, defaultWorkers)
}
