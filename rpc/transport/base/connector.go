package base

import (
	"fmt"
	"net"
	"os"

	"github.com/ValentinKolb/wActor/rpc/common"
)

// UpgradeFunc applies socket settings to a freshly dialed or accepted connection
type UpgradeFunc func(conn net.Conn, socketConf common.SocketConf, tcpConf common.TCPConf) error

// SocketConnector dials and listens on a stream network ("tcp", "unix").
// It serves as IClientConnector and IServerConnector at the same time.
type SocketConnector struct {
	network string
	upgrade UpgradeFunc
}

// NewSocketConnector creates a connector for network. upgrade may be nil.
func NewSocketConnector(network string, upgrade UpgradeFunc) *SocketConnector {
	return &SocketConnector{network: network, upgrade: upgrade}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector and base.IServerConnector)
// --------------------------------------------------------------------------

func (c *SocketConnector) GetName() string {
	return c.network
}

func (c *SocketConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial(c.network, endpoint)
}

// Listen listens on the configured endpoint. For unix sockets a leftover
// socket file of a crashed server is removed first.
func (c *SocketConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	endpoint := config.Transport.Endpoint
	if c.network == "unix" {
		if err := os.RemoveAll(endpoint); err != nil {
			return nil, fmt.Errorf("failed to remove existing socket: %w", err)
		}
	}

	listener, err := net.Listen(c.network, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s %s: %w", c.network, endpoint, err)
	}
	return listener, nil
}

func (c *SocketConnector) UpgradeConnection(conn net.Conn, socketConf common.SocketConf, tcpConf common.TCPConf) error {
	if c.upgrade == nil {
		return nil
	}
	return c.upgrade(conn, socketConf, tcpConf)
}
