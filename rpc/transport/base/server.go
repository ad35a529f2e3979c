package base

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/ValentinKolb/wActor/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, socketConf common.SocketConf, tcpConf common.TCPConf) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport accepts framed connections and runs the registered handler
// for every frame, at most maxWorkersPerConn frames per connection at a time.
type serverTransport struct {
	connector         IServerConnector
	handler           transport.ServerHandleFunc
	config            common.ServerConfig
	listener          net.Listener
	listenerMu        sync.Mutex
	closed            bool
	conns             *xsync.MapOf[net.Conn, struct{}]
	connWg            sync.WaitGroup
	bufferPool        *sync.Pool
	bufferSize        int
	maxWorkersPerConn int
}

// serverConn is the state of one accepted connection
type serverConn struct {
	net.Conn
	writeMu sync.Mutex
	timeout time.Duration
	slots   chan struct{}
	workers sync.WaitGroup
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with per-connection worker pool.
// The worker count of the config (Transport.WorkersPerConn) overrides maxWorkersPerConn.
func NewBaseServerTransport(connector IServerConnector, bufferSize int, maxWorkersPerConn int) transport.IRPCServerTransport {
	return &serverTransport{
		connector:         connector,
		bufferSize:        bufferSize,
		maxWorkersPerConn: maxWorkersPerConn,
		conns:             xsync.NewMapOf[net.Conn, struct{}](),
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return make([]byte, bufferSize)
			},
		},
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config
	if config.Transport.WorkersPerConn > 0 {
		t.maxWorkersPerConn = config.Transport.WorkersPerConn
	}
	t.maxWorkersPerConn = max(t.maxWorkersPerConn, 1)

	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	t.listenerMu.Lock()
	if t.closed {
		t.listenerMu.Unlock()
		_ = listener.Close()
		return nil
	}
	t.listener = listener
	t.listenerMu.Unlock()

	name := t.connector.GetName()
	Logger.Infof("Starting %s server on %s with %d workers per connection",
		name, config.Transport.Endpoint, t.maxWorkersPerConn)

	for {
		conn, err := listener.Accept()
		if errors.Is(err, net.ErrClosed) {
			Logger.Infof("%s server on %s stopped", name, config.Transport.Endpoint)
			return nil
		}
		if err != nil {
			Logger.Errorf("Accept error: %v", err)
			continue
		}
		metrics.GetOrCreateCounter(fmt.Sprintf(`wactor_transport_connections_total{transport=%q}`, name)).Inc()

		if err := t.connector.UpgradeConnection(conn, config.Transport.SocketConf, config.Transport.TCPConf); err != nil {
			Logger.Warningf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
		}

		// register before checking closed, Close either sees the conn or we see closed
		t.conns.Store(conn, struct{}{})
		t.listenerMu.Lock()
		closed := t.closed
		if !closed {
			t.connWg.Add(1)
		}
		t.listenerMu.Unlock()
		if closed {
			t.conns.Delete(conn)
			_ = conn.Close()
			continue
		}

		go t.serve(conn)
	}
}

// Close stops accepting, closes all open connections and waits until their
// in-flight requests are done.
func (t *serverTransport) Close() error {
	t.listenerMu.Lock()
	if t.closed {
		t.listenerMu.Unlock()
		return nil
	}
	t.closed = true
	var err error
	if t.listener != nil {
		err = t.listener.Close()
	}
	t.listenerMu.Unlock()

	t.conns.Range(func(conn net.Conn, _ struct{}) bool {
		_ = conn.Close()
		return true
	})
	t.connWg.Wait()
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// serve reads frames from one connection until it fails or is closed.
// Idle connections are kept open, there is no read deadline.
func (t *serverTransport) serve(conn net.Conn) {
	sc := &serverConn{
		Conn:    conn,
		timeout: time.Duration(t.config.TimeoutSecond) * time.Second,
		slots:   make(chan struct{}, t.maxWorkersPerConn),
	}
	defer func() {
		sc.workers.Wait()
		t.conns.Delete(conn)
		_ = conn.Close()
		t.connWg.Done()
	}()

	for {
		buf := t.bufferPool.Get().([]byte)
		actorID, requestID, data, err := readFrame(conn, buf)
		if err != nil {
			t.bufferPool.Put(buf)
			switch {
			case errors.Is(err, io.EOF):
				Logger.Debugf("Connection closed by client")
			case errors.Is(err, net.ErrClosed):
				Logger.Debugf("Connection closed by server")
			default:
				metrics.GetOrCreateCounter(fmt.Sprintf(`wactor_transport_frame_errors_total{transport=%q}`, t.connector.GetName())).Inc()
				Logger.Errorf("Error handling request: %v", err)
			}
			return
		}

		// blocks while all worker slots of this connection are taken
		sc.slots <- struct{}{}
		sc.workers.Add(1)
		go func() {
			defer func() {
				t.bufferPool.Put(buf)
				<-sc.slots
				sc.workers.Done()
			}()
			t.respond(sc, actorID, requestID, data)
		}()
	}
}

// respond runs the handler for one frame and writes the answer with the same request id
func (t *serverTransport) respond(sc *serverConn, actorID, requestID uint64, data []byte) {
	start := time.Now()
	resp := t.handler(actorID, data)
	Logger.Debugf("Processed request for actor %d with requestID %d took %s", actorID, requestID, time.Since(start))

	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()

	if sc.timeout > 0 {
		if err := sc.SetWriteDeadline(time.Now().Add(sc.timeout)); err != nil {
			Logger.Errorf("Failed to set write deadline: %v", err)
			return
		}
	}
	if err := writeFrame(sc, actorID, requestID, resp); err != nil {
		Logger.Errorf("Failed to write response: %v", err)
	}
}
