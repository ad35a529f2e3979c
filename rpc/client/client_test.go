package client

import (
	"context"
	"io"
	"math"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/ValentinKolb/wActor/lib/actor"
	"github.com/ValentinKolb/wActor/lib/records"
	"github.com/ValentinKolb/wActor/lib/wire"
	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/ValentinKolb/wActor/rpc/serializer"
	"github.com/ValentinKolb/wActor/rpc/server"
	"github.com/ValentinKolb/wActor/rpc/transport"
	rpchttp "github.com/ValentinKolb/wActor/rpc/transport/http"
	"github.com/ValentinKolb/wActor/rpc/transport/tcp"
	"github.com/ValentinKolb/wActor/rpc/transport/unix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serializers = map[string]func() serializer.IRPCSerializer{
	"binary":  serializer.NewBinarySerializer,
	"json":    serializer.NewJSONSerializer,
	"gob":     serializer.NewGOBSerializer,
	"msgpack": serializer.NewMsgpackSerializer,
	"cbor":    serializer.NewCBORSerializer,
}

// startServer serves a fixture actor with ID 1 on a fresh unix socket
func startServer(t *testing.T, ser serializer.IRPCSerializer) string {
	t.Helper()

	socket := filepath.Join(t.TempDir(), "wactor.sock")
	startServerOn(t, "unix", socket, unix.NewUnixDefaultServerTransport(), ser)
	return socket
}

// startServerOn serves a fixture actor with ID 1 over tr and waits until endpoint accepts connections
func startServerOn(t *testing.T, network, endpoint string, tr transport.IRPCServerTransport, ser serializer.IRPCSerializer) {
	t.Helper()

	s := server.NewRPCServer(common.ServerConfig{
		Actors:        []common.ServerActor{{ActorID: 1, Type: common.ActorTypeFixture}},
		TimeoutSecond: 5,
		LogLevel:      "error",
		Transport: common.ServerTransportConfig{
			Endpoint: endpoint,
			TCPConf:  common.TCPConf{TCPNoDelay: true, TCPLingerSec: -1},
		},
	}, tr, ser)

	done := make(chan error, 1)
	go func() { done <- s.Serve() }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial(network, endpoint)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 5*time.Second, 10*time.Millisecond)

	t.Cleanup(func() {
		assert.NoError(t, s.Close())
		assert.NoError(t, <-done)
	})
}

// freeAddr returns a loopback address nothing listens on
func freeAddr(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

func newCaller(t *testing.T, actorId uint64, socket string, ser serializer.IRPCSerializer) *RPCHostCaller {
	t.Helper()
	return newCallerOn(t, actorId, socket, unix.NewUnixClientTransport(), ser)
}

func newCallerOn(t *testing.T, actorId uint64, endpoint string, tr transport.IRPCClientTransport, ser serializer.IRPCSerializer) *RPCHostCaller {
	t.Helper()

	caller, err := NewRPCHostCaller(actorId, common.ClientConfig{
		TimeoutSecond: 5,
		Transport: common.ClientTransportConfig{
			Endpoints:  []string{endpoint},
			RetryCount: 1,
			TCPConf:    common.TCPConf{TCPNoDelay: true, TCPLingerSec: -1},
		},
	}, tr, ser)
	require.NoError(t, err)
	t.Cleanup(func() { _ = caller.Close() })
	return caller
}

func testBundle() records.TestBundle {
	return records.TestBundle{
		Required: records.RequiredFields{
			BoolValue:   true,
			U8Value:     math.MaxUint8,
			U64Value:    math.MaxUint64,
			S64Value:    math.MinInt64,
			F64Value:    math.MaxFloat64,
			StringValue: "test",
			BytesValue:  []byte("test"),
			ObjectValue: records.Thing{Value: "test"},
		},
		Optional: records.OptionalFields{
			U32Value:    pointer.ToUint32(7),
			StringValue: pointer.ToString(""),
		},
		Maps: records.MapFields{
			MapStringPrimative: map[uint32]string{1: "one"},
		},
		Lists: records.ListFields{
			ListU64s:            []uint64{1, 2, 3},
			ListObjectsOptional: []*records.Thing{nil, {Value: "x"}},
		},
	}
}

func TestHostOverRPC(t *testing.T) {
	for name, newSerializer := range serializers {
		t.Run(name, func(t *testing.T) {
			socket := startServer(t, newSerializer())
			host := actor.NewHost(newCaller(t, 1, socket, newSerializer()), "")
			ctx := context.Background()
			bundle := testBundle()

			got, err := host.TestUnary(ctx, bundle)
			require.NoError(t, err)
			assert.Equal(t, bundle, got)

			got, err = host.TestFunction(ctx, bundle.Required, bundle.Optional, bundle.Maps, bundle.Lists)
			require.NoError(t, err)
			assert.Equal(t, bundle, got)

			text, err := host.TestDecode(ctx, bundle)
			require.NoError(t, err)
			assert.Equal(t, actor.FormatRequired(bundle.Required), text)
		})
	}
}

func TestNetworkTransports(t *testing.T) {
	testCases := map[string]struct {
		server func() transport.IRPCServerTransport
		client func() transport.IRPCClientTransport
		scheme string
	}{
		"tcp":  {server: tcp.NewTCPServerTransport, client: tcp.NewTCPClientTransport},
		"http": {server: rpchttp.NewHttpServerTransport, client: rpchttp.NewHttpClientTransport, scheme: "http://"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ser := serializer.NewBinarySerializer()
			addr := freeAddr(t)
			startServerOn(t, "tcp", addr, tc.server(), ser)

			caller := newCallerOn(t, 1, tc.scheme+addr, tc.client(), ser)
			host := actor.NewHost(caller, actor.DefaultBinding)
			ctx := context.Background()
			bundle := testBundle()

			got, err := host.TestUnary(ctx, bundle)
			require.NoError(t, err)
			assert.Equal(t, bundle, got)

			_, err = caller.HostCall(ctx, actor.DefaultBinding, actor.Namespace, "testMissing", nil)
			assert.ErrorIs(t, err, wire.ErrOperationNotFound)
		})
	}
}

func TestHTTPMetricsEndpoint(t *testing.T) {
	ser := serializer.NewBinarySerializer()
	addr := freeAddr(t)
	startServerOn(t, "tcp", addr, rpchttp.NewHttpServerTransport(), ser)

	host := actor.NewHost(newCallerOn(t, 1, "http://"+addr, rpchttp.NewHttpClientTransport(), ser), actor.DefaultBinding)
	_, err := host.TestUnary(context.Background(), testBundle())
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `wactor_calls_total{actor="1",operation="testUnary"}`)
}

func TestErrorsOverRPC(t *testing.T) {
	ser := serializer.NewBinarySerializer()
	socket := startServer(t, ser)
	ctx := context.Background()

	t.Run("Unknown operation", func(t *testing.T) {
		caller := newCaller(t, 1, socket, ser)
		_, err := caller.HostCall(ctx, "default", actor.Namespace, "testMissing", nil)
		assert.ErrorIs(t, err, wire.ErrOperationNotFound)
	})

	t.Run("Wrong namespace", func(t *testing.T) {
		caller := newCaller(t, 1, socket, ser)
		_, err := caller.HostCall(ctx, "default", "other", actor.OpTestUnary, nil)
		assert.ErrorIs(t, err, wire.ErrOperationNotFound)
	})

	t.Run("Decode error", func(t *testing.T) {
		caller := newCaller(t, 1, socket, ser)
		_, err := caller.HostCall(ctx, "default", actor.Namespace, actor.OpTestUnary, []byte{0xc1})
		assert.ErrorIs(t, err, wire.ErrDecode)
	})

	t.Run("Unknown actor", func(t *testing.T) {
		caller := newCaller(t, 42, socket, ser)
		_, err := caller.HostCall(ctx, "default", actor.Namespace, actor.OpTestUnary, nil)
		assert.ErrorContains(t, err, "actor not found")
		assert.Equal(t, wire.KindUnknown, wire.KindOf(err))
	})

	t.Run("Canceled context", func(t *testing.T) {
		caller := newCaller(t, 1, socket, ser)
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := caller.HostCall(canceled, "default", actor.Namespace, actor.OpTestUnary, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConnectFailure(t *testing.T) {
	_, err := NewRPCHostCaller(1, common.ClientConfig{
		Transport: common.ClientTransportConfig{
			Endpoints: []string{filepath.Join(t.TempDir(), "missing.sock")},
		},
	}, unix.NewUnixClientTransport(), serializer.NewBinarySerializer())
	assert.Error(t, err)
}
