package client

import (
	"context"
	"fmt"

	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/ValentinKolb/wActor/rpc/serializer"
	"github.com/ValentinKolb/wActor/rpc/transport"
)

// NewRPCHostCaller creates a new actor.IHostCaller that sends its calls to a single actor.
// It takes an actor ID, a config, a transport and a serializer as parameters.
// The transport is connected immediately.
//
// Usage:
//
//	caller, err := client.NewRPCHostCaller(1, config, unix.NewUnixClientTransport(), serializer.NewBinarySerializer())
//	if err != nil {
//		return err
//	}
//	defer caller.Close()
//
//	host := actor.NewHost(caller, "default")
func NewRPCHostCaller(
	actorId uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*RPCHostCaller, error) {
	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, fmt.Errorf("failed to connect transport: %w", err)
	}

	Logger.Debugf("Created RPC host caller for actor %d", actorId)

	return &RPCHostCaller{
		rpcClientAdapter{
			actorId:    actorId,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}, nil
}

// RPCHostCaller implements actor.IHostCaller over an RPC transport
type RPCHostCaller struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see actor.IHostCaller)
// --------------------------------------------------------------------------

func (c *RPCHostCaller) HostCall(ctx context.Context, binding, namespace, operation string, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := invokeRPCRequest(
		c.actorId,
		common.NewCallRequest(binding, namespace, operation, payload),
		c.transport,
		c.serializer,
	)
	if err != nil {
		return nil, err
	}
	return resp.Payload, nil
}

// ActorID returns the ID of the actor the calls are sent to
func (c *RPCHostCaller) ActorID() uint64 {
	return c.actorId
}

// Close closes the underlying transport
func (c *RPCHostCaller) Close() error {
	return c.transport.Close()
}
