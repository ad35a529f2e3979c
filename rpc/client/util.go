package client

import (
	"fmt"

	"github.com/ValentinKolb/wActor/lib/wire"
	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/ValentinKolb/wActor/rpc/serializer"
	"github.com/ValentinKolb/wActor/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// rpcClientAdapter is a struct that stores all data needed for an implementation of an RPC client
type rpcClientAdapter struct {
	actorId    uint64
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// invokeRPCRequest is a helper function used for all RPC clients to send requests
// It takes an actor ID, a request message, a transport layer and a serializer as parameters
// It returns a response message and an error if any occurs
// This method also checks if the response is an error response and if the type of the response is the expected type.
// Errors reported by the actor are parsed back into typed wire errors.
func invokeRPCRequest(actorId uint64, req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Message, error) {
	// Serialize the request
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, err
	}

	// Send the request
	respBytes, err := transport.Send(actorId, reqBytes)
	if err != nil {
		return nil, err
	}

	// Deserialize the response
	resp := &common.Message{}
	err = serializer.Deserialize(respBytes, resp)
	if err != nil {
		return nil, fmt.Errorf("RPC client - failed to deserialize response: %w", err)
	}

	// Check if the response is an error response
	if resp.MsgType == common.MsgTError {
		return nil, fmt.Errorf("RPC client - actor %d: %s", actorId, resp.Err)
	}
	if resp.Err != "" {
		return nil, wire.ParseError(resp.Err)
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		return nil, fmt.Errorf("RPC client - unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	// Return the response
	return resp, nil
}
