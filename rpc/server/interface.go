package server

import (
	"context"

	"github.com/ValentinKolb/wActor/rpc/common"
)

// CallFunc executes a call on the actor a request was routed to
type CallFunc func(ctx context.Context, namespace, operation string, payload []byte) ([]byte, error)

// IRPCServerAdapter is the interface for all RPC server adapters
// It is responsible for handling requests and responses
type IRPCServerAdapter interface {
	// Handle handles a request and returns a response
	// It takes a Message and the call function of the target actor as parameters.
	// It returns a Message as a response
	// If an error occurs, it should be set in the response
	Handle(ctx context.Context, req *common.Message, call CallFunc) (resp *common.Message)
}
