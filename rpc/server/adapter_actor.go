package server

import (
	"context"
	"fmt"

	"github.com/ValentinKolb/wActor/rpc/common"
)

func NewActorServerAdapter() IRPCServerAdapter {
	return &actorServerAdapterImpl{}
}

type actorServerAdapterImpl struct{}

func (adapter *actorServerAdapterImpl) Handle(ctx context.Context, req *common.Message, call CallFunc) *common.Message {
	// Check for nil call function
	if call == nil {
		return common.NewErrorResponse("handler: actor is nil")
	}

	// Handle different message types
	switch req.MsgType {
	case common.MsgTCall:
		payload, err := call(ctx, req.Namespace, req.Operation, req.Payload)
		return common.NewCallResponse(req.Operation, payload, err)
	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC ActorAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}
