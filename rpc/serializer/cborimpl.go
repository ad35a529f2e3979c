package serializer

import (
	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/fxamacker/cbor/v2"
)

// NewCBORSerializer creates a new serializer using cbor encoding (RFC 8949)
func NewCBORSerializer() IRPCSerializer {
	return &cborSerializerImpl{}
}

// cborSerializerImpl implements the IRPCSerializer interface using cbor encoding
type cborSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (c cborSerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	return cbor.Marshal(msg)
}

func (c cborSerializerImpl) Deserialize(b []byte, msg *common.Message) error {
	*msg = common.Message{}
	return cbor.Unmarshal(b, msg)
}
