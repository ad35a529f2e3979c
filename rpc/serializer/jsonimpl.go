package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ValentinKolb/wActor/rpc/common"
)

// NewJSONSerializer creates a new serializer using json encoding.
// The payload is a base64 encoded string on the wire.
func NewJSONSerializer() IRPCSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the IRPCSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	return json.Marshal(msg)
}

func (j jsonSerializerImpl) Deserialize(b []byte, msg *common.Message) error {
	*msg = common.Message{}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("json envelope: %w", err)
	}

	// exactly one envelope per frame
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("json envelope: trailing data after message")
	}
	return nil
}
