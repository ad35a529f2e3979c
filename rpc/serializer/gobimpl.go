package serializer

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/ValentinKolb/wActor/rpc/common"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format.
// Every message carries its own type description, so both sides only need
// to agree on common.Message.
func NewGOBSerializer() IRPCSerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the IRPCSerializer interface using gob encoding
type gobSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(msg); err != nil {
		return nil, fmt.Errorf("gob envelope: %w", err)
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, msg *common.Message) error {
	// gob skips zero values, a reused message must not keep stale fields
	*msg = common.Message{}

	buf := bytes.NewReader(b)
	if err := gob.NewDecoder(buf).Decode(msg); err != nil {
		return fmt.Errorf("gob envelope: %w", err)
	}
	if buf.Len() != 0 {
		return fmt.Errorf("gob envelope: %d trailing bytes after message", buf.Len())
	}
	return nil
}
