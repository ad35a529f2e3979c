package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/ValentinKolb/wActor/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() IRPCSerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements IRPCSerializer using a custom binary format:
//
//	1 byte MsgType | 1 byte flags | present fields in flag order
//
// Strings and byte slices are written as 4 byte length (big endian) plus data.
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasBinding   byte = 1 << 0
	hasNamespace byte = 1 << 1
	hasOperation byte = 1 << 2
	hasPayload   byte = 1 << 3
	hasErr       byte = 1 << 4
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	// Calculate total size needed
	result := make([]byte, b.sizeBytes(msg))

	// Write message type
	result[0] = byte(msg.MsgType)

	// Initialize flags byte
	var flags byte = 0

	// Set position for writing
	pos := 2 // Start after MsgType and flags

	if msg.Binding != "" {
		flags |= hasBinding
		pos = putField(result, pos, []byte(msg.Binding))
	}

	if msg.Namespace != "" {
		flags |= hasNamespace
		pos = putField(result, pos, []byte(msg.Namespace))
	}

	if msg.Operation != "" {
		flags |= hasOperation
		pos = putField(result, pos, []byte(msg.Operation))
	}

	// an empty payload is still a payload (msgpack never encodes to zero bytes,
	// but the envelope does not rely on that)
	if msg.Payload != nil {
		flags |= hasPayload
		pos = putField(result, pos, msg.Payload)
	}

	if msg.Err != "" {
		flags |= hasErr
		pos = putField(result, pos, []byte(msg.Err))
	}

	// Set flags byte after knowing which fields are present
	result[1] = flags

	return result[:pos], nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	// Check minimum size (MsgType + flags)
	if len(data) < 2 {
		return fmt.Errorf("data too short for message header")
	}

	// Read message type
	msg.MsgType = common.MessageType(data[0])

	// Read flags
	flags := data[1]
	if flags&^(hasBinding|hasNamespace|hasOperation|hasPayload|hasErr) != 0 {
		return fmt.Errorf("unknown flags %08b", flags)
	}

	// Initialize read position
	pos := 2
	var field []byte
	var err error

	// readString reads a string field if its flag is set
	readString := func(flag byte, name string, dst *string) error {
		*dst = ""
		if flags&flag == 0 {
			return nil
		}
		if field, pos, err = getField(data, pos, name); err != nil {
			return err
		}
		*dst = string(field)
		return nil
	}

	// readBytes reads a byte field if its flag is set, an empty field results in an empty (not nil) slice
	readBytes := func(flag byte, name string, dst *[]byte) error {
		*dst = nil
		if flags&flag == 0 {
			return nil
		}
		if field, pos, err = getField(data, pos, name); err != nil {
			return err
		}
		*dst = make([]byte, len(field))
		copy(*dst, field)
		return nil
	}

	if err := readString(hasBinding, "binding", &msg.Binding); err != nil {
		return err
	}
	if err := readString(hasNamespace, "namespace", &msg.Namespace); err != nil {
		return err
	}
	if err := readString(hasOperation, "operation", &msg.Operation); err != nil {
		return err
	}
	if err := readBytes(hasPayload, "payload", &msg.Payload); err != nil {
		return err
	}
	if err := readString(hasErr, "error", &msg.Err); err != nil {
		return err
	}

	if pos != len(data) {
		return fmt.Errorf("%d trailing bytes after message", len(data)-pos)
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	// 1 byte for MsgType + 1 byte for flags
	size := 2

	// 4 bytes for length + data for every present field
	if msg.Binding != "" {
		size += 4 + len(msg.Binding)
	}
	if msg.Namespace != "" {
		size += 4 + len(msg.Namespace)
	}
	if msg.Operation != "" {
		size += 4 + len(msg.Operation)
	}
	if msg.Payload != nil {
		size += 4 + len(msg.Payload)
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}

	return size
}

// putField writes a length prefixed field at pos and returns the next position
func putField(buf []byte, pos int, data []byte) int {
	binary.BigEndian.PutUint32(buf[pos:pos+4], uint32(len(data)))
	pos += 4
	copy(buf[pos:pos+len(data)], data)
	return pos + len(data)
}

// getField reads a length prefixed field at pos and returns it plus the next position
func getField(data []byte, pos int, name string) ([]byte, int, error) {
	if pos+4 > len(data) {
		return nil, pos, fmt.Errorf("data too short for %s length", name)
	}
	fieldLen := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4

	if fieldLen > len(data)-pos {
		return nil, pos, fmt.Errorf("data too short for %s data", name)
	}
	return data[pos : pos+fieldLen], pos + fieldLen, nil
}
