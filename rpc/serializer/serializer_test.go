package serializer

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/wActor/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":    NewJSONSerializer,
	"GOB":     NewGOBSerializer,
	"Binary":  NewBinarySerializer,
	"Msgpack": NewMsgpackSerializer,
	"CBOR":    NewCBORSerializer,
}

// testMessages creates a set of test messages with different fields filled.
// Empty but non-nil byte slices are left out, only the binary serializer keeps them apart from nil.
func testMessages() []common.Message {
	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTCall},

		// Call request
		{
			MsgType:   common.MsgTCall,
			Binding:   "default",
			Namespace: "tests",
			Operation: "testUnary",
			Payload:   []byte{0x84, 0xa8, 'r', 'e', 'q', 'u', 'i', 'r', 'e', 'd', 0xc0},
		},

		// Call response
		{
			MsgType:   common.MsgTCall,
			Operation: "testDecode",
			Payload:   []byte("\xa5hello"),
		},

		// Failed call response
		{
			MsgType:   common.MsgTCall,
			Operation: "testMissing",
			Err:       "operation not found: testMissing",
		},

		// Error response
		{
			MsgType: common.MsgTError,
			Err:     "actor not found",
		},

		// Message with all fields filled
		{
			MsgType:   common.MsgTCall,
			Binding:   "secondary",
			Namespace: "tests",
			Operation: "testFunction",
			Payload:   []byte{0x00, 0xff, 0x10},
			Err:       "decoding error: invalid code",
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, msg, result)
				}
			}
		})
	}
}

// TestMessageTypes tests each message type with each serializer
func TestMessageTypes(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			// Test each message type a peer sends
			for msgType := common.MsgTError; msgType <= common.MsgTCall; msgType++ {
				msg := common.Message{MsgType: msgType}

				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message type %s: %v", msgType.String(), err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message type %s: %v", msgType.String(), err)
					continue
				}

				// Check type
				if result.MsgType != msgType {
					t.Errorf("Message type doesn't match after round trip: Expected %s, got %s",
						msgType.String(), result.MsgType.String())
				}
			}
		})
	}
}

// TestDeserializeGarbage tests that every serializer rejects data it did not produce
func TestDeserializeGarbage(t *testing.T) {
	garbage := [][]byte{
		{},
		{0xc1},
		[]byte("{\"msg_type\": "),
	}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()
			for i, data := range garbage {
				var msg common.Message
				if err := serializer.Deserialize(data, &msg); err == nil {
					t.Errorf("Expected error for garbage input %d", i)
				}
			}
		})
	}
}

// TestBinarySerializerSpecific tests specific edge cases for the binary serializer
func TestBinarySerializerSpecific(t *testing.T) {
	serializer := NewBinarySerializer()

	// Test cases for empty or zero values
	testCases := []struct {
		name string
		msg  common.Message
	}{
		{
			name: "Empty message",
			msg:  common.Message{},
		},
		{
			name: "Message with empty strings and empty slices",
			msg: common.Message{
				MsgType: common.MsgTCall,
				Payload: []byte{},
			},
		},
		{
			name: "Call with nil payload",
			msg: common.Message{
				MsgType:   common.MsgTCall,
				Operation: "testUnary",
				Payload:   nil,
			},
		},
		{
			name: "Error with empty payload slice but not nil",
			msg: common.Message{
				MsgType: common.MsgTError,
				Payload: []byte{},
				Err:     "actor not found",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Serialize
			data, err := serializer.Serialize(tc.msg)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			// Deserialize
			var result common.Message
			err = serializer.Deserialize(data, &result)
			if err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			// reflect.DeepEqual keeps nil and empty slices apart
			if !reflect.DeepEqual(tc.msg, result) {
				t.Errorf("Message mismatch:\nOriginal: %#v\nResult: %#v", tc.msg, result)
			}
		})
	}
}

// TestDeserializeResetsFields tests that a reused message does not keep stale fields
func TestDeserializeResetsFields(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			data, err := serializer.Serialize(common.Message{MsgType: common.MsgTError})
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			msg := common.Message{
				MsgType:   common.MsgTCall,
				Binding:   "stale",
				Operation: "stale",
				Payload:   []byte("stale"),
				Err:       "stale",
			}
			if err := serializer.Deserialize(data, &msg); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}
			if !reflect.DeepEqual(common.Message{MsgType: common.MsgTError}, msg) {
				t.Errorf("Stale fields left after deserialize: %#v", msg)
			}
		})
	}
}

// TestJSONStrictEnvelope tests that the json serializer only accepts a single known envelope
func TestJSONStrictEnvelope(t *testing.T) {
	serializer := NewJSONSerializer()

	testCases := map[string]string{
		"unknown field":  `{"msg_type":"call","shard":1}`,
		"trailing value": `{"msg_type":"call"}{"msg_type":"call"}`,
		"unknown type":   `{"msg_type":"lock"}`,
	}

	for name, data := range testCases {
		t.Run(name, func(t *testing.T) {
			var msg common.Message
			if err := serializer.Deserialize([]byte(data), &msg); err == nil {
				t.Errorf("Expected error for %s", data)
			}
		})
	}

	var msg common.Message
	if err := serializer.Deserialize([]byte("{\"msg_type\":\"call\",\"operation\":\"testUnary\"}\n"), &msg); err != nil {
		t.Fatalf("Did not expect error but got: %v", err)
	}
	if msg.MsgType != common.MsgTCall || msg.Operation != "testUnary" {
		t.Errorf("Unexpected message: %#v", msg)
	}
}

// TestInvalidBinaryData tests how the binary serializer handles corrupt or invalid data
func TestInvalidBinaryData(t *testing.T) {
	serializer := NewBinarySerializer()

	testCases := []struct {
		name        string
		data        []byte
		expectError bool
	}{
		{
			name:        "Empty data",
			data:        []byte{},
			expectError: true,
		},
		{
			name:        "Too short header",
			data:        []byte{1}, // Only message type, no flags
			expectError: true,
		},
		{
			name:        "Valid header only",
			data:        []byte{1, 0}, // Message type 1, no flags
			expectError: false,
		},
		{
			name:        "Invalid length for binding",
			data:        []byte{3, 1, 0, 0, 0, 5, 'a', 'b', 'c'}, // Claims binding length 5 but only 3 bytes provided
			expectError: true,
		},
		{
			name:        "Invalid length for payload",
			data:        []byte{3, 8, 0, 0, 0, 10}, // Claims payload length 10 but no bytes provided
			expectError: true,
		},
		{
			name:        "Missing length for operation",
			data:        []byte{3, 4, 0, 0},
			expectError: true,
		},
		{
			name:        "Unknown flag",
			data:        []byte{3, 0x80},
			expectError: true,
		},
		{
			name:        "Trailing bytes",
			data:        []byte{3, 0, 0xff},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var msg common.Message
			err := serializer.Deserialize(tc.data, &msg)

			if tc.expectError && err == nil {
				t.Errorf("Expected error but got none")
			} else if !tc.expectError && err != nil {
				t.Errorf("Did not expect error but got: %v", err)
			}
		})
	}
}
