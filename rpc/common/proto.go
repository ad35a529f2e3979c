package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// Call addressing. The server routes by the actor id of the transport,
	// Binding only records the name the caller used and does not select the actor.
	Binding   string `json:"binding,omitempty"`   // Used for: Call (request), informational
	Namespace string `json:"namespace,omitempty"` // Used for: Call (request)
	Operation string `json:"operation,omitempty"` // Used for: Call (request and response)

	// Call data
	Payload []byte `json:"payload,omitempty"` // Used for: Call (request args, response result)

	// Response only fields
	Err string `json:"err,omitempty"` // Empty if no error, otherwise contains the error message
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewCallRequest creates a new Call request
func NewCallRequest(binding, namespace, operation string, payload []byte) *Message {
	return &Message{
		MsgType:   MsgTCall,
		Binding:   binding,
		Namespace: namespace,
		Operation: operation,
		Payload:   payload,
	}
}

// NewCallResponse creates a new Call response
func NewCallResponse(operation string, payload []byte, err error) *Message {
	msg := &Message{
		MsgType:   MsgTCall,
		Operation: operation,
		Payload:   payload,
	}
	if err != nil {
		msg.Payload = nil
		msg.Err = err.Error()
	}
	return msg
}

// NewErrorResponse creates a new Error response
func NewErrorResponse(err string) *Message {
	return &Message{
		MsgType: MsgTError,
		Err:     err,
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTCall:
		return "call"
	case MsgTError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "call":
		*t = MsgTCall
	case "error":
		*t = MsgTError
	case "unknown":
		*t = MsgTUnknown
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTError               // Indicates an error occurred, the request was not routed to an actor

	// Actor operations

	MsgTCall // Call an operation of an actor
)
