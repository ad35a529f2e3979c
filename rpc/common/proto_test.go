package common

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageTypeJSON(t *testing.T) {
	for _, msgType := range []MessageType{MsgTUnknown, MsgTError, MsgTCall} {
		data, err := json.Marshal(msgType)
		require.NoError(t, err)

		var decoded MessageType
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, msgType, decoded)
	}

	var decoded MessageType
	assert.Error(t, json.Unmarshal([]byte(`"set"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`"custom"`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`3`), &decoded))
}

func TestCallFactories(t *testing.T) {
	req := NewCallRequest("default", "tests", "testUnary", []byte{0x80})
	assert.Equal(t, MsgTCall, req.MsgType)
	assert.Equal(t, "default", req.Binding)
	assert.Equal(t, "tests", req.Namespace)
	assert.Equal(t, "testUnary", req.Operation)

	resp := NewCallResponse("testUnary", []byte{0x80}, nil)
	assert.Empty(t, resp.Err)
	assert.Equal(t, []byte{0x80}, resp.Payload)

	resp = NewCallResponse("testUnary", []byte{0x80}, errors.New("operation not found: testUnary"))
	assert.Nil(t, resp.Payload)
	assert.Equal(t, "operation not found: testUnary", resp.Err)

	errResp := NewErrorResponse("actor not found")
	assert.Equal(t, MsgTError, errResp.MsgType)
}
