package base

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, 7, 42, []byte("payload")))
	assert.Equal(t, frameHeaderSize+len("payload"), buf.Len())

	actorID, requestID, data, err := readFrame(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), actorID)
	assert.Equal(t, uint64(42), requestID)
	assert.Equal(t, []byte("payload"), data)
}

func TestFrameEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, 1, 2, nil))

	_, _, data, err := readFrame(&buf, make([]byte, 64))
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestFrameReusesBuffer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, 1, 2, []byte("abc")))

	pooled := make([]byte, 128)
	_, _, data, err := readFrame(&buf, pooled)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
	assert.Equal(t, &pooled[0], &data[0])
}

func TestFrameErrors(t *testing.T) {
	t.Run("Truncated header", func(t *testing.T) {
		_, _, _, err := readFrame(bytes.NewReader([]byte{0, 1, 2}), nil)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("Empty stream", func(t *testing.T) {
		_, _, _, err := readFrame(bytes.NewReader(nil), nil)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("Truncated data", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeFrame(&buf, 1, 2, []byte("abcdef")))
		_, _, _, err := readFrame(bytes.NewReader(buf.Bytes()[:frameHeaderSize+2]), nil)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("Oversized frame", func(t *testing.T) {
		header := make([]byte, frameHeaderSize)
		binary.BigEndian.PutUint32(header[16:20], maxFrameSize+1)
		_, _, _, err := readFrame(bytes.NewReader(header), nil)
		assert.Error(t, err)
	})
}
