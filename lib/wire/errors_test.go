package wire

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("invalid code=c1 decoding string/bytes length")

	decodeErr := NewDecodeError(cause)
	assert.ErrorIs(t, decodeErr, ErrDecode)
	assert.ErrorIs(t, decodeErr, cause)
	assert.NotErrorIs(t, decodeErr, ErrEncode)
	assert.Equal(t, "decoding error: invalid code=c1 decoding string/bytes length", decodeErr.Error())

	encodeErr := NewEncodeError(cause)
	assert.ErrorIs(t, encodeErr, ErrEncode)
	assert.Equal(t, KindEncode, KindOf(encodeErr))

	notFound := NewOperationNotFound("testMissing")
	assert.ErrorIs(t, notFound, ErrOperationNotFound)
	assert.Equal(t, "operation not found: testMissing", notFound.Error())
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("call failed: %w", NewOperationNotFound("x"))
	assert.Equal(t, KindOperationNotFound, KindOf(err))
	assert.ErrorIs(t, err, ErrOperationNotFound)
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestParseError(t *testing.T) {
	testCases := []struct {
		msg    string
		kind   ErrorKind
		detail string
	}{
		{msg: "operation not found: testDecode", kind: KindOperationNotFound, detail: "testDecode"},
		{msg: "decoding error: unexpected EOF", kind: KindDecode, detail: "unexpected EOF"},
		{msg: "encoding error", kind: KindEncode},
		{msg: "handler exploded", kind: KindUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.msg, func(t *testing.T) {
			err := ParseError(tc.msg)
			require.Error(t, err)
			assert.Equal(t, tc.msg, err.Error())
			assert.Equal(t, tc.kind, KindOf(err))

			var e *Error
			if errors.As(err, &e) {
				assert.Equal(t, tc.detail, e.Detail)
			}
		})
	}

	assert.NoError(t, ParseError(""))
}

func TestParseErrorRoundTrip(t *testing.T) {
	for _, err := range []error{
		NewDecodeError(errors.New("msgpack: invalid code")),
		NewEncodeError(errors.New("msgpack: unsupported type")),
		NewOperationNotFound("testUnary"),
	} {
		parsed := ParseError(err.Error())
		assert.Equal(t, KindOf(err), KindOf(parsed))
		assert.Equal(t, err.Error(), parsed.Error())
	}
}
