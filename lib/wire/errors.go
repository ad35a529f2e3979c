package wire

import (
	"errors"
	"strings"
)

// --------------------------------------------------------------------------
// Error Kinds
// --------------------------------------------------------------------------

// ErrorKind classifies the errors that can end an actor call
type ErrorKind uint8

const (
	KindUnknown           ErrorKind = iota
	KindEncode                      // a value could not be serialized
	KindDecode                      // a byte sequence did not match the expected record
	KindOperationNotFound           // no handler is registered for the operation
)

// String returns the message prefix used for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindEncode:
		return "encoding error"
	case KindDecode:
		return "decoding error"
	case KindOperationNotFound:
		return "operation not found"
	default:
		return "unknown error"
	}
}

// --------------------------------------------------------------------------
// Error Type
// --------------------------------------------------------------------------

// Error is the error returned by the codec and the dispatcher.
// Detail holds the operation name for KindOperationNotFound and the cause text
// otherwise.
type Error struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

// Sentinels for errors.Is. They match any Error of the same kind.
var (
	ErrEncode            = &Error{Kind: KindEncode}
	ErrDecode            = &Error{Kind: KindDecode}
	ErrOperationNotFound = &Error{Kind: KindOperationNotFound}
)

// NewEncodeError wraps a serialization failure
func NewEncodeError(cause error) *Error {
	return &Error{Kind: KindEncode, Detail: causeText(cause), Cause: cause}
}

// NewDecodeError wraps a deserialization failure
func NewDecodeError(cause error) *Error {
	return &Error{Kind: KindDecode, Detail: causeText(cause), Cause: cause}
}

// NewOperationNotFound creates the error for an unregistered operation
func NewOperationNotFound(operation string) *Error {
	return &Error{Kind: KindOperationNotFound, Detail: operation}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// KindOf returns the kind of err, or KindUnknown if err is not an Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ParseError rebuilds an error from its message text. It is used where errors
// cross a boundary that only carries strings (waPC guest/host errors, RPC
// messages). Messages without a known prefix become plain errors.
func ParseError(msg string) error {
	if msg == "" {
		return nil
	}
	for _, kind := range []ErrorKind{KindEncode, KindDecode, KindOperationNotFound} {
		prefix := kind.String()
		if msg == prefix {
			return &Error{Kind: kind}
		}
		if detail, ok := strings.CutPrefix(msg, prefix+": "); ok {
			return &Error{Kind: kind, Detail: detail}
		}
	}
	return errors.New(msg)
}

func causeText(cause error) string {
	if cause == nil {
		return ""
	}
	return cause.Error()
}
