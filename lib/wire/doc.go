// Package wire implements the binary encoding used between actors and their
// hosts, together with the error kinds that can end an actor call.
//
// The encoding is msgpack with explicit string keys for every record field
// (structs are encoded as maps, never as positional arrays). Byte sequences
// are written as msgpack bin values and floats keep their width.
//
// Key Components:
//
//   - Encode / Decode: Thin wrappers around github.com/vmihailenco/msgpack/v5
//     that translate codec failures into typed errors.
//
//   - Error: Carries an ErrorKind (encode, decode, operation not found) and
//     the underlying cause. The sentinels ErrEncode, ErrDecode and
//     ErrOperationNotFound match any Error of the same kind with errors.Is.
//
//   - ParseError: Restores a typed error from its message text after it has
//     crossed a string-only boundary such as __guest_error or an RPC message.
package wire
