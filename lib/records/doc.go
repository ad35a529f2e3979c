// Package records declares the records exchanged by the test actor.
//
// Every field carries a fixed camelCase wire key in its msgpack tag (and the
// same key in its json tag for the command line), so the in-memory names can
// change without breaking the wire format. The records are plain values: each
// call constructs its own instances and discards them afterwards.
package records
