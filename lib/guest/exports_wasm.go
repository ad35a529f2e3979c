//go:build wasm

package guest

//go:wasmexport __guest_call
func guestCall(opLen, payloadLen uint32) uint32 {
	return handleCall(opLen, payloadLen)
}
