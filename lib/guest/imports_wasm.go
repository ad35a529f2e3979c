//go:build wasm

package guest

import (
	"runtime"
	"unsafe"
)

//go:wasmimport wapc __guest_request
func wapcGuestRequest(opPtr, ptr uint32)

//go:wasmimport wapc __guest_response
func wapcGuestResponse(ptr, size uint32)

//go:wasmimport wapc __guest_error
func wapcGuestError(ptr, size uint32)

//go:wasmimport wapc __host_call
func wapcHostCall(bdPtr, bdLen, nsPtr, nsLen, opPtr, opLen, ptr, size uint32) uint32

//go:wasmimport wapc __host_response_len
func wapcHostResponseLen() uint32

//go:wasmimport wapc __host_response
func wapcHostResponse(ptr uint32)

//go:wasmimport wapc __host_error_len
func wapcHostErrorLen() uint32

//go:wasmimport wapc __host_error
func wapcHostError(ptr uint32)

//go:wasmimport wapc __console_log
func wapcConsoleLog(ptr, size uint32)

func bytesPtr(b []byte) uint32 {
	return uint32(uintptr(unsafe.Pointer(unsafe.SliceData(b))))
}

func stringPtr(s string) uint32 {
	return uint32(uintptr(unsafe.Pointer(unsafe.StringData(s))))
}

func readRequest(op, payload []byte) {
	wapcGuestRequest(bytesPtr(op), bytesPtr(payload))
	runtime.KeepAlive(op)
	runtime.KeepAlive(payload)
}

func writeResponse(b []byte) {
	wapcGuestResponse(bytesPtr(b), uint32(len(b)))
	runtime.KeepAlive(b)
}

func writeError(msg string) {
	wapcGuestError(stringPtr(msg), uint32(len(msg)))
	runtime.KeepAlive(msg)
}

func callHost(binding, namespace, operation string, payload []byte) bool {
	ok := wapcHostCall(
		stringPtr(binding), uint32(len(binding)),
		stringPtr(namespace), uint32(len(namespace)),
		stringPtr(operation), uint32(len(operation)),
		bytesPtr(payload), uint32(len(payload)),
	) == 1
	runtime.KeepAlive(binding)
	runtime.KeepAlive(namespace)
	runtime.KeepAlive(operation)
	runtime.KeepAlive(payload)
	return ok
}

func hostResponse() []byte {
	buf := make([]byte, wapcHostResponseLen())
	if len(buf) > 0 {
		wapcHostResponse(bytesPtr(buf))
	}
	return buf
}

func hostError() string {
	buf := make([]byte, wapcHostErrorLen())
	if len(buf) > 0 {
		wapcHostError(bytesPtr(buf))
	}
	return string(buf)
}

func consoleLog(msg string) {
	wapcConsoleLog(stringPtr(msg), uint32(len(msg)))
	runtime.KeepAlive(msg)
}
