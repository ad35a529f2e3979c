//go:build !wasm

package guest

import "sync"

// This file replaces the wapc imports with an in-process host for native builds and tests.

// hostCallFunc serves host calls in native builds
type hostCallFunc func(binding, namespace, operation string, payload []byte) ([]byte, error)

type stubHost struct {
	mu sync.Mutex

	operation string
	payload   []byte
	response  []byte
	err       string

	hostCall hostCallFunc
	hostResp []byte
	hostErr  string

	logs []string
}

var host = &stubHost{}

func readRequest(op, payload []byte) {
	host.mu.Lock()
	defer host.mu.Unlock()
	copy(op, host.operation)
	copy(payload, host.payload)
}

func writeResponse(b []byte) {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.response = append([]byte{}, b...)
}

func writeError(msg string) {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.err = msg
}

func callHost(binding, namespace, operation string, payload []byte) bool {
	host.mu.Lock()
	fn := host.hostCall
	host.hostResp, host.hostErr = nil, ""
	host.mu.Unlock()

	if fn == nil {
		return false
	}

	resp, err := fn(binding, namespace, operation, payload)

	host.mu.Lock()
	defer host.mu.Unlock()
	if err != nil {
		host.hostErr = err.Error()
		return false
	}
	host.hostResp = resp
	return true
}

func hostResponse() []byte {
	host.mu.Lock()
	defer host.mu.Unlock()
	return append([]byte{}, host.hostResp...)
}

func hostError() string {
	host.mu.Lock()
	defer host.mu.Unlock()
	return host.hostErr
}

func consoleLog(msg string) {
	host.mu.Lock()
	defer host.mu.Unlock()
	host.logs = append(host.logs, msg)
}
