package actor

import (
	"context"
	"sort"
	"sync"

	"github.com/ValentinKolb/wActor/lib/wire"
	"go.uber.org/zap"
)

// Dispatcher maps operation names to handlers. It is created once at startup
// and passed by reference to whatever routes calls into it (the wasm guest
// entry point, the RPC server or a test).
type Dispatcher struct {
	namespace string
	mu        sync.RWMutex
	handlers  map[string]HandlerFunc
}

// NewDispatcher creates an empty dispatcher for the given namespace
func NewDispatcher(namespace string) *Dispatcher {
	return &Dispatcher{
		namespace: namespace,
		handlers:  make(map[string]HandlerFunc),
	}
}

// Register adds a handler for an operation. Registering the same operation
// again replaces the previous handler.
func (d *Dispatcher) Register(operation string, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.handlers[operation]; ok {
		Logger().Warn("handler replaced",
			zap.String("namespace", d.namespace),
			zap.String("operation", operation),
		)
	}
	d.handlers[operation] = fn
}

// Invoke routes the payload to the handler of operation. The payload is not
// looked at if no handler is registered.
func (d *Dispatcher) Invoke(ctx context.Context, operation string, payload []byte) ([]byte, error) {
	d.mu.RLock()
	fn, ok := d.handlers[operation]
	d.mu.RUnlock()

	if !ok {
		return nil, wire.NewOperationNotFound(operation)
	}
	return fn(ctx, payload)
}

// Operations returns the registered operation names in sorted order
func (d *Dispatcher) Operations() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ops := make([]string, 0, len(d.handlers))
	for op := range d.handlers {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Namespace returns the namespace the dispatcher serves
func (d *Dispatcher) Namespace() string {
	return d.namespace
}
