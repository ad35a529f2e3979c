package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/ValentinKolb/wActor/lib/actor"
	"github.com/ValentinKolb/wActor/lib/wasm"
	"github.com/ValentinKolb/wActor/lib/wire"
	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/ValentinKolb/wActor/rpc/serializer"
	"github.com/ValentinKolb/wActor/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("rpc")

// ErrActorNotFound is returned for requests and host calls to an unknown actor
var ErrActorNotFound = errors.New("actor not found")

const defaultHostCallWait = 5 * time.Second

// serverActor is a struct that represents an actor in the RPC server
// It contains the invoker calls are routed to, the namespace it serves
// and the adapter that handles requests for it
type serverActor struct {
	Invoker   actor.IInvoker
	Namespace string
	Adapter   IRPCServerAdapter
	close     func(ctx context.Context) error
}

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	 }
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *RPCServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	return &RPCServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		actors:     xsync.NewMapOf[uint64, serverActor](),
	}
}

type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	actors     *xsync.MapOf[uint64, serverActor]

	engine   *wasm.Engine
	modules  []*wasm.Module
	shutdown func(context.Context) error
	initOnce sync.Once
	initErr  error
}

func (s *RPCServer) registerTransportHandler() {
	s.transport.RegisterHandler(s.handle)
}

// handle decodes a request for actorId, lets the adapter handle it and encodes the response
func (s *RPCServer) handle(actorId uint64, req []byte) []byte {
	var msg common.Message
	var respMsg *common.Message

	// Get appropriate actor
	a, ok := s.actors.Load(actorId)

	// Case actor does not exist -> error
	if !ok {
		respMsg = common.NewErrorResponse(ErrActorNotFound.Error())
	} else if err := s.serializer.Deserialize(req, &msg); err != nil {
		respMsg = common.NewErrorResponse(fmt.Sprintf("failed to deserialize request: %s", err))
	} else {
		// Let the adapter handle the request
		call := func(ctx context.Context, namespace, operation string, payload []byte) ([]byte, error) {
			return s.call(ctx, actorId, namespace, operation, payload)
		}
		respMsg = a.Adapter.Handle(context.Background(), &msg, call)
	}

	// Return result
	val, err := s.serializer.Serialize(*respMsg)
	if err != nil {
		Logger.Errorf("failed to serialize response for actor %d: %v", actorId, err)
		val, _ = s.serializer.Serialize(*common.NewErrorResponse(fmt.Sprintf("failed to serialize response: %s", err)))
	}
	return val
}

// call routes a single call to actorId. It is used for requests of clients
// and for host calls of wasm actors.
func (s *RPCServer) call(ctx context.Context, actorId uint64, namespace, operation string, payload []byte) (resp []byte, err error) {
	a, ok := s.actors.Load(actorId)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrActorNotFound, actorId)
	}

	// a call into an actor that is already executing would never return
	chain := callChainFromContext(ctx)
	if slices.Contains(chain, actorId) {
		return nil, fmt.Errorf("actor %d cannot call itself (call chain %v)", actorId, chain)
	}
	ctx = withCallChain(ctx, append(slices.Clone(chain), actorId))

	ctx, finish := observeCall(ctx, actorId, namespace, operation)
	defer func() { finish(err) }()

	if namespace != a.Namespace {
		return nil, wire.NewOperationNotFound(operation)
	}
	return a.Invoker.Invoke(ctx, operation, payload)
}

// routeHostCall is the host call handler of the wasm engine. The binding
// selects the target actor. The calling instance stays locked meanwhile, so
// the wait for a busy target is bounded: two wasm actors calling each other
// concurrently get wasm.ErrInstanceBusy instead of waiting forever.
func (s *RPCServer) routeHostCall(ctx context.Context, binding, namespace, operation string, payload []byte) ([]byte, error) {
	actorId, ok := s.config.Bindings[binding]
	if !ok {
		return nil, fmt.Errorf("unknown binding %s", binding)
	}
	return s.call(wasm.WithAcquireTimeout(ctx, s.hostCallWait()), actorId, namespace, operation, payload)
}

// hostCallWait is how long a host call waits for a busy wasm actor
func (s *RPCServer) hostCallWait() time.Duration {
	if s.config.TimeoutSecond > 0 {
		return time.Duration(s.config.TimeoutSecond) * time.Second
	}
	return defaultHostCallWait
}

func (s *RPCServer) init(ctx context.Context) error {
	// Init logger
	if err := common.InitLoggers(s.config.LogLevel); err != nil {
		return err
	}

	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof(s.config.String())

	// Tracing is a no-op without an endpoint
	shutdown, err := common.SetupTracing(ctx, "wactor", s.config.OtelEndpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	s.shutdown = shutdown

	// Only create the engine if we have wasm actors
	if s.config.HasWasmActor() {
		opts := []wasm.Option{
			wasm.WithHostCallHandler(s.routeHostCall),
			wasm.WithLogger(common.WasmLogger(s.config.LogLevel)),
			wasm.WithStdout(os.Stdout),
			wasm.WithStderr(os.Stderr),
		}
		if s.config.MemoryLimitPages > 0 {
			opts = append(opts, wasm.WithMemoryLimitPages(s.config.MemoryLimitPages))
		}
		s.engine, err = wasm.NewEngine(ctx, opts...)
		if err != nil {
			return fmt.Errorf("failed to create wasm engine: %w", err)
		}
	}

	// CREATE ACTORS

	/*
		Note: A single RPC Server can host any number of fixture and wasm actors.
		Wasm actors share one engine, their host calls are routed back into this
		server through the configured bindings.
	*/

	for _, actorConfig := range s.config.Actors {
		namespace := actorConfig.Namespace
		if namespace == "" {
			namespace = actor.Namespace
		}

		a := serverActor{
			Namespace: namespace,
			Adapter:   NewActorServerAdapter(),
		}

		switch actorConfig.Type {
		case common.ActorTypeFixture:
			d := actor.NewDispatcher(namespace)
			actor.FixtureHandlers().Register(d)
			a.Invoker = d
			Logger.Infof("created fixture actor %d (namespace %s)", actorConfig.ActorID, namespace)

		case common.ActorTypeWasm:
			inst, err := s.instantiate(ctx, actorConfig.Module)
			if err != nil {
				return fmt.Errorf("failed to create wasm actor %d: %w", actorConfig.ActorID, err)
			}
			a.Invoker = inst
			a.close = inst.Close
			Logger.Infof("created wasm actor %d from %s (namespace %s)", actorConfig.ActorID, actorConfig.Module, namespace)

		default:
			return fmt.Errorf("invalid actor type: %s", actorConfig.Type)
		}

		s.actors.Store(actorConfig.ActorID, a)
	}

	Logger.Infof("wActor setup completed successfully")

	// Configure the transport layer
	s.registerTransportHandler()

	return nil
}

// instantiate compiles the wasm module at path and creates an instance of it
func (s *RPCServer) instantiate(ctx context.Context, path string) (*wasm.Instance, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}

	mod, err := s.engine.Compile(ctx, filepath.Base(path), code)
	if err != nil {
		return nil, err
	}
	s.modules = append(s.modules, mod)

	return mod.Instantiate(ctx)
}

// Init creates the actors without starting the transport. Serve calls it implicitly.
func (s *RPCServer) Init() error {
	s.initOnce.Do(func() {
		s.initErr = s.init(context.Background())
	})
	return s.initErr
}

// Serve starts the RPC server
// This function will also initialize the server plus the actors and start the transport layer.
// It blocks until the server is closed.
func (s *RPCServer) Serve() error {
	if err := s.Init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// Close stops the transport and releases all actors
func (s *RPCServer) Close() error {
	ctx := context.Background()
	errs := []error{s.transport.Close()}

	s.actors.Range(func(id uint64, a serverActor) bool {
		if a.close != nil {
			errs = append(errs, a.close(ctx))
		}
		s.actors.Delete(id)
		return true
	})

	for _, mod := range s.modules {
		errs = append(errs, mod.Close(ctx))
	}
	s.modules = nil

	if s.engine != nil {
		errs = append(errs, s.engine.Close(ctx))
		s.engine = nil
	}

	if s.shutdown != nil {
		errs = append(errs, s.shutdown(ctx))
		s.shutdown = nil
	}

	return errors.Join(errs...)
}

// --------------------------------------------------------------------------
// Call Chain
// --------------------------------------------------------------------------

type callChainKey struct{}

func withCallChain(ctx context.Context, chain []uint64) context.Context {
	return context.WithValue(ctx, callChainKey{}, chain)
}

// callChainFromContext returns the IDs of the actors a call passed through
func callChainFromContext(ctx context.Context) []uint64 {
	chain, _ := ctx.Value(callChainKey{}).([]uint64)
	return chain
}
