package common

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Transport configuration structs
// --------------------------------------------------------------------------

// SocketConf holds the socket settings of the tcp and unix transports
type SocketConf struct {
	// WriteBufferSize and ReadBufferSize set the kernel socket buffers (0 = os default)
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds tcp specific settings
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int // negative = os default
}

// ServerTransportConfig configures the server side of a transport
type ServerTransportConfig struct {
	Endpoint       string
	WorkersPerConn int
	SocketConf
	TCPConf
}

// ClientTransportConfig configures the client side of a transport
type ClientTransportConfig struct {
	Endpoints              []string
	RetryCount             int
	ConnectionsPerEndpoint int
	SocketConf
	TCPConf
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

type ServerActorType string

const (
	ActorTypeFixture ServerActorType = "fixture"
	ActorTypeWasm    ServerActorType = "wasm"
)

type ServerActor struct {
	// ActorID is the ID the actor is addressed with
	ActorID uint64
	// Type selects the implementation of the actor
	Type ServerActorType
	// Module is the path of the wasm module (only for ActorTypeWasm)
	Module string
	// Namespace the actor serves, empty means the tests namespace
	Namespace string
}

// String returns the actor in the format used by the --actors flag
func (a ServerActor) String() string {
	if a.Type == ActorTypeWasm {
		return fmt.Sprintf("%d=%s(%s)", a.ActorID, a.Type, a.Module)
	}
	return fmt.Sprintf("%d=%s", a.ActorID, a.Type)
}

// ServerConfig holds all configuration parameters for the RPC server.
type ServerConfig struct {
	// actors hosted by the server
	Actors []ServerActor

	// binding name -> actor ID, used to route host calls of wasm actors
	Bindings map[string]uint64

	// wasm parameters
	MemoryLimitPages uint32

	// request timeout
	TimeoutSecond int64

	// transport settings
	Transport ServerTransportConfig

	// Logging configuration
	LogLevel string

	// Tracing (disabled if empty)
	OtelEndpoint string
}

// ParseActor parses an actor in the format "<id>=fixture" or "<id>=wasm(<path>)"
func ParseActor(s string) (ServerActor, error) {
	idStr, kind, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return ServerActor{}, fmt.Errorf("invalid actor %q: expected <id>=<type>", s)
	}

	id, err := strconv.ParseUint(strings.TrimSpace(idStr), 10, 64)
	if err != nil {
		return ServerActor{}, fmt.Errorf("invalid actor id %q: %w", idStr, err)
	}

	kind = strings.TrimSpace(kind)
	switch {
	case kind == string(ActorTypeFixture):
		return ServerActor{ActorID: id, Type: ActorTypeFixture}, nil
	case strings.HasPrefix(kind, string(ActorTypeWasm)+"(") && strings.HasSuffix(kind, ")"):
		path := strings.TrimSuffix(strings.TrimPrefix(kind, string(ActorTypeWasm)+"("), ")")
		if path == "" {
			return ServerActor{}, fmt.Errorf("invalid actor %q: missing module path", s)
		}
		return ServerActor{ActorID: id, Type: ActorTypeWasm, Module: path}, nil
	default:
		return ServerActor{}, fmt.Errorf("invalid actor type %q: must be fixture or wasm(<path>)", kind)
	}
}

// ParseBinding parses a binding in the format "<name>=<id>"
func ParseBinding(s string) (string, uint64, error) {
	name, idStr, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", 0, fmt.Errorf("invalid binding %q: expected <name>=<id>", s)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(idStr), 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid binding %q: %w", s, err)
	}
	return strings.TrimSpace(name), id, nil
}

// Validate checks that actor IDs are unique and every binding targets a configured actor
func (c *ServerConfig) Validate() error {
	ids := make(map[uint64]struct{}, len(c.Actors))
	for _, a := range c.Actors {
		if _, ok := ids[a.ActorID]; ok {
			return fmt.Errorf("duplicate actor id %d", a.ActorID)
		}
		ids[a.ActorID] = struct{}{}
	}
	for name, id := range c.Bindings {
		if _, ok := ids[id]; !ok {
			return fmt.Errorf("binding %s targets unknown actor %d", name, id)
		}
	}
	return nil
}

// HasWasmActor checks if the configuration contains any wasm actors
func (c *ServerConfig) HasWasmActor() bool {
	for _, a := range c.Actors {
		if a.Type == ActorTypeWasm {
			return true
		}
	}
	return false
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Workers Per Conn", strconv.Itoa(int(math.Max(1, float64(c.Transport.WorkersPerConn)))))

	// Logging and tracing
	addSection("Logging")
	addField("Log Level", c.LogLevel)
	if c.OtelEndpoint != "" {
		addField("OTLP Endpoint", c.OtelEndpoint)
	} else {
		addField("OTLP Endpoint", "disabled")
	}

	// Actors
	addSection("Actors")
	for _, a := range c.Actors {
		value := string(a.Type)
		if a.Type == ActorTypeWasm {
			value = fmt.Sprintf("%s (%s)", a.Type, a.Module)
		}
		addField(strconv.FormatUint(a.ActorID, 10), value)
	}

	if len(c.Bindings) > 0 {
		addSection("Bindings")

		// Sort keys for consistent output
		names := make([]string, 0, len(c.Bindings))
		for name := range c.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			addField(name, fmt.Sprintf("actor %d", c.Bindings[name]))
		}
	}

	if c.HasWasmActor() {
		addSection("WASM")
		if c.MemoryLimitPages > 0 {
			addField("Memory Limit", fmt.Sprintf("%d pages (%d KiB)", c.MemoryLimitPages, c.MemoryLimitPages*64))
		} else {
			addField("Memory Limit", "runtime default")
		}
	}
	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	TimeoutSecond int
	Transport     ClientTransportConfig
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.Transport.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.Transport.ConnectionsPerEndpoint)))))
	addField("TCP No Delay", strconv.FormatBool(c.Transport.TCPNoDelay))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Transport.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
