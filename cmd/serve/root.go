package serve

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cmdUtil "github.com/ValentinKolb/wActor/cmd/util"
	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/ValentinKolb/wActor/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the wActor server",
		Long:    `Start the wActor server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is WACTOR_<flag> (e.g. WACTOR_TIMEOUT=15)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "actors"
	ServeCmd.PersistentFlags().String(key, "1=fixture", cmdUtil.WrapString("Comma-separated list of actors to serve. Format: ID=TYPE where TYPE is one of: fixture, wasm(<path to module>)"))

	key = "bindings"
	ServeCmd.PersistentFlags().String(key, "default=1", cmdUtil.WrapString("Comma-separated list of bindings used to route host calls of wasm actors. Format: NAME=ID"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Timeout in seconds for writing responses"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080, /tmp/wactor.sock, ...)"))

	key = "workers-per-conn"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("Maximum number of requests processed concurrently per connection (0 = transport default, ignored for http)"))

	key = "memory-limit"
	ServeCmd.PersistentFlags().Uint32(key, 0, cmdUtil.WrapString("Memory limit of each wasm actor in 64 KiB pages (0 = no limit)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "otel-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("OTLP/HTTP endpoint the call spans are exported to (e.g. http://localhost:4318). Tracing is disabled if empty"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// parse actors
	serveCmdConfig.Actors = []common.ServerActor{}
	for _, actorConfig := range splitList(viper.GetString("actors")) {
		a, err := common.ParseActor(actorConfig)
		if err != nil {
			return err
		}
		serveCmdConfig.Actors = append(serveCmdConfig.Actors, a)
	}

	// parse bindings
	serveCmdConfig.Bindings = make(map[string]uint64)
	for _, binding := range splitList(viper.GetString("bindings")) {
		name, id, err := common.ParseBinding(binding)
		if err != nil {
			return err
		}
		serveCmdConfig.Bindings[name] = id
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.Transport.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.Transport.WorkersPerConn = viper.GetInt("workers-per-conn")
	serveCmdConfig.Transport.TCPConf = common.TCPConf{TCPNoDelay: true, TCPLingerSec: -1}
	serveCmdConfig.MemoryLimitPages = viper.GetUint32("memory-limit")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.OtelEndpoint = viper.GetString("otel-endpoint")

	return serveCmdConfig.Validate()
}

// run starts the wActor server
func run(_ *cobra.Command, _ []string) error {
	s, err := cmdUtil.GetSerializer()
	if err != nil {
		return err
	}

	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(*serveCmdConfig, t, s)

	// stop the server on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		<-ctx.Done()
		if err := serv.Close(); err != nil {
			server.Logger.Warningf("error while closing server: %v", err)
		}
	}()

	err = serv.Serve()

	// release the actors if Serve returned on its own
	stop()
	<-closed

	return err
}

// splitList splits a comma-separated list and drops empty entries.
// Commas inside parentheses (module paths) do not split.
func splitList(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])

	items := out[:0]
	for _, item := range out {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
