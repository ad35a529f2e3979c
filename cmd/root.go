package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/wActor/cmd/call"
	"github.com/ValentinKolb/wActor/cmd/run"
	"github.com/ValentinKolb/wActor/cmd/serve"
	"github.com/ValentinKolb/wActor/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "wactor",
		Short: "waPC test actor host and client",
		Long: fmt.Sprintf(`wActor (v%s)

Hosts test actors (built in or compiled to WebAssembly with the waPC calling
convention) and calls them over HTTP, TCP or Unix sockets.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of wActor",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("wActor v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(call.CallCommands)
	RootCmd.AddCommand(run.RunCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "binary", util.WrapString("serializer to use (json, gob, binary, msgpack, cbor)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "http", util.WrapString("transport to use (http, tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
