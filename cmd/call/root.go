package call

import (
	"github.com/ValentinKolb/wActor/cmd/util"
	"github.com/ValentinKolb/wActor/lib/actor"
	"github.com/ValentinKolb/wActor/rpc/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rpcCaller *client.RPCHostCaller
	rpcHost   *actor.Host

	// CallCommands represents the call command group
	CallCommands = &cobra.Command{
		Use:                "call",
		Short:              "Call the test operations of an actor",
		PersistentPreRunE:  setupCallClient,
		PersistentPostRunE: closeCallClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common RPC flags to the call command
	util.SetupRPCClientFlags(CallCommands)

	CallCommands.PersistentFlags().Uint64("actor", 1, util.WrapString("ID of the actor to call"))
	CallCommands.PersistentFlags().String("binding", actor.DefaultBinding, util.WrapString("Binding name sent with every call. It is informational only, the called actor is selected with --actor"))
	CallCommands.PersistentFlags().String("input", "", util.WrapString("Path of a JSON encoded test bundle used as argument ('-' reads stdin, empty uses the zero bundle)"))

	// Add subcommands
	CallCommands.AddCommand(functionCmd)
	CallCommands.AddCommand(unaryCmd)
	CallCommands.AddCommand(decodeCmd)
	CallCommands.AddCommand(perfTestCmd)
}

// setupCallClient initializes the RPC host caller
func setupCallClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()
	actorId := util.GetActorID()

	// Get serializer and transport
	s, err := util.GetSerializer()
	if err != nil {
		return err
	}

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the client
	rpcCaller, err = client.NewRPCHostCaller(
		actorId,
		*config,
		t,
		s,
	)
	if err != nil {
		return err
	}

	rpcHost = actor.NewHost(rpcCaller, viper.GetString("binding"))
	return nil
}

func closeCallClient(_ *cobra.Command, _ []string) error {
	if rpcCaller == nil {
		return nil
	}
	return rpcCaller.Close()
}
