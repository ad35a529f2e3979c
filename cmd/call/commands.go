package call

import (
	"context"
	"fmt"
	"os"

	"github.com/ValentinKolb/wActor/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	functionCmd = &cobra.Command{
		Use:   "function",
		Short: "Calls testFunction with the four parts of the input bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := util.ReadBundle(viper.GetString("input"))
			if err != nil {
				return err
			}
			ret, err := rpcHost.TestFunction(context.Background(), bundle.Required, bundle.Optional, bundle.Maps, bundle.Lists)
			if err != nil {
				return err
			}
			return util.PrintJSON(os.Stdout, ret)
		},
	}
	unaryCmd = &cobra.Command{
		Use:   "unary",
		Short: "Calls testUnary with the input bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := util.ReadBundle(viper.GetString("input"))
			if err != nil {
				return err
			}
			ret, err := rpcHost.TestUnary(context.Background(), bundle)
			if err != nil {
				return err
			}
			return util.PrintJSON(os.Stdout, ret)
		},
	}
	decodeCmd = &cobra.Command{
		Use:   "decode",
		Short: "Calls testDecode with the input bundle and prints the rendered text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := util.ReadBundle(viper.GetString("input"))
			if err != nil {
				return err
			}
			ret, err := rpcHost.TestDecode(context.Background(), bundle)
			if err != nil {
				return err
			}
			fmt.Println(ret)
			return nil
		},
	}
)
