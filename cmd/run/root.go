package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/wActor/cmd/util"
	"github.com/ValentinKolb/wActor/lib/actor"
	"github.com/ValentinKolb/wActor/lib/records"
	"github.com/ValentinKolb/wActor/lib/wasm"
	"github.com/ValentinKolb/wActor/lib/wire"
	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunCmd invokes an operation of a wasm guest in process
var RunCmd = &cobra.Command{
	Use:   "run [module.wasm] [operation]",
	Short: "Invoke an operation of a wasm actor locally",
	Long: `Loads the wasm module, calls the operation (testFunction, testUnary or testDecode) with the
input bundle and prints the result. Host calls of the guest are answered by an in-process
fixture actor for every binding.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, _ []string) error { return util.BindCommandFlags(cmd) },
	RunE:    run,
}

func init() {
	cobra.OnInitialize(util.InitConfig)

	RunCmd.Flags().String("input", "", util.WrapString("Path of a JSON encoded test bundle used as argument ('-' reads stdin, empty uses the zero bundle)"))
	RunCmd.Flags().String("log-level", "warn", util.WrapString("Level of the engine and guest logs (debug, info, warn, error)"))
	RunCmd.Flags().Uint32("memory-limit", 0, util.WrapString("Memory limit of the guest in 64 KiB pages (0 = no limit)"))
}

func run(_ *cobra.Command, args []string) error {
	path, operation := args[0], args[1]
	ctx := context.Background()

	if err := common.InitLoggers(viper.GetString("log-level")); err != nil {
		return err
	}

	bundle, err := util.ReadBundle(viper.GetString("input"))
	if err != nil {
		return err
	}
	payload, err := wire.Encode(bundle)
	if err != nil {
		return err
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read module: %w", err)
	}

	// host calls are served by the fixture handlers
	fixture := actor.NewDispatcher(actor.Namespace)
	actor.FixtureHandlers().Register(fixture)

	opts := []wasm.Option{
		wasm.WithHostCallHandler(func(ctx context.Context, _, namespace, operation string, payload []byte) ([]byte, error) {
			if namespace != fixture.Namespace() {
				return nil, wire.NewOperationNotFound(operation)
			}
			return fixture.Invoke(ctx, operation, payload)
		}),
		wasm.WithLogger(common.WasmLogger(viper.GetString("log-level"))),
		wasm.WithStdout(os.Stdout),
		wasm.WithStderr(os.Stderr),
	}
	if pages := viper.GetUint32("memory-limit"); pages > 0 {
		opts = append(opts, wasm.WithMemoryLimitPages(pages))
	}

	engine, err := wasm.NewEngine(ctx, opts...)
	if err != nil {
		return err
	}
	defer engine.Close(ctx)

	mod, err := engine.Compile(ctx, filepath.Base(path), code)
	if err != nil {
		return err
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return err
	}

	resp, err := inst.Invoke(ctx, operation, payload)
	if err != nil {
		return err
	}

	// testDecode returns text, the other operations a bundle
	if operation == actor.OpTestDecode {
		var text string
		if err := wire.Decode(resp, &text); err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	var ret records.TestBundle
	if err := wire.Decode(resp, &ret); err != nil {
		return err
	}
	return util.PrintJSON(os.Stdout, ret)
}
