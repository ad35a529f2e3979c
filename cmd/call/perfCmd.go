package call

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/wActor/cmd/util"
	"github.com/ValentinKolb/wActor/lib/records"
	"github.com/ValentinKolb/wActor/rpc/common"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for wActor servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfSkip             = make([]string, 0)
)

// perfResult is the result of a single benchmark plus the latency distribution of its calls
type perfResult struct {
	bench testing.BenchmarkResult
	timer gometrics.Timer
}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. unary,decode)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the string of the unary-large test should be (in KB)"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {
	fmt.Println("Performance testing tool for wActor servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	ctx := context.Background()
	bundle := perfBundle(0)
	largeBundle := perfBundle(perfLargeValueSizeKB * 1024)

	tests := []struct {
		name string
		call func() error
	}{
		{"function", func() error {
			_, err := rpcHost.TestFunction(ctx, bundle.Required, bundle.Optional, bundle.Maps, bundle.Lists)
			return err
		}},
		{"unary", func() error {
			_, err := rpcHost.TestUnary(ctx, bundle)
			return err
		}},
		{"unary-large", func() error {
			_, err := rpcHost.TestUnary(ctx, largeBundle)
			return err
		}},
		{"decode", func() error {
			_, err := rpcHost.TestDecode(ctx, bundle)
			return err
		}},
	}

	// Create results map
	results := make(map[string]perfResult)

	for _, test := range tests {
		timer := gometrics.NewTimer()

		result := testing.Benchmark(func(b *testing.B) {
			if shouldSkip(test.name) {
				return
			}

			b.SetParallelism(perfNumThreads)

			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					start := time.Now()
					if err := test.call(); err != nil {
						log.Printf("(%s) - error calling actor: %v\n", test.name, err)
					}
					timer.UpdateSince(start)
				}
			})
		})

		results[test.name] = perfResult{bench: result, timer: timer}
		printResult(test.name, results[test.name])
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, util.GetClientConfig()); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	return slices.Contains(perfSkip, test)
}

// perfBundle creates a bundle with every part filled, the string value has the given size
func perfBundle(stringSize int) records.TestBundle {
	return records.TestBundle{
		Required: records.RequiredFields{
			BoolValue:   true,
			U64Value:    math.MaxUint64,
			S64Value:    math.MinInt64,
			F64Value:    math.Pi,
			StringValue: strings.Repeat("x", stringSize),
			BytesValue:  []byte("perf"),
			ObjectValue: records.Thing{Value: "perf"},
		},
		Maps: records.MapFields{
			MapStringPrimative: map[uint32]string{1: "one", 2: "two"},
			MapU64Primative:    map[uint32]uint64{1: 1, 2: 2},
		},
		Lists: records.ListFields{
			ListStrings: []string{"a", "b", "c"},
			ListU64s:    []uint64{1, 2, 3},
			ListObjects: []records.Thing{{Value: "perf"}},
		},
	}
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result perfResult) {
	if result.bench.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.bench.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)
	ps := result.timer.Percentiles([]float64{0.5, 0.99})

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\tp50 %s\tp99 %s\n",
		test, nsPerOp, time.Duration(nsPerOp), opsPerSec, time.Duration(ps[0]), time.Duration(ps[1]))
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]perfResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "P50Ns", "P99Ns", "Skipped",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"ActorID", "Serializer", "Transport",
		"Threads", "LargeValueSizeKB",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.bench.NsPerOp() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.bench.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}
		ps := result.timer.Percentiles([]float64{0.5, 0.99})

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			fmt.Sprintf("%.0f", ps[0]),
			fmt.Sprintf("%.0f", ps[1]),
			skipped,
			strings.Join(config.Transport.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.Transport.RetryCount),
			strconv.Itoa(config.Transport.ConnectionsPerEndpoint),
			strconv.FormatUint(util.GetActorID(), 10),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
