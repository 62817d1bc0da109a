package cmd

import (
	"crypto/rsa"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/audit"
	"github.com/gabisponciano/secure-ai-model/internal/bench"
	"github.com/gabisponciano/secure-ai-model/internal/configs"
	"github.com/gabisponciano/secure-ai-model/internal/model"
	"github.com/gabisponciano/secure-ai-model/internal/trustgate"
	"github.com/gabisponciano/secure-ai-model/internal/unwrap"
)

var (
	benchmarkRuns   int
	benchmarkOutput string
)

func init() {
	registerCommonFlags(BenchmarkCmd)
	BenchmarkCmd.Flags().IntVarP(&benchmarkRuns, "runs", "n", 0, "number of benchmark iterations (defaults to the configured value)")
	BenchmarkCmd.Flags().StringVarP(&benchmarkOutput, "output", "o", "", "results directory (defaults to the configured value)")
}

var BenchmarkCmd = &cobra.Command{
	Use:    "benchmark",
	Short:  "Times the unwrap, decrypt, load and inference stages over repeated runs",
	Long:   `Runs the trust gate, then drives the full pipeline the configured number of times and writes the per-run stage timings to a CSV file in the results directory.`,
	PreRun: setup,
	Run: func(cmd *cobra.Command, args []string) {
		spinner, cleanup := startSpinner("Running benchmark...")
		defer cleanup()

		config, err := configs.LoadConfig()
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to load deployment config", err)
			exitCode = 1
			return
		}

		gate := trustgate.New(&config.Policy)
		if err := gate.Startup(gateAssets(config)); err != nil {
			spinner.FinalMSG = abortMessage(gate, err)
			exitCode = 1
			return
		}
		Logger.Infof("Trust gate ready, state: %s", gate.State())
		audit.Log(audit.Entry{Operation: "startup", GateState: gate.State().String(), Outcome: "pass"})

		privateKey, err := unwrap.LoadPrivateKey(config.Resolve(config.Paths.PrivateKey))
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to load the private key. Are you sure you have access?", err)
			exitCode = 1
			return
		}

		input, err := model.NewSyntheticInput(config.Benchmark.InputShape)
		if err != nil {
			spinner.FinalMSG = failMessage("Invalid benchmark input shape", err)
			exitCode = 1
			return
		}

		harness, err := newPipelineHarness(config, privateKey, input)
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to set up the benchmark", err)
			exitCode = 1
			return
		}

		runs := config.Benchmark.Runs
		if benchmarkRuns > 0 {
			runs = benchmarkRuns
		}

		var session *bench.Session
		if config.Benchmark.ReloadEachRun {
			session, err = harness.Run(runs)
		} else {
			session, err = harness.RunShared(runs)
		}
		if err != nil {
			spinner.FinalMSG = failMessage("Benchmark aborted", err)
			exitCode = 1
			return
		}

		resultsDir := config.Resolve(config.Paths.Results)
		if benchmarkOutput != "" {
			resultsDir = benchmarkOutput
		}
		path, err := bench.SaveCSV(resultsDir, session)
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to write benchmark results", err)
			exitCode = 1
			return
		}

		audit.Log(audit.Entry{Operation: "benchmark", Session: session.ID, Runs: runs, Output: path})

		mean := session.Mean()
		spinner.FinalMSG = color.GreenString("✓") + fmt.Sprintf(" Benchmark completed (%d runs)\n", len(session.Runs)) +
			fmt.Sprintf("	unwrap key: %10.3fms\n", mean.UnwrapKeyTime.Seconds()*1000) +
			fmt.Sprintf("	decrypt:    %10.3fms\n", mean.DecryptTime.Seconds()*1000) +
			fmt.Sprintf("	load:       %10.3fms\n", mean.LoadTime.Seconds()*1000) +
			fmt.Sprintf("	inference:  %10.3fms\n", mean.InferenceTime.Seconds()*1000) +
			fmt.Sprintf("	total:      %10.3fms\n", mean.TotalTime.Seconds()*1000) +
			color.CyanString("→") + " Results written to " + color.YellowString(path) + "\n"
	},
}

// newPipelineHarness wires the real pipeline stages into the timing
// harness. With reload_each_run off, the encrypted inputs are read
// once and reused.
func newPipelineHarness(config *configs.Config, privateKey *rsa.PrivateKey, input [][]float64) (*bench.Harness, error) {
	wrappedPath := config.Resolve(config.Paths.WrappedKey)
	modelPath := config.Resolve(config.Paths.Model)

	readWrapped := func() ([]byte, error) { return readArtifact(wrappedPath) }
	readAsset := func() ([]byte, error) { return readArtifact(modelPath) }

	if !config.Benchmark.ReloadEachRun {
		wrapped, err := readArtifact(wrappedPath)
		if err != nil {
			return nil, err
		}
		blob, err := readArtifact(modelPath)
		if err != nil {
			return nil, err
		}
		readWrapped = func() ([]byte, error) { return wrapped, nil }
		readAsset = func() ([]byte, error) { return blob, nil }
	}

	loader := &model.Loader{}
	return &bench.Harness{
		WrappedKey: readWrapped,
		Asset:      readAsset,
		Unwrap: func(w []byte) ([]byte, error) {
			return unwrap.UnwrapContentKey(w, privateKey)
		},
		Decrypt: func(key, blob []byte) ([]byte, error) {
			return unwrap.DecryptAsset(blob, key)
		},
		Load: loader.Load,
		Infer: func(net *model.Network) error {
			return model.Consume(net, input)
		},
	}, nil
}
