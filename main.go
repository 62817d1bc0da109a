package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "securemodel",
	Short: "securemodel - A CLI for protecting, verifying, and benchmarking encrypted model assets.",
	Long: `securemodel encrypts serialized model assets with a wrapped content key,
refuses to unwrap them in debugged or instrumented environments, and
benchmarks the cost of the whole unwrap pipeline.

Features:
  - Encrypt a model with AES-128-GCM under an RSA-wrapped content key
  - Check asset integrity, debugger presence, and instrumentation at startup
  - Benchmark the unwrap, decrypt, load, and inference stages

Usage:
  securemodel <command> [flags]

Available Commands:
  init       Lay out a new deployment
  keys       Manage the RSA key pair
  protect    Encrypt a model asset
  decrypt    Unwrap and decrypt the protected model
  verify     Run every startup check and report each result
  benchmark  Time the unwrap pipeline over repeated runs
  log        Show the audit trail

Run 'securemodel help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Run 'securemodel --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.InitCmd)
	rootCmd.AddCommand(cmd.KeysCmd)
	rootCmd.AddCommand(cmd.ProtectCmd)
	rootCmd.AddCommand(cmd.DecryptCmd)
	rootCmd.AddCommand(cmd.VerifyCmd)
	rootCmd.AddCommand(cmd.BenchmarkCmd)
	rootCmd.AddCommand(cmd.LogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	os.Exit(cmd.ExitCode())
}
