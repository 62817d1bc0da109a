package cmd

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
	"github.com/gabisponciano/secure-ai-model/internal/ui"
	"github.com/gabisponciano/secure-ai-model/internal/unwrap"
)

var keysGenerateForce bool

func init() {
	keysGenerateCmd.Flags().BoolVarP(&keysGenerateForce, "force", "f", false, "overwrite an existing key pair")
}

var keysGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a fresh RSA-2048 key pair for the deployment",
	Run: func(cmd *cobra.Command, args []string) {
		spinner, cleanup := startSpinner("Generating RSA key pair...")
		defer cleanup()

		config, err := configs.LoadConfig()
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to load deployment config", err)
			exitCode = 1
			return
		}

		privatePath := config.Resolve(config.Paths.PrivateKey)
		publicPath := config.Resolve(config.Paths.PublicKey)

		if _, err := os.Stat(privatePath); err == nil && !keysGenerateForce {
			spinner.FinalMSG = color.RedString("✗") + " A private key already exists at " + color.YellowString(privatePath) + "\n" +
				color.CyanString("→") + " Run with " + color.YellowString("--force") + " to overwrite it\n"
			return
		}

		if err := os.MkdirAll(filepath.Dir(privatePath), 0700); err != nil {
			spinner.FinalMSG = failMessage("Failed to create key directory", err)
			exitCode = 1
			return
		}

		Logger.Infof("Writing private key to %s", privatePath)
		if err := unwrap.GenerateRSAKeyPair(privatePath, publicPath); err != nil {
			spinner.FinalMSG = failMessage("Failed to generate key pair", err)
			exitCode = 1
			return
		}

		spinner.FinalMSG = color.GreenString("✓") + " RSA key pair generated\n" +
			"The following files were created:" + ui.FormatPaths([]string{privatePath, publicPath}) +
			color.CyanString("→") + " Keep the private key out of the deployment you ship\n"
	},
}
