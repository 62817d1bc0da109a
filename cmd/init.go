package cmd

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
)

var InitCmd = &cobra.Command{
	Use:    "init",
	Short:  "Lays out a new deployment with the default configuration",
	PreRun: setup,
	Run: func(cmd *cobra.Command, args []string) {
		spinner, cleanup := startSpinner("Initializing deployment...")
		defer cleanup()

		if _, err := os.Stat(configs.Settings.ConfigPath); err == nil {
			spinner.FinalMSG = color.RedString("✗") + " A deployment already exists at " + color.YellowString(configs.Settings.DeploymentPath) + "\n"
			return
		}

		config := configs.DefaultConfig()
		for _, rel := range []string{config.Paths.Model, config.Paths.WrappedKey} {
			dir := filepath.Dir(config.Resolve(rel))
			if err := os.MkdirAll(dir, 0755); err != nil {
				spinner.FinalMSG = failMessage("Failed to create "+dir, err)
				exitCode = 1
				return
			}
		}
		if err := os.MkdirAll(config.Resolve(config.Paths.Results), 0755); err != nil {
			spinner.FinalMSG = failMessage("Failed to create the results directory", err)
			exitCode = 1
			return
		}
		if err := configs.SaveConfig(config); err != nil {
			spinner.FinalMSG = failMessage("Failed to write the deployment config", err)
			exitCode = 1
			return
		}

		spinner.FinalMSG = color.GreenString("✓") + " Deployment initialized at " + color.YellowString(configs.Settings.DeploymentPath) + "\n" +
			color.CyanString("→") + " Next, run " + color.YellowString("securemodel keys generate") + " and " + color.YellowString("securemodel protect <model.json>") + "\n"
	},
}

func init() {
	registerCommonFlags(InitCmd)
}
