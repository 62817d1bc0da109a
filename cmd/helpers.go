package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
	logger "github.com/gabisponciano/secure-ai-model/internal/logging"
	"github.com/gabisponciano/secure-ai-model/internal/ui"
)

var (
	verbose        bool
	debug          bool
	deploymentRoot string
	Logger         logger.Logger
)

// setup builds the logger from the shared flags and repoints the
// deployment settings when --deployment was given. Every command runs
// it first.
func setup(cmd *cobra.Command, args []string) {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	if deploymentRoot != "" {
		configs.SetDeploymentPath(deploymentRoot)
	}
	Logger.Debugf("Using deployment root: %s", configs.Settings.DeploymentPath)
}

// registerCommonFlags wires the flags every command shares onto cmd.
// The commands share the backing variables, so the last parsed command
// wins, which is fine since only one runs per invocation.
func registerCommonFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	cmd.PersistentFlags().StringVar(&deploymentRoot, "deployment", "", "deployment root (defaults to $SECUREMODEL_HOME or the working directory)")
}

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function appends one before printing so output formatting stays
// consistent across commands.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

func failMessage(what string, err error) string {
	return color.RedString("✗") + " " + what + "\n" +
		color.RedString("Error: ") + err.Error() + "\n"
}
