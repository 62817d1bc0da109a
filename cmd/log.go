package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/audit"
)

var logTail int

func init() {
	registerCommonFlags(LogCmd)
	LogCmd.Flags().IntVarP(&logTail, "tail", "t", 20, "number of most recent entries to show (0 for all)")
}

var LogCmd = &cobra.Command{
	Use:    "log",
	Short:  "Shows the audit trail of startup checks and benchmark sessions",
	PreRun: setup,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := audit.ReadEntries()
		if err != nil {
			fmt.Println(failMessage("Failed to read the audit trail", err))
			exitCode = 1
			return
		}
		if len(entries) == 0 {
			fmt.Println(color.YellowString("⚠") + " The audit trail is empty")
			return
		}

		if logTail > 0 && len(entries) > logTail {
			entries = entries[len(entries)-logTail:]
		}

		for _, entry := range entries {
			mark := color.GreenString("✓")
			if entry.Outcome == "fail" {
				mark = color.RedString("✗")
			}
			line := fmt.Sprintf("%s %s  %s", mark, entry.Timestamp, entry.Operation)
			if entry.Asset != "" {
				line += "  " + color.YellowString(entry.Asset)
			}
			if entry.GateState != "" {
				line += "  state=" + entry.GateState
			}
			if entry.Runs > 0 {
				line += fmt.Sprintf("  runs=%d", entry.Runs)
			}
			if entry.Error != "" {
				line += "  " + color.RedString(entry.Error)
			}
			fmt.Println(line)
		}
	},
}
