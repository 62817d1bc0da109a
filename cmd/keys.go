package cmd

import (
	"github.com/spf13/cobra"
)

var KeysCmd = &cobra.Command{
	Use:              "keys",
	Short:            "Manage the RSA key pair that wraps the model content key",
	Long:             `Generates and inspects the RSA-2048 key pair used to wrap and unwrap the symmetric content key protecting the model.`,
	PersistentPreRun: setup,
}

func init() {
	registerCommonFlags(KeysCmd)
	KeysCmd.AddCommand(keysGenerateCmd)
}
