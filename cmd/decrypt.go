package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
	"github.com/gabisponciano/secure-ai-model/internal/model"
	"github.com/gabisponciano/secure-ai-model/internal/trustgate"
	"github.com/gabisponciano/secure-ai-model/internal/unwrap"
)

var decryptOutput string

func init() {
	registerCommonFlags(DecryptCmd)
	DecryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "write the decrypted model to this file instead of only checking it")
}

var DecryptCmd = &cobra.Command{
	Use:    "decrypt",
	Short:  "Unwraps the content key and decrypts the protected model",
	Long:   `Runs the trust gate, unwraps the content key with the private key, decrypts the model asset, and confirms it deserializes. The plaintext is kept in memory unless --output is given.`,
	PreRun: setup,
	Run: func(cmd *cobra.Command, args []string) {
		spinner, cleanup := startSpinner("Decrypting model asset...")
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

		privateKey, err := unwrap.LoadPrivateKey(config.Resolve(config.Paths.PrivateKey))
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to load the private key. Are you sure you have access?", err)
			exitCode = 1
			return
		}

		wrapped, err := readArtifact(config.Resolve(config.Paths.WrappedKey))
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to read the wrapped content key", err)
			exitCode = 1
			return
		}

		key, err := unwrap.UnwrapContentKey(wrapped, privateKey)
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to unwrap the content key. Are you sure you have access?", err)
			exitCode = 1
			return
		}
		defer unwrap.Zeroize(key)

		blob, err := readArtifact(config.Resolve(config.Paths.Model))
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to read the encrypted model", err)
			exitCode = 1
			return
		}

		plaintext, err := unwrap.DecryptAsset(blob, key)
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to decrypt the model. The asset may have been tampered with", err)
			exitCode = 1
			return
		}
		defer unwrap.Zeroize(plaintext)

		loader := &model.Loader{}
		net, err := loader.Load(plaintext)
		if err != nil {
			spinner.FinalMSG = failMessage("Decrypted model did not deserialize", err)
			exitCode = 1
			return
		}
		Logger.Infof("Model deserialized with %d layers", len(net.Layers))

		if decryptOutput != "" {
			if err := os.WriteFile(decryptOutput, plaintext, 0600); err != nil {
				spinner.FinalMSG = failMessage("Failed to write the decrypted model", err)
				exitCode = 1
				return
			}
			spinner.FinalMSG = color.GreenString("✓") + " Model decrypted successfully!\n" +
				"The plaintext was written to " + color.YellowString(decryptOutput) + "\n" +
				color.CyanString("→") + " Delete it as soon as you are done with it\n"
			return
		}

		spinner.FinalMSG = color.GreenString("✓") + " Model decrypted and deserialized successfully!\n" +
			color.CyanString("→") + " No plaintext was written to disk\n"
	},
}
