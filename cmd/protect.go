package cmd

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/audit"
	"github.com/gabisponciano/secure-ai-model/internal/configs"
	"github.com/gabisponciano/secure-ai-model/internal/trustgate"
	"github.com/gabisponciano/secure-ai-model/internal/ui"
	"github.com/gabisponciano/secure-ai-model/internal/unwrap"
)

var ProtectCmd = &cobra.Command{
	Use:    "protect <model.json>",
	Short:  "Encrypts a model asset and wraps a fresh content key for it",
	Long:   `Encrypts the given serialized model with a fresh AES-128-GCM content key, wraps that key with the deployment's RSA public key, and records both artifact digests in the integrity manifest.`,
	Args:   cobra.ExactArgs(1),
	PreRun: setup,
	Run: func(cmd *cobra.Command, args []string) {
		spinner, cleanup := startSpinner("Protecting model asset...")
		defer cleanup()

		config, err := configs.LoadConfig()
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to load deployment config", err)
			exitCode = 1
			return
		}

		plaintext, err := os.ReadFile(args[0])
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to read the model asset", err)
			exitCode = 1
			return
		}
		defer unwrap.Zeroize(plaintext)

		publicKey, err := unwrap.LoadPublicKey(config.Resolve(config.Paths.PublicKey))
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Failed to load the deployment public key\n" +
				color.CyanString("→") + " Run " + color.YellowString("securemodel keys generate") + " first\n" +
				color.RedString("Error: ") + err.Error() + "\n"
			exitCode = 1
			return
		}

		key, err := unwrap.NewContentKey()
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to generate a content key", err)
			exitCode = 1
			return
		}
		defer unwrap.Zeroize(key)

		blob, err := unwrap.EncryptAsset(plaintext, key)
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to encrypt the model asset", err)
			exitCode = 1
			return
		}

		wrapped, err := unwrap.WrapContentKey(key, publicKey)
		if err != nil {
			spinner.FinalMSG = failMessage("Failed to wrap the content key", err)
			exitCode = 1
			return
		}

		modelPath := config.Resolve(config.Paths.Model)
		wrappedPath := config.Resolve(config.Paths.WrappedKey)

		for _, artifact := range []struct {
			path string
			data []byte
		}{
			{modelPath, blob},
			{wrappedPath, wrapped},
		} {
			if err := os.MkdirAll(filepath.Dir(artifact.path), 0755); err != nil {
				spinner.FinalMSG = failMessage("Failed to create the artifact directory", err)
				exitCode = 1
				return
			}
			if err := os.WriteFile(artifact.path, artifact.data, 0644); err != nil {
				spinner.FinalMSG = failMessage("Failed to write "+artifact.path, err)
				exitCode = 1
				return
			}
			Logger.Infof("Wrote %s (%d bytes)", artifact.path, len(artifact.data))
		}

		// Refresh the integrity manifest so the trust gate accepts the new
		// artifacts on the next startup.
		if config.Policy.IntegrityManifest == nil {
			config.Policy.IntegrityManifest = map[string]string{}
		}
		for id, path := range map[string]string{
			config.Paths.Model:      modelPath,
			config.Paths.WrappedKey: wrappedPath,
		} {
			digest, err := trustgate.FileDigest(path)
			if err != nil {
				spinner.FinalMSG = failMessage("Failed to digest "+path, err)
				exitCode = 1
				return
			}
			config.Policy.IntegrityManifest[id] = digest
		}
		if err := configs.SaveConfig(config); err != nil {
			spinner.FinalMSG = failMessage("Failed to update the integrity manifest", err)
			exitCode = 1
			return
		}

		audit.Log(audit.Entry{Operation: "protect", Asset: config.Paths.Model, Outcome: "pass"})

		spinner.FinalMSG = color.GreenString("✓") + " Model asset protected\n" +
			"The following files were created:" + ui.FormatPaths([]string{modelPath, wrappedPath}) +
			color.CyanString("→") + " The integrity manifest in " + color.YellowString(configs.Settings.ConfigPath) + " was updated\n"
	},
}

func init() {
	registerCommonFlags(ProtectCmd)
}
