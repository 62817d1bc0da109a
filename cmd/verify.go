package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/audit"
	"github.com/gabisponciano/secure-ai-model/internal/configs"
	"github.com/gabisponciano/secure-ai-model/internal/trustgate"
	"github.com/gabisponciano/secure-ai-model/internal/ui"
	"github.com/gabisponciano/secure-ai-model/internal/unwrap"
)

var VerifyCmd = &cobra.Command{
	Use:    "verify",
	Short:  "Runs every startup check and reports each result",
	Long:   `Runs the integrity, anti-debug and anti-instrumentation checks one by one and reports each outcome, instead of stopping at the first failure the way startup does.

Exit codes:
  0 - All checks passed
  1 - One or more checks failed`,
	PreRun: setup,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configs.LoadConfig()
		if err != nil {
			fmt.Println(failMessage("Failed to load deployment config", err))
			exitCode = 1
			return
		}

		failures := 0
		report := func(name string, err error) {
			if err != nil {
				failures++
				fmt.Println(ui.Error.Sprint("✗") + " " + name + ": " + err.Error())
			} else {
				fmt.Println(ui.Success.Sprint("✓") + " " + name)
			}
			outcome := "pass"
			errText := ""
			if err != nil {
				outcome = "fail"
				errText = err.Error()
			}
			audit.Log(audit.Entry{Operation: "verify", Asset: name, Outcome: outcome, Error: errText})
		}

		assets := gateAssets(config)
		ids := make([]string, 0, len(config.Policy.IntegrityManifest))
		for id := range config.Policy.IntegrityManifest {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		if len(ids) == 0 {
			fmt.Println(ui.Warning.Sprint("⚠") + " Integrity manifest is empty, run " + ui.Code.Sprint("securemodel protect") + " first")
		}
		for _, id := range ids {
			path, ok := assets[id]
			if !ok {
				path = id
			}
			report("integrity of "+id, trustgate.VerifyIntegrity(id, path, &config.Policy))
		}

		report("no debugger attached", trustgate.DetectDebugger(&config.Policy))
		report("no instrumentation present", trustgate.DetectInstrumentation(&config.Policy))

		_, err = unwrap.LoadPublicKey(config.Resolve(config.Paths.PublicKey))
		report("public key readable", err)
		if _, err := os.Stat(config.Resolve(config.Paths.WrappedKey)); err != nil {
			report("wrapped content key present", err)
		} else {
			report("wrapped content key present", nil)
		}

		if failures > 0 {
			fmt.Println(ui.Error.Sprint("✗") + fmt.Sprintf(" %d check(s) failed", failures))
			exitCode = 1
			return
		}
		fmt.Println(ui.Success.Sprint("✓") + " All checks passed")
	},
}

func init() {
	registerCommonFlags(VerifyCmd)
}
