package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/gabisponciano/secure-ai-model/internal/audit"
	"github.com/gabisponciano/secure-ai-model/internal/configs"
	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
	"github.com/gabisponciano/secure-ai-model/internal/trustgate"
)

// exitCode is picked up by main after Execute returns. Commands set it
// instead of calling os.Exit so deferred spinner cleanup still runs.
var exitCode int

// ExitCode returns the process exit code the last command decided on.
func ExitCode() int {
	return exitCode
}

// readArtifact reads a protected artifact, mapping a missing file to
// the not-protected error so commands can suggest running protect.
func readArtifact(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotProtected, path)
	}
	return data, err
}

// gateAssets maps every manifest asset id to its resolved on-disk path.
func gateAssets(config *configs.Config) map[string]string {
	return map[string]string{
		config.Paths.Model:      config.Resolve(config.Paths.Model),
		config.Paths.WrappedKey: config.Resolve(config.Paths.WrappedKey),
	}
}

// abortMessage records the failed startup in the audit trail and
// returns the diagnostic shown to the operator.
func abortMessage(gate *trustgate.Gate, err error) string {
	audit.Log(audit.Entry{
		Operation: "startup",
		GateState: gate.State().String(),
		Outcome:   "fail",
		Error:     err.Error(),
	})

	return color.RedString("✗") + " Startup checks failed\n" +
		color.RedString("Error: ") + err.Error() + "\n" +
		color.CyanString("→") + " The execution environment is not trusted, refusing to continue\n"
}
