package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gabisponciano/secure-ai-model/internal/audit"
	"github.com/gabisponciano/secure-ai-model/internal/configs"
	"github.com/gabisponciano/secure-ai-model/internal/trustgate"
)

// The model the pipeline tests protect and benchmark: a 2 -> 3 -> 2
// classifier carried as a full model document.
const testModelJSON = `{
	"arch": "mlp",
	"layers": [
		{"name": "hidden", "weights": [[1, 0], [0, 1], [1, 1]], "biases": [0, 0, -10]},
		{"name": "output", "weights": [[1, 1, 1], [0, 0, 0]], "biases": [0.5, 0]}
	]
}`

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "securemodel"}
	root.AddCommand(InitCmd)
	root.AddCommand(KeysCmd)
	root.AddCommand(ProtectCmd)
	root.AddCommand(DecryptCmd)
	root.AddCommand(VerifyCmd)
	root.AddCommand(BenchmarkCmd)
	root.AddCommand(LogCmd)
	return root
}

func execute(t *testing.T, root *cobra.Command, args ...string) {
	t.Helper()

	root.SetArgs(args)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("Command %v failed: %v\n%s", args, err, out.String())
	}
}

// useTestDeployment points the settings at a temp deployment and resets
// the command-level state the singleton commands share.
func useTestDeployment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	original := configs.Settings
	configs.SetDeploymentPath(tempDir)
	t.Cleanup(func() {
		configs.Settings = original
		exitCode = 0
		deploymentRoot = ""
		verbose = false
		debug = false
		keysGenerateForce = false
		decryptOutput = ""
		benchmarkRuns = 0
		benchmarkOutput = ""
	})
	return tempDir
}

// softenPolicy empties the detection blocklists so the pipeline tests
// only depend on state the test itself controls, not on what else
// happens to run on the host.
func softenPolicy(t *testing.T) {
	t.Helper()

	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	config.Policy.ForbiddenModuleSubstrings = nil
	config.Policy.ForbiddenProcessSignatures = nil
	config.Policy.DebuggerNameFragments = nil
	config.Policy.DebugThreadPrefixes = nil
	config.Policy.DebugEnvVars = nil
	config.Policy.AllowedPathRoots = []string{"/"}
	config.Policy.TimingIterations = 1000
	config.Policy.TimingThresholdMS = 10_000
	if err := configs.SaveConfig(config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
}

func protectTestModel(t *testing.T, root *cobra.Command, tempDir string) string {
	t.Helper()

	modelJSON := filepath.Join(tempDir, "model.json")
	if err := os.WriteFile(modelJSON, []byte(testModelJSON), 0644); err != nil {
		t.Fatalf("Failed to write model: %v", err)
	}

	execute(t, root, "init")
	softenPolicy(t)
	execute(t, root, "keys", "generate")
	execute(t, root, "protect", modelJSON)
	return modelJSON
}

func TestPipelineProtectVerifyDecrypt(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pipeline tests rely on procfs paths")
	}

	tempDir := useTestDeployment(t)
	root := newTestRoot()
	protectTestModel(t, root, tempDir)

	// Artifacts are on disk and the manifest covers both of them.
	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	for _, rel := range []string{config.Paths.Model, config.Paths.WrappedKey} {
		if _, err := os.Stat(config.Resolve(rel)); err != nil {
			t.Errorf("Expected artifact %s on disk: %v", rel, err)
		}
		if _, ok := config.Policy.IntegrityManifest[rel]; !ok {
			t.Errorf("Expected manifest entry for %s", rel)
		}
	}

	execute(t, root, "verify")
	if exitCode != 0 {
		t.Fatalf("Expected verify to pass, exit code %d", exitCode)
	}

	decrypted := filepath.Join(tempDir, "decrypted.json")
	execute(t, root, "decrypt", "--output", decrypted)
	if exitCode != 0 {
		t.Fatalf("Expected decrypt to pass, exit code %d", exitCode)
	}
	data, err := os.ReadFile(decrypted)
	if err != nil {
		t.Fatalf("Failed to read decrypted model: %v", err)
	}
	if string(data) != testModelJSON {
		t.Error("Decrypted model does not match the original")
	}
}

func TestPipelineBenchmark(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pipeline tests rely on procfs paths")
	}

	tempDir := useTestDeployment(t)
	root := newTestRoot()
	protectTestModel(t, root, tempDir)

	// Shrink the session so the test stays fast, and match the input
	// shape to the test model.
	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	config.Benchmark.Runs = 3
	config.Benchmark.InputShape = []int{1, 2}
	if err := configs.SaveConfig(config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	execute(t, root, "benchmark")
	if exitCode != 0 {
		t.Fatalf("Expected benchmark to pass, exit code %d", exitCode)
	}

	entries, err := os.ReadDir(filepath.Join(tempDir, "results"))
	if err != nil {
		t.Fatalf("Failed to list results: %v", err)
	}
	foundCSV := false
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "benchmark-") && strings.HasSuffix(entry.Name(), ".csv") {
			foundCSV = true
			data, err := os.ReadFile(filepath.Join(tempDir, "results", entry.Name()))
			if err != nil {
				t.Fatalf("Failed to read results CSV: %v", err)
			}
			lines := strings.Count(strings.TrimSpace(string(data)), "\n") + 1
			if lines != 4 {
				t.Errorf("Expected header plus 3 rows, got %d lines", lines)
			}
		}
	}
	if !foundCSV {
		t.Error("Expected a benchmark CSV in the results directory")
	}

	// The session landed in the audit trail.
	trail, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read audit trail: %v", err)
	}
	foundSession := false
	for _, entry := range trail {
		if entry.Operation == "benchmark" && entry.Runs == 3 {
			foundSession = true
		}
	}
	if !foundSession {
		t.Error("Expected the benchmark session in the audit trail")
	}
}

func TestPipelineTamperedAssetAborts(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pipeline tests rely on procfs paths")
	}

	tempDir := useTestDeployment(t)
	root := newTestRoot()
	protectTestModel(t, root, tempDir)

	// Flip a byte in the encrypted model after its digest was recorded.
	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	modelPath := config.Resolve(config.Paths.Model)
	blob, err := os.ReadFile(modelPath)
	if err != nil {
		t.Fatalf("Failed to read encrypted model: %v", err)
	}
	blob[len(blob)/2] ^= 0x01
	if err := os.WriteFile(modelPath, blob, 0644); err != nil {
		t.Fatalf("Failed to write tampered model: %v", err)
	}

	execute(t, root, "benchmark")
	if exitCode != 1 {
		t.Errorf("Expected benchmark to abort on tampered asset, exit code %d", exitCode)
	}

	// The abort is in the audit trail.
	trail, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read audit trail: %v", err)
	}
	foundAbort := false
	for _, entry := range trail {
		if entry.Operation == "startup" && entry.Outcome == "fail" && entry.GateState == "aborted" {
			foundAbort = true
		}
	}
	if !foundAbort {
		t.Error("Expected the aborted startup in the audit trail")
	}
}

func TestPipelineDecryptFailureExitsNonZero(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pipeline tests rely on procfs paths")
	}

	tempDir := useTestDeployment(t)
	root := newTestRoot()
	protectTestModel(t, root, tempDir)

	// Tamper with the ciphertext and refresh its manifest digest, so
	// the gate passes and the failure lands in tag verification.
	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	modelPath := config.Resolve(config.Paths.Model)
	blob, err := os.ReadFile(modelPath)
	if err != nil {
		t.Fatalf("Failed to read encrypted model: %v", err)
	}
	blob[len(blob)/2] ^= 0x01
	if err := os.WriteFile(modelPath, blob, 0644); err != nil {
		t.Fatalf("Failed to write tampered model: %v", err)
	}
	digest, err := trustgate.FileDigest(modelPath)
	if err != nil {
		t.Fatalf("Failed to digest tampered model: %v", err)
	}
	config.Policy.IntegrityManifest[config.Paths.Model] = digest
	if err := configs.SaveConfig(config); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	execute(t, root, "decrypt")
	if exitCode != 1 {
		t.Errorf("Expected decrypt to exit non-zero on authentication failure, exit code %d", exitCode)
	}

	exitCode = 0
	execute(t, root, "benchmark")
	if exitCode != 1 {
		t.Errorf("Expected benchmark to exit non-zero on authentication failure, exit code %d", exitCode)
	}
}

func TestKeysGenerateRefusesOverwrite(t *testing.T) {
	useTestDeployment(t)
	root := newTestRoot()

	execute(t, root, "init")
	execute(t, root, "keys", "generate")

	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	privatePath := config.Resolve(config.Paths.PrivateKey)
	before, err := os.ReadFile(privatePath)
	if err != nil {
		t.Fatalf("Failed to read private key: %v", err)
	}

	// Without --force the existing key must survive.
	execute(t, root, "keys", "generate")
	after, err := os.ReadFile(privatePath)
	if err != nil {
		t.Fatalf("Failed to re-read private key: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Expected the private key to be left alone without --force")
	}

	execute(t, root, "keys", "generate", "--force")
	after, err = os.ReadFile(privatePath)
	if err != nil {
		t.Fatalf("Failed to re-read private key: %v", err)
	}
	if bytes.Equal(before, after) {
		t.Error("Expected --force to replace the private key")
	}
}
