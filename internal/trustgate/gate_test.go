package trustgate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

// writeCheckedAsset drops a file in a temp dir and registers its
// digest in the policy manifest under the given asset id.
func writeCheckedAsset(t *testing.T, dir, id string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, id)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write asset: %v", err)
	}
	return path
}

func TestGateStartupReady(t *testing.T) {
	tempDir := t.TempDir()
	path := writeCheckedAsset(t, tempDir, "model.enc", []byte("encrypted model bytes"))

	digest, err := FileDigest(path)
	if err != nil {
		t.Fatalf("Failed to digest asset: %v", err)
	}

	policy := benignPolicy()
	policy.IntegrityManifest = map[string]string{"model.enc": digest}

	gate := New(policy)
	if gate.State() != StateInit {
		t.Errorf("Expected initial state %v, got %v", StateInit, gate.State())
	}

	if err := gate.Startup(map[string]string{"model.enc": path}); err != nil {
		t.Fatalf("Expected startup to succeed, got: %v", err)
	}
	if !gate.Ready() {
		t.Errorf("Expected gate to be ready, state is %v", gate.State())
	}
}

func TestGateStartupRefusesRerun(t *testing.T) {
	gate := New(benignPolicy())
	if err := gate.Startup(nil); err != nil {
		t.Fatalf("Expected first startup to succeed, got: %v", err)
	}

	if err := gate.Startup(nil); err == nil {
		t.Error("Expected second startup to be refused")
	}
}

func TestGateStartupIntegrityAbort(t *testing.T) {
	tempDir := t.TempDir()
	path := writeCheckedAsset(t, tempDir, "model.enc", []byte("encrypted model bytes"))

	policy := benignPolicy()
	policy.IntegrityManifest = map[string]string{
		"model.enc": "0000000000000000000000000000000000000000000000000000000000000000",
	}

	gate := New(policy)
	err := gate.Startup(map[string]string{"model.enc": path})
	if !errors.Is(err, kerrors.ErrIntegrityViolation) {
		t.Errorf("Expected ErrIntegrityViolation, got: %v", err)
	}
	if gate.State() != StateAborted {
		t.Errorf("Expected state %v after failure, got %v", StateAborted, gate.State())
	}
	if gate.Ready() {
		t.Error("Expected aborted gate to not be ready")
	}
}

func TestGateStartupDebuggerAbort(t *testing.T) {
	t.Setenv("SECUREMODEL_GATE_TEST_MARKER", "1")

	policy := benignPolicy()
	policy.DebugEnvVars = []string{"SECUREMODEL_GATE_TEST_MARKER"}

	gate := New(policy)
	err := gate.Startup(nil)
	if !errors.Is(err, kerrors.ErrDebuggerDetected) {
		t.Errorf("Expected ErrDebuggerDetected, got: %v", err)
	}
	if gate.State() != StateAborted {
		t.Errorf("Expected state %v after failure, got %v", StateAborted, gate.State())
	}
}
