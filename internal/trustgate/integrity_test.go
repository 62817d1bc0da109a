package trustgate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

func writeTestFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
}

func TestVerifyIntegrityOk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.enc")
	writeTestFile(t, path, []byte("protected bytes"))

	digest, err := FileDigest(path)
	if err != nil {
		t.Fatalf("FileDigest failed: %v", err)
	}

	policy := &configs.TrustPolicy{
		IntegrityManifest: map[string]string{"model.enc": digest},
	}

	if err := VerifyIntegrity("model.enc", path, policy); err != nil {
		t.Errorf("Expected clean verification, got: %v", err)
	}
}

func TestVerifyIntegrityUppercaseManifestDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.enc")
	writeTestFile(t, path, []byte("protected bytes"))

	digest, err := FileDigest(path)
	if err != nil {
		t.Fatalf("FileDigest failed: %v", err)
	}

	// Manifests are lowercase hex by convention, but comparison is
	// case-insensitive to survive hand-edited entries.
	upper := ""
	for _, r := range digest {
		if r >= 'a' && r <= 'f' {
			r = r - 'a' + 'A'
		}
		upper += string(r)
	}
	policy := &configs.TrustPolicy{
		IntegrityManifest: map[string]string{"model.enc": upper},
	}

	if err := VerifyIntegrity("model.enc", path, policy); err != nil {
		t.Errorf("Expected case-insensitive match, got: %v", err)
	}
}

func TestVerifyIntegrityModifiedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.enc")
	content := []byte("protected bytes")
	writeTestFile(t, path, content)

	digest, err := FileDigest(path)
	if err != nil {
		t.Fatalf("FileDigest failed: %v", err)
	}
	policy := &configs.TrustPolicy{
		IntegrityManifest: map[string]string{"model.enc": digest},
	}

	// One changed byte must flip the result.
	content[0] ^= 0xFF
	writeTestFile(t, path, content)

	err = VerifyIntegrity("model.enc", path, policy)
	if !errors.Is(err, kerrors.ErrIntegrityViolation) {
		t.Errorf("Expected ErrIntegrityViolation, got: %v", err)
	}
}

func TestVerifyIntegrityMissingFile(t *testing.T) {
	policy := &configs.TrustPolicy{
		IntegrityManifest: map[string]string{"model.enc": "0000"},
	}

	err := VerifyIntegrity("model.enc", filepath.Join(t.TempDir(), "missing.enc"), policy)
	if !errors.Is(err, kerrors.ErrIntegrityViolation) {
		t.Errorf("Expected ErrIntegrityViolation for unreadable file, got: %v", err)
	}
}

func TestVerifyIntegrityNoManifestEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.enc")
	writeTestFile(t, path, []byte("protected bytes"))

	policy := &configs.TrustPolicy{IntegrityManifest: map[string]string{}}

	err := VerifyIntegrity("model.enc", path, policy)
	if !errors.Is(err, kerrors.ErrIntegrityViolation) {
		t.Errorf("Expected ErrIntegrityViolation for missing manifest entry, got: %v", err)
	}
}
