package trustgate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

// VerifyIntegrity computes the SHA-256 digest of the full file contents and
// compares it against the manifest entry for assetID. A missing manifest
// entry, an unreadable file, and a digest mismatch all yield the same
// ErrIntegrityViolation: availability failures are deliberately not
// distinguished from tampering.
func VerifyIntegrity(assetID string, filePath string, policy *configs.TrustPolicy) error {
	expected, ok := policy.IntegrityManifest[assetID]
	if !ok {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrIntegrityViolation, assetID,
			kerrors.ErrManifestEntryMissing)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("%w: %s: unreadable: %v", kerrors.ErrIntegrityViolation, assetID, err)
	}

	digest := sha256.Sum256(data)
	actual := hex.EncodeToString(digest[:])

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: %s: digest mismatch", kerrors.ErrIntegrityViolation, assetID)
	}

	return nil
}

// FileDigest returns the lowercase hex SHA-256 digest of a file, for
// building and refreshing manifest entries.
func FileDigest(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}
