package unwrap

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/crypto/ssh"

	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

func TestGenerateRSAKeyPair(t *testing.T) {
	tmpDir := t.TempDir()
	privatePath := filepath.Join(tmpDir, "key", "private.pem")
	publicPath := filepath.Join(tmpDir, "key", "public.pem")

	if err := GenerateRSAKeyPair(privatePath, publicPath); err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	priv, err := LoadPrivateKey(privatePath)
	if err != nil {
		t.Fatalf("LoadPrivateKey failed: %v", err)
	}
	pub, err := LoadPublicKey(publicPath)
	if err != nil {
		t.Fatalf("LoadPublicKey failed: %v", err)
	}

	if priv.N.Cmp(pub.N) != 0 {
		t.Error("Private and public key moduli do not match")
	}
	if priv.Size() != RSAKeySize/8 {
		t.Errorf("Expected %d-byte modulus, got %d", RSAKeySize/8, priv.Size())
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(privatePath)
		if err != nil {
			t.Fatalf("Stat private key failed: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("Expected private key permissions 0600, got %o", info.Mode().Perm())
		}
	}
}

func TestLoadPrivateKeyPKCS8(t *testing.T) {
	priv := getTestKeyPair(t)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("MarshalPKCS8PrivateKey failed: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	path := filepath.Join(t.TempDir(), "pkcs8.pem")
	if err := os.WriteFile(path, pemBytes, 0600); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}

	loaded, err := LoadPrivateKey(path)
	if err != nil {
		t.Fatalf("LoadPrivateKey failed for PKCS#8: %v", err)
	}
	if loaded.N.Cmp(priv.N) != 0 {
		t.Error("Loaded PKCS#8 key modulus does not match original")
	}
}

func TestLoadPrivateKeyOpenSSH(t *testing.T) {
	priv := getTestKeyPair(t)

	pemBlock, err := ssh.MarshalPrivateKey(priv, "")
	if err != nil {
		t.Fatalf("ssh.MarshalPrivateKey failed: %v", err)
	}
	pemBytes := pem.EncodeToMemory(pemBlock)

	path := filepath.Join(t.TempDir(), "id_rsa")
	if err := os.WriteFile(path, pemBytes, 0600); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}

	loaded, err := LoadPrivateKey(path)
	if err != nil {
		t.Fatalf("LoadPrivateKey failed for OpenSSH format: %v", err)
	}
	if loaded.N.Cmp(priv.N) != 0 {
		t.Error("Loaded OpenSSH key modulus does not match original")
	}
	if loaded.E != priv.E {
		t.Error("Loaded OpenSSH key exponent does not match original")
	}
}

func TestLoadPrivateKeyMissing(t *testing.T) {
	_, err := LoadPrivateKey(filepath.Join(t.TempDir(), "nope.pem"))
	if !errors.Is(err, kerrors.ErrPrivateKeyNotFound) {
		t.Errorf("Expected ErrPrivateKeyNotFound, got %v", err)
	}
}

func TestLoadPrivateKeyGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pem")
	if err := os.WriteFile(path, []byte("not a pem file"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := LoadPrivateKey(path)
	if !errors.Is(err, kerrors.ErrInvalidPrivateKey) {
		t.Errorf("Expected ErrInvalidPrivateKey, got %v", err)
	}
}

func TestLoadPublicKeyMissing(t *testing.T) {
	_, err := LoadPublicKey(filepath.Join(t.TempDir(), "nope.pub"))
	if !errors.Is(err, kerrors.ErrPublicKeyNotFound) {
		t.Errorf("Expected ErrPublicKeyNotFound, got %v", err)
	}
}
