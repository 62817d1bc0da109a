package unwrap

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"io"

	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

const (
	// ContentKeySize is the AES-128 content key length in bytes.
	ContentKeySize = 16

	// NonceSize is the GCM nonce length prepended to the encrypted asset.
	NonceSize = 12

	// TagSize is the GCM authentication tag length trailing the ciphertext.
	TagSize = 16
)

// NewContentKey generates a fresh random content key.
func NewContentKey() ([]byte, error) {
	key := make([]byte, ContentKeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate content key: %w", err)
	}
	return key, nil
}

// WrapContentKey encrypts the content key under the RSA public key using
// OAEP with SHA-256 and MGF1-SHA-256, no label.
func WrapContentKey(key []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	if len(key) != ContentKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d",
			kerrors.ErrInvalidKeyLength, ContentKeySize, len(key))
	}
	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, publicKey, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap content key: %w", err)
	}
	return wrapped, nil
}

// UnwrapContentKey recovers the content key from its RSA-OAEP wrapping.
// A wrapped blob of the wrong length for the modulus, or one that fails
// padding validation, yields ErrUnwrap; OAEP never silently returns a wrong
// key.
func UnwrapContentKey(wrapped []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	if len(wrapped) != privateKey.Size() {
		return nil, fmt.Errorf("%w: wrapped key is %d bytes, modulus needs %d",
			kerrors.ErrUnwrap, len(wrapped), privateKey.Size())
	}

	key, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, wrapped, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrUnwrap, err)
	}

	if len(key) != ContentKeySize {
		Zeroize(key)
		return nil, fmt.Errorf("%w: unwrapped to %d bytes, expected %d",
			kerrors.ErrUnwrap, len(key), ContentKeySize)
	}

	return key, nil
}

// EncryptAsset seals the plaintext under the content key and returns the
// full on-disk blob: [12-byte nonce][ciphertext || 16-byte tag].
func EncryptAsset(plaintext []byte, key []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends ciphertext||tag after the nonce prefix.
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptAsset opens an encrypted asset blob. The first 12 bytes are the
// nonce; the remainder is ciphertext concatenated with the trailing tag,
// passed to GCM as one unit with no additional authenticated data.
func DecryptAsset(blob []byte, key []byte) ([]byte, error) {
	if len(blob) < NonceSize+TagSize {
		return nil, fmt.Errorf("%w: blob is %d bytes, need at least %d",
			kerrors.ErrAuthentication, len(blob), NonceSize+TagSize)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext := blob[:NonceSize], blob[NonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrAuthentication, err)
	}

	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != ContentKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d",
			kerrors.ErrInvalidKeyLength, ContentKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Zeroize overwrites sensitive byte material in place. Callers drop the
// slice right after.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
