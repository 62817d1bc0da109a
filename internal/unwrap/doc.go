// Package unwrap implements the hybrid crypto core of the pipeline.
//
// The protected model is encrypted with AES-128-GCM under a random content
// key, and the content key is wrapped with RSA-OAEP (SHA-256, MGF1-SHA-256,
// no label) under the deployment's public key. The asymmetric operation is
// expensive, so it protects only the short content key, never the bulk
// payload.
//
// # File Formats
//
//   - Encrypted model: [12-byte nonce][ciphertext || 16-byte GCM tag]
//   - Wrapped key: raw RSA ciphertext, exactly the modulus size (256 bytes
//     for RSA-2048), no framing
//   - Private key: PEM, unencrypted; PKCS#1 ("RSA PRIVATE KEY"), PKCS#8
//     ("PRIVATE KEY"), and OpenSSH formats are accepted
//   - Public key: PEM PKIX ("PUBLIC KEY")
//
// # Key Hygiene
//
// The content key exists in memory only between unwrap and decrypt. Callers
// zeroize it with Zeroize immediately after the decrypt that consumes it.
//
// GCM decryption doubles as a dynamic integrity check: a tampered ciphertext
// fails tag verification even if the static manifest check were bypassed.
package unwrap
