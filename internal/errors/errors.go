package errors

import "errors"

// Trust gate errors indicate the hosting environment failed a pre-flight check.
// Every one of these is fatal: the command layer prints a single diagnostic
// and terminates the process with a non-zero status.
var (
	// ErrIntegrityViolation indicates a protected file's digest does not match
	// the manifest, or the file could not be read at all. Availability failures
	// are deliberately folded into integrity failures.
	ErrIntegrityViolation = errors.New("file integrity violation")

	// ErrDebuggerDetected indicates one of the anti-debug checks fired.
	ErrDebuggerDetected = errors.New("debugger detected")

	// ErrInstrumentationDetected indicates a blocklisted module, a module loaded
	// from outside the allowed roots, or a blocklisted analysis process.
	ErrInstrumentationDetected = errors.New("instrumentation detected")
)

// Pipeline errors indicate failures while recovering or consuming the
// protected asset. Any of these aborts the whole benchmark session.
var (
	// ErrUnwrap indicates the wrapped content key is malformed for the key size
	// or OAEP padding validation failed.
	ErrUnwrap = errors.New("failed to unwrap content key")

	// ErrAuthentication indicates AEAD tag verification failed: either the
	// wrong content key or a tampered ciphertext.
	ErrAuthentication = errors.New("asset authentication failed")

	// ErrDeserialization indicates the decrypted plaintext does not match any
	// recognized model container shape.
	ErrDeserialization = errors.New("unrecognized model container shape")
)

// Key errors indicate issues with the asymmetric key material.
var (
	// ErrPrivateKeyNotFound indicates the RSA private key could not be located.
	ErrPrivateKeyNotFound = errors.New("private key not found")

	// ErrPublicKeyNotFound indicates the RSA public key could not be located.
	ErrPublicKeyNotFound = errors.New("public key not found")

	// ErrInvalidPrivateKey indicates the private key is malformed or in an
	// unsupported format.
	ErrInvalidPrivateKey = errors.New("invalid or unsupported private key format")

	// ErrInvalidKeyLength indicates a content key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid content key length")
)

// Deployment errors indicate issues with the protected deployment itself.
var (
	// ErrNotProtected indicates the deployment has no encrypted model or
	// wrapped key yet.
	ErrNotProtected = errors.New("deployment has not been protected")

	// ErrManifestEntryMissing indicates the integrity manifest has no digest
	// for a file the gate was asked to verify.
	ErrManifestEntryMissing = errors.New("no manifest entry for file")
)
