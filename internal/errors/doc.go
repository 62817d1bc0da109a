// Package errors provides typed error values for the secure model pipeline.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Trust gate errors: environment checks failed (ErrIntegrityViolation,
//     ErrDebuggerDetected, ErrInstrumentationDetected)
//   - Pipeline errors: asset recovery failed (ErrUnwrap, ErrAuthentication,
//     ErrDeserialization)
//   - Key errors: asymmetric key material issues (ErrInvalidPrivateKey)
//   - Deployment errors: missing protected artifacts (ErrNotProtected)
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(wrapped) != priv.Size() {
//	    return nil, fmt.Errorf("%w: got %d bytes", errors.ErrUnwrap, len(wrapped))
//	}
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrDebuggerDetected) {
//	    // Print diagnostic, exit non-zero.
//	}
//
// Every trust gate and pipeline error is fatal by design: detection code only
// returns the typed error, and the single top-level handler in the cmd layer
// decides to terminate the process.
package errors
