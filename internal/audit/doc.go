// Package audit appends startup-check outcomes and benchmark sessions
// to a JSON Lines trail under the deployment's results directory.
//
// Audit writes are best effort. A protected deployment must keep
// working when the results directory is missing or read-only, so
// logging failures are swallowed instead of surfaced.
package audit
