// Package bench times the unwrap-decrypt-load-infer pipeline over
// repeated runs and exports the measurements.
package bench
