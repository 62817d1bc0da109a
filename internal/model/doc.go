// Package model deserializes decrypted classifier assets and runs
// them forward for benchmark inference.
package model
