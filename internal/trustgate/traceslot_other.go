//go:build !linux

package trustgate

// probeTraceSlot is a no-op where ptrace is unavailable. Absence of the API
// is not treated as a detection.
func probeTraceSlot() error {
	return nil
}
