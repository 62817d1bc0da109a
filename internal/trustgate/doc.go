// Package trustgate implements the fail-closed pre-flight checks gating the
// decryption pipeline.
//
// Three check families run once at process startup, in order:
//
//   - Integrity: SHA-256 digests of the protected files against the policy
//     manifest. Read failures count as integrity violations.
//   - Anti-debug: seven independent checks (ptrace slot probe, call stack
//     scan, loaded module scan, thread names, TracerPid, debug environment
//     variables, timing probe). Any single hit fails the gate.
//   - Anti-instrumentation: loaded module names against a blocklist, module
//     origin paths against an allowlist of roots, and a process table scan
//     for known analysis tooling.
//
// # Failure Semantics
//
// Detection functions return typed sentinel errors from internal/errors and
// never terminate the process themselves; the command layer owns the single
// exit point. Every failure is fatal and non-recoverable by design: there is
// no retry path and no partial pass.
//
// The gate walks the state machine Init -> IntegrityChecked ->
// DebuggerChecked -> InstrumentationChecked -> Ready, with any failure
// landing in terminal Aborted. A Ready gate is never re-run.
//
// # Threat Model
//
// These checks raise the cost of casual inspection and tampering. They are
// probabilistic signals, not a security boundary: a privileged attacker with
// a kernel debugger or hardware breakpoints is out of scope.
package trustgate
