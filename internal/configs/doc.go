// Package configs manages deployment configuration for securemodel.
//
// Configuration is stored in TOML format in a single file at the root of
// the protected deployment:
//
//	securemodel.toml
//
// # Layout
//
// The config file has three sections:
//
//   - [paths]: locations of the encrypted model, wrapped key, PEM key pair,
//     and results directory, all relative to the deployment root
//   - [benchmark]: iteration count, synthetic input shape, reload behavior
//   - [policy]: the trust policy — integrity manifest, module and process
//     blocklists, allowed module path roots, debug environment variables,
//     and the timing-probe tuning knobs
//
// # Trust Policy
//
// The trust policy is declarative data consumed read-only by the trust
// gate. The built-in defaults cover the common native debugging and
// instrumentation tooling (gdb, delve, frida, strace, ...); deployments
// override or extend them in the config file. The policy is immutable
// after load.
//
// # Settings
//
// Global settings are initialized at startup:
//   - Settings.DeploymentPath: the protected deployment root, resolved from
//     SECUREMODEL_HOME or the working directory
//   - Settings.ConfigPath, Settings.ResultsPath: derived locations
package configs
