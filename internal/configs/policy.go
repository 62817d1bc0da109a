package configs

// TrustPolicy is the declarative data driving the trust gate. It is loaded
// once at startup and shared read-only; detection logic never mutates it.
type TrustPolicy struct {
	// IntegrityManifest maps deployment-relative file paths to expected
	// lowercase hex SHA-256 digests.
	IntegrityManifest map[string]string `toml:"integrity_manifest"`

	// ForbiddenModuleSubstrings flags any loaded module whose name contains
	// one of these substrings, case-insensitively.
	ForbiddenModuleSubstrings []string `toml:"forbidden_modules"`

	// ForbiddenProcessSignatures flags any running process whose name or
	// command line contains one of these substrings.
	ForbiddenProcessSignatures []string `toml:"forbidden_processes"`

	// AllowedPathRoots are the directory roots modules may legitimately be
	// loaded from. The entry executable and anything under the deployment
	// root are exempt.
	AllowedPathRoots []string `toml:"allowed_path_roots"`

	// DebugEnvVars are environment variable names associated with debugging
	// frameworks. Presence of any, regardless of value, is a detection.
	DebugEnvVars []string `toml:"debug_env_vars"`

	// DebuggerNameFragments are matched case-insensitively against call stack
	// source locations and loaded module names.
	DebuggerNameFragments []string `toml:"debugger_name_fragments"`

	// DebugThreadPrefixes are matched against the names of running threads.
	DebugThreadPrefixes []string `toml:"debug_thread_prefixes"`

	// TimingIterations and TimingThresholdMS tune the anti-stepping probe:
	// a no-op loop of TimingIterations iterations must finish within
	// TimingThresholdMS of wall clock. The threshold is host-dependent and
	// deliberately a config knob, not a constant.
	TimingIterations  int `toml:"timing_iterations"`
	TimingThresholdMS int `toml:"timing_threshold_ms"`
}

// DefaultTrustPolicy returns the built-in detection rules for native
// debugging and instrumentation tooling.
func DefaultTrustPolicy() TrustPolicy {
	return TrustPolicy{
		IntegrityManifest: map[string]string{},

		ForbiddenModuleSubstrings: []string{
			"frida", "gum-js", "xhook", "substrate", "injector",
			"capstone", "keystone", "unicorn", "libhook", "pydevd",
		},

		ForbiddenProcessSignatures: []string{
			"frida-server", "frida-trace", "ollydbg", "ida64", "ida32",
			"x64dbg", "x32dbg", "wireshark", "dnspy", "cheatengine",
			"gdb", "radare2", "immunitydebugger", "ltrace", "strace",
		},

		AllowedPathRoots: []string{
			"/usr/lib", "/usr/lib64", "/lib", "/lib64", "/usr/local/lib",
		},

		DebugEnvVars: []string{
			"LD_PRELOAD", "LD_AUDIT", "DELVE_DEBUG", "FRIDA_OPTIONS",
		},

		DebuggerNameFragments: []string{
			"dlv", "delve", "frida", "gdbserver", "pydevd",
		},

		DebugThreadPrefixes: []string{
			"gum-js-loop", "frida", "gdbserver", "pool-frida",
		},

		TimingIterations:  1_000_000,
		TimingThresholdMS: 10,
	}
}
