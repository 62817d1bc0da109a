package trustgate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

// DetectInstrumentation runs the anti-instrumentation checks: loaded module
// names against the blocklist, module origin paths against the allowed
// roots, and the live process table against known analysis tooling.
func DetectInstrumentation(policy *configs.TrustPolicy) error {
	modules, err := loadedModules()
	if err == nil {
		if err := checkForbiddenModules(modules, policy); err != nil {
			return err
		}
		if err := checkModuleOrigins(modules, policy); err != nil {
			return err
		}
	}

	return checkProcessTable(policy)
}

// checkForbiddenModules flags any loaded module whose name contains a
// blocklisted substring, case-insensitively.
func checkForbiddenModules(modules []loadedModule, policy *configs.TrustPolicy) error {
	for _, mod := range modules {
		if frag, found := containsFold(mod.name, policy.ForbiddenModuleSubstrings); found {
			return fmt.Errorf("%w: module %s matches blocklist entry %q",
				kerrors.ErrInstrumentationDetected, mod.name, frag)
		}
	}
	return nil
}

// checkModuleOrigins verifies every loaded module was mapped from an allowed
// path root. The entry executable and anything inside the protected
// deployment tree are exempt.
func checkModuleOrigins(modules []loadedModule, policy *configs.TrustPolicy) error {
	exePath, err := os.Executable()
	if err != nil {
		exePath = ""
	}
	deployRoot := configs.Settings.DeploymentPath

	for _, mod := range modules {
		if originAllowed(mod.path, exePath, deployRoot, policy.AllowedPathRoots) {
			continue
		}
		return fmt.Errorf("%w: module %s loaded from disallowed path %s",
			kerrors.ErrInstrumentationDetected, mod.name, mod.path)
	}
	return nil
}

// originAllowed reports whether a module origin path is acceptable: the
// entry executable itself, anything under the deployment root, or anything
// under one of the allowed roots.
func originAllowed(path string, exePath string, deployRoot string, roots []string) bool {
	path = filepath.Clean(path)

	if exePath != "" && path == filepath.Clean(exePath) {
		return true
	}
	if deployRoot != "" && underRoot(path, deployRoot) {
		return true
	}
	for _, root := range roots {
		if root != "" && underRoot(path, root) {
			return true
		}
	}
	return false
}

// underRoot reports whether path sits inside root, on whole path elements.
func underRoot(path string, root string) bool {
	root = filepath.Clean(root)
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(path, root)
}

// checkProcessTable enumerates the live process table and flags any process
// whose name or command line contains a blocklisted signature. Transient
// enumeration errors (process vanished, access denied) skip that process
// rather than failing the check.
func checkProcessTable(policy *configs.TrustPolicy) error {
	if len(policy.ForbiddenProcessSignatures) == 0 {
		return nil
	}

	entries, err := os.ReadDir("/proc")
	if err != nil {
		// No observable process table on this host.
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || !isNumeric(entry.Name()) {
			continue
		}

		comm, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "comm"))
		if err != nil {
			continue
		}

		// cmdline is NUL-separated; a read failure just leaves it empty.
		cmdline, _ := os.ReadFile(filepath.Join("/proc", entry.Name(), "cmdline"))
		args := strings.ReplaceAll(string(cmdline), "\x00", " ")

		haystack := strings.TrimSpace(string(comm)) + " " + args
		if sig, found := containsFold(haystack, policy.ForbiddenProcessSignatures); found {
			return fmt.Errorf("%w: process %s (pid %s) matches signature %q",
				kerrors.ErrInstrumentationDetected,
				strings.TrimSpace(string(comm)), entry.Name(), sig)
		}
	}

	return nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
