package trustgate

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// loadedModule is one file-backed mapping of the running process.
type loadedModule struct {
	name string // basename of the mapped file
	path string // absolute origin path
}

// loadedModules enumerates the file-backed mappings of the current process
// from /proc/self/maps. Pseudo mappings ([vdso], [heap], anonymous) carry no
// origin path and are skipped. On hosts without procfs the returned slice is
// nil and the caller treats the module set as unobservable.
func loadedModules() ([]loadedModule, error) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]bool)
	var modules []loadedModule

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			continue
		}

		path := fields[5]
		if !strings.HasPrefix(path, "/") {
			continue
		}
		if seen[path] {
			continue
		}
		seen[path] = true

		modules = append(modules, loadedModule{
			name: filepath.Base(path),
			path: path,
		})
	}

	return modules, scanner.Err()
}

// containsFold reports whether s contains substr, ignoring letter case, and
// returns the matching substring for diagnostics.
func containsFold(s string, substrs []string) (string, bool) {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if sub == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(sub)) {
			return sub, true
		}
	}
	return "", false
}
