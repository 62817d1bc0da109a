package trustgate

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gabisponciano/secure-ai-model/internal/configs"
	kerrors "github.com/gabisponciano/secure-ai-model/internal/errors"
)

// DetectDebugger runs the seven anti-debug checks in sequence. The first
// failing check short-circuits; each carries a distinct diagnostic so the
// operator can tell which signal fired.
func DetectDebugger(policy *configs.TrustPolicy) error {
	checks := []func(*configs.TrustPolicy) error{
		checkTraceSlot,
		checkCallStack,
		checkDebugModules,
		checkThreadNames,
		checkTracerPresent,
		checkDebugEnv,
		checkTiming,
	}

	for _, check := range checks {
		if err := check(policy); err != nil {
			return err
		}
	}
	return nil
}

// checkTraceSlot claims the process's single ptrace slot. If the claim
// fails, another tracer is already attached.
func checkTraceSlot(_ *configs.TrustPolicy) error {
	if err := probeTraceSlot(); err != nil {
		return fmt.Errorf("%w: ptrace slot already claimed: %v", kerrors.ErrDebuggerDetected, err)
	}
	return nil
}

// checkCallStack walks the current call stack and flags any frame whose
// source location or function name matches a known debugger fragment.
func checkCallStack(policy *configs.TrustPolicy) error {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(0, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		location := frame.File + " " + frame.Function
		if frag, found := containsFold(location, policy.DebuggerNameFragments); found {
			return fmt.Errorf("%w: call stack frame %s matches %q",
				kerrors.ErrDebuggerDetected, filepath.Base(frame.File), frag)
		}
		if !more {
			break
		}
	}
	return nil
}

// checkDebugModules flags any loaded module whose name matches a known
// debugger fragment.
func checkDebugModules(policy *configs.TrustPolicy) error {
	modules, err := loadedModules()
	if err != nil {
		// No observable module list on this host.
		return nil
	}

	for _, mod := range modules {
		if frag, found := containsFold(mod.name, policy.DebuggerNameFragments); found {
			return fmt.Errorf("%w: debugger module %s loaded (matches %q)",
				kerrors.ErrDebuggerDetected, mod.name, frag)
		}
	}
	return nil
}

// checkThreadNames enumerates the names of the process's running threads
// and flags any with a known debugger prefix. Read-only; requires no
// synchronization.
func checkThreadNames(policy *configs.TrustPolicy) error {
	tasks, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return nil
	}

	for _, task := range tasks {
		comm, err := os.ReadFile(filepath.Join("/proc/self/task", task.Name(), "comm"))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(comm))
		for _, prefix := range policy.DebugThreadPrefixes {
			if prefix != "" && strings.HasPrefix(name, prefix) {
				return fmt.Errorf("%w: thread %q matches debugger prefix %q",
					kerrors.ErrDebuggerDetected, name, prefix)
			}
		}
	}
	return nil
}

// checkTracerPresent asks the platform whether a tracer is attached, via
// the TracerPid field of /proc/self/status. Best-effort: absence of the
// interface is not itself a failure.
func checkTracerPresent(_ *configs.TrustPolicy) error {
	f, err := os.Open("/proc/self/status")
	if err != nil {
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "TracerPid:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] != "0" {
			return fmt.Errorf("%w: tracer attached (TracerPid %s)",
				kerrors.ErrDebuggerDetected, fields[1])
		}
		break
	}
	return nil
}

// checkDebugEnv flags the presence of any policy-declared debug environment
// variable, regardless of its value.
func checkDebugEnv(policy *configs.TrustPolicy) error {
	for _, name := range policy.DebugEnvVars {
		if _, set := os.LookupEnv(name); set {
			return fmt.Errorf("%w: environment variable %s is set",
				kerrors.ErrDebuggerDetected, name)
		}
	}
	return nil
}

// checkTiming times a fixed-iteration no-op loop. Single-stepping or
// breakpoint handling stretches the wall clock far beyond the configured
// threshold. The threshold is tuned for an unmonitored, unthrottled host
// and is a policy knob, not a contract.
func checkTiming(policy *configs.TrustPolicy) error {
	iterations := policy.TimingIterations
	if iterations <= 0 {
		iterations = 1_000_000
	}
	threshold := time.Duration(policy.TimingThresholdMS) * time.Millisecond
	if threshold <= 0 {
		threshold = 10 * time.Millisecond
	}

	start := time.Now()
	sink := 0
	for i := 0; i < iterations; i++ {
		sink += i
	}
	runtime.KeepAlive(sink)
	elapsed := time.Since(start)

	if elapsed > threshold {
		return fmt.Errorf("%w: timing probe took %v (threshold %v)",
			kerrors.ErrDebuggerDetected, elapsed, threshold)
	}
	return nil
}
