//go:build linux

package trustgate

import (
	"sync"

	"golang.org/x/sys/unix"
)

var (
	traceSlotOnce sync.Once
	traceSlotErr  error
)

// probeTraceSlot claims the ptrace slot with PTRACE_TRACEME. Only one tracer
// can ever be attached, so a failed claim means a debugger got there first —
// and a successful claim blocks later attach attempts as a side effect. The
// kernel allows the call once per process, so the result is cached.
func probeTraceSlot() error {
	traceSlotOnce.Do(func() {
		_, _, errno := unix.RawSyscall(unix.SYS_PTRACE, unix.PTRACE_TRACEME, 0, 0)
		if errno != 0 {
			traceSlotErr = errno
		}
	})
	return traceSlotErr
}
