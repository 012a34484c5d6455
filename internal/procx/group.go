// Package procx wraps the small POSIX process/signal surface the
// supervisor needs: assigning a forked block its own process group and
// killing that group on timeout (spec.md §4.2 step 5, §5). Grounded on the
// golang.org/x/sys/unix usage pattern for group kill and the
// SysProcAttr{Setpgid: true} idiom for supervised child processes seen
// across the example pack's process-management code.
package procx

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// Isolate configures cmd so that, once started, it becomes the leader of
// its own process group. This lets KillGroup take down the block's body
// and any grandchildren it spawned (e.g. through further nested blocks)
// with a single signal, exactly as `kill(-pid, SIGKILL)` does in the
// original (spec.md §4.4 Phase 1, §5).
func Isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillGroup sends SIGKILL to the entire process group led by pid. It is
// the sole cancellation mechanism in this harness (spec.md §5): the parent
// supervisor calls it once, on timeout, when points are specified for the
// block's subtree, then waits for the killed process to be reaped before
// draining its pipe to end-of-stream (spec.md §4.4 Phase 1).
func KillGroup(pid int) error {
	return unix.Kill(-pid, unix.SIGKILL)
}
