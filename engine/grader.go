// Package engine implements the tree-execution grading harness of
// spec.md: a DSL of nested Scenario/Given/When/Then blocks, each isolated
// in its own OS process, aggregating points, test counts, and assertion
// counts up to a root verdict and summary.
//
// Go cannot safely continue arbitrary code after a raw fork(2) — only the
// calling OS thread survives in the child, while the runtime's other
// threads (GC workers, sysmon, the rest of the scheduler) do not, so any
// code that touches the runtime after fork risks deadlock. This package
// substitutes a re-exec: the parent starts a fresh copy of the same
// binary (os/exec, as docker/pkg/reexec and cloudflare/tableflip do for
// their own process-supervision needs) carrying a serialized block path
// in its environment, and the child replays the deterministic entry point
// far enough to reach and execute, for real, only the one block named by
// that path (see path.go and reexec.go).
package engine

import (
	"fmt"
	"os"

	"github.com/willkill07/proctest/internal/ipc"
	"github.com/willkill07/proctest/model"
)

// Grader is the DSL receiver: the single value an embedding program
// threads through its Scenario/Given/When/Then/Require calls. Its exact
// behavior depends on which of two modes the owning process is in:
//
//   - live: this process runs, for real, the block it currently
//     represents (the root, or a re-exec'd process that has replayed its
//     way to its target block). Every nested call forks a new process.
//   - navigating: this process is a re-exec'd process still replaying
//     its way down to its target block. Calls that don't lie on its
//     target path are skipped entirely; calls that do are entered
//     in-process, without forking, until the target is reached.
type Grader struct {
	cfg settings

	runID string

	descStack []string
	counters  []int // counters[d] = next sibling index to assign at depth d

	navigating bool
	targetPath Path
	basePath   Path // path of the block this process is the live runner for

	pointsSpecified bool

	metrics model.Metrics
	verdict model.Verdict

	sndFD *os.File // inherited upward pipe; nil for the root
}

// New constructs the root Grader: the one process that never replays, and
// that prints (rather than forwards) both live diagnostics and the final
// summary.
func New(runID string, opts ...Option) *Grader {
	cfg := defaultSettings()
	for _, o := range opts {
		o(&cfg)
	}
	return &Grader{
		cfg:      cfg,
		runID:    runID,
		verdict:  model.Unset,
		basePath: Path{},
	}
}

// Status prints the final metrics summary (root only, spec.md §6) and
// returns the process exit code: 0 if the root's accumulated verdict
// resolves to Pass, 1 otherwise.
func (g *Grader) Status() int {
	if g.navigating {
		panic("engine: Status called on a navigating (non-root) grader")
	}
	fmt.Print(g.metrics.Summary())
	if g.verdict.OrFail() == model.Pass {
		return 0
	}
	return 1
}

// nextIndex returns the sibling index for a call made at the current
// depth, advancing the counter. It is the single piece of bookkeeping
// shared between live execution (assigning a child its path) and replay
// navigation (matching a call against the target path) — both walk the
// same deterministic call sequence, so the Nth call textually reached at
// a given depth is always the same block (spec.md §4.8, §10).
func (g *Grader) nextIndex() int {
	d := len(g.descStack)
	for len(g.counters) <= d {
		g.counters = append(g.counters, 0)
	}
	idx := g.counters[d]
	g.counters[d]++
	return idx
}

// emitOrPrint writes s as a STRING frame via the inherited pipe if this
// process is nested, or prints it directly to stdout at the root
// (spec.md §4.4 Phase 1/3 "same root-vs-nested rule").
func (g *Grader) emitOrPrint(s string) {
	if g.sndFD == nil {
		fmt.Print(s)
		return
	}
	if err := ipc.NewEncoder(g.sndFD).WriteString(s); err != nil {
		g.cfg.logger.Warn("failed to forward diagnostic string", "error", err)
	}
}
