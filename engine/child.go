package engine

import (
	"fmt"
	"os"

	"github.com/willkill07/proctest/internal/ipc"
	"github.com/willkill07/proctest/model"
)

// runArrivedBlock is the Child Runner (spec.md §4.3), entered exactly
// once per process: the process has just replayed its way to its target
// block and now runs that block's body for real.
func (g *Grader) runArrivedBlock(points int, body func(*Grader)) {
	g.metrics = model.Metrics{}
	g.verdict = model.Unset

	if g.pointsSpecified && points != 0 {
		g.metrics.TotalTests = 1
		g.metrics.TotalPoints = points
	}

	body(g)

	if g.pointsSpecified {
		switch {
		case points == 0:
			enc := ipc.NewEncoder(g.sndFD)
			if err := enc.WriteBool(g.verdict.OrFail().Bool()); err != nil {
				g.cfg.logger.Warn("failed to emit verdict frame", "error", err)
			}
		default:
			if g.verdict.OrFail() == model.Pass {
				g.metrics.EarnedPoints = points
				g.metrics.PassedTests = 1
			} else {
				g.metrics.FailedTests = 1
			}
		}
	}

	enc := ipc.NewEncoder(g.sndFD)
	if err := enc.WriteMetrics(g.metrics); err != nil {
		g.cfg.logger.Warn("failed to emit metrics frame", "error", err)
	}

	g.sndFD.Close()
	os.Exit(0)
}

// emitBool writes a BOOL frame carrying v upward through this process's
// own inherited pipe (spec.md §4.4 Phase 3). Called only when this
// process is itself nested (depth() > 0).
func (g *Grader) emitBool(v model.Verdict) {
	if err := ipc.NewEncoder(g.sndFD).WriteBool(v.Bool()); err != nil {
		g.cfg.logger.Warn("failed to forward verdict frame", "error", err)
	}
}

// fatal reports an unrecoverable harness error (a fork or pipe failure)
// to stderr and terminates the process. It never participates in the
// grading protocol on stdout.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "proctest: "+format+"\n", args...)
	os.Exit(1)
}
