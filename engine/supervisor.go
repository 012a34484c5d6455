package engine

import (
	"errors"
	"io"
	"os/exec"
	"strconv"
	"time"

	"github.com/willkill07/proctest/internal/ipc"
	"github.com/willkill07/proctest/internal/procx"
	"github.com/willkill07/proctest/model"
)

// forkAndSupervise is the Parent Supervisor (spec.md §4.4): it spawns the
// re-exec for childPath, waits for it (bounded by the time limit once
// points are in play), drains whatever frames arrive, folds them into
// this process's own accumulator, and reports any fatal outcome.
func (g *Grader) forkAndSupervise(childPath Path, points int, pointsSpecified bool) {
	cmd, rcv, err := spawnBlock(childPath, pointsSpecified, g.cfg, g.runID)
	if err != nil {
		g.cfg.logger.Err("failed to start block process", err)
		fatal("%v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var diagnostic string
	select {
	case <-done:
		diagnostic = g.classifyExit(cmd)
	case <-time.After(g.cfg.timeLimit):
		if pointsSpecified {
			if err := procx.KillGroup(cmd.Process.Pid); err != nil {
				g.cfg.logger.Warn("failed to kill timed-out block's process group", "error", err)
			}
			<-done
			diagnostic = "The following test exceeded the time limit of " +
				strconv.FormatInt(g.cfg.timeLimit.Milliseconds(), 10) + "ms\n" + g.descStack[len(g.descStack)-1]
		} else {
			// No points riding on this subtree: let it run to completion
			// rather than cancel it (spec.md §5 only arms the timeout
			// once points are specified).
			<-done
			diagnostic = g.classifyExit(cmd)
		}
	}

	sawMetrics := g.drain(rcv)
	rcv.Close()

	if diagnostic == "" && pointsSpecified && !sawMetrics {
		diagnostic = "The following test failed to run!\n" + g.descStack[len(g.descStack)-1]
	}
	if !sawMetrics && pointsSpecified {
		// The block never reached the end of its own lifecycle (spec.md
		// §4.3 step 7): its subtree counts as failed, whether or not it
		// carried its own point weight. When the block itself was
		// point-bearing, its own pre-charge (spec.md §4.3 step 4) died
		// with it without ever reaching this process, so it is reproduced
		// here instead (spec.md §8 invariant 4).
		g.verdict = model.Combine(g.verdict, model.Fail)
		if points != 0 {
			g.metrics.TotalTests++
			g.metrics.TotalPoints += points
			g.metrics.FailedTests++
		}
	}
	if diagnostic != "" {
		g.emitOrPrint(diagnostic + "\n")
	}
}

// classifyExit renders a diagnostic for a signal death (spec.md §8
// scenario 4). A clean exit is not itself diagnostic here — a
// well-behaved-but-incomplete block (one that exited without ever
// sending its final METRICS frame) is caught by the caller's
// !sawMetrics fallback instead.
func (g *Grader) classifyExit(cmd *exec.Cmd) string {
	outcome := procx.Classify(cmd)
	if !outcome.HadSignal {
		return ""
	}
	return "The following test failed to run! Status code: " +
		strconv.Itoa(int(outcome.Signal)) + " (" + procx.SignalName(outcome.Signal) + ")\n" +
		g.descStack[len(g.descStack)-1]
}

// drain reads every frame the child sent until end-of-stream, folding
// METRICS and BOOL frames into this process's accumulator and
// forwarding/printing STRING frames (spec.md §4.4 Phase 2). It reports
// whether a METRICS frame was ever received — the signal that the child
// completed its own lifecycle (spec.md §4.3 step 7) rather than crashing
// partway through it.
//
// A *ipc.ProtocolError is fatal for the whole run (spec.md §7, §4.1): an
// unknown tag or an oversize frame means the wire itself can no longer be
// trusted, not just this one child's pipe, so drain never returns in that
// case.
func (g *Grader) drain(rcv io.Reader) bool {
	dec := ipc.NewDecoder(rcv, g.cfg.stringCap)
	sawMetrics := false
	for {
		f, err := dec.ReadFrame()
		if err != nil {
			if errors.Is(err, ipc.ErrEndOfStream) {
				return sawMetrics
			}
			var protoErr *ipc.ProtocolError
			if errors.As(err, &protoErr) {
				g.cfg.logger.Err("protocol error reading block output", err)
				fatal("%v", protoErr)
			}
			g.cfg.logger.Warn("failed reading block output", "error", err)
			return sawMetrics
		}
		switch f.Tag {
		case ipc.TagString:
			g.emitOrPrint(f.Str)
		case ipc.TagMetrics:
			g.metrics = g.metrics.Add(f.Metrics)
			sawMetrics = true
		case ipc.TagBool:
			g.verdict = model.Combine(g.verdict, model.VerdictFromBool(f.Bool))
		}
	}
}
