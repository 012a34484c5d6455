package engine

import "github.com/willkill07/proctest/model"

// run is the Block Operator (spec.md §4.2): the single implementation
// behind Scenario/Given/When/Then. kind and desc build the diagnostic
// prefix; points is the block's weight (0 for an unweighted wrapper);
// body is the block's nested content.
//
// Every call first advances this process's sibling counter at the
// current depth (nextIndex), the bookkeeping that lets a later re-exec'd
// process find its way back to the exact same block by replaying the
// same deterministic call sequence.
func (g *Grader) run(kind model.Kind, points int, desc string, body func(*Grader)) {
	idx := g.nextIndex()

	if g.navigating {
		g.runNavigating(idx, kind, points, desc, body)
		return
	}

	g.descStack = append(g.descStack, kind.Prefix()+desc)
	childPath := g.basePath.Append(idx)
	childPointsSpecified := g.pointsSpecified || points != 0
	g.forkAndSupervise(childPath, points, childPointsSpecified)
	g.descStack = g.descStack[:len(g.descStack)-1]

	if g.depth() > 0 {
		g.emitBool(g.verdict.OrFail())
	}
}

// runNavigating handles one call while this process is still replaying
// its way down to targetPath. Off-path siblings are skipped entirely —
// not merely un-forked, but never executed at all — since a skipped
// sibling may be the very block whose body is designed to crash or hang,
// which must never run inside the navigating process (spec.md §4.8).
func (g *Grader) runNavigating(idx int, kind model.Kind, points int, desc string, body func(*Grader)) {
	d := len(g.descStack)
	if d >= len(g.targetPath) || idx != g.targetPath[d] {
		return
	}

	g.descStack = append(g.descStack, kind.Prefix()+desc)
	defer func() { g.descStack = g.descStack[:len(g.descStack)-1] }()

	if d == len(g.targetPath)-1 {
		g.navigating = false
		g.basePath = g.targetPath
		g.runArrivedBlock(points, body)
		return
	}

	body(g)
}

// depth returns the current nesting depth (0 at the root).
func (g *Grader) depth() int { return len(g.descStack) }
