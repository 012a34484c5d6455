package engine

import (
	"strings"

	"github.com/willkill07/proctest/model"
)

// Require is the Assertion API (spec.md §4.6). It records one assertion
// against the current block's accumulator and, on failure or when verbose
// mode is enabled, emits a diagnostic frame carrying the description
// stack, a PASS/FAIL marker, and desc.
//
// During replay navigation it is a pure no-op beyond evaluating cond's
// caller-side expression: the ancestor block a navigating process is
// passing through already has a dedicated process elsewhere that owns
// its own Require calls for real (spec.md §4.8, §10).
func (g *Grader) Require(desc string, cond bool) {
	if g.navigating {
		return
	}

	g.metrics.TotalAssertions++
	if !cond {
		g.verdict = model.Fail
	} else {
		g.metrics.PassedAssertions++
		g.verdict = model.Combine(g.verdict, model.Pass)
	}

	if !cond || g.cfg.verbose {
		marker := "PASS: "
		if !cond {
			marker = "FAIL: "
		}
		var b strings.Builder
		for _, d := range g.descStack {
			b.WriteString(d)
			b.WriteString("\n")
		}
		b.WriteString(marker)
		b.WriteString(desc)
		b.WriteString("\n\n")
		g.emitOrPrint(b.String())
	}
}

// Equal is sugar for Require(desc, lhs == rhs), generic over any
// comparable type (spec.md §4.6).
func Equal[T comparable](g *Grader, desc string, lhs, rhs T) {
	g.Require(desc, lhs == rhs)
}
