package engine

import "github.com/willkill07/proctest/model"

// Scenario introduces a zero-point scenario block (spec.md §6).
func (g *Grader) Scenario(desc string, body func(*Grader)) { g.run(model.KindScenario, 0, desc, body) }

// ScenarioPoints introduces a point-bearing scenario block.
func (g *Grader) ScenarioPoints(points int, desc string, body func(*Grader)) {
	g.run(model.KindScenario, points, desc, body)
}

// Given introduces a zero-point given block.
func (g *Grader) Given(desc string, body func(*Grader)) { g.run(model.KindGiven, 0, desc, body) }

// GivenPoints introduces a point-bearing given block.
func (g *Grader) GivenPoints(points int, desc string, body func(*Grader)) {
	g.run(model.KindGiven, points, desc, body)
}

// When introduces a zero-point when block.
func (g *Grader) When(desc string, body func(*Grader)) { g.run(model.KindWhen, 0, desc, body) }

// WhenPoints introduces a point-bearing when block.
func (g *Grader) WhenPoints(points int, desc string, body func(*Grader)) {
	g.run(model.KindWhen, points, desc, body)
}

// Then introduces a zero-point then block.
func (g *Grader) Then(desc string, body func(*Grader)) { g.run(model.KindThen, 0, desc, body) }

// ThenPoints introduces a point-bearing then block.
func (g *Grader) ThenPoints(points int, desc string, body func(*Grader)) {
	g.run(model.KindThen, points, desc, body)
}
