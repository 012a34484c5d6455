// Package model holds the value types shared by the grading harness:
// the metrics monoid and the three-valued verdict that drive credit
// assignment (spec.md §3, §4.5).
package model

import "strconv"

// Metrics is the per-subtree accumulator: a value-type tuple of seven
// non-negative integer fields. Add is field-wise; the zero value is the
// identity.
//
// Invariants (spec.md §8.1): EarnedPoints <= TotalPoints,
// PassedTests+FailedTests <= TotalTests, PassedAssertions <= TotalAssertions.
type Metrics struct {
	TotalPoints        int
	EarnedPoints       int
	TotalTests         int
	PassedTests        int
	FailedTests        int
	TotalAssertions    int
	PassedAssertions   int
}

// Add returns the field-wise sum of m and other. Addition is associative
// and commutative, so the order siblings are folded in never changes the
// final sums (spec.md §8.2).
func (m Metrics) Add(other Metrics) Metrics {
	return Metrics{
		TotalPoints:      m.TotalPoints + other.TotalPoints,
		EarnedPoints:     m.EarnedPoints + other.EarnedPoints,
		TotalTests:       m.TotalTests + other.TotalTests,
		PassedTests:      m.PassedTests + other.PassedTests,
		FailedTests:      m.FailedTests + other.FailedTests,
		TotalAssertions:  m.TotalAssertions + other.TotalAssertions,
		PassedAssertions: m.PassedAssertions + other.PassedAssertions,
	}
}

// Summary renders the final standard-output block exactly per spec.md §6:
//
//	IMPORTANT NOTE: reports below do not necessarily mean all tests ran. See any error messages above!
//	Tests: <passed>/<total> [Failed <failed> test(s)]
//	Points: <earned>/<total>
//	Assertions: <passed>/<total>
func (m Metrics) Summary() string {
	i := strconv.Itoa
	return "IMPORTANT NOTE: reports below do not necessarily mean all tests ran. See any error messages above!\n" +
		"Tests: " + i(m.PassedTests) + "/" + i(m.TotalTests) +
		" [Failed " + i(m.FailedTests) + " test(s)]\n" +
		"Points: " + i(m.EarnedPoints) + "/" + i(m.TotalPoints) + "\n" +
		"Assertions: " + i(m.PassedAssertions) + "/" + i(m.TotalAssertions) + "\n"
}
