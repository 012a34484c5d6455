package model

import "testing"

func TestMetricsAddIsFieldwise(t *testing.T) {
	a := Metrics{TotalPoints: 10, EarnedPoints: 5, TotalTests: 1, PassedTests: 1, TotalAssertions: 2, PassedAssertions: 2}
	b := Metrics{TotalPoints: 8, EarnedPoints: 0, TotalTests: 1, FailedTests: 1, TotalAssertions: 2, PassedAssertions: 1}

	got := a.Add(b)
	want := Metrics{
		TotalPoints:      18,
		EarnedPoints:     5,
		TotalTests:       2,
		PassedTests:      1,
		FailedTests:      1,
		TotalAssertions:  4,
		PassedAssertions: 3,
	}
	if got != want {
		t.Fatalf("Add() = %+v, want %+v", got, want)
	}
}

func TestMetricsAddCommutativeAndAssociative(t *testing.T) {
	a := Metrics{TotalPoints: 10, EarnedPoints: 10, TotalTests: 1, PassedTests: 1, TotalAssertions: 1, PassedAssertions: 1}
	b := Metrics{TotalPoints: 4, FailedTests: 1, TotalTests: 1, TotalAssertions: 1}
	c := Metrics{TotalPoints: 2, TotalTests: 1, PassedTests: 1, EarnedPoints: 2}

	if a.Add(b) != b.Add(a) {
		t.Fatalf("Add is not commutative")
	}
	if a.Add(b).Add(c) != a.Add(b.Add(c)) {
		t.Fatalf("Add is not associative")
	}
}

func TestMetricsZeroIsIdentity(t *testing.T) {
	m := Metrics{TotalPoints: 16, EarnedPoints: 16, TotalTests: 1, PassedTests: 1, TotalAssertions: 1, PassedAssertions: 1}
	if m.Add(Metrics{}) != m {
		t.Fatalf("zero value is not an additive identity")
	}
}

func TestMetricsSummary(t *testing.T) {
	m := Metrics{TotalPoints: 16, EarnedPoints: 16, TotalTests: 1, PassedTests: 1, TotalAssertions: 1, PassedAssertions: 1}
	want := "IMPORTANT NOTE: reports below do not necessarily mean all tests ran. See any error messages above!\n" +
		"Tests: 1/1 [Failed 0 test(s)]\nPoints: 16/16\nAssertions: 1/1\n"
	if got := m.Summary(); got != want {
		t.Fatalf("Summary() = %q, want %q", got, want)
	}
}
