package model

import "testing"

func TestCombine(t *testing.T) {
	tests := []struct {
		name string
		a, b Verdict
		want Verdict
	}{
		{"unset+unset stays unset", Unset, Unset, Unset},
		{"unset absorbed by pass", Unset, Pass, Pass},
		{"pass absorbed into unset", Pass, Unset, Pass},
		{"pass+pass is pass", Pass, Pass, Pass},
		{"fail absorbs pass", Fail, Pass, Fail},
		{"pass does not override fail", Pass, Fail, Fail},
		{"fail absorbs unset", Fail, Unset, Fail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Combine(tt.a, tt.b); got != tt.want {
				t.Fatalf("Combine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestVerdictOrFailAndBool(t *testing.T) {
	if Unset.OrFail() != Fail {
		t.Fatalf("Unset.OrFail() should default to Fail")
	}
	if Pass.OrFail() != Pass {
		t.Fatalf("Pass.OrFail() should stay Pass")
	}
	if Unset.Bool() {
		t.Fatalf("Unset.Bool() should be false (conservative default)")
	}
	if !Pass.Bool() {
		t.Fatalf("Pass.Bool() should be true")
	}
	if VerdictFromBool(true) != Pass || VerdictFromBool(false) != Fail {
		t.Fatalf("VerdictFromBool round-trip broken")
	}
}
