package engine

import "testing"

func TestPathStringRoundTrip(t *testing.T) {
	cases := []Path{
		{},
		{0},
		{0, 2, 1},
		{5, 0, 0, 3},
	}
	for _, p := range cases {
		s := p.String()
		got, err := ParsePath(s)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", s, err)
		}
		if len(got) != len(p) {
			t.Fatalf("ParsePath(%q) = %v, want %v", s, got, p)
		}
		for i := range p {
			if got[i] != p[i] {
				t.Fatalf("ParsePath(%q) = %v, want %v", s, got, p)
			}
		}
	}
}

func TestPathStringEmpty(t *testing.T) {
	if s := (Path{}).String(); s != "" {
		t.Fatalf("empty path rendered as %q, want empty string", s)
	}
	p, err := ParsePath("")
	if err != nil {
		t.Fatalf("ParsePath(\"\"): %v", err)
	}
	if len(p) != 0 {
		t.Fatalf("ParsePath(\"\") = %v, want empty", p)
	}
}

func TestParsePathMalformed(t *testing.T) {
	for _, s := range []string{"x", "0,x", "0,,1", "1,2,"} {
		if _, err := ParsePath(s); err == nil {
			t.Errorf("ParsePath(%q): expected error, got nil", s)
		}
	}
}

func TestPathAppendDoesNotAlias(t *testing.T) {
	base := Path{0, 1}
	a := base.Append(2)
	b := base.Append(9)
	if a[2] != 2 || b[2] != 9 {
		t.Fatalf("Append aliased: a=%v b=%v", a, b)
	}
	if len(base) != 2 {
		t.Fatalf("Append mutated base: %v", base)
	}
}

func TestPathString(t *testing.T) {
	p := Path{0, 2, 1}
	if got, want := p.String(), "0,2,1"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
