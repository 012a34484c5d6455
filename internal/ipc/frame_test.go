package ipc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/willkill07/proctest/model"
)

func TestRoundTripString(t *testing.T) {
	for _, s := range []string{"", "x", strings.Repeat("ab", 4096)} {
		var buf bytes.Buffer
		if err := NewEncoder(&buf).WriteString(s); err != nil {
			t.Fatalf("WriteString: %v", err)
		}
		f, err := NewDecoder(&buf, 0).ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if f.Tag != TagString || f.Str != s {
			t.Fatalf("round trip mismatch: got %+v, want Str=%q", f, s)
		}
	}
}

func TestRoundTripMetrics(t *testing.T) {
	m := model.Metrics{
		TotalPoints: 16, EarnedPoints: 16, TotalTests: 1, PassedTests: 1,
		FailedTests: 0, TotalAssertions: 3, PassedAssertions: 3,
	}
	var buf bytes.Buffer
	if err := NewEncoder(&buf).WriteMetrics(m); err != nil {
		t.Fatalf("WriteMetrics: %v", err)
	}
	f, err := NewDecoder(&buf, 0).ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if f.Tag != TagMetrics || f.Metrics != m {
		t.Fatalf("round trip mismatch: got %+v, want %+v", f.Metrics, m)
	}
}

func TestRoundTripBool(t *testing.T) {
	for _, b := range []bool{true, false} {
		var buf bytes.Buffer
		if err := NewEncoder(&buf).WriteBool(b); err != nil {
			t.Fatalf("WriteBool: %v", err)
		}
		f, err := NewDecoder(&buf, 0).ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if f.Tag != TagBool || f.Bool != b {
			t.Fatalf("round trip mismatch: got %+v, want Bool=%v", f, b)
		}
	}
}

func TestReadFrameEndOfStream(t *testing.T) {
	_, err := NewDecoder(&bytes.Buffer{}, 0).ReadFrame()
	if !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("ReadFrame on empty stream = %v, want ErrEndOfStream", err)
	}
}

func TestReadFrameUnknownTag(t *testing.T) {
	_, err := NewDecoder(bytes.NewReader([]byte{0xFF}), 0).ReadFrame()
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("ReadFrame on unknown tag = %v, want *ProtocolError", err)
	}
}

func TestReadFrameOversizeString(t *testing.T) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).WriteString(strings.Repeat("x", 100)); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	_, err := NewDecoder(&buf, 10).ReadFrame()
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("ReadFrame over cap = %v, want *ProtocolError", err)
	}
}

func TestReadFrameShortReadLoops(t *testing.T) {
	// A slow reader that yields one byte at a time must still be fully
	// consumed by ReadFrame's internal loop (spec.md §4.1).
	var encoded bytes.Buffer
	if err := NewEncoder(&encoded).WriteString("hello world"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	f, err := NewDecoder(&oneByteReader{data: encoded.Bytes()}, 0).ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if f.Str != "hello world" {
		t.Fatalf("ReadFrame with short reads = %q, want %q", f.Str, "hello world")
	}
}

type oneByteReader struct{ data []byte }

func (r *oneByteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}
