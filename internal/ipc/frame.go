// Package ipc implements the upward IPC protocol of spec.md §4.1: four
// typed, length-delimited frames carried over a per-block pipe. Style is
// grounded on hayabusa-cloud-framer's length-prefixed wire format (see
// DESIGN.md), reimplemented directly atop encoding/binary because that
// framer's own dependency (code.hybscloud.com/iox) is a private module
// this repository cannot fetch.
//
// Wire format: a 1-byte tag, followed by a type-specific payload.
//   - STRING:  4-byte little-endian length, then raw UTF-8 bytes.
//   - METRICS: seven 4-byte little-endian signed integers, in field order
//     (TotalPoints, EarnedPoints, TotalTests, PassedTests, FailedTests,
//     TotalAssertions, PassedAssertions).
//   - BOOL:    one byte, 0 or 1.
package ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/willkill07/proctest/model"
)

// Tag identifies the kind of frame on the wire.
type Tag byte

const (
	TagString Tag = 1 + iota
	TagMetrics
	TagBool
)

func (t Tag) String() string {
	switch t {
	case TagString:
		return "STRING"
	case TagMetrics:
		return "METRICS"
	case TagBool:
		return "BOOL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", byte(t))
	}
}

// DefaultStringCap is the recommended cap on a STRING frame's payload
// length (spec.md §4.1, §9): 16 MiB. The original imposes no cap; this
// implementation resolves that open question in favor of a cap, per the
// spec's own recommendation.
const DefaultStringCap = 16 * 1024 * 1024

// ProtocolError is returned when a frame cannot be decoded: an unknown tag
// byte, or a declared STRING length exceeding the configured cap. It is
// always fatal for the run (spec.md §7).
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "ipc: protocol error: " + e.Reason }

// Frame is a decoded IPC message. Exactly one of Str, Metrics, or Bool is
// meaningful, selected by Tag.
type Frame struct {
	Tag     Tag
	Str     string
	Metrics model.Metrics
	Bool    bool
}

// Encoder writes frames to an underlying byte stream. Writes are
// best-effort: a failed write (e.g. the reader closed its end early) is
// returned to the caller but is not itself treated as fatal by callers
// that are about to exit anyway (spec.md §4.1 writer contract).
type Encoder struct {
	w io.Writer
}

// NewEncoder wraps w (typically the write end of a block's pipe, snd_fd).
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// WriteString emits a STRING frame.
func (e *Encoder) WriteString(s string) error {
	if _, err := e.w.Write([]byte{byte(TagString)}); err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
	if _, err := e.w.Write(lenBuf[:]); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	_, err := io.WriteString(e.w, s)
	return err
}

// WriteMetrics emits a METRICS frame.
func (e *Encoder) WriteMetrics(m model.Metrics) error {
	if _, err := e.w.Write([]byte{byte(TagMetrics)}); err != nil {
		return err
	}
	var buf [28]byte
	fields := [7]int{
		m.TotalPoints, m.EarnedPoints, m.TotalTests,
		m.PassedTests, m.FailedTests, m.TotalAssertions, m.PassedAssertions,
	}
	for i, f := range fields {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(f)))
	}
	_, err := e.w.Write(buf[:])
	return err
}

// WriteBool emits a BOOL frame.
func (e *Encoder) WriteBool(b bool) error {
	payload := []byte{byte(TagBool), 0}
	if b {
		payload[1] = 1
	}
	_, err := e.w.Write(payload)
	return err
}

// Decoder reads frames from an underlying byte stream, looping over short
// reads so a caller never has to reassemble a frame itself (spec.md §4.1
// reader contract).
type Decoder struct {
	r         io.Reader
	stringCap int
}

// NewDecoder wraps r. stringCap of 0 uses DefaultStringCap.
func NewDecoder(r io.Reader, stringCap int) *Decoder {
	if stringCap <= 0 {
		stringCap = DefaultStringCap
	}
	return &Decoder{r: r, stringCap: stringCap}
}

// ErrEndOfStream is returned when the peer has closed its write end and no
// further frames are available: spec.md's "(absent) / end-of-stream".
var ErrEndOfStream = errors.New("ipc: end of stream")

// ReadFrame reads exactly one frame, looping internally over short reads.
// A zero-byte read on the tag byte returns ErrEndOfStream. An unknown tag,
// or a STRING length exceeding the configured cap, returns a *ProtocolError.
func (d *Decoder) ReadFrame() (Frame, error) {
	var tagBuf [1]byte
	if err := readFull(d.r, tagBuf[:]); err != nil {
		return Frame{}, err
	}
	switch Tag(tagBuf[0]) {
	case TagString:
		var lenBuf [4]byte
		if err := readFullMid(d.r, lenBuf[:]); err != nil {
			return Frame{}, err
		}
		n := binary.LittleEndian.Uint32(lenBuf[:])
		if int(n) > d.stringCap {
			return Frame{}, &ProtocolError{Reason: fmt.Sprintf("string frame of %d bytes exceeds cap of %d", n, d.stringCap)}
		}
		if n == 0 {
			return Frame{Tag: TagString}, nil
		}
		payload := make([]byte, n)
		if err := readFullMid(d.r, payload); err != nil {
			return Frame{}, err
		}
		return Frame{Tag: TagString, Str: string(payload)}, nil
	case TagMetrics:
		var buf [28]byte
		if err := readFullMid(d.r, buf[:]); err != nil {
			return Frame{}, err
		}
		var fields [7]int
		for i := range fields {
			fields[i] = int(int32(binary.LittleEndian.Uint32(buf[i*4:])))
		}
		return Frame{Tag: TagMetrics, Metrics: model.Metrics{
			TotalPoints:      fields[0],
			EarnedPoints:     fields[1],
			TotalTests:       fields[2],
			PassedTests:      fields[3],
			FailedTests:      fields[4],
			TotalAssertions:  fields[5],
			PassedAssertions: fields[6],
		}}, nil
	case TagBool:
		var b [1]byte
		if err := readFullMid(d.r, b[:]); err != nil {
			return Frame{}, err
		}
		return Frame{Tag: TagBool, Bool: b[0] != 0}, nil
	default:
		return Frame{}, &ProtocolError{Reason: fmt.Sprintf("unknown frame tag %d", tagBuf[0])}
	}
}

// readFull is used for the leading tag byte: a clean EOF here (zero bytes
// read) means the peer is simply done, not an error.
func readFull(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	if n == 0 && errors.Is(err, io.EOF) {
		return ErrEndOfStream
	}
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrEndOfStream
		}
		return err
	}
	return nil
}

// readFullMid is used once a frame has started (tag byte consumed): any
// EOF here is an unexpected, truncated frame, surfaced as-is rather than
// silently treated as end-of-stream.
func readFullMid(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}
