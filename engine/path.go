package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Environment variables carrying a re-exec'd block's identity and inherited
// configuration. Grounded on the re-exec idiom of docker/pkg/reexec and
// cloudflare/tableflip, which likewise pass process identity through the
// environment rather than argv, since argv is already claimed by the CLI's
// own flags (spec.md §4.8, §10).
const (
	// EnvBlockPath carries the serialized Path from the root to the exact
	// block a re-exec'd process must become.
	EnvBlockPath = "PROCTEST_BLOCK_PATH"
	// EnvPointsSpecified carries whether any block from the root down to
	// (and including) the target has a non-zero point weight.
	EnvPointsSpecified = "PROCTEST_POINTS_SPECIFIED"
	// EnvRunID carries the run correlation id (spec.md §3 supplement).
	EnvRunID = "PROCTEST_RUN_ID"
	// EnvVerbose mirrors the -verbose flag into re-exec'd children.
	EnvVerbose = "PROCTEST_VERBOSE"
	// EnvTimeLimitMS mirrors the per-block time limit, in milliseconds.
	EnvTimeLimitMS = "PROCTEST_TIME_LIMIT_MS"
	// EnvFrameCap mirrors the STRING frame cap, in bytes.
	EnvFrameCap = "PROCTEST_FRAME_CAP"
)

// Path identifies one block by its sequence of sibling indices from the
// root down to the target, e.g. Path{0, 2, 1} means "the root's 1st child
// (0-indexed), that child's 3rd child, that child's 2nd child" (spec.md
// §4.8). It is how a re-exec'd process finds its way back to the exact
// closure it must run for real, since Go closures cannot be serialized
// across a process boundary.
type Path []int

// String renders the path as a comma-separated list, e.g. "0,2,1". An
// empty path (the root) renders as the empty string.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// ParsePath parses the output of Path.String. The empty string parses to
// an empty, non-nil Path.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ",")
	out := make(Path, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("engine: malformed block path %q: %w", s, err)
		}
		out[i] = n
	}
	return out, nil
}

// Append returns a new Path with idx appended, never aliasing p's backing
// array.
func (p Path) Append(idx int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = idx
	return out
}
