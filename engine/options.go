package engine

import "time"

// DefaultTimeLimit is the per-block wall-clock budget applied when a
// subtree has at least one point-bearing block (spec.md §5, "Cancellation
// & timeouts"). 1000ms matches the original's default.
const DefaultTimeLimit = 1000 * time.Millisecond

type settings struct {
	verbose   bool
	timeLimit time.Duration
	stringCap int
	logger    Logger
}

func defaultSettings() settings {
	return settings{
		verbose:   false,
		timeLimit: DefaultTimeLimit,
		stringCap: 0, // resolved to ipc.DefaultStringCap by the decoder
		logger:    nopLogger{},
	}
}

// Option configures a Grader constructed with New.
type Option func(*settings)

// WithVerbose enables emitting a diagnostic frame for every Require call,
// not just failing ones (spec.md §4.6).
func WithVerbose(v bool) Option {
	return func(s *settings) { s.verbose = v }
}

// WithTimeLimit overrides the per-block wall-clock budget (spec.md §5).
func WithTimeLimit(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeLimit = d
		}
	}
}

// WithFrameCap overrides the STRING frame payload cap (spec.md §4.1, §9).
// A value <= 0 restores the ipc package default (16 MiB).
func WithFrameCap(bytes int) Option {
	return func(s *settings) { s.stringCap = bytes }
}

// WithLogger attaches a structured logger for harness-internal operational
// events (fork failure, protocol errors, fatal supervisor faults). It is
// never used for the author-facing protocol output on stdout.
func WithLogger(l Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
