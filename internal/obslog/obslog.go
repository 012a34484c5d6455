// Package obslog backs engine.Logger with a real structured logger, built
// the way the rest of the joeycumines stack wires one up: a
// logiface.Logger[*izerolog.Event] over github.com/rs/zerolog. It is used
// only for harness-internal operational events, never for the
// author-facing protocol output the grader writes to stdout or forwards
// as STRING frames.
package obslog

import (
	"os"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// Logger wraps a logiface.Logger[*izerolog.Event].
type Logger struct {
	l *logiface.Logger[*izerolog.Event]
}

// New builds a Logger writing newline-delimited JSON to w (os.Stderr by
// convention, keeping stdout reserved for the grader's own protocol
// output). quiet raises the minimum level to warn, suppressing routine
// run-start/run-end notices.
func New(w *os.File, quiet bool) *Logger {
	zl := zerolog.New(w).With().Timestamp().Logger()
	level := logiface.LevelInformational
	if quiet {
		level = logiface.LevelWarning
	}
	return &Logger{
		l: logiface.New(
			izerolog.WithZerolog(zl),
			logiface.WithLevel[*izerolog.Event](level),
		),
	}
}

// Info logs a routine event (run start, run end).
func (o *Logger) Info(msg string, kv ...any) {
	apply(o.l.Info(), kv).Log(msg)
}

// Warn logs a recoverable anomaly (a frame could not be written upward, a
// block's output could not be read, a timed-out block's process group
// could not be killed).
func (o *Logger) Warn(msg string, kv ...any) {
	apply(o.l.Warning(), kv).Log(msg)
}

// Err logs an operational failure (fork failed, pipe broke).
func (o *Logger) Err(msg string, err error, kv ...any) {
	apply(o.l.Err().Err(err), kv).Log(msg)
}

// apply walks kv as alternating key/value pairs, same convention as
// zerolog's own Fields-less chained calls.
func apply(b *logiface.Builder[*izerolog.Event], kv []any) *logiface.Builder[*izerolog.Event] {
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		switch v := kv[i+1].(type) {
		case string:
			b = b.Str(key, v)
		case int:
			b = b.Int(key, v)
		case bool:
			b = b.Bool(key, v)
		case error:
			b = b.Err(v)
		default:
			b = b.Interface(key, v)
		}
	}
	return b
}
