package event

import "github.com/grailbio/base/log"

// Level selects which of the core's messages a LogSink passes through, from
// the CLI's -q/-v/-vv flags. The default, Warn, matches the spec's default
// WARNING verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// LogSink is the concrete Sink wired up by cmd/trcls. It forwards warnings
// to grailbio/base/log's leveled loggers, gated by Level rather than the
// log package's own global state, so that -q/-v/-vv map onto this one
// Sink's behavior predictably regardless of what else links against log.
type LogSink struct {
	Level Level
}

// Warnf implements Sink. It is suppressed entirely at LevelError (the
// --quiet case), matching the spec's "quiet" verbosity which only surfaces
// fatal errors.
func (s LogSink) Warnf(format string, args ...interface{}) {
	if s.Level < LevelWarn {
		return
	}
	log.Error.Printf(format, args...)
}
