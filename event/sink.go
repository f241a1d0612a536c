// Package event decouples the annotation core from any particular logging
// backend. Core packages accept a Sink rather than calling a process-wide
// logger directly, so they stay testable in isolation; cmd/trcls is the only
// place that wires a Sink to a concrete log implementation.
package event

// Sink receives warnings emitted by the core while it recovers from
// segment- or transcript-level errors (e.g. an unmapped alignment dropped
// from a read group). It is never used for fatal conditions: those are
// returned as errors and handled by the caller.
type Sink interface {
	Warnf(format string, args ...interface{})
}

// Nop discards every event. It is the default Sink when callers (tests, or
// library users who don't care about warnings) don't supply one.
type Nop struct{}

// Warnf implements Sink.
func (Nop) Warnf(string, ...interface{}) {}

// OrNop returns sink if non-nil, otherwise a Nop. Core constructors use this
// so callers are never required to pass a sink.
func OrNop(sink Sink) Sink {
	if sink == nil {
		return Nop{}
	}
	return sink
}
