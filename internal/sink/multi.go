package sink

import (
	"errors"

	"crossgen/internal/gridstate"
)

// MultiSink fans out each emission to every attached sink, collecting
// (not short-circuiting on) individual failures.
type MultiSink struct {
	sinks []gridstate.Sink
}

// NewMultiSink returns a MultiSink wrapping sinks. Nil entries are
// skipped, so callers can conditionally build the slice without
// filtering it themselves.
func NewMultiSink(sinks ...gridstate.Sink) *MultiSink {
	var filtered []gridstate.Sink
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &MultiSink{sinks: filtered}
}

func (m *MultiSink) EmitSolvable(g *gridstate.Grid) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.EmitSolvable(g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) EmitCloseCall(g *gridstate.Grid) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.EmitCloseCall(g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
