package metrics

import (
	"errors"

	coremetrics "gatepass/core/metrics"
)

// MultiSink fans events out to several sinks, collecting all errors.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordFetch(ev coremetrics.FetchEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordFetch(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordSubmissions(evs []coremetrics.SubmissionEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordSubmissions(evs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every underlying sink, collecting all errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
