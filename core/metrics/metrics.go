package metrics

import "time"

// FetchEvent captures one reservation refresh cycle.
type FetchEvent struct {
	Pages        int
	Reservations int
	Skipped      int
	Time         time.Time
}

// SubmissionEvent captures one per-date submission outcome.
type SubmissionEvent struct {
	Plate     string
	VisitDate time.Time
	Succeeded bool
	Time      time.Time
}

// Sink records fetch and submission events for observability purposes.
// Close releases any connections the sink holds.
type Sink interface {
	RecordFetch(ev FetchEvent) error
	RecordSubmissions(evs []SubmissionEvent) error
	Close() error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordFetch(FetchEvent) error              { return nil }
func (NopSink) RecordSubmissions([]SubmissionEvent) error { return nil }
func (NopSink) Close() error                              { return nil }
