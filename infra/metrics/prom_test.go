package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "gatepass/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	ps := sink.(*PromSink)

	if err := sink.RecordFetch(coremetrics.FetchEvent{Pages: 2, Reservations: 5, Skipped: 1, Time: time.Now()}); err != nil {
		t.Fatalf("record fetch: %v", err)
	}
	if got := testutil.ToFloat64(ps.fetches); got != 1 {
		t.Fatalf("fetch counter: %v", got)
	}
	if got := testutil.ToFloat64(ps.skipped); got != 1 {
		t.Fatalf("skipped counter: %v", got)
	}
	if got := testutil.ToFloat64(ps.upcoming); got != 5 {
		t.Fatalf("upcoming gauge: %v", got)
	}

	evs := []coremetrics.SubmissionEvent{
		{Plate: "AA", Succeeded: true, Time: time.Now()},
		{Plate: "AA", Succeeded: false, Time: time.Now()},
	}
	if err := sink.RecordSubmissions(evs); err != nil {
		t.Fatalf("record submissions: %v", err)
	}
	if got := testutil.ToFloat64(ps.submissions.WithLabelValues("AA", "true")); got != 1 {
		t.Fatalf("submission counter: %v", got)
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second register must reuse collectors: %v", err)
	}
}
