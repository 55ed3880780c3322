package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "gatepass/core/metrics"
)

// PromSink records fetch and submission events in Prometheus metrics.
type PromSink struct {
	fetches     prometheus.Counter
	skipped     prometheus.Counter
	upcoming    prometheus.Gauge
	submissions *prometheus.CounterVec
}

// NewPromSink registers metrics on the default Prometheus registerer. The
// Prometheus server is started separately on cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	fetches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reservation_fetch_cycles_total",
		Help: "Total number of reservation list refreshes",
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reservation_fetch_skipped_records_total",
		Help: "Reservation records skipped for an unparseable visit date",
	})
	upcoming := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reservation_upcoming",
		Help: "Present and future reservations seen in the last refresh",
	})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_submissions_total",
		Help: "Total number of per-date reservation submissions",
	}, []string{"plate", "succeeded"})

	if err := reg.Register(fetches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fetches = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(skipped); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			skipped = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(upcoming); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			upcoming = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(submissions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			submissions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{fetches: fetches, skipped: skipped, upcoming: upcoming, submissions: submissions}, nil
}

// RecordFetch updates the refresh counters and the upcoming gauge.
func (s *PromSink) RecordFetch(ev coremetrics.FetchEvent) error {
	s.fetches.Inc()
	s.skipped.Add(float64(ev.Skipped))
	s.upcoming.Set(float64(ev.Reservations))
	return nil
}

// RecordSubmissions increments the counter for each per-date outcome.
func (s *PromSink) RecordSubmissions(evs []coremetrics.SubmissionEvent) error {
	for _, ev := range evs {
		s.submissions.WithLabelValues(ev.Plate, strconv.FormatBool(ev.Succeeded)).Inc()
	}
	return nil
}

// Close is a no-op; registered collectors stay with the registerer.
func (s *PromSink) Close() error { return nil }
