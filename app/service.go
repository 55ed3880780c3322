package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gatepass/config"
	coremetrics "gatepass/core/metrics"
	"gatepass/core/model"
	"gatepass/core/monitoring"
	"gatepass/core/reserve"
	"gatepass/core/schedule"
	"gatepass/gate"
	"gatepass/history"
	"gatepass/infra/logger"
	"gatepass/infra/metrics"
	inframonitoring "gatepass/infra/monitoring"
	"gatepass/internal/eventbus"
	"gatepass/journal"
)

// RefreshDone is published after each reservation refresh.
type RefreshDone struct {
	Reservations int
	Skipped      int
}

// BatchDone is published after a submission batch completes.
type BatchDone struct {
	BatchID   string
	Plate     string
	Succeeded int
	Failed    int
}

// Service wires the gate client, history store, submission journal and
// observability sinks behind the operations the CLI exposes.
type Service struct {
	Client  *gate.Client
	History *history.Store
	Journal journal.Store
	Bus     *eventbus.Bus

	sink          coremetrics.Sink
	log           logger.Logger
	promEnabled   bool
	promPort      string
	watchInterval time.Duration
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	sink, err := metrics.New(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	mon, err := inframonitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	monitoring.Init(mon)

	jstore, err := journal.NewSQLiteStore(cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	return &Service{
		Client:        gate.New(cfg.Gate),
		History:       history.NewStore(cfg.History.Path),
		Journal:       jstore,
		Bus:           eventbus.New(),
		sink:          sink,
		log:           logg,
		promEnabled:   cfg.Metrics.PrometheusEnabled,
		promPort:      cfg.Metrics.PrometheusPort,
		watchInterval: time.Duration(cfg.Watch.IntervalMinutes) * time.Minute,
	}, nil
}

// Close releases held resources and flushes pending error reports.
func (s *Service) Close() error {
	s.Bus.Close()
	monitoring.Flush(2 * time.Second)
	return errors.Join(s.sink.Close(), s.Journal.Close())
}

// Refresh fetches the current reservation list and derives the occupied
// date index from it. The index is a projection of exactly this fetch; it
// goes stale as soon as the server changes, which is accepted.
func (s *Service) Refresh(ctx context.Context) ([]model.Reservation, reserve.Index, gate.FetchStats, error) {
	reservations, stats, err := s.Client.FetchReservations(ctx)
	if err != nil {
		monitoring.CaptureException(err, map[string]string{"op": "fetch"})
		return nil, nil, stats, err
	}
	if stats.Skipped > 0 {
		s.log.Warnf("refresh skipped %d malformed records", stats.Skipped)
	}
	if err := s.sink.RecordFetch(coremetrics.FetchEvent{
		Pages:        stats.Pages,
		Reservations: len(reservations),
		Skipped:      stats.Skipped,
		Time:         time.Now(),
	}); err != nil {
		s.log.Errorf("record fetch metrics: %v", err)
	}
	s.Bus.Publish(RefreshDone{Reservations: len(reservations), Skipped: stats.Skipped})
	return reservations, reserve.Build(reservations, ""), stats, nil
}

// RegisterRequest describes one recurring-schedule registration run.
type RegisterRequest struct {
	Plate     string
	Phone     string
	Purpose   string
	Selection schedule.Selection
	DryRun    bool
}

// Report summarizes a registration run. With DryRun set, Outcomes is nil
// and Planned shows what would have been submitted.
type Report struct {
	Candidates int
	Duplicates int
	Planned    []time.Time
	Outcomes   []gate.SubmitOutcome
	BatchID    string
}

// Register expands the schedule, drops dates the vehicle already holds,
// and submits one single-day reservation per remaining date. The phone
// falls back to the history entry for the plate and is remembered on a
// confirmed (non dry-run) plan.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Report, error) {
	if req.Plate == "" {
		return nil, errors.New("vehicle plate is required")
	}
	phone := req.Phone
	if phone == "" {
		phone, _ = s.History.Phone(req.Plate)
	}
	if phone == "" {
		return nil, fmt.Errorf("no phone given and none remembered for %s", req.Plate)
	}
	purpose := req.Purpose
	if purpose == "" {
		purpose = model.DefaultPurpose()
	}

	candidates := schedule.Expand(req.Selection, time.Now())
	report := &Report{Candidates: len(candidates)}
	if len(candidates) == 0 {
		return report, nil
	}

	_, ix, _, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	report.Planned = reserve.Plan(candidates, req.Plate, ix)
	report.Duplicates = len(candidates) - len(report.Planned)
	if req.DryRun || len(report.Planned) == 0 {
		return report, nil
	}

	if err := s.History.Remember(req.Plate, phone); err != nil {
		s.log.Warnf("remember plate %s: %v", req.Plate, err)
	}

	report.BatchID = journal.NewBatchID()
	report.Outcomes = s.Client.SubmitAll(ctx, report.Planned, req.Plate, phone, purpose)
	s.recordBatch(ctx, report, req.Plate, purpose)
	return report, nil
}

func (s *Service) recordBatch(ctx context.Context, report *Report, plate, purpose string) {
	now := time.Now()
	recs := make([]journal.Record, 0, len(report.Outcomes))
	evs := make([]coremetrics.SubmissionEvent, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		rec := journal.Record{
			BatchID:   report.BatchID,
			Plate:     plate,
			VisitDate: o.Date,
			Purpose:   purpose,
			Succeeded: o.Err == nil,
			Time:      now,
		}
		if o.Err != nil {
			rec.Error = o.Err.Error()
			monitoring.CaptureException(o.Err, map[string]string{"op": "submit"})
		}
		recs = append(recs, rec)
		evs = append(evs, coremetrics.SubmissionEvent{
			Plate:     plate,
			VisitDate: o.Date,
			Succeeded: o.Err == nil,
			Time:      now,
		})
	}
	if err := s.Journal.Append(ctx, recs); err != nil {
		s.log.Errorf("append journal: %v", err)
	}
	if err := s.sink.RecordSubmissions(evs); err != nil {
		s.log.Errorf("record submission metrics: %v", err)
	}
	ok, failed := gate.CountOutcomes(report.Outcomes)
	s.Bus.Publish(BatchDone{BatchID: report.BatchID, Plate: plate, Succeeded: ok, Failed: failed})
}

// Delete removes one reservation by its remote identifier.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Client.Delete(ctx, id); err != nil {
		monitoring.CaptureException(err, map[string]string{"op": "delete"})
		return err
	}
	return nil
}

// Watch runs Register on the configured interval until ctx is done,
// picking up dates that roll into the schedule window as weeks pass. The
// duplicate index makes every cycle idempotent against the server state.
func (s *Service) Watch(ctx context.Context, req RegisterRequest) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	ticker := time.NewTicker(s.watchInterval)
	defer ticker.Stop()
	for {
		report, err := s.Register(ctx, req)
		if err != nil {
			s.log.Errorf("watch cycle: %v", err)
		} else if len(report.Outcomes) > 0 {
			ok, failed := gate.CountOutcomes(report.Outcomes)
			s.log.Infof("watch cycle: %d submitted, %d failed, %d duplicates", ok, failed, report.Duplicates)
		} else {
			s.log.Debugf("watch cycle: nothing to submit")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
