package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteAppendQuery(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	batch := NewBatchID()
	now := time.Now().UTC().Truncate(time.Second)
	recs := []Record{
		{BatchID: batch, Plate: "12가3456", VisitDate: time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC), Purpose: "기타", Succeeded: true, Time: now},
		{BatchID: batch, Plate: "12가3456", VisitDate: time.Date(2031, 5, 2, 0, 0, 0, 0, time.UTC), Purpose: "기타", Succeeded: false, Error: "slot taken", Time: now},
		{BatchID: NewBatchID(), Plate: "99나9999", VisitDate: time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC), Succeeded: true, Time: now},
	}
	if err := store.Append(context.Background(), recs); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := store.Query(context.Background(), Query{Plate: "12가3456"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records got %d", len(got))
	}
	for _, r := range got {
		if r.BatchID != batch {
			t.Fatalf("batch id lost: %q", r.BatchID)
		}
	}

	got, err = store.Query(context.Background(), Query{BatchID: batch})
	if err != nil || len(got) != 2 {
		t.Fatalf("batch query: %v %v", got, err)
	}
	var failed *Record
	for i := range got {
		if !got[i].Succeeded {
			failed = &got[i]
		}
	}
	if failed == nil || failed.Error != "slot taken" {
		t.Fatalf("failure detail lost: %+v", got)
	}
}

func TestSQLiteTimeWindow(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now()
	recs := []Record{
		{BatchID: "a", Plate: "AA", VisitDate: time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC), Succeeded: true, Time: old},
		{BatchID: "b", Plate: "AA", VisitDate: time.Date(2031, 5, 2, 0, 0, 0, 0, time.UTC), Succeeded: true, Time: recent},
	}
	if err := store.Append(context.Background(), recs); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := store.Query(context.Background(), Query{Start: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].BatchID != "b" {
		t.Fatalf("time window filter wrong: %+v", got)
	}
}
