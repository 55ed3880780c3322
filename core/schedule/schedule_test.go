package schedule

import (
	"testing"
	"time"
)

func TestExpandMondayWednesday(t *testing.T) {
	// 2024-01-01 is a Monday.
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sel := Selection{Weekdays: []time.Weekday{time.Monday, time.Wednesday}, Weeks: 1}
	got := Expand(sel, anchor)
	want := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("date %d: expected %v got %v", i, want[i], got[i])
		}
	}
}

func TestExpandEmptySelection(t *testing.T) {
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Expand(Selection{Weeks: 12}, anchor); len(got) != 0 {
		t.Fatalf("expected empty expansion, got %v", got)
	}
}

func TestExpandAscendingAndDeterministic(t *testing.T) {
	anchor := time.Date(2024, 5, 17, 15, 42, 0, 0, time.Local)
	sel := Selection{Weekdays: []time.Weekday{time.Saturday, time.Tuesday}, Weeks: 4}
	a := Expand(sel, anchor)
	b := Expand(sel, anchor)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("expansion not deterministic: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("expansion not deterministic at %d", i)
		}
		if i > 0 && !a[i-1].Before(a[i]) {
			t.Fatalf("dates not strictly ascending at %d: %v %v", i, a[i-1], a[i])
		}
		if wd := a[i].Weekday(); wd != time.Saturday && wd != time.Tuesday {
			t.Fatalf("unexpected weekday %v", wd)
		}
	}
}

func TestExpandIncludesAnchor(t *testing.T) {
	// Anchor itself qualifies when its weekday is selected.
	anchor := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC) // Wednesday
	got := Expand(Selection{Weekdays: []time.Weekday{time.Wednesday}, Weeks: 1}, anchor)
	if len(got) == 0 || !got[0].Equal(anchor) {
		t.Fatalf("anchor not included: %v", got)
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("mon, Wednesday,mon")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(got) != 2 || got[0] != time.Monday || got[1] != time.Wednesday {
		t.Fatalf("unexpected result: %v", got)
	}
	if _, err := ParseWeekdays("mon,funday"); err == nil {
		t.Fatal("expected error for unknown weekday")
	}
}
