package model

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024.03.09")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Fatalf("expected %v got %v", want, d)
	}
	if FormatDate(d) != "2024.03.09" {
		t.Fatalf("round trip failed: %s", FormatDate(d))
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, s := range []string{"", "2024-03-09", "garbage", "2024.13.01"} {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestDayNormalizesZone(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	local := time.Date(2024, 3, 9, 23, 30, 0, 0, loc)
	d := Day(local)
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Fatalf("not midnight UTC: %v", d)
	}
	if d.Year() != 2024 || d.Month() != 3 || d.Day() != 9 {
		t.Fatalf("calendar date changed: %v", d)
	}
}

func TestClampDays(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 15: 15, 30: 30, 31: 30, 500: 30}
	for in, want := range cases {
		if got := ClampDays(in); got != want {
			t.Fatalf("ClampDays(%d)=%d want %d", in, got, want)
		}
	}
}

func TestReservationSpan(t *testing.T) {
	if (Reservation{Days: 0}).Span() != 1 {
		t.Fatal("zero span must count as one day")
	}
	if (Reservation{Days: 5}).Span() != 5 {
		t.Fatal("span not preserved")
	}
}
