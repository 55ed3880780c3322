package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format the reservation service uses for calendar
// dates.
const DateLayout = "2006.01.02"

// MaxReservationDays is the longest span the service accepts for a single
// reservation. Spans are clamped client-side so the request is not
// rejected outright.
const MaxReservationDays = 30

// PurposeOptions lists the visit purposes the service accepts, in the
// order it presents them. The first entry is the default; anything else is
// free text submitted under the "other" option.
var PurposeOptions = []string{
	"지인/가족방문",
	"과외/수업",
	"돌봄도우미(청소)",
	"기타",
}

// DefaultPurpose returns the purpose used when the caller supplies none.
func DefaultPurpose() string { return PurposeOptions[0] }

// Reservation is one visitor-vehicle registration held by the remote
// service. Records are never mutated in place: a change is a delete plus a
// new submission.
type Reservation struct {
	ID        int64
	Plate     string
	VisitDate time.Time
	Purpose   string
	Phone     string
	Days      int
}

// Span returns the number of consecutive days the reservation occupies,
// treating a non-positive stored span as a single day.
func (r Reservation) Span() int {
	if r.Days < 1 {
		return 1
	}
	return r.Days
}

// Day truncates t to its calendar date, represented as midnight UTC so
// dates compare and hash independently of the wall-clock zone they came
// from.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a service-formatted date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse visit date %q: %w", s, err)
	}
	return Day(t), nil
}

// FormatDate renders t in the service's date format.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// ClampDays bounds a requested day span to what the service accepts.
func ClampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > MaxReservationDays {
		return MaxReservationDays
	}
	return days
}
