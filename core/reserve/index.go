package reserve

import (
	"time"

	"gatepass/core/model"
)

// Key identifies one occupied (plate, calendar date) slot. Dates must be
// normalized with model.Day before use.
type Key struct {
	Plate string
	Date  time.Time
}

// Index is the set of occupied slots derived from a reservation list. It
// is a pure projection of that list: rebuild it after every refetch, never
// mutate it independently. Between refetches it is stale by design.
type Index map[Key]struct{}

// Build expands each reservation into one entry per occupied day. A
// reservation with span N occupies N consecutive dates starting at its
// visit date. When plate is non-empty only that vehicle's reservations are
// indexed.
func Build(reservations []model.Reservation, plate string) Index {
	ix := make(Index)
	for _, r := range reservations {
		if plate != "" && r.Plate != plate {
			continue
		}
		base := model.Day(r.VisitDate)
		for d := 0; d < r.Span(); d++ {
			ix[Key{Plate: r.Plate, Date: base.AddDate(0, 0, d)}] = struct{}{}
		}
	}
	return ix
}

// Reserved reports whether the vehicle already holds a reservation on the
// given date.
func (ix Index) Reserved(plate string, date time.Time) bool {
	_, ok := ix[Key{Plate: plate, Date: model.Day(date)}]
	return ok
}
