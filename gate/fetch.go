package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"gatepass/core/model"
)

// maxPages bounds a fetch against a misbehaving or inconsistent server.
const maxPages = 50

type reservePage struct {
	TotalPages  int           `json:"totalPages"`
	ReserveList []reserveItem `json:"reserveList"`
}

type reserveItem struct {
	VisitReserveIdx int64  `json:"visitReserveIdx"`
	CarNo           string `json:"carNo"`
	VisitDate       string `json:"visitDate"`
	Purpose         string `json:"purpose"`
	Phone           string `json:"phone"`
	Days            int    `json:"days"`
}

// FetchStats summarizes one fetch cycle. Truncated is set when the
// server reported more pages than maxPages and the tail was not read.
type FetchStats struct {
	Pages     int
	Skipped   int
	Truncated bool
}

// FetchReservations retrieves every page of the reservation list, drops
// records dated before today, and returns the remainder sorted by (visit
// date, plate). That ordering is a contract callers rely on. Records with
// an unparseable visit date are skipped and counted, never fatal.
// Transport and auth failures propagate unchanged.
func (c *Client) FetchReservations(ctx context.Context) ([]model.Reservation, FetchStats, error) {
	return c.fetchSince(ctx, model.Day(time.Now()))
}

func (c *Client) fetchSince(ctx context.Context, today time.Time) ([]model.Reservation, FetchStats, error) {
	var out []model.Reservation
	var stats FetchStats
	totalPages := 1
	for page := 1; page <= totalPages && page <= maxPages; page++ {
		data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pc/reserves?pg=%d", page), nil)
		if err != nil {
			return nil, stats, err
		}
		var pg reservePage
		if err := json.Unmarshal(data, &pg); err != nil {
			return nil, stats, fmt.Errorf("decode reservations page %d: %w", page, err)
		}
		stats.Pages++
		c.log.Debugw("fetched reservation page", map[string]any{
			"page":    page,
			"records": len(pg.ReserveList),
		})
		if page == 1 && pg.TotalPages > 0 {
			totalPages = pg.TotalPages
			if totalPages > maxPages {
				stats.Truncated = true
				c.log.Warnf("server reports %d pages, stopping at %d", totalPages, maxPages)
			}
		}
		for _, it := range pg.ReserveList {
			d, err := model.ParseDate(it.VisitDate)
			if err != nil {
				stats.Skipped++
				c.log.Warnf("skipping reservation %d: %v", it.VisitReserveIdx, err)
				continue
			}
			if d.Before(today) {
				continue
			}
			days := it.Days
			if days < 1 {
				days = 1
			}
			out = append(out, model.Reservation{
				ID:        it.VisitReserveIdx,
				Plate:     it.CarNo,
				VisitDate: d,
				Purpose:   it.Purpose,
				Phone:     it.Phone,
				Days:      days,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].VisitDate.Equal(out[j].VisitDate) {
			return out[i].VisitDate.Before(out[j].VisitDate)
		}
		return out[i].Plate < out[j].Plate
	})
	return out, stats, nil
}
