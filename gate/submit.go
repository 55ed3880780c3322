package gate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gatepass/core/model"
)

type submitPayload struct {
	VisitDate string `json:"visitDate"`
	Purpose   string `json:"purpose"`
	CarNo     string `json:"carNo"`
	Days      int    `json:"days"`
	Phone     string `json:"phone"`
}

// Submit creates one reservation. An empty purpose falls back to the
// service's first option and the day span is clamped to what the service
// accepts.
func (c *Client) Submit(ctx context.Context, plate string, date time.Time, phone, purpose string, days int) error {
	if purpose == "" {
		purpose = model.DefaultPurpose()
	}
	payload := submitPayload{
		VisitDate: model.FormatDate(date),
		Purpose:   purpose,
		CarNo:     plate,
		Days:      model.ClampDays(days),
		Phone:     phone,
	}
	_, err := c.do(ctx, http.MethodPost, "/pc/reserve/", payload)
	return err
}

// SubmitOutcome records the result of one date's submission.
type SubmitOutcome struct {
	Date time.Time
	Err  error
}

// SubmitAll creates one single-day reservation per date. Consecutive free
// days are deliberately not merged into a multi-day record: one record per
// calendar day keeps deletion and display predictable. Dates are
// independent remote mutations, so one failure does not stop the rest;
// outcomes come back in input order.
func (c *Client) SubmitAll(ctx context.Context, dates []time.Time, plate, phone, purpose string) []SubmitOutcome {
	outcomes := make([]SubmitOutcome, 0, len(dates))
	for _, d := range dates {
		err := c.Submit(ctx, plate, d, phone, purpose, 1)
		if err != nil {
			c.log.Errorf("reserve %s on %s: %v", plate, model.FormatDate(d), err)
		}
		outcomes = append(outcomes, SubmitOutcome{Date: d, Err: err})
	}
	return outcomes
}

// CountOutcomes splits outcomes into success and failure totals.
func CountOutcomes(outcomes []SubmitOutcome) (succeeded, failed int) {
	for _, o := range outcomes {
		if o.Err == nil {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

// Delete removes the reservation with the given remote identifier.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/pc/reserve/%d", id), nil)
	return err
}
