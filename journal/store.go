package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one submitted date's outcome within a batch.
type Record struct {
	BatchID   string    `json:"batch_id"`
	Plate     string    `json:"plate"`
	VisitDate time.Time `json:"visit_date"`
	Purpose   string    `json:"purpose"`
	Succeeded bool      `json:"succeeded"`
	Error     string    `json:"error,omitempty"`
	Time      time.Time `json:"time"`
}

// Query defines filters for retrieving records.
type Query struct {
	Plate   string
	BatchID string
	Start   time.Time
	End     time.Time
}

// Store persists submission Records and supports querying.
type Store interface {
	Append(ctx context.Context, recs []Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NewBatchID returns an identifier shared by every record of one
// submission run.
func NewBatchID() string { return uuid.NewString() }
