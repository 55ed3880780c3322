package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"gatepass/core/model"
)

// SQLiteStore persists submission records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS submissions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        batch_id TEXT,
        plate TEXT,
        visit_date TEXT,
        purpose TEXT,
        succeeded INTEGER,
        error TEXT,
        ts INTEGER
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Append writes the records to the database.
func (s *SQLiteStore) Append(ctx context.Context, recs []Record) error {
	for _, rec := range recs {
		succeeded := 0
		if rec.Succeeded {
			succeeded = 1
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO submissions (batch_id, plate, visit_date, purpose, succeeded, error, ts)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.BatchID, rec.Plate, model.FormatDate(rec.VisitDate), rec.Purpose,
			succeeded, rec.Error, rec.Time.Unix())
		if err != nil {
			return err
		}
	}
	return nil
}

// Query returns records matching q, newest first.
func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]Record, error) {
	var args []any
	query := `SELECT batch_id, plate, visit_date, purpose, succeeded, error, ts FROM submissions WHERE 1=1`
	if q.Plate != "" {
		query += ` AND plate = ?`
		args = append(args, q.Plate)
	}
	if q.BatchID != "" {
		query += ` AND batch_id = ?`
		args = append(args, q.BatchID)
	}
	if !q.Start.IsZero() {
		query += ` AND ts >= ?`
		args = append(args, q.Start.Unix())
	}
	if !q.End.IsZero() {
		query += ` AND ts <= ?`
		args = append(args, q.End.Unix())
	}
	query += ` ORDER BY ts DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var visitDate string
		var succeeded int
		var ts int64
		if err := rows.Scan(&rec.BatchID, &rec.Plate, &visitDate, &rec.Purpose, &succeeded, &rec.Error, &ts); err != nil {
			return nil, err
		}
		d, err := model.ParseDate(visitDate)
		if err != nil {
			return nil, fmt.Errorf("corrupt journal row: %w", err)
		}
		rec.VisitDate = d
		rec.Succeeded = succeeded == 1
		rec.Time = time.Unix(ts, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
