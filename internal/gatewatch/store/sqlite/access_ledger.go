package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/gatewatch/server/internal/db"
	"github.com/gatewatch/server/internal/gatewatch/store"
	"github.com/gatewatch/server/internal/gatewatch/types"
)

type AccessLedger struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAccessLedger(db *sql.DB, writer *dbpkg.Worker) *AccessLedger {
	return &AccessLedger{db: db, writer: writer}
}

// Append assigns the record id and timestamp inside the insert transaction.
// Caller-supplied ID/RecordedAt are ignored.
func (l *AccessLedger) Append(ctx context.Context, rec store.AccessRecord) (store.AccessRecord, error) {
	var operatorID any
	if rec.OperatorID != nil {
		operatorID = *rec.OperatorID
	}
	var confidence any
	if rec.Confidence != nil {
		confidence = *rec.Confidence
	}

	err := l.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		nowMs := time.Now().UTC().UnixMilli()

		res, err := tx.ExecContext(ctx, `
INSERT INTO access_records(plate, recorded_at_ms, status, mode, operator_id, confidence)
VALUES (?, ?, ?, ?, ?, ?);
`,
			rec.Plate, nowMs, string(rec.Status), string(rec.Mode), operatorID, confidence,
		)
		if err != nil {
			return fmt.Errorf("Append insert: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Append last insert id: %w", err)
		}

		rec.ID = id
		rec.RecordedAt = time.UnixMilli(nowMs).UTC()
		return nil
	})
	if err != nil {
		return store.AccessRecord{}, err
	}
	return rec, nil
}

const entrySelect = `
SELECT r.record_id, r.plate, r.recorded_at_ms, r.status, r.mode, r.operator_id, r.confidence,
       IFNULL(e.full_name, ''), IFNULL(o.name, ''),
       IFNULL(v.brand, ''), IFNULL(v.model, ''), IFNULL(v.vehicle_type, '')
FROM access_records r
LEFT JOIN vehicles  v ON v.plate = r.plate
LEFT JOIN employees e ON e.employee_id = v.employee_id
LEFT JOIN operators o ON o.operator_id = r.operator_id
`

func (l *AccessLedger) Get(ctx context.Context, id int64) (store.AccessEntry, error) {
	row := l.db.QueryRowContext(ctx, entrySelect+`WHERE r.record_id = ?;`, id)

	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return store.AccessEntry{}, store.ErrNotFound
	}
	if err != nil {
		return store.AccessEntry{}, fmt.Errorf("Get scan: %w", err)
	}
	return entry, nil
}

// List returns every ledger entry, most recent first. Record id breaks ties
// between appends that landed in the same millisecond.
func (l *AccessLedger) List(ctx context.Context) ([]store.AccessEntry, error) {
	rows, err := l.db.QueryContext(ctx, entrySelect+`ORDER BY r.recorded_at_ms DESC, r.record_id DESC;`)
	if err != nil {
		return nil, fmt.Errorf("List query: %w", err)
	}
	defer rows.Close()

	var out []store.AccessEntry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("List scan: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List rows: %w", err)
	}
	return out, nil
}

func (l *AccessLedger) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64

	err := l.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM access_records WHERE recorded_at_ms < ?;`,
			cutoff.UTC().UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("PruneOlderThan delete: %w", err)
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("PruneOlderThan rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func scanEntry(scan func(dest ...any) error) (store.AccessEntry, error) {
	var entry store.AccessEntry
	var recordedMs int64
	var status, mode string
	var operatorID sql.NullInt64
	var confidence sql.NullFloat64

	err := scan(
		&entry.ID, &entry.Plate, &recordedMs, &status, &mode, &operatorID, &confidence,
		&entry.OwnerName, &entry.OperatorName,
		&entry.Brand, &entry.Model, &entry.VehicleType,
	)
	if err != nil {
		return store.AccessEntry{}, err
	}

	entry.RecordedAt = time.UnixMilli(recordedMs).UTC()
	entry.Status = types.AccessStatus(status)
	entry.Mode = types.AccessMode(mode)
	if operatorID.Valid {
		v := operatorID.Int64
		entry.OperatorID = &v
	}
	if confidence.Valid {
		v := confidence.Float64
		entry.Confidence = &v
	}
	return entry, nil
}
