package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Records are read in insertion (id) order; last write wins on duplicates.
const (
	listRecordsByEmployeeQuery = `
		SELECT employee_username, occurred_at, remark
		FROM attendance_records
		WHERE employee_username = $1
		  AND occurred_at >= $2
		  AND occurred_at < $3
		ORDER BY id ASC
	`

	listRecordsBetweenQuery = `
		SELECT employee_username, occurred_at, remark
		FROM attendance_records
		WHERE occurred_at >= $1
		  AND occurred_at < $2
		ORDER BY id ASC
	`
)

type recordRepository struct {
	db  database.Querier
	loc *time.Location
}

// NewRecordRepository returns records normalised to calendar days in loc.
func NewRecordRepository(db database.Querier, loc *time.Location) attendance.RecordRepository {
	if loc == nil {
		loc = time.Local
	}
	return &recordRepository{db: db, loc: loc}
}

// ListByEmployee implements attendance.RecordRepository.
func (r *recordRepository) ListByEmployee(ctx context.Context, employeeUsername string, start, end time.Time) ([]attendance.Record, error) {
	rows, err := r.db.Query(ctx, listRecordsByEmployeeQuery, employeeUsername, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records by employee: %w", err)
	}

	records, err := r.scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance records: %w", err)
	}
	return records, nil
}

// ListBetween implements attendance.RecordRepository.
func (r *recordRepository) ListBetween(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	rows, err := r.db.Query(ctx, listRecordsBetweenQuery, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	records, err := r.scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance records: %w", err)
	}
	return records, nil
}

func (r *recordRepository) scanRecords(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var (
			username   string
			occurredAt time.Time
			remark     *string
		)
		if err := rows.Scan(&username, &occurredAt, &remark); err != nil {
			return nil, err
		}

		text := ""
		if remark != nil {
			text = *remark
		}
		records = append(records, attendance.NewRecord(username, occurredAt, text, r.loc))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
