package attendance

import (
	"context"
	"time"
)

// RecordRepository reads attendance records. Results are returned in insertion
// order so that duplicate employee+day records resolve as last write wins.
type RecordRepository interface {
	// ListByEmployee returns one employee's records with start <= occurred_at < end
	ListByEmployee(ctx context.Context, employeeUsername string, start, end time.Time) ([]Record, error)

	// ListBetween returns all employees' records with start <= occurred_at < end
	ListBetween(ctx context.Context, start, end time.Time) ([]Record, error)
}
