package cli

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
)

// fileRecordRepository serves records loaded from an input file.
type fileRecordRepository struct {
	records []attendance.Record
}

func (r *fileRecordRepository) ListByEmployee(ctx context.Context, employeeUsername string, start, end time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.records {
		if rec.EmployeeUsername == employeeUsername && inRange(rec.OccurredOn, start, end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fileRecordRepository) ListBetween(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.records {
		if inRange(rec.OccurredOn, start, end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

type fileEmployeeRepository struct {
	roster []employee.Employee
}

func (r *fileEmployeeRepository) ListRoster(ctx context.Context) ([]employee.Employee, error) {
	return r.roster, nil
}

func (r *fileEmployeeRepository) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	for _, e := range r.roster {
		if e.Username == username {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
