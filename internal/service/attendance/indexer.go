package attendance

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
)

// IndexByDate keys records by their local calendar date. It is meant for one
// employee's calendar, so records of different employees on the same day collide.
// Duplicates resolve as last write wins in input order.
func IndexByDate(records []attendance.Record) map[string]attendance.Record {
	index := make(map[string]attendance.Record, len(records))
	for _, record := range records {
		index[record.DateKey()] = record
	}
	return index
}

// IndexByEmployee keys records by employee and local calendar date, for
// roster-wide lookups. Duplicates resolve as last write wins in input order.
func IndexByEmployee(records []attendance.Record) map[attendance.EmployeeDayKey]attendance.Record {
	index := make(map[attendance.EmployeeDayKey]attendance.Record, len(records))
	for _, record := range records {
		index[attendance.EmployeeDayKey{
			EmployeeUsername: record.EmployeeUsername,
			DateKey:          record.DateKey(),
		}] = record
	}
	return index
}
