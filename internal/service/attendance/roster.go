package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
)

// DailyRosterStatus returns one status per roster employee for day, in roster
// order. Employees without a record that day are absent.
func DailyRosterStatus(roster []employee.Employee, index map[attendance.EmployeeDayKey]attendance.Record, day time.Time) []attendance.EmployeeDayStatus {
	dateKey := day.Format(attendance.DateLayout)

	statuses := make([]attendance.EmployeeDayStatus, 0, len(roster))
	for _, emp := range roster {
		status := attendance.EmployeeDayStatus{
			EmployeeUsername: emp.Username,
			DisplayName:      emp.DisplayName,
			Designation:      emp.Designation,
			DateKey:          dateKey,
			Classification:   attendance.ClassificationAbsent,
		}
		if record, ok := index[attendance.EmployeeDayKey{EmployeeUsername: emp.Username, DateKey: dateKey}]; ok {
			status.Classification = record.Classification()
			status.Remark = record.Remark
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// SummarizeRoster counts the statuses per classification.
func SummarizeRoster(statuses []attendance.EmployeeDayStatus) attendance.RosterSummary {
	var summary attendance.RosterSummary
	for _, s := range statuses {
		switch s.Classification {
		case attendance.ClassificationPresent:
			summary.Present++
		case attendance.ClassificationWarning:
			summary.Warning++
		default:
			summary.Absent++
		}
	}
	return summary
}
