package report

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyAttendanceReportRequest struct {
	Month string `json:"month"` // YYYY-MM, defaults to the current month
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month != "" {
		if _, valid := validator.IsValidMonth(r.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyAttendanceReport struct {
	Month       string `json:"month"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	WorkingDays int    `json:"working_days"`
	GeneratedAt string `json:"generated_at"`

	Employees []MonthlyAttendanceEmployee `json:"employees"`
}

type MonthlyAttendanceEmployee struct {
	Employee   attendance.EmployeeInfo           `json:"employee"`
	Statistics attendance.StatisticsResponse     `json:"statistics"`
	Cells      []attendance.CalendarCellResponse `json:"cells"`
}

type ExportReportResponse struct {
	Month string `json:"month"`
	Path  string `json:"path"`
	URL   string `json:"url"`
}
