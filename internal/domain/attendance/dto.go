package attendance

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// RAW INPUT
// ========================================

// RawRecord is an attendance record as delivered by the transport layer,
// already decrypted. OccurredAt accepts RFC3339, "YYYY-MM-DD HH:MM:SS" or a
// bare "YYYY-MM-DD" date.
type RawRecord struct {
	EmployeeUsername string  `json:"employee_username" yaml:"employee_username"`
	OccurredAt       string  `json:"occurred_at" yaml:"occurred_at"`
	Remark           *string `json:"remark,omitempty" yaml:"remark,omitempty"`
}

// ParseRecord converts a raw record into a Record on its local calendar day in loc.
func ParseRecord(raw RawRecord, loc *time.Location) (Record, error) {
	if loc == nil {
		loc = time.Local
	}

	occurredAt, ok := parseTimestamp(raw.OccurredAt, loc)
	if !ok {
		return Record{}, fmt.Errorf("%w: occurred_at %q is not a valid date", ErrInvalidArgument, raw.OccurredAt)
	}

	remark := ""
	if raw.Remark != nil {
		remark = *raw.Remark
	}

	return NewRecord(raw.EmployeeUsername, occurredAt, remark, loc), nil
}

// ParseRecords keeps input order, which duplicate resolution depends on.
func ParseRecords(raws []RawRecord, loc *time.Location) ([]Record, error) {
	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		record, err := ParseRecord(raw, loc)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if t, ok := validator.IsValidDateTime(s); ok {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ========================================
// CALENDAR DTOs
// ========================================

type MonthlyCalendarRequest struct {
	EmployeeUsername string `json:"employee"`
	Month            string `json:"month,omitempty"` // YYYY-MM, defaults to the current month
}

func (r *MonthlyCalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeUsername) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee is required",
		})
	} else if !validator.IsValidUsername(r.EmployeeUsername) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee must be a valid username",
		})
	}

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

// ComputeCalendarRequest carries records inline; nothing is loaded from storage.
// A calendar belongs to one employee: with EmployeeUsername set, other
// employees' records are ignored, otherwise all records must share a username.
type ComputeCalendarRequest struct {
	EmployeeUsername       string           `json:"employee,omitempty"`
	Month                  string           `json:"month,omitempty"` // YYYY-MM
	Records                []RawRecord      `json:"records"`
	DeductionPerAbsentDay  *decimal.Decimal `json:"deduction_per_absent_day,omitempty"`
	DeductionPerWarningDay *decimal.Decimal `json:"deduction_per_warning_day,omitempty"`
}

func (r *ComputeCalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeUsername != "" && !validator.IsValidUsername(r.EmployeeUsername) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee must be a valid username",
		})
	}

	if r.Month != "" {
		if _, valid := validator.IsValidMonth(r.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	for i, rec := range r.Records {
		if validator.IsEmpty(rec.EmployeeUsername) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("records[%d].employee_username", i),
				Message: "employee_username is required",
			})
		}
		if validator.IsEmpty(rec.OccurredAt) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("records[%d].occurred_at", i),
				Message: "occurred_at is required",
			})
		}
	}

	if r.EmployeeUsername == "" && r.mixesEmployees() {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "records belong to several employees, employee is required",
		})
	}

	if r.DeductionPerAbsentDay != nil && r.DeductionPerAbsentDay.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction_per_absent_day",
			Message: "deduction_per_absent_day must not be negative",
		})
	}

	if r.DeductionPerWarningDay != nil && r.DeductionPerWarningDay.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction_per_warning_day",
			Message: "deduction_per_warning_day must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *ComputeCalendarRequest) mixesEmployees() bool {
	for _, rec := range r.Records[min(1, len(r.Records)):] {
		if rec.EmployeeUsername != r.Records[0].EmployeeUsername {
			return true
		}
	}
	return false
}

// EmployeeRecords returns the records the calendar is computed from, in input order.
func (r *ComputeCalendarRequest) EmployeeRecords() []RawRecord {
	if r.EmployeeUsername == "" {
		return r.Records
	}
	records := make([]RawRecord, 0, len(r.Records))
	for _, rec := range r.Records {
		if rec.EmployeeUsername == r.EmployeeUsername {
			records = append(records, rec)
		}
	}
	return records
}

type EmployeeInfo struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Designation string `json:"designation"`
}

type StatisticsResponse struct {
	PresentDays             int             `json:"present_days"`
	AbsentDays              int             `json:"absent_days"`
	WarningDays             int             `json:"warning_days"`
	WorkingDays             int             `json:"working_days"`
	TotalDeduction          decimal.Decimal `json:"total_deduction"`
	TotalDeductionFormatted string          `json:"total_deduction_formatted"`
}

// MarshalJSON writes total_deduction as a JSON number rather than decimal's quoted default.
func (s StatisticsResponse) MarshalJSON() ([]byte, error) {
	type plain StatisticsResponse
	return json.Marshal(struct {
		plain
		TotalDeduction json.Number `json:"total_deduction"`
	}{
		plain:          plain(s),
		TotalDeduction: json.Number(s.TotalDeduction.String()),
	})
}

type CalendarCellResponse struct {
	DayNumber      *int    `json:"day_number"`
	Date           *string `json:"date"`
	Classification string  `json:"classification"`
}

type MonthlyCalendarResponse struct {
	Month      string                 `json:"month"`
	Employee   *EmployeeInfo          `json:"employee,omitempty"`
	Statistics StatisticsResponse     `json:"statistics"`
	Columns    int                    `json:"columns"`
	Cells      []CalendarCellResponse `json:"cells"`
}

// ToCellResponses flattens the grid; blank cells serialise day and date as null.
func ToCellResponses(grid CalendarGrid) []CalendarCellResponse {
	cells := make([]CalendarCellResponse, 0, len(grid))
	for _, cell := range grid {
		resp := CalendarCellResponse{Classification: string(cell.Classification)}
		if !cell.IsBlank() {
			day := cell.DayNumber
			date := cell.DateKey
			resp.DayNumber = &day
			resp.Date = &date
		}
		cells = append(cells, resp)
	}
	return cells
}

// ========================================
// ROSTER DTOs
// ========================================

type DailyRosterRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *DailyRosterRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RosterSummary struct {
	Present int `json:"present"`
	Warning int `json:"warning"`
	Absent  int `json:"absent"`
}

type EmployeeDayStatusResponse struct {
	Username       string  `json:"username"`
	DisplayName    string  `json:"display_name"`
	Designation    string  `json:"designation"`
	Classification string  `json:"classification"`
	Remark         *string `json:"remark,omitempty"`
}

type DailyRosterResponse struct {
	Date      string                      `json:"date"`
	Summary   RosterSummary               `json:"summary"`
	Employees []EmployeeDayStatusResponse `json:"employees"`
}
