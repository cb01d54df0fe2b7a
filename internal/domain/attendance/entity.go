package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar date key format.
const DateLayout = "2006-01-02"

// MonthLayout is the wire format of a month selector.
const MonthLayout = "2006-01"

// RemarkPresent is the only remark that does not count as a warning.
const RemarkPresent = "Present"

// Record is one attendance event for one employee on one calendar day.
// OccurredOn is midnight of the local calendar day the record applies to.
type Record struct {
	EmployeeUsername string
	OccurredOn       time.Time
	Remark           string
}

// NewRecord truncates occurredAt to the local calendar day in loc.
func NewRecord(employeeUsername string, occurredAt time.Time, remark string, loc *time.Location) Record {
	if loc == nil {
		loc = time.Local
	}
	local := occurredAt.In(loc)
	return Record{
		EmployeeUsername: employeeUsername,
		OccurredOn:       time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
		Remark:           remark,
	}
}

// DateKey returns the YYYY-MM-DD key of the record's local calendar day.
func (r Record) DateKey() string {
	return r.OccurredOn.Format(DateLayout)
}

// Classification returns the day status implied by the remark.
func (r Record) Classification() Classification {
	return ClassifyRemark(r.Remark)
}

type Classification string

const (
	ClassificationPresent Classification = "present"
	ClassificationWarning Classification = "warning"
	ClassificationAbsent  Classification = "absent"
	ClassificationBlank   Classification = "blank"
)

// ClassifyRemark maps a remark to present, warning or absent. An empty remark
// means no usable record exists for the day.
func ClassifyRemark(remark string) Classification {
	switch {
	case remark == RemarkPresent:
		return ClassificationPresent
	case remark != "":
		return ClassificationWarning
	default:
		return ClassificationAbsent
	}
}

// MonthKey identifies the aggregation window. MonthIndex is zero based (0 = January).
type MonthKey struct {
	Year       int
	MonthIndex int
}

func NewMonthKey(year, monthIndex int) (MonthKey, error) {
	m := MonthKey{Year: year, MonthIndex: monthIndex}
	if err := m.Validate(); err != nil {
		return MonthKey{}, err
	}
	return m, nil
}

// MonthKeyOf returns the month containing t, in t's location.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), MonthIndex: int(t.Month()) - 1}
}

// ParseMonthKey parses a YYYY-MM string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("%w: month %q must be in YYYY-MM format", ErrInvalidArgument, s)
	}
	return MonthKeyOf(t), nil
}

func (m MonthKey) Validate() error {
	if m.MonthIndex < 0 || m.MonthIndex > 11 {
		return fmt.Errorf("%w: month index %d is outside 0..11", ErrInvalidArgument, m.MonthIndex)
	}
	return nil
}

func (m MonthKey) Month() time.Month {
	return time.Month(m.MonthIndex + 1)
}

// Start returns midnight of the first day of the month in loc.
func (m MonthKey) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(m.Year, m.Month(), 1, 0, 0, 0, 0, loc)
}

// Contains reports whether t falls in the month, using t's own location.
func (m MonthKey) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month()
}

func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.MonthIndex+1)
}

// DeductionRates are the per-day payroll penalties. Amounts are currency agnostic.
type DeductionRates struct {
	PerAbsentDay  decimal.Decimal
	PerWarningDay decimal.Decimal
}

// DefaultDeductionRates returns 1000 per absent day and 500 per warning day.
func DefaultDeductionRates() DeductionRates {
	return DeductionRates{
		PerAbsentDay:  decimal.NewFromInt(1000),
		PerWarningDay: decimal.NewFromInt(500),
	}
}

func (r DeductionRates) Validate() error {
	if r.PerAbsentDay.IsNegative() {
		return fmt.Errorf("%w: absent day deduction must not be negative", ErrInvalidArgument)
	}
	if r.PerWarningDay.IsNegative() {
		return fmt.Errorf("%w: warning day deduction must not be negative", ErrInvalidArgument)
	}
	return nil
}

// MonthlyStatistics is derived per aggregation pass.
// PresentDays+WarningDays may exceed WorkingDays (records on Sundays); AbsentDays
// is then clamped to zero and the condition is not reported.
type MonthlyStatistics struct {
	PresentDays    int
	AbsentDays     int
	WarningDays    int
	WorkingDays    int
	TotalDeduction decimal.Decimal
}

// CalendarCell is one slot of the month grid. Blank cells have DayNumber 0 and
// an empty DateKey.
type CalendarCell struct {
	DayNumber      int
	DateKey        string
	Classification Classification
}

func (c CalendarCell) IsBlank() bool {
	return c.Classification == ClassificationBlank
}

const (
	GridRows    = 6
	GridColumns = 7
	GridCells   = GridRows * GridColumns
)

// CalendarGrid is a Sunday-first 6x7 month grid in row-major order.
type CalendarGrid [GridCells]CalendarCell

// Rows splits the grid into weeks.
func (g CalendarGrid) Rows() [GridRows][GridColumns]CalendarCell {
	var rows [GridRows][GridColumns]CalendarCell
	for p, cell := range g {
		rows[p/GridColumns][p%GridColumns] = cell
	}
	return rows
}

// EmployeeDayKey keys the roster-wide index.
type EmployeeDayKey struct {
	EmployeeUsername string
	DateKey          string
}

// EmployeeDayStatus is one roster row of the daily snapshot.
type EmployeeDayStatus struct {
	EmployeeUsername string
	DisplayName      string
	Designation      string
	DateKey          string
	Classification   Classification
	Remark           string
}
