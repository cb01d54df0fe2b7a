package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Aggregate computes a month's statistics and deduction. Records outside the
// month are ignored and duplicate employee+day records count once (last wins).
// Days without a record are absent; absent days are clamped at zero when
// present+warning exceeds the working days.
func Aggregate(records []attendance.Record, month attendance.MonthKey, rates attendance.DeductionRates) (attendance.MonthlyStatistics, error) {
	if err := month.Validate(); err != nil {
		return attendance.MonthlyStatistics{}, err
	}
	if err := rates.Validate(); err != nil {
		return attendance.MonthlyStatistics{}, err
	}

	workingDays, err := calendar.WorkingDaysInMonth(month.Year, month.MonthIndex)
	if err != nil {
		return attendance.MonthlyStatistics{}, fmt.Errorf("%w: %w", attendance.ErrInvalidArgument, err)
	}

	inMonth := make([]attendance.Record, 0, len(records))
	for _, record := range records {
		if month.Contains(record.OccurredOn) {
			inMonth = append(inMonth, record)
		}
	}

	var present, warning int
	for _, record := range IndexByEmployee(inMonth) {
		switch record.Classification() {
		case attendance.ClassificationPresent:
			present++
		case attendance.ClassificationWarning:
			warning++
		}
	}

	absent := max(0, workingDays-(present+warning))

	total := rates.PerAbsentDay.Mul(decimal.NewFromInt(int64(absent))).
		Add(rates.PerWarningDay.Mul(decimal.NewFromInt(int64(warning))))

	return attendance.MonthlyStatistics{
		PresentDays:    present,
		AbsentDays:     absent,
		WarningDays:    warning,
		WorkingDays:    workingDays,
		TotalDeduction: total,
	}, nil
}
