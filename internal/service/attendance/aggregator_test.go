package attendance

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_PresentAndLate(t *testing.T) {
	records := []attendance.Record{
		record(t, "asha", "2024-03-05", "Present"),
		record(t, "asha", "2024-03-12", "Late"),
	}

	stats, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.PresentDays)
	assert.Equal(t, 1, stats.WarningDays)
	assert.Equal(t, 26, stats.WorkingDays)
	assert.Equal(t, 24, stats.AbsentDays)
	assert.True(t, decimal.NewFromInt(24500).Equal(stats.TotalDeduction), "got %s", stats.TotalDeduction)
}

func TestAggregate_EmptyRecords(t *testing.T) {
	for monthIndex := 0; monthIndex < 12; monthIndex++ {
		month := attendance.MonthKey{Year: 2024, MonthIndex: monthIndex}

		stats, err := Aggregate(nil, month, attendance.DefaultDeductionRates())
		require.NoError(t, err)

		assert.Equal(t, 0, stats.PresentDays)
		assert.Equal(t, 0, stats.WarningDays)
		assert.Equal(t, stats.WorkingDays, stats.AbsentDays)
		assert.True(t, decimal.NewFromInt(int64(stats.WorkingDays*1000)).Equal(stats.TotalDeduction))
	}
}

func TestAggregate_PresentOnSundayStillCounts(t *testing.T) {
	// February 2026: 28 days, 4 Sundays, 24 working days.
	month := attendance.MonthKey{Year: 2026, MonthIndex: 1}

	var records []attendance.Record
	for day := 1; day <= 28; day++ {
		records = append(records, record(t, "asha", dateIn(2026, 2, day), "Present"))
	}

	stats, err := Aggregate(records, month, attendance.DefaultDeductionRates())
	require.NoError(t, err)

	assert.Equal(t, 24, stats.WorkingDays)
	assert.Equal(t, 28, stats.PresentDays)
	assert.Equal(t, 0, stats.AbsentDays)
	assert.True(t, stats.TotalDeduction.IsZero())
}

func TestAggregate_SundayRecordMasksWorkingDayAbsence(t *testing.T) {
	// March 2024: every working day but the 4th is present, plus Sunday the 3rd.
	var records []attendance.Record
	for day := 1; day <= 31; day++ {
		if day == 4 {
			continue
		}
		records = append(records, record(t, "asha", dateIn(2024, 3, day), "Present"))
	}

	stats, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
	require.NoError(t, err)

	assert.Equal(t, 30, stats.PresentDays)
	assert.Equal(t, 0, stats.AbsentDays)
}

func TestAggregate_IgnoresOtherMonths(t *testing.T) {
	records := []attendance.Record{
		record(t, "asha", "2024-02-29", "Present"),
		record(t, "asha", "2024-03-01", "Present"),
		record(t, "asha", "2024-04-01", "Late"),
		record(t, "asha", "2023-03-05", "Present"),
	}

	stats, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.PresentDays)
	assert.Equal(t, 0, stats.WarningDays)
	assert.Equal(t, 25, stats.AbsentDays)
}

func TestAggregate_DuplicateDayCountsOnce(t *testing.T) {
	records := []attendance.Record{
		record(t, "asha", "2024-03-05", "Late"),
		record(t, "asha", "2024-03-05", "Present"),
	}

	stats, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.PresentDays)
	assert.Equal(t, 0, stats.WarningDays)
	assert.Equal(t, 25, stats.AbsentDays)
}

func TestAggregate_EmptyRemarkIsAbsent(t *testing.T) {
	records := []attendance.Record{record(t, "asha", "2024-03-05", "")}

	stats, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.PresentDays)
	assert.Equal(t, 0, stats.WarningDays)
	assert.Equal(t, 26, stats.AbsentDays)
}

func TestAggregate_CustomRates(t *testing.T) {
	rates := attendance.DeductionRates{
		PerAbsentDay:  decimal.RequireFromString("250.50"),
		PerWarningDay: decimal.NewFromInt(100),
	}
	records := []attendance.Record{
		record(t, "asha", "2024-03-05", "Half-day"),
		record(t, "asha", "2024-03-06", "Late"),
	}

	stats, err := Aggregate(records, march2024(), rates)
	require.NoError(t, err)

	// 24 absent * 250.50 + 2 warning * 100
	assert.Equal(t, "6212", stats.TotalDeduction.String())
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []attendance.Record{
		record(t, "asha", "2024-03-05", "Present"),
		record(t, "asha", "2024-03-12", "Late"),
		record(t, "asha", "2024-03-12", "Present"),
	}

	first, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
	require.NoError(t, err)
	second, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregate_AddingPresentNeverIncreasesAbsence(t *testing.T) {
	var records []attendance.Record
	prev, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
	require.NoError(t, err)

	for day := 1; day <= 31; day++ {
		records = append(records, record(t, "asha", dateIn(2024, 3, day), "Present"))

		next, err := Aggregate(records, march2024(), attendance.DefaultDeductionRates())
		require.NoError(t, err)

		assert.GreaterOrEqual(t, next.PresentDays, prev.PresentDays)
		assert.LessOrEqual(t, next.AbsentDays, prev.AbsentDays)
		assert.GreaterOrEqual(t, next.AbsentDays, 0)
		prev = next
	}
}

func TestAggregate_InvalidArguments(t *testing.T) {
	_, err := Aggregate(nil, attendance.MonthKey{Year: 2024, MonthIndex: 12}, attendance.DefaultDeductionRates())
	assert.True(t, errors.Is(err, attendance.ErrInvalidArgument))

	_, err = Aggregate(nil, attendance.MonthKey{Year: 2024, MonthIndex: -1}, attendance.DefaultDeductionRates())
	assert.True(t, errors.Is(err, attendance.ErrInvalidArgument))

	negative := attendance.DeductionRates{PerAbsentDay: decimal.NewFromInt(-1), PerWarningDay: decimal.Zero}
	_, err = Aggregate(nil, march2024(), negative)
	assert.True(t, errors.Is(err, attendance.ErrInvalidArgument))
}
