package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/calendar"
)

// BuildGrid lays the month out on a fixed Sunday-first 6x7 grid. Cells before
// the 1st and after the last day are blank; trailing all-blank rows are kept.
func BuildGrid(month attendance.MonthKey, index map[string]attendance.Record) (attendance.CalendarGrid, error) {
	var grid attendance.CalendarGrid

	if err := month.Validate(); err != nil {
		return grid, err
	}

	firstWeekday, err := calendar.FirstWeekdayOfMonth(month.Year, month.MonthIndex)
	if err != nil {
		return grid, fmt.Errorf("%w: %w", attendance.ErrInvalidArgument, err)
	}
	daysInMonth, err := calendar.DaysInMonth(month.Year, month.MonthIndex)
	if err != nil {
		return grid, fmt.Errorf("%w: %w", attendance.ErrInvalidArgument, err)
	}

	for p := range grid {
		day := p - firstWeekday + 1
		if day < 1 || day > daysInMonth {
			grid[p] = attendance.CalendarCell{Classification: attendance.ClassificationBlank}
			continue
		}

		dateKey := fmt.Sprintf("%04d-%02d-%02d", month.Year, month.MonthIndex+1, day)
		classification := attendance.ClassificationAbsent
		if record, ok := index[dateKey]; ok {
			classification = record.Classification()
		}

		grid[p] = attendance.CalendarCell{
			DayNumber:      day,
			DateKey:        dateKey,
			Classification: classification,
		}
	}

	return grid, nil
}
