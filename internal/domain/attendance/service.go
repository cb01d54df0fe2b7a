package attendance

import (
	"context"
)

// CalendarService exposes monthly statistics, the calendar grid and the
// roster-wide daily snapshot.
type CalendarService interface {
	// GetMonthlyCalendar loads an employee's records for a month and builds statistics and grid
	GetMonthlyCalendar(ctx context.Context, req MonthlyCalendarRequest) (MonthlyCalendarResponse, error)

	// ComputeMonthlyCalendar works on records supplied by the caller
	ComputeMonthlyCalendar(ctx context.Context, req ComputeCalendarRequest) (MonthlyCalendarResponse, error)

	// GetDailyRoster returns every roster employee's status for one day
	GetDailyRoster(ctx context.Context, req DailyRosterRequest) (DailyRosterResponse, error)
}
