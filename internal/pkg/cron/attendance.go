package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
)

const RosterDigestJob = "roster_daily_digest"

type AttendanceJobs struct {
	calendarService attendance.CalendarService
	location        *time.Location
	now             func() time.Time

	mu           sync.Mutex
	lastDigested string
}

func NewAttendanceJobs(
	calendarService attendance.CalendarService,
	location *time.Location,
	now func() time.Time,
) *AttendanceJobs {
	if location == nil {
		location = time.Local
	}
	return &AttendanceJobs{
		calendarService: calendarService,
		location:        location,
		now:             now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, digestInterval time.Duration) {
	scheduler.AddJob(RosterDigestJob, digestInterval, j.RosterDailyDigest)
}

// RosterDailyDigest logs the roster snapshot for the current local day. It runs
// at most once per day however short the interval.
func (j *AttendanceJobs) RosterDailyDigest(ctx context.Context) error {
	today := j.now().In(j.location).Format(attendance.DateLayout)

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.lastDigested == today {
		return nil
	}

	slog.Info("Cron: Starting roster daily digest", "date", today)

	roster, err := j.calendarService.GetDailyRoster(ctx, attendance.DailyRosterRequest{Date: today})
	if err != nil {
		return fmt.Errorf("failed to build roster snapshot: %w", err)
	}

	slog.Info("Cron: Roster daily digest",
		"date", roster.Date,
		"employees", len(roster.Employees),
		"present", roster.Summary.Present,
		"warning", roster.Summary.Warning,
		"absent", roster.Summary.Absent,
	)

	j.lastDigested = today
	return nil
}
