package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCalendarService struct {
	attendance.CalendarService
	dates []string
	err   error
}

func (c *countingCalendarService) GetDailyRoster(ctx context.Context, req attendance.DailyRosterRequest) (attendance.DailyRosterResponse, error) {
	c.dates = append(c.dates, req.Date)
	if c.err != nil {
		return attendance.DailyRosterResponse{}, c.err
	}
	return attendance.DailyRosterResponse{Date: req.Date, Summary: attendance.RosterSummary{Present: 3, Absent: 1}}, nil
}

func TestAttendanceJobs_RosterDailyDigest(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)
	now := time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC) // 01:30 on the 5th in IST
	svc := &countingCalendarService{}

	jobs := NewAttendanceJobs(svc, loc, func() time.Time { return now })
	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler, time.Hour)
	require.Len(t, scheduler.Jobs(), 1)
	assert.Equal(t, RosterDigestJob, scheduler.Jobs()[0].Name)

	require.NoError(t, scheduler.RunOnce(context.Background()))
	require.NoError(t, scheduler.RunOnce(context.Background()))
	assert.Equal(t, []string{"2024-03-05"}, svc.dates)

	now = now.Add(24 * time.Hour)
	require.NoError(t, scheduler.RunOnce(context.Background()))
	assert.Equal(t, []string{"2024-03-05", "2024-03-06"}, svc.dates)
}

func TestAttendanceJobs_RosterDailyDigest_RetriesAfterFailure(t *testing.T) {
	svc := &countingCalendarService{err: errors.New("db down")}
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	jobs := NewAttendanceJobs(svc, time.UTC, func() time.Time { return now })

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler, time.Hour)

	err := scheduler.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), RosterDigestJob)

	svc.err = nil
	require.NoError(t, scheduler.RunOnce(context.Background()))
	assert.Len(t, svc.dates, 2)
}

func TestScheduler_DisabledJobAndStop(t *testing.T) {
	scheduler := NewScheduler()
	scheduler.AddJob("disabled", 0, func(ctx context.Context) error { return nil })
	assert.Empty(t, scheduler.Jobs())

	ran := make(chan struct{}, 1)
	scheduler.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	scheduler.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	scheduler.Stop()
}

func TestScheduler_FailingJobKeepsTicking(t *testing.T) {
	scheduler := NewScheduler()

	runs := make(chan struct{}, 8)
	scheduler.AddJob("flaky", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case runs <- struct{}{}:
		default:
		}
		return errors.New("upstream unavailable")
	})

	scheduler.Start()
	for i := 0; i < 3; i++ {
		select {
		case <-runs:
		case <-time.After(2 * time.Second):
			t.Fatalf("failing job stopped after %d runs", i)
		}
	}
	scheduler.Stop()
}
