package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
)

var jakarta = mustLoadLocation("Asia/Jakarta")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 7*60*60)
	}
	return loc
}

func record(t *testing.T, username, date, remark string) attendance.Record {
	t.Helper()
	day, err := time.ParseInLocation(attendance.DateLayout, date, jakarta)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	return attendance.NewRecord(username, day, remark, jakarta)
}

func march2024() attendance.MonthKey {
	return attendance.MonthKey{Year: 2024, MonthIndex: 2}
}

func dateIn(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(attendance.DateLayout)
}
