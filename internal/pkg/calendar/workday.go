// Package calendar holds the month arithmetic behind the attendance grid and
// statistics. Month indexes are zero based (0 = January).
package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidMonthIndex = errors.New("month index must be between 0 and 11")

func checkMonthIndex(monthIndex int) error {
	if monthIndex < 0 || monthIndex > 11 {
		return fmt.Errorf("%w: got %d", ErrInvalidMonthIndex, monthIndex)
	}
	return nil
}

// DaysInMonth reads the day of "day 0 of the next month", i.e. the last day of
// the requested one. time.Date normalises the overflow, including leap years.
func DaysInMonth(year, monthIndex int) (int, error) {
	if err := checkMonthIndex(monthIndex); err != nil {
		return 0, err
	}
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// FirstWeekdayOfMonth returns the weekday of the 1st, 0 = Sunday.
func FirstWeekdayOfMonth(year, monthIndex int) (int, error) {
	if err := checkMonthIndex(monthIndex); err != nil {
		return 0, err
	}
	return int(time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC).Weekday()), nil
}

// WorkingDaysInMonth counts the days that are not Sundays. There is no holiday
// calendar.
func WorkingDaysInMonth(year, monthIndex int) (int, error) {
	days, err := DaysInMonth(year, monthIndex)
	if err != nil {
		return 0, err
	}

	working := 0
	for day := 1; day <= days; day++ {
		if time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC).Weekday() != time.Sunday {
			working++
		}
	}
	return working, nil
}
