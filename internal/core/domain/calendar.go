package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date (must be YYYY-MM-DD)")

var clockRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// LocalDay returns the calendar day of t as seen on a wall clock in loc.
// A nil location is treated as time.Local.
func LocalDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD string into midday of that day in loc.
// Midday keeps AddDate arithmetic away from DST transitions.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, day)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc), nil
}

func IsValidDay(day string) bool {
	_, err := time.Parse(DateLayout, day)
	return err == nil
}

// Noon normalises t to midday of its local calendar day.
func Noon(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc)
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

func IsValidClock(hhmm string) bool {
	return clockRegex.MatchString(hhmm)
}

func parseClock(hhmm string) (int, int, error) {
	if !clockRegex.MatchString(hhmm) {
		return 0, 0, ErrInvalidClockTime
	}
	h, _ := strconv.Atoi(hhmm[:2])
	m, _ := strconv.Atoi(hhmm[3:])
	return h, m, nil
}
