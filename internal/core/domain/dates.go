package domain

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDateKey = errors.New("invalid date key (must be YYYY-MM-DD)")

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DateKey returns the calendar-day key of t in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DayOfWeek returns 0 for Sunday through 6 for Saturday.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

func WeekdayLabel(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return weekdayLabels[day]
}

// ParseDateKey parses a calendar-day key into midnight UTC of that day.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return t, nil
}

func IsValidDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// CalendarDay drops the clock of t, keeping the calendar date it has in its location.
// The result is expressed in UTC so day arithmetic is free of DST shifts.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

func PreviousDateKey(key string) (string, error) {
	day, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(AddDays(day, -1)), nil
}
