package domain

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("invalid period (must be week, month or year)")

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"

	UncategorizedLabel = "Uncategorized"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	case "":
		return PeriodWeek, nil
	}
	return "", ErrInvalidPeriod
}

// Bounds returns the first and last calendar day of the period containing today.
// Weeks run Monday to Sunday.
func (p Period) Bounds(today time.Time) (time.Time, time.Time) {
	day := CalendarDay(today)
	switch p {
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case PeriodYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, -1)
	default:
		offset := (DayOfWeek(day) + 6) % 7
		start := AddDays(day, -offset)
		return start, AddDays(start, 6)
	}
}

type PeriodStats struct {
	Period             Period           `json:"period"`
	StartDate          string           `json:"startDate"`
	EndDate            string           `json:"endDate"`
	RoutinesCompleted  int              `json:"routinesCompleted"`
	HabitsCompleted    int              `json:"habitsCompleted"`
	ScheduledInstances int              `json:"scheduledInstances"`
	CompletedInstances int              `json:"completedInstances"`
	CompletionRate     float64          `json:"completionRate"`
	Daily              []DailyActivity  `json:"daily"`
	Categories         []CategoryRollup `json:"categories"`
	Achievements       []Achievement    `json:"achievements"`
}

type DailyActivity struct {
	Date              string `json:"date"`
	Weekday           string `json:"weekday"`
	RoutinesCompleted int    `json:"routinesCompleted"`
	TotalRoutines     int    `json:"totalRoutines"`
	HabitsCompleted   int    `json:"habitsCompleted"`
	TotalHabits       int    `json:"totalHabits"`
}

type CategoryRollup struct {
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type Achievement struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
