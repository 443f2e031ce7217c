package domain

import "time"

// DayMark is one cell of a habit's recent-days strip.
type DayMark struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	IsTarget  bool   `json:"isTarget"`
	Completed bool   `json:"completed"`
}

type RoutineView struct {
	Routine
	CompletedTasks int     `json:"completedTasks"`
	TotalTasks     int     `json:"totalTasks"`
	TaskProgress   float64 `json:"taskProgress"`
}

type HabitView struct {
	Habit
	CompletedToday bool      `json:"completedToday"`
	RecentDays     []DayMark `json:"recentDays"`
}

type ViewModel struct {
	Today       string        `json:"today"`
	Routines    []RoutineView `json:"routines"`
	Habits      []HabitView   `json:"habits"`
	Preferences Preferences   `json:"preferences"`
}

const RecentDaysWindow = 7

// NewRoutineView derives the flag for today and the task progress of r.
func NewRoutineView(r Routine, today time.Time) RoutineView {
	r.SyncToday(DateKey(today))
	return RoutineView{
		Routine:        r,
		CompletedTasks: r.CompletedTaskCount(),
		TotalTasks:     len(r.Tasks),
		TaskProgress:   r.TaskProgress(),
	}
}

// NewHabitView builds the view of h with the window of days ending at today, oldest first.
// CurrentStreak is the streak as of today, so missed target days show up without a toggle.
func NewHabitView(h Habit, today time.Time) HabitView {
	day := CalendarDay(today)
	h.CurrentStreak = h.StreakAsOf(day)
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}

	marks := make([]DayMark, 0, RecentDaysWindow)
	for i := RecentDaysWindow - 1; i >= 0; i-- {
		d := AddDays(day, -i)
		key := DateKey(d)
		marks = append(marks, DayMark{
			Date:      key,
			Weekday:   WeekdayLabel(DayOfWeek(d)),
			IsTarget:  h.IsTargetDay(DayOfWeek(d)),
			Completed: h.CompletedOn(key),
		})
	}

	return HabitView{
		Habit:          h,
		CompletedToday: h.CompletedOn(DateKey(day)),
		RecentDays:     marks,
	}
}
