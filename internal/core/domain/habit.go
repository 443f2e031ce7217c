package domain

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty   = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong = errors.New("habit title is too long (max 100 chars)")
	ErrHabitDescTooLong  = errors.New("habit description is too long (max 500 chars)")
	ErrHabitNoTargetDays = errors.New("habit needs at least one target day")
	ErrInvalidColor      = errors.New("invalid color format (must be #RRGGBB)")
	ErrInvalidWeekdays   = errors.New("invalid weekdays (must be 0-6)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	DefaultHabitColor = "#3B82F6"
	MaxTitleLen       = 100
	MaxDescLen        = 500
)

// HabitPalette lists the colors offered when creating a habit.
var HabitPalette = []string{
	"#3B82F6", "#EF4444", "#10B981", "#F59E0B",
	"#8B5CF6", "#EC4899", "#06B6D4", "#84CC16",
}

type HabitCompletion struct {
	ID          string    `json:"id" yaml:"id"`
	Date        string    `json:"date" yaml:"date"`
	CompletedAt time.Time `json:"completedAt" yaml:"completedAt"`
}

type Habit struct {
	ID            string            `json:"id" yaml:"id"`
	Title         string            `json:"title" yaml:"title"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	Color         string            `json:"color" yaml:"color"`
	Category      string            `json:"category,omitempty" yaml:"category,omitempty"`
	TargetDays    []int             `json:"targetDays" yaml:"targetDays"`
	Completions   []HabitCompletion `json:"completions" yaml:"completions"`
	CurrentStreak int               `json:"currentStreak" yaml:"currentStreak"`
	LongestStreak int               `json:"longestStreak" yaml:"longestStreak"`
	CreatedAt     time.Time         `json:"createdAt" yaml:"createdAt"`
}

func normalizeWeekdays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	uniqueMap := make(map[int]bool)
	var uniqueDays []int
	for _, d := range days {
		if !uniqueMap[d] {
			uniqueMap[d] = true
			uniqueDays = append(uniqueDays, d)
		}
	}

	sort.Ints(uniqueDays)
	return uniqueDays
}

func validateHabitFields(title, desc, color string, targetDays []int) error {
	if title == "" {
		return ErrHabitTitleEmpty
	}
	if len(title) > MaxTitleLen {
		return ErrHabitTitleTooLong
	}
	if len(desc) > MaxDescLen {
		return ErrHabitDescTooLong
	}

	if len(targetDays) == 0 {
		return ErrHabitNoTargetDays
	}
	for _, day := range targetDays {
		if day < 0 || day > 6 {
			return ErrInvalidWeekdays
		}
	}

	if color != "" && !colorRegex.MatchString(color) {
		return ErrInvalidColor
	}

	return nil
}

func NewHabit(title, description, color, category string, targetDays []int, now time.Time) (*Habit, error) {
	cleanTitle := strings.TrimSpace(title)
	cleanDesc := strings.TrimSpace(description)

	if err := validateHabitFields(cleanTitle, cleanDesc, color, targetDays); err != nil {
		return nil, err
	}

	if color == "" {
		color = DefaultHabitColor
	}

	return &Habit{
		ID:          uuid.New().String(),
		Title:       cleanTitle,
		Description: cleanDesc,
		Color:       color,
		Category:    strings.TrimSpace(category),
		TargetDays:  normalizeWeekdays(targetDays),
		Completions: []HabitCompletion{},
		CreatedAt:   now.UTC(),
	}, nil
}

func (h *Habit) IsTargetDay(weekday int) bool {
	for _, d := range h.TargetDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// completionIndex relies on Completions being sorted by date key.
func (h *Habit) completionIndex(date string) (int, bool) {
	i := sort.Search(len(h.Completions), func(i int) bool {
		return h.Completions[i].Date >= date
	})
	return i, i < len(h.Completions) && h.Completions[i].Date == date
}

func (h *Habit) CompletedOn(date string) bool {
	_, ok := h.completionIndex(date)
	return ok
}

// ToggleCompletion flips the completion record of date and recomputes the streaks from
// the completion set. It reports whether the day is completed after the toggle.
//
// Inserting anchors the streak walk at date; removing anchors it at the day before, which
// is the streak the removed day had been extending. LongestStreak never decreases.
//
// Because the walk is anchored at the toggled day, back-dating a completion behind a
// newer run leaves CurrentStreak at the length ending on the back-dated day, and removing
// it again does not restore the newer run. StreakAsOf gives the streak as of a given day.
func (h *Habit) ToggleCompletion(date string, now time.Time) (bool, error) {
	day, err := ParseDateKey(date)
	if err != nil {
		return false, err
	}

	i, found := h.completionIndex(date)
	if found {
		h.Completions = append(h.Completions[:i], h.Completions[i+1:]...)
		h.CurrentStreak = h.streakEndingAt(AddDays(day, -1))
		return false, nil
	}

	h.Completions = append(h.Completions, HabitCompletion{})
	copy(h.Completions[i+1:], h.Completions[i:])
	h.Completions[i] = HabitCompletion{
		ID:          uuid.New().String(),
		Date:        date,
		CompletedAt: now.UTC(),
	}

	h.CurrentStreak = h.streakEndingAt(day)
	if h.CurrentStreak > h.LongestStreak {
		h.LongestStreak = h.CurrentStreak
	}
	return true, nil
}

// StreakAsOf is the run of completed target days ending at today. A target day that is
// still open today does not break the run, so the walk then starts from yesterday.
func (h *Habit) StreakAsOf(today time.Time) int {
	day := CalendarDay(today)
	if h.IsTargetDay(DayOfWeek(day)) && !h.CompletedOn(DateKey(day)) {
		day = AddDays(day, -1)
	}
	return h.streakEndingAt(day)
}

// streakEndingAt walks backward from day. Completed target days count, non-target days
// are skipped, and the first target day without a completion ends the walk.
func (h *Habit) streakEndingAt(day time.Time) int {
	if len(h.TargetDays) == 0 || len(h.Completions) == 0 {
		return 0
	}

	earliest, err := ParseDateKey(h.Completions[0].Date)
	if err != nil {
		return 0
	}

	streak := 0
	for !day.Before(earliest) {
		if h.IsTargetDay(DayOfWeek(day)) {
			if !h.CompletedOn(DateKey(day)) {
				return streak
			}
			streak++
		}
		day = AddDays(day, -1)
	}
	return streak
}

func (h Habit) Clone() Habit {
	out := h
	out.TargetDays = append([]int(nil), h.TargetDays...)
	out.Completions = append([]HabitCompletion{}, h.Completions...)
	return out
}
