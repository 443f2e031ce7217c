package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrDataIntegrity = errors.New("snapshot failed integrity check")

const SnapshotVersion = 1

type Snapshot struct {
	Version     int          `json:"version" yaml:"version"`
	Routines    []Routine    `json:"routines" yaml:"routines"`
	Habits      []Habit      `json:"habits" yaml:"habits"`
	Preferences *Preferences `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// Validate rejects the snapshot as a whole on the first violation found.
func (s *Snapshot) Validate() error {
	if s.Version > SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrDataIntegrity, s.Version)
	}

	routineIDs := make(map[string]bool, len(s.Routines))
	for _, r := range s.Routines {
		if err := validateRoutine(r); err != nil {
			return err
		}
		if routineIDs[r.ID] {
			return fmt.Errorf("%w: duplicate routine id %q", ErrDataIntegrity, r.ID)
		}
		routineIDs[r.ID] = true
	}

	habitIDs := make(map[string]bool, len(s.Habits))
	for _, h := range s.Habits {
		if err := validateHabit(h); err != nil {
			return err
		}
		if habitIDs[h.ID] {
			return fmt.Errorf("%w: duplicate habit id %q", ErrDataIntegrity, h.ID)
		}
		habitIDs[h.ID] = true
	}

	return nil
}

func validateRoutine(r Routine) error {
	if r.ID == "" {
		return fmt.Errorf("%w: routine without id", ErrDataIntegrity)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: routine %q has an empty title", ErrDataIntegrity, r.ID)
	}

	taskIDs := make(map[string]bool, len(r.Tasks))
	for _, t := range r.Tasks {
		if t.ID == "" || taskIDs[t.ID] {
			return fmt.Errorf("%w: routine %q has a missing or duplicate task id %q", ErrDataIntegrity, r.ID, t.ID)
		}
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("%w: task %q has an empty title", ErrDataIntegrity, t.ID)
		}
		taskIDs[t.ID] = true
	}

	seen := make(map[string]bool, len(r.CompletionDays))
	for _, day := range r.CompletionDays {
		if !IsValidDateKey(day) {
			return fmt.Errorf("%w: routine %q has malformed completion day %q", ErrDataIntegrity, r.ID, day)
		}
		if seen[day] {
			return fmt.Errorf("%w: routine %q has duplicate completion day %q", ErrDataIntegrity, r.ID, day)
		}
		seen[day] = true
	}

	return nil
}

func validateHabit(h Habit) error {
	if h.ID == "" {
		return fmt.Errorf("%w: habit without id", ErrDataIntegrity)
	}
	if strings.TrimSpace(h.Title) == "" {
		return fmt.Errorf("%w: habit %q has an empty title", ErrDataIntegrity, h.ID)
	}

	if len(h.TargetDays) == 0 {
		return fmt.Errorf("%w: habit %q has no target days", ErrDataIntegrity, h.ID)
	}
	for _, d := range h.TargetDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: habit %q has out-of-range target day %d", ErrDataIntegrity, h.ID, d)
		}
	}

	if h.CurrentStreak < 0 || h.LongestStreak < 0 {
		return fmt.Errorf("%w: habit %q has a negative streak", ErrDataIntegrity, h.ID)
	}
	if h.LongestStreak < h.CurrentStreak {
		return fmt.Errorf("%w: habit %q has longest streak below current streak", ErrDataIntegrity, h.ID)
	}

	dates := make(map[string]bool, len(h.Completions))
	for _, c := range h.Completions {
		if !IsValidDateKey(c.Date) {
			return fmt.Errorf("%w: habit %q has malformed completion date %q", ErrDataIntegrity, h.ID, c.Date)
		}
		if dates[c.Date] {
			return fmt.Errorf("%w: habit %q has duplicate completion date %q", ErrDataIntegrity, h.ID, c.Date)
		}
		dates[c.Date] = true
	}

	return nil
}

func (s *Snapshot) Clone() Snapshot {
	out := Snapshot{
		Version:  s.Version,
		Routines: make([]Routine, len(s.Routines)),
		Habits:   make([]Habit, len(s.Habits)),
	}
	for i, r := range s.Routines {
		out.Routines[i] = r.Clone()
	}
	for i, h := range s.Habits {
		out.Habits[i] = h.Clone()
	}
	if s.Preferences != nil {
		p := *s.Preferences
		out.Preferences = &p
	}
	return out
}

// Normalize sorts the date-keyed collections the ledgers search with binary search.
func (s *Snapshot) Normalize() {
	for i := range s.Routines {
		sort.Strings(s.Routines[i].CompletionDays)
		if s.Routines[i].Tasks == nil {
			s.Routines[i].Tasks = []Task{}
		}
	}
	for i := range s.Habits {
		h := &s.Habits[i]
		h.TargetDays = normalizeWeekdays(h.TargetDays)
		sort.Slice(h.Completions, func(a, b int) bool {
			return h.Completions[a].Date < h.Completions[b].Date
		})
		if h.Completions == nil {
			h.Completions = []HabitCompletion{}
		}
	}
}
