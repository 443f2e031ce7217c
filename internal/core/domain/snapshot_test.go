package domain_test

import (
	"testing"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func validSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Version: domain.SnapshotVersion,
		Routines: []domain.Routine{{
			ID:             "r1",
			Title:          "Morning",
			Category:       "Personal",
			Tasks:          []domain.Task{{ID: "t1", Title: "Stretch"}},
			CompletionDays: []string{"2024-01-03", "2024-01-01"},
		}},
		Habits: []domain.Habit{{
			ID:         "h1",
			Title:      "Gym",
			Color:      "#3B82F6",
			TargetDays: []int{5, 1, 3},
			Completions: []domain.HabitCompletion{
				{ID: "c2", Date: "2024-01-03"},
				{ID: "c1", Date: "2024-01-01"},
			},
			CurrentStreak: 2,
			LongestStreak: 2,
		}},
	}
}

func TestSnapshot_Validate(t *testing.T) {
	t.Run("Success: Valid snapshot", func(t *testing.T) {
		s := validSnapshot()
		assert.NoError(t, s.Validate())
	})

	tests := []struct {
		name   string
		mutate func(s *domain.Snapshot)
	}{
		{"Future version", func(s *domain.Snapshot) { s.Version = domain.SnapshotVersion + 1 }},
		{"Routine without id", func(s *domain.Snapshot) { s.Routines[0].ID = "" }},
		{"Duplicate routine id", func(s *domain.Snapshot) { s.Routines = append(s.Routines, s.Routines[0]) }},
		{"Duplicate task id", func(s *domain.Snapshot) {
			s.Routines[0].Tasks = append(s.Routines[0].Tasks, domain.Task{ID: "t1", Title: "Again"})
		}},
		{"Blank task title", func(s *domain.Snapshot) { s.Routines[0].Tasks[0].Title = " " }},
		{"Malformed routine day", func(s *domain.Snapshot) { s.Routines[0].CompletionDays[0] = "Jan 3" }},
		{"Habit without target days", func(s *domain.Snapshot) { s.Habits[0].TargetDays = nil }},
		{"Target day out of range", func(s *domain.Snapshot) { s.Habits[0].TargetDays = []int{9} }},
		{"Negative streak", func(s *domain.Snapshot) { s.Habits[0].CurrentStreak = -1 }},
		{"Longest below current", func(s *domain.Snapshot) { s.Habits[0].LongestStreak = 1 }},
		{"Duplicate completion date", func(s *domain.Snapshot) {
			s.Habits[0].Completions[1].Date = "2024-01-03"
		}},
		{"Duplicate habit id", func(s *domain.Snapshot) { s.Habits = append(s.Habits, s.Habits[0]) }},
	}

	for _, tt := range tests {
		t.Run("Error: "+tt.name, func(t *testing.T) {
			s := validSnapshot()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), domain.ErrDataIntegrity)
		})
	}
}

func TestSnapshot_Normalize(t *testing.T) {
	s := validSnapshot()
	s.Routines[0].Tasks = nil
	s.Normalize()

	assert.Equal(t, []string{"2024-01-01", "2024-01-03"}, s.Routines[0].CompletionDays)
	assert.NotNil(t, s.Routines[0].Tasks)
	assert.Equal(t, []int{1, 3, 5}, s.Habits[0].TargetDays)
	assert.Equal(t, "2024-01-01", s.Habits[0].Completions[0].Date)
	assert.True(t, s.Habits[0].CompletedOn("2024-01-03"))
}

func TestSnapshot_Clone(t *testing.T) {
	s := validSnapshot()
	prefs := domain.DefaultPreferences()
	s.Preferences = &prefs

	c := s.Clone()
	c.Routines[0].Title = "changed"
	c.Habits[0].Completions[0].Date = "1999-01-01"
	c.Preferences.DarkMode = true

	assert.Equal(t, "Morning", s.Routines[0].Title)
	assert.Equal(t, "2024-01-03", s.Habits[0].Completions[0].Date)
	assert.False(t, s.Preferences.DarkMode)
}
