package repository

import (
	"time"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
)

func sampleSnapshot() *domain.Snapshot {
	created := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	done := time.Date(2024, time.January, 8, 7, 15, 30, 123456789, time.UTC)
	prefs := domain.Preferences{NotificationsEnabled: true, EmailRemindersEnabled: true}

	return &domain.Snapshot{
		Version: domain.SnapshotVersion,
		Routines: []domain.Routine{
			{
				ID:            "r1",
				Title:         "Morning Workout",
				Description:   "Before breakfast",
				Category:      "Health",
				ScheduledTime: "07:00",
				Tasks: []domain.Task{
					{ID: "t1", Title: "Warm up", IsCompleted: true, CompletedAt: &done},
					{ID: "t2", Title: "Run"},
				},
				IsCompleted:    true,
				CompletedAt:    &done,
				CompletionDays: []string{"2024-01-07", "2024-01-08"},
				CreatedAt:      created,
			},
			{
				ID:        "r2",
				Title:     "Evening",
				Category:  "Personal",
				Tasks:     []domain.Task{{ID: "t3", Title: "Read"}},
				CreatedAt: created,
			},
		},
		Habits: []domain.Habit{
			{
				ID:         "h1",
				Title:      "Gym",
				Color:      "#3B82F6",
				Category:   "Health",
				TargetDays: []int{1, 3, 5},
				Completions: []domain.HabitCompletion{
					{ID: "c1", Date: "2024-01-05", CompletedAt: done},
					{ID: "c2", Date: "2024-01-08", CompletedAt: done},
				},
				CurrentStreak: 2,
				LongestStreak: 5,
				CreatedAt:     created,
			},
		},
		Preferences: &prefs,
	}
}
