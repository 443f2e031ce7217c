package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
)

const (
	streakMasterDays       = 30
	morningWarriorDays     = 20
	consistencyRatePercent = 80.0
)

// SnapshotSource is the read side of the tracking store the aggregator works from.
type SnapshotSource interface {
	Export() domain.Snapshot
	Today() time.Time
}

type AnalyticsService struct {
	source SnapshotSource
}

func NewAnalyticsService(source SnapshotSource) *AnalyticsService {
	return &AnalyticsService{source: source}
}

func (s *AnalyticsService) Summarize(period domain.Period) *domain.PeriodStats {
	snap := s.source.Export()
	today := s.source.Today()

	stats := summarize(&snap, period, today)
	stats.Achievements = achievements(&snap, today)
	return stats
}

type rollupCounter struct {
	completed int
	total     int
}

func summarize(snap *domain.Snapshot, period domain.Period, today time.Time) *domain.PeriodStats {
	start, end := period.Bounds(today)
	todayDay := domain.CalendarDay(today)

	stats := &domain.PeriodStats{
		Period:       period,
		StartDate:    domain.DateKey(start),
		EndDate:      domain.DateKey(end),
		Daily:        make([]domain.DailyActivity, 0),
		Categories:   make([]domain.CategoryRollup, 0),
		Achievements: make([]domain.Achievement, 0),
	}

	routineCreated := make([]time.Time, len(snap.Routines))
	for i, r := range snap.Routines {
		routineCreated[i] = domain.CalendarDay(r.CreatedAt.In(today.Location()))
	}

	habitCreated := make([]time.Time, len(snap.Habits))
	for i, h := range snap.Habits {
		habitCreated[i] = domain.CalendarDay(h.CreatedAt.In(today.Location()))
	}

	rollups := make(map[string]*rollupCounter)
	bump := func(category string, done bool) {
		name := strings.TrimSpace(category)
		if name == "" {
			name = domain.UncategorizedLabel
		}
		c, ok := rollups[name]
		if !ok {
			c = &rollupCounter{}
			rollups[name] = c
		}
		c.total++
		if done {
			c.completed++
		}
	}

	for day := start; !day.After(end); day = domain.AddDays(day, 1) {
		key := domain.DateKey(day)
		weekday := domain.DayOfWeek(day)
		entry := domain.DailyActivity{
			Date:    key,
			Weekday: domain.WeekdayLabel(weekday),
		}

		if !day.After(todayDay) {
			for i := range snap.Routines {
				r := &snap.Routines[i]
				if day.Before(routineCreated[i]) {
					continue
				}
				done := r.CompletedOn(key)
				entry.TotalRoutines++
				if done {
					entry.RoutinesCompleted++
				}
				bump(r.Category, done)
			}

			for i := range snap.Habits {
				h := &snap.Habits[i]
				if day.Before(habitCreated[i]) || !h.IsTargetDay(weekday) {
					continue
				}
				done := h.CompletedOn(key)
				entry.TotalHabits++
				if done {
					entry.HabitsCompleted++
				}
				bump(h.Category, done)
			}
		}

		// Completions on unscheduled days stay in the ledger but are not counted here.
		stats.RoutinesCompleted += entry.RoutinesCompleted
		stats.HabitsCompleted += entry.HabitsCompleted
		stats.ScheduledInstances += entry.TotalRoutines + entry.TotalHabits
		stats.CompletedInstances += entry.RoutinesCompleted + entry.HabitsCompleted
		stats.Daily = append(stats.Daily, entry)
	}

	stats.CompletionRate = completionRate(stats.CompletedInstances, stats.ScheduledInstances)

	for name, c := range rollups {
		stats.Categories = append(stats.Categories, domain.CategoryRollup{
			Name:      name,
			Completed: c.completed,
			Total:     c.total,
		})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		a, b := stats.Categories[i], stats.Categories[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Name < b.Name
	})

	return stats
}

// completionRate is a percentage rounded to one decimal, 0 when nothing was scheduled.
func completionRate(completed, scheduled int) float64 {
	if scheduled == 0 {
		return 0
	}
	rate := float64(completed) / float64(scheduled) * 100
	return math.Round(rate*10) / 10
}

func achievements(snap *domain.Snapshot, today time.Time) []domain.Achievement {
	out := make([]domain.Achievement, 0, 3)

	for _, h := range snap.Habits {
		if h.LongestStreak >= streakMasterDays {
			out = append(out, domain.Achievement{
				Key:         "streak_master",
				Title:       "Streak Master",
				Description: "Kept a habit streak for 30 target days",
			})
			break
		}
	}

	for _, r := range snap.Routines {
		if len(r.CompletionDays) >= morningWarriorDays {
			out = append(out, domain.Achievement{
				Key:         "morning_warrior",
				Title:       "Morning Warrior",
				Description: "Completed a routine on 20 different days",
			})
			break
		}
	}

	month := summarize(snap, domain.PeriodMonth, today)
	if month.ScheduledInstances > 0 && month.CompletionRate >= consistencyRatePercent {
		out = append(out, domain.Achievement{
			Key:         "consistency_champion",
			Title:       "Consistency Champion",
			Description: "Completed at least 80% of this month's schedule",
		})
	}

	return out
}
