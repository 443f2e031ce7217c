package cli

import (
	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
)

type StatsCmd struct {
	Period string `short:"p" help:"Period to summarize (week|month|year)." enum:"week,month,year" default:"week"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	period, err := domain.ParsePeriod(c.Period)
	if err != nil {
		return err
	}
	stats := ctx.Analytics.Summarize(period)

	ctx.printf("%s\n", headerStyle.Render("Stats "+stats.StartDate+" to "+stats.EndDate))
	ctx.printf("Completion rate: %s (%d/%d)\n", percent(stats.CompletionRate), stats.CompletedInstances, stats.ScheduledInstances)
	ctx.printf("Routines completed: %d\n", stats.RoutinesCompleted)
	ctx.printf("Habits completed: %d\n", stats.HabitsCompleted)

	if period == domain.PeriodWeek {
		for _, d := range stats.Daily {
			done := d.RoutinesCompleted + d.HabitsCompleted
			total := d.TotalRoutines + d.TotalHabits
			ctx.printf("  %s %s %d/%d\n", d.Weekday, progressBar(done, total, 10), done, total)
		}
	}

	if len(stats.Categories) > 0 {
		ctx.printf("%s\n", headerStyle.Render("Categories"))
		for _, cat := range stats.Categories {
			ctx.printf("  %s %d/%d\n", categoryStyle.Render(cat.Name), cat.Completed, cat.Total)
		}
	}

	if len(stats.Achievements) > 0 {
		ctx.printf("%s\n", headerStyle.Render("Achievements"))
		for _, a := range stats.Achievements {
			ctx.printf("  %s: %s\n", a.Title, a.Description)
		}
	}
	return nil
}
