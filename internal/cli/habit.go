package cli

import (
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Days        string `short:"w" help:"Comma-separated target weekdays (mon,wed,fri or 1,3,5) or daily." default:"daily"`
	Color       string `help:"Hex color (#RRGGBB)."`
	Category    string `short:"c" help:"Category used in statistics."`
	Description string `short:"d" help:"Optional description."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	days, err := ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.AddHabit(services.CreateHabitInput{
		Title:       c.Title,
		Description: c.Description,
		Color:       c.Color,
		Category:    c.Category,
		TargetDays:  days,
	})
	if err != nil {
		return err
	}
	ctx.printf("Added habit %s %s\n", idStyle.Render(shortID(habit.ID)), habit.Title)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	view := ctx.Store.View()
	if len(view.Habits) == 0 {
		ctx.printf("No habits yet. Add one with: kanso habit add \"Read\" -w mon,wed,fri\n")
		return nil
	}

	ctx.printf("%s\n", headerStyle.Render("Habits for "+view.Today))
	for _, h := range view.Habits {
		ctx.printf("%s %s %s\n", checkbox(h.CompletedToday), idStyle.Render(shortID(h.ID)), h.Title)
		ctx.printf("    %s  streak %d (best %d)\n", renderStrip(h.RecentDays), h.CurrentStreak, h.LongestStreak)
	}
	return nil
}

type HabitMarkCmd struct {
	ID   string `arg:"" help:"Habit id or unique prefix."`
	Date string `help:"Day to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	id, err := ctx.habitID(c.ID)
	if err != nil {
		return err
	}

	var date time.Time
	if c.Date != "" {
		if date, err = domain.ParseDateKey(c.Date); err != nil {
			return err
		}
	}

	habit, ok := ctx.Store.ToggleHabitComplete(id, date)
	if !ok {
		return fmt.Errorf("habit %s not found", c.ID)
	}
	ctx.printf("%s: streak %d (best %d)\n", habit.Title, habit.CurrentStreak, habit.LongestStreak)
	return nil
}

type HabitDeleteCmd struct {
	ID string `arg:"" help:"Habit id or unique prefix."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	id, err := ctx.habitID(c.ID)
	if err != nil {
		return err
	}
	ctx.Store.DeleteHabit(id)
	ctx.printf("Deleted habit %s\n", shortID(id))
	return nil
}
