package cli

import (
	"fmt"
	"strings"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

type RoutineAddCmd struct {
	Title       string   `arg:"" help:"Routine title."`
	Description string   `short:"d" help:"Optional description."`
	Category    string   `short:"c" help:"Category used in statistics."`
	Time        string   `short:"T" help:"Scheduled time of day (HH:MM)."`
	Tasks       []string `short:"t" name:"task" help:"Task title (repeatable)."`
}

func (c *RoutineAddCmd) Run(ctx *Context) error {
	routine, err := ctx.Store.AddRoutine(services.CreateRoutineInput{
		Title:         c.Title,
		Description:   c.Description,
		Category:      c.Category,
		ScheduledTime: c.Time,
		Tasks:         c.Tasks,
	})
	if err != nil {
		return err
	}
	ctx.printf("Added routine %s %s (%d tasks)\n", idStyle.Render(shortID(routine.ID)), routine.Title, len(routine.Tasks))
	return nil
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *Context) error {
	view := ctx.Store.View()
	if len(view.Routines) == 0 {
		ctx.printf("No routines yet. Add one with: kanso routine add \"Morning\" -t \"Stretch\"\n")
		return nil
	}

	ctx.printf("%s\n", headerStyle.Render("Routines for "+view.Today))
	for _, r := range view.Routines {
		line := fmt.Sprintf("%s %s %s", checkbox(r.IsCompleted), idStyle.Render(shortID(r.ID)), r.Title)
		if r.ScheduledTime != "" {
			line += " @ " + r.ScheduledTime
		}
		if r.Category != "" {
			line += " " + categoryStyle.Render(r.Category)
		}
		ctx.printf("%s\n", line)

		if r.TotalTasks > 0 {
			ctx.printf("    %s %d/%d\n", progressBar(r.CompletedTasks, r.TotalTasks, 12), r.CompletedTasks, r.TotalTasks)
		}
		for _, t := range r.Tasks {
			ctx.printf("    %s %s %s\n", checkbox(t.IsCompleted), idStyle.Render(shortID(t.ID)), t.Title)
		}
	}
	return nil
}

type RoutineDoneCmd struct {
	ID string `arg:"" help:"Routine id or unique prefix."`
}

func (c *RoutineDoneCmd) Run(ctx *Context) error {
	id, err := ctx.routineID(c.ID)
	if err != nil {
		return err
	}
	routine, ok := ctx.Store.ToggleRoutineComplete(id)
	if !ok {
		return fmt.Errorf("routine %s not found", c.ID)
	}

	state := "not done"
	if routine.IsCompleted {
		state = "done"
	}
	ctx.printf("%s marked %s for today\n", routine.Title, state)
	return nil
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine id or unique prefix."`
}

func (c *RoutineDeleteCmd) Run(ctx *Context) error {
	id, err := ctx.routineID(c.ID)
	if err != nil {
		return err
	}
	ctx.Store.DeleteRoutine(id)
	ctx.printf("Deleted routine %s\n", shortID(id))
	return nil
}

type TaskAddCmd struct {
	Routine string `arg:"" help:"Routine id or unique prefix."`
	Title   string `arg:"" help:"Task title."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	id, err := ctx.routineID(c.Routine)
	if err != nil {
		return err
	}
	task, ok, err := ctx.Store.AddTask(id, c.Title)
	if !ok {
		return fmt.Errorf("routine %s not found", c.Routine)
	}
	if err != nil {
		return err
	}
	ctx.printf("Added task %s %s\n", idStyle.Render(shortID(task.ID)), task.Title)
	return nil
}

func findTaskID(r *domain.Routine, prefix string) (string, error) {
	ids := make([]string, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		ids = append(ids, t.ID)
	}
	return resolveID(prefix, ids)
}

type TaskDoneCmd struct {
	Routine string `arg:"" help:"Routine id or unique prefix."`
	Task    string `arg:"" help:"Task id or unique prefix."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	id, err := ctx.routineID(c.Routine)
	if err != nil {
		return err
	}
	current, ok := ctx.Store.Routine(id)
	if !ok {
		return fmt.Errorf("routine %s not found", c.Routine)
	}
	taskID, err := findTaskID(current, c.Task)
	if err != nil {
		return err
	}

	routine, ok := ctx.Store.ToggleTaskComplete(id, taskID)
	if !ok {
		return fmt.Errorf("task %s not found", c.Task)
	}
	ctx.printf("%s: %d/%d tasks done\n", routine.Title, routine.CompletedTaskCount(), len(routine.Tasks))
	return nil
}

type TaskDeleteCmd struct {
	Routine string `arg:"" help:"Routine id or unique prefix."`
	Task    string `arg:"" help:"Task id or unique prefix."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	id, err := ctx.routineID(c.Routine)
	if err != nil {
		return err
	}
	current, ok := ctx.Store.Routine(id)
	if !ok {
		return fmt.Errorf("routine %s not found", c.Routine)
	}
	taskID, err := findTaskID(current, c.Task)
	if err != nil {
		return err
	}

	ctx.Store.DeleteTask(id, taskID)
	ctx.printf("Deleted task %s from %s\n", shortID(taskID), strings.TrimSpace(current.Title))
	return nil
}
