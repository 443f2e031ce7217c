package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRoutineTitleEmpty   = errors.New("routine title cannot be empty")
	ErrRoutineTitleTooLong = errors.New("routine title is too long (max 100 chars)")
	ErrRoutineDescTooLong  = errors.New("routine description is too long (max 500 chars)")
	ErrTaskTitleEmpty      = errors.New("task title cannot be empty")
)

const DefaultCategory = "Personal"

// RoutineCategories lists the categories offered when creating a routine.
var RoutineCategories = []string{"Personal", "Work", "Health", "Learning", "Social"}

type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	IsCompleted bool       `json:"isCompleted" yaml:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// Routine keeps its own completion flag independent of task state. Toggling every task
// does not complete the routine; TaskProgress reports task state instead.
type Routine struct {
	ID             string     `json:"id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	Category       string     `json:"category" yaml:"category"`
	ScheduledTime  string     `json:"scheduledTime,omitempty" yaml:"scheduledTime,omitempty"`
	Tasks          []Task     `json:"tasks" yaml:"tasks"`
	IsCompleted    bool       `json:"isCompleted" yaml:"isCompleted"`
	CompletedAt    *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	CompletionDays []string   `json:"completionDays,omitempty" yaml:"completionDays,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" yaml:"createdAt"`
}

func NewTask(title string) (Task, error) {
	clean := strings.TrimSpace(title)
	if clean == "" {
		return Task{}, ErrTaskTitleEmpty
	}
	return Task{ID: uuid.New().String(), Title: clean}, nil
}

func NewRoutine(title, description, category, scheduledTime string, taskTitles []string, now time.Time) (*Routine, error) {
	cleanTitle := strings.TrimSpace(title)
	if cleanTitle == "" {
		return nil, ErrRoutineTitleEmpty
	}
	if len(cleanTitle) > MaxTitleLen {
		return nil, ErrRoutineTitleTooLong
	}

	cleanDesc := strings.TrimSpace(description)
	if len(cleanDesc) > MaxDescLen {
		return nil, ErrRoutineDescTooLong
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}

	tasks := make([]Task, 0, len(taskTitles))
	for _, t := range taskTitles {
		task, err := NewTask(t)
		if err != nil {
			continue
		}
		tasks = append(tasks, task)
	}

	return &Routine{
		ID:            uuid.New().String(),
		Title:         cleanTitle,
		Description:   cleanDesc,
		Category:      category,
		ScheduledTime: strings.TrimSpace(scheduledTime),
		Tasks:         tasks,
		CreatedAt:     now.UTC(),
	}, nil
}

// ToggleComplete flips today's completion: it records today in the history when today is
// not there yet and clears it otherwise. The flag always ends up matching the history.
func (r *Routine) ToggleComplete(today string, now time.Time) {
	i := sort.SearchStrings(r.CompletionDays, today)
	recorded := i < len(r.CompletionDays) && r.CompletionDays[i] == today

	if !recorded {
		ts := now.UTC()
		r.IsCompleted = true
		r.CompletedAt = &ts
		r.CompletionDays = append(r.CompletionDays, "")
		copy(r.CompletionDays[i+1:], r.CompletionDays[i:])
		r.CompletionDays[i] = today
		return
	}

	r.IsCompleted = false
	r.CompletedAt = nil
	r.CompletionDays = append(r.CompletionDays[:i], r.CompletionDays[i+1:]...)
}

// SyncToday derives the flag from the history, so a routine finished yesterday reads as
// open today. CompletedAt is kept only while today is done.
func (r *Routine) SyncToday(today string) {
	r.IsCompleted = r.CompletedOn(today)
	if !r.IsCompleted {
		r.CompletedAt = nil
	}
}

func (r *Routine) CompletedOn(date string) bool {
	i := sort.SearchStrings(r.CompletionDays, date)
	return i < len(r.CompletionDays) && r.CompletionDays[i] == date
}

func (r *Routine) taskIndex(taskID string) int {
	for i, t := range r.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

// ToggleTask reports false when the task does not belong to the routine.
func (r *Routine) ToggleTask(taskID string, now time.Time) bool {
	i := r.taskIndex(taskID)
	if i < 0 {
		return false
	}

	task := &r.Tasks[i]
	task.IsCompleted = !task.IsCompleted
	if task.IsCompleted {
		ts := now.UTC()
		task.CompletedAt = &ts
	} else {
		task.CompletedAt = nil
	}
	return true
}

func (r *Routine) AddTask(title string) (Task, error) {
	task, err := NewTask(title)
	if err != nil {
		return Task{}, err
	}
	r.Tasks = append(r.Tasks, task)
	return task, nil
}

func (r *Routine) RemoveTask(taskID string) bool {
	i := r.taskIndex(taskID)
	if i < 0 {
		return false
	}
	r.Tasks = append(r.Tasks[:i], r.Tasks[i+1:]...)
	return true
}

func (r *Routine) CompletedTaskCount() int {
	n := 0
	for _, t := range r.Tasks {
		if t.IsCompleted {
			n++
		}
	}
	return n
}

// TaskProgress is completed/total over the current tasks, 0 when there are none.
func (r *Routine) TaskProgress() float64 {
	if len(r.Tasks) == 0 {
		return 0
	}
	return float64(r.CompletedTaskCount()) / float64(len(r.Tasks))
}

func (r Routine) Clone() Routine {
	out := r
	out.Tasks = make([]Task, len(r.Tasks))
	for i, t := range r.Tasks {
		out.Tasks[i] = t
		if t.CompletedAt != nil {
			ts := *t.CompletedAt
			out.Tasks[i].CompletedAt = &ts
		}
	}
	if r.CompletedAt != nil {
		ts := *r.CompletedAt
		out.CompletedAt = &ts
	}
	out.CompletionDays = append([]string(nil), r.CompletionDays...)
	return out
}
