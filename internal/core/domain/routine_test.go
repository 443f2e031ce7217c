package domain_test

import (
	"strings"
	"testing"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoutine(t *testing.T) {
	t.Run("Success: Creates routine with defaults and skips blank tasks", func(t *testing.T) {
		r, err := domain.NewRoutine(" Morning ", "", "", "07:00", []string{"Stretch", "  ", "Coffee"}, fixedNow)

		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "Morning", r.Title)
		assert.Equal(t, domain.DefaultCategory, r.Category)
		assert.Equal(t, "07:00", r.ScheduledTime)
		require.Len(t, r.Tasks, 2)
		assert.Equal(t, "Stretch", r.Tasks[0].Title)
		assert.NotEqual(t, r.Tasks[0].ID, r.Tasks[1].ID)
		assert.False(t, r.IsCompleted)
		assert.Nil(t, r.CompletedAt)
	})

	t.Run("Error: Empty Title", func(t *testing.T) {
		_, err := domain.NewRoutine("", "", "", "", nil, fixedNow)
		assert.Equal(t, domain.ErrRoutineTitleEmpty, err)
	})

	t.Run("Error: Title too long", func(t *testing.T) {
		_, err := domain.NewRoutine(strings.Repeat("x", 101), "", "", "", nil, fixedNow)
		assert.Equal(t, domain.ErrRoutineTitleTooLong, err)
	})
}

func TestRoutine_ToggleComplete(t *testing.T) {
	r, err := domain.NewRoutine("Evening", "", "Health", "", nil, fixedNow)
	require.NoError(t, err)

	r.ToggleComplete("2024-01-08", fixedNow)
	assert.True(t, r.IsCompleted)
	require.NotNil(t, r.CompletedAt)
	assert.Equal(t, fixedNow, *r.CompletedAt)
	assert.True(t, r.CompletedOn("2024-01-08"))

	r.ToggleComplete("2024-01-08", fixedNow)
	assert.False(t, r.IsCompleted)
	assert.Nil(t, r.CompletedAt)
	assert.False(t, r.CompletedOn("2024-01-08"))
	assert.Empty(t, r.CompletionDays)
}

func TestRoutine_ToggleCompleteAcrossDays(t *testing.T) {
	r, err := domain.NewRoutine("Evening", "", "", "", nil, fixedNow)
	require.NoError(t, err)
	tuesday := fixedNow.AddDate(0, 0, 1)

	r.ToggleComplete("2024-01-08", fixedNow)

	r.ToggleComplete("2024-01-09", tuesday)
	assert.True(t, r.IsCompleted, "a stale flag from yesterday must not turn today off")
	require.NotNil(t, r.CompletedAt)
	assert.Equal(t, tuesday, *r.CompletedAt)
	assert.Equal(t, []string{"2024-01-08", "2024-01-09"}, r.CompletionDays)

	r.SyncToday("2024-01-10")
	assert.False(t, r.IsCompleted)
	assert.Nil(t, r.CompletedAt)
}

func TestRoutine_Tasks(t *testing.T) {
	r, err := domain.NewRoutine("Morning", "", "", "", []string{"Stretch", "Coffee"}, fixedNow)
	require.NoError(t, err)

	t.Run("Success: Progress follows task state and leaves the routine flag alone", func(t *testing.T) {
		assert.Equal(t, 0.0, r.TaskProgress())

		assert.True(t, r.ToggleTask(r.Tasks[0].ID, fixedNow))
		assert.Equal(t, 0.5, r.TaskProgress())
		require.NotNil(t, r.Tasks[0].CompletedAt)

		assert.True(t, r.ToggleTask(r.Tasks[1].ID, fixedNow))
		assert.Equal(t, 1.0, r.TaskProgress())
		assert.False(t, r.IsCompleted)
	})

	t.Run("Success: Add and remove tasks", func(t *testing.T) {
		task, err := r.AddTask("Journal")
		require.NoError(t, err)
		assert.Len(t, r.Tasks, 3)
		assert.InDelta(t, 2.0/3.0, r.TaskProgress(), 0.0001)

		assert.True(t, r.RemoveTask(task.ID))
		assert.False(t, r.RemoveTask(task.ID))
		assert.Len(t, r.Tasks, 2)
	})

	t.Run("Error: Unknown task and blank title", func(t *testing.T) {
		assert.False(t, r.ToggleTask("missing", fixedNow))

		_, err := r.AddTask("  ")
		assert.Equal(t, domain.ErrTaskTitleEmpty, err)
	})

	t.Run("Success: No tasks means zero progress", func(t *testing.T) {
		empty, err := domain.NewRoutine("Empty", "", "", "", nil, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, 0.0, empty.TaskProgress())
	})
}

func TestRoutine_Clone(t *testing.T) {
	r, err := domain.NewRoutine("Morning", "", "", "", []string{"Stretch"}, fixedNow)
	require.NoError(t, err)
	r.ToggleTask(r.Tasks[0].ID, fixedNow)
	r.ToggleComplete("2024-01-08", fixedNow)

	c := r.Clone()
	c.Tasks[0].Title = "changed"
	c.CompletionDays[0] = "1999-01-01"
	*c.CompletedAt = fixedNow.AddDate(1, 0, 0)

	assert.Equal(t, "Stretch", r.Tasks[0].Title)
	assert.Equal(t, "2024-01-08", r.CompletionDays[0])
	assert.Equal(t, fixedNow, *r.CompletedAt)
}
