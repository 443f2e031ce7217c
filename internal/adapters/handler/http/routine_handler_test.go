package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

func TestCreateRoutine(t *testing.T) {
	t.Run("Success: 201 Created", func(t *testing.T) {
		router, store := setupRouter(t)

		body := `{"title": "Morning Workout", "category": "Health", "scheduledTime": "07:00", "tasks": ["Warm up", "Run"]}`
		w := perform(router, http.MethodPost, "/api/v1/routines", body)

		require.Equal(t, http.StatusCreated, w.Code)
		created := decode[domain.Routine](t, w)
		assert.Equal(t, "Morning Workout", created.Title)
		assert.Len(t, created.Tasks, 2)
		assert.False(t, created.IsCompleted)
		assert.Len(t, store.Routines(), 1)
	})

	t.Run("Error: Missing title", func(t *testing.T) {
		router, _ := setupRouter(t)
		w := perform(router, http.MethodPost, "/api/v1/routines", `{"category": "Health"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error: Blank title", func(t *testing.T) {
		router, store := setupRouter(t)
		w := perform(router, http.MethodPost, "/api/v1/routines", `{"title": "   "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrRoutineTitleEmpty.Error())
		assert.Empty(t, store.Routines())
	})
}

func TestListAndDeleteRoutine(t *testing.T) {
	router, store := setupRouter(t)
	r, err := store.AddRoutine(services.CreateRoutineInput{Title: "Evening"})
	require.NoError(t, err)

	w := perform(router, http.MethodGet, "/api/v1/routines", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Routine](t, w), 1)

	w = perform(router, http.MethodDelete, "/api/v1/routines/"+r.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.Routines())

	w = perform(router, http.MethodDelete, "/api/v1/routines/"+r.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code, "deleting an unknown routine is a no-op")
}

func TestToggleRoutine(t *testing.T) {
	t.Run("Success: Marks the routine complete for today", func(t *testing.T) {
		router, store := setupRouter(t)
		r, _ := store.AddRoutine(services.CreateRoutineInput{Title: "Evening"})

		w := perform(router, http.MethodPost, "/api/v1/routines/"+r.ID+"/toggle", "")

		require.Equal(t, http.StatusOK, w.Code)
		toggled := decode[domain.Routine](t, w)
		assert.True(t, toggled.IsCompleted)
		assert.Equal(t, []string{"2024-01-08"}, toggled.CompletionDays)
	})

	t.Run("Error: 404 Not Found", func(t *testing.T) {
		router, _ := setupRouter(t)
		w := perform(router, http.MethodPost, "/api/v1/routines/missing/toggle", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRoutineTasks(t *testing.T) {
	t.Run("Success: Add, toggle and delete a task", func(t *testing.T) {
		router, store := setupRouter(t)
		r, _ := store.AddRoutine(services.CreateRoutineInput{Title: "Morning", Tasks: []string{"Stretch"}})

		w := perform(router, http.MethodPost, "/api/v1/routines/"+r.ID+"/tasks", `{"title": "Meditate"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		task := decode[domain.Task](t, w)
		assert.Equal(t, "Meditate", task.Title)

		w = perform(router, http.MethodPost, "/api/v1/routines/"+r.ID+"/tasks/"+task.ID+"/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)
		updated := decode[domain.Routine](t, w)
		require.Len(t, updated.Tasks, 2)
		assert.True(t, updated.Tasks[1].IsCompleted)

		w = perform(router, http.MethodDelete, "/api/v1/routines/"+r.ID+"/tasks/"+task.ID, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		current, ok := store.Routine(r.ID)
		require.True(t, ok)
		assert.Len(t, current.Tasks, 1)
	})

	t.Run("Error: Adding to a missing routine", func(t *testing.T) {
		router, _ := setupRouter(t)
		w := perform(router, http.MethodPost, "/api/v1/routines/missing/tasks", `{"title": "Meditate"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error: Blank task title", func(t *testing.T) {
		router, store := setupRouter(t)
		r, _ := store.AddRoutine(services.CreateRoutineInput{Title: "Morning"})

		w := perform(router, http.MethodPost, "/api/v1/routines/"+r.ID+"/tasks", `{"title": "  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error: Toggling a missing task", func(t *testing.T) {
		router, store := setupRouter(t)
		r, _ := store.AddRoutine(services.CreateRoutineInput{Title: "Morning"})

		w := perform(router, http.MethodPost, "/api/v1/routines/"+r.ID+"/tasks/missing/toggle", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
