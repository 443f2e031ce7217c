package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-routines/internal/adapters/codec"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

func TestSnapshotExportImport(t *testing.T) {
	t.Run("Success: Exported snapshot imports back into a fresh store", func(t *testing.T) {
		router, store := setupRouter(t)
		r, _ := store.AddRoutine(services.CreateRoutineInput{Title: "Morning", Tasks: []string{"Stretch"}})
		store.ToggleRoutineComplete(r.ID)
		h, _ := store.AddHabit(services.CreateHabitInput{Title: "Gym", TargetDays: []int{1}})
		store.ToggleHabitComplete(h.ID, monday)

		w := perform(router, http.MethodGet, "/api/v1/snapshot", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "kanso-2024-01-08.json")
		exported := w.Body.String()

		other, otherStore := setupRouter(t)
		w = perform(other, http.MethodPut, "/api/v1/snapshot", exported)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, store.Export(), otherStore.Export())
	})

	t.Run("Success: YAML export", func(t *testing.T) {
		router, store := setupRouter(t)
		_, _ = store.AddHabit(services.CreateHabitInput{Title: "Gym", TargetDays: []int{1}})

		w := perform(router, http.MethodGet, "/api/v1/snapshot?format=yaml", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, codec.FormatYAML.ContentType(), w.Header().Get("Content-Type"))
		snap, err := codec.Unmarshal(w.Body.Bytes(), codec.FormatYAML)
		require.NoError(t, err)
		assert.Len(t, snap.Habits, 1)
	})

	t.Run("Success: YAML import by content type", func(t *testing.T) {
		router, store := setupRouter(t)
		body := "version: 1\nroutines: []\nhabits:\n  - id: h1\n    title: Gym\n    color: '#6366f1'\n    targetDays: [1]\n    completions: []\n    currentStreak: 0\n    longestStreak: 0\n    createdAt: 2024-01-01T00:00:00Z\n"

		req, _ := http.NewRequest(http.MethodPut, "/api/v1/snapshot", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/yaml")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		h, ok := store.Habit("h1")
		require.True(t, ok)
		assert.Equal(t, "Gym", h.Title)
	})

	t.Run("Error: Invalid snapshot leaves the store untouched", func(t *testing.T) {
		router, store := setupRouter(t)
		_, _ = store.AddHabit(services.CreateHabitInput{Title: "Gym", TargetDays: []int{1}})
		before := store.Export()

		body := `{"version": 1, "routines": [], "habits": [{"id": "x", "title": "Bad", "targetDays": [9]}]}`
		w := perform(router, http.MethodPut, "/api/v1/snapshot", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, before, store.Export())
	})

	t.Run("Error: Malformed body", func(t *testing.T) {
		router, _ := setupRouter(t)
		w := perform(router, http.MethodPut, "/api/v1/snapshot", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error: Unsupported format", func(t *testing.T) {
		router, _ := setupRouter(t)
		w := perform(router, http.MethodGet, "/api/v1/snapshot?format=xml", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSnapshotReset(t *testing.T) {
	router, store := setupRouter(t)
	_, _ = store.AddRoutine(services.CreateRoutineInput{Title: "Morning"})
	store.SetDarkMode(true)

	w := perform(router, http.MethodDelete, "/api/v1/snapshot", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.Routines())
	assert.False(t, store.Preferences().DarkMode)
}
