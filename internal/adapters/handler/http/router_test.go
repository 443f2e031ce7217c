package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-routines/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-routines/internal/core/services"
)

// 2024-01-08 is a Monday.
var monday = time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) (*gin.Engine, *services.TrackingStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := services.NewTrackingStore(func() time.Time { return monday }, time.UTC)
	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		Store:     store,
		Analytics: services.NewAnalyticsService(store),
		StartTime: monday,
	})
	return router, store
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	t.Run("Success: Reports counts without optional backends", func(t *testing.T) {
		router, store := setupRouter(t)
		_, err := store.AddHabit(services.CreateHabitInput{Title: "Read", TargetDays: []int{1}})
		require.NoError(t, err)

		w := perform(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode[map[string]any](t, w)
		assert.Equal(t, "ok", body["status"])
		assert.EqualValues(t, 1, body["habits"])
		assert.EqualValues(t, 0, body["routines"])
		assert.NotContains(t, body, "database")
		assert.NotContains(t, body, "redis")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	perform(router, http.MethodGet, "/api/v1/routines", "")
	w := perform(router, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kanso_http_requests_total")
}

func TestView(t *testing.T) {
	router, store := setupRouter(t)
	_, err := store.AddRoutine(services.CreateRoutineInput{Title: "Evening", Tasks: []string{"Stretch", "Journal"}})
	require.NoError(t, err)

	w := perform(router, http.MethodGet, "/api/v1/view", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "2024-01-08", body["today"])

	routines := body["routines"].([]any)
	require.Len(t, routines, 1)
	first := routines[0].(map[string]any)
	assert.EqualValues(t, 2, first["totalTasks"])
	assert.EqualValues(t, 0, first["taskProgress"])
}

func TestPreferences(t *testing.T) {
	t.Run("Success: Patch updates only the given fields", func(t *testing.T) {
		router, store := setupRouter(t)
		before := store.Preferences()

		w := perform(router, http.MethodPatch, "/api/v1/preferences", `{"darkMode": true}`)

		require.Equal(t, http.StatusOK, w.Code)
		prefs := store.Preferences()
		assert.True(t, prefs.DarkMode)
		assert.Equal(t, before.NotificationsEnabled, prefs.NotificationsEnabled)
		assert.Equal(t, before.EmailRemindersEnabled, prefs.EmailRemindersEnabled)

		w = perform(router, http.MethodGet, "/api/v1/preferences", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode[map[string]any](t, w)["darkMode"])
	})

	t.Run("Error: Malformed body", func(t *testing.T) {
		router, _ := setupRouter(t)
		w := perform(router, http.MethodPatch, "/api/v1/preferences", `{"darkMode": "yes"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
