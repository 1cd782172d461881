package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/storage/sqlite"
	"github.com/julianstephens/habitflow/internal/utils"
)

const testSecret = "testsecret"

type testEnv struct {
	srv   *Server
	token string
	owner string
}

// setupServer serves a fresh SQLite store whose clock reads noon IST on
// Wednesday 2024-01-10.
func setupServer(t *testing.T) *testEnv {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	engine := stats.New(utils.NewCalendar(loc, utils.FixedClock{T: time.Date(2024, 1, 10, 12, 0, 0, 0, loc)}))

	srv := New(habits.New(store, engine, ""), Options{JWTSecret: testSecret})
	token, err := IssueToken(testSecret, "alice", time.Hour, time.Now())
	require.NoError(t, err)
	return &testEnv{srv: srv, token: token, owner: "alice"}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	return e.doAs(t, e.token, method, path, body)
}

func (e *testEnv) doAs(t *testing.T, token, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (e *testEnv) createHabit(t *testing.T, name string, days ...int) models.Habit {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/habits", map[string]interface{}{
		"name":       name,
		"targetDays": days,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var habit models.Habit
	decode(t, resp, &habit)
	return habit
}

func TestHealthz(t *testing.T) {
	env := setupServer(t)
	resp := env.doAs(t, "", http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	env := setupServer(t)

	resp := env.doAs(t, "", http.MethodGet, "/api/habits", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "missing bearer token", body["error"])

	forged, err := IssueToken("other-secret", "alice", time.Hour, time.Now())
	require.NoError(t, err)
	resp = env.doAs(t, forged, http.MethodGet, "/api/habits", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired, err := IssueToken(testSecret, "alice", time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	resp = env.doAs(t, expired, http.MethodGet, "/api/habits", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHabitLifecycle(t *testing.T) {
	env := setupServer(t)
	habit := env.createHabit(t, "Read", 1, 3, 5)
	assert.Equal(t, "alice", habit.OwnerID)
	assert.True(t, habit.IsActive)
	assert.Equal(t, "#3B82F6", habit.Color)

	resp := env.do(t, http.MethodGet, "/api/habits/"+habit.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/habits/"+habit.ID, map[string]interface{}{
		"isActive": false,
		"icon":     "book",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Habit
	decode(t, resp, &updated)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Book", updated.Icon)
	assert.Equal(t, habit.CreatedAt, updated.CreatedAt)

	resp = env.do(t, http.MethodGet, "/api/habits?active=true", nil)
	var active []models.Habit
	decode(t, resp, &active)
	assert.Empty(t, active)

	resp = env.do(t, http.MethodGet, "/api/habits", nil)
	var all []models.Habit
	decode(t, resp, &all)
	assert.Len(t, all, 1)

	resp = env.do(t, http.MethodDelete, "/api/habits/"+habit.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/habits/"+habit.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateHabitValidation(t *testing.T) {
	env := setupServer(t)
	env.createHabit(t, "Read", 1)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"no target days", map[string]interface{}{"name": "Run", "targetDays": []int{}}},
		{"bad weekday", map[string]interface{}{"name": "Run", "targetDays": []int{7}}},
		{"unknown icon", map[string]interface{}{"name": "Run", "targetDays": []int{1}, "icon": "Rocket"}},
		{"duplicate name", map[string]interface{}{"name": "read", "targetDays": []int{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/habits", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body map[string]string
			decode(t, resp, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	env := setupServer(t)
	habit := env.createHabit(t, "Read", 1)

	bob, err := IssueToken(testSecret, "bob", time.Hour, time.Now())
	require.NoError(t, err)

	resp := env.doAs(t, bob, http.MethodGet, "/api/habits/"+habit.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.doAs(t, bob, http.MethodPost, "/api/habits/"+habit.ID+"/progress/2024-01-10/toggle", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.doAs(t, bob, http.MethodGet, "/api/habits", nil)
	var list []models.Habit
	decode(t, resp, &list)
	assert.Empty(t, list)
}

func TestProgressAndStats(t *testing.T) {
	env := setupServer(t)
	habit := env.createHabit(t, "Read", 1, 3, 5)
	base := "/api/habits/" + habit.ID

	resp := env.do(t, http.MethodPost, base+"/progress/2024-01-10/toggle", map[string]string{"note": "ch 1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entry models.Progress
	decode(t, resp, &entry)
	assert.True(t, entry.Completed)
	assert.Equal(t, "ch 1", entry.Note)

	resp = env.do(t, http.MethodPut, base+"/progress/2024-01-08", map[string]interface{}{"completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPut, base+"/progress/2024-01-09", map[string]interface{}{"note": "missing flag"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, base+"/progress/2024-13-01/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/progress", nil)
	var entries []models.Progress
	decode(t, resp, &entries)
	assert.Len(t, entries, 2)

	resp = env.do(t, http.MethodGet, base+"/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st models.HabitStats
	decode(t, resp, &st)
	assert.Equal(t, 2, st.TotalCompletions)
	// Monday's entry predates creation but still extends the streak
	assert.Equal(t, 2, st.CurrentStreak)

	resp = env.do(t, http.MethodGet, base+"/week", nil)
	var week []models.WeeklyDay
	decode(t, resp, &week)
	require.Len(t, week, 7)
	assert.Equal(t, "2024-01-10", week[6].Date)
	assert.True(t, week[6].Completed)

	resp = env.do(t, http.MethodGet, base+"/calendar?month=2024-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var month models.MonthView
	decode(t, resp, &month)
	assert.Len(t, month.Days, 31)
	assert.Equal(t, 1, month.LeadingBlank)

	resp = env.do(t, http.MethodGet, base+"/calendar?month=january", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/dashboard", nil)
	var dash models.DashboardStats
	decode(t, resp, &dash)
	assert.Equal(t, 1, dash.TotalHabits)
	assert.Equal(t, 1, dash.TodayTotal)
	assert.Equal(t, 1, dash.TodayCompleted)
}

func TestExportImport(t *testing.T) {
	env := setupServer(t)
	habit := env.createHabit(t, "Read", 1)
	resp := env.do(t, http.MethodPost, "/api/habits/"+habit.ID+"/progress/2024-01-08/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "habitflow-export-2024-01-10.json")
	var data models.ExportData
	decode(t, resp, &data)
	assert.Len(t, data.Habits, 1)
	assert.Len(t, data.Progress, 1)

	bob, err := IssueToken(testSecret, "bob", time.Hour, time.Now())
	require.NoError(t, err)
	data.Habits[0].ID = "bob-habit"
	data.Progress[0].HabitID = "bob-habit"
	data.Progress[0].ID = "bob-progress"
	resp = env.doAs(t, bob, http.MethodPost, "/api/import", data)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.doAs(t, bob, http.MethodGet, "/api/habits", nil)
	var list []models.Habit
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].OwnerID)

	resp = env.doAs(t, bob, http.MethodPost, "/api/import", map[string]interface{}{"habits": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseToken(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", time.Hour, time.Now())
	require.NoError(t, err)

	owner, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)

	_, err = ParseToken("", token)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = IssueToken(testSecret, "", time.Hour, time.Now())
	assert.Error(t, err)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("habit h1: %w", storage.ErrNotFound), want: http.StatusNotFound},
		{name: "duplicate name", err: habits.ErrDuplicateName, want: http.StatusBadRequest},
		{name: "malformed stored date", err: fmt.Errorf("%w: habit h1", stats.ErrMalformedDate), want: http.StatusBadRequest},
		{name: "anything else", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
