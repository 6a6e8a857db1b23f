package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type habitResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Streak         int      `json:"streak"`
	LongestStreak  int      `json:"longest_streak"`
	CompletedDates []string `json:"completed_dates"`
}

func TestHabitLifecycle(t *testing.T) {
	app := setupApp(t)

	w := app.do("POST", "/api/v1/habits", `{"title": "Meditate", "category": "growth", "target_days": 21}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var habit habitResponse
	decode(t, w, &habit)
	require.NotEmpty(t, habit.ID)
	assert.Empty(t, habit.CompletedDates)

	t.Run("Success: Toggle yesterday then today", func(t *testing.T) {
		w := app.do("PATCH", "/api/v1/habits/"+habit.ID+"/toggle", `{"date": "2026-10-15"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var got habitResponse
		decode(t, w, &got)
		assert.Equal(t, 0, got.Streak, "today not done yet")
		assert.Equal(t, []string{"2026-10-15"}, got.CompletedDates)

		w = app.do("PATCH", "/api/v1/habits/"+habit.ID+"/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &got)
		assert.Equal(t, 2, got.Streak)
		assert.Equal(t, 2, got.LongestStreak)
	})

	t.Run("Success: List", func(t *testing.T) {
		w := app.do("GET", "/api/v1/habits", "")
		require.Equal(t, http.StatusOK, w.Code)

		var list []habitResponse
		decode(t, w, &list)
		require.Len(t, list, 1)
		assert.Equal(t, 2, list[0].Streak)
	})

	t.Run("Fail: 400 Bad date", func(t *testing.T) {
		w := app.do("PATCH", "/api/v1/habits/"+habit.ID+"/toggle", `{"date": "yesterday"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 404 Unknown habit", func(t *testing.T) {
		w := app.do("PATCH", "/api/v1/habits/missing/toggle", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success: Delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, app.do("DELETE", "/api/v1/habits/"+habit.ID, "").Code)
		assert.Equal(t, http.StatusNoContent, app.do("DELETE", "/api/v1/habits/"+habit.ID, "").Code)

		w := app.do("GET", "/api/v1/habits", "")
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestCreateHabit_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Fail: 400 Missing title", `{"category": "growth", "target_days": 5}`},
		{"Fail: 400 Zero target", `{"title": "Run", "category": "growth", "target_days": 0}`},
		{"Fail: 400 Unknown category", `{"title": "Run", "category": "sleep", "target_days": 5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(t)
			w := app.do("POST", "/api/v1/habits", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
