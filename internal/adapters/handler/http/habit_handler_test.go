package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/vladblajovan/ritualist-engine/internal/adapters/handler/http"
	"github.com/vladblajovan/ritualist-engine/internal/adapters/handler/http/middleware"
	"github.com/vladblajovan/ritualist-engine/internal/adapters/repository"
	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
	"github.com/vladblajovan/ritualist-engine/internal/core/services"
)

// stubAuth stands in for the JWT middleware: the user comes from a header so
// each request in the test can impersonate a different account.
func stubAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-Test-User")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		c.Set(middleware.ContextUserIDKey, userID)
		c.Next()
	}
}

func setupHabitRouter() (*gin.Engine, *repository.InMemoryHabitRepository) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryHabitRepository()
	svc := services.NewHabitService(repo)
	handler := adapterHTTP.NewHabitHandler(svc)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/v1", stubAuth()))
	return r, repo
}

func seedBinaryHabit(t *testing.T, repo *repository.InMemoryHabitRepository, userID, title string) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(userID, title, "", "", "", "binary", "", "", nil, domain.Daily{})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), h))
	return h
}

func TestCreateHabit(t *testing.T) {
	t.Run("Success: 201 Created with days-of-week schedule", func(t *testing.T) {
		router, _ := setupHabitRouter()

		body := `{"title": "Gym", "kind": "binary", "schedule_type": "days_of_week", "weekdays": [1, 3, 5]}`

		req, _ := http.NewRequest("POST", "/api/v1/habits", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Gym"`)
		assert.Contains(t, w.Body.String(), `"id":`)
	})

	t.Run("Success: 201 Created numeric habit with target", func(t *testing.T) {
		router, repo := setupHabitRouter()

		body := `{"title": "Water", "kind": "numeric", "daily_target": 2000, "unit": "ml"}`

		req, _ := http.NewRequest("POST", "/api/v1/habits", bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var created domain.Habit
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		stored, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.DailyTarget)
		assert.Equal(t, 2000.0, *stored.DailyTarget)
		assert.Equal(t, "ml", stored.Unit)
	})

	t.Run("Fail: 401 Unauthorized (No Token)", func(t *testing.T) {
		router, _ := setupHabitRouter()
		body := `{"title": "Gym"}`

		req, _ := http.NewRequest("POST", "/api/v1/habits", bytes.NewBufferString(body))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: 400 Bad Request (Empty Title)", func(t *testing.T) {
		router, _ := setupHabitRouter()

		body := `{"title": ""}`

		req, _ := http.NewRequest("POST", "/api/v1/habits", bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 Bad Request (times_per_week out of range)", func(t *testing.T) {
		router, _ := setupHabitRouter()

		body := `{"title": "Gym", "schedule_type": "times_per_week", "times_per_week": 9}`

		req, _ := http.NewRequest("POST", "/api/v1/habits", bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetHabits(t *testing.T) {
	t.Run("Success: 200 OK with List", func(t *testing.T) {
		router, repo := setupHabitRouter()

		seedBinaryHabit(t, repo, "user-1", "Run")

		req, _ := http.NewRequest("GET", "/api/v1/habits", nil)
		req.Header.Set("X-Test-User", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Run")
	})

	t.Run("Success: other user's habits stay invisible", func(t *testing.T) {
		router, repo := setupHabitRouter()

		seedBinaryHabit(t, repo, "user-1", "Secret")

		req, _ := http.NewRequest("GET", "/api/v1/habits", nil)
		req.Header.Set("X-Test-User", "user-2")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "Secret")
	})
}

func TestUpdateHabit(t *testing.T) {
	t.Run("Success: 200 OK Full Update", func(t *testing.T) {
		router, repo := setupHabitRouter()

		h := seedBinaryHabit(t, repo, "user-1", "Old")

		body := `{
            "title": "New",
            "color": "#00FF00",
            "schedule_type": "days_of_week",
            "weekdays": [1, 2],
            "version": 1
        }`

		req, _ := http.NewRequest("PUT", "/api/v1/habits/"+h.ID, bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		updated, _ := repo.GetByID(context.Background(), h.ID)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "#00FF00", updated.Color)
		assert.Equal(t, domain.ScheduleTypeDaysOfWeek, updated.Schedule.Type())
	})

	t.Run("Success: 200 OK Partial Update keeps schedule", func(t *testing.T) {
		router, repo := setupHabitRouter()

		h := seedBinaryHabit(t, repo, "user-1", "Old Title")

		body := `{"title": "Updated Title", "version": 1}`

		req, _ := http.NewRequest("PUT", "/api/v1/habits/"+h.ID, bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		updated, _ := repo.GetByID(context.Background(), h.ID)
		assert.Equal(t, "Updated Title", updated.Title)
		assert.Equal(t, domain.ScheduleTypeDaily, updated.Schedule.Type())
	})

	t.Run("Fail: 409 Conflict on stale version", func(t *testing.T) {
		router, repo := setupHabitRouter()

		h := seedBinaryHabit(t, repo, "user-1", "Contended")

		body := `{"title": "First Writer", "version": 1}`
		req, _ := http.NewRequest("PUT", "/api/v1/habits/"+h.ID, bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		// Stesso numero di versione riproposto da un secondo device.
		body = `{"title": "Second Writer", "version": 1}`
		req, _ = http.NewRequest("PUT", "/api/v1/habits/"+h.ID, bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-1")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "version conflict")
	})

	t.Run("Fail: 404 Not Found (IDOR Protection)", func(t *testing.T) {
		router, repo := setupHabitRouter()
		h := seedBinaryHabit(t, repo, "user-1", "Secret")

		body := `{"title": "Hacked", "version": 1}`
		req, _ := http.NewRequest("PUT", "/api/v1/habits/"+h.ID, bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-2")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestArchiveRestoreHabit(t *testing.T) {
	t.Run("Archive then update: 400, restore reopens", func(t *testing.T) {
		router, repo := setupHabitRouter()
		h := seedBinaryHabit(t, repo, "user-1", "Seasonal")

		req, _ := http.NewRequest("POST", "/api/v1/habits/"+h.ID+"/archive", nil)
		req.Header.Set("X-Test-User", "user-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		stored, _ := repo.GetByID(context.Background(), h.ID)
		require.NotNil(t, stored.ArchivedAt)

		body := `{"title": "Nope", "version": 2}`
		req, _ = http.NewRequest("PUT", "/api/v1/habits/"+h.ID, bytes.NewBufferString(body))
		req.Header.Set("X-Test-User", "user-1")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		req, _ = http.NewRequest("POST", "/api/v1/habits/"+h.ID+"/restore", nil)
		req.Header.Set("X-Test-User", "user-1")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		stored, _ = repo.GetByID(context.Background(), h.ID)
		assert.Nil(t, stored.ArchivedAt)
	})

	t.Run("Fail: 404 archiving a foreign habit", func(t *testing.T) {
		router, repo := setupHabitRouter()
		h := seedBinaryHabit(t, repo, "user-1", "Secret")

		req, _ := http.NewRequest("POST", "/api/v1/habits/"+h.ID+"/archive", nil)
		req.Header.Set("X-Test-User", "user-2")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteHabit(t *testing.T) {
	t.Run("Success: 204 No Content", func(t *testing.T) {
		router, repo := setupHabitRouter()
		h := seedBinaryHabit(t, repo, "user-1", "To Delete")

		req, _ := http.NewRequest("DELETE", "/api/v1/habits/"+h.ID, nil)
		req.Header.Set("X-Test-User", "user-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Fail: 404 Not Found (IDOR Protection)", func(t *testing.T) {
		router, repo := setupHabitRouter()
		h := seedBinaryHabit(t, repo, "user-1", "Secret")

		req, _ := http.NewRequest("DELETE", "/api/v1/habits/"+h.ID, nil)
		req.Header.Set("X-Test-User", "user-2")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: 401 Unauthorized", func(t *testing.T) {
		router, _ := setupHabitRouter()
		req, _ := http.NewRequest("DELETE", "/api/v1/habits/123", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSyncHabits(t *testing.T) {
	t.Run("Deleted habits stay visible to delta sync", func(t *testing.T) {
		router, repo := setupHabitRouter()
		h := seedBinaryHabit(t, repo, "user-1", "Ephemeral")

		req, _ := http.NewRequest("DELETE", "/api/v1/habits/"+h.ID, nil)
		req.Header.Set("X-Test-User", "user-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)

		req, _ = http.NewRequest("GET", "/api/v1/habits/sync", nil)
		req.Header.Set("X-Test-User", "user-1")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Ephemeral")
		assert.Contains(t, w.Body.String(), "deleted_at")
	})

	t.Run("Fail: 400 on malformed checkpoint", func(t *testing.T) {
		router, _ := setupHabitRouter()

		req, _ := http.NewRequest("GET", "/api/v1/habits/sync?last_sync=yesterday", nil)
		req.Header.Set("X-Test-User", "user-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
