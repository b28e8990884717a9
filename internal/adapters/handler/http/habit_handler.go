package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladblajovan/ritualist-engine/internal/adapters/handler/http/middleware"
	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
	"github.com/vladblajovan/ritualist-engine/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Color        string   `json:"color"`
	Icon         string   `json:"icon"`
	Kind         string   `json:"kind"`
	ReminderTime string   `json:"reminder_time"`
	Unit         string   `json:"unit"`
	DailyTarget  *float64 `json:"daily_target"`
	ScheduleType string   `json:"schedule_type"`
	TimesPerWeek int      `json:"times_per_week"`
	Weekdays     []int    `json:"weekdays"`
}

type updateHabitRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Color        string   `json:"color"`
	Icon         string   `json:"icon"`
	Kind         string   `json:"kind"`
	ReminderTime string   `json:"reminder_time"`
	Unit         string   `json:"unit"`
	DailyTarget  *float64 `json:"daily_target"`
	ScheduleType string   `json:"schedule_type"`
	TimesPerWeek int      `json:"times_per_week"`
	Weekdays     []int    `json:"weekdays"`
	Version      int      `json:"version"`
}

func toWeekdays(days []int) []domain.Weekday {
	if len(days) == 0 {
		return nil
	}
	out := make([]domain.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, domain.Weekday(d))
	}
	return out
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/sync", h.Sync)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.POST("/:id/archive", h.Archive)
		habits.POST("/:id/restore", h.Restore)
		habits.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary      Create a habit
// @Description  Creates a binary or numeric habit with a daily, times-per-week or days-of-week schedule. Weekdays use 1=Monday .. 7=Sunday.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        request body createHabitRequest true "Habit payload"
// @Success      201 {object} domain.Habit
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateHabitInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Color:        req.Color,
		Icon:         req.Icon,
		Kind:         req.Kind,
		ReminderTime: req.ReminderTime,
		Unit:         req.Unit,
		DailyTarget:  req.DailyTarget,
		ScheduleType: req.ScheduleType,
		TimesPerWeek: req.TimesPerWeek,
		Weekdays:     toWeekdays(req.Weekdays),
	}

	habit, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func isValidationError(err error) bool {
	return errors.Is(err, domain.ErrHabitTitleEmpty) ||
		errors.Is(err, domain.ErrHabitTitleTooLong) ||
		errors.Is(err, domain.ErrHabitDescTooLong) ||
		errors.Is(err, domain.ErrInvalidColor) ||
		errors.Is(err, domain.ErrInvalidTarget) ||
		errors.Is(err, domain.ErrInvalidHabitKind) ||
		errors.Is(err, domain.ErrInvalidReminder) ||
		errors.Is(err, domain.ErrInvalidScheduleType) ||
		errors.Is(err, domain.ErrInvalidTimesPerWeek) ||
		errors.Is(err, domain.ErrInvalidWeekdays) ||
		errors.Is(err, domain.ErrEmptyWeekdaySet)
}

// List godoc
// @Summary      List the user's habits
// @Tags         habits
// @Produce      json
// @Success      200 {array} domain.Habit
// @Security     BearerAuth
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary      Fetch one habit
// @Tags         habits
// @Produce      json
// @Param        id path string true "Habit ID"
// @Success      200 {object} domain.Habit
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /habits/{id} [get]
func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, habit)
}

// Sync godoc
// @Summary      Delta sync for habits
// @Description  Returns habits changed since last_sync, soft-deleted records included.
// @Tags         habits
// @Produce      json
// @Param        last_sync query string false "RFC3339 checkpoint"
// @Success      200 {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /habits/sync [get]
func (h *HabitHandler) Sync(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	lastSyncStr := c.Query("last_sync")
	var lastSync time.Time
	var err error

	if lastSyncStr != "" {
		lastSync, err = time.Parse(time.RFC3339, lastSyncStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_sync format, use RFC3339"})
			return
		}
	}

	deltas, err := h.svc.GetDelta(c.Request.Context(), userID, lastSync)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changes":   deltas,
		"timestamp": time.Now().UTC(),
	})
}

// Update godoc
// @Summary      Update a habit
// @Description  Empty string fields keep their stored value. An absent schedule_type keeps the stored schedule. Version enables the optimistic lock.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id path string true "Habit ID"
// @Param        request body updateHabitRequest true "Fields to change"
// @Success      200
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Security     BearerAuth
// @Router       /habits/{id} [put]
func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateHabitInput{
		ID:           id,
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Color:        req.Color,
		Icon:         req.Icon,
		Kind:         req.Kind,
		ReminderTime: req.ReminderTime,
		Unit:         req.Unit,
		DailyTarget:  req.DailyTarget,
		ScheduleType: req.ScheduleType,
		TimesPerWeek: req.TimesPerWeek,
		Weekdays:     toWeekdays(req.Weekdays),
		Version:      req.Version,
	}

	err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrHabitConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "version conflict",
				"message": "Data has been modified elsewhere. Please sync.",
			})
			return
		}

		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		if errors.Is(err, domain.ErrHabitArchived) || isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusOK)
}

// Archive godoc
// @Summary      Archive a habit
// @Description  Archived habits stop accepting edits but keep their history and streaks.
// @Tags         habits
// @Param        id path string true "Habit ID"
// @Success      200
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /habits/{id}/archive [post]
func (h *HabitHandler) Archive(c *gin.Context) {
	h.archiveAction(c, h.svc.Archive)
}

// Restore godoc
// @Summary      Restore an archived habit
// @Tags         habits
// @Param        id path string true "Habit ID"
// @Success      200
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /habits/{id}/restore [post]
func (h *HabitHandler) Restore(c *gin.Context) {
	h.archiveAction(c, h.svc.Restore)
}

func (h *HabitHandler) archiveAction(c *gin.Context, action func(ctx context.Context, id, userID string) error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := action(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusOK)
}

// Delete godoc
// @Summary      Delete a habit
// @Description  Soft delete; the record stays visible to delta sync.
// @Tags         habits
// @Param        id path string true "Habit ID"
// @Success      204
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
