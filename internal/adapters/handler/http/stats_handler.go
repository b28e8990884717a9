package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladblajovan/ritualist-engine/internal/adapters/handler/http/middleware"
	"github.com/vladblajovan/ritualist-engine/internal/core/domain"
	"github.com/vladblajovan/ritualist-engine/internal/core/services"
)

type StatsHandler struct {
	svc      *services.StatsService
	userRepo domain.UserRepository
}

func NewStatsHandler(svc *services.StatsService, userRepo domain.UserRepository) *StatsHandler {
	return &StatsHandler{svc: svc, userRepo: userRepo}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/weekly", h.GetWeeklyStats)
	r.GET("/stats/habits/:id", h.GetHabitSummary)
}

// resolveTimezone picks the anchor timezone for a stats request: the explicit
// query parameter when present, the user's home timezone otherwise.
func (h *StatsHandler) resolveTimezone(c *gin.Context, userID string) string {
	if tz := c.Query("timezone"); tz != "" {
		return tz
	}
	if user, err := h.userRepo.GetByID(c.Request.Context(), userID); err == nil {
		return user.Timezone
	}
	return "UTC"
}

func (h *StatsHandler) parseRange(c *gin.Context) (start, end time.Time, ok bool) {
	endDateStr := c.Query("end_date")
	startDateStr := c.Query("start_date")

	var err error

	if endDateStr == "" {
		end = time.Now().UTC()
	} else {
		end, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
			return
		}
	}

	if startDateStr == "" {
		start = end.AddDate(0, 0, -6)
	} else {
		start, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
			return
		}
	}

	if start.After(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date cannot be after end_date"})
		return
	}

	const maxDaysRange = 366 // Max 1 anno
	daysDiff := end.Sub(start).Hours() / 24
	if daysDiff > maxDaysRange {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
		return
	}

	return start, end, true
}

// GetWeeklyStats godoc
// @Summary      Schedule-aware completion stats
// @Description  Aggregates every habit over the range in the anchor timezone. Unscheduled days never count against the rate; times-per-week habits are rated against their weekly target.
// @Tags         stats
// @Produce      json
// @Param        start_date query string false "YYYY-MM-DD, defaults to end_date-6"
// @Param        end_date query string false "YYYY-MM-DD, defaults to today"
// @Param        timezone query string false "IANA anchor timezone, defaults to the user's home timezone"
// @Success      200 {object} domain.WeeklyStats
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	startDate, endDate, ok := h.parseRange(c)
	if !ok {
		return
	}

	input := domain.StatsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Timezone:  h.resolveTimezone(c, userID),
	}

	stats, err := h.svc.GetWeeklyStats(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetHabitSummary godoc
// @Summary      Per-habit calendar, weeks and streaks
// @Description  Day-by-day completion results, weekly summaries and streaks for one habit, anchored on end_date in the anchor timezone.
// @Tags         stats
// @Produce      json
// @Param        id path string true "Habit ID"
// @Param        start_date query string false "YYYY-MM-DD, defaults to end_date-6"
// @Param        end_date query string false "YYYY-MM-DD, defaults to today"
// @Param        timezone query string false "IANA anchor timezone, defaults to the user's home timezone"
// @Success      200 {object} services.HabitSummary
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /stats/habits/{id} [get]
func (h *StatsHandler) GetHabitSummary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	startDate, endDate, ok := h.parseRange(c)
	if !ok {
		return
	}

	input := domain.StatsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Timezone:  h.resolveTimezone(c, userID),
	}

	summary, err := h.svc.GetHabitSummary(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve habit summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
