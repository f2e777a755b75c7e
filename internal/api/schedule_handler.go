package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/repository"
	"questfit/coach-app/internal/service"
)

// ScheduleHandler serves the weekly calendar.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GetWeek returns the current week's schedule, filling missing days from
// the active plan first. Reading is what triggers the fill; repeated calls
// never overwrite existing rows.
func (h *ScheduleHandler) GetWeek(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	week, err := h.scheduleService.EnsureWeekSchedule(c.Request.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			// No plan means an empty calendar, not an error.
			c.JSON(http.StatusOK, []domain.ScheduledWorkout{})
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	c.JSON(http.StatusOK, week)
}

type MarkDayRequest struct {
	Status    string  `json:"status" binding:"required,oneof=planned done skipped"`
	SessionID *string `json:"sessionId"`
}

// MarkDay sets the status of one scheduled day. PATCH /schedule/:date
func (h *ScheduleHandler) MarkDay(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workoutDate := c.Param("date")

	var req MarkDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var sessionID *primitive.ObjectID
	if req.SessionID != nil {
		id, err := primitive.ObjectIDFromHex(*req.SessionID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
			return
		}
		sessionID = &id
	}

	err = h.scheduleService.MarkDay(c.Request.Context(), userID, workoutDate, domain.WorkoutStatus(req.Status), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "No scheduled workout on that date")
			return
		}
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
