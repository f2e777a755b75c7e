package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/service"
)

// SessionHandler serves the live-workout endpoints plus the gamification
// read models (stats, weekly quest).
type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type StartSessionRequest struct {
	DayIndex int    `json:"dayIndex"`
	Location string `json:"location" binding:"omitempty,oneof=gym home outdoor"`
}

// StartSession opens a session with a frozen blueprint for one plan day.
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	session, err := h.sessionService.StartSession(c.Request.Context(), userID, req.DayIndex, domain.Location(req.Location))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionAlreadyOpen):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrNoActivePlan):
			abortWithError(c, http.StatusNotFound, "No active plan")
		case errors.Is(err, service.ErrInvalidDayIndex):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to start session")
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetOpenSession returns the user's in-progress session, 404 when none.
func (h *SessionHandler) GetOpenSession(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	session, err := h.sessionService.GetOpenSession(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, "No open session")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load session")
		return
	}
	c.JSON(http.StatusOK, session)
}

type LogSetRequest struct {
	ExerciseIndex int      `json:"exerciseIndex" binding:"min=0"`
	SetIndex      int      `json:"setIndex" binding:"min=0"`
	WeightKg      *float64 `json:"weightKg"`
	Reps          int      `json:"reps" binding:"required,min=1"`
	RPE           *float64 `json:"rpe" binding:"omitempty,min=0,max=10"`
	RestSeconds   *int     `json:"restSeconds" binding:"omitempty,min=0"`
}

type LogSetResponse struct {
	Entry   *domain.ExerciseLogEntry `json:"entry"`
	Warning string                   `json:"warning,omitempty"`
}

// LogSet appends one completed set to the open session.
func (h *SessionHandler) LogSet(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.sessionService.LogSet(c.Request.Context(), userID, service.LogSetInput{
		SessionID:     sessionID,
		ExerciseIndex: req.ExerciseIndex,
		SetIndex:      req.SetIndex,
		WeightKg:      req.WeightKg,
		Reps:          req.Reps,
		RPE:           req.RPE,
		RestSeconds:   req.RestSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, "Session not found or already finished")
		case errors.Is(err, service.ErrInvalidReps):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to log set")
		}
		return
	}
	c.JSON(http.StatusCreated, LogSetResponse{Entry: result.Entry, Warning: result.Warning})
}

type FinishSessionResponse struct {
	Session *domain.WorkoutSession `json:"session"`
	Stats   *domain.UserStats      `json:"stats"`
}

// FinishSession closes the session and returns it together with the
// updated user stats (XP, level, streak).
func (h *SessionHandler) FinishSession(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, stats, err := h.sessionService.FinishSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, "Session not found or already finished")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to finish session")
		return
	}
	c.JSON(http.StatusOK, FinishSessionResponse{Session: session, Stats: stats})
}

// GetStats returns the gamification read model for the user.
func (h *SessionHandler) GetStats(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.sessionService.GetStats(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetWeeklyQuest returns this week's quest, creating it on first read.
func (h *SessionHandler) GetWeeklyQuest(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	quest, err := h.sessionService.GetWeeklyQuest(c.Request.Context(), userID, time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load weekly quest")
		return
	}
	c.JSON(http.StatusOK, quest)
}
