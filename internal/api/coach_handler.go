package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/service"
)

// CoachHandler serves the adaptive engine endpoints: blueprints, cycle
// state, per-exercise previews and settings.
type CoachHandler struct {
	coachService service.CoachService
}

func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// GetBlueprint builds the resolved session for one plan day without
// starting a session. GET /coach/days/:dayIndex/blueprint
func (h *CoachHandler) GetBlueprint(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	dayIndex, err := strconv.Atoi(c.Param("dayIndex"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day index")
		return
	}

	blueprint, err := h.coachService.BuildBlueprint(c.Request.Context(), userID, dayIndex, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActivePlan):
			abortWithError(c, http.StatusNotFound, "No active plan")
		case errors.Is(err, service.ErrInvalidDayIndex):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to build session blueprint")
		}
		return
	}
	c.JSON(http.StatusOK, blueprint)
}

type PreviewRequest struct {
	ExerciseKey   string `json:"exerciseKey" binding:"required"`
	ExerciseName  string `json:"exerciseName"`
	EquipmentType string `json:"equipmentType"`
	Reps          string `json:"reps"`
	TargetRepsMin int    `json:"targetRepsMin"`
	TargetRepsMax int    `json:"targetRepsMax"`
}

type PreviewResponse struct {
	Last           interface{} `json:"last"`
	Recommendation interface{} `json:"recommendation"`
}

// PreviewExercise computes the last performance and next recommendation
// for a single exercise, for plan views outside a live session.
func (h *CoachHandler) PreviewExercise(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ex := domain.PlanExercise{
		ExerciseKey:   req.ExerciseKey,
		ExerciseName:  req.ExerciseName,
		EquipmentType: domain.EquipmentType(req.EquipmentType),
		Reps:          req.Reps,
		TargetRepsMin: req.TargetRepsMin,
		TargetRepsMax: req.TargetRepsMax,
	}

	last, rec, err := h.coachService.PreviewExercise(c.Request.Context(), userID, ex)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute preview")
		return
	}
	c.JSON(http.StatusOK, PreviewResponse{Last: last, Recommendation: rec})
}

// GetCycle reports where the user stands in the training cycle.
func (h *CoachHandler) GetCycle(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	week, deload, err := h.coachService.CycleWeek(c.Request.Context(), userID, time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load cycle state")
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": week, "deload": deload})
}

// AdvanceCycle moves the user one week forward in the cycle by shifting
// the anchor date back. Useful after missed weeks or for testing a deload.
func (h *CoachHandler) AdvanceCycle(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	week, err := h.coachService.AdvanceCycleWeek(c.Request.Context(), userID, time.Now())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to advance cycle")
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": week})
}

// GetSettings returns the user's coach settings, creating defaults on
// first access.
func (h *CoachHandler) GetSettings(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	settings, err := h.coachService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

type UpdateSettingsRequest struct {
	Constraints domain.ConstraintSet `json:"constraints"`
	Baseline    domain.Baseline      `json:"baseline"`
}

// UpdateSettings replaces the user's constraints and baseline. The cycle
// anchor is preserved; use AdvanceCycle to move it.
func (h *CoachHandler) UpdateSettings(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	current, err := h.coachService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	current.Constraints = req.Constraints
	current.Baseline = req.Baseline
	if err := h.coachService.UpdateSettings(c.Request.Context(), current); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, current)
}
