package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/planner"
	"questfit/coach-app/internal/repository"
	"questfit/coach-app/internal/service"
)

// PlanHandler serves plan generation and retrieval.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type GeneratePlanRequest struct {
	TrainingLevel string   `json:"training_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Goal          string   `json:"goal" binding:"omitempty,oneof=muscle strength fat_loss general"`
	Archetype     string   `json:"archetype" binding:"omitempty,oneof=hypertrophy calisthenics weightlifting running"`
	Location      string   `json:"location" binding:"omitempty,oneof=gym home outdoor"`
	DaysPerWeek   int      `json:"days_per_week" binding:"required,min=1,max=7"`
	Equipment     []string `json:"equipment"`
}

// GeneratePlan creates a fresh template plan from the posted preferences.
// Any previously active plan is deactivated; the new plan is returned
// active.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	prefs := domain.UserPrefs{
		TrainingLevel: req.TrainingLevel,
		Goal:          domain.Goal(req.Goal),
		Archetype:     domain.Archetype(req.Archetype),
		Location:      domain.Location(req.Location),
		DaysPerWeek:   req.DaysPerWeek,
		Equipment:     req.Equipment,
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID, prefs)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetActivePlan returns the user's single active plan, 404 when none.
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.planService.GetActivePlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, "No active plan")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetPlan returns one plan by ID. Plans belonging to other users are
// reported as not found rather than forbidden.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Plan not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GenerateProgram asks the LLM backend for a multi-week program. The
// request is validated before any model call; the model output is schema
// checked before it reaches the client.
func (h *PlanHandler) GenerateProgram(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req planner.ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := planner.ValidateRequest(req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	program, err := h.planService.GenerateProgram(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrProgramGenerationDisabled) {
			abortWithError(c, http.StatusServiceUnavailable, "Program generation is not configured")
			return
		}
		abortWithError(c, http.StatusBadGateway, "Program generation failed")
		return
	}
	c.JSON(http.StatusOK, program)
}
