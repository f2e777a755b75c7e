package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/llm"
	"questfit/coach-app/internal/planner"
	"questfit/coach-app/internal/repository"
)

var ErrProgramGenerationDisabled = errors.New("program generation is not configured")

type PlanService interface {
	// GeneratePlan builds a template plan from preferences, deactivates any
	// previous active plan and stores the new one as active.
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, prefs domain.UserPrefs) (*domain.TrainingPlan, error)
	GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error)
	// GenerateProgram asks the LLM for a multi-week program and validates
	// it against the schema before returning it.
	GenerateProgram(ctx context.Context, userID primitive.ObjectID, req planner.ProgramRequest) (*planner.Program, error)
}

type planService struct {
	planRepo  repository.PlanRepository
	generator llm.Client // nil when no API key is configured
}

// NewPlanService creates a new plan service. generator may be nil.
func NewPlanService(planRepo repository.PlanRepository, generator llm.Client) PlanService {
	return &planService{
		planRepo:  planRepo,
		generator: generator,
	}
}

func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, prefs domain.UserPrefs) (*domain.TrainingPlan, error) {
	plan := planner.GeneratePlan(prefs)
	plan.UserID = userID

	// Deactivate-then-insert; the brief window with no active plan is
	// accepted.
	if err := s.planRepo.DeactivateForUser(ctx, userID); err != nil {
		return nil, err
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

func (s *planService) GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, userID, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return plan, nil
}

func (s *planService) GenerateProgram(ctx context.Context, userID primitive.ObjectID, req planner.ProgramRequest) (*planner.Program, error) {
	if s.generator == nil {
		return nil, ErrProgramGenerationDisabled
	}
	if err := planner.ValidateRequest(req); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	profileJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, err
	}

	log.Printf("INFO: generating program request=%s user=%s weeks=%d", requestID, userID.Hex(), req.Weeks)

	raw, err := s.generator.GenerateProgramJSON(ctx, string(profileJSON))
	if err != nil {
		return nil, fmt.Errorf("program generation failed (request %s): %w", requestID, err)
	}

	object, err := planner.ExtractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("program generation failed (request %s): %w", requestID, err)
	}

	var program planner.Program
	if err := json.Unmarshal([]byte(object), &program); err != nil {
		return nil, fmt.Errorf("program generation returned invalid JSON (request %s): %w", requestID, err)
	}
	if err := planner.ValidateProgram(&program); err != nil {
		return nil, fmt.Errorf("generated program violates schema (request %s): %w", requestID, err)
	}

	log.Printf("INFO: program generated request=%s title=%q", requestID, program.Title)
	return &program, nil
}
