package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/planner"
	"questfit/coach-app/internal/repository"
)

func TestGeneratePlanService(t *testing.T) {
	userID := primitive.NewObjectID()
	prefs := domain.UserPrefs{
		TrainingLevel: "beginner",
		Goal:          domain.GoalMuscle,
		Archetype:     domain.ArchetypeHypertrophy,
		Location:      domain.LocationGym,
		DaysPerWeek:   4,
	}

	t.Run("deactivates the old plan before inserting", func(t *testing.T) {
		planRepo := new(MockPlanRepository)
		svc := NewPlanService(planRepo, nil)

		var order []string
		planRepo.On("DeactivateForUser", mock.Anything, userID).
			Run(func(mock.Arguments) { order = append(order, "deactivate") }).Return(nil)
		planID := primitive.NewObjectID()
		planRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TrainingPlan")).
			Run(func(mock.Arguments) { order = append(order, "create") }).Return(planID, nil)

		plan, err := svc.GeneratePlan(context.Background(), userID, prefs)
		require.NoError(t, err)
		assert.Equal(t, []string{"deactivate", "create"}, order)
		assert.Equal(t, planID, plan.ID)
		assert.Equal(t, userID, plan.UserID)
		assert.True(t, plan.IsActive)
		assert.Len(t, plan.Days, 4)
	})

	t.Run("deactivation failure aborts", func(t *testing.T) {
		planRepo := new(MockPlanRepository)
		svc := NewPlanService(planRepo, nil)

		planRepo.On("DeactivateForUser", mock.Anything, userID).Return(errors.New("db down"))

		_, err := svc.GeneratePlan(context.Background(), userID, prefs)
		assert.Error(t, err)
		planRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetActivePlan(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := new(MockPlanRepository)
	svc := NewPlanService(planRepo, nil)

	planRepo.On("GetActiveForUser", mock.Anything, userID).Return(nil, repository.ErrNotFound)

	_, err := svc.GetActivePlan(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNoActivePlan)
}

func TestGetPlanOwnership(t *testing.T) {
	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	planID := primitive.NewObjectID()

	planRepo := new(MockPlanRepository)
	svc := NewPlanService(planRepo, nil)

	planRepo.On("GetByID", mock.Anything, planID).
		Return(&domain.TrainingPlan{ID: planID, UserID: otherID}, nil)

	_, err := svc.GetPlan(context.Background(), userID, planID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGenerateProgram(t *testing.T) {
	userID := primitive.NewObjectID()

	request := planner.ProgramRequest{
		Weeks: 4,
		Profile: planner.ProgramProfile{
			Goal:            domain.GoalStrength,
			Level:           "intermediate",
			SessionsPerWeek: 3,
			Equipment:       []string{"barbell"},
		},
	}

	buildProgramJSON := func(t *testing.T) string {
		t.Helper()
		program := planner.Program{
			Title:           "Strength Block",
			Overview:        "Linear progression over four weeks.",
			Weeks:           4,
			SessionsPerWeek: 3,
			SafetyNotes:     []string{"Warm up before the top sets."},
		}
		for w := 1; w <= 4; w++ {
			week := planner.ProgramWeek{Week: w, Focus: "Strength"}
			for s := 0; s < 3; s++ {
				session := planner.ProgramSession{DayIndex: s, Name: "Session"}
				for e := 0; e < 4; e++ {
					session.Exercises = append(session.Exercises, planner.ProgramExercise{
						Name: "Back Squat", Sets: 5, Reps: "3-5", Intensity: "RPE 8", RestSec: 180,
					})
				}
				week.Sessions = append(week.Sessions, session)
			}
			program.WeekPlans = append(program.WeekPlans, week)
		}
		raw, err := json.Marshal(program)
		require.NoError(t, err)
		return string(raw)
	}

	t.Run("valid model output round-trips", func(t *testing.T) {
		generator := new(MockLLMClient)
		svc := NewPlanService(new(MockPlanRepository), generator)

		generator.On("GenerateProgramJSON", mock.Anything, mock.AnythingOfType("string")).
			Return("```json\n"+buildProgramJSON(t)+"\n```", nil)

		program, err := svc.GenerateProgram(context.Background(), userID, request)
		require.NoError(t, err)
		assert.Equal(t, "Strength Block", program.Title)
		assert.Len(t, program.WeekPlans, 4)
	})

	t.Run("schema violation surfaces the constraint", func(t *testing.T) {
		generator := new(MockLLMClient)
		svc := NewPlanService(new(MockPlanRepository), generator)

		generator.On("GenerateProgramJSON", mock.Anything, mock.AnythingOfType("string")).
			Return(`{"title":"x","overview":"y","weeks":4,"sessionsPerWeek":3,"weekPlans":[],"safetyNotes":["z"]}`, nil)

		_, err := svc.GenerateProgram(context.Background(), userID, request)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "weekPlans length 0 does not match weeks 4")
	})

	t.Run("invalid request never reaches the model", func(t *testing.T) {
		generator := new(MockLLMClient)
		svc := NewPlanService(new(MockPlanRepository), generator)

		bad := request
		bad.Weeks = 1
		_, err := svc.GenerateProgram(context.Background(), userID, bad)
		assert.Error(t, err)
		generator.AssertNotCalled(t, "GenerateProgramJSON", mock.Anything, mock.Anything)
	})

	t.Run("disabled without a generator", func(t *testing.T) {
		svc := NewPlanService(new(MockPlanRepository), nil)
		_, err := svc.GenerateProgram(context.Background(), userID, request)
		assert.ErrorIs(t, err, ErrProgramGenerationDisabled)
	})
}
