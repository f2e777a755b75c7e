package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/repository"
)

func testPlan(userID primitive.ObjectID, daysPerWeek int) *domain.TrainingPlan {
	days := make([]domain.PlanDay, daysPerWeek)
	for i := range days {
		days[i] = domain.PlanDay{Day: "Day", Focus: "Full Body"}
	}
	return &domain.TrainingPlan{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Title:  "Plan Full Body - beginner",
		Meta:   domain.UserPrefs{DaysPerWeek: daysPerWeek},
		Days:   days,
	}
}

func TestEnsureWeekSchedule(t *testing.T) {
	userID := primitive.NewObjectID()
	// A Wednesday; its week runs Monday 2024-03-11 to Sunday 2024-03-17.
	now := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

	t.Run("fills an empty week with the offset table", func(t *testing.T) {
		planRepo := new(MockPlanRepository)
		scheduleRepo := new(MockScheduleRepository)
		svc := NewScheduleService(scheduleRepo, planRepo)

		plan := testPlan(userID, 3)
		planRepo.On("GetActiveForUser", mock.Anything, userID).Return(plan, nil)
		scheduleRepo.On("GetRange", mock.Anything, userID, "2024-03-11", "2024-03-17").
			Return([]domain.ScheduledWorkout{}, nil).Once()

		var upserted []string
		scheduleRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.ScheduledWorkout")).
			Run(func(args mock.Arguments) {
				row := args.Get(1).(*domain.ScheduledWorkout)
				upserted = append(upserted, row.WorkoutDate)
			}).Return(nil)
		scheduleRepo.On("GetRange", mock.Anything, userID, "2024-03-11", "2024-03-17").
			Return(make([]domain.ScheduledWorkout, 3), nil).Once()

		week, err := svc.EnsureWeekSchedule(context.Background(), userID, now)
		require.NoError(t, err)
		assert.Len(t, week, 3)
		// 3 days/week lands on Monday, Wednesday, Friday.
		assert.Equal(t, []string{"2024-03-11", "2024-03-13", "2024-03-15"}, upserted)
	})

	t.Run("skips dates that already have rows", func(t *testing.T) {
		planRepo := new(MockPlanRepository)
		scheduleRepo := new(MockScheduleRepository)
		svc := NewScheduleService(scheduleRepo, planRepo)

		plan := testPlan(userID, 3)
		existing := []domain.ScheduledWorkout{
			{UserID: userID, WorkoutDate: "2024-03-11", Status: domain.WorkoutDone},
		}
		planRepo.On("GetActiveForUser", mock.Anything, userID).Return(plan, nil)
		scheduleRepo.On("GetRange", mock.Anything, userID, "2024-03-11", "2024-03-17").
			Return(existing, nil).Once()

		var upserted []string
		scheduleRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.ScheduledWorkout")).
			Run(func(args mock.Arguments) {
				row := args.Get(1).(*domain.ScheduledWorkout)
				upserted = append(upserted, row.WorkoutDate)
			}).Return(nil)
		scheduleRepo.On("GetRange", mock.Anything, userID, "2024-03-11", "2024-03-17").
			Return(make([]domain.ScheduledWorkout, 3), nil).Once()

		_, err := svc.EnsureWeekSchedule(context.Background(), userID, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-03-13", "2024-03-15"}, upserted)
	})

	t.Run("full week is a no-op", func(t *testing.T) {
		planRepo := new(MockPlanRepository)
		scheduleRepo := new(MockScheduleRepository)
		svc := NewScheduleService(scheduleRepo, planRepo)

		plan := testPlan(userID, 3)
		existing := make([]domain.ScheduledWorkout, 3)
		planRepo.On("GetActiveForUser", mock.Anything, userID).Return(plan, nil)
		scheduleRepo.On("GetRange", mock.Anything, userID, "2024-03-11", "2024-03-17").
			Return(existing, nil)

		week, err := svc.EnsureWeekSchedule(context.Background(), userID, now)
		require.NoError(t, err)
		assert.Len(t, week, 3)
		scheduleRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("no active plan", func(t *testing.T) {
		planRepo := new(MockPlanRepository)
		scheduleRepo := new(MockScheduleRepository)
		svc := NewScheduleService(scheduleRepo, planRepo)

		planRepo.On("GetActiveForUser", mock.Anything, userID).Return(nil, repository.ErrNotFound)

		_, err := svc.EnsureWeekSchedule(context.Background(), userID, now)
		assert.ErrorIs(t, err, ErrNoActivePlan)
	})

	t.Run("days per week clamps to six", func(t *testing.T) {
		planRepo := new(MockPlanRepository)
		scheduleRepo := new(MockScheduleRepository)
		svc := NewScheduleService(scheduleRepo, planRepo)

		plan := testPlan(userID, 6)
		plan.Meta.DaysPerWeek = 9
		planRepo.On("GetActiveForUser", mock.Anything, userID).Return(plan, nil)
		scheduleRepo.On("GetRange", mock.Anything, userID, "2024-03-11", "2024-03-17").
			Return([]domain.ScheduledWorkout{}, nil).Once()

		count := 0
		scheduleRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.ScheduledWorkout")).
			Run(func(mock.Arguments) { count++ }).Return(nil)
		scheduleRepo.On("GetRange", mock.Anything, userID, "2024-03-11", "2024-03-17").
			Return(make([]domain.ScheduledWorkout, 6), nil).Once()

		_, err := svc.EnsureWeekSchedule(context.Background(), userID, now)
		require.NoError(t, err)
		assert.Equal(t, 6, count)
	})
}

func TestOffsetsForWeek(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4}, offsetsForWeek(3))
	assert.Equal(t, []int{0, 1, 3, 4}, offsetsForWeek(4))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, offsetsForWeek(6))
	// Outside the table: evenly spaced across the week.
	assert.Equal(t, []int{0}, offsetsForWeek(1))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, offsetsForWeek(7))
}

func TestMarkDay(t *testing.T) {
	userID := primitive.NewObjectID()
	planRepo := new(MockPlanRepository)
	scheduleRepo := new(MockScheduleRepository)
	svc := NewScheduleService(scheduleRepo, planRepo)

	t.Run("valid update", func(t *testing.T) {
		scheduleRepo.On("SetStatus", mock.Anything, userID, "2024-03-13", domain.WorkoutSkipped, (*primitive.ObjectID)(nil)).Return(nil)
		err := svc.MarkDay(context.Background(), userID, "2024-03-13", domain.WorkoutSkipped, nil)
		assert.NoError(t, err)
	})

	t.Run("rejects bad date", func(t *testing.T) {
		err := svc.MarkDay(context.Background(), userID, "13/03/2024", domain.WorkoutDone, nil)
		assert.Error(t, err)
	})

	t.Run("rejects bad status", func(t *testing.T) {
		err := svc.MarkDay(context.Background(), userID, "2024-03-13", "paused", nil)
		assert.Error(t, err)
	})
}
