package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/coach"
	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/repository"
)

var ErrNoActivePlan = errors.New("no active training plan")

// scheduleOffsets maps a weekly training frequency to day-of-week offsets
// from Monday.
var scheduleOffsets = map[int][]int{
	2: {0, 3},
	3: {0, 2, 4},
	4: {0, 1, 3, 4},
	5: {0, 1, 2, 3, 4},
	6: {0, 1, 2, 3, 4, 5},
}

type ScheduleService interface {
	// EnsureWeekSchedule fills the current ISO week (Monday to Sunday) with
	// scheduled workout rows for the active plan and returns the full week.
	// Calling it repeatedly is safe; existing dates are never overwritten.
	EnsureWeekSchedule(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]domain.ScheduledWorkout, error)
	GetWeek(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]domain.ScheduledWorkout, error)
	MarkDay(ctx context.Context, userID primitive.ObjectID, workoutDate string, status domain.WorkoutStatus, sessionID *primitive.ObjectID) error
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	planRepo     repository.PlanRepository
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, planRepo repository.PlanRepository) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		planRepo:     planRepo,
	}
}

func (s *scheduleService) EnsureWeekSchedule(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]domain.ScheduledWorkout, error) {
	plan, err := s.planRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	if len(plan.Days) == 0 {
		return nil, errors.New("active plan has no training days")
	}

	start := coach.WeekStart(now)
	fromDate := start.Format(domain.ScheduleDateLayout)
	toDate := start.AddDate(0, 0, 6).Format(domain.ScheduleDateLayout)

	existing, err := s.scheduleRepo.GetRange(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	targetDays := clampDays(planTargetDays(plan))
	if len(existing) < targetDays {
		existingDates := make(map[string]bool, len(existing))
		for _, row := range existing {
			existingDates[row.WorkoutDate] = true
		}

		for index, offset := range offsetsForWeek(targetDays) {
			date := start.AddDate(0, 0, offset).Format(domain.ScheduleDateLayout)
			if existingDates[date] {
				continue
			}
			row := &domain.ScheduledWorkout{
				UserID:      userID,
				PlanID:      plan.ID,
				WorkoutDate: date,
				DayIndex:    index % len(plan.Days),
				Status:      domain.WorkoutPlanned,
			}
			if err := s.scheduleRepo.Upsert(ctx, row); err != nil {
				return nil, err
			}
		}
	}

	return s.scheduleRepo.GetRange(ctx, userID, fromDate, toDate)
}

func (s *scheduleService) GetWeek(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]domain.ScheduledWorkout, error) {
	start := coach.WeekStart(now)
	fromDate := start.Format(domain.ScheduleDateLayout)
	toDate := start.AddDate(0, 0, 6).Format(domain.ScheduleDateLayout)
	return s.scheduleRepo.GetRange(ctx, userID, fromDate, toDate)
}

func (s *scheduleService) MarkDay(ctx context.Context, userID primitive.ObjectID, workoutDate string, status domain.WorkoutStatus, sessionID *primitive.ObjectID) error {
	if _, err := time.Parse(domain.ScheduleDateLayout, workoutDate); err != nil {
		return errors.New("invalid workout date")
	}
	switch status {
	case domain.WorkoutPlanned, domain.WorkoutDone, domain.WorkoutSkipped:
	default:
		return errors.New("invalid workout status")
	}
	return s.scheduleRepo.SetStatus(ctx, userID, workoutDate, status, sessionID)
}

func planTargetDays(plan *domain.TrainingPlan) int {
	if plan.Meta.DaysPerWeek > 0 {
		return plan.Meta.DaysPerWeek
	}
	return len(plan.Days)
}

func clampDays(days int) int {
	if days < 3 {
		return 3
	}
	if days > 6 {
		return 6
	}
	return days
}

// offsetsForWeek returns day-of-week offsets for a frequency; counts outside
// the table get evenly spaced slots across the week.
func offsetsForWeek(daysPerWeek int) []int {
	if offsets, ok := scheduleOffsets[daysPerWeek]; ok {
		return offsets
	}
	if daysPerWeek <= 1 {
		return []int{0}
	}
	offsets := make([]int, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		offsets[i] = int(math.Round(float64(i*6) / float64(daysPerWeek-1)))
	}
	return offsets
}
