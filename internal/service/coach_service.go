package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/coach"
	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/repository"
)

// historyFetchLimit caps how many log entries per exercise feed the engine.
// The plateau window only needs a handful of sessions; 30 entries covers
// several sessions of multi-set work.
const historyFetchLimit = 30

var ErrInvalidDayIndex = errors.New("day index out of range for the active plan")

type CoachService interface {
	// BuildBlueprint assembles the next session for one plan day: active
	// plan, settings, variant catalog and per-exercise history feed the
	// engine.
	BuildBlueprint(ctx context.Context, userID primitive.ObjectID, dayIndex int, now time.Time) (*domain.SessionBlueprint, error)
	// PreviewExercise computes last performance and the next recommendation
	// for one exercise, for static plan views outside a session.
	PreviewExercise(ctx context.Context, userID primitive.ObjectID, ex domain.PlanExercise) (coach.LastPerformance, coach.Recommendation, error)
	CycleWeek(ctx context.Context, userID primitive.ObjectID, now time.Time) (week int, deload bool, err error)
	// AdvanceCycleWeek shifts the cycle anchor one week into the past,
	// moving the user one week forward in the cycle.
	AdvanceCycleWeek(ctx context.Context, userID primitive.ObjectID, now time.Time) (int, error)
	GetSettings(ctx context.Context, userID primitive.ObjectID) (*domain.CoachSettings, error)
	UpdateSettings(ctx context.Context, settings *domain.CoachSettings) error
}

type coachService struct {
	policy       coach.Policy
	planRepo     repository.PlanRepository
	logRepo      repository.LogRepository
	settingsRepo repository.SettingsRepository
}

// NewCoachService creates a new coach service.
func NewCoachService(policy coach.Policy, planRepo repository.PlanRepository, logRepo repository.LogRepository, settingsRepo repository.SettingsRepository) CoachService {
	return &coachService{
		policy:       policy,
		planRepo:     planRepo,
		logRepo:      logRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *coachService) BuildBlueprint(ctx context.Context, userID primitive.ObjectID, dayIndex int, now time.Time) (*domain.SessionBlueprint, error) {
	plan, err := s.planRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	if dayIndex < 0 || dayIndex >= len(plan.Days) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayIndex, dayIndex)
	}

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.settingsRepo.GetVariantCatalog(ctx)
	if err != nil {
		return nil, err
	}

	day := plan.Days[dayIndex]
	logs, err := s.fetchHistory(ctx, userID, day, catalog)
	if err != nil {
		return nil, err
	}

	week := s.policy.CycleWeek(settings.CycleStartDate, now)
	blueprint := s.policy.BuildSessionBlueprint(coach.BlueprintInput{
		PlanDay:        day,
		Archetype:      plan.Meta.Archetype,
		Baseline:       settings.Baseline,
		Goal:           plan.Meta.Goal,
		LogsByExercise: logs,
		Constraints:    settings.Constraints,
		Catalog:        catalog,
		CycleWeek:      week,
	})
	return &blueprint, nil
}

// fetchHistory loads log entries for every exercise of the day plus every
// catalog variant sharing a base key, so a substituted exercise finds its
// own history.
func (s *coachService) fetchHistory(ctx context.Context, userID primitive.ObjectID, day domain.PlanDay, catalog []domain.VariantExercise) (map[string][]domain.ExerciseLogEntry, error) {
	keys := make(map[string]bool)
	for _, ex := range day.Exercises {
		keys[ex.ExerciseKey] = true
		base := coach.InferBaseKey(ex.ExerciseKey)
		for _, variant := range catalog {
			if variant.BaseKey == base {
				keys[variant.VariantKey] = true
			}
		}
	}

	logs := make(map[string][]domain.ExerciseLogEntry, len(keys))
	for key := range keys {
		entries, err := s.logRepo.GetByExerciseKey(ctx, userID, key, historyFetchLimit)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			logs[key] = entries
		}
	}
	return logs, nil
}

func (s *coachService) PreviewExercise(ctx context.Context, userID primitive.ObjectID, ex domain.PlanExercise) (coach.LastPerformance, coach.Recommendation, error) {
	entries, err := s.logRepo.GetByExerciseKey(ctx, userID, ex.ExerciseKey, historyFetchLimit)
	if err != nil {
		return coach.LastPerformance{}, coach.Recommendation{}, err
	}

	plan, err := s.planRepo.GetActiveForUser(ctx, userID)
	goal := domain.GoalGeneral
	if err == nil {
		goal = plan.Meta.Goal
	} else if !errors.Is(err, repository.ErrNotFound) {
		return coach.LastPerformance{}, coach.Recommendation{}, err
	}

	targetMin, targetMax := ex.TargetRepsMin, ex.TargetRepsMax
	if targetMin == 0 && targetMax == 0 {
		targetMin, targetMax = s.policy.ParseRepRange(ex.Reps)
	}

	last := coach.AnalyzeLastPerformance(entries, targetMin, targetMax)
	rec := s.policy.RecommendWeight(goal, targetMin, targetMax, ex.EquipmentType, last)
	return last, rec, nil
}

func (s *coachService) CycleWeek(ctx context.Context, userID primitive.ObjectID, now time.Time) (int, bool, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	week := s.policy.CycleWeek(settings.CycleStartDate, now)
	return week, s.policy.IsDeloadWeek(week), nil
}

func (s *coachService) AdvanceCycleWeek(ctx context.Context, userID primitive.ObjectID, now time.Time) (int, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return 0, err
	}
	settings.CycleStartDate = settings.CycleStartDate.AddDate(0, 0, -7)
	if err := s.settingsRepo.UpsertSettings(ctx, settings); err != nil {
		return 0, err
	}
	return s.policy.CycleWeek(settings.CycleStartDate, now), nil
}

// GetSettings returns the user's settings, creating a default row anchored
// on the current week's Monday when none exists yet.
func (s *coachService) GetSettings(ctx context.Context, userID primitive.ObjectID) (*domain.CoachSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	settings = &domain.CoachSettings{
		UserID: userID,
		Constraints: domain.ConstraintSet{
			Location: domain.LocationGym,
		},
		CycleStartDate: coach.WeekStart(time.Now()),
	}
	if err := s.settingsRepo.UpsertSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *coachService) UpdateSettings(ctx context.Context, settings *domain.CoachSettings) error {
	if settings.UserID == primitive.NilObjectID {
		return errors.New("settings require a user id")
	}
	if settings.CycleStartDate.IsZero() {
		settings.CycleStartDate = coach.WeekStart(time.Now())
	}
	return s.settingsRepo.UpsertSettings(ctx, settings)
}
