package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/coach"
	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/repository"
)

func f64(v float64) *float64 { return &v }

func openSession(userID primitive.ObjectID) *domain.WorkoutSession {
	started := time.Now().UTC().Add(-45 * time.Minute)
	return &domain.WorkoutSession{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		PlanID:    primitive.NewObjectID(),
		StartedAt: started,
		Blueprint: domain.SessionBlueprint{
			CycleWeek: 1,
			Day:       "Day 1",
			Focus:     "Upper A",
			Exercises: []domain.BlueprintExercise{
				{
					PlanExercise: domain.PlanExercise{
						ExerciseKey:   "barbell_bench_press",
						ExerciseName:  "Barbell Bench Press",
						EquipmentType: domain.EquipmentBarbell,
						Sets:          "3",
						Reps:          "8-12",
						TargetRepsMin: 8,
						TargetRepsMax: 12,
					},
					RecommendedWeightKg: f64(80),
					RecommendedReps:     "8-12",
				},
			},
		},
	}
}

func sessionLogs(userID primitive.ObjectID, sessionID primitive.ObjectID, sets int, weight float64, reps int) []domain.ExerciseLogEntry {
	entries := make([]domain.ExerciseLogEntry, sets)
	for i := range entries {
		entries[i] = domain.ExerciseLogEntry{
			UserID:    userID,
			SessionID: sessionID,
			WeightKg:  f64(weight),
			Reps:      reps,
			SetIndex:  i,
		}
	}
	return entries
}

func newSessionService(sessionRepo *MockSessionRepository, logRepo *MockLogRepository, statsRepo *MockStatsRepository, scheduleRepo *MockScheduleRepository, planRepo *MockPlanRepository) SessionService {
	settingsRepo := new(MockSettingsRepository)
	coachSvc := NewCoachService(coach.DefaultPolicy(), planRepo, logRepo, settingsRepo)
	return NewSessionService(sessionRepo, logRepo, statsRepo, scheduleRepo, planRepo, coachSvc)
}

func TestLogSet(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("appends the entry and awards set XP", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		logRepo := new(MockLogRepository)
		statsRepo := new(MockStatsRepository)
		svc := newSessionService(sessionRepo, logRepo, statsRepo, new(MockScheduleRepository), new(MockPlanRepository))

		session := openSession(userID)
		sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		logRepo.On("Append", mock.Anything, mock.AnythingOfType("*domain.ExerciseLogEntry")).
			Return(primitive.NewObjectID(), nil)
		statsRepo.On("GetStats", mock.Anything, userID).Return(&domain.UserStats{UserID: userID, XP: 240, Level: 1}, nil)
		var saved *domain.UserStats
		statsRepo.On("UpsertStats", mock.Anything, mock.AnythingOfType("*domain.UserStats")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.UserStats) }).Return(nil)

		result, err := svc.LogSet(context.Background(), userID, LogSetInput{
			SessionID:     session.ID,
			ExerciseIndex: 0,
			SetIndex:      0,
			WeightKg:      f64(80),
			Reps:          10,
		})
		require.NoError(t, err)
		assert.Empty(t, result.Warning)
		assert.Equal(t, "barbell_bench_press", result.Entry.ExerciseKey)
		assert.Equal(t, 8, result.Entry.TargetRepsMin)

		require.NotNil(t, saved)
		assert.Equal(t, 250, saved.XP)
		assert.Equal(t, 2, saved.Level) // 250/250+1
	})

	t.Run("out of range reps warn but save", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		logRepo := new(MockLogRepository)
		statsRepo := new(MockStatsRepository)
		svc := newSessionService(sessionRepo, logRepo, statsRepo, new(MockScheduleRepository), new(MockPlanRepository))

		session := openSession(userID)
		sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		logRepo.On("Append", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)
		statsRepo.On("GetStats", mock.Anything, userID).Return(nil, repository.ErrNotFound)
		statsRepo.On("UpsertStats", mock.Anything, mock.Anything).Return(nil)

		result, err := svc.LogSet(context.Background(), userID, LogSetInput{
			SessionID:     session.ID,
			ExerciseIndex: 0,
			Reps:          20,
		})
		require.NoError(t, err)
		assert.Contains(t, result.Warning, "outside the 8-12 target range")
	})

	t.Run("rejects non-positive reps", func(t *testing.T) {
		svc := newSessionService(new(MockSessionRepository), new(MockLogRepository), new(MockStatsRepository), new(MockScheduleRepository), new(MockPlanRepository))
		_, err := svc.LogSet(context.Background(), userID, LogSetInput{Reps: 0})
		assert.ErrorIs(t, err, ErrInvalidReps)
	})

	t.Run("rejects a finished session", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		svc := newSessionService(sessionRepo, new(MockLogRepository), new(MockStatsRepository), new(MockScheduleRepository), new(MockPlanRepository))

		session := openSession(userID)
		ended := time.Now().UTC()
		session.EndedAt = &ended
		sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

		_, err := svc.LogSet(context.Background(), userID, LogSetInput{SessionID: session.ID, Reps: 10})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestFinishSession(t *testing.T) {
	userID := primitive.NewObjectID()
	today := time.Now().UTC().Format(domain.ScheduleDateLayout)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(domain.ScheduleDateLayout)

	setup := func(session *domain.WorkoutSession, entries []domain.ExerciseLogEntry, stats *domain.UserStats, quest *domain.WeeklyQuest, finished *domain.SessionStats) (*MockSessionRepository, *MockLogRepository, *MockStatsRepository, *MockScheduleRepository) {
		sessionRepo := new(MockSessionRepository)
		logRepo := new(MockLogRepository)
		statsRepo := new(MockStatsRepository)
		scheduleRepo := new(MockScheduleRepository)

		sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		logRepo.On("GetBySessionID", mock.Anything, userID, session.ID).Return(entries, nil)
		sessionRepo.On("Finish", mock.Anything, userID, session.ID, mock.AnythingOfType("domain.SessionStats")).
			Run(func(args mock.Arguments) {
				if finished != nil {
					*finished = args.Get(3).(domain.SessionStats)
				}
			}).
			Return(session, nil)
		if stats != nil {
			statsRepo.On("GetStats", mock.Anything, userID).Return(stats, nil)
		} else {
			statsRepo.On("GetStats", mock.Anything, userID).Return(nil, repository.ErrNotFound)
		}
		if quest != nil {
			statsRepo.On("GetQuest", mock.Anything, userID, mock.AnythingOfType("string")).Return(quest, nil)
		} else {
			statsRepo.On("GetQuest", mock.Anything, userID, mock.AnythingOfType("string")).Return(nil, repository.ErrNotFound)
		}
		statsRepo.On("UpsertQuest", mock.Anything, mock.AnythingOfType("*domain.WeeklyQuest")).Return(nil)
		statsRepo.On("UpsertStats", mock.Anything, mock.AnythingOfType("*domain.UserStats")).Return(nil)
		scheduleRepo.On("SetStatus", mock.Anything, userID, today, domain.WorkoutDone, &session.ID).Return(nil)
		return sessionRepo, logRepo, statsRepo, scheduleRepo
	}

	t.Run("computes aggregates and finish bonus", func(t *testing.T) {
		session := openSession(userID)
		entries := sessionLogs(userID, session.ID, 6, 80, 10)
		var finished domain.SessionStats
		sessionRepo, logRepo, statsRepo, scheduleRepo := setup(session, entries, nil, nil, &finished)
		svc := newSessionService(sessionRepo, logRepo, statsRepo, scheduleRepo, new(MockPlanRepository))

		_, stats, err := svc.FinishSession(context.Background(), userID, session.ID)
		require.NoError(t, err)

		assert.Equal(t, 6, finished.SetCount)
		assert.InDelta(t, 4800.0, finished.TotalVolumeKg, 0.001) // 6 sets x 80kg x 10 reps
		assert.Equal(t, 45, finished.DurationMinutes)
		assert.Equal(t, 110, finished.XPAwarded) // 60 set XP + 50 bonus

		// Fresh stats row: finish bonus only (set XP lands at log time),
		// first session of the week completes no default quest yet.
		assert.Equal(t, 50, stats.XP)
		assert.Equal(t, 1, stats.Streak)
		assert.Equal(t, 1, stats.BestStreak)
		assert.Equal(t, today, stats.LastWorkoutDate)
	})

	t.Run("short session gets no bonus", func(t *testing.T) {
		session := openSession(userID)
		entries := sessionLogs(userID, session.ID, 3, 60, 8)
		sessionRepo, logRepo, statsRepo, scheduleRepo := setup(session, entries, nil, nil, nil)
		svc := newSessionService(sessionRepo, logRepo, statsRepo, scheduleRepo, new(MockPlanRepository))

		_, stats, err := svc.FinishSession(context.Background(), userID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.XP)
	})

	t.Run("extends a running streak and records milestones", func(t *testing.T) {
		session := openSession(userID)
		entries := sessionLogs(userID, session.ID, 2, 100, 5)
		prior := &domain.UserStats{
			UserID:          userID,
			XP:              500,
			Level:           3,
			Streak:          6,
			BestStreak:      6,
			LastWorkoutDate: yesterday,
		}
		sessionRepo, logRepo, statsRepo, scheduleRepo := setup(session, entries, prior, nil, nil)
		svc := newSessionService(sessionRepo, logRepo, statsRepo, scheduleRepo, new(MockPlanRepository))

		_, stats, err := svc.FinishSession(context.Background(), userID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, stats.Streak)
		assert.Equal(t, 7, stats.BestStreak)
		assert.Contains(t, stats.Milestones, 7)
	})

	t.Run("second session today keeps the streak", func(t *testing.T) {
		session := openSession(userID)
		entries := sessionLogs(userID, session.ID, 2, 100, 5)
		prior := &domain.UserStats{
			UserID:          userID,
			Streak:          4,
			BestStreak:      9,
			LastWorkoutDate: today,
		}
		sessionRepo, logRepo, statsRepo, scheduleRepo := setup(session, entries, prior, nil, nil)
		svc := newSessionService(sessionRepo, logRepo, statsRepo, scheduleRepo, new(MockPlanRepository))

		_, stats, err := svc.FinishSession(context.Background(), userID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Streak)
		assert.Equal(t, 9, stats.BestStreak)
	})

	t.Run("gap resets the streak to one", func(t *testing.T) {
		session := openSession(userID)
		entries := sessionLogs(userID, session.ID, 2, 100, 5)
		prior := &domain.UserStats{
			UserID:          userID,
			Streak:          12,
			BestStreak:      12,
			LastWorkoutDate: "2020-01-01",
		}
		sessionRepo, logRepo, statsRepo, scheduleRepo := setup(session, entries, prior, nil, nil)
		svc := newSessionService(sessionRepo, logRepo, statsRepo, scheduleRepo, new(MockPlanRepository))

		_, stats, err := svc.FinishSession(context.Background(), userID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Streak)
		assert.Equal(t, 12, stats.BestStreak)
	})

	t.Run("completing the weekly quest awards bonus XP", func(t *testing.T) {
		session := openSession(userID)
		entries := sessionLogs(userID, session.ID, 2, 100, 5)
		quest := &domain.WeeklyQuest{
			UserID:            userID,
			TargetSessions:    3,
			CompletedSessions: 2,
		}
		sessionRepo, logRepo, statsRepo, scheduleRepo := setup(session, entries, nil, quest, nil)
		svc := newSessionService(sessionRepo, logRepo, statsRepo, scheduleRepo, new(MockPlanRepository))

		_, stats, err := svc.FinishSession(context.Background(), userID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 200, stats.XP)
		assert.True(t, quest.Completed)
		assert.Equal(t, 3, quest.CompletedSessions)
	})

	t.Run("double finish maps to not found", func(t *testing.T) {
		session := openSession(userID)
		ended := time.Now().UTC()
		session.EndedAt = &ended

		sessionRepo := new(MockSessionRepository)
		sessionRepo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
		svc := newSessionService(sessionRepo, new(MockLogRepository), new(MockStatsRepository), new(MockScheduleRepository), new(MockPlanRepository))

		_, _, err := svc.FinishSession(context.Background(), userID, session.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestStartSession(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("refuses a second open session", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		sessionRepo.On("GetOpenForUser", mock.Anything, userID).Return(openSession(userID), nil)
		svc := newSessionService(sessionRepo, new(MockLogRepository), new(MockStatsRepository), new(MockScheduleRepository), new(MockPlanRepository))

		_, err := svc.StartSession(context.Background(), userID, 0, domain.LocationGym)
		assert.ErrorIs(t, err, ErrSessionAlreadyOpen)
	})

	t.Run("freezes the blueprint on the session row", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		logRepo := new(MockLogRepository)
		planRepo := new(MockPlanRepository)
		settingsRepo := new(MockSettingsRepository)
		coachSvc := NewCoachService(coach.DefaultPolicy(), planRepo, logRepo, settingsRepo)
		svc := NewSessionService(sessionRepo, logRepo, new(MockStatsRepository), new(MockScheduleRepository), planRepo, coachSvc)

		plan := testPlan(userID, 3)
		plan.Days[0].Exercises = []domain.PlanExercise{
			{
				ExerciseKey:   "back_squat",
				ExerciseName:  "Back Squat",
				EquipmentType: domain.EquipmentBarbell,
				Sets:          "3",
				Reps:          "5-8",
				TargetRepsMin: 5,
				TargetRepsMax: 8,
			},
		}
		settings := &domain.CoachSettings{
			UserID:         userID,
			Constraints:    domain.ConstraintSet{Location: domain.LocationGym, Equipment: []string{"barbell"}},
			CycleStartDate: coach.WeekStart(time.Now()),
		}

		sessionRepo.On("GetOpenForUser", mock.Anything, userID).Return(nil, repository.ErrNotFound)
		planRepo.On("GetActiveForUser", mock.Anything, userID).Return(plan, nil)
		settingsRepo.On("GetSettings", mock.Anything, userID).Return(settings, nil)
		settingsRepo.On("GetVariantCatalog", mock.Anything).Return([]domain.VariantExercise{}, nil)
		logRepo.On("GetByExerciseKey", mock.Anything, userID, mock.AnythingOfType("string"), mock.AnythingOfType("int64")).
			Return([]domain.ExerciseLogEntry{}, nil)
		sessionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.WorkoutSession")).
			Return(primitive.NewObjectID(), nil)

		session, err := svc.StartSession(context.Background(), userID, 0, domain.LocationGym)
		require.NoError(t, err)
		require.Len(t, session.Blueprint.Exercises, 1)
		assert.Equal(t, "back_squat", session.Blueprint.Exercises[0].ExerciseKey)
		assert.Equal(t, 1, session.Blueprint.CycleWeek)
		assert.Equal(t, plan.ID, session.PlanID)
	})

	t.Run("invalid day index", func(t *testing.T) {
		sessionRepo := new(MockSessionRepository)
		logRepo := new(MockLogRepository)
		planRepo := new(MockPlanRepository)
		settingsRepo := new(MockSettingsRepository)
		coachSvc := NewCoachService(coach.DefaultPolicy(), planRepo, logRepo, settingsRepo)
		svc := NewSessionService(sessionRepo, logRepo, new(MockStatsRepository), new(MockScheduleRepository), planRepo, coachSvc)

		sessionRepo.On("GetOpenForUser", mock.Anything, userID).Return(nil, repository.ErrNotFound)
		planRepo.On("GetActiveForUser", mock.Anything, userID).Return(testPlan(userID, 3), nil)

		_, err := svc.StartSession(context.Background(), userID, 9, domain.LocationGym)
		assert.ErrorIs(t, err, ErrInvalidDayIndex)
	})
}
