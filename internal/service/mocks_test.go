package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	args := m.Called(ctx, plan)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingPlan), args.Error(1)
}

func (m *MockPlanRepository) GetActiveForUser(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingPlan), args.Error(1)
}

func (m *MockPlanRepository) DeactivateForUser(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Append(ctx context.Context, entry *domain.ExerciseLogEntry) (primitive.ObjectID, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockLogRepository) GetByExerciseKey(ctx context.Context, userID primitive.ObjectID, exerciseKey string, limit int64) ([]domain.ExerciseLogEntry, error) {
	args := m.Called(ctx, userID, exerciseKey, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExerciseLogEntry), args.Error(1)
}

func (m *MockLogRepository) GetBySessionID(ctx context.Context, userID, sessionID primitive.ObjectID) ([]domain.ExerciseLogEntry, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExerciseLogEntry), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutSession), args.Error(1)
}

func (m *MockSessionRepository) GetOpenForUser(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutSession), args.Error(1)
}

func (m *MockSessionRepository) Finish(ctx context.Context, userID, sessionID primitive.ObjectID, stats domain.SessionStats) (*domain.WorkoutSession, error) {
	args := m.Called(ctx, userID, sessionID, stats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkoutSession), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetRange(ctx context.Context, userID primitive.ObjectID, fromDate, toDate string) ([]domain.ScheduledWorkout, error) {
	args := m.Called(ctx, userID, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledWorkout), args.Error(1)
}

func (m *MockScheduleRepository) Upsert(ctx context.Context, row *domain.ScheduledWorkout) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockScheduleRepository) SetStatus(ctx context.Context, userID primitive.ObjectID, workoutDate string, status domain.WorkoutStatus, sessionID *primitive.ObjectID) error {
	args := m.Called(ctx, userID, workoutDate, status, sessionID)
	return args.Error(0)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetStats(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStats), args.Error(1)
}

func (m *MockStatsRepository) UpsertStats(ctx context.Context, stats *domain.UserStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) GetQuest(ctx context.Context, userID primitive.ObjectID, weekStart string) (*domain.WeeklyQuest, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyQuest), args.Error(1)
}

func (m *MockStatsRepository) UpsertQuest(ctx context.Context, quest *domain.WeeklyQuest) error {
	args := m.Called(ctx, quest)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context, userID primitive.ObjectID) (*domain.CoachSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoachSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, settings *domain.CoachSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) GetVariantCatalog(ctx context.Context) ([]domain.VariantExercise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VariantExercise), args.Error(1)
}

// MockLLMClient stands in for the OpenAI-backed program generator.
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) GenerateProgramJSON(ctx context.Context, profileJSON string) (string, error) {
	args := m.Called(ctx, profileJSON)
	return args.String(0), args.Error(1)
}
