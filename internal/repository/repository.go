package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/domain"
)

// Error constants for the repository layer.
var ErrNotFound = RepositoryError("not found")

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// PlanRepository manages training plan rows. Plans are immutable templates:
// regeneration deactivates the previous active plan and inserts a new one.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetActiveForUser(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	// DeactivateForUser clears the active flag on every plan of the user.
	// Called before inserting the replacement; the brief window where no
	// plan is active is accepted.
	DeactivateForUser(ctx context.Context, userID primitive.ObjectID) error
}

// LogRepository appends and reads exercise log entries. Entries are
// append-only; there is no update or delete.
type LogRepository interface {
	Append(ctx context.Context, entry *domain.ExerciseLogEntry) (primitive.ObjectID, error)
	// GetByExerciseKey returns the newest entries for one exercise of one
	// user, newest first, capped at limit.
	GetByExerciseKey(ctx context.Context, userID primitive.ObjectID, exerciseKey string, limit int64) ([]domain.ExerciseLogEntry, error)
	GetBySessionID(ctx context.Context, userID, sessionID primitive.ObjectID) ([]domain.ExerciseLogEntry, error)
}

// SessionRepository manages workout session rows: a start insert and a
// single finish update that sets the end time and the aggregate stats.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	// GetOpenForUser returns the unfinished session of the user, or
	// ErrNotFound when none is open.
	GetOpenForUser(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error)
	// Finish sets endedAt and stats on an open session. Returns
	// ErrNotFound when the session does not exist or is already finished.
	Finish(ctx context.Context, userID, sessionID primitive.ObjectID, stats domain.SessionStats) (*domain.WorkoutSession, error)
}

// ScheduleRepository manages scheduled workout rows keyed by
// (userId, workoutDate), with upsert-on-conflict semantics so the weekly
// fill stays idempotent.
type ScheduleRepository interface {
	GetRange(ctx context.Context, userID primitive.ObjectID, fromDate, toDate string) ([]domain.ScheduledWorkout, error)
	Upsert(ctx context.Context, row *domain.ScheduledWorkout) error
	SetStatus(ctx context.Context, userID primitive.ObjectID, workoutDate string, status domain.WorkoutStatus, sessionID *primitive.ObjectID) error
}

// StatsRepository manages the per-user gamification aggregate and the
// weekly quest rows.
type StatsRepository interface {
	GetStats(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error)
	UpsertStats(ctx context.Context, stats *domain.UserStats) error
	GetQuest(ctx context.Context, userID primitive.ObjectID, weekStart string) (*domain.WeeklyQuest, error)
	UpsertQuest(ctx context.Context, quest *domain.WeeklyQuest) error
}

// SettingsRepository manages the per-user coach settings row (constraints,
// baseline, cycle anchor) and the shared variant catalog.
type SettingsRepository interface {
	GetSettings(ctx context.Context, userID primitive.ObjectID) (*domain.CoachSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.CoachSettings) error
	GetVariantCatalog(ctx context.Context) ([]domain.VariantExercise, error)
}
