package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"questfit/coach-app/internal/coach"
	"questfit/coach-app/internal/domain"
	"questfit/coach-app/internal/repository"
)

var (
	ErrSessionAlreadyOpen = errors.New("a session is already in progress")
	ErrSessionNotFound    = errors.New("session not found or already finished")
	ErrInvalidReps        = errors.New("reps must be a positive number")
)

// Gamification constants.
const (
	xpPerSet           = 10
	xpSessionBonus     = 50
	xpSessionBonusMin  = 6 // sets needed for the finish bonus
	xpQuestBonus       = 200
	xpPerLevel         = 250
	defaultQuestTarget = 3
)

// streakMilestones are the consecutive-day counts worth recording.
var streakMilestones = []int{3, 7, 14, 30, 60, 100}

// LogSetInput is one performed set as reported by the client.
type LogSetInput struct {
	SessionID     primitive.ObjectID
	ExerciseIndex int
	SetIndex      int
	WeightKg      *float64
	Reps          int
	RPE           *float64
	RestSeconds   *int
}

// LogSetResult carries the stored entry plus an optional advisory warning.
type LogSetResult struct {
	Entry   *domain.ExerciseLogEntry
	Warning string
}

type SessionService interface {
	// StartSession freezes the blueprint for one plan day onto a new
	// session row. One open session per user is checked best-effort, not
	// transaction-protected.
	StartSession(ctx context.Context, userID primitive.ObjectID, dayIndex int, location domain.Location) (*domain.WorkoutSession, error)
	GetOpenSession(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error)
	// LogSet appends one set against an open session and awards set XP.
	// Out-of-range reps warn, they never block.
	LogSet(ctx context.Context, userID primitive.ObjectID, input LogSetInput) (*LogSetResult, error)
	// FinishSession closes the session, computes the aggregates and applies
	// finish XP, quest progress and streak updates.
	FinishSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, *domain.UserStats, error)
	GetStats(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error)
	GetWeeklyQuest(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.WeeklyQuest, error)
}

type sessionService struct {
	sessionRepo  repository.SessionRepository
	logRepo      repository.LogRepository
	statsRepo    repository.StatsRepository
	scheduleRepo repository.ScheduleRepository
	planRepo     repository.PlanRepository
	coachSvc     CoachService
}

// NewSessionService creates a new session service.
func NewSessionService(sessionRepo repository.SessionRepository, logRepo repository.LogRepository, statsRepo repository.StatsRepository, scheduleRepo repository.ScheduleRepository, planRepo repository.PlanRepository, coachSvc CoachService) SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		logRepo:      logRepo,
		statsRepo:    statsRepo,
		scheduleRepo: scheduleRepo,
		planRepo:     planRepo,
		coachSvc:     coachSvc,
	}
}

func (s *sessionService) StartSession(ctx context.Context, userID primitive.ObjectID, dayIndex int, location domain.Location) (*domain.WorkoutSession, error) {
	_, err := s.sessionRepo.GetOpenForUser(ctx, userID)
	if err == nil {
		return nil, ErrSessionAlreadyOpen
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	blueprint, err := s.coachSvc.BuildBlueprint(ctx, userID, dayIndex, now)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}

	session := &domain.WorkoutSession{
		UserID:    userID,
		PlanID:    plan.ID,
		DayIndex:  dayIndex,
		Location:  location,
		StartedAt: now.UTC(),
		Blueprint: *blueprint,
	}
	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID
	return session, nil
}

func (s *sessionService) GetOpenSession(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetOpenForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) LogSet(ctx context.Context, userID primitive.ObjectID, input LogSetInput) (*LogSetResult, error) {
	if input.Reps <= 0 {
		return nil, ErrInvalidReps
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID || session.EndedAt != nil {
		return nil, ErrSessionNotFound
	}
	if input.ExerciseIndex < 0 || input.ExerciseIndex >= len(session.Blueprint.Exercises) {
		return nil, errors.New("exercise index out of range for the session blueprint")
	}

	ex := session.Blueprint.Exercises[input.ExerciseIndex]
	entry := &domain.ExerciseLogEntry{
		UserID:        userID,
		SessionID:     session.ID,
		PlanID:        session.PlanID,
		DayIndex:      session.DayIndex,
		ExerciseIndex: input.ExerciseIndex,
		ExerciseKey:   ex.ExerciseKey,
		ExerciseName:  ex.ExerciseName,
		EquipmentType: ex.EquipmentType,
		SetIndex:      input.SetIndex,
		TargetRepsMin: ex.TargetRepsMin,
		TargetRepsMax: ex.TargetRepsMax,
		WeightKg:      input.WeightKg,
		Reps:          input.Reps,
		RPE:           input.RPE,
		RestSeconds:   input.RestSeconds,
	}
	if _, err := s.logRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.awardXP(ctx, userID, xpPerSet); err != nil {
		// XP is advisory; a stats write failure must not lose the set.
		log.Printf("WARN: failed to award set XP for user %s: %v", userID.Hex(), err)
	}

	result := &LogSetResult{Entry: entry}
	if ex.TargetRepsMax > 0 && (input.Reps < ex.TargetRepsMin || input.Reps > ex.TargetRepsMax) {
		result.Warning = fmt.Sprintf("%d reps is outside the %d-%d target range", input.Reps, ex.TargetRepsMin, ex.TargetRepsMax)
	}
	return result, nil
}

func (s *sessionService) FinishSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*domain.WorkoutSession, *domain.UserStats, error) {
	open, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	if open.UserID != userID || open.EndedAt != nil {
		return nil, nil, ErrSessionNotFound
	}

	entries, err := s.logRepo.GetBySessionID(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	stats := domain.SessionStats{
		DurationMinutes: durationMinutes(open.StartedAt, now),
		SetCount:        len(entries),
	}
	for _, entry := range entries {
		if entry.WeightKg != nil {
			stats.TotalVolumeKg += *entry.WeightKg * float64(entry.Reps)
		}
	}

	xp := len(entries) * xpPerSet
	if len(entries) >= xpSessionBonusMin {
		xp += xpSessionBonus
	}
	stats.XPAwarded = xp

	session, err := s.sessionRepo.Finish(ctx, userID, sessionID, stats)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	userStats, err := s.applyFinishRewards(ctx, userID, xpSessionBonusApplied(len(entries)), now)
	if err != nil {
		return nil, nil, err
	}

	today := now.Format(domain.ScheduleDateLayout)
	if err := s.scheduleRepo.SetStatus(ctx, userID, today, domain.WorkoutDone, &sessionID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("WARN: failed to mark schedule done for user %s: %v", userID.Hex(), err)
	}

	return session, userStats, nil
}

// xpSessionBonusApplied is the finish-time XP on top of the per-set XP that
// was already granted while logging.
func xpSessionBonusApplied(setCount int) int {
	if setCount >= xpSessionBonusMin {
		return xpSessionBonus
	}
	return 0
}

// applyFinishRewards updates quest progress, streaks and level in one stats
// write.
func (s *sessionService) applyFinishRewards(ctx context.Context, userID primitive.ObjectID, bonusXP int, now time.Time) (*domain.UserStats, error) {
	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.XP += bonusXP

	questXP, err := s.advanceWeeklyQuest(ctx, userID, now)
	if err != nil {
		log.Printf("WARN: failed to advance weekly quest for user %s: %v", userID.Hex(), err)
	}
	stats.XP += questXP

	today := now.Format(domain.ScheduleDateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(domain.ScheduleDateLayout)
	switch stats.LastWorkoutDate {
	case today:
		// Second session today, streak unchanged.
	case yesterday:
		stats.Streak++
	default:
		stats.Streak = 1
	}
	stats.LastWorkoutDate = today
	if stats.Streak > stats.BestStreak {
		stats.BestStreak = stats.Streak
	}
	for _, milestone := range streakMilestones {
		if stats.Streak == milestone && !containsInt(stats.Milestones, milestone) {
			stats.Milestones = append(stats.Milestones, milestone)
		}
	}

	stats.Level = stats.XP/xpPerLevel + 1
	if err := s.statsRepo.UpsertStats(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *sessionService) advanceWeeklyQuest(ctx context.Context, userID primitive.ObjectID, now time.Time) (int, error) {
	weekStart := coach.WeekStart(now).Format(domain.ScheduleDateLayout)
	quest, err := s.statsRepo.GetQuest(ctx, userID, weekStart)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return 0, err
		}
		quest = &domain.WeeklyQuest{
			UserID:         userID,
			WeekStart:      weekStart,
			TargetSessions: defaultQuestTarget,
		}
	}

	quest.CompletedSessions++
	awarded := 0
	if !quest.Completed && quest.CompletedSessions >= quest.TargetSessions {
		quest.Completed = true
		awarded = xpQuestBonus
	}
	if err := s.statsRepo.UpsertQuest(ctx, quest); err != nil {
		return 0, err
	}
	return awarded, nil
}

func (s *sessionService) awardXP(ctx context.Context, userID primitive.ObjectID, amount int) error {
	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return err
	}
	stats.XP += amount
	stats.Level = stats.XP/xpPerLevel + 1
	return s.statsRepo.UpsertStats(ctx, stats)
}

func (s *sessionService) loadStats(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error) {
	stats, err := s.statsRepo.GetStats(ctx, userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &domain.UserStats{UserID: userID, Level: 1}, nil
}

func (s *sessionService) GetStats(ctx context.Context, userID primitive.ObjectID) (*domain.UserStats, error) {
	return s.loadStats(ctx, userID)
}

func (s *sessionService) GetWeeklyQuest(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.WeeklyQuest, error) {
	weekStart := coach.WeekStart(now).Format(domain.ScheduleDateLayout)
	quest, err := s.statsRepo.GetQuest(ctx, userID, weekStart)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.WeeklyQuest{
				UserID:         userID,
				WeekStart:      weekStart,
				TargetSessions: defaultQuestTarget,
			}, nil
		}
		return nil, err
	}
	return quest, nil
}

// durationMinutes floors the session length at one minute so instant
// finishes still register.
func durationMinutes(start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	if minutes < 1 {
		return 1
	}
	return minutes
}

func containsInt(list []int, value int) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
