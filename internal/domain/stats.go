// internal/domain/stats.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStats is the per-user gamification aggregate. It is upserted after
// every logged set and after every finished session.
type UserStats struct {
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	XP              int                `bson:"xp" json:"xp"`
	Level           int                `bson:"level" json:"level"`
	Streak          int                `bson:"streak" json:"streak"`         // consecutive training days
	BestStreak      int                `bson:"bestStreak" json:"bestStreak"`
	LastWorkoutDate string             `bson:"lastWorkoutDate,omitempty" json:"lastWorkoutDate,omitempty"` // ScheduleDateLayout
	Milestones      []int              `bson:"milestones,omitempty" json:"milestones,omitempty"`           // streak milestones already reached
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WeeklyQuest tracks the "complete N sessions this week" objective.
// One row per (user, ISO week start).
type WeeklyQuest struct {
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	WeekStart         string             `bson:"weekStart" json:"weekStart"` // ScheduleDateLayout, Monday
	TargetSessions    int                `bson:"targetSessions" json:"targetSessions"`
	CompletedSessions int                `bson:"completedSessions" json:"completedSessions"`
	Completed         bool               `bson:"completed" json:"completed"`
}
