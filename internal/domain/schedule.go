// internal/domain/schedule.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleDateLayout is the canonical layout for scheduled workout dates.
// Dates are stored as plain strings so that (userId, workoutDate) makes a
// clean unique key independent of time zones.
const ScheduleDateLayout = "2006-01-02"

// WorkoutStatus is the lifecycle of a scheduled workout day.
type WorkoutStatus string

const (
	WorkoutPlanned WorkoutStatus = "planned"
	WorkoutDone    WorkoutStatus = "done"
	WorkoutSkipped WorkoutStatus = "skipped"
)

// ScheduledWorkout assigns one plan day to one calendar date. Rows are
// generated once per ISO week and upserted on (userId, workoutDate) so the
// fill is idempotent.
type ScheduledWorkout struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"userId" json:"userId"`
	PlanID      primitive.ObjectID  `bson:"planId,omitempty" json:"planId,omitempty"`
	WorkoutDate string              `bson:"workoutDate" json:"workoutDate"` // ScheduleDateLayout
	DayIndex    int                 `bson:"dayIndex" json:"dayIndex"`       // index into the plan's Days
	Status      WorkoutStatus       `bson:"status" json:"status"`
	SessionID   *primitive.ObjectID `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}
