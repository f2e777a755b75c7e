// internal/domain/exercise_log.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseLogEntry is one recorded set. Entries are append-only and
// immutable once written; the whole progression engine reduces over them.
// WeightKg is nil for bodyweight and running work.
type ExerciseLogEntry struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID  `bson:"userId" json:"userId"`
	SessionID     primitive.ObjectID  `bson:"sessionId" json:"sessionId"`
	PlanID        primitive.ObjectID  `bson:"planId,omitempty" json:"planId,omitempty"`
	DayIndex      int                 `bson:"dayIndex" json:"dayIndex"`
	ExerciseIndex int                 `bson:"exerciseIndex" json:"exerciseIndex"`
	ExerciseKey   string              `bson:"exerciseKey" json:"exerciseKey"`
	ExerciseName  string              `bson:"exerciseName" json:"exerciseName"`
	EquipmentType EquipmentType       `bson:"equipmentType" json:"equipmentType"`
	SetIndex      int                 `bson:"setIndex" json:"setIndex"`
	TargetRepsMin int                 `bson:"targetRepsMin" json:"targetRepsMin"`
	TargetRepsMax int                 `bson:"targetRepsMax" json:"targetRepsMax"`
	WeightKg      *float64            `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Reps          int                 `bson:"reps" json:"reps"`
	RPE           *float64            `bson:"rpe,omitempty" json:"rpe,omitempty"` // 0-10 perceived effort
	RestSeconds   *int                `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
}
