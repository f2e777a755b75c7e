// internal/domain/session.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlueprintExercise is a plan exercise merged with the recommendation the
// coach engine computed for the upcoming session.
type BlueprintExercise struct {
	PlanExercise            `bson:",inline" json:",inline"`
	RecommendedWeightKg     *float64 `bson:"recommendedWeightKg" json:"recommended_weight"`
	RecommendedReps         string   `bson:"recommendedReps" json:"recommended_reps"`
	RecommendedPaceSecPerKm *int     `bson:"recommendedPaceSecPerKm,omitempty" json:"recommended_pace_sec_per_km,omitempty"`
	ProgressionNote         string   `bson:"progressionNote,omitempty" json:"progression_note,omitempty"`
}

// SessionBlueprint is the resolved exercise list for one specific session.
// It is computed fresh when the session starts and frozen on the session
// row; logging against it after the plan changes is acceptable, it is a
// snapshot. Its exercise count always equals the originating PlanDay's.
type SessionBlueprint struct {
	CycleWeek int                 `bson:"cycleWeek" json:"cycle_week"`
	Deload    bool                `bson:"deload" json:"deload"`
	Day       string              `bson:"day" json:"day"`
	Focus     string              `bson:"focus" json:"focus"`
	Exercises []BlueprintExercise `bson:"exercises" json:"exercises"`
}

// SessionStats are the aggregates written once when a session finishes.
type SessionStats struct {
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	SetCount        int     `bson:"setCount" json:"setCount"`
	TotalVolumeKg   float64 `bson:"totalVolumeKg" json:"totalVolumeKg"`
	XPAwarded       int     `bson:"xpAwarded" json:"xpAwarded"`
}

// WorkoutSession is one training session instance. EndedAt nil means the
// session is still in progress. The intended invariant is one open session
// per user; it is checked before insert but not transaction-protected.
type WorkoutSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PlanID    primitive.ObjectID `bson:"planId" json:"planId"`
	DayIndex  int                `bson:"dayIndex" json:"dayIndex"`
	Location  Location           `bson:"location,omitempty" json:"location,omitempty"`
	StartedAt time.Time          `bson:"startedAt" json:"startedAt"`
	EndedAt   *time.Time         `bson:"endedAt,omitempty" json:"endedAt,omitempty"`
	Blueprint SessionBlueprint   `bson:"blueprint" json:"blueprint"`
	Stats     *SessionStats      `bson:"stats,omitempty" json:"stats,omitempty"`
}
